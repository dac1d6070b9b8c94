package checkouts

import (
	"github.com/TaiHuynhPL/QLTBCNTT-sub000/internal/inventory/stocks"
	"github.com/TaiHuynhPL/QLTBCNTT-sub000/internal/repository"
	custom_error "github.com/TaiHuynhPL/QLTBCNTT-sub000/pkg/errors"
	"github.com/TaiHuynhPL/QLTBCNTT-sub000/pkg/models"

	"github.com/doug-martin/goqu/v9"
)

type CheckoutRequest struct {
	ConsumableModelID int         `json:"consumable_model_id" binding:"required"`
	LocationID        int         `json:"location_id" binding:"required"`
	HolderID          int         `json:"holder_id" binding:"required"`
	Quantity          int         `json:"quantity" binding:"required"`
	CheckoutDate      models.Date `json:"checkout_date"`
}

type CheckoutService struct {
	r  *repository.Repository
	cr *CheckoutRepository
	sr *stocks.StockRepository
}

func NewService(r *repository.Repository, cr *CheckoutRepository, sr *stocks.StockRepository) *CheckoutService {
	return &CheckoutService{r: r, cr: cr, sr: sr}
}

// Checkout decrements the (model, location) ledger and writes the receipt as
// one transaction. The decrement is a conditional update, so a concurrent
// checkout against the same row cannot drive the quantity negative; the loser
// gets an insufficient-stock error.
func (s *CheckoutService) Checkout(req CheckoutRequest) (*models.ConsumableCheckout, error) {
	if req.Quantity < 1 {
		return nil, custom_error.NewValidationError("quantity must be at least 1", "quantity")
	}
	if req.CheckoutDate.IsZero() {
		req.CheckoutDate = models.Today()
	}

	var receiptID int

	err := repository.WithTransaction(s.r.GoquDBWrapper, func(tx *goqu.TxDatabase) error {
		if err := s.sr.DecreaseIfAvailable(tx, req.ConsumableModelID, req.LocationID, req.Quantity); err != nil {
			return err
		}

		var err error
		receiptID, err = s.cr.InsertReceipt(tx, req)
		return err
	})

	if err != nil {
		return nil, err
	}

	return s.cr.GetReceipt(receiptID)
}

func (s *CheckoutService) ListReceipts() (*[]models.ConsumableCheckout, error) {
	return s.cr.GetReceipts()
}
