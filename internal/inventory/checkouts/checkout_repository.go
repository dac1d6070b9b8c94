package checkouts

import (
	"fmt"

	"github.com/TaiHuynhPL/QLTBCNTT-sub000/internal/repository"
	custom_error "github.com/TaiHuynhPL/QLTBCNTT-sub000/pkg/errors"
	"github.com/TaiHuynhPL/QLTBCNTT-sub000/pkg/models"

	"github.com/doug-martin/goqu/v9"
	"github.com/lib/pq"
)

type CheckoutRepository struct {
	repository *repository.Repository
}

func NewRepository(r *repository.Repository) *CheckoutRepository {
	return &CheckoutRepository{repository: r}
}

// InsertReceipt records the hand-out. Receipts are immutable; there is no
// update or delete path.
func (r *CheckoutRepository) InsertReceipt(tx *goqu.TxDatabase, req CheckoutRequest) (int, error) {
	if tx == nil {
		return 0, fmt.Errorf("transaction is required for InsertReceipt")
	}

	var receiptID int
	query := tx.Insert("consumable_checkouts").
		Rows(goqu.Record{
			"consumable_model_id": req.ConsumableModelID,
			"location_id":         req.LocationID,
			"holder_id":           req.HolderID,
			"quantity":            req.Quantity,
			"checkout_date":       req.CheckoutDate,
		}).
		Returning("id")

	if _, err := query.Executor().ScanVal(&receiptID); err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return 0, custom_error.WrapDBError("Checkout references a missing model, location or holder", string(pqErr.Code))
		}
		return 0, fmt.Errorf("failed to insert checkout receipt: %w", err)
	}

	return receiptID, nil
}

func (r *CheckoutRepository) GetReceipt(id int) (*models.ConsumableCheckout, error) {
	var flat models.FlatCheckoutRecord
	query := r.getCheckoutQuery().Where(goqu.Ex{"co.id": id})

	found, err := query.Executor().ScanStruct(&flat)
	if err != nil {
		return nil, fmt.Errorf("unable to select checkout from database: %s", err.Error())
	}
	if !found {
		return nil, custom_error.NewNotFoundError("checkout", id)
	}

	receipt := flat.TransformToCheckout()
	return &receipt, nil
}

func (r *CheckoutRepository) GetReceipts() (*[]models.ConsumableCheckout, error) {
	query := r.getCheckoutQuery().
		Order(goqu.I("co.checkout_date").Desc(), goqu.I("co.id").Desc())

	var flats []models.FlatCheckoutRecord
	if err := query.Executor().ScanStructs(&flats); err != nil {
		return nil, fmt.Errorf("unable to select checkouts from database: %s", err.Error())
	}

	receipts := []models.ConsumableCheckout{}
	for _, flat := range flats {
		receipts = append(receipts, flat.TransformToCheckout())
	}

	return &receipts, nil
}

func (r *CheckoutRepository) getCheckoutQuery() *goqu.SelectDataset {
	return r.repository.GoquDBWrapper.
		Select(
			goqu.I("co.id").As("checkout_id"),
			goqu.I("co.quantity").As("quantity"),
			goqu.I("co.checkout_date").As("checkout_date"),
			goqu.I("m.id").As("model_id"),
			goqu.I("m.name").As("model_name"),
			goqu.I("m.unit").As("model_unit"),
			goqu.I("l.id").As("location_id"),
			goqu.I("l.name").As("location_name"),
			goqu.I("h.id").As("holder_id"),
			goqu.I("h.fullname").As("holder_name"),
		).
		From(goqu.T("consumable_checkouts").As("co")).
		LeftJoin(
			goqu.T("consumable_models").As("m"),
			goqu.On(goqu.Ex{"co.consumable_model_id": goqu.I("m.id")}),
		).
		LeftJoin(
			goqu.T("locations").As("l"),
			goqu.On(goqu.Ex{"co.location_id": goqu.I("l.id")}),
		).
		LeftJoin(
			goqu.T("asset_holders").As("h"),
			goqu.On(goqu.Ex{"co.holder_id": goqu.I("h.id")}),
		)
}
