package orders

import (
	"github.com/TaiHuynhPL/QLTBCNTT-sub000/internal/repository"
	custom_error "github.com/TaiHuynhPL/QLTBCNTT-sub000/pkg/errors"
	"github.com/TaiHuynhPL/QLTBCNTT-sub000/pkg/models"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
)

type OrderService struct {
	repository  *repository.Repository
	orderRepo   *OrderRepository
	fulfillment *Fulfillment
}

func NewService(r *repository.Repository, orderRepo *OrderRepository, fulfillment *Fulfillment) *OrderService {
	return &OrderService{
		repository:  r,
		orderRepo:   orderRepo,
		fulfillment: fulfillment,
	}
}

// CreateOrder validates the request and persists a draft order with its lines.
func (s *OrderService) CreateOrder(request CreateOrderRequest, actor models.Actor) (*models.PurchaseOrder, error) {
	orderDate := models.Today()
	if request.OrderDate != nil && !request.OrderDate.IsZero() {
		orderDate = *request.OrderDate
	}

	lines := make([]models.OrderLine, 0, len(request.Lines))
	for _, lineReq := range request.Lines {
		target, err := models.NewLineTarget(lineReq.AssetModelID, lineReq.ConsumableModelID)
		if err != nil {
			return nil, custom_error.NewValidationError(err.Error(), "lines")
		}
		if lineReq.UnitPrice.IsNegative() {
			return nil, custom_error.NewValidationError("unit price cannot be negative", "unit_price")
		}

		lines = append(lines, models.OrderLine{
			Target:    target,
			Quantity:  lineReq.Quantity,
			UnitPrice: lineReq.UnitPrice,
		})
	}

	orderID, err := s.orderRepo.InsertOrder(request.SupplierID, actor.UserID, orderDate, request.Notes, lines)
	if err != nil {
		return nil, err
	}

	return s.orderRepo.GetOrder(orderID)
}

// Transition moves an order along one edge of its lifecycle. The order row is
// locked for the whole transaction, so the status read, the fulfillment and
// the status write act on one consistent view. Moving into completed triggers
// fulfillment exactly once: a second completion attempt fails on the edge
// check because completed has no outgoing edges.
func (s *OrderService) Transition(orderID int, target models.OrderStatus, actor models.Actor, notes *string, destinationID *int) (*models.PurchaseOrder, *models.StockInResult, error) {
	var result *models.StockInResult

	err := repository.WithTransaction(s.repository.GoquDBWrapper, func(tx *goqu.TxDatabase) error {
		order, err := s.orderRepo.GetOrderForUpdate(tx, orderID)
		if err != nil {
			return err
		}

		if err := validateTransition(order.Status, target, actor.Role); err != nil {
			return err
		}

		if target == models.OrderStatusCompleted {
			lines, err := s.orderRepo.GetOrderLines(tx, orderID)
			if err != nil {
				return err
			}
			result, err = s.fulfillment.Execute(tx, order, lines, destinationID)
			if err != nil {
				return err
			}
		}

		return s.orderRepo.UpdateOrderStatus(tx, orderID, target, notes)
	})

	if err != nil {
		return nil, nil, err
	}

	order, err := s.orderRepo.GetOrder(orderID)
	if err != nil {
		return nil, nil, err
	}

	return order, result, nil
}

func (s *OrderService) GetOrder(id int) (*models.PurchaseOrder, error) {
	return s.orderRepo.GetOrder(id)
}

func (s *OrderService) GetOrders(status *models.OrderStatus) ([]models.PurchaseOrder, error) {
	var conditions []exp.Expression
	if status != nil {
		conditions = append(conditions, goqu.Ex{"o.status": string(*status)})
	}
	return s.orderRepo.GetOrders(conditions)
}

func (s *OrderService) DeleteOrder(id int) error {
	return s.orderRepo.DeleteOrder(id)
}
