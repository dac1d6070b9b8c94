package orders

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/TaiHuynhPL/QLTBCNTT-sub000/internal/repository"
	custom_error "github.com/TaiHuynhPL/QLTBCNTT-sub000/pkg/errors"
	"github.com/TaiHuynhPL/QLTBCNTT-sub000/pkg/models"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

type OrderRepository struct {
	repository *repository.Repository
}

func NewRepository(r *repository.Repository) *OrderRepository {
	return &OrderRepository{repository: r}
}

// InsertOrder creates the order row with its lines in one transaction. The
// code is a per-day sequence, the total amount is the sum of the line totals,
// each computed as quantity times unit price with exact decimal arithmetic.
func (r *OrderRepository) InsertOrder(supplierID int, createdBy int, orderDate models.Date, notes string, lines []models.OrderLine) (int, error) {
	var orderID int

	err := repository.WithTransaction(r.repository.GoquDBWrapper, func(tx *goqu.TxDatabase) error {
		code, err := r.nextOrderCode(tx, orderDate)
		if err != nil {
			return err
		}

		total := decimal.Zero
		for i := range lines {
			lines[i].TotalPrice = lines[i].UnitPrice.Mul(decimal.NewFromInt(int64(lines[i].Quantity)))
			total = total.Add(lines[i].TotalPrice)
		}

		query := tx.Insert("purchase_orders").
			Rows(goqu.Record{
				"code":         code,
				"supplier_id":  supplierID,
				"created_by":   createdBy,
				"order_date":   orderDate,
				"status":       string(models.OrderStatusDraft),
				"notes":        notes,
				"total_amount": total,
			}).
			Returning("id")

		if _, err := query.Executor().ScanVal(&orderID); err != nil {
			if pqErr, ok := err.(*pq.Error); ok {
				return custom_error.WrapDBError("Order references a missing supplier or duplicates a code", string(pqErr.Code))
			}
			return fmt.Errorf("failed to insert order record: %w", err)
		}

		for _, line := range lines {
			record := goqu.Record{
				"order_id":    orderID,
				"quantity":    line.Quantity,
				"unit_price":  line.UnitPrice,
				"total_price": line.TotalPrice,
			}
			switch line.Target.Kind {
			case models.LineTargetAsset:
				record["asset_model_id"] = line.Target.ModelID
			case models.LineTargetConsumable:
				record["consumable_model_id"] = line.Target.ModelID
			default:
				return fmt.Errorf("order line target is not set")
			}

			if _, err := tx.Insert("order_lines").Rows(record).Executor().Exec(); err != nil {
				if pqErr, ok := err.(*pq.Error); ok {
					return custom_error.WrapDBError("Order line references a missing model", string(pqErr.Code))
				}
				return fmt.Errorf("failed to insert order line: %w", err)
			}
		}

		return nil
	})

	if err != nil {
		return 0, err
	}
	return orderID, nil
}

// GetOrderForUpdate locks the order row so concurrent transitions against the
// same order serialize instead of racing past each other.
func (r *OrderRepository) GetOrderForUpdate(tx *goqu.TxDatabase, id int) (*models.PurchaseOrder, error) {
	if tx == nil {
		return nil, fmt.Errorf("transaction is required for GetOrderForUpdate")
	}

	var flat models.FlatOrderRecord
	query := tx.Select(
		goqu.I("id").As("order_id"),
		"code", "order_date", "created_by", "status", "notes", "total_amount",
		"supplier_id",
	).
		From("purchase_orders").
		Where(goqu.Ex{"id": id}).
		ForUpdate(exp.Wait)

	found, err := query.Executor().ScanStruct(&flat)
	if err != nil {
		return nil, fmt.Errorf("failed to lock order row: %w", err)
	}
	if !found {
		return nil, custom_error.NewNotFoundError("order", id)
	}

	order := flat.TransformToOrder()
	return &order, nil
}

func (r *OrderRepository) UpdateOrderStatus(tx *goqu.TxDatabase, id int, status models.OrderStatus, notes *string) error {
	if tx == nil {
		return fmt.Errorf("transaction is required for UpdateOrderStatus")
	}

	record := goqu.Record{"status": string(status)}
	if notes != nil {
		record["notes"] = *notes
	}

	_, err := tx.Update("purchase_orders").
		Set(record).
		Where(goqu.Ex{"id": id}).
		Executor().
		Exec()

	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}
	return nil
}

func (r *OrderRepository) GetOrder(id int) (*models.PurchaseOrder, error) {
	var flat models.FlatOrderRecord
	query := r.getOrderQuery().Where(goqu.Ex{"o.id": id})

	found, err := query.Executor().ScanStruct(&flat)
	if err != nil {
		return nil, fmt.Errorf("unable to select order from database: %s", err.Error())
	}
	if !found {
		return nil, custom_error.NewNotFoundError("order", id)
	}

	order := flat.TransformToOrder()
	lines, err := r.getLines(nil, id)
	if err != nil {
		return nil, err
	}
	order.Lines = lines

	return &order, nil
}

func (r *OrderRepository) GetOrders(conditions []exp.Expression) ([]models.PurchaseOrder, error) {
	query := r.getOrderQuery().Order(goqu.I("o.id").Desc())
	if len(conditions) > 0 {
		query = query.Where(conditions...)
	}

	var flats []models.FlatOrderRecord
	if err := query.Executor().ScanStructs(&flats); err != nil {
		return nil, fmt.Errorf("unable to select orders from database: %s", err.Error())
	}

	orders := []models.PurchaseOrder{}
	for _, flat := range flats {
		orders = append(orders, flat.TransformToOrder())
	}

	return orders, nil
}

// GetOrderLines loads the lines of an order inside the caller's transaction,
// resolving the target model's code and name for both line kinds.
func (r *OrderRepository) GetOrderLines(tx *goqu.TxDatabase, orderID int) ([]models.OrderLine, error) {
	if tx == nil {
		return nil, fmt.Errorf("transaction is required for GetOrderLines")
	}
	return r.getLines(tx, orderID)
}

func (r *OrderRepository) getLines(tx *goqu.TxDatabase, orderID int) ([]models.OrderLine, error) {
	query := r.getLineQuery(tx).Where(goqu.Ex{"l.order_id": orderID}).Order(goqu.I("l.id").Asc())

	var flats []models.FlatOrderLineRecord
	if err := query.Executor().ScanStructs(&flats); err != nil {
		return nil, fmt.Errorf("unable to select order lines from database: %s", err.Error())
	}

	lines := []models.OrderLine{}
	for _, flat := range flats {
		line, err := flat.TransformToLine()
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}

	return lines, nil
}

// DeleteOrder removes a non-terminal order together with its lines. Completed
// and cancelled orders are part of history and stay.
func (r *OrderRepository) DeleteOrder(id int) error {
	return repository.WithTransaction(r.repository.GoquDBWrapper, func(tx *goqu.TxDatabase) error {
		order, err := r.GetOrderForUpdate(tx, id)
		if err != nil {
			return err
		}
		if order.Status.IsTerminal() {
			return custom_error.NewConflictError(
				fmt.Sprintf("Order %s is %s and cannot be deleted", order.Code, order.Status),
			)
		}

		if _, err := tx.Delete("order_lines").Where(goqu.Ex{"order_id": id}).Executor().Exec(); err != nil {
			return fmt.Errorf("failed to delete order lines: %w", err)
		}
		if _, err := tx.Delete("purchase_orders").Where(goqu.Ex{"id": id}).Executor().Exec(); err != nil {
			return fmt.Errorf("failed to delete order: %w", err)
		}

		return nil
	})
}

// nextOrderCode issues the next PO-YYYYMMDDnnnn code for the order date. The
// lookup runs in the creating transaction, and the unique index on code
// catches the rare concurrent creator that drew the same number.
func (r *OrderRepository) nextOrderCode(tx *goqu.TxDatabase, orderDate models.Date) (string, error) {
	prefix := fmt.Sprintf("PO-%s", orderDate.Time.Format("20060102"))

	var latest sql.NullString
	_, err := tx.Select(goqu.MAX(goqu.I("code"))).
		From("purchase_orders").
		Where(goqu.L("code LIKE ?", prefix+"%")).
		Executor().
		ScanVal(&latest)
	if err != nil {
		return "", fmt.Errorf("failed to look up latest order code: %w", err)
	}

	return nextCodeAfter(prefix, latest.String)
}

// nextCodeAfter increments the numeric suffix of the highest issued code for
// the prefix. Following the highest code rather than the row count keeps the
// sequence moving forward after an order for the same day is deleted.
func nextCodeAfter(prefix, latest string) (string, error) {
	if latest == "" {
		return prefix + "0001", nil
	}

	suffix, err := strconv.Atoi(strings.TrimPrefix(latest, prefix))
	if err != nil {
		return "", fmt.Errorf("malformed order code %q: %w", latest, err)
	}

	return fmt.Sprintf("%s%04d", prefix, suffix+1), nil
}

func (r *OrderRepository) getOrderQuery() *goqu.SelectDataset {
	return r.repository.GoquDBWrapper.
		Select(
			goqu.I("o.id").As("order_id"),
			goqu.I("o.code").As("code"),
			goqu.I("o.order_date").As("order_date"),
			goqu.I("o.created_by").As("created_by"),
			goqu.I("o.status").As("status"),
			goqu.I("o.notes").As("notes"),
			goqu.I("o.total_amount").As("total_amount"),
			goqu.I("o.supplier_id").As("supplier_id"),
			goqu.I("s.name").As("supplier_name"),
		).
		From(goqu.T("purchase_orders").As("o")).
		LeftJoin(
			goqu.T("suppliers").As("s"),
			goqu.On(goqu.Ex{"o.supplier_id": goqu.I("s.id")}),
		)
}

func (r *OrderRepository) getLineQuery(tx *goqu.TxDatabase) *goqu.SelectDataset {
	columns := []interface{}{
		goqu.I("l.id").As("id"),
		goqu.I("l.order_id").As("order_id"),
		goqu.I("l.asset_model_id").As("asset_model_id"),
		goqu.I("l.consumable_model_id").As("consumable_model_id"),
		goqu.COALESCE(goqu.I("am.code"), goqu.I("cm.code"), goqu.V("")).As("model_code"),
		goqu.COALESCE(goqu.I("am.name"), goqu.I("cm.name"), goqu.V("")).As("model_name"),
		goqu.I("l.quantity").As("quantity"),
		goqu.I("l.unit_price").As("unit_price"),
		goqu.I("l.total_price").As("total_price"),
	}

	var query *goqu.SelectDataset
	if tx != nil {
		query = tx.Select(columns...)
	} else {
		query = r.repository.GoquDBWrapper.Select(columns...)
	}

	return query.
		From(goqu.T("order_lines").As("l")).
		LeftJoin(
			goqu.T("asset_models").As("am"),
			goqu.On(goqu.Ex{"l.asset_model_id": goqu.I("am.id")}),
		).
		LeftJoin(
			goqu.T("consumable_models").As("cm"),
			goqu.On(goqu.Ex{"l.consumable_model_id": goqu.I("cm.id")}),
		)
}
