package stocks

import (
	"fmt"

	"github.com/TaiHuynhPL/QLTBCNTT-sub000/internal/repository"
	custom_error "github.com/TaiHuynhPL/QLTBCNTT-sub000/pkg/errors"
	"github.com/TaiHuynhPL/QLTBCNTT-sub000/pkg/models"

	"github.com/doug-martin/goqu/v9"
	"github.com/lib/pq"
)

// DefaultMinQuantity is the alert threshold applied when fulfillment creates a
// stock row that did not exist before.
const DefaultMinQuantity = 5

type StockRepository struct {
	repository *repository.Repository
}

func NewRepository(r *repository.Repository) *StockRepository {
	return &StockRepository{repository: r}
}

func (r *StockRepository) GetStocks() (*[]models.ConsumableStock, error) {
	var flatStocks []models.FlatStockRecord
	query := r.getStockQuery()

	err := query.Executor().ScanStructs(&flatStocks)

	if err != nil {
		return nil, fmt.Errorf("unable to select stock rows from database: %s", err.Error())
	}
	var stocks []models.ConsumableStock
	for _, flatStock := range flatStocks {
		stocks = append(stocks, flatStock.TransformToStock())
	}

	return &stocks, nil
}

func (r *StockRepository) GetStocksBy(conditions repository.QueryBuilder) (*[]models.ConsumableStock, error) {
	aliases := map[string]string{
		"location_id": "s.location_id",
		"model_id":    "s.consumable_model_id",
	}

	query := r.getStockQuery().
		Where(conditions.BuildConditions(aliases)).
		Order(goqu.I("s.id").Asc())

	var flatStocks []models.FlatStockRecord
	err := query.Executor().ScanStructs(&flatStocks)

	if err != nil {
		return nil, fmt.Errorf("unable to select stock rows from database: %s", err.Error())
	}
	var stocks []models.ConsumableStock
	for _, flatStock := range flatStocks {
		stocks = append(stocks, flatStock.TransformToStock())
	}

	return &stocks, nil
}

func (r *StockRepository) GetStock(id int) (*models.ConsumableStock, error) {
	var flatStock models.FlatStockRecord
	query := r.getStockQuery().Where(goqu.Ex{"s.id": id})

	found, err := query.Executor().ScanStruct(&flatStock)
	if err != nil {
		return nil, fmt.Errorf("unable to select stock row from database: %s", err.Error())
	}
	if !found {
		return nil, custom_error.NewNotFoundError("stock", id)
	}
	stock := flatStock.TransformToStock()

	return &stock, nil
}

// PersistStock registers a stock row manually, outside of order fulfillment.
func (r *StockRepository) PersistStock(req StockEntryRequest) (*models.ConsumableStock, error) {
	var stockID int
	query := r.repository.GoquDBWrapper.Insert("consumable_stock").
		Rows(goqu.Record{
			"consumable_model_id": req.ConsumableModelID,
			"location_id":         req.LocationID,
			"quantity":            req.Quantity,
			"min_quantity":        req.MinQuantity,
		}).
		Returning("id")

	if _, err := query.Executor().ScanVal(&stockID); err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return nil, custom_error.WrapDBError("Stock for this model and location already exists", string(pqErr.Code))
		}
		return nil, fmt.Errorf("failed to insert stock row: %w", err)
	}

	return r.GetStock(stockID)
}

// Increase adds qty to the (model, location) ledger row, creating it with the
// default threshold on first receipt. Returns the quantities before and after.
func (r *StockRepository) Increase(tx *goqu.TxDatabase, modelID, locationID, qty int) (oldQuantity, newQuantity int, err error) {
	if tx == nil {
		return 0, 0, fmt.Errorf("transaction is required for Increase")
	}

	query := `
		INSERT INTO consumable_stock (consumable_model_id, location_id, quantity, min_quantity)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (consumable_model_id, location_id)
		DO UPDATE SET quantity = consumable_stock.quantity + EXCLUDED.quantity
		RETURNING quantity;
	`
	row := tx.QueryRow(query, modelID, locationID, qty, DefaultMinQuantity)
	if err := row.Scan(&newQuantity); err != nil {
		return 0, 0, fmt.Errorf("failed to increase stock: %w", err)
	}

	return newQuantity - qty, newQuantity, nil
}

// DecreaseIfAvailable applies the decrement as one conditional update so the
// quantity can never dip below zero, even under concurrent checkouts.
func (r *StockRepository) DecreaseIfAvailable(tx *goqu.TxDatabase, modelID, locationID, qty int) error {
	if tx == nil {
		return fmt.Errorf("transaction is required for DecreaseIfAvailable")
	}

	updateQuery := tx.Update("consumable_stock").
		Set(goqu.Record{
			"quantity": goqu.L("quantity - ?", qty),
		}).
		Where(goqu.Ex{
			"consumable_model_id": modelID,
			"location_id":         locationID,
		}).
		Where(goqu.C("quantity").Gte(qty))

	result, err := updateQuery.Executor().Exec()
	if err != nil {
		return fmt.Errorf("failed to decrease stock for model %d at location %d: %w", modelID, locationID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected for model %d: %w", modelID, err)
	}

	if rowsAffected == 0 {
		var available int
		found, err := tx.Select("quantity").
			From("consumable_stock").
			Where(goqu.Ex{
				"consumable_model_id": modelID,
				"location_id":         locationID,
			}).
			Executor().
			ScanVal(&available)
		if err != nil {
			return fmt.Errorf("failed to read available quantity: %w", err)
		}
		if !found {
			return custom_error.NewNotFoundError("stock", fmt.Sprintf("model %d at location %d", modelID, locationID))
		}
		return &custom_error.InsufficientStockError{Requested: qty, Available: available}
	}

	return nil
}

// ListLowStock returns every row at or below its alert threshold, graded by
// severity.
func (r *StockRepository) ListLowStock() ([]models.StockAlert, error) {
	query := r.getStockQuery().
		Where(goqu.L("s.quantity <= s.min_quantity")).
		Order(goqu.I("s.quantity").Asc())

	var flatStocks []models.FlatStockRecord
	err := query.Executor().ScanStructs(&flatStocks)
	if err != nil {
		return nil, fmt.Errorf("unable to select low stock rows: %s", err.Error())
	}

	alerts := []models.StockAlert{}
	for _, flatStock := range flatStocks {
		stock := flatStock.TransformToStock()
		alerts = append(alerts, models.StockAlert{
			Stock:    stock,
			Severity: stock.AlertSeverity(),
		})
	}

	return alerts, nil
}

func (r *StockRepository) getStockQuery() *goqu.SelectDataset {
	return r.repository.GoquDBWrapper.
		Select(
			goqu.I("s.id").As("stock_id"),
			goqu.I("s.quantity").As("quantity"),
			goqu.I("s.min_quantity").As("min_quantity"),
			goqu.I("m.id").As("model_id"),
			goqu.I("m.code").As("model_code"),
			goqu.I("m.name").As("model_name"),
			goqu.I("m.unit").As("model_unit"),
			goqu.I("l.id").As("location_id"),
			goqu.I("l.name").As("location_name"),
		).
		From(goqu.T("consumable_stock").As("s")).
		LeftJoin(
			goqu.T("consumable_models").As("m"),
			goqu.On(goqu.Ex{"s.consumable_model_id": goqu.I("m.id")}),
		).
		LeftJoin(
			goqu.T("locations").As("l"),
			goqu.On(goqu.Ex{"s.location_id": goqu.I("l.id")}),
		)
}
