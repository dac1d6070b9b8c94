package orders

import (
	"errors"
	"fmt"

	"github.com/TaiHuynhPL/QLTBCNTT-sub000/internal/inventory/assets"
	custom_error "github.com/TaiHuynhPL/QLTBCNTT-sub000/pkg/errors"
	"github.com/TaiHuynhPL/QLTBCNTT-sub000/pkg/models"

	"github.com/doug-martin/goqu/v9"
)

// tagInsertAttempts bounds how often a colliding asset tag is regenerated
// before the whole fulfillment gives up.
const tagInsertAttempts = 3

// assetWriter, stockWriter and destinationResolver are the slices of the
// inventory repositories fulfillment writes through; tests substitute mocks.
type assetWriter interface {
	InsertAssetUnit(tx *goqu.TxDatabase, unit assets.AssetUnit) (int, error)
}

type stockWriter interface {
	Increase(tx *goqu.TxDatabase, modelID, locationID, qty int) (oldQuantity, newQuantity int, err error)
}

type destinationResolver interface {
	ResolveDestination(tx *goqu.TxDatabase, destinationID *int) (int, error)
}

// Fulfillment turns the lines of an approved order into inventory: one asset
// row per unit for asset model lines, a stock upsert for consumable model
// lines. It always runs inside the transaction that moves the order to
// completed, so a failing line rolls the entire stock-in back.
type Fulfillment struct {
	assetRepo assetWriter
	stockRepo stockWriter
	locations destinationResolver
	tags      *assets.TagGenerator
}

func NewFulfillment(assetRepo assetWriter, stockRepo stockWriter, locations destinationResolver, tags *assets.TagGenerator) *Fulfillment {
	return &Fulfillment{
		assetRepo: assetRepo,
		stockRepo: stockRepo,
		locations: locations,
		tags:      tags,
	}
}

func (f *Fulfillment) Execute(tx *goqu.TxDatabase, order *models.PurchaseOrder, lines []models.OrderLine, destinationID *int) (*models.StockInResult, error) {
	if tx == nil {
		return nil, fmt.Errorf("transaction is required for fulfillment")
	}

	locationID, err := f.locations.ResolveDestination(tx, destinationID)
	if err != nil {
		return nil, err
	}

	result := &models.StockInResult{
		AssetsCreated: []models.Asset{},
		StockUpdated:  []models.StockChange{},
	}

	for _, line := range lines {
		switch line.Target.Kind {
		case models.LineTargetAsset:
			created, err := f.createAssetUnits(tx, order, line, locationID)
			if err != nil {
				return nil, err
			}
			result.AssetsCreated = append(result.AssetsCreated, created...)
		case models.LineTargetConsumable:
			oldQty, newQty, err := f.stockRepo.Increase(tx, line.Target.ModelID, locationID, line.Quantity)
			if err != nil {
				return nil, err
			}
			result.StockUpdated = append(result.StockUpdated, models.StockChange{
				ConsumableModelID: line.Target.ModelID,
				ModelName:         line.ModelName,
				LocationID:        locationID,
				OldQuantity:       oldQty,
				NewQuantity:       newQty,
			})
		default:
			return nil, fmt.Errorf("order line %d has no target", line.ID)
		}
	}

	return result, nil
}

func (f *Fulfillment) createAssetUnits(tx *goqu.TxDatabase, order *models.PurchaseOrder, line models.OrderLine, locationID int) ([]models.Asset, error) {
	supplierID := order.Supplier.ID
	created := make([]models.Asset, 0, line.Quantity)

	for i := 0; i < line.Quantity; i++ {
		var (
			assetID int
			tag     string
			serial  string
			err     error
		)

		for attempt := 0; attempt < tagInsertAttempts; attempt++ {
			tag = f.tags.NextTag(line.ModelCode)
			serial = f.tags.NextSerial()

			assetID, err = f.assetRepo.InsertAssetUnit(tx, assets.AssetUnit{
				Tag:          tag,
				Serial:       serial,
				AssetModelID: line.Target.ModelID,
				LocationID:   locationID,
				SupplierID:   &supplierID,
				Cost:         line.UnitPrice,
				PurchaseDate: order.OrderDate,
			})
			if err == nil {
				break
			}

			var uniqueErr *custom_error.UniqueViolationError
			if !errors.As(err, &uniqueErr) {
				return nil, err
			}
		}
		if err != nil {
			return nil, custom_error.NewConflictError(
				fmt.Sprintf("could not generate a unique tag for model %s", line.ModelCode),
			)
		}

		purchaseDate := order.OrderDate
		cost := line.UnitPrice
		created = append(created, models.Asset{
			ID:           assetID,
			Tag:          tag,
			Serial:       &serial,
			Status:       models.AssetStatusInStock,
			PurchaseDate: &purchaseDate,
			Cost:         &cost,
			Model: models.AssetModel{
				ID:   line.Target.ModelID,
				Code: line.ModelCode,
				Name: line.ModelName,
			},
			Location: models.Location{ID: locationID},
			Supplier: &order.Supplier,
		})
	}

	return created, nil
}
