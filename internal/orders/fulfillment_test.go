package orders

import (
	"errors"
	"testing"

	"github.com/TaiHuynhPL/QLTBCNTT-sub000/internal/inventory/assets"
	custom_error "github.com/TaiHuynhPL/QLTBCNTT-sub000/pkg/errors"
	"github.com/TaiHuynhPL/QLTBCNTT-sub000/pkg/models"

	"github.com/doug-martin/goqu/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockAssetWriter struct {
	mock.Mock
}

func (m *MockAssetWriter) InsertAssetUnit(tx *goqu.TxDatabase, unit assets.AssetUnit) (int, error) {
	args := m.Called(tx, unit)
	return args.Int(0), args.Error(1)
}

type MockStockWriter struct {
	mock.Mock
}

func (m *MockStockWriter) Increase(tx *goqu.TxDatabase, modelID, locationID, qty int) (int, int, error) {
	args := m.Called(tx, modelID, locationID, qty)
	return args.Int(0), args.Int(1), args.Error(2)
}

type MockDestinationResolver struct {
	mock.Mock
}

func (m *MockDestinationResolver) ResolveDestination(tx *goqu.TxDatabase, destinationID *int) (int, error) {
	args := m.Called(tx, destinationID)
	return args.Int(0), args.Error(1)
}

func newTestFulfillment(t *testing.T) (*Fulfillment, *MockAssetWriter, *MockStockWriter, *MockDestinationResolver) {
	t.Helper()

	tags, err := assets.NewTagGenerator(1)
	assert.NoError(t, err)

	assetWriter := new(MockAssetWriter)
	stockWriter := new(MockStockWriter)
	resolver := new(MockDestinationResolver)

	return NewFulfillment(assetWriter, stockWriter, resolver, tags), assetWriter, stockWriter, resolver
}

func approvedOrder() *models.PurchaseOrder {
	return &models.PurchaseOrder{
		ID:        12,
		Code:      "PO-202609010001",
		OrderDate: models.NewDate(2026, 9, 1),
		Supplier:  models.Supplier{ID: 5, Name: "CMC Distribution"},
		Status:    models.OrderStatusApproved,
	}
}

func assetLine(quantity int) models.OrderLine {
	return models.OrderLine{
		ID:        1,
		Target:    models.LineTarget{Kind: models.LineTargetAsset, ModelID: 7},
		ModelCode: "LTP",
		ModelName: "Laptop Dell Latitude",
		Quantity:  quantity,
		UnitPrice: decimal.NewFromInt(1000000),
	}
}

func TestExecuteCreatesOneAssetPerUnit(t *testing.T) {
	fulfillment, assetWriter, _, resolver := newTestFulfillment(t)
	tx := goqu.NewTx("postgres", nil)
	order := approvedOrder()

	resolver.On("ResolveDestination", tx, (*int)(nil)).Return(4, nil)
	for id := 101; id <= 103; id++ {
		assetWriter.On("InsertAssetUnit", tx, mock.MatchedBy(func(unit assets.AssetUnit) bool {
			return unit.AssetModelID == 7 && unit.LocationID == 4 && unit.SupplierID != nil && *unit.SupplierID == 5
		})).Return(id, nil).Once()
	}

	result, err := fulfillment.Execute(tx, order, []models.OrderLine{assetLine(3)}, nil)

	assert.NoError(t, err)
	assert.Len(t, result.AssetsCreated, 3)
	assert.Empty(t, result.StockUpdated)

	seenTags := map[string]bool{}
	for _, created := range result.AssetsCreated {
		assert.Equal(t, models.AssetStatusInStock, created.Status)
		assert.Equal(t, order.Supplier.ID, created.Supplier.ID)
		assert.False(t, seenTags[created.Tag])
		seenTags[created.Tag] = true
	}
	assetWriter.AssertNumberOfCalls(t, "InsertAssetUnit", 3)
}

func TestExecuteIncreasesStockPerConsumableLine(t *testing.T) {
	fulfillment, _, stockWriter, resolver := newTestFulfillment(t)
	tx := goqu.NewTx("postgres", nil)
	destination := 9

	line := models.OrderLine{
		ID:        2,
		Target:    models.LineTarget{Kind: models.LineTargetConsumable, ModelID: 3},
		ModelName: "Toner HP 85A",
		Quantity:  20,
	}

	resolver.On("ResolveDestination", tx, &destination).Return(9, nil)
	stockWriter.On("Increase", tx, 3, 9, 20).Return(50, 70, nil)

	result, err := fulfillment.Execute(tx, approvedOrder(), []models.OrderLine{line}, &destination)

	assert.NoError(t, err)
	assert.Empty(t, result.AssetsCreated)
	assert.Len(t, result.StockUpdated, 1)

	change := result.StockUpdated[0]
	assert.Equal(t, 3, change.ConsumableModelID)
	assert.Equal(t, "Toner HP 85A", change.ModelName)
	assert.Equal(t, 9, change.LocationID)
	assert.Equal(t, 50, change.OldQuantity)
	assert.Equal(t, 70, change.NewQuantity)
}

func TestExecuteRetriesCollidingTag(t *testing.T) {
	fulfillment, assetWriter, _, resolver := newTestFulfillment(t)
	tx := goqu.NewTx("postgres", nil)
	duplicate := custom_error.WrapDBError("Asset tag already exists", "23505")

	resolver.On("ResolveDestination", tx, (*int)(nil)).Return(4, nil)
	assetWriter.On("InsertAssetUnit", tx, mock.Anything).Return(0, duplicate).Once()
	assetWriter.On("InsertAssetUnit", tx, mock.Anything).Return(55, nil).Once()

	result, err := fulfillment.Execute(tx, approvedOrder(), []models.OrderLine{assetLine(1)}, nil)

	assert.NoError(t, err)
	assert.Len(t, result.AssetsCreated, 1)
	assetWriter.AssertNumberOfCalls(t, "InsertAssetUnit", 2)
}

func TestExecuteGivesUpAfterRepeatedTagCollisions(t *testing.T) {
	fulfillment, assetWriter, _, resolver := newTestFulfillment(t)
	tx := goqu.NewTx("postgres", nil)
	duplicate := custom_error.WrapDBError("Asset tag already exists", "23505")

	resolver.On("ResolveDestination", tx, (*int)(nil)).Return(4, nil)
	assetWriter.On("InsertAssetUnit", tx, mock.Anything).Return(0, duplicate)

	result, err := fulfillment.Execute(tx, approvedOrder(), []models.OrderLine{assetLine(1)}, nil)

	assert.Nil(t, result)
	var conflictErr *custom_error.ConflictError
	assert.ErrorAs(t, err, &conflictErr)
	assetWriter.AssertNumberOfCalls(t, "InsertAssetUnit", tagInsertAttempts)
}

func TestExecuteAbortsOnNonDuplicateInsertError(t *testing.T) {
	fulfillment, assetWriter, _, resolver := newTestFulfillment(t)
	tx := goqu.NewTx("postgres", nil)

	resolver.On("ResolveDestination", tx, (*int)(nil)).Return(4, nil)
	assetWriter.On("InsertAssetUnit", tx, mock.Anything).Return(0, errors.New("connection reset"))

	result, err := fulfillment.Execute(tx, approvedOrder(), []models.OrderLine{assetLine(2)}, nil)

	assert.Nil(t, result)
	assert.Error(t, err)
	assetWriter.AssertNumberOfCalls(t, "InsertAssetUnit", 1)
}

func TestExecuteFailsWithoutDestination(t *testing.T) {
	fulfillment, assetWriter, stockWriter, resolver := newTestFulfillment(t)
	tx := goqu.NewTx("postgres", nil)

	resolver.On("ResolveDestination", tx, (*int)(nil)).
		Return(0, custom_error.NewInvariantError("no location exists to receive the delivery"))

	result, err := fulfillment.Execute(tx, approvedOrder(), []models.OrderLine{assetLine(1)}, nil)

	assert.Nil(t, result)
	var invariantErr *custom_error.InvariantError
	assert.ErrorAs(t, err, &invariantErr)
	assetWriter.AssertNotCalled(t, "InsertAssetUnit", mock.Anything, mock.Anything)
	stockWriter.AssertNotCalled(t, "Increase", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
