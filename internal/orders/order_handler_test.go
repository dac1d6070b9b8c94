package orders

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	custom_error "github.com/TaiHuynhPL/QLTBCNTT-sub000/pkg/errors"
	"github.com/TaiHuynhPL/QLTBCNTT-sub000/pkg/models"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) CreateOrder(request CreateOrderRequest, actor models.Actor) (*models.PurchaseOrder, error) {
	args := m.Called(request, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PurchaseOrder), args.Error(1)
}

func (m *MockOrderService) Transition(orderID int, target models.OrderStatus, actor models.Actor, notes *string, destinationID *int) (*models.PurchaseOrder, *models.StockInResult, error) {
	args := m.Called(orderID, target, actor, notes, destinationID)
	var order *models.PurchaseOrder
	var result *models.StockInResult
	if args.Get(0) != nil {
		order = args.Get(0).(*models.PurchaseOrder)
	}
	if args.Get(1) != nil {
		result = args.Get(1).(*models.StockInResult)
	}
	return order, result, args.Error(2)
}

func (m *MockOrderService) GetOrder(id int) (*models.PurchaseOrder, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PurchaseOrder), args.Error(1)
}

func (m *MockOrderService) GetOrders(status *models.OrderStatus) ([]models.PurchaseOrder, error) {
	args := m.Called(status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.PurchaseOrder), args.Error(1)
}

func (m *MockOrderService) DeleteOrder(id int) error {
	args := m.Called(id)
	return args.Error(0)
}

func setupTestContext(body []byte) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("userID", "1")
	c.Set("role", "manager")
	if body != nil {
		c.Request = httptest.NewRequest(http.MethodPost, "/orders", bytes.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")
	}
	return c, w
}

func sampleOrder(status models.OrderStatus) *models.PurchaseOrder {
	return &models.PurchaseOrder{
		ID:          7,
		Code:        "PO-202609010001",
		OrderDate:   models.NewDate(2026, 9, 1),
		Supplier:    models.Supplier{ID: 2, Name: "Viet Computer"},
		CreatedBy:   1,
		Status:      status,
		TotalAmount: decimal.NewFromInt(1200),
	}
}

func TestCreateOrderHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	assetModelID := 3
	validPayload := CreateOrderRequest{
		SupplierID: 2,
		Lines: []CreateOrderLineRequest{
			{AssetModelID: &assetModelID, Quantity: 2, UnitPrice: decimal.NewFromInt(600)},
		},
	}

	t.Run("successful creation", func(t *testing.T) {
		mockService := new(MockOrderService)
		handler := NewHandler(mockService, nil)
		mockService.On("CreateOrder", mock.Anything, mock.Anything).
			Return(sampleOrder(models.OrderStatusDraft), nil).Once()

		body, _ := json.Marshal(validPayload)
		c, w := setupTestContext(body)

		handler.CreateOrder(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("missing lines rejected by binding", func(t *testing.T) {
		mockService := new(MockOrderService)
		handler := NewHandler(mockService, nil)

		body, _ := json.Marshal(CreateOrderRequest{SupplierID: 2})
		c, w := setupTestContext(body)

		handler.CreateOrder(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockService.AssertNotCalled(t, "CreateOrder")
	})

	t.Run("validation error from service", func(t *testing.T) {
		mockService := new(MockOrderService)
		handler := NewHandler(mockService, nil)
		mockService.On("CreateOrder", mock.Anything, mock.Anything).
			Return(nil, custom_error.NewValidationError("line must reference an asset model or a consumable model", "lines")).Once()

		body, _ := json.Marshal(validPayload)
		c, w := setupTestContext(body)

		handler.CreateOrder(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockService.AssertExpectations(t)
	})
}

func TestTransitionOrderHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("completion returns stock in result", func(t *testing.T) {
		mockService := new(MockOrderService)
		handler := NewHandler(mockService, nil)

		result := &models.StockInResult{
			AssetsCreated: []models.Asset{{ID: 10, Tag: "EQ-LTP-ABC123"}},
			StockUpdated:  []models.StockChange{{ConsumableModelID: 4, LocationID: 1, OldQuantity: 3, NewQuantity: 13}},
		}
		mockService.On("Transition", 7, models.OrderStatusCompleted, mock.Anything, mock.Anything, mock.Anything).
			Return(sampleOrder(models.OrderStatusCompleted), result, nil).Once()

		body, _ := json.Marshal(TransitionRequest{Status: "completed"})
		c, w := setupTestContext(body)
		c.Params = gin.Params{{Key: "id", Value: "7"}}

		handler.TransitionOrder(c)

		assert.Equal(t, http.StatusOK, w.Code)

		var response map[string]json.RawMessage
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Contains(t, response, "order")
		assert.Contains(t, response, "stock_in_result")
		mockService.AssertExpectations(t)
	})

	t.Run("non completing transition omits stock in result", func(t *testing.T) {
		mockService := new(MockOrderService)
		handler := NewHandler(mockService, nil)
		mockService.On("Transition", 7, models.OrderStatusApproved, mock.Anything, mock.Anything, mock.Anything).
			Return(sampleOrder(models.OrderStatusApproved), nil, nil).Once()

		body, _ := json.Marshal(TransitionRequest{Status: "approved"})
		c, w := setupTestContext(body)
		c.Params = gin.Params{{Key: "id", Value: "7"}}

		handler.TransitionOrder(c)

		assert.Equal(t, http.StatusOK, w.Code)

		var response map[string]json.RawMessage
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.NotContains(t, response, "stock_in_result")
		mockService.AssertExpectations(t)
	})

	t.Run("unknown status rejected", func(t *testing.T) {
		mockService := new(MockOrderService)
		handler := NewHandler(mockService, nil)

		body, _ := json.Marshal(TransitionRequest{Status: "shipped"})
		c, w := setupTestContext(body)
		c.Params = gin.Params{{Key: "id", Value: "7"}}

		handler.TransitionOrder(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockService.AssertNotCalled(t, "Transition")
	})

	t.Run("illegal edge maps to bad request", func(t *testing.T) {
		mockService := new(MockOrderService)
		handler := NewHandler(mockService, nil)
		mockService.On("Transition", 7, models.OrderStatusCompleted, mock.Anything, mock.Anything, mock.Anything).
			Return(nil, nil, &custom_error.InvalidTransitionError{From: "draft", To: "completed"}).Once()

		body, _ := json.Marshal(TransitionRequest{Status: "completed"})
		c, w := setupTestContext(body)
		c.Params = gin.Params{{Key: "id", Value: "7"}}

		handler.TransitionOrder(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("forbidden role maps to 403", func(t *testing.T) {
		mockService := new(MockOrderService)
		handler := NewHandler(mockService, nil)
		mockService.On("Transition", 7, models.OrderStatusApproved, mock.Anything, mock.Anything, mock.Anything).
			Return(nil, nil, custom_error.NewForbiddenError("role 'staff' is not allowed to move an order from 'pending_approval' to 'approved'")).Once()

		body, _ := json.Marshal(TransitionRequest{Status: "approved"})
		c, w := setupTestContext(body)
		c.Params = gin.Params{{Key: "id", Value: "7"}}

		handler.TransitionOrder(c)

		assert.Equal(t, http.StatusForbidden, w.Code)
		mockService.AssertExpectations(t)
	})
}

func TestDeleteOrderHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("terminal order maps to conflict", func(t *testing.T) {
		mockService := new(MockOrderService)
		handler := NewHandler(mockService, nil)
		mockService.On("DeleteOrder", 7).
			Return(custom_error.NewConflictError("Order PO-202609010001 is completed and cannot be deleted")).Once()

		c, w := setupTestContext(nil)
		c.Params = gin.Params{{Key: "id", Value: "7"}}

		handler.DeleteOrder(c)

		assert.Equal(t, http.StatusConflict, w.Code)
		mockService.AssertExpectations(t)
	})
}
