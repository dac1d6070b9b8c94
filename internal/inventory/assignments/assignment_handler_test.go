package assignments

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	custom_error "github.com/TaiHuynhPL/QLTBCNTT-sub000/pkg/errors"
	"github.com/TaiHuynhPL/QLTBCNTT-sub000/pkg/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockAssignmentService struct {
	mock.Mock
}

func (m *MockAssignmentService) CheckOut(req CheckOutRequest) (*models.Assignment, error) {
	args := m.Called(req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Assignment), args.Error(1)
}

func (m *MockAssignmentService) CheckIn(assignmentID int, returnDate models.Date) (*models.Assignment, error) {
	args := m.Called(assignmentID, returnDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Assignment), args.Error(1)
}

func (m *MockAssignmentService) GetAssetHistory(assetID int) ([]models.Assignment, error) {
	args := m.Called(assetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Assignment), args.Error(1)
}

func postContext(body []byte) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("userID", "1")
	c.Set("role", "staff")
	c.Request = httptest.NewRequest(http.MethodPost, "/assignments", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c, w
}

func TestCheckOutHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	holderID := 3
	payload := CheckOutRequest{
		AssetID:        5,
		HolderID:       &holderID,
		AssignmentDate: models.NewDate(2026, 9, 1),
	}

	t.Run("successful check out", func(t *testing.T) {
		mockService := new(MockAssignmentService)
		handler := NewHandler(mockService, nil)
		mockService.On("CheckOut", mock.Anything).Return(&models.Assignment{
			ID:             11,
			AssetID:        5,
			Target:         models.AssignmentTarget{Kind: models.AssignmentTargetHolder, ID: 3},
			AssignmentDate: models.NewDate(2026, 9, 1),
		}, nil).Once()

		body, _ := json.Marshal(payload)
		c, w := postContext(body)

		handler.CheckOut(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("already assigned maps to conflict", func(t *testing.T) {
		mockService := new(MockAssignmentService)
		handler := NewHandler(mockService, nil)
		mockService.On("CheckOut", mock.Anything).
			Return(nil, custom_error.NewConflictError("Asset EQ-LTP-1 is already assigned")).Once()

		body, _ := json.Marshal(payload)
		c, w := postContext(body)

		handler.CheckOut(c)

		assert.Equal(t, http.StatusConflict, w.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("invariant violation maps to bad request", func(t *testing.T) {
		mockService := new(MockAssignmentService)
		handler := NewHandler(mockService, nil)
		mockService.On("CheckOut", mock.Anything).
			Return(nil, custom_error.NewInvariantError("asset cannot be assigned to itself")).Once()

		body, _ := json.Marshal(payload)
		c, w := postContext(body)

		handler.CheckOut(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockService.AssertExpectations(t)
	})
}

func TestCheckInHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("successful check in", func(t *testing.T) {
		mockService := new(MockAssignmentService)
		handler := NewHandler(mockService, nil)
		returnDate := models.NewDate(2026, 9, 2)
		mockService.On("CheckIn", 11, returnDate).Return(&models.Assignment{
			ID:             11,
			AssetID:        5,
			Target:         models.AssignmentTarget{Kind: models.AssignmentTargetHolder, ID: 3},
			AssignmentDate: models.NewDate(2026, 9, 1),
			ReturnDate:     &returnDate,
		}, nil).Once()

		body, _ := json.Marshal(CheckInRequest{ReturnDate: returnDate})
		c, w := postContext(body)
		c.Params = gin.Params{{Key: "id", Value: "11"}}

		handler.CheckIn(c)

		assert.Equal(t, http.StatusOK, w.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("double return maps to conflict", func(t *testing.T) {
		mockService := new(MockAssignmentService)
		handler := NewHandler(mockService, nil)
		mockService.On("CheckIn", 11, mock.Anything).
			Return(nil, custom_error.NewConflictError("Assignment is already returned")).Once()

		body, _ := json.Marshal(CheckInRequest{ReturnDate: models.NewDate(2026, 9, 2)})
		c, w := postContext(body)
		c.Params = gin.Params{{Key: "id", Value: "11"}}

		handler.CheckIn(c)

		assert.Equal(t, http.StatusConflict, w.Code)
		mockService.AssertExpectations(t)
	})
}
