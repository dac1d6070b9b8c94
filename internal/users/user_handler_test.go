package users

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	custom_error "github.com/TaiHuynhPL/QLTBCNTT-sub000/pkg/errors"
	"github.com/TaiHuynhPL/QLTBCNTT-sub000/pkg/models"
	"github.com/TaiHuynhPL/QLTBCNTT-sub000/pkg/roles"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) PersistUser(req models.CreateUserRequest, hashedPassword []byte) error {
	args := m.Called(req, hashedPassword)
	return args.Error(0)
}

func (m *MockUserRepository) GetUser(id int) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetUsers() ([]models.User, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserRepository) UpdateUser(id int, changes *models.UserChanges) error {
	args := m.Called(id, changes)
	return args.Error(0)
}

func (m *MockUserRepository) DeleteUser(id int) error {
	args := m.Called(id)
	return args.Error(0)
}

func setupTestContext(role string, body []byte) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("userID", "1")
	c.Set("role", role)
	if body != nil {
		c.Request = httptest.NewRequest(http.MethodPost, "/users", bytes.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")
	}
	return c, w
}

func TestRegisterUser(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		payload        models.CreateUserRequest
		setupMock      func(m *MockUserRepository)
		expectedStatus int
	}{
		{
			name: "successful registration",
			payload: models.CreateUserRequest{
				Username: "thanh.ng",
				Password: "password123",
				Fullname: "Nguyen Thanh",
				Role:     "staff",
			},
			setupMock: func(m *MockUserRepository) {
				m.On("PersistUser", mock.Anything, mock.Anything).Return(nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "unknown role",
			payload: models.CreateUserRequest{
				Username: "thanh.ng",
				Password: "password123",
				Role:     "superuser",
			},
			setupMock:      func(m *MockUserRepository) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "short password",
			payload: models.CreateUserRequest{
				Username: "thanh.ng",
				Password: "abc",
				Role:     "staff",
			},
			setupMock:      func(m *MockUserRepository) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "duplicate username",
			payload: models.CreateUserRequest{
				Username: "thanh.ng",
				Password: "password123",
				Role:     "staff",
			},
			setupMock: func(m *MockUserRepository) {
				m.On("PersistUser", mock.Anything, mock.Anything).
					Return(custom_error.WrapDBError("Username is already taken", "23505"))
			},
			expectedStatus: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)
			handler := NewHandler(mockRepo)

			body, _ := json.Marshal(tt.payload)
			c, w := setupTestContext("admin", body)

			handler.RegisterUser(c)

			assert.Equal(t, tt.expectedStatus, w.Code)
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestGetUserSelfAccess(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("staff can read own record", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("GetUser", 1).Return(&models.User{ID: 1, Username: "thanh.ng", Role: roles.Staff}, nil)
		handler := NewHandler(mockRepo)

		c, w := setupTestContext("staff", nil)
		c.Params = gin.Params{{Key: "id", Value: "1"}}

		handler.GetUser(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("staff cannot read another user", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		handler := NewHandler(mockRepo)

		c, w := setupTestContext("staff", nil)
		c.Params = gin.Params{{Key: "id", Value: "2"}}

		handler.GetUser(c)

		assert.Equal(t, http.StatusForbidden, w.Code)
		mockRepo.AssertNotCalled(t, "GetUser")
	})

	t.Run("manager can read another user", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("GetUser", 2).Return(&models.User{ID: 2, Username: "lan.tr", Role: roles.Staff}, nil)
		handler := NewHandler(mockRepo)

		c, w := setupTestContext("manager", nil)
		c.Params = gin.Params{{Key: "id", Value: "2"}}

		handler.GetUser(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestUpdateUserNoChanges(t *testing.T) {
	gin.SetMode(gin.TestMode)

	mockRepo := new(MockUserRepository)
	mockRepo.On("GetUser", 2).Return(&models.User{ID: 2, Username: "lan.tr", Fullname: "Tran Lan", Role: roles.Staff}, nil)
	handler := NewHandler(mockRepo)

	body, _ := json.Marshal(models.UpdateUserRequest{})
	c, w := setupTestContext("admin", body)
	c.Params = gin.Params{{Key: "id", Value: "2"}}

	handler.UpdateUser(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockRepo.AssertNotCalled(t, "UpdateUser")
}
