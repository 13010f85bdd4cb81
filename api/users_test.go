package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/katryana/airport-api/internal/domain"
)

// MockUserUseCase is a mock implementation of users.UserUseCase
type MockUserUseCase struct {
	mock.Mock
}

func (m *MockUserUseCase) Register(ctx context.Context, email, password string) (*domain.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserUseCase) Login(ctx context.Context, email, password string) (string, error) {
	args := m.Called(ctx, email, password)
	return args.String(0), args.Error(1)
}

func TestUserHandler_register(t *testing.T) {
	mockService := &MockUserUseCase{}
	handler := NewUserHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body := `{"email":"user@example.com","password":"hunter22"}`
	c.Request = httptest.NewRequest("POST", "/register", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	mockService.On("Register", c.Request.Context(), "user@example.com", "hunter22").
		Return(&domain.User{ID: 1, Email: "user@example.com"}, nil)

	handler.register(c)

	assert.Equal(t, http.StatusCreated, w.Code)

	var response userView
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, int64(1), response.ID)
	assert.False(t, response.IsStaff)
	mockService.AssertExpectations(t)
}

func TestUserHandler_register_shortPassword(t *testing.T) {
	mockService := &MockUserUseCase{}
	handler := NewUserHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body := `{"email":"user@example.com","password":"abc"}`
	c.Request = httptest.NewRequest("POST", "/register", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	handler.register(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "Register")
}

func TestUserHandler_register_duplicateEmail(t *testing.T) {
	mockService := &MockUserUseCase{}
	handler := NewUserHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body := `{"email":"user@example.com","password":"hunter22"}`
	c.Request = httptest.NewRequest("POST", "/register", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	mockService.On("Register", c.Request.Context(), "user@example.com", "hunter22").
		Return(nil, domain.NewConflictError("email", "user with this email already exists."))

	handler.register(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response map[string][]string
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, []string{"user with this email already exists."}, response["email"])
}

func TestUserHandler_token(t *testing.T) {
	mockService := &MockUserUseCase{}
	handler := NewUserHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body := `{"email":"user@example.com","password":"hunter22"}`
	c.Request = httptest.NewRequest("POST", "/token", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	mockService.On("Login", c.Request.Context(), "user@example.com", "hunter22").Return("jwt-token", nil)

	handler.token(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"token": "jwt-token"}`, w.Body.String())
}

func TestUserHandler_token_badCredentials(t *testing.T) {
	mockService := &MockUserUseCase{}
	handler := NewUserHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body := `{"email":"user@example.com","password":"wrongpw"}`
	c.Request = httptest.NewRequest("POST", "/token", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	mockService.On("Login", c.Request.Context(), "user@example.com", "wrongpw").Return("", domain.ErrUnauthorized)

	handler.token(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
