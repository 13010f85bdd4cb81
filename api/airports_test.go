package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/katryana/airport-api/internal/domain"
	"github.com/katryana/airport-api/internal/repository"
)

// MockCatalogUseCase is a mock implementation of catalog.CatalogUseCase
type MockCatalogUseCase struct {
	mock.Mock
}

func (m *MockCatalogUseCase) ListAirports(ctx context.Context) ([]domain.Airport, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Airport), args.Error(1)
}

func (m *MockCatalogUseCase) GetAirport(ctx context.Context, id int64) (*domain.Airport, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Airport), args.Error(1)
}

func (m *MockCatalogUseCase) CreateAirport(ctx context.Context, airport *domain.Airport) error {
	args := m.Called(ctx, airport)
	return args.Error(0)
}

func (m *MockCatalogUseCase) UpdateAirport(ctx context.Context, airport *domain.Airport) error {
	args := m.Called(ctx, airport)
	return args.Error(0)
}

func (m *MockCatalogUseCase) ListAirplaneTypes(ctx context.Context) ([]domain.AirplaneType, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.AirplaneType), args.Error(1)
}

func (m *MockCatalogUseCase) GetAirplaneType(ctx context.Context, id int64) (*domain.AirplaneType, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AirplaneType), args.Error(1)
}

func (m *MockCatalogUseCase) CreateAirplaneType(ctx context.Context, airplaneType *domain.AirplaneType) error {
	args := m.Called(ctx, airplaneType)
	return args.Error(0)
}

func (m *MockCatalogUseCase) UpdateAirplaneType(ctx context.Context, airplaneType *domain.AirplaneType) error {
	args := m.Called(ctx, airplaneType)
	return args.Error(0)
}

func (m *MockCatalogUseCase) ListAirplanes(ctx context.Context) ([]domain.Airplane, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Airplane), args.Error(1)
}

func (m *MockCatalogUseCase) GetAirplane(ctx context.Context, id int64) (*domain.Airplane, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Airplane), args.Error(1)
}

func (m *MockCatalogUseCase) CreateAirplane(ctx context.Context, airplane *domain.Airplane) error {
	args := m.Called(ctx, airplane)
	return args.Error(0)
}

func (m *MockCatalogUseCase) UpdateAirplane(ctx context.Context, airplane *domain.Airplane) error {
	args := m.Called(ctx, airplane)
	return args.Error(0)
}

func (m *MockCatalogUseCase) UploadAirplaneImage(ctx context.Context, id int64, filename string, r io.Reader) (string, error) {
	args := m.Called(ctx, id, filename, r)
	return args.String(0), args.Error(1)
}

func (m *MockCatalogUseCase) ListCrews(ctx context.Context) ([]domain.Crew, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Crew), args.Error(1)
}

func (m *MockCatalogUseCase) GetCrew(ctx context.Context, id int64) (*domain.Crew, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Crew), args.Error(1)
}

func (m *MockCatalogUseCase) CreateCrew(ctx context.Context, crew *domain.Crew) error {
	args := m.Called(ctx, crew)
	return args.Error(0)
}

func (m *MockCatalogUseCase) UpdateCrew(ctx context.Context, crew *domain.Crew) error {
	args := m.Called(ctx, crew)
	return args.Error(0)
}

func (m *MockCatalogUseCase) ListRoutes(ctx context.Context, filter repository.RouteFilter) ([]domain.Route, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Route), args.Error(1)
}

func (m *MockCatalogUseCase) GetRoute(ctx context.Context, id int64) (*domain.Route, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Route), args.Error(1)
}

func (m *MockCatalogUseCase) CreateRoute(ctx context.Context, route *domain.Route) error {
	args := m.Called(ctx, route)
	return args.Error(0)
}

func TestAirportHandler_list(t *testing.T) {
	mockService := &MockCatalogUseCase{}
	handler := NewAirportHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/airports", nil)

	airports := []domain.Airport{
		{ID: 1, Name: "Heathrow", ClosestBigCity: "London"},
		{ID: 2, Name: "Boryspil", ClosestBigCity: "Kyiv"},
	}
	mockService.On("ListAirports", c.Request.Context()).Return(airports, nil)

	handler.list(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response []domain.Airport
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Len(t, response, 2)
	assert.Equal(t, "Heathrow", response[0].Name)
	mockService.AssertExpectations(t)
}

func TestAirportHandler_create(t *testing.T) {
	mockService := &MockCatalogUseCase{}
	handler := NewAirportHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body, _ := json.Marshal(map[string]string{"name": "Heathrow", "closest_big_city": "London"})
	c.Request = httptest.NewRequest("POST", "/airports", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	mockService.On("CreateAirport", c.Request.Context(), mock.AnythingOfType("*domain.Airport")).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.Airport).ID = 1
	}).Return(nil)

	handler.create(c)

	assert.Equal(t, http.StatusCreated, w.Code)

	var response domain.Airport
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, int64(1), response.ID)
	mockService.AssertExpectations(t)
}

func TestAirportHandler_create_missingFields(t *testing.T) {
	mockService := &MockCatalogUseCase{}
	handler := NewAirportHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body, _ := json.Marshal(map[string]string{"name": "Heathrow"})
	c.Request = httptest.NewRequest("POST", "/airports", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	handler.create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "CreateAirport")
}

func TestAirportHandler_create_duplicate(t *testing.T) {
	mockService := &MockCatalogUseCase{}
	handler := NewAirportHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body, _ := json.Marshal(map[string]string{"name": "Heathrow", "closest_big_city": "London"})
	c.Request = httptest.NewRequest("POST", "/airports", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	mockService.On("CreateAirport", c.Request.Context(), mock.Anything).
		Return(domain.NewConflictError(domain.NonFieldErrors, "The fields name, closest_big_city must make a unique set."))

	handler.create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response map[string][]string
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, []string{"The fields name, closest_big_city must make a unique set."}, response[domain.NonFieldErrors])
}

func TestAirportHandler_get_notFound(t *testing.T) {
	mockService := &MockCatalogUseCase{}
	handler := NewAirportHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "99"}}
	c.Request = httptest.NewRequest("GET", "/airports/99", nil)

	mockService.On("GetAirport", c.Request.Context(), int64(99)).Return(nil, domain.ErrNotFound)

	handler.get(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"detail": "Not found."}`, w.Body.String())
}
