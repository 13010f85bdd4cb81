package catalog

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/katryana/airport-api/internal/domain"
	"github.com/katryana/airport-api/internal/repository"
)

// MockAirportRepository is a mock implementation of repository.AirportRepository
type MockAirportRepository struct {
	mock.Mock
}

func (m *MockAirportRepository) List(ctx context.Context) ([]domain.Airport, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Airport), args.Error(1)
}

func (m *MockAirportRepository) GetByID(ctx context.Context, id int64) (*domain.Airport, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Airport), args.Error(1)
}

func (m *MockAirportRepository) Create(ctx context.Context, airport *domain.Airport) error {
	args := m.Called(ctx, airport)
	return args.Error(0)
}

func (m *MockAirportRepository) Update(ctx context.Context, airport *domain.Airport) error {
	args := m.Called(ctx, airport)
	return args.Error(0)
}

// MockAirplaneRepository is a mock implementation of repository.AirplaneRepository
type MockAirplaneRepository struct {
	mock.Mock
}

func (m *MockAirplaneRepository) List(ctx context.Context) ([]domain.Airplane, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Airplane), args.Error(1)
}

func (m *MockAirplaneRepository) GetByID(ctx context.Context, id int64) (*domain.Airplane, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Airplane), args.Error(1)
}

func (m *MockAirplaneRepository) Create(ctx context.Context, airplane *domain.Airplane) error {
	args := m.Called(ctx, airplane)
	return args.Error(0)
}

func (m *MockAirplaneRepository) Update(ctx context.Context, airplane *domain.Airplane) error {
	args := m.Called(ctx, airplane)
	return args.Error(0)
}

func (m *MockAirplaneRepository) SetImageURL(ctx context.Context, id int64, imageURL string) error {
	args := m.Called(ctx, id, imageURL)
	return args.Error(0)
}

// MockRouteRepository is a mock implementation of repository.RouteRepository
type MockRouteRepository struct {
	mock.Mock
}

func (m *MockRouteRepository) List(ctx context.Context, filter repository.RouteFilter) ([]domain.Route, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Route), args.Error(1)
}

func (m *MockRouteRepository) GetByID(ctx context.Context, id int64) (*domain.Route, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Route), args.Error(1)
}

func (m *MockRouteRepository) Create(ctx context.Context, route *domain.Route) error {
	args := m.Called(ctx, route)
	return args.Error(0)
}

// MockAirportsCache is a mock implementation of Cache
type MockAirportsCache struct {
	mock.Mock
}

func (m *MockAirportsCache) GetAirports(ctx context.Context) ([]domain.Airport, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Airport), args.Error(1)
}

func (m *MockAirportsCache) SetAirports(ctx context.Context, airports []domain.Airport) error {
	args := m.Called(ctx, airports)
	return args.Error(0)
}

func (m *MockAirportsCache) InvalidateAirports(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockImageStore is a mock implementation of storage.ImageStore
type MockImageStore struct {
	mock.Mock
}

func (m *MockImageStore) Save(ctx context.Context, filename string, r io.Reader) (string, error) {
	args := m.Called(ctx, filename, r)
	return args.String(0), args.Error(1)
}

func TestCatalogService_ListAirports_cacheMissThenFill(t *testing.T) {
	airportRepo := &MockAirportRepository{}
	cache := &MockAirportsCache{}
	service := NewCatalogService(airportRepo, nil, nil, nil, nil, cache, nil)

	ctx := context.Background()
	airports := []domain.Airport{{ID: 1, Name: "Heathrow", ClosestBigCity: "London"}}

	cache.On("GetAirports", ctx).Return(nil, nil)
	airportRepo.On("List", ctx).Return(airports, nil)
	cache.On("SetAirports", ctx, airports).Return(nil)

	got, err := service.ListAirports(ctx)
	assert.NoError(t, err)
	assert.Equal(t, airports, got)
	cache.AssertExpectations(t)
}

func TestCatalogService_ListAirports_cacheHitSkipsRepo(t *testing.T) {
	airportRepo := &MockAirportRepository{}
	cache := &MockAirportsCache{}
	service := NewCatalogService(airportRepo, nil, nil, nil, nil, cache, nil)

	ctx := context.Background()
	cached := []domain.Airport{{ID: 1, Name: "Heathrow"}}
	cache.On("GetAirports", ctx).Return(cached, nil)

	got, err := service.ListAirports(ctx)
	assert.NoError(t, err)
	assert.Equal(t, cached, got)
	airportRepo.AssertNotCalled(t, "List")
}

func TestCatalogService_CreateAirport_invalidatesCache(t *testing.T) {
	airportRepo := &MockAirportRepository{}
	cache := &MockAirportsCache{}
	service := NewCatalogService(airportRepo, nil, nil, nil, nil, cache, nil)

	ctx := context.Background()
	airport := &domain.Airport{Name: "Heathrow", ClosestBigCity: "London"}
	airportRepo.On("Create", ctx, airport).Return(nil)
	cache.On("InvalidateAirports", ctx).Return(nil)

	assert.NoError(t, service.CreateAirport(ctx, airport))
	cache.AssertExpectations(t)
}

func TestCatalogService_CreateRoute_sameEndpoints(t *testing.T) {
	routeRepo := &MockRouteRepository{}
	service := NewCatalogService(nil, nil, nil, nil, routeRepo, nil, nil)

	err := service.CreateRoute(context.Background(), &domain.Route{SourceID: 3, DestinationID: 3})

	ve, ok := domain.AsValidationError(err)
	assert.True(t, ok)
	assert.Equal(t, []string{"Source and destination airports cannot be the same."}, ve.Fields[domain.NonFieldErrors])
	routeRepo.AssertNotCalled(t, "Create")
}

func TestCatalogService_UploadAirplaneImage(t *testing.T) {
	airplaneRepo := &MockAirplaneRepository{}
	images := &MockImageStore{}
	service := NewCatalogService(nil, nil, airplaneRepo, nil, nil, nil, images)

	ctx := context.Background()
	airplaneRepo.On("GetByID", ctx, int64(4)).Return(&domain.Airplane{ID: 4}, nil)
	images.On("Save", ctx, "plane.png", mock.Anything).Return("http://img/plane.png", nil)
	airplaneRepo.On("SetImageURL", ctx, int64(4), "http://img/plane.png").Return(nil)

	url, err := service.UploadAirplaneImage(ctx, 4, "plane.png", strings.NewReader("png"))
	assert.NoError(t, err)
	assert.Equal(t, "http://img/plane.png", url)
	airplaneRepo.AssertExpectations(t)
}

func TestCatalogService_UploadAirplaneImage_unknownAirplane(t *testing.T) {
	airplaneRepo := &MockAirplaneRepository{}
	images := &MockImageStore{}
	service := NewCatalogService(nil, nil, airplaneRepo, nil, nil, nil, images)

	ctx := context.Background()
	airplaneRepo.On("GetByID", ctx, int64(99)).Return(nil, domain.ErrNotFound)

	_, err := service.UploadAirplaneImage(ctx, 99, "plane.png", strings.NewReader("png"))
	assert.ErrorIs(t, err, domain.ErrNotFound)
	images.AssertNotCalled(t, "Save")
}
