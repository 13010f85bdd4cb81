package catalog

import (
	"context"
	"io"
	"log"

	"github.com/katryana/airport-api/internal/domain"
	"github.com/katryana/airport-api/internal/repository"
	"github.com/katryana/airport-api/internal/storage"
)

// CatalogUseCase covers the admin-managed reference entities: airports,
// airplane types, airplanes, crews and routes.
type CatalogUseCase interface {
	ListAirports(ctx context.Context) ([]domain.Airport, error)
	GetAirport(ctx context.Context, id int64) (*domain.Airport, error)
	CreateAirport(ctx context.Context, airport *domain.Airport) error
	UpdateAirport(ctx context.Context, airport *domain.Airport) error

	ListAirplaneTypes(ctx context.Context) ([]domain.AirplaneType, error)
	GetAirplaneType(ctx context.Context, id int64) (*domain.AirplaneType, error)
	CreateAirplaneType(ctx context.Context, airplaneType *domain.AirplaneType) error
	UpdateAirplaneType(ctx context.Context, airplaneType *domain.AirplaneType) error

	ListAirplanes(ctx context.Context) ([]domain.Airplane, error)
	GetAirplane(ctx context.Context, id int64) (*domain.Airplane, error)
	CreateAirplane(ctx context.Context, airplane *domain.Airplane) error
	UpdateAirplane(ctx context.Context, airplane *domain.Airplane) error
	UploadAirplaneImage(ctx context.Context, id int64, filename string, r io.Reader) (string, error)

	ListCrews(ctx context.Context) ([]domain.Crew, error)
	GetCrew(ctx context.Context, id int64) (*domain.Crew, error)
	CreateCrew(ctx context.Context, crew *domain.Crew) error
	UpdateCrew(ctx context.Context, crew *domain.Crew) error

	ListRoutes(ctx context.Context, filter repository.RouteFilter) ([]domain.Route, error)
	GetRoute(ctx context.Context, id int64) (*domain.Route, error)
	CreateRoute(ctx context.Context, route *domain.Route) error
}

// Cache holds the airports reference list between writes.
type Cache interface {
	GetAirports(ctx context.Context) ([]domain.Airport, error)
	SetAirports(ctx context.Context, airports []domain.Airport) error
	InvalidateAirports(ctx context.Context) error
}

type CatalogService struct {
	airports  repository.AirportRepository
	types     repository.AirplaneTypeRepository
	airplanes repository.AirplaneRepository
	crews     repository.CrewRepository
	routes    repository.RouteRepository
	cache     Cache
	images    storage.ImageStore
}

func NewCatalogService(
	airports repository.AirportRepository,
	types repository.AirplaneTypeRepository,
	airplanes repository.AirplaneRepository,
	crews repository.CrewRepository,
	routes repository.RouteRepository,
	cache Cache,
	images storage.ImageStore,
) *CatalogService {
	return &CatalogService{
		airports:  airports,
		types:     types,
		airplanes: airplanes,
		crews:     crews,
		routes:    routes,
		cache:     cache,
		images:    images,
	}
}

func (s *CatalogService) ListAirports(ctx context.Context) ([]domain.Airport, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetAirports(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	airports, err := s.airports.List(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.SetAirports(ctx, airports)
	}
	return airports, nil
}

func (s *CatalogService) GetAirport(ctx context.Context, id int64) (*domain.Airport, error) {
	return s.airports.GetByID(ctx, id)
}

func (s *CatalogService) CreateAirport(ctx context.Context, airport *domain.Airport) error {
	if err := s.airports.Create(ctx, airport); err != nil {
		return err
	}
	s.dropAirportsCache(ctx)
	return nil
}

func (s *CatalogService) UpdateAirport(ctx context.Context, airport *domain.Airport) error {
	if err := s.airports.Update(ctx, airport); err != nil {
		return err
	}
	s.dropAirportsCache(ctx)
	return nil
}

func (s *CatalogService) dropAirportsCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateAirports(ctx); err != nil {
		log.Printf("invalidate airports cache: %v", err)
	}
}

func (s *CatalogService) ListAirplaneTypes(ctx context.Context) ([]domain.AirplaneType, error) {
	return s.types.List(ctx)
}

func (s *CatalogService) GetAirplaneType(ctx context.Context, id int64) (*domain.AirplaneType, error) {
	return s.types.GetByID(ctx, id)
}

func (s *CatalogService) CreateAirplaneType(ctx context.Context, airplaneType *domain.AirplaneType) error {
	return s.types.Create(ctx, airplaneType)
}

func (s *CatalogService) UpdateAirplaneType(ctx context.Context, airplaneType *domain.AirplaneType) error {
	return s.types.Update(ctx, airplaneType)
}

func (s *CatalogService) ListAirplanes(ctx context.Context) ([]domain.Airplane, error) {
	return s.airplanes.List(ctx)
}

func (s *CatalogService) GetAirplane(ctx context.Context, id int64) (*domain.Airplane, error) {
	return s.airplanes.GetByID(ctx, id)
}

func (s *CatalogService) CreateAirplane(ctx context.Context, airplane *domain.Airplane) error {
	return s.airplanes.Create(ctx, airplane)
}

func (s *CatalogService) UpdateAirplane(ctx context.Context, airplane *domain.Airplane) error {
	return s.airplanes.Update(ctx, airplane)
}

// UploadAirplaneImage stores the image and records its URL on the airplane.
func (s *CatalogService) UploadAirplaneImage(ctx context.Context, id int64, filename string, r io.Reader) (string, error) {
	if _, err := s.airplanes.GetByID(ctx, id); err != nil {
		return "", err
	}

	imageURL, err := s.images.Save(ctx, filename, r)
	if err != nil {
		return "", err
	}
	if err := s.airplanes.SetImageURL(ctx, id, imageURL); err != nil {
		return "", err
	}
	return imageURL, nil
}

func (s *CatalogService) ListCrews(ctx context.Context) ([]domain.Crew, error) {
	return s.crews.List(ctx)
}

func (s *CatalogService) GetCrew(ctx context.Context, id int64) (*domain.Crew, error) {
	return s.crews.GetByID(ctx, id)
}

func (s *CatalogService) CreateCrew(ctx context.Context, crew *domain.Crew) error {
	return s.crews.Create(ctx, crew)
}

func (s *CatalogService) UpdateCrew(ctx context.Context, crew *domain.Crew) error {
	return s.crews.Update(ctx, crew)
}

func (s *CatalogService) ListRoutes(ctx context.Context, filter repository.RouteFilter) ([]domain.Route, error) {
	return s.routes.List(ctx, filter)
}

func (s *CatalogService) GetRoute(ctx context.Context, id int64) (*domain.Route, error) {
	return s.routes.GetByID(ctx, id)
}

// CreateRoute checks the endpoint rule up front; the repository checks it
// again on the write path.
func (s *CatalogService) CreateRoute(ctx context.Context, route *domain.Route) error {
	if err := domain.ValidateRoute(route.SourceID, route.DestinationID); err != nil {
		return err
	}
	return s.routes.Create(ctx, route)
}

var _ CatalogUseCase = (*CatalogService)(nil)
