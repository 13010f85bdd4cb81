package flights

import (
	"context"

	"github.com/katryana/airport-api/internal/domain"
	"github.com/katryana/airport-api/internal/repository"
)

type FlightUseCase interface {
	List(ctx context.Context, filter repository.FlightFilter) ([]domain.Flight, error)
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)
	Create(ctx context.Context, flight *domain.Flight) error
	Update(ctx context.Context, flight *domain.Flight) error
}

type FlightService struct {
	repo repository.FlightRepository
}

func NewFlightService(repo repository.FlightRepository) *FlightService {
	return &FlightService{repo: repo}
}

// List never caches: seats_available must reflect every committed sale.
func (s *FlightService) List(ctx context.Context, filter repository.FlightFilter) ([]domain.Flight, error) {
	return s.repo.List(ctx, filter)
}

func (s *FlightService) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	return s.repo.GetByID(ctx, id)
}

// Create accepts arrival before departure; the source system never rejected
// it and the rendered duration simply goes negative.
func (s *FlightService) Create(ctx context.Context, flight *domain.Flight) error {
	return s.repo.Create(ctx, flight)
}

func (s *FlightService) Update(ctx context.Context, flight *domain.Flight) error {
	return s.repo.Update(ctx, flight)
}

var _ FlightUseCase = (*FlightService)(nil)
