package orders

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/katryana/airport-api/internal/domain"
	"github.com/katryana/airport-api/internal/kafka"
	"github.com/katryana/airport-api/internal/repository"
)

type OrderUseCase interface {
	Create(ctx context.Context, userID int64, userEmail string, input CreateOrderInput) (*domain.Order, error)
	List(ctx context.Context, userID int64, limit, offset int) ([]domain.Order, int, error)
	Get(ctx context.Context, userID, id int64) (*domain.Order, error)
}

// Cache provides the best-effort seat locks taken around the order
// transaction. The tickets unique constraint stays the authority.
type Cache interface {
	AcquireSeatLock(ctx context.Context, flightID int64, row, seat int, ttl time.Duration) (bool, error)
	ReleaseSeatLock(ctx context.Context, flightID int64, row, seat int) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type TicketSpec struct {
	FlightID int64 `json:"flight"`
	Row      int   `json:"row"`
	Seat     int   `json:"seat"`
}

type CreateOrderInput struct {
	Tickets []TicketSpec `json:"tickets"`
}

type OrderService struct {
	orders             repository.OrderRepository
	flights            repository.FlightRepository
	cache              Cache
	producer           Producer
	notificationsTopic string
	seatLockTTL        time.Duration
}

type OrderServiceOption func(*OrderService)

func WithNotificationsTopic(topic string) OrderServiceOption {
	return func(s *OrderService) {
		s.notificationsTopic = topic
	}
}

func NewOrderService(
	orders repository.OrderRepository,
	flights repository.FlightRepository,
	cache Cache,
	producer Producer,
	seatLockTTL time.Duration,
	opts ...OrderServiceOption,
) *OrderService {
	service := &OrderService{
		orders:      orders,
		flights:     flights,
		cache:       cache,
		producer:    producer,
		seatLockTTL: seatLockTTL,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// Create validates every ticket spec before anything is written, takes the
// advisory seat locks, then commits the order and all tickets in one
// transaction. The first violated field aborts the whole operation.
func (s *OrderService) Create(ctx context.Context, userID int64, userEmail string, input CreateOrderInput) (*domain.Order, error) {
	if len(input.Tickets) == 0 {
		return nil, domain.NewValidationError("tickets", "This list may not be empty.")
	}

	for _, spec := range input.Tickets {
		flight, err := s.flights.GetByID(ctx, spec.FlightID)
		if err != nil {
			if err == domain.ErrNotFound {
				return nil, domain.NewValidationError("flight", fmt.Sprintf("Invalid pk \"%d\" - object does not exist.", spec.FlightID))
			}
			return nil, err
		}
		if err := domain.ValidateTicket(spec.Row, spec.Seat, *flight.Airplane); err != nil {
			return nil, err
		}
	}

	locked, err := s.lockSeats(ctx, input.Tickets)
	if err != nil {
		return nil, err
	}
	defer s.releaseSeats(ctx, locked)

	order := &domain.Order{UserID: userID}
	for _, spec := range input.Tickets {
		order.Tickets = append(order.Tickets, domain.Ticket{
			Row:      spec.Row,
			Seat:     spec.Seat,
			FlightID: spec.FlightID,
		})
	}

	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}

	s.publishCreated(ctx, userEmail, order)
	return order, nil
}

func (s *OrderService) List(ctx context.Context, userID int64, limit, offset int) ([]domain.Order, int, error) {
	return s.orders.ListByUser(ctx, userID, limit, offset)
}

func (s *OrderService) Get(ctx context.Context, userID, id int64) (*domain.Order, error) {
	return s.orders.GetByIDForUser(ctx, id, userID)
}

func (s *OrderService) lockSeats(ctx context.Context, specs []TicketSpec) ([]TicketSpec, error) {
	if s.cache == nil {
		return nil, nil
	}

	locked := make([]TicketSpec, 0, len(specs))
	for _, spec := range specs {
		ok, err := s.cache.AcquireSeatLock(ctx, spec.FlightID, spec.Row, spec.Seat, s.seatLockTTL)
		if err != nil {
			s.releaseSeats(ctx, locked)
			return nil, err
		}
		if !ok {
			s.releaseSeats(ctx, locked)
			return nil, domain.NewConflictError(domain.NonFieldErrors, "The fields flight, row, seat must make a unique set.")
		}
		locked = append(locked, spec)
	}
	return locked, nil
}

func (s *OrderService) releaseSeats(ctx context.Context, locked []TicketSpec) {
	if s.cache == nil {
		return
	}
	for _, spec := range locked {
		_ = s.cache.ReleaseSeatLock(ctx, spec.FlightID, spec.Row, spec.Seat)
	}
}

func (s *OrderService) publishCreated(ctx context.Context, userEmail string, order *domain.Order) {
	if s.producer == nil || s.notificationsTopic == "" {
		return
	}

	event := kafka.OrderEvent{
		Type:      "order_created",
		OrderID:   order.ID,
		UserEmail: userEmail,
		CreatedAt: order.CreatedAt,
	}
	for _, t := range order.Tickets {
		event.Tickets = append(event.Tickets, kafka.TicketRef{FlightID: t.FlightID, Row: t.Row, Seat: t.Seat})
	}

	key := fmt.Sprintf("order-%d", order.ID)
	if err := s.producer.Publish(ctx, s.notificationsTopic, key, event); err != nil {
		log.Printf("publish order_created event for order %d: %v", order.ID, err)
	}
}

var _ OrderUseCase = (*OrderService)(nil)
