package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/katryana/airport-api/internal/domain"
)

type OrderRepository interface {
	// Create persists the order and all its tickets atomically.
	Create(ctx context.Context, order *domain.Order) error
	ListByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.Order, int, error)
	GetByIDForUser(ctx context.Context, id, userID int64) (*domain.Order, error)
}

type PGOrderRepository struct {
	db *pgxpool.Pool
}

func NewOrderRepository(db *pgxpool.Pool) OrderRepository {
	return &PGOrderRepository{db: db}
}

// Create writes the order and its tickets in one transaction. Seat bounds are
// re-checked here against the airplane row fetched inside the transaction, so
// no write path can persist an out-of-range ticket, and the unique constraint
// turns a concurrent duplicate seat into a conflict instead of a double
// booking.
func (r *PGOrderRepository) Create(ctx context.Context, order *domain.Order) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := tx.QueryRow(ctx,
		`INSERT INTO orders (user_id) VALUES ($1) RETURNING id, created_at`, order.UserID,
	).Scan(&order.ID, &order.CreatedAt); err != nil {
		return err
	}

	for i := range order.Tickets {
		ticket := &order.Tickets[i]

		var airplane domain.Airplane
		err := tx.QueryRow(ctx, `
			SELECT a."rows", a.seats_in_row
			FROM flights f
			JOIN airplanes a ON a.id = f.airplane_id
			WHERE f.id=$1`, ticket.FlightID,
		).Scan(&airplane.Rows, &airplane.SeatsInRow)
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.NewValidationError("flight", fmt.Sprintf("Invalid pk \"%d\" - object does not exist.", ticket.FlightID))
		}
		if err != nil {
			return err
		}

		if err := domain.ValidateTicket(ticket.Row, ticket.Seat, airplane); err != nil {
			return err
		}

		if err := tx.QueryRow(ctx,
			`INSERT INTO tickets ("row", seat, flight_id, order_id) VALUES ($1, $2, $3, $4) RETURNING id`,
			ticket.Row, ticket.Seat, ticket.FlightID, order.ID,
		).Scan(&ticket.ID); err != nil {
			if isUniqueViolation(err) {
				return domain.NewConflictError(domain.NonFieldErrors, "The fields flight, row, seat must make a unique set.")
			}
			return err
		}
		ticket.OrderID = order.ID
	}

	return tx.Commit(ctx)
}

// ListByUser returns one page of the user's orders, newest first, with their
// tickets loaded, plus the total order count for pagination.
func (r *PGOrderRepository) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.Order, int, error) {
	var total int
	if err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM orders WHERE user_id=$1`, userID,
	).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, created_at
		FROM orders
		WHERE user_id=$1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	orders := make([]domain.Order, 0)
	ids := make([]int64, 0)
	for rows.Next() {
		var o domain.Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.CreatedAt); err != nil {
			return nil, 0, err
		}
		orders = append(orders, o)
		ids = append(ids, o.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	if err := r.attachTickets(ctx, orders, ids); err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

func (r *PGOrderRepository) GetByIDForUser(ctx context.Context, id, userID int64) (*domain.Order, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, user_id, created_at FROM orders WHERE id=$1 AND user_id=$2`, id, userID)
	var o domain.Order
	if err := row.Scan(&o.ID, &o.UserID, &o.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	orders := []domain.Order{o}
	if err := r.attachTickets(ctx, orders, []int64{o.ID}); err != nil {
		return nil, err
	}
	return &orders[0], nil
}

// attachTickets loads the tickets of the given orders together with enough of
// each flight to render list and detail views, including the per-flight
// availability recomputed at read time.
func (r *PGOrderRepository) attachTickets(ctx context.Context, orders []domain.Order, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}

	rows, err := r.db.Query(ctx, `
		SELECT t.id, t."row", t.seat, t.order_id,
		       f.id, f.departure_time, f.arrival_time, f.route_id, f.airplane_id,
		       a.name, a."rows", a.seats_in_row,
		       src.name, src.closest_big_city, dst.name, dst.closest_big_city,
		       a."rows" * a.seats_in_row - (SELECT COUNT(*) FROM tickets tt WHERE tt.flight_id = f.id) AS seats_available
		FROM tickets t
		JOIN flights f ON f.id = t.flight_id
		JOIN airplanes a ON a.id = f.airplane_id
		JOIN routes rt ON rt.id = f.route_id
		JOIN airports src ON src.id = rt.source_id
		JOIN airports dst ON dst.id = rt.destination_id
		WHERE t.order_id = ANY($1)
		ORDER BY t."row", t.seat`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	index := make(map[int64]int, len(orders))
	for i, o := range orders {
		index[o.ID] = i
	}

	for rows.Next() {
		var t domain.Ticket
		var f domain.Flight
		var a domain.Airplane
		var src, dst domain.Airport
		if err := rows.Scan(
			&t.ID, &t.Row, &t.Seat, &t.OrderID,
			&f.ID, &f.DepartureTime, &f.ArrivalTime, &f.RouteID, &f.AirplaneID,
			&a.Name, &a.Rows, &a.SeatsInRow,
			&src.Name, &src.ClosestBigCity, &dst.Name, &dst.ClosestBigCity,
			&f.SeatsAvailable,
		); err != nil {
			return err
		}
		a.ID = f.AirplaneID
		f.Airplane = &a
		f.Route = &domain.Route{ID: f.RouteID, Source: &src, Destination: &dst}
		t.FlightID = f.ID
		t.Flight = &f

		if pos, ok := index[t.OrderID]; ok {
			orders[pos].Tickets = append(orders[pos].Tickets, t)
		}
	}
	return rows.Err()
}

var _ OrderRepository = (*PGOrderRepository)(nil)
