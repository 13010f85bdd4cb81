package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/katryana/airport-api/internal/domain"
)

// FlightFilter narrows the flight list. Dates match the departure/arrival
// calendar day exactly; airport names match case-insensitively on substring.
// All present filters combine with AND.
type FlightFilter struct {
	DepartureDate *time.Time
	ArrivalDate   *time.Time
	Source        string
	Destination   string
}

type FlightRepository interface {
	List(ctx context.Context, filter FlightFilter) ([]domain.Flight, error)
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)
	Create(ctx context.Context, flight *domain.Flight) error
	Update(ctx context.Context, flight *domain.Flight) error
}

type PGFlightRepository struct {
	db *pgxpool.Pool
}

func NewFlightRepository(db *pgxpool.Pool) FlightRepository {
	return &PGFlightRepository{db: db}
}

// List computes seats_available on every call: capacity minus sold tickets.
// The value is never stored, so concurrent sales are always reflected.
func (r *PGFlightRepository) List(ctx context.Context, filter FlightFilter) ([]domain.Flight, error) {
	query := `
		SELECT f.id, f.departure_time, f.arrival_time,
		       rt.id, src.id, src.name, src.closest_big_city,
		       dst.id, dst.name, dst.closest_big_city,
		       a.id, a.name, a."rows", a.seats_in_row,
		       a."rows" * a.seats_in_row - COUNT(t.id) AS seats_available
		FROM flights f
		JOIN routes rt ON rt.id = f.route_id
		JOIN airports src ON src.id = rt.source_id
		JOIN airports dst ON dst.id = rt.destination_id
		JOIN airplanes a ON a.id = f.airplane_id
		LEFT JOIN tickets t ON t.flight_id = f.id
		WHERE 1=1`
	args := make([]interface{}, 0, 4)

	if filter.DepartureDate != nil {
		args = append(args, filter.DepartureDate.Format("2006-01-02"))
		query += fmt.Sprintf(` AND f.departure_time::date = $%d`, len(args))
	}
	if filter.ArrivalDate != nil {
		args = append(args, filter.ArrivalDate.Format("2006-01-02"))
		query += fmt.Sprintf(` AND f.arrival_time::date = $%d`, len(args))
	}
	if filter.Source != "" {
		args = append(args, "%"+filter.Source+"%")
		query += fmt.Sprintf(` AND src.name ILIKE $%d`, len(args))
	}
	if filter.Destination != "" {
		args = append(args, "%"+filter.Destination+"%")
		query += fmt.Sprintf(` AND dst.name ILIKE $%d`, len(args))
	}

	// GROUP BY both aggregates the ticket count and deduplicates the joins.
	query += `
		GROUP BY f.id, rt.id, src.id, dst.id, a.id
		ORDER BY f.departure_time`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	flights := make([]domain.Flight, 0)
	for rows.Next() {
		var f domain.Flight
		var rt domain.Route
		var src, dst domain.Airport
		var a domain.Airplane
		if err := rows.Scan(
			&f.ID, &f.DepartureTime, &f.ArrivalTime,
			&rt.ID, &src.ID, &src.Name, &src.ClosestBigCity,
			&dst.ID, &dst.Name, &dst.ClosestBigCity,
			&a.ID, &a.Name, &a.Rows, &a.SeatsInRow,
			&f.SeatsAvailable,
		); err != nil {
			return nil, err
		}
		rt.SourceID, rt.DestinationID = src.ID, dst.ID
		rt.Source, rt.Destination = &src, &dst
		f.RouteID, f.AirplaneID = rt.ID, a.ID
		f.Route, f.Airplane = &rt, &a
		flights = append(flights, f)
	}
	return flights, rows.Err()
}

// GetByID returns the flight with its route, airplane, crew names and the
// literal set of taken (row, seat) pairs.
func (r *PGFlightRepository) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	row := r.db.QueryRow(ctx, `
		SELECT f.id, f.departure_time, f.arrival_time,
		       rt.id, rt.distance, src.id, src.name, src.closest_big_city,
		       dst.id, dst.name, dst.closest_big_city,
		       a.id, a.name, a."rows", a.seats_in_row, a.airplane_type_id, tp.name
		FROM flights f
		JOIN routes rt ON rt.id = f.route_id
		JOIN airports src ON src.id = rt.source_id
		JOIN airports dst ON dst.id = rt.destination_id
		JOIN airplanes a ON a.id = f.airplane_id
		JOIN airplane_types tp ON tp.id = a.airplane_type_id
		WHERE f.id=$1`, id)

	var f domain.Flight
	var rt domain.Route
	var src, dst domain.Airport
	var a domain.Airplane
	var typeName string
	if err := row.Scan(
		&f.ID, &f.DepartureTime, &f.ArrivalTime,
		&rt.ID, &rt.Distance, &src.ID, &src.Name, &src.ClosestBigCity,
		&dst.ID, &dst.Name, &dst.ClosestBigCity,
		&a.ID, &a.Name, &a.Rows, &a.SeatsInRow, &a.AirplaneTypeID, &typeName,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	rt.SourceID, rt.DestinationID = src.ID, dst.ID
	rt.Source, rt.Destination = &src, &dst
	a.AirplaneType = &domain.AirplaneType{ID: a.AirplaneTypeID, Name: typeName}
	f.RouteID, f.AirplaneID = rt.ID, a.ID
	f.Route, f.Airplane = &rt, &a

	seats, err := r.takenSeats(ctx, id)
	if err != nil {
		return nil, err
	}
	f.TakenSeats = seats

	crews, err := r.flightCrews(ctx, id)
	if err != nil {
		return nil, err
	}
	f.Crews = crews

	return &f, nil
}

func (r *PGFlightRepository) takenSeats(ctx context.Context, flightID int64) ([]domain.SeatRef, error) {
	rows, err := r.db.Query(ctx,
		`SELECT "row", seat FROM tickets WHERE flight_id=$1 ORDER BY "row", seat`, flightID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	seats := make([]domain.SeatRef, 0)
	for rows.Next() {
		var s domain.SeatRef
		if err := rows.Scan(&s.Row, &s.Seat); err != nil {
			return nil, err
		}
		seats = append(seats, s)
	}
	return seats, rows.Err()
}

func (r *PGFlightRepository) flightCrews(ctx context.Context, flightID int64) ([]domain.Crew, error) {
	rows, err := r.db.Query(ctx, `
		SELECT c.id, c.first_name, c.last_name
		FROM crews c
		JOIN flight_crews fc ON fc.crew_id = c.id
		WHERE fc.flight_id=$1
		ORDER BY c.last_name, c.first_name`, flightID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	crews := make([]domain.Crew, 0)
	for rows.Next() {
		var c domain.Crew
		if err := rows.Scan(&c.ID, &c.FirstName, &c.LastName); err != nil {
			return nil, err
		}
		crews = append(crews, c)
	}
	return crews, rows.Err()
}

func (r *PGFlightRepository) Create(ctx context.Context, flight *domain.Flight) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := tx.QueryRow(ctx,
		`INSERT INTO flights (departure_time, arrival_time, route_id, airplane_id) VALUES ($1, $2, $3, $4) RETURNING id`,
		flight.DepartureTime, flight.ArrivalTime, flight.RouteID, flight.AirplaneID,
	).Scan(&flight.ID); err != nil {
		return translateFlightError(err)
	}

	if err := replaceFlightCrews(ctx, tx, flight.ID, flight.Crews); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *PGFlightRepository) Update(ctx context.Context, flight *domain.Flight) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx,
		`UPDATE flights SET departure_time=$1, arrival_time=$2, route_id=$3, airplane_id=$4 WHERE id=$5`,
		flight.DepartureTime, flight.ArrivalTime, flight.RouteID, flight.AirplaneID, flight.ID,
	)
	if err != nil {
		return translateFlightError(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	if _, err := tx.Exec(ctx, `DELETE FROM flight_crews WHERE flight_id=$1`, flight.ID); err != nil {
		return err
	}
	if err := replaceFlightCrews(ctx, tx, flight.ID, flight.Crews); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func replaceFlightCrews(ctx context.Context, tx pgx.Tx, flightID int64, crews []domain.Crew) error {
	for _, crew := range crews {
		if _, err := tx.Exec(ctx,
			`INSERT INTO flight_crews (flight_id, crew_id) VALUES ($1, $2)`, flightID, crew.ID,
		); err != nil {
			if isForeignKeyViolation(err) {
				return domain.NewValidationError("crews", "Invalid crew.")
			}
			return err
		}
	}
	return nil
}

func translateFlightError(err error) error {
	if isForeignKeyViolation(err) {
		return domain.NewValidationError(domain.NonFieldErrors, "Route or airplane does not exist.")
	}
	return err
}

var _ FlightRepository = (*PGFlightRepository)(nil)
