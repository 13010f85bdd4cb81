package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/katryana/airport-api/internal/domain"
)

type CrewRepository interface {
	List(ctx context.Context) ([]domain.Crew, error)
	GetByID(ctx context.Context, id int64) (*domain.Crew, error)
	Create(ctx context.Context, crew *domain.Crew) error
	Update(ctx context.Context, crew *domain.Crew) error
}

type PGCrewRepository struct {
	db *pgxpool.Pool
}

func NewCrewRepository(db *pgxpool.Pool) CrewRepository {
	return &PGCrewRepository{db: db}
}

// List returns crews with their assigned flights loaded, so list and detail
// views can render the flight strings.
func (r *PGCrewRepository) List(ctx context.Context) ([]domain.Crew, error) {
	rows, err := r.db.Query(ctx, `
		SELECT c.id, c.first_name, c.last_name,
		       f.id, f.departure_time, f.arrival_time, f.route_id, f.airplane_id,
		       a.name, src.closest_big_city, dst.closest_big_city
		FROM crews c
		LEFT JOIN flight_crews fc ON fc.crew_id = c.id
		LEFT JOIN flights f ON f.id = fc.flight_id
		LEFT JOIN airplanes a ON a.id = f.airplane_id
		LEFT JOIN routes rt ON rt.id = f.route_id
		LEFT JOIN airports src ON src.id = rt.source_id
		LEFT JOIN airports dst ON dst.id = rt.destination_id
		ORDER BY c.id, f.departure_time`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	crews := make([]domain.Crew, 0)
	index := make(map[int64]int)
	for rows.Next() {
		var c domain.Crew
		var f flightRow
		if err := rows.Scan(
			&c.ID, &c.FirstName, &c.LastName,
			&f.id, &f.departureTime, &f.arrivalTime, &f.routeID, &f.airplaneID,
			&f.airplaneName, &f.sourceCity, &f.destCity,
		); err != nil {
			return nil, err
		}

		pos, seen := index[c.ID]
		if !seen {
			crews = append(crews, c)
			pos = len(crews) - 1
			index[c.ID] = pos
		}
		if flight := f.toFlight(); flight != nil {
			crews[pos].Flights = append(crews[pos].Flights, *flight)
		}
	}
	return crews, rows.Err()
}

func (r *PGCrewRepository) GetByID(ctx context.Context, id int64) (*domain.Crew, error) {
	crews, err := r.listByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(crews) == 0 {
		return nil, domain.ErrNotFound
	}
	return &crews[0], nil
}

func (r *PGCrewRepository) listByID(ctx context.Context, id int64) ([]domain.Crew, error) {
	rows, err := r.db.Query(ctx, `
		SELECT c.id, c.first_name, c.last_name,
		       f.id, f.departure_time, f.arrival_time, f.route_id, f.airplane_id,
		       a.name, src.closest_big_city, dst.closest_big_city
		FROM crews c
		LEFT JOIN flight_crews fc ON fc.crew_id = c.id
		LEFT JOIN flights f ON f.id = fc.flight_id
		LEFT JOIN airplanes a ON a.id = f.airplane_id
		LEFT JOIN routes rt ON rt.id = f.route_id
		LEFT JOIN airports src ON src.id = rt.source_id
		LEFT JOIN airports dst ON dst.id = rt.destination_id
		WHERE c.id = $1
		ORDER BY f.departure_time`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var crew *domain.Crew
	for rows.Next() {
		var c domain.Crew
		var f flightRow
		if err := rows.Scan(
			&c.ID, &c.FirstName, &c.LastName,
			&f.id, &f.departureTime, &f.arrivalTime, &f.routeID, &f.airplaneID,
			&f.airplaneName, &f.sourceCity, &f.destCity,
		); err != nil {
			return nil, err
		}
		if crew == nil {
			crew = &c
		}
		if flight := f.toFlight(); flight != nil {
			crew.Flights = append(crew.Flights, *flight)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if crew == nil {
		return nil, nil
	}
	return []domain.Crew{*crew}, nil
}

func (r *PGCrewRepository) Create(ctx context.Context, crew *domain.Crew) error {
	return r.db.QueryRow(ctx,
		`INSERT INTO crews (first_name, last_name) VALUES ($1, $2) RETURNING id`,
		crew.FirstName, crew.LastName,
	).Scan(&crew.ID)
}

func (r *PGCrewRepository) Update(ctx context.Context, crew *domain.Crew) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE crews SET first_name=$1, last_name=$2 WHERE id=$3`,
		crew.FirstName, crew.LastName, crew.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

var _ CrewRepository = (*PGCrewRepository)(nil)

// flightRow holds the nullable flight side of the crew LEFT JOINs.
type flightRow struct {
	id            *int64
	departureTime *time.Time
	arrivalTime   *time.Time
	routeID       *int64
	airplaneID    *int64
	airplaneName  *string
	sourceCity    *string
	destCity      *string
}

func (f flightRow) toFlight() *domain.Flight {
	if f.id == nil {
		return nil
	}
	return &domain.Flight{
		ID:            *f.id,
		DepartureTime: *f.departureTime,
		ArrivalTime:   *f.arrivalTime,
		RouteID:       *f.routeID,
		AirplaneID:    *f.airplaneID,
		Airplane:      &domain.Airplane{ID: *f.airplaneID, Name: *f.airplaneName},
		Route: &domain.Route{
			ID:          *f.routeID,
			Source:      &domain.Airport{ClosestBigCity: *f.sourceCity},
			Destination: &domain.Airport{ClosestBigCity: *f.destCity},
		},
	}
}
