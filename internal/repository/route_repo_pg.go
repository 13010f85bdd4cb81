package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/katryana/airport-api/internal/domain"
)

// RouteFilter narrows the route list by airport name substrings.
type RouteFilter struct {
	Source      string
	Destination string
}

type RouteRepository interface {
	List(ctx context.Context, filter RouteFilter) ([]domain.Route, error)
	GetByID(ctx context.Context, id int64) (*domain.Route, error)
	Create(ctx context.Context, route *domain.Route) error
}

type PGRouteRepository struct {
	db *pgxpool.Pool
}

func NewRouteRepository(db *pgxpool.Pool) RouteRepository {
	return &PGRouteRepository{db: db}
}

const routeSelect = `
	SELECT r.id, r.distance,
	       src.id, src.name, src.closest_big_city,
	       dst.id, dst.name, dst.closest_big_city
	FROM routes r
	JOIN airports src ON src.id = r.source_id
	JOIN airports dst ON dst.id = r.destination_id`

func (r *PGRouteRepository) List(ctx context.Context, filter RouteFilter) ([]domain.Route, error) {
	query := routeSelect + ` WHERE 1=1`
	args := make([]interface{}, 0, 2)
	if filter.Source != "" {
		args = append(args, "%"+filter.Source+"%")
		query += ` AND src.name ILIKE $1`
	}
	if filter.Destination != "" {
		args = append(args, "%"+filter.Destination+"%")
		if len(args) == 1 {
			query += ` AND dst.name ILIKE $1`
		} else {
			query += ` AND dst.name ILIKE $2`
		}
	}
	query += ` ORDER BY src.name, dst.name`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	routes := make([]domain.Route, 0)
	for rows.Next() {
		route, err := scanRoute(rows)
		if err != nil {
			return nil, err
		}
		routes = append(routes, *route)
	}
	return routes, rows.Err()
}

func (r *PGRouteRepository) GetByID(ctx context.Context, id int64) (*domain.Route, error) {
	row := r.db.QueryRow(ctx, routeSelect+` WHERE r.id=$1`, id)
	route, err := scanRoute(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return route, nil
}

// Create re-checks the endpoint rule before touching the table; the CHECK
// constraint backs it up for any path that skips this method.
func (r *PGRouteRepository) Create(ctx context.Context, route *domain.Route) error {
	if err := domain.ValidateRoute(route.SourceID, route.DestinationID); err != nil {
		return err
	}

	err := r.db.QueryRow(ctx,
		`INSERT INTO routes (source_id, destination_id, distance) VALUES ($1, $2, $3) RETURNING id`,
		route.SourceID, route.DestinationID, route.Distance,
	).Scan(&route.ID)
	if isForeignKeyViolation(err) {
		return domain.NewValidationError(domain.NonFieldErrors, "Source or destination airport does not exist.")
	}
	return err
}

func scanRoute(row pgx.Row) (*domain.Route, error) {
	var route domain.Route
	var src, dst domain.Airport
	if err := row.Scan(
		&route.ID, &route.Distance,
		&src.ID, &src.Name, &src.ClosestBigCity,
		&dst.ID, &dst.Name, &dst.ClosestBigCity,
	); err != nil {
		return nil, err
	}
	route.SourceID = src.ID
	route.DestinationID = dst.ID
	route.Source = &src
	route.Destination = &dst
	return &route, nil
}

var _ RouteRepository = (*PGRouteRepository)(nil)
