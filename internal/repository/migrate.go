package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Migrate creates the schema if it does not exist yet. Cascade rules follow
// the ownership model: orders own tickets, routes and airplanes cascade to
// their flights, flights cascade to their tickets.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id BIGSERIAL PRIMARY KEY,
			email TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			is_staff BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS airports (
			id BIGSERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			closest_big_city TEXT NOT NULL,
			UNIQUE (name, closest_big_city)
		)`,
		`CREATE TABLE IF NOT EXISTS airplane_types (
			id BIGSERIAL PRIMARY KEY,
			name TEXT NOT NULL UNIQUE
		)`,
		`CREATE TABLE IF NOT EXISTS airplanes (
			id BIGSERIAL PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			"rows" INTEGER NOT NULL,
			seats_in_row INTEGER NOT NULL,
			airplane_type_id BIGINT NOT NULL REFERENCES airplane_types(id) ON DELETE CASCADE,
			image_url TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS routes (
			id BIGSERIAL PRIMARY KEY,
			source_id BIGINT NOT NULL REFERENCES airports(id) ON DELETE CASCADE,
			destination_id BIGINT NOT NULL REFERENCES airports(id) ON DELETE CASCADE,
			distance INTEGER NOT NULL,
			CHECK (source_id <> destination_id)
		)`,
		`CREATE TABLE IF NOT EXISTS crews (
			id BIGSERIAL PRIMARY KEY,
			first_name TEXT NOT NULL,
			last_name TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS flights (
			id BIGSERIAL PRIMARY KEY,
			departure_time TIMESTAMPTZ NOT NULL,
			arrival_time TIMESTAMPTZ NOT NULL,
			route_id BIGINT NOT NULL REFERENCES routes(id) ON DELETE CASCADE,
			airplane_id BIGINT NOT NULL REFERENCES airplanes(id) ON DELETE CASCADE
		)`,
		`CREATE TABLE IF NOT EXISTS flight_crews (
			flight_id BIGINT NOT NULL REFERENCES flights(id) ON DELETE CASCADE,
			crew_id BIGINT NOT NULL REFERENCES crews(id) ON DELETE CASCADE,
			PRIMARY KEY (flight_id, crew_id)
		)`,
		`CREATE TABLE IF NOT EXISTS orders (
			id BIGSERIAL PRIMARY KEY,
			user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS tickets (
			id BIGSERIAL PRIMARY KEY,
			"row" INTEGER NOT NULL,
			seat INTEGER NOT NULL,
			flight_id BIGINT NOT NULL REFERENCES flights(id) ON DELETE CASCADE,
			order_id BIGINT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
			UNIQUE (flight_id, "row", seat)
		)`,
	}

	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}
