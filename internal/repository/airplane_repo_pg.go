package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/katryana/airport-api/internal/domain"
)

type AirplaneTypeRepository interface {
	List(ctx context.Context) ([]domain.AirplaneType, error)
	GetByID(ctx context.Context, id int64) (*domain.AirplaneType, error)
	Create(ctx context.Context, airplaneType *domain.AirplaneType) error
	Update(ctx context.Context, airplaneType *domain.AirplaneType) error
}

type PGAirplaneTypeRepository struct {
	db *pgxpool.Pool
}

func NewAirplaneTypeRepository(db *pgxpool.Pool) AirplaneTypeRepository {
	return &PGAirplaneTypeRepository{db: db}
}

func (r *PGAirplaneTypeRepository) List(ctx context.Context) ([]domain.AirplaneType, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name FROM airplane_types ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	types := make([]domain.AirplaneType, 0)
	for rows.Next() {
		var t domain.AirplaneType
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	return types, rows.Err()
}

func (r *PGAirplaneTypeRepository) GetByID(ctx context.Context, id int64) (*domain.AirplaneType, error) {
	row := r.db.QueryRow(ctx, `SELECT id, name FROM airplane_types WHERE id=$1`, id)
	var t domain.AirplaneType
	if err := row.Scan(&t.ID, &t.Name); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *PGAirplaneTypeRepository) Create(ctx context.Context, airplaneType *domain.AirplaneType) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO airplane_types (name) VALUES ($1) RETURNING id`, airplaneType.Name,
	).Scan(&airplaneType.ID)
	if isUniqueViolation(err) {
		return domain.NewConflictError("name", "airplane type with this name already exists.")
	}
	return err
}

func (r *PGAirplaneTypeRepository) Update(ctx context.Context, airplaneType *domain.AirplaneType) error {
	tag, err := r.db.Exec(ctx, `UPDATE airplane_types SET name=$1 WHERE id=$2`, airplaneType.Name, airplaneType.ID)
	if isUniqueViolation(err) {
		return domain.NewConflictError("name", "airplane type with this name already exists.")
	}
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

var _ AirplaneTypeRepository = (*PGAirplaneTypeRepository)(nil)

type AirplaneRepository interface {
	List(ctx context.Context) ([]domain.Airplane, error)
	GetByID(ctx context.Context, id int64) (*domain.Airplane, error)
	Create(ctx context.Context, airplane *domain.Airplane) error
	Update(ctx context.Context, airplane *domain.Airplane) error
	SetImageURL(ctx context.Context, id int64, imageURL string) error
}

type PGAirplaneRepository struct {
	db *pgxpool.Pool
}

func NewAirplaneRepository(db *pgxpool.Pool) AirplaneRepository {
	return &PGAirplaneRepository{db: db}
}

func (r *PGAirplaneRepository) List(ctx context.Context) ([]domain.Airplane, error) {
	rows, err := r.db.Query(ctx, `
		SELECT a.id, a.name, a."rows", a.seats_in_row, a.airplane_type_id, a.image_url, t.name
		FROM airplanes a
		JOIN airplane_types t ON t.id = a.airplane_type_id
		ORDER BY a.name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	airplanes := make([]domain.Airplane, 0)
	for rows.Next() {
		var a domain.Airplane
		var typeName string
		if err := rows.Scan(&a.ID, &a.Name, &a.Rows, &a.SeatsInRow, &a.AirplaneTypeID, &a.ImageURL, &typeName); err != nil {
			return nil, err
		}
		a.AirplaneType = &domain.AirplaneType{ID: a.AirplaneTypeID, Name: typeName}
		airplanes = append(airplanes, a)
	}
	return airplanes, rows.Err()
}

func (r *PGAirplaneRepository) GetByID(ctx context.Context, id int64) (*domain.Airplane, error) {
	row := r.db.QueryRow(ctx, `
		SELECT a.id, a.name, a."rows", a.seats_in_row, a.airplane_type_id, a.image_url, t.name
		FROM airplanes a
		JOIN airplane_types t ON t.id = a.airplane_type_id
		WHERE a.id=$1`, id)

	var a domain.Airplane
	var typeName string
	if err := row.Scan(&a.ID, &a.Name, &a.Rows, &a.SeatsInRow, &a.AirplaneTypeID, &a.ImageURL, &typeName); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	a.AirplaneType = &domain.AirplaneType{ID: a.AirplaneTypeID, Name: typeName}
	return &a, nil
}

func (r *PGAirplaneRepository) Create(ctx context.Context, airplane *domain.Airplane) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO airplanes (name, "rows", seats_in_row, airplane_type_id) VALUES ($1, $2, $3, $4) RETURNING id`,
		airplane.Name, airplane.Rows, airplane.SeatsInRow, airplane.AirplaneTypeID,
	).Scan(&airplane.ID)
	return translateAirplaneError(err)
}

func (r *PGAirplaneRepository) Update(ctx context.Context, airplane *domain.Airplane) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE airplanes SET name=$1, "rows"=$2, seats_in_row=$3, airplane_type_id=$4 WHERE id=$5`,
		airplane.Name, airplane.Rows, airplane.SeatsInRow, airplane.AirplaneTypeID, airplane.ID,
	)
	if err != nil {
		return translateAirplaneError(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PGAirplaneRepository) SetImageURL(ctx context.Context, id int64, imageURL string) error {
	tag, err := r.db.Exec(ctx, `UPDATE airplanes SET image_url=$1 WHERE id=$2`, imageURL, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func translateAirplaneError(err error) error {
	if isUniqueViolation(err) {
		return domain.NewConflictError("name", "airplane with this name already exists.")
	}
	if isForeignKeyViolation(err) {
		return domain.NewValidationError("airplane_type", "Invalid airplane type.")
	}
	return err
}

var _ AirplaneRepository = (*PGAirplaneRepository)(nil)
