package repository

import (
	"context"
	"errors"
	"fmt"

	"parking-api/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CreateTableSQL creates the parking_spots table used by the pgx backend and the importer.
const CreateTableSQL = `
	CREATE TABLE IF NOT EXISTS parking_spots (
		id BIGSERIAL PRIMARY KEY,
		latitude DOUBLE PRECISION NOT NULL,
		longitude DOUBLE PRECISION NOT NULL,
		address TEXT,
		owner_name VARCHAR(255),
		is_active BOOLEAN NOT NULL DEFAULT TRUE
	);
`

// PostgresRepository implements the spot store on a pgx connection pool with plain SQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// OpenPostgres connects a pool, verifies it and ensures the schema exists.
func OpenPostgres(ctx context.Context, dsn string) (*PostgresRepository, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, classify("connect", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, classify("ping", err)
	}

	repo := NewPostgresRepository(pool)
	if err := repo.EnsureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return repo, nil
}

// EnsureSchema creates the parking_spots table when missing.
func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, CreateTableSQL); err != nil {
		return classify("create table", err)
	}
	return nil
}

// Insert stores a spot and returns it with the identifier assigned by the database.
func (r *PostgresRepository) Insert(ctx context.Context, spot models.ParkingSpot) (*models.ParkingSpot, error) {
	sql := `
		INSERT INTO parking_spots (latitude, longitude, address, owner_name, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, latitude, longitude, address, owner_name, is_active
	`

	var stored models.ParkingSpot
	err := r.db.QueryRow(ctx, sql, spot.Latitude, spot.Longitude, spot.Address, spot.OwnerName, spot.IsActive).Scan(
		&stored.ID,
		&stored.Latitude,
		&stored.Longitude,
		&stored.Address,
		&stored.OwnerName,
		&stored.IsActive,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("repository: insert spot: %w", ErrNoRowsReturned)
		}
		return nil, classify("insert spot", err)
	}

	return &stored, nil
}

// ListAll returns every stored spot ordered by id.
func (r *PostgresRepository) ListAll(ctx context.Context) ([]models.ParkingSpot, error) {
	sql := `
		SELECT
			id,
			latitude,
			longitude,
			COALESCE(address, ''),
			COALESCE(owner_name, ''),
			is_active
		FROM parking_spots
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, sql)
	if err != nil {
		return nil, classify("list spots", err)
	}
	defer rows.Close()

	spots := []models.ParkingSpot{}
	for rows.Next() {
		var spot models.ParkingSpot
		err := rows.Scan(
			&spot.ID,
			&spot.Latitude,
			&spot.Longitude,
			&spot.Address,
			&spot.OwnerName,
			&spot.IsActive,
		)
		if err != nil {
			return nil, classify("scan spot", err)
		}
		spots = append(spots, spot)
	}

	if err := rows.Err(); err != nil {
		return nil, classify("iterate spots", err)
	}

	return spots, nil
}

// Close releases the pool.
func (r *PostgresRepository) Close() error {
	r.db.Close()
	return nil
}
