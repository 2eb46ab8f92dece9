package repository

import (
	"context"
	"fmt"

	"parking-api/internal/config"
	"parking-api/internal/models"

	"github.com/rs/zerolog/log"
)

// Store is the spot store contract shared by every backend.
type Store interface {
	Insert(ctx context.Context, spot models.ParkingSpot) (*models.ParkingSpot, error)
	ListAll(ctx context.Context) ([]models.ParkingSpot, error)
	Close() error
}

var (
	_ Store = (*SupabaseRepository)(nil)
	_ Store = (*GormRepository)(nil)
	_ Store = (*PostgresRepository)(nil)
)

// Open creates the store selected by cfg.StoreBackend. cfg must already be validated.
func Open(ctx context.Context, cfg config.Config) (Store, error) {
	var (
		store Store
		err   error
	)
	switch cfg.StoreBackend {
	case config.BackendSupabase:
		log.Info().Str("url", cfg.SupabaseURL).Msg("using supabase store")
		store, err = NewSupabaseRepository(cfg.SupabaseURL, cfg.SupabaseKey)
	case config.BackendGorm:
		log.Info().Str("driver", cfg.DBDriver).Msg("using gorm store")
		store, err = OpenGorm(cfg.DBDriver, cfg.DBSource)
	case config.BackendPostgres:
		log.Info().Msg("using postgres store")
		store, err = OpenPostgres(ctx, cfg.DBSource)
	default:
		return nil, fmt.Errorf("repository: unknown store backend %q", cfg.StoreBackend)
	}
	if err != nil {
		return nil, err
	}
	return store, nil
}
