package repository

import (
	"context"
	"fmt"
	stdlog "log"
	"time"

	"parking-api/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// GormRepository implements the spot store through GORM, on SQLite or PostgreSQL.
type GormRepository struct {
	db *gorm.DB
}

// NewGormRepository wraps an already opened GORM handle.
func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

// OpenGorm opens the database for the given driver ("sqlite" or "postgres") and migrates the schema.
func OpenGorm(driver, dsn string) (*GormRepository, error) {
	var dialector gorm.Dialector
	switch driver {
	case "sqlite":
		dialector = sqlite.Open(dsn)
	case "postgres":
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("repository: unsupported gorm driver %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{Logger: newGormLogger()})
	if err != nil {
		return nil, classify("open database", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, classify("get sql.DB", err)
	}
	if driver == "sqlite" {
		// SQLite serialises writers; a single connection also keeps ":memory:" databases shared.
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(20)
		sqlDB.SetMaxIdleConns(20)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
	}

	repo := NewGormRepository(db)
	if err := repo.EnsureSchema(); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	return repo, nil
}

func newGormLogger() logger.Interface {
	level := logger.Warn
	if zerolog.GlobalLevel() <= zerolog.DebugLevel {
		level = logger.Info
	}
	return logger.New(
		stdlog.New(log.Logger, "", 0),
		logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
}

// EnsureSchema creates or updates the parking_spots table.
func (r *GormRepository) EnsureSchema() error {
	if err := r.db.AutoMigrate(&models.ParkingSpot{}); err != nil {
		return classify("auto-migrate", err)
	}
	return nil
}

// Insert stores the spot in its own transaction and returns it with the assigned id.
func (r *GormRepository) Insert(ctx context.Context, spot models.ParkingSpot) (*models.ParkingSpot, error) {
	spot.ID = 0
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&spot).Error
	})
	if err != nil {
		return nil, classify("insert spot", err)
	}
	if spot.ID == 0 {
		return nil, fmt.Errorf("repository: insert spot: %w", ErrNoRowsReturned)
	}
	return &spot, nil
}

// ListAll returns every stored spot ordered by id.
func (r *GormRepository) ListAll(ctx context.Context) ([]models.ParkingSpot, error) {
	spots := []models.ParkingSpot{}
	if err := r.db.WithContext(ctx).Order("id").Find(&spots).Error; err != nil {
		return nil, classify("list spots", err)
	}
	return spots, nil
}

// Close closes the underlying connection pool.
func (r *GormRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
