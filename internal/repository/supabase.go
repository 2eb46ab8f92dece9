package repository

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"parking-api/internal/models"

	"github.com/supabase-community/supabase-go"
)

const spotsTable = "parking_spots"

// SupabaseRepository implements the spot store on a Supabase project through its REST API.
type SupabaseRepository struct {
	client *supabase.Client
}

// spotRow is the insert payload; the id is assigned by the backend.
type spotRow struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Address   string  `json:"address"`
	OwnerName string  `json:"owner_name"`
	IsActive  bool    `json:"is_active"`
}

// NewSupabaseRepository creates a client for the project at url authenticated with key.
func NewSupabaseRepository(url, key string) (*SupabaseRepository, error) {
	client, err := supabase.NewClient(url, key, &supabase.ClientOptions{Schema: "public"})
	if err != nil {
		return nil, fmt.Errorf("repository: failed to create supabase client: %w", err)
	}
	return &SupabaseRepository{client: client}, nil
}

// Insert stores a spot and returns the row echoed back by the backend.
// An empty representation is treated as a rejected insert.
func (r *SupabaseRepository) Insert(ctx context.Context, spot models.ParkingSpot) (*models.ParkingSpot, error) {
	if err := ctx.Err(); err != nil {
		return nil, classify("insert spot", err)
	}

	row := spotRow{
		Latitude:  spot.Latitude,
		Longitude: spot.Longitude,
		Address:   spot.Address,
		OwnerName: spot.OwnerName,
		IsActive:  spot.IsActive,
	}

	var inserted []models.ParkingSpot
	_, err := r.client.From(spotsTable).
		Insert(row, false, "", "representation", "").
		ExecuteTo(&inserted)
	if err != nil {
		return nil, classify("insert spot", err)
	}
	if len(inserted) == 0 {
		return nil, fmt.Errorf("repository: insert spot: %w", ErrNoRowsReturned)
	}

	return &inserted[0], nil
}

// ListAll returns every stored spot ordered by id.
func (r *SupabaseRepository) ListAll(ctx context.Context) ([]models.ParkingSpot, error) {
	if err := ctx.Err(); err != nil {
		return nil, classify("list spots", err)
	}

	spots := []models.ParkingSpot{}
	_, err := r.client.From(spotsTable).
		Select("*", "", false).
		ExecuteTo(&spots)
	if err != nil {
		return nil, classify("list spots", err)
	}
	if spots == nil {
		spots = []models.ParkingSpot{}
	}

	slices.SortFunc(spots, func(a, b models.ParkingSpot) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return spots, nil
}

// Close is a no-op; the REST client holds no long-lived connection of its own.
func (r *SupabaseRepository) Close() error {
	return nil
}
