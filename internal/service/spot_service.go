package service

import (
	"context"
	"math"

	"parking-api/internal/models"

	"github.com/rs/zerolog/log"
)

// SpotService contains the business logic for recording and listing parking spots
type SpotService struct {
	repo      SpotRepository
	resolver  AddressResolver
	publisher EventPublisher
}

// SpotRepository interface for dependency injection
type SpotRepository interface {
	Insert(ctx context.Context, spot models.ParkingSpot) (*models.ParkingSpot, error)
	ListAll(ctx context.Context) ([]models.ParkingSpot, error)
}

// AddressResolver turns coordinates into a display address. It never fails.
type AddressResolver interface {
	Resolve(ctx context.Context, lat, lng float64) string
}

// EventPublisher is notified after a spot has been stored.
type EventPublisher interface {
	SpotCreated(ctx context.Context, spot models.ParkingSpot) error
}

// CreateSpotInput carries a decoded create request.
type CreateSpotInput struct {
	Latitude  float64
	Longitude float64
	OwnerName *string
}

// NewSpotService creates a new spot service. publisher may be nil.
func NewSpotService(repo SpotRepository, resolver AddressResolver, publisher EventPublisher) *SpotService {
	return &SpotService{repo: repo, resolver: resolver, publisher: publisher}
}

// CreateSpot resolves the address for the coordinates and stores the spot.
func (s *SpotService) CreateSpot(ctx context.Context, in CreateSpotInput) (*models.ParkingSpot, error) {
	if !finite(in.Latitude) || !finite(in.Longitude) {
		return nil, &Error{Kind: KindValidation, Op: "create spot", Err: ErrInvalidCoordinates}
	}

	address := s.resolver.Resolve(ctx, in.Latitude, in.Longitude)
	spot := models.NewParkingSpot(in.Latitude, in.Longitude, address, in.OwnerName)

	stored, err := s.repo.Insert(ctx, spot)
	if err != nil {
		return nil, storeError("create spot", err)
	}

	if s.publisher != nil {
		if err := s.publisher.SpotCreated(ctx, *stored); err != nil {
			log.Warn().Err(err).Int64("spot_id", stored.ID).Msg("failed to publish spot event")
		}
	}

	return stored, nil
}

// ListSpots returns every stored spot. The result is never nil.
func (s *SpotService) ListSpots(ctx context.Context) ([]models.ParkingSpot, error) {
	spots, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, storeError("list spots", err)
	}
	if spots == nil {
		spots = []models.ParkingSpot{}
	}
	return spots, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
