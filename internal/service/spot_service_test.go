package service

import (
	"context"
	"fmt"
	"math"
	"testing"

	"parking-api/internal/models"
	"parking-api/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockSpotRepository is a mock implementation of the SpotRepository interface
type MockSpotRepository struct {
	mock.Mock
}

// Insert implements SpotRepository.
func (m *MockSpotRepository) Insert(ctx context.Context, spot models.ParkingSpot) (*models.ParkingSpot, error) {
	args := m.Called(ctx, spot)
	return args.Get(0).(*models.ParkingSpot), args.Error(1)
}

// ListAll implements SpotRepository.
func (m *MockSpotRepository) ListAll(ctx context.Context) ([]models.ParkingSpot, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.ParkingSpot), args.Error(1)
}

type MockAddressResolver struct {
	mock.Mock
}

func (m *MockAddressResolver) Resolve(ctx context.Context, lat, lng float64) string {
	args := m.Called(ctx, lat, lng)
	return args.String(0)
}

type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) SpotCreated(ctx context.Context, spot models.ParkingSpot) error {
	args := m.Called(ctx, spot)
	return args.Error(0)
}

func TestSpotService_CreateSpot(t *testing.T) {
	alice := "Alice"

	tests := []struct {
		name         string
		input        CreateSpotInput
		address      string
		expectedSpot models.ParkingSpot
		repoError    error
		publishError error
		expectedKind Kind
	}{
		{
			name:    "anonymous spot with lookup disabled",
			input:   CreateSpotInput{Latitude: 37.7749, Longitude: -122.4194},
			address: "Address lookup disabled",
			expectedSpot: models.ParkingSpot{
				Latitude:  37.7749,
				Longitude: -122.4194,
				Address:   "Address lookup disabled",
				OwnerName: "Anonymous",
				IsActive:  true,
			},
		},
		{
			name:    "named owner with resolved address",
			input:   CreateSpotInput{Latitude: 35.681236, Longitude: 139.767125, OwnerName: &alice},
			address: "1 Chome Marunouchi, Chiyoda City, Tokyo 100-0005, Japan",
			expectedSpot: models.ParkingSpot{
				Latitude:  35.681236,
				Longitude: 139.767125,
				Address:   "1 Chome Marunouchi, Chiyoda City, Tokyo 100-0005, Japan",
				OwnerName: "Alice",
				IsActive:  true,
			},
		},
		{
			name:    "publish failure does not fail the request",
			input:   CreateSpotInput{Latitude: 1.5, Longitude: 2.5},
			address: "Address not found",
			expectedSpot: models.ParkingSpot{
				Latitude:  1.5,
				Longitude: 2.5,
				Address:   "Address not found",
				OwnerName: "Anonymous",
				IsActive:  true,
			},
			publishError: assert.AnError,
		},
		{
			name:    "store unavailable",
			input:   CreateSpotInput{Latitude: 1, Longitude: 2},
			address: "Error retrieving address",
			expectedSpot: models.ParkingSpot{
				Latitude: 1, Longitude: 2, Address: "Error retrieving address", OwnerName: "Anonymous", IsActive: true,
			},
			repoError:    fmt.Errorf("repository: insert spot: %w: %w", repository.ErrUnavailable, assert.AnError),
			expectedKind: KindUnavailable,
		},
		{
			name:    "store rejected",
			input:   CreateSpotInput{Latitude: 1, Longitude: 2},
			address: "Error retrieving address",
			expectedSpot: models.ParkingSpot{
				Latitude: 1, Longitude: 2, Address: "Error retrieving address", OwnerName: "Anonymous", IsActive: true,
			},
			repoError:    fmt.Errorf("repository: insert spot: %w", repository.ErrNoRowsReturned),
			expectedKind: KindRejected,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Setup
			mockRepo := new(MockSpotRepository)
			mockResolver := new(MockAddressResolver)
			mockPublisher := new(MockEventPublisher)
			service := NewSpotService(mockRepo, mockResolver, mockPublisher)

			stored := tt.expectedSpot
			stored.ID = 1

			mockResolver.On("Resolve", mock.Anything, tt.input.Latitude, tt.input.Longitude).Return(tt.address)
			if tt.repoError != nil {
				mockRepo.On("Insert", mock.Anything, tt.expectedSpot).Return((*models.ParkingSpot)(nil), tt.repoError)
			} else {
				mockRepo.On("Insert", mock.Anything, tt.expectedSpot).Return(&stored, nil)
				mockPublisher.On("SpotCreated", mock.Anything, stored).Return(tt.publishError)
			}

			// Execute
			result, err := service.CreateSpot(context.Background(), tt.input)

			// Assert
			if tt.expectedKind != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.expectedKind, KindOf(err))
				assert.ErrorIs(t, err, tt.repoError)
				assert.Nil(t, result)
			} else {
				require.NoError(t, err)
				assert.Equal(t, &stored, result)
			}

			mockResolver.AssertExpectations(t)
			mockRepo.AssertExpectations(t)
			mockPublisher.AssertExpectations(t)
		})
	}
}

func TestSpotService_CreateSpot_InvalidCoordinates(t *testing.T) {
	mockRepo := new(MockSpotRepository)
	mockResolver := new(MockAddressResolver)
	service := NewSpotService(mockRepo, mockResolver, nil)

	_, err := service.CreateSpot(context.Background(), CreateSpotInput{Latitude: math.NaN(), Longitude: 1})

	assert.Equal(t, KindValidation, KindOf(err))
	assert.ErrorIs(t, err, ErrInvalidCoordinates)
	mockResolver.AssertNotCalled(t, "Resolve", mock.Anything, mock.Anything, mock.Anything)
	mockRepo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestSpotService_CreateSpot_NilPublisher(t *testing.T) {
	mockRepo := new(MockSpotRepository)
	mockResolver := new(MockAddressResolver)
	service := NewSpotService(mockRepo, mockResolver, nil)

	spot := models.NewParkingSpot(10, 20, "x", nil)
	stored := spot
	stored.ID = 5

	mockResolver.On("Resolve", mock.Anything, 10.0, 20.0).Return("x")
	mockRepo.On("Insert", mock.Anything, spot).Return(&stored, nil)

	result, err := service.CreateSpot(context.Background(), CreateSpotInput{Latitude: 10, Longitude: 20})
	require.NoError(t, err)
	assert.Equal(t, int64(5), result.ID)
}

func TestSpotService_ListSpots(t *testing.T) {
	tests := []struct {
		name         string
		mockSpots    []models.ParkingSpot
		mockError    error
		expected     []models.ParkingSpot
		expectedKind Kind
	}{
		{
			name: "spots returned",
			mockSpots: []models.ParkingSpot{
				{ID: 1, Latitude: 1, Longitude: 2, Address: "a", OwnerName: "Alice", IsActive: true},
			},
			expected: []models.ParkingSpot{
				{ID: 1, Latitude: 1, Longitude: 2, Address: "a", OwnerName: "Alice", IsActive: true},
			},
		},
		{
			name:      "nil from store becomes empty",
			mockSpots: nil,
			expected:  []models.ParkingSpot{},
		},
		{
			name:         "store unavailable",
			mockSpots:    nil,
			mockError:    fmt.Errorf("repository: list spots: %w", repository.ErrUnavailable),
			expectedKind: KindUnavailable,
		},
		{
			name:         "unclassified store error",
			mockSpots:    nil,
			mockError:    assert.AnError,
			expectedKind: KindRejected,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockSpotRepository)
			service := NewSpotService(mockRepo, new(MockAddressResolver), nil)

			mockRepo.On("ListAll", mock.Anything).Return(tt.mockSpots, tt.mockError)

			result, err := service.ListSpots(context.Background())

			if tt.expectedKind != 0 {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedKind, KindOf(err))
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, result)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}
