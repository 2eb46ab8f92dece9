package models

import "strings"

// DefaultOwnerName is stored when a spot is submitted without an owner.
const DefaultOwnerName = "Anonymous"

// ParkingSpot represents a single recorded parking location together with the address resolved for it at creation time.
type ParkingSpot struct {
	ID        int64   `json:"id" gorm:"primaryKey;autoIncrement"`
	Latitude  float64 `json:"latitude" gorm:"not null"`
	Longitude float64 `json:"longitude" gorm:"not null"`
	Address   string  `json:"address"`
	OwnerName string  `json:"owner_name"`
	IsActive  bool    `json:"is_active" gorm:"not null;default:true"`
}

// TableName pins the table name shared by every store backend.
func (ParkingSpot) TableName() string {
	return "parking_spots"
}

// NewParkingSpot builds a spot ready for insertion. A nil or blank owner falls back to DefaultOwnerName.
func NewParkingSpot(lat, lng float64, address string, owner *string) ParkingSpot {
	name := DefaultOwnerName
	if owner != nil && strings.TrimSpace(*owner) != "" {
		name = *owner
	}

	return ParkingSpot{
		Latitude:  lat,
		Longitude: lng,
		Address:   address,
		OwnerName: name,
		IsActive:  true,
	}
}

// CreateSpotRequest is the body accepted by POST /mark-spot/.
type CreateSpotRequest struct {
	Latitude  *Coordinate `json:"latitude" binding:"required"`
	Longitude *Coordinate `json:"longitude" binding:"required"`
	OwnerName *string     `json:"owner_name"`
}

// CreateSpotResponse is the envelope returned after a spot is stored.
type CreateSpotResponse struct {
	Status  string      `json:"status"`
	Data    ParkingSpot `json:"data"`
	Message string      `json:"message"`
}

// HealthResponse is returned by the root endpoint.
type HealthResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the body of every non-2xx response produced by the handlers.
type ErrorResponse struct {
	Error string `json:"error"`
}
