package entity

import (
	"time"

	"github.com/google/uuid"
)

// ParkingLot owns one fee schedule snapshot. IsPublic drives the
// compact-car discount; FreeMinutes is the lot-wide free allowance
// consumed before billing starts.
type ParkingLot struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	IsPublic    bool      `json:"is_public"`
	FreeMinutes int       `json:"free_minutes"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
