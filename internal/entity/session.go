package entity

import (
	"time"

	"github.com/google/uuid"
)

// ParkingSession is one vehicle's stay. Fee fields stay nil until the
// session is closed and billed.
type ParkingSession struct {
	ID            uuid.UUID  `json:"id"`
	LotID         uuid.UUID  `json:"lot_id"`
	Plate         string     `json:"plate"`
	CompactCar    bool       `json:"compact_car"`
	EnteredAt     time.Time  `json:"entered_at"`
	ExitedAt      *time.Time `json:"exited_at,omitempty"`
	OriginalFee   *int64     `json:"original_fee,omitempty"`
	DiscountedFee *int64     `json:"discounted_fee,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

// Open reports whether the vehicle is still parked.
func (s *ParkingSession) Open() bool {
	return s.ExitedAt == nil
}
