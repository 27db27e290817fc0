package models

import (
	"time"

	"roomBooker/internal/lib/date"
)

type BookingKind string

const (
	KindRoom       BookingKind = "room"
	KindExperience BookingKind = "experience"
)

func (k BookingKind) Valid() bool {
	return k == KindRoom || k == KindExperience
}

// Booking is a reservation of a room or an experience by a user.
// Exactly one of RoomID and ExperienceID is set, matching Kind, until the
// referenced room or experience is deleted.
type Booking struct {
	ID             int64       `json:"id"`
	Kind           BookingKind `json:"kind"`
	UserID         int64       `json:"user_id"`
	RoomID         *int64      `json:"room_id"`
	ExperienceID   *int64      `json:"experience_id"`
	CheckIn        *date.Date  `json:"check_in"`
	CheckOut       *date.Date  `json:"check_out"`
	ExperienceTime *time.Time  `json:"experience_time"`
	Guests         int         `json:"guests"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}

// PublicBooking is what anyone may see about a booking. It never carries the booker.
type PublicBooking struct {
	ID             int64      `json:"id"`
	CheckIn        *date.Date `json:"check_in"`
	CheckOut       *date.Date `json:"check_out"`
	ExperienceTime *time.Time `json:"experience_time"`
	Guests         int        `json:"guests"`
}

func (b Booking) Public() PublicBooking {
	return PublicBooking{
		ID:             b.ID,
		CheckIn:        b.CheckIn,
		CheckOut:       b.CheckOut,
		ExperienceTime: b.ExperienceTime,
		Guests:         b.Guests,
	}
}
