package storage

import (
	"context"
	"errors"

	"roomBooker/internal/lib/date"
	"roomBooker/internal/models"
)

var (
	ErrRoomNotFound    = errors.New("room not found")
	ErrUserNotFound    = errors.New("user not found")
	ErrBookingConflict = errors.New("booking overlaps an existing booking")
)

// Tx is the set of booking operations that run inside one database transaction.
type Tx interface {
	// LockRoom loads the room and holds a row lock on it until the
	// transaction ends, serializing bookings of the same room.
	LockRoom(ctx context.Context, roomID int64) (*models.Room, error)
	// FindOverlapping returns room bookings of roomID whose inclusive
	// [check_in, check_out] range shares a day with [checkIn, checkOut].
	FindOverlapping(ctx context.Context, roomID int64, checkIn, checkOut date.Date) ([]models.Booking, error)
	InsertBooking(ctx context.Context, b *models.Booking) error
}
