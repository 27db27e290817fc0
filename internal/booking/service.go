package booking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"roomBooker/internal/lib/date"
	"roomBooker/internal/lib/logger/sl"
	"roomBooker/internal/models"
	"roomBooker/internal/storage"
)

// Outcomes reported to the Observer.
const (
	ResultCreated  = "created"
	ResultInvalid  = "invalid"
	ResultConflict = "conflict"
	ResultNotFound = "not_found"
	ResultError    = "error"
)

type Store interface {
	GetRoom(ctx context.Context, roomID int64) (*models.Room, error)
	// ListRoomBookingsAfter returns room bookings of roomID with check_in strictly after day.
	ListRoomBookingsAfter(ctx context.Context, roomID int64, day date.Date) ([]models.Booking, error)
	// InTx runs fn in a transaction, committing when fn returns nil.
	InTx(ctx context.Context, fn func(tx storage.Tx) error) error
}

type Observer interface {
	ObserveBooking(result string, elapsed time.Duration)
}

type RoomBookingRequest struct {
	RoomID   int64
	UserID   int64
	CheckIn  date.Date
	CheckOut date.Date
	Guests   int
}

type Service struct {
	log      *slog.Logger
	store    Store
	observer Observer
}

// New builds the booking service. observer may be nil.
func New(log *slog.Logger, store Store, observer Observer) *Service {
	return &Service{
		log:      log,
		store:    store,
		observer: observer,
	}
}

// CreateRoomBooking validates req against the room's existing bookings as of
// now and persists it. The room lookup, the checks and the insert share one
// transaction holding the room's row lock.
func (s *Service) CreateRoomBooking(ctx context.Context, req RoomBookingRequest, now time.Time) (*models.Booking, error) {
	const op = "booking.Service.CreateRoomBooking"

	log := s.log.With(
		slog.String("op", op),
		slog.Int64("room_id", req.RoomID),
		slog.Int64("user_id", req.UserID),
	)

	start := time.Now()

	candidate := Candidate{
		RoomID:   req.RoomID,
		CheckIn:  req.CheckIn,
		CheckOut: req.CheckOut,
		Guests:   req.Guests,
	}
	rc := Context{Today: date.Of(now)}

	var created *models.Booking

	err := s.store.InTx(ctx, func(tx storage.Tx) error {
		if _, err := tx.LockRoom(ctx, req.RoomID); err != nil {
			return err
		}

		if err := Validate(candidate, rc, RoomRules...); err != nil {
			return err
		}

		existing, err := tx.FindOverlapping(ctx, req.RoomID, req.CheckIn, req.CheckOut)
		if err != nil {
			return err
		}

		if err = NoConflict(candidate, existing); err != nil {
			return err
		}

		roomID := req.RoomID
		checkIn, checkOut := req.CheckIn, req.CheckOut

		b := &models.Booking{
			Kind:     models.KindRoom,
			UserID:   req.UserID,
			RoomID:   &roomID,
			CheckIn:  &checkIn,
			CheckOut: &checkOut,
			Guests:   req.Guests,
		}

		if err = tx.InsertBooking(ctx, b); err != nil {
			return err
		}

		created = b

		return nil
	})

	err = translate(op, err)
	s.observe(resultOf(err), time.Since(start))

	if err != nil {
		if IsValidation(err) {
			log.Info("booking rejected", sl.Err(err))
		} else {
			log.Error("failed to create booking", sl.Err(err))
		}
		return nil, err
	}

	log.Info("booking created", slog.Int64("booking_id", created.ID))

	return created, nil
}

// ListFutureRoomBookings returns the public view of the room's bookings whose
// check-in is after the local date of now.
func (s *Service) ListFutureRoomBookings(ctx context.Context, roomID int64, now time.Time) ([]models.PublicBooking, error) {
	const op = "booking.Service.ListFutureRoomBookings"

	if _, err := s.store.GetRoom(ctx, roomID); err != nil {
		return nil, translate(op, err)
	}

	today := date.Of(now)

	bookings, err := s.store.ListRoomBookingsAfter(ctx, roomID, today)
	if err != nil {
		return nil, translate(op, err)
	}

	out := make([]models.PublicBooking, 0, len(bookings))
	for _, b := range bookings {
		if b.CheckIn == nil || !b.CheckIn.After(today) {
			continue
		}
		out = append(out, b.Public())
	}

	return out, nil
}

func (s *Service) observe(result string, elapsed time.Duration) {
	if s.observer != nil {
		s.observer.ObserveBooking(result, elapsed)
	}
}

func translate(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, storage.ErrRoomNotFound):
		return ErrRoomNotFound
	case errors.Is(err, storage.ErrUserNotFound):
		return ErrUserNotFound
	case errors.Is(err, storage.ErrBookingConflict):
		return ErrDateConflict
	case IsValidation(err):
		return err
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

func resultOf(err error) string {
	switch {
	case err == nil:
		return ResultCreated
	case errors.Is(err, ErrDateConflict):
		return ResultConflict
	case IsValidation(err):
		return ResultInvalid
	case errors.Is(err, ErrRoomNotFound), errors.Is(err, ErrUserNotFound):
		return ResultNotFound
	default:
		return ResultError
	}
}
