package booking

import "errors"

var (
	ErrRoomNotFound     = errors.New("room not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrInvalidGuests    = errors.New("guests must be a positive number")
	ErrInvalidDateRange = errors.New("check-out date must be after the check-in date")
	ErrPastDate         = errors.New("cannot create a booking for a past date")
	ErrDateConflict     = errors.New("those (or some) of those dates are already taken")
)

const (
	FieldCheckIn  = "check_in"
	FieldCheckOut = "check_out"
	FieldGuests   = "guests"
)

// FieldError is a validation failure attached to one request field.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Err.Error()
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// IsValidation reports whether err is a rejection of the request itself
// rather than a failure of the service.
func IsValidation(err error) bool {
	var fe *FieldError
	return errors.As(err, &fe) || errors.Is(err, ErrDateConflict)
}
