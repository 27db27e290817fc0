package booking

import (
	"roomBooker/internal/lib/date"
	"roomBooker/internal/models"
)

// Candidate is a proposed room booking.
type Candidate struct {
	RoomID   int64
	CheckIn  date.Date
	CheckOut date.Date
	Guests   int
}

// Context carries what the rules know about the moment of the request.
type Context struct {
	// Today is the local calendar date of the request.
	Today date.Date
}

// Rule checks one property of a candidate and returns nil when it holds.
type Rule func(c Candidate, rc Context) error

// RoomRules are applied in order; the first failure is reported. The date
// rules come first so a past stay is reported as such whatever the guest count.
var RoomRules = []Rule{
	CheckOutAfterCheckIn,
	CheckInNotPast,
	GuestsPositive,
}

// Validate runs rules against c in order and returns the first failure.
func Validate(c Candidate, rc Context, rules ...Rule) error {
	for _, rule := range rules {
		if err := rule(c, rc); err != nil {
			return err
		}
	}

	return nil
}

// GuestsPositive requires at least one guest.
func GuestsPositive(c Candidate, _ Context) error {
	if c.Guests <= 0 {
		return &FieldError{Field: FieldGuests, Err: ErrInvalidGuests}
	}

	return nil
}

// CheckOutAfterCheckIn requires a stay of at least one night.
func CheckOutAfterCheckIn(c Candidate, _ Context) error {
	if !c.CheckOut.After(c.CheckIn) {
		return &FieldError{Field: FieldCheckOut, Err: ErrInvalidDateRange}
	}

	return nil
}

// CheckInNotPast rejects a check-in before today. Checking in today is allowed.
func CheckInNotPast(c Candidate, rc Context) error {
	if c.CheckIn.Before(rc.Today) {
		return &FieldError{Field: FieldCheckIn, Err: ErrPastDate}
	}

	return nil
}

// Overlaps reports whether the inclusive ranges [aIn, aOut] and [bIn, bOut]
// share at least one day. Ranges touching on a boundary day overlap.
func Overlaps(aIn, aOut, bIn, bOut date.Date) bool {
	return !aIn.After(bOut) && !aOut.Before(bIn)
}

// NoConflict rejects c when any room booking of the same room overlaps it.
func NoConflict(c Candidate, existing []models.Booking) error {
	for _, b := range existing {
		if b.Kind != models.KindRoom || b.RoomID == nil || *b.RoomID != c.RoomID {
			continue
		}
		if b.CheckIn == nil || b.CheckOut == nil {
			continue
		}

		if Overlaps(*b.CheckIn, *b.CheckOut, c.CheckIn, c.CheckOut) {
			return ErrDateConflict
		}
	}

	return nil
}
