package clock

import "time"

type Clock interface {
	Now() time.Time
}

// Local reports the current instant in a fixed location.
type Local struct {
	loc *time.Location
}

func New(loc *time.Location) Local {
	if loc == nil {
		loc = time.UTC
	}

	return Local{loc: loc}
}

func (c Local) Now() time.Time {
	return time.Now().In(c.loc)
}

func (c Local) Location() *time.Location {
	return c.loc
}

// Fixed always reports the same instant.
type Fixed time.Time

func (f Fixed) Now() time.Time {
	return time.Time(f)
}
