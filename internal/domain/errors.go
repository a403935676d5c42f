package domain

import (
	"errors"
	"fmt"
)

var (
	ErrSeatUnavailable    = errors.New("seat is not available for selection")
	ErrUnknownSeat        = errors.New("seat does not exist in this cabin")
	ErrNoFlightSelected   = errors.New("no flight selected")
	ErrEmailInUse         = errors.New("email address is already in use")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNotLoggedIn        = errors.New("no user is logged in")
)

// PreconditionError means a workflow stage was entered without the session
// state it requires. The caller should redirect to the named entry point
// rather than retry in place.
type PreconditionError struct {
	Missing    string
	RedirectTo string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("missing %s, redirect to %s", e.Missing, e.RedirectTo)
}

// CapacityError rejects a seat selection beyond the passenger count.
// The current selection is left untouched.
type CapacityError struct {
	Capacity int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("cannot select more than %d seats", e.Capacity)
}

// SeatCountError rejects a seat confirmation while the selection does not
// cover every passenger exactly. Recoverable in place.
type SeatCountError struct {
	Required int
	Selected int
}

func (e *SeatCountError) Error() string {
	return fmt.Sprintf("selected %d of %d required seats", e.Selected, e.Required)
}

// ValidationError reports the offending form fields. The stage stays
// active and nothing is persisted while fields remain invalid.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid fields: %v", e.Fields)
}

func (e *ValidationError) Add(field string) {
	e.Fields = append(e.Fields, field)
}

func (e *ValidationError) HasFields() bool {
	return len(e.Fields) > 0
}
