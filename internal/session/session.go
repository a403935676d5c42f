package session

import "context"

// Session state keys. These are the whole per-session surface; Clear
// removes exactly this set.
const (
	KeyBookingDetails  = "bookingDetails"
	KeyPaymentComplete = "paymentComplete"
	KeySearchCriteria  = "flightSearchCriteria"
	KeyIsLoggedIn      = "isLoggedIn"
	KeyLoggedInEmail   = "loggedInUserEmail"
)

var allKeys = []string{
	KeyBookingDetails,
	KeyPaymentComplete,
	KeySearchCriteria,
	KeyIsLoggedIn,
	KeyLoggedInEmail,
}

// Repository is the per-session key/value store behind the booking
// workflow. Get returns "" with a nil error when the key is absent.
type Repository interface {
	Get(ctx context.Context, sessionID, key string) (string, error)
	Set(ctx context.Context, sessionID, key, value string) error
	Delete(ctx context.Context, sessionID string, keys ...string) error
	Clear(ctx context.Context, sessionID string) error
}
