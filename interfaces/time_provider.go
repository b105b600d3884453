package interfaces

import "time"

// TimeProvider supplies the current time for cache-busting stamps, relative time formatting and token expiry display.
// Injected so tests can use a fixed clock instead of time.Now().
//
// Constructed in cmd/main as service.NewTimeProvider(time.Now).
//
//go:generate moq -stub -out mock/time_provider.go -pkg mock . TimeProvider
type TimeProvider interface {
	// Now returns current time (wall clock in prod; fixed time in tests).
	Now() time.Time
}
