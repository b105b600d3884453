package service

import (
	"time"

	"myclient/helpers"
	"myclient/interfaces"
)

// timeProvider implements interfaces.TimeProvider. It returns the current time via the injected now func.
// Used by APIClient for cache-busting stamps and by ui for relative time. Built in cmd/main with time.Now.
type timeProvider struct {
	now func() time.Time
}

// NewTimeProvider creates a TimeProvider that returns time via the given now func. Panics on nil now.
//
// Parameter now: no-arg function returning current time (time.Now in prod, a fixed time in tests).
//
// Returns: interfaces.TimeProvider (*timeProvider).
func NewTimeProvider(now func() time.Time) interfaces.TimeProvider {
	return &timeProvider{now: helpers.NilPanic(now, "service.time_provider.go: now is required")}
}

// Now returns current time from the injected function.
func (t *timeProvider) Now() time.Time {
	return t.now()
}
