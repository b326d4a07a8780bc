// Package clock provides the system implementation of service.Clock.
package clock

import (
	"time"

	"storefront/internal/domain/service"
)

type systemClock struct{}

// New returns a Clock backed by the system time.
func New() service.Clock {
	return systemClock{}
}

// Now returns the current system time.
func (systemClock) Now() time.Time {
	return time.Now()
}
