// Package service defines interfaces for collaborators of the use case layer.
package service

import "time"

// Clock provides the current time. Injectable so timeline events and report
// timestamps are deterministic in tests.
type Clock interface {
	// Now returns the current instant.
	Now() time.Time
}
