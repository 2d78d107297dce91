// Package lifecycle holds shared constants for fx lifecycle hooks.
package lifecycle

import "time"

// DefaultTimeout bounds startup and shutdown hooks such as DB pings and
// server drains.
const DefaultTimeout = 10 * time.Second
