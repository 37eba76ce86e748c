// Package lifecycle holds shared start/stop timing constants for fx hooks.
package lifecycle

import "time"

// DefaultTimeout bounds startup and shutdown hooks.
const DefaultTimeout = 10 * time.Second
