// Package lifecycle centralizes timeouts shared by component start and
// stop hooks so every fx-managed resource shuts down on the same clock.
package lifecycle

import "time"

// DefaultTimeout bounds how long a single component may take to start or
// gracefully stop before it is abandoned.
const DefaultTimeout = 10 * time.Second
