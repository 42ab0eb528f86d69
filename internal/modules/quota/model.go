package quota

import "errors"

// ErrQuotaExceeded is returned when a session has used up its turns for the current day.
var ErrQuotaExceeded = errors.New("daily turn quota exceeded")

// DefaultTurnsPerDay is the per-session allowance when none is configured.
const DefaultTurnsPerDay = 200
