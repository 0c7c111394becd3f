package repositories

import "errors"

// ErrNotFound is returned when a lookup by ID misses. Callers must surface
// it; there is no fallback record.
var ErrNotFound = errors.New("record not found")

// ErrPointerConflict is returned when a compare-and-set on a workflow
// pointer loses to a concurrent write.
var ErrPointerConflict = errors.New("workflow pointer version conflict")

// ErrInvalidTransition is returned when a status update does not match the
// record's current status.
var ErrInvalidTransition = errors.New("invalid status transition")
