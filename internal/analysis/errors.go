package analysis

import (
	"errors"
	"strings"
)

// ErrNotFound covers both missing and unowned records so lookups cannot leak
// which analyses exist.
var ErrNotFound = errors.New("analysis not found")

// ValidationError carries the full list of boundary checks the payload
// violated, never just the first.
type ValidationError struct {
	Details []string
}

func (e *ValidationError) Error() string {
	return "invalid resume data: " + strings.Join(e.Details, "; ")
}
