package utils

import (
	"time"

	"github.com/taskdeck/taskdeck/internal/constants"
)

// ParseDueDate parses a YYYY-MM-DD due date from form input. An empty
// string yields no date. A malformed string also yields no date but
// reports ok=false so the caller can surface a warning; it never fails
// the surrounding operation.
func ParseDueDate(raw string) (*time.Time, bool) {
	if raw == "" {
		return nil, true
	}

	t, err := time.Parse(constants.DueDateLayout, raw)
	if err != nil {
		return nil, false
	}
	return &t, true
}
