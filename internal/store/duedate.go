package store

import (
	"fmt"
	"strings"
	"time"
)

// Accepted due-date formats. The datetime-local layout is what browser date
// inputs produce; RFC3339 is the API-native form.
var dueDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// ParseDueDate parses a due date string in any accepted layout. Layouts
// without a zone are interpreted in local time, matching the local-clock
// comparison model.
func ParseDueDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("due date is required")
	}

	for _, layout := range dueDateLayouts {
		if layout == time.RFC3339 {
			if t, err := time.Parse(layout, value); err == nil {
				return t, nil
			}
			continue
		}
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized due date %q", value)
}
