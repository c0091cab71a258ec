package domain

import (
	"fmt"
	"time"
)

var dobLayouts = []string{"2006-01-02", time.RFC3339}

// ParseDOB parses a date of birth sent as a calendar date or an RFC 3339
// timestamp
func ParseDOB(value string) (time.Time, error) {
	for _, layout := range dobLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date of birth %q", value)
}
