package sqlite

import (
	"encoding/json"
	"time"
)

// timeLayout is RFC3339 with fixed-width nanoseconds. The width matters:
// timestamps are stored as TEXT and ordered lexicographically, so rows
// created within the same second must still sort by creation order.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// FormatTimeForDB formats a time.Time value for consistent database storage
func FormatTimeForDB(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

// FormatTimePtrForDB formats a *time.Time value, returning nil if the pointer is nil
func FormatTimePtrForDB(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return FormatTimeForDB(*t)
}

// ParseTimeFromDB parses a stored time string. RFC3339Nano also accepts
// values without a fractional part, so rows written before the
// fixed-width layout still parse.
func ParseTimeFromDB(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}

// FormatTagsForDB encodes a tag set as a JSON array string, returning nil for an absent set
func FormatTagsForDB(tags []string) interface{} {
	if tags == nil {
		return nil
	}
	encoded, err := json.Marshal(tags)
	if err != nil {
		return nil
	}
	return string(encoded)
}

// ParseTagsFromDB decodes a JSON array string into a tag set, returning nil for empty input
func ParseTagsFromDB(s string) []string {
	if s == "" {
		return nil
	}
	var tags []string
	if err := json.Unmarshal([]byte(s), &tags); err != nil {
		return nil
	}
	return tags
}
