package sqlite

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatTimeForDB_SortsLexicographically(t *testing.T) {
	// Timestamps are TEXT columns ordered by string comparison, so times
	// within the same second must still compare in chronological order.
	base := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

	times := []time.Time{
		base,
		base.Add(5 * time.Nanosecond),
		base.Add(150 * time.Millisecond),
		base.Add(500 * time.Millisecond),
		base.Add(520 * time.Millisecond),
	}

	for i := 1; i < len(times); i++ {
		earlier := FormatTimeForDB(times[i-1])
		later := FormatTimeForDB(times[i])
		assert.Less(t, earlier, later, "formatted %v should sort before %v", times[i-1], times[i])
	}
}

func TestFormatTimeForDB_RoundTrip(t *testing.T) {
	original := time.Date(2026, 3, 14, 9, 26, 53, 123456789, time.FixedZone("CET", 3600))

	parsed, err := ParseTimeFromDB(FormatTimeForDB(original))
	require.NoError(t, err)
	assert.True(t, parsed.Equal(original))
}

func TestParseTimeFromDB_AcceptsSecondPrecision(t *testing.T) {
	// Rows written before timestamps carried a fractional part.
	parsed, err := ParseTimeFromDB("2026-03-14T09:26:53Z")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC), parsed.UTC())
}

func TestFormatTimePtrForDB(t *testing.T) {
	assert.Nil(t, FormatTimePtrForDB(nil))

	now := time.Now()
	formatted := FormatTimePtrForDB(&now)
	require.IsType(t, "", formatted)
	assert.Equal(t, FormatTimeForDB(now), formatted)
}

func TestFormatTagsForDB_RoundTrip(t *testing.T) {
	assert.Nil(t, FormatTagsForDB(nil))

	encoded := FormatTagsForDB([]string{"chores", "kitchen"})
	require.IsType(t, "", encoded)
	assert.Equal(t, []string{"chores", "kitchen"}, ParseTagsFromDB(encoded.(string)))
}
