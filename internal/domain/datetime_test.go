package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseDate(t *testing.T) {
	date, err := ParseDate("2024-07-15")
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2024, 7, 15, 0, 0, 0, 0, time.UTC), date)

	for _, input := range []string{"15-07-2024", "2024/07/15", "2024-7-15", "tomorrow", ""} {
		_, err := ParseDate(input)
		assert.Error(t, err, "input %q", input)
		assert.Contains(t, err.Error(), "invalid date format. Use yyyy-MM-dd")
	}
}

func TestParseTime(t *testing.T) {
	clock, err := ParseTime("14:30")
	assert.NoError(t, err)
	assert.Equal(t, 14, clock.Hour())
	assert.Equal(t, 30, clock.Minute())

	for _, input := range []string{"2:30 PM", "14:30:00", "25:00", ""} {
		_, err := ParseTime(input)
		assert.Error(t, err, "input %q", input)
		assert.Contains(t, err.Error(), "invalid time format. Use HH:mm")
	}
}

func TestCombineDateTime(t *testing.T) {
	date, _ := ParseDate("2024-07-15")
	clock, _ := ParseTime("09:45")

	combined := CombineDateTime(date, clock)
	assert.Equal(t, time.Date(2024, 7, 15, 9, 45, 0, 0, time.UTC), combined)
}
