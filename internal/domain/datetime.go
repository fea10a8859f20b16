package domain

import "time"

const (
	// DateLayout is the only accepted textual date format (yyyy-MM-dd).
	DateLayout = "2006-01-02"
	// TimeLayout is the only accepted textual time format (HH:mm).
	TimeLayout = "15:04"
)

// ParseDate parses a strict yyyy-MM-dd date into a midnight-UTC time.Time.
func ParseDate(input string) (time.Time, error) {
	t, err := time.Parse(DateLayout, input)
	if err != nil {
		return time.Time{}, NewValidation("invalid date format. Use yyyy-MM-dd")
	}
	return t, nil
}

// ParseTime parses a strict HH:mm clock value onto the zero date.
func ParseTime(input string) (time.Time, error) {
	t, err := time.Parse(TimeLayout, input)
	if err != nil {
		return time.Time{}, NewValidation("invalid time format. Use HH:mm")
	}
	return t, nil
}

// CombineDateTime merges a date-only and a clock-only value into one instant.
func CombineDateTime(date, clock time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(),
		clock.Hour(), clock.Minute(), 0, 0, time.UTC)
}
