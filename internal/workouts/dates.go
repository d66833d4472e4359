package workouts

import (
	"errors"
	"strings"
	"time"
)

var ErrInvalidDate = errors.New("invalid workout date")

const dateOnlyLayout = "2006-01-02"

var localLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
}

// ParseDate parses a workout date as clients send it.
// A bare date means UTC midnight, zone-less datetimes are read in loc.
func ParseDate(value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, ErrInvalidDate
	}
	if loc == nil {
		loc = time.Local
	}

	if t, err := time.Parse(dateOnlyLayout, value); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, nil
		}
	}

	return time.Time{}, ErrInvalidDate
}
