package utils

import (
	"strings"
	"time"

	"gorm.io/datatypes"
)

// DateLayout is the wire format for calendar dates
const DateLayout = "2006-01-02"

// BeginningOfDay truncates t to midnight UTC of its calendar day.
// Calendar dates are always kept in UTC so the weekday survives a round trip
// through the database.
func BeginningOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Today returns the current calendar date
func Today() datatypes.Date {
	return datatypes.Date(BeginningOfDay(time.Now()))
}

// ParseDate parses a YYYY-MM-DD string into a calendar date
func ParseDate(value string) (datatypes.Date, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(value))
	if err != nil {
		return datatypes.Date{}, ValidationError("invalid date %q, expected YYYY-MM-DD", value)
	}
	return datatypes.Date(t), nil
}

// ParseOptionalDate parses a nullable date; nil or empty input yields nil
func ParseOptionalDate(value *string) (*datatypes.Date, error) {
	if value == nil || strings.TrimSpace(*value) == "" {
		return nil, nil
	}
	d, err := ParseDate(*value)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// FormatDate renders a calendar date as YYYY-MM-DD
func FormatDate(d datatypes.Date) string {
	return time.Time(d).Format(DateLayout)
}

// FormatOptionalDate renders a nullable date, nil stays nil
func FormatOptionalDate(d *datatypes.Date) *string {
	if d == nil {
		return nil
	}
	s := FormatDate(*d)
	return &s
}

// ISOWeekday returns 1 for Monday through 7 for Sunday
func ISOWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

// ParseTimeOfDay accepts HH:MM or HH:MM:SS
func ParseTimeOfDay(value string) (datatypes.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, err := time.Parse(layout, value); err == nil {
			return datatypes.NewTime(t.Hour(), t.Minute(), t.Second(), 0), nil
		}
	}
	return 0, ValidationError("invalid time %q, expected HH:MM or HH:MM:SS", value)
}

// FormatTimeOfDay renders a time-of-day as HH:MM:SS
func FormatTimeOfDay(t datatypes.Time) string {
	d := time.Duration(t)
	h := int(d / time.Hour)
	m := int(d % time.Hour / time.Minute)
	s := int(d % time.Minute / time.Second)
	return time.Date(0, 1, 1, h, m, s, 0, time.UTC).Format("15:04:05")
}
