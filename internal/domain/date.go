package domain

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the canonical display form of a calendar date, e.g. "Mon Jan 01 2024".
const DateLayout = "Mon Jan 02 2006"

var ErrInvalidDate = errors.New("invalid date")

// Accepted input layouts, tried in order.
var dateInputLayouts = []string{
	DateLayout,
	"Mon Jan 2 2006",
	"2006-01-02",
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"January 2, 2006",
	"January 2 2006",
	"Jan 2, 2006",
	"Jan 2 2006",
	"2 January 2006",
	"2 Jan 2006",
	"01/02/2006",
	"2006/01/02",
	time.RFC1123,
	time.RFC1123Z,
}

// ParseDate reads a calendar date in any of the accepted forms and returns
// midnight UTC of that day. All-digit input is read by length: 4 digits is a
// year, 8 digits is YYYYMMDD, 10 or more is Unix milliseconds. Other lengths are rejected.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrInvalidDate
	}
	if isDigits(s) {
		return parseNumericDate(s)
	}
	for _, layout := range dateInputLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return truncateToDay(t), nil
		}
	}
	return time.Time{}, ErrInvalidDate
}

func parseNumericDate(s string) (time.Time, error) {
	var layout string
	switch n := len(s); {
	case n == 4:
		layout = "2006"
	case n == 8:
		layout = "20060102"
	case n >= 10:
		ms, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return time.Time{}, ErrInvalidDate
		}
		return truncateToDay(time.UnixMilli(ms).UTC()), nil
	default:
		return time.Time{}, ErrInvalidDate
	}
	t, err := time.Parse(layout, s)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return truncateToDay(t), nil
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return s != ""
}

// FormatDate renders t's calendar day in the canonical layout.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// NormalizeDate reparses s and renders it canonically, so equivalent
// representations of the same day produce the same string.
func NormalizeDate(s string) (string, error) {
	t, err := ParseDate(s)
	if err != nil {
		return "", err
	}
	return FormatDate(t), nil
}

// Today returns the canonical date string for now, in UTC.
func Today(now time.Time) string {
	return FormatDate(truncateToDay(now.UTC()))
}

func truncateToDay(t time.Time) time.Time {
	// Keep the wall-clock day the caller wrote, regardless of its offset.
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
