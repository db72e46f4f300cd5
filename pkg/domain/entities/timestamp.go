package entities

import "time"

// TimestampLayout is the canonical stored form for dates
const TimestampLayout = "2006-01-02 15:04:05"

// DateLayout is the short form accepted from filters and older rows
const DateLayout = "2006-01-02"

// ParseTimestamp decodes a stored date value. It accepts the canonical
// layout and the date-only short form; everything else is a ParseError.
// The core never consumes ambiguous date strings directly.
func ParseTimestamp(s string) (time.Time, error) {
	if t, err := time.Parse(TimestampLayout, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	return time.Time{}, &ParseError{Kind: "timestamp", Value: s}
}

// FormatTimestamp encodes a date in the canonical stored form
func FormatTimestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}
