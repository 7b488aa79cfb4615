package formex

import (
	"strings"
	"time"
)

// Date is a calendar date that may be unknown. Malformed or absent date
// fields in the source degrade to the zero Date instead of failing the
// document.
type Date struct {
	Time  time.Time
	Valid bool
}

// dateFormats are the date spellings observed across journal schema
// versions, most common first.
var dateFormats = []string{
	"20060102",
	"2006-01-02",
	"2006/01/02",
	"02.01.2006",
	"02/01/2006",
}

// ParseDate parses a date with the tolerant multi-format parser. Input that
// matches no known format yields the unknown-date sentinel.
func ParseDate(raw string) Date {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Date{}
	}
	for _, format := range dateFormats {
		if parsed, err := time.Parse(format, raw); err == nil {
			return Date{Time: parsed, Valid: true}
		}
	}
	return Date{}
}

// String formats the date as yyyy/mm/dd, or "none" when unknown.
func (date Date) String() string {
	if !date.Valid {
		return "none"
	}
	return date.Time.Format("2006/01/02")
}

// Before reports whether this date is known and earlier than the other.
func (date Date) Before(other Date) bool {
	return date.Valid && other.Valid && date.Time.Before(other.Time)
}
