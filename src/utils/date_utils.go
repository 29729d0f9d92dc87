package utils

import (
	"strings"
	"time"
)

// ISODateFormat is the calendar-date form used throughout the API.
const ISODateFormat = "2006-01-02"

// dateFormats are the layouts sample feeds have shown up in, tried in order.
// The separator picks the locale: dashed dates read day-first, slashed dates
// month-first.
var dateFormats = []string{
	ISODateFormat,
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"02-01-2006",
	"01/02/2006",
}

// ParseDate attempts to parse a date string against the known layouts.
// Returns zero time when no layout matches; callers treat that as "no date".
func ParseDate(dateStr string) time.Time {
	dateStr = strings.TrimSpace(dateStr)
	if dateStr == "" {
		return time.Time{}
	}
	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, dateStr); err == nil {
			return t
		}
	}
	return time.Time{}
}
