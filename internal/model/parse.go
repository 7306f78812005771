package model

import (
	"errors"
	"strings"
	"time"
)

// Wire timestamp layouts accepted from sources, tried in order. Sources
// disagree on offsets and precision; date-only values are common on
// scraped listings.
var stampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseStamp parses a source-provided timestamp string. Values carrying an
// explicit offset keep it; naive values are localized into loc. A trailing
// "Z" is treated as UTC.
func ParseStamp(value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, errors.New("empty timestamp")
	}
	if loc == nil {
		loc = time.Local
	}

	for _, layout := range stampLayouts {
		if layout == time.RFC3339 {
			if t, err := time.Parse(layout, value); err == nil {
				return t, nil
			}
			continue
		}
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, nil
		}
	}

	return time.Time{}, errors.New("unrecognized timestamp: " + value)
}
