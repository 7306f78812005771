package aggregate

import (
	"time"

	"mtlfest/internal/model"
)

// Rolling acceptance window around the reference time. Boundaries are
// inclusive: a start exactly 30 days back or 90 days ahead passes.
const (
	windowPastDays   = 30
	windowFutureDays = 90
)

// minNameLen rejects placeholder names ("TBA", "--", "").
const minNameLen = 3

// FilterValid drops malformed and out-of-window events. This is a
// data-quality filter, not a validation surface: rejects are silent, and
// the output preserves input order.
//
// An event survives when all of:
//   - name, venue and start date are present
//   - name is at least minNameLen characters
//   - the start date parses
//   - start falls within [now-30d, now+90d]
func FilterValid(events []model.Event, now time.Time, loc *time.Location) []model.Event {
	windowStart := now.AddDate(0, 0, -windowPastDays)
	windowEnd := now.AddDate(0, 0, windowFutureDays)

	out := make([]model.Event, 0, len(events))
	for _, ev := range events {
		if !eventValid(ev, windowStart, windowEnd, loc) {
			eventsDropped.Inc()
			continue
		}
		out = append(out, ev)
	}
	return out
}

func eventValid(ev model.Event, windowStart, windowEnd time.Time, loc *time.Location) bool {
	if len(ev.Name) < minNameLen {
		return false
	}
	if ev.Venue == "" || ev.StartDate == "" {
		return false
	}

	start, err := model.ParseStamp(ev.StartDate, loc)
	if err != nil {
		return false
	}

	return !start.Before(windowStart) && !start.After(windowEnd)
}
