package query

import (
	"strings"
	"time"

	"mtlfest/internal/model"
)

// Matcher resolves (day, time) tokens into one concrete local datetime and
// decides whether events cover it.
type Matcher struct {
	loc *time.Location
	now func() time.Time
}

func NewMatcher(loc *time.Location) *Matcher {
	if loc == nil {
		loc = time.Local
	}
	return &Matcher{loc: loc, now: time.Now}
}

// Now returns the current time in the matcher's timezone.
func (m *Matcher) Now() time.Time {
	return m.now().In(m.loc)
}

// ResolveTarget turns day and time tokens into a timezone-aware target
// datetime. Unrecognized day text is tried as YYYY-MM-DD, unrecognized
// time text as HH:MM; both default (today, current time) on failure, so
// this never errors.
func (m *Matcher) ResolveTarget(day, timeOfDay string) time.Time {
	now := m.Now()

	targetDate := m.resolveDay(strings.ToLower(strings.TrimSpace(day)), now)

	timeOfDay = strings.ToLower(strings.TrimSpace(timeOfDay))
	hour, minute := now.Hour(), now.Minute()
	switch timeOfDay {
	case "morning", "am":
		hour, minute = 9, 0
	case "afternoon", "pm":
		hour, minute = 14, 0
	case "evening", "night":
		hour, minute = 19, 0
	default:
		if t, err := time.Parse("15:04", timeOfDay); err == nil {
			hour, minute = t.Hour(), t.Minute()
		}
	}

	return time.Date(targetDate.Year(), targetDate.Month(), targetDate.Day(),
		hour, minute, 0, 0, m.loc)
}

func (m *Matcher) resolveDay(day string, now time.Time) time.Time {
	switch day {
	case "today", "now", "":
		return now
	case "tomorrow":
		return now.AddDate(0, 0, 1)
	case "tonight":
		return now
	}

	if wd, ok := weekdayFromName(day); ok {
		return nextWeekday(now, wd)
	}

	if t, err := time.ParseInLocation("2006-01-02", day, m.loc); err == nil {
		return t
	}
	return now
}

func weekdayFromName(day string) (time.Weekday, bool) {
	switch day {
	case "monday", "mon":
		return time.Monday, true
	case "tuesday", "tue":
		return time.Tuesday, true
	case "wednesday", "wed":
		return time.Wednesday, true
	case "thursday", "thu":
		return time.Thursday, true
	case "friday", "fri":
		return time.Friday, true
	case "saturday", "sat":
		return time.Saturday, true
	case "sunday", "sun":
		return time.Sunday, true
	}
	return 0, false
}

// nextWeekday returns the next occurrence of wd strictly after today. When
// today already is wd, the result is seven days out, never today.
func nextWeekday(now time.Time, wd time.Weekday) time.Time {
	daysAhead := int(wd) - int(now.Weekday())
	if daysAhead <= 0 {
		daysAhead += 7
	}
	return now.AddDate(0, 0, daysAhead)
}

// Contains reports whether target falls inside the event's [start, end]
// interval. Start/end come in date-only or full-timestamp form; naive
// values are localized into the matcher's timezone. Any parse failure
// means "not contained", never an error.
func (m *Matcher) Contains(ev model.Event, target time.Time) bool {
	start, err := model.ParseStamp(ev.StartDate, m.loc)
	if err != nil {
		return false
	}
	end, err := model.ParseStamp(ev.EndDate, m.loc)
	if err != nil {
		return false
	}

	return !target.Before(start) && !target.After(end)
}

// Ongoing reports whether the event covers the current moment.
func (m *Matcher) Ongoing(ev model.Event) bool {
	return m.Contains(ev, m.Now())
}

// MatchCategory returns the events matching the requested category, either
// by category tag or by the category word appearing in the name. The
// day/time target is display context only: an event outside the requested
// window is still returned when its category matches.
func (m *Matcher) MatchCategory(events []model.Event, category model.Category) []model.Event {
	want := strings.ToLower(string(category))

	out := make([]model.Event, 0)
	for _, ev := range events {
		if ev.Category == category || strings.Contains(strings.ToLower(ev.Name), want) {
			out = append(out, ev)
		}
	}
	return out
}
