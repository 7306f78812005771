package source

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/teambition/rrule-go"

	"mtlfest/internal/classify"
	appLog "mtlfest/internal/log"
	"mtlfest/internal/metro"
	"mtlfest/internal/model"
)

// maxOccurrencesPerEvent caps RRULE expansion so a runaway rule cannot
// flood the aggregation.
const maxOccurrencesPerEvent = 50

// CityCal reads the city's public events calendar, an ICS feed. Recurring
// entries are expanded into concrete occurrences inside the aggregation
// window so each shows up as its own Event.
type CityCal struct {
	feedURL string
	client  *Client
	loc     *time.Location
	now     func() time.Time
}

func NewCityCal(feedURL string, client *Client, loc *time.Location) *CityCal {
	if loc == nil {
		loc = time.Local
	}
	return &CityCal{feedURL: feedURL, client: client, loc: loc, now: time.Now}
}

func (s *CityCal) Name() string { return "City Calendar" }

func (s *CityCal) Enabled() bool { return s.feedURL != "" }

func (s *CityCal) Fetch(ctx context.Context) ([]model.Event, error) {
	if !s.Enabled() {
		return nil, errMissingCredentials
	}

	body, err := s.client.GetBody(ctx, s.feedURL)
	if err != nil {
		return nil, err
	}

	events, err := s.ParseFeed(body)
	if err != nil {
		return nil, err
	}

	appLog.Info("source fetch completed", "source", s.Name(), "event_count", len(events))
	return events, nil
}

// ParseFeed parses an ICS payload and expands it into Events. A VEVENT
// that cannot be parsed is skipped; a body that is not a calendar at all
// fails the whole source.
func (s *CityCal) ParseFeed(body []byte) ([]model.Event, error) {
	if len(body) == 0 {
		return nil, errors.New("empty ICS body")
	}

	cal, err := ical.ParseCalendar(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	// Expansion window matches the validity filter's acceptance range so
	// recurrences outside it are never materialized.
	now := s.now().In(s.loc)
	rangeStart := now.AddDate(0, 0, -30)
	rangeEnd := now.AddDate(0, 0, 90)

	out := make([]model.Event, 0)

	for _, ve := range cal.Events() {
		summary := propValue(ve, ical.ComponentPropertySummary)
		if summary == "" {
			warnSkip(s.Name(), errors.New("vevent has no summary"))
			continue
		}

		start, err := ve.GetStartAt()
		if err != nil {
			warnSkip(s.Name(), err)
			continue
		}
		end, endErr := ve.GetEndAt()
		if endErr != nil {
			end = start
		}

		location := propValue(ve, ical.ComponentPropertyLocation)
		if location == "" {
			location = DefaultVenue
		}
		eventURL := propValue(ve, ical.ComponentPropertyUrl)

		rawRRule := propValue(ve, ical.ComponentPropertyRrule)
		if rawRRule == "" {
			out = append(out, s.makeEvent(summary, location, eventURL, start, end))
			continue
		}

		// Recurring entry: expand occurrences within the window.
		r, err := rrule.StrToRRule(rawRRule)
		if err != nil {
			appLog.Warn("unparseable RRULE, using base occurrence only",
				"source", s.Name(), "rrule", rawRRule)
			out = append(out, s.makeEvent(summary, location, eventURL, start, end))
			continue
		}
		r.DTStart(start)

		occTimes := r.Between(rangeStart.In(start.Location()), rangeEnd.In(start.Location()), true)
		if len(occTimes) > maxOccurrencesPerEvent {
			occTimes = occTimes[:maxOccurrencesPerEvent]
		}

		dur := end.Sub(start)
		for _, occStart := range occTimes {
			out = append(out, s.makeEvent(summary, location, eventURL, occStart, occStart.Add(dur)))
		}
	}

	return out, nil
}

// makeEvent normalizes one occurrence into the display timezone and the
// canonical record shape.
func (s *CityCal) makeEvent(summary, location, eventURL string, start, end time.Time) model.Event {
	return model.Event{
		Name:      summary,
		Venue:     location,
		Address:   location,
		StartDate: start.In(s.loc).Format("2006-01-02T15:04:05"),
		EndDate:   end.In(s.loc).Format("2006-01-02T15:04:05"),
		URL:       eventURL,
		Source:    "City Calendar",
		Category:  classify.Categorize(summary),
		Price:     DefaultPrice,
		Metro:     metro.Nearest(location),
	}
}

func propValue(ve *ical.VEvent, prop ical.ComponentProperty) string {
	if p := ve.GetProperty(prop); p != nil {
		return strings.TrimSpace(p.Value)
	}
	return ""
}
