package source

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"mtlfest/internal/classify"
	appLog "mtlfest/internal/log"
	"mtlfest/internal/metro"
	"mtlfest/internal/model"
)

const meetupURL = "https://api.meetup.com/2/open_events"

// Meetup is the social-graph source.
type Meetup struct {
	key    string
	client *Client
}

func NewMeetup(key string, client *Client) *Meetup {
	return &Meetup{key: key, client: client}
}

func (s *Meetup) Name() string { return "Meetup" }

func (s *Meetup) Enabled() bool { return s.key != "" }

type meetupPayload struct {
	Results []meetupEvent `json:"results"`
}

type meetupEvent struct {
	Name  string `json:"name"`
	URL   string `json:"event_url"`
	Venue struct {
		Name     string `json:"name"`
		Address1 string `json:"address_1"`
	} `json:"venue"`
	// Time is start in epoch milliseconds, Duration in milliseconds.
	Time     int64 `json:"time"`
	Duration int64 `json:"duration"`
	Fee      struct {
		Amount float64 `json:"amount"`
	} `json:"fee"`
}

func (s *Meetup) Fetch(ctx context.Context) ([]model.Event, error) {
	if !s.Enabled() {
		return nil, errMissingCredentials
	}

	params := url.Values{}
	params.Set("key", s.key)
	params.Set("lat", fmt.Sprintf("%g", CityLat))
	params.Set("lon", fmt.Sprintf("%g", CityLon))
	params.Set("radius", "50")
	params.Set("text", "festival")
	params.Set("page", "50")

	reqURL, err := buildURL(meetupURL, params)
	if err != nil {
		return nil, err
	}

	var payload meetupPayload
	if err := s.client.GetJSON(ctx, reqURL, nil, &payload); err != nil {
		return nil, err
	}

	events := ParseMeetup(payload)
	appLog.Info("source fetch completed", "source", s.Name(), "event_count", len(events))
	return events, nil
}

// ParseMeetup converts an open-events payload into Events. The start time
// arrives as epoch milliseconds; a zero timestamp makes the record
// unusable and it is skipped.
func ParseMeetup(payload meetupPayload) []model.Event {
	events := make([]model.Event, 0, len(payload.Results))

	for _, raw := range payload.Results {
		if raw.Name == "" {
			warnSkip("Meetup", errors.New("event has no name"))
			continue
		}
		if raw.Time <= 0 {
			warnSkip("Meetup", errors.New("event has no start time"))
			continue
		}

		start := time.UnixMilli(raw.Time)
		end := time.UnixMilli(raw.Time + raw.Duration)

		venueName := raw.Venue.Name
		if venueName == "" {
			venueName = DefaultVenue
		}
		address := raw.Venue.Address1
		if address == "" {
			address = DefaultCity
		}

		price := DefaultPrice
		if raw.Fee.Amount > 0 {
			price = fmt.Sprintf("$%g", raw.Fee.Amount)
		}

		events = append(events, model.Event{
			Name:      raw.Name,
			Venue:     venueName,
			Address:   address,
			StartDate: start.Format("2006-01-02T15:04:05"),
			EndDate:   end.Format("2006-01-02T15:04:05"),
			URL:       raw.URL,
			Source:    "Meetup",
			Category:  classify.Categorize(raw.Name),
			Price:     price,
			Metro:     metro.Nearest(raw.Venue.Address1),
		})
	}

	return events
}
