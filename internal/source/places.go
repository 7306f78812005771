package source

import (
	"context"
	"errors"
	"net/url"
	"time"

	appLog "mtlfest/internal/log"
	"mtlfest/internal/metro"
	"mtlfest/internal/model"
)

const placesURL = "https://maps.googleapis.com/maps/api/place/textsearch/json"

// Places is the map venue-search source. It does not know about concrete
// events, so each venue becomes a generic "Events at <venue>" record with a
// 30-day window starting now.
type Places struct {
	key    string
	client *Client
	now    func() time.Time
}

func NewPlaces(key string, client *Client) *Places {
	return &Places{key: key, client: client, now: time.Now}
}

func (s *Places) Name() string { return "Google Places" }

func (s *Places) Enabled() bool { return s.key != "" }

type placesPayload struct {
	Results []placesVenue `json:"results"`
}

type placesVenue struct {
	Name             string `json:"name"`
	FormattedAddress string `json:"formatted_address"`
	Website          string `json:"website"`
}

func (s *Places) Fetch(ctx context.Context) ([]model.Event, error) {
	if !s.Enabled() {
		return nil, errMissingCredentials
	}

	params := url.Values{}
	params.Set("key", s.key)
	params.Set("query", "festival venue Montreal")
	params.Set("location", "45.5017,-73.5673")
	params.Set("radius", "50000")
	params.Set("type", "establishment")

	reqURL, err := buildURL(placesURL, params)
	if err != nil {
		return nil, err
	}

	var payload placesPayload
	if err := s.client.GetJSON(ctx, reqURL, nil, &payload); err != nil {
		return nil, err
	}

	events := s.parse(payload)
	appLog.Info("source fetch completed", "source", s.Name(), "event_count", len(events))
	return events, nil
}

func (s *Places) parse(payload placesPayload) []model.Event {
	now := s.now()
	events := make([]model.Event, 0, len(payload.Results))

	for _, venue := range payload.Results {
		if venue.Name == "" {
			warnSkip(s.Name(), errors.New("venue has no name"))
			continue
		}
		address := venue.FormattedAddress
		if address == "" {
			address = DefaultCity
		}

		events = append(events, model.Event{
			Name:      "Events at " + venue.Name,
			Venue:     venue.Name,
			Address:   address,
			StartDate: now.Format("2006-01-02T15:04:05"),
			EndDate:   now.AddDate(0, 0, 30).Format("2006-01-02T15:04:05"),
			URL:       venue.Website,
			Source:    "Google Places",
			Category:  model.CategoryOther,
			Price:     "Varies",
			Metro:     metro.Nearest(venue.FormattedAddress),
		})
	}

	return events
}
