package source

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"mtlfest/internal/classify"
	appLog "mtlfest/internal/log"
	"mtlfest/internal/metro"
	"mtlfest/internal/model"
)

const ticketmasterURL = "https://app.ticketmaster.com/discovery/v2/events.json"

// Ticketmaster is the primary ticketing source (Discovery API).
type Ticketmaster struct {
	key    string
	client *Client
}

func NewTicketmaster(key string, client *Client) *Ticketmaster {
	return &Ticketmaster{key: key, client: client}
}

func (s *Ticketmaster) Name() string { return "Ticketmaster" }

func (s *Ticketmaster) Enabled() bool { return s.key != "" }

// ticketmasterPayload mirrors the slice of the Discovery API response we
// consume.
type ticketmasterPayload struct {
	Embedded struct {
		Events []tmEvent `json:"events"`
	} `json:"_embedded"`
}

type tmEvent struct {
	Name     string `json:"name"`
	URL      string `json:"url"`
	Dates    tmDates
	Embedded struct {
		Venues []tmVenue `json:"venues"`
	} `json:"_embedded"`
	PriceRanges []tmPriceRange `json:"priceRanges"`
}

type tmDates struct {
	Start struct {
		DateTime string `json:"dateTime"`
	} `json:"start"`
	End struct {
		DateTime string `json:"dateTime"`
	} `json:"end"`
}

type tmVenue struct {
	Name    string `json:"name"`
	Address struct {
		Line1 string `json:"line1"`
	} `json:"address"`
	City struct {
		Name string `json:"name"`
	} `json:"city"`
	State struct {
		StateCode string `json:"stateCode"`
	} `json:"state"`
}

type tmPriceRange struct {
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Currency string  `json:"currency"`
}

func (s *Ticketmaster) Fetch(ctx context.Context) ([]model.Event, error) {
	if !s.Enabled() {
		return nil, errMissingCredentials
	}

	params := url.Values{}
	params.Set("apikey", s.key)
	params.Set("latlong", fmt.Sprintf("%g,%g", CityLat, CityLon))
	params.Set("radius", "50")
	params.Set("unit", "km")
	params.Set("keyword", "festival")
	params.Set("classificationName", "music,arts,theater")
	params.Set("size", "50")

	reqURL, err := buildURL(ticketmasterURL, params)
	if err != nil {
		return nil, err
	}

	var payload ticketmasterPayload
	if err := s.client.GetJSON(ctx, reqURL, nil, &payload); err != nil {
		return nil, err
	}

	events := ParseTicketmaster(payload)
	appLog.Info("source fetch completed", "source", s.Name(), "event_count", len(events))
	return events, nil
}

// ParseTicketmaster converts a Discovery API payload into Events. Records
// without a name are skipped; every other missing field gets a default.
func ParseTicketmaster(payload ticketmasterPayload) []model.Event {
	events := make([]model.Event, 0, len(payload.Embedded.Events))

	for _, raw := range payload.Embedded.Events {
		if raw.Name == "" {
			warnSkip("Ticketmaster", errors.New("event has no name"))
			continue
		}

		var venue tmVenue
		if len(raw.Embedded.Venues) > 0 {
			venue = raw.Embedded.Venues[0]
		}
		venueName := venue.Name
		if venueName == "" {
			venueName = DefaultVenue
		}
		city := venue.City.Name
		if city == "" {
			city = DefaultCity
		}
		state := venue.State.StateCode
		if state == "" {
			state = "QC"
		}
		address := fmt.Sprintf("%s, %s, %s", venue.Address.Line1, city, state)

		price := DefaultPrice
		if len(raw.PriceRanges) > 0 {
			pr := raw.PriceRanges[0]
			currency := pr.Currency
			if currency == "" {
				currency = "USD"
			}
			price = fmt.Sprintf("$%g-%g %s", pr.Min, pr.Max, currency)
		}

		events = append(events, model.Event{
			Name:      raw.Name,
			Venue:     venueName,
			Address:   address,
			StartDate: raw.Dates.Start.DateTime,
			EndDate:   raw.Dates.End.DateTime,
			URL:       raw.URL,
			Source:    "Ticketmaster",
			Category:  classify.Categorize(raw.Name),
			Price:     price,
			Metro:     metro.Nearest(venue.Address.Line1),
		})
	}

	return events
}
