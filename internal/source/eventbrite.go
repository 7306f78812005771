package source

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"time"

	"mtlfest/internal/classify"
	appLog "mtlfest/internal/log"
	"mtlfest/internal/metro"
	"mtlfest/internal/model"
)

const eventbriteURL = "https://www.eventbriteapi.com/v3/events/search/"

// Eventbrite is the secondary ticketing source. Unlike the Discovery API it
// reports ticket classes, so price is the joined set of class prices.
type Eventbrite struct {
	token  string
	client *Client
	now    func() time.Time
}

func NewEventbrite(token string, client *Client) *Eventbrite {
	return &Eventbrite{token: token, client: client, now: time.Now}
}

func (s *Eventbrite) Name() string { return "Eventbrite" }

func (s *Eventbrite) Enabled() bool { return s.token != "" }

type eventbritePayload struct {
	Events []ebEvent `json:"events"`
}

type ebEvent struct {
	Name struct {
		Text string `json:"text"`
	} `json:"name"`
	URL   string `json:"url"`
	Start struct {
		UTC string `json:"utc"`
	} `json:"start"`
	End struct {
		UTC string `json:"utc"`
	} `json:"end"`
	Venue struct {
		Name    string `json:"name"`
		Address struct {
			LocalizedAddressDisplay string `json:"localized_address_display"`
		} `json:"address"`
	} `json:"venue"`
	TicketAvailability struct {
		TicketClasses []ebTicketClass `json:"ticket_classes"`
	} `json:"ticket_availability"`
}

type ebTicketClass struct {
	Free bool `json:"free"`
	Cost struct {
		Currency string `json:"currency"`
		// MajorValue is a decimal string ("25.00") on the wire.
		MajorValue string `json:"major_value"`
	} `json:"cost"`
}

func (s *Eventbrite) Fetch(ctx context.Context) ([]model.Event, error) {
	if !s.Enabled() {
		return nil, errMissingCredentials
	}

	now := s.now()
	params := url.Values{}
	params.Set("location.address", "Montreal, QC, Canada")
	params.Set("expand", "venue")
	params.Set("q", "festival")
	params.Set("start_date.range_start", now.Format(time.RFC3339))
	params.Set("start_date.range_end", now.AddDate(0, 0, 90).Format(time.RFC3339))
	params.Set("page_size", "50")

	reqURL, err := buildURL(eventbriteURL, params)
	if err != nil {
		return nil, err
	}

	headers := map[string]string{"Authorization": "Bearer " + s.token}
	var payload eventbritePayload
	if err := s.client.GetJSON(ctx, reqURL, headers, &payload); err != nil {
		return nil, err
	}

	events := ParseEventbrite(payload)
	appLog.Info("source fetch completed", "source", s.Name(), "event_count", len(events))
	return events, nil
}

// ParseEventbrite converts a search payload into Events. Records without a
// name are skipped; every other missing field gets a default.
func ParseEventbrite(payload eventbritePayload) []model.Event {
	events := make([]model.Event, 0, len(payload.Events))

	for _, raw := range payload.Events {
		if raw.Name.Text == "" {
			warnSkip("Eventbrite", errors.New("event has no name"))
			continue
		}

		venueName := raw.Venue.Name
		if venueName == "" {
			venueName = DefaultVenue
		}
		address := raw.Venue.Address.LocalizedAddressDisplay
		if address == "" {
			address = DefaultCity
		}

		events = append(events, model.Event{
			Name:      raw.Name.Text,
			Venue:     venueName,
			Address:   address,
			StartDate: raw.Start.UTC,
			EndDate:   raw.End.UTC,
			URL:       raw.URL,
			Source:    "Eventbrite",
			Category:  classify.Categorize(raw.Name.Text),
			Price:     eventbritePrice(raw.TicketAvailability.TicketClasses),
			Metro:     metro.Nearest(raw.Venue.Address.LocalizedAddressDisplay),
		})
	}

	return events
}

// eventbritePrice joins the distinct ticket class prices, first occurrence
// order. No classes, or only classes without cost data, means Free.
func eventbritePrice(classes []ebTicketClass) string {
	prices := make([]string, 0, len(classes))
	seen := make(map[string]bool)

	for _, tc := range classes {
		var p string
		switch {
		case tc.Free:
			p = DefaultPrice
		case tc.Cost.MajorValue != "":
			currency := tc.Cost.Currency
			if currency == "" {
				currency = "USD"
			}
			p = currency + " " + tc.Cost.MajorValue
		default:
			continue
		}
		if !seen[p] {
			seen[p] = true
			prices = append(prices, p)
		}
	}

	if len(prices) == 0 {
		return DefaultPrice
	}
	return strings.Join(prices, ", ")
}
