package source

import (
	"context"
	"errors"
	"net/url"

	"mtlfest/internal/classify"
	appLog "mtlfest/internal/log"
	"mtlfest/internal/metro"
	"mtlfest/internal/model"
)

// OpenData pulls event records from the provincial open-data portal's CKAN
// datastore. It needs no credentials, only the endpoint URL.
type OpenData struct {
	endpoint string
	client   *Client
}

func NewOpenData(endpoint string, client *Client) *OpenData {
	return &OpenData{endpoint: endpoint, client: client}
}

func (s *OpenData) Name() string { return "Quebec Open Data" }

func (s *OpenData) Enabled() bool { return s.endpoint != "" }

type openDataPayload struct {
	Result struct {
		Records []openDataRecord `json:"records"`
	} `json:"result"`
}

type openDataRecord struct {
	Name      string `json:"name"`
	Venue     string `json:"venue"`
	Address   string `json:"address"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	URL       string `json:"url"`
	Price     string `json:"price"`
}

func (s *OpenData) Fetch(ctx context.Context) ([]model.Event, error) {
	if !s.Enabled() {
		return nil, errMissingCredentials
	}

	params := url.Values{}
	params.Set("resource_id", "events_montreal")
	params.Set("limit", "50")

	reqURL, err := buildURL(s.endpoint, params)
	if err != nil {
		return nil, err
	}

	var payload openDataPayload
	if err := s.client.GetJSON(ctx, reqURL, nil, &payload); err != nil {
		return nil, err
	}

	events := ParseOpenData(payload)
	appLog.Info("source fetch completed", "source", s.Name(), "event_count", len(events))
	return events, nil
}

// ParseOpenData converts CKAN datastore records into Events.
func ParseOpenData(payload openDataPayload) []model.Event {
	events := make([]model.Event, 0, len(payload.Result.Records))

	for _, rec := range payload.Result.Records {
		if rec.Name == "" {
			warnSkip("Quebec Open Data", errors.New("record has no name"))
			continue
		}

		venue := rec.Venue
		if venue == "" {
			venue = DefaultVenue
		}
		address := rec.Address
		if address == "" {
			address = DefaultCity
		}
		price := rec.Price
		if price == "" {
			price = DefaultPrice
		}

		events = append(events, model.Event{
			Name:      rec.Name,
			Venue:     venue,
			Address:   address,
			StartDate: rec.StartDate,
			EndDate:   rec.EndDate,
			URL:       rec.URL,
			Source:    "Quebec Open Data",
			Category:  classify.Categorize(rec.Name),
			Price:     price,
			Metro:     metro.Nearest(rec.Address),
		})
	}

	return events
}
