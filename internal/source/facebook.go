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

const facebookGraphURL = "https://graph.facebook.com/v18.0"

// Facebook searches the Graph API for nearby festival events. The search
// only yields IDs, so each event costs a second detail request; a failed
// detail fetch skips that event without failing the batch.
type Facebook struct {
	token  string
	client *Client
	loc    *time.Location
}

func NewFacebook(token string, client *Client, loc *time.Location) *Facebook {
	if loc == nil {
		loc = time.Local
	}
	return &Facebook{token: token, client: client, loc: loc}
}

func (s *Facebook) Name() string { return "Facebook" }

func (s *Facebook) Enabled() bool { return s.token != "" }

type fbSearchPayload struct {
	Data []struct {
		ID string `json:"id"`
	} `json:"data"`
}

type fbEventDetail struct {
	Name      string `json:"name"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	TicketURI string `json:"ticket_uri"`
	Place     struct {
		Name     string `json:"name"`
		Location struct {
			Street string `json:"street"`
		} `json:"location"`
	} `json:"place"`
}

func (s *Facebook) Fetch(ctx context.Context) ([]model.Event, error) {
	if !s.Enabled() {
		return nil, errMissingCredentials
	}

	params := url.Values{}
	params.Set("access_token", s.token)
	params.Set("type", "event")
	params.Set("q", "festival")
	params.Set("center", fmt.Sprintf("%g,%g", CityLat, CityLon))
	params.Set("distance", "50000")
	params.Set("limit", "50")

	reqURL, err := buildURL(facebookGraphURL+"/search", params)
	if err != nil {
		return nil, err
	}

	var search fbSearchPayload
	if err := s.client.GetJSON(ctx, reqURL, nil, &search); err != nil {
		return nil, err
	}

	details := make([]fbEventDetail, 0, len(search.Data))
	for _, hit := range search.Data {
		if hit.ID == "" {
			continue
		}
		detail, err := s.fetchDetail(ctx, hit.ID)
		if err != nil {
			warnSkip(s.Name(), err)
			continue
		}
		details = append(details, detail)
	}

	events := s.ParseFacebook(details)
	appLog.Info("source fetch completed", "source", s.Name(), "event_count", len(events))
	return events, nil
}

func (s *Facebook) fetchDetail(ctx context.Context, id string) (fbEventDetail, error) {
	params := url.Values{}
	params.Set("access_token", s.token)
	params.Set("fields", "name,description,place,start_time,end_time,ticket_uri")

	reqURL, err := buildURL(facebookGraphURL+"/"+url.PathEscape(id), params)
	if err != nil {
		return fbEventDetail{}, err
	}

	var detail fbEventDetail
	if err := s.client.GetJSON(ctx, reqURL, nil, &detail); err != nil {
		return fbEventDetail{}, err
	}
	return detail, nil
}

// ParseFacebook converts event detail responses into Events. Graph events
// are free listings; there is no price data on the event object.
func (s *Facebook) ParseFacebook(details []fbEventDetail) []model.Event {
	events := make([]model.Event, 0, len(details))

	for _, d := range details {
		if d.Name == "" {
			warnSkip(s.Name(), errors.New("event has no name"))
			continue
		}

		venueName := d.Place.Name
		if venueName == "" {
			venueName = DefaultVenue
		}
		address := d.Place.Location.Street
		if address == "" {
			address = DefaultCity
		}

		events = append(events, model.Event{
			Name:      d.Name,
			Venue:     venueName,
			Address:   address,
			StartDate: s.normalizeStamp(d.StartTime),
			EndDate:   s.normalizeStamp(d.EndTime),
			URL:       d.TicketURI,
			Source:    "Facebook",
			Category:  classify.Categorize(d.Name),
			Price:     DefaultPrice,
			Metro:     metro.Nearest(d.Place.Location.Street),
		})
	}

	return events
}

// Graph timestamps carry a colonless offset ("-0400") that the shared stamp
// parser does not accept, so they are rewritten into the display timezone
// here. Unrecognized values pass through for the validity filter to judge.
func (s *Facebook) normalizeStamp(value string) string {
	if value == "" {
		return ""
	}
	for _, layout := range []string{"2006-01-02T15:04:05-0700", time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			return t.In(s.loc).Format("2006-01-02T15:04:05")
		}
	}
	return value
}
