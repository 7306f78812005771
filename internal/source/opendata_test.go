package source

import (
	"encoding/json"
	"testing"

	"mtlfest/internal/model"
)

const openDataFixture = `{
  "result": {
    "records": [
      {
        "name": "Fete de la Musique",
        "venue": "Parc Jean-Drapeau",
        "address": "Parc Jean-Drapeau, Montreal",
        "start_date": "2024-07-20T14:00:00",
        "end_date": "2024-07-21T23:00:00",
        "url": "https://example.com/fete",
        "price": "$10 CAD"
      },
      {
        "venue": "Nameless Venue"
      },
      {
        "name": "Bare Minimum Fair"
      }
    ]
  }
}`

func TestParseOpenData(t *testing.T) {
	var payload openDataPayload
	if err := json.Unmarshal([]byte(openDataFixture), &payload); err != nil {
		t.Fatalf("fixture did not unmarshal: %v", err)
	}

	events := ParseOpenData(payload)
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2 (nameless record skipped)", len(events))
	}

	fete := events[0]
	if fete.Name != "Fete de la Musique" {
		t.Errorf("Name = %q", fete.Name)
	}
	if fete.StartDate != "2024-07-20T14:00:00" || fete.EndDate != "2024-07-21T23:00:00" {
		t.Errorf("dates passed through wrong: %q..%q", fete.StartDate, fete.EndDate)
	}
	if fete.Price != "$10 CAD" {
		t.Errorf("Price = %q", fete.Price)
	}
	if fete.Metro != "Jean-Drapeau" {
		t.Errorf("Metro = %q", fete.Metro)
	}
	if fete.Category != model.CategoryMusic {
		t.Errorf("Category = %q", fete.Category)
	}
	if fete.Source != "Quebec Open Data" {
		t.Errorf("Source = %q", fete.Source)
	}

	bare := events[1]
	if bare.Venue != DefaultVenue || bare.Address != DefaultCity || bare.Price != DefaultPrice {
		t.Errorf("defaults = %q / %q / %q", bare.Venue, bare.Address, bare.Price)
	}
}

func TestOpenDataEnabled(t *testing.T) {
	if NewOpenData("", NewClient()).Enabled() {
		t.Error("adapter without an endpoint must be disabled")
	}
	if !NewOpenData("https://example.com/datastore", NewClient()).Enabled() {
		t.Error("adapter with an endpoint must be enabled")
	}
}
