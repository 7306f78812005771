package source

import (
	"testing"
	"time"

	"mtlfest/internal/model"
)

func testScraper(now time.Time) *Scraper {
	s := NewScraper([]string{"https://example.com/events"}, time.UTC)
	s.now = func() time.Time { return now }
	return s
}

func TestParseListingDate(t *testing.T) {
	now := time.Date(2024, 7, 15, 12, 0, 0, 0, time.UTC)
	s := testScraper(now)

	tests := []struct {
		text string
		want string
	}{
		{"2024-08-01", "2024-08-01T00:00:00"},
		{"August 1, 2024", "2024-08-01T00:00:00"},
		{"1 August 2024", "2024-08-01T00:00:00"},
		{"2024/08/01", "2024-08-01T00:00:00"},
		{"  2024-08-01  ", "2024-08-01T00:00:00"},
		{"next weekend", "2024-07-15T12:00:00"},
		{"", "2024-07-15T12:00:00"},
	}

	for _, tt := range tests {
		if got := s.parseListingDate(tt.text); got != tt.want {
			t.Errorf("parseListingDate(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}

func TestIsCulturalEvent(t *testing.T) {
	tests := []struct {
		title string
		want  bool
	}{
		{"Summer Music Festival", true},
		{"Art Exhibition Opening", true},
		{"Street Food Celebration", true},
		{"Tech Conference 2024", false},
		{"Cybersecurity Summit", false},
		{"Random Community Gathering", false},
		// A cultural word does not save a business listing.
		{"Music Industry Networking Forum", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := isCulturalEvent(tt.title); got != tt.want {
			t.Errorf("isCulturalEvent(%q) = %t, want %t", tt.title, got, tt.want)
		}
	}
}

func TestConvert(t *testing.T) {
	now := time.Date(2024, 7, 15, 12, 0, 0, 0, time.UTC)
	s := testScraper(now)

	items := []scrapedItem{
		{Title: "Plateau Jazz Festival", Date: "2024-08-01", Location: "Plateau", Href: "https://example.com/jazz"},
		{Title: "", Date: "2024-08-01"},
		{Title: "Startup Expo"},
		{Title: "Open Air Cinema"},
	}

	events := s.convert(items)
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}

	jazz := events[0]
	if jazz.Name != "Plateau Jazz Festival" {
		t.Errorf("Name = %q", jazz.Name)
	}
	if jazz.StartDate != "2024-08-01T00:00:00" || jazz.EndDate != jazz.StartDate {
		t.Errorf("dates = %q..%q", jazz.StartDate, jazz.EndDate)
	}
	if jazz.Metro != "Sherbrooke" {
		t.Errorf("Metro = %q", jazz.Metro)
	}
	if jazz.Category != model.CategoryMusic {
		t.Errorf("Category = %q", jazz.Category)
	}
	if jazz.Source != scrapeSourceLabel {
		t.Errorf("Source = %q", jazz.Source)
	}

	cinema := events[1]
	if cinema.Venue != defaultScrapeVenue {
		t.Errorf("missing location should default, got %q", cinema.Venue)
	}
	// Unrecognizable date falls back to the scrape time.
	if cinema.StartDate != "2024-07-15T12:00:00" {
		t.Errorf("StartDate = %q", cinema.StartDate)
	}
}

func TestScraperEnabled(t *testing.T) {
	if NewScraper(nil, time.UTC).Enabled() {
		t.Error("scraper without URLs must be disabled")
	}
	if !NewScraper([]string{"https://example.com"}, time.UTC).Enabled() {
		t.Error("scraper with URLs must be enabled")
	}
}
