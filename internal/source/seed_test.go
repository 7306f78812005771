package source

import (
	"context"
	"testing"
	"time"

	"mtlfest/internal/model"
)

func seedSource(now time.Time) *KnownFestivals {
	s := NewKnownFestivals(time.UTC)
	s.now = func() time.Time { return now }
	return s
}

func TestKnownFestivalsProjection(t *testing.T) {
	// Early in the year: every festival's run is still ahead.
	s := seedSource(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))

	events, err := s.Fetch(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 12 {
		t.Fatalf("got %d events, want 12", len(events))
	}

	jazz := events[0]
	if jazz.Name != "Montreal Jazz Festival" {
		t.Fatalf("first event = %q", jazz.Name)
	}
	if jazz.StartDate != "2025-06-27T18:00:00" || jazz.EndDate != "2025-07-06T23:00:00" {
		t.Errorf("projected dates = %q..%q", jazz.StartDate, jazz.EndDate)
	}
	for _, ev := range events {
		if ev.Source != "Official Festival Site" {
			t.Errorf("event %q has source %q", ev.Name, ev.Source)
		}
	}
}

func TestKnownFestivalsRollover(t *testing.T) {
	// Early July: the jazz run has already started, so it rolls to next year.
	s := seedSource(time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC))

	events, err := s.Fetch(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	jazz := events[0]
	if jazz.StartDate != "2026-06-27T18:00:00" || jazz.EndDate != "2026-07-06T23:00:00" {
		t.Errorf("rolled dates = %q..%q, want 2026 run", jazz.StartDate, jazz.EndDate)
	}

	// Osheaga (August) is still ahead and stays in the current year.
	osheaga := events[1]
	if osheaga.StartDate != "2025-08-02T12:00:00" {
		t.Errorf("osheaga start = %q, want 2025 run", osheaga.StartDate)
	}
}

func TestKnownFestivalsAlwaysEnabled(t *testing.T) {
	s := NewKnownFestivals(nil)
	if !s.Enabled() {
		t.Error("seed source must always be enabled")
	}
	if s.Name() != "Official Festival Site" {
		t.Errorf("Name = %q", s.Name())
	}
}

func TestFallbackEvents(t *testing.T) {
	events := FallbackEvents()
	if len(events) != 5 {
		t.Fatalf("got %d fallback events, want 5", len(events))
	}
	if events[0].Name != "Montreal Jazz Festival" {
		t.Errorf("first fallback = %q", events[0].Name)
	}
	for _, ev := range events {
		if ev.Source != "Fallback Data" {
			t.Errorf("event %q has source %q, want Fallback Data", ev.Name, ev.Source)
		}
		if ev.Name == "" || ev.Venue == "" || ev.StartDate == "" {
			t.Errorf("fallback event %q is missing fields", ev.Name)
		}
	}

	// Fixed reference dates, no rollover.
	if events[0].StartDate != "2024-06-27T18:00:00" {
		t.Errorf("fallback start = %q, want the fixed 2024 date", events[0].StartDate)
	}

	// Callers may mutate the returned slice; each call is a fresh copy.
	events[0].Name = "mutated"
	if FallbackEvents()[0].Name != "Montreal Jazz Festival" {
		t.Error("FallbackEvents must return a fresh list per call")
	}
}

func TestKnownFestivalsCategories(t *testing.T) {
	s := seedSource(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	events, err := s.Fetch(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	seen := map[model.Category]bool{}
	for _, ev := range events {
		seen[ev.Category] = true
	}
	for _, want := range []model.Category{
		model.CategoryMusic, model.CategoryComedy, model.CategoryFilm,
		model.CategoryFood, model.CategoryArt,
	} {
		if !seen[want] {
			t.Errorf("seed table has no %q festival", want)
		}
	}
}
