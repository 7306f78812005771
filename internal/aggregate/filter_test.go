package aggregate

import (
	"reflect"
	"testing"
	"time"

	"mtlfest/internal/model"
	"mtlfest/internal/source"
)

func validEvent(name, start string) model.Event {
	return model.Event{
		Name:      name,
		Venue:     "Some Venue",
		StartDate: start,
		EndDate:   start,
		Source:    "Test",
		Category:  model.CategoryMusic,
	}
}

func TestFilterValidWindow(t *testing.T) {
	now := time.Date(2024, 7, 15, 12, 0, 0, 0, time.UTC)
	stamp := func(d time.Time) string { return d.Format(time.RFC3339) }

	tests := []struct {
		name  string
		start string
		want  bool
	}{
		{"inside window", stamp(now.AddDate(0, 0, 5)), true},
		{"past boundary inclusive", stamp(now.AddDate(0, 0, -30)), true},
		{"future boundary inclusive", stamp(now.AddDate(0, 0, 90)), true},
		{"one day too old", stamp(now.AddDate(0, 0, -31)), false},
		{"one day too far", stamp(now.AddDate(0, 0, 91)), false},
		{"date only inside", now.AddDate(0, 0, 10).Format("2006-01-02"), true},
		{"naive timestamp inside", now.AddDate(0, 0, 10).Format("2006-01-02T15:04:05"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterValid([]model.Event{validEvent("Jazz Fest", tt.start)}, now, time.UTC)
			if kept := len(got) == 1; kept != tt.want {
				t.Errorf("start %q kept = %t, want %t", tt.start, kept, tt.want)
			}
		})
	}
}

func TestFilterValidMalformed(t *testing.T) {
	now := time.Date(2024, 7, 15, 12, 0, 0, 0, time.UTC)
	inWindow := now.AddDate(0, 0, 5).Format(time.RFC3339)

	tests := []struct {
		name  string
		event model.Event
	}{
		{"name too short", validEvent("AB", inWindow)},
		{"empty name", validEvent("", inWindow)},
		{"missing venue", model.Event{Name: "Jazz Fest", StartDate: inWindow}},
		{"missing start", model.Event{Name: "Jazz Fest", Venue: "Venue"}},
		{"unparseable start", validEvent("Jazz Fest", "sometime in July")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FilterValid([]model.Event{tt.event}, now, time.UTC); len(got) != 0 {
				t.Errorf("expected drop, kept %d events", len(got))
			}
		})
	}
}

// With now inside every seed event's run window, the filter must pass the
// seed lists through untouched.
func TestFilterValidSeedRoundTrip(t *testing.T) {
	// Before the earliest seed start (Jun 27) and within 90 days of the
	// latest (Sep 10), so no run rolls over and every start is in window.
	now := time.Date(2024, 6, 20, 12, 0, 0, 0, time.UTC)

	seed := source.SeedEvents(now, time.UTC)
	if got := FilterValid(seed, now, time.UTC); !reflect.DeepEqual(got, seed) {
		t.Errorf("seed list did not round-trip: kept %d of %d events", len(got), len(seed))
	}

	// The fixed fallback list round-trips the same way against a reference
	// time inside its 2024 dates.
	fallbackNow := time.Date(2024, 7, 20, 12, 0, 0, 0, time.UTC)
	fallback := source.FallbackEvents()
	if got := FilterValid(fallback, fallbackNow, time.UTC); !reflect.DeepEqual(got, fallback) {
		t.Errorf("fallback list did not round-trip: kept %d of %d events", len(got), len(fallback))
	}
}

func TestFilterValidPreservesOrder(t *testing.T) {
	now := time.Date(2024, 7, 15, 12, 0, 0, 0, time.UTC)
	in := []model.Event{
		validEvent("First Fest", now.AddDate(0, 0, 1).Format(time.RFC3339)),
		validEvent("XX", now.AddDate(0, 0, 2).Format(time.RFC3339)),
		validEvent("Second Fest", now.AddDate(0, 0, 3).Format(time.RFC3339)),
		validEvent("Third Fest", now.AddDate(0, 0, 4).Format(time.RFC3339)),
	}

	got := FilterValid(in, now, time.UTC)
	want := []string{"First Fest", "Second Fest", "Third Fest"}
	if len(got) != len(want) {
		t.Fatalf("kept %d events, want %d", len(got), len(want))
	}
	for i, name := range want {
		if got[i].Name != name {
			t.Errorf("got[%d].Name = %q, want %q", i, got[i].Name, name)
		}
	}
}
