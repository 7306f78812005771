package query

import (
	"testing"
	"time"

	"mtlfest/internal/model"
)

func testMatcher(now time.Time) *Matcher {
	m := NewMatcher(time.UTC)
	m.now = func() time.Time { return now }
	return m
}

func TestResolveTarget(t *testing.T) {
	// Monday, July 15 2024, 10:45 local.
	now := time.Date(2024, 7, 15, 10, 45, 0, 0, time.UTC)
	m := testMatcher(now)

	tests := []struct {
		name      string
		day       string
		timeOfDay string
		want      time.Time
	}{
		{"today evening", "today", "evening", time.Date(2024, 7, 15, 19, 0, 0, 0, time.UTC)},
		{"tomorrow morning", "tomorrow", "morning", time.Date(2024, 7, 16, 9, 0, 0, 0, time.UTC)},
		{"afternoon", "today", "afternoon", time.Date(2024, 7, 15, 14, 0, 0, 0, time.UTC)},
		{"night is evening", "today", "night", time.Date(2024, 7, 15, 19, 0, 0, 0, time.UTC)},
		{"same weekday pushes a week out", "monday", "morning", time.Date(2024, 7, 22, 9, 0, 0, 0, time.UTC)},
		{"upcoming weekday", "friday", "evening", time.Date(2024, 7, 19, 19, 0, 0, 0, time.UTC)},
		{"weekday abbreviation", "sat", "morning", time.Date(2024, 7, 20, 9, 0, 0, 0, time.UTC)},
		{"explicit date and time", "2024-08-01", "15:30", time.Date(2024, 8, 1, 15, 30, 0, 0, time.UTC)},
		{"empty day is today", "", "evening", time.Date(2024, 7, 15, 19, 0, 0, 0, time.UTC)},
		{"garbage falls back to now", "someday", "whenever", time.Date(2024, 7, 15, 10, 45, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := m.ResolveTarget(tt.day, tt.timeOfDay)
			if !got.Equal(tt.want) {
				t.Errorf("ResolveTarget(%q, %q) = %v, want %v", tt.day, tt.timeOfDay, got, tt.want)
			}
		})
	}
}

func TestContains(t *testing.T) {
	m := testMatcher(time.Date(2024, 7, 15, 12, 0, 0, 0, time.UTC))
	ev := model.Event{
		Name:      "Montreal Jazz Festival",
		StartDate: "2024-06-27T18:00:00",
		EndDate:   "2024-07-06T23:00:00",
	}

	tests := []struct {
		name   string
		target time.Time
		want   bool
	}{
		{"inside the run", time.Date(2024, 6, 30, 20, 0, 0, 0, time.UTC), true},
		{"exactly at start", time.Date(2024, 6, 27, 18, 0, 0, 0, time.UTC), true},
		{"exactly at end", time.Date(2024, 7, 6, 23, 0, 0, 0, time.UTC), true},
		{"before the run", time.Date(2024, 6, 27, 17, 59, 0, 0, time.UTC), false},
		{"after the run", time.Date(2024, 7, 6, 23, 1, 0, 0, time.UTC), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := m.Contains(ev, tt.target); got != tt.want {
				t.Errorf("Contains at %v = %t, want %t", tt.target, got, tt.want)
			}
		})
	}
}

func TestContainsDateOnly(t *testing.T) {
	m := testMatcher(time.Date(2024, 7, 15, 12, 0, 0, 0, time.UTC))
	ev := model.Event{StartDate: "2024-07-01", EndDate: "2024-07-10"}

	if !m.Contains(ev, time.Date(2024, 7, 5, 0, 0, 0, 0, time.UTC)) {
		t.Error("date-only bounds should contain a day inside the run")
	}
	// The end parses to midnight, so later that day is outside.
	if m.Contains(ev, time.Date(2024, 7, 10, 12, 0, 0, 0, time.UTC)) {
		t.Error("noon on the end date is past a midnight end bound")
	}
}

func TestContainsUnparseable(t *testing.T) {
	m := testMatcher(time.Date(2024, 7, 15, 12, 0, 0, 0, time.UTC))
	target := time.Date(2024, 7, 5, 12, 0, 0, 0, time.UTC)

	bad := []model.Event{
		{StartDate: "", EndDate: "2024-07-10"},
		{StartDate: "2024-07-01", EndDate: ""},
		{StartDate: "whenever", EndDate: "2024-07-10"},
	}
	for _, ev := range bad {
		if m.Contains(ev, target) {
			t.Errorf("Contains with dates %q..%q should be false", ev.StartDate, ev.EndDate)
		}
	}
}

func TestOngoing(t *testing.T) {
	m := testMatcher(time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC))

	running := model.Event{StartDate: "2024-06-27T18:00:00", EndDate: "2024-07-06T23:00:00"}
	if !m.Ongoing(running) {
		t.Error("event covering now should be ongoing")
	}

	finished := model.Event{StartDate: "2024-06-01T18:00:00", EndDate: "2024-06-10T23:00:00"}
	if m.Ongoing(finished) {
		t.Error("finished event should not be ongoing")
	}
}

func TestMatchCategory(t *testing.T) {
	m := testMatcher(time.Date(2024, 7, 15, 12, 0, 0, 0, time.UTC))

	events := []model.Event{
		{Name: "Jazz Under the Stars", Category: model.CategoryMusic},
		{Name: "Montreal Music Crawl", Category: model.CategoryOther},
		{Name: "Street Food Fair", Category: model.CategoryFood},
	}

	got := m.MatchCategory(events, model.CategoryMusic)
	if len(got) != 2 {
		t.Fatalf("matched %d events, want 2", len(got))
	}
	if got[0].Name != "Jazz Under the Stars" || got[1].Name != "Montreal Music Crawl" {
		t.Errorf("unexpected matches: %q, %q", got[0].Name, got[1].Name)
	}

	if got := m.MatchCategory(events, model.CategoryDance); len(got) != 0 {
		t.Errorf("expected no dance matches, got %d", len(got))
	}
}

// Events are matched on category alone; an out-of-window run still matches.
func TestMatchCategoryIgnoresDates(t *testing.T) {
	m := testMatcher(time.Date(2024, 7, 15, 12, 0, 0, 0, time.UTC))
	events := []model.Event{
		{Name: "Winter Jazz Series", Category: model.CategoryMusic,
			StartDate: "2024-12-01T19:00:00", EndDate: "2024-12-05T23:00:00"},
	}

	if got := m.MatchCategory(events, model.CategoryMusic); len(got) != 1 {
		t.Errorf("matched %d events, want 1", len(got))
	}
}
