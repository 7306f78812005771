package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func configPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "mtlfest.yaml")
}

func TestLoadCreatesDefaultOnFirstRun(t *testing.T) {
	path := configPath(t)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("first-run Load: %v", err)
	}
	if cfg.Timezone != "America/Montreal" {
		t.Errorf("Timezone = %q", cfg.Timezone)
	}
	if cfg.MaxEvents != 50 {
		t.Errorf("MaxEvents = %d", cfg.MaxEvents)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("default config file not written: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("config file perm = %o, want 600", perm)
	}
}

func TestLoadNormalizesPartialConfig(t *testing.T) {
	path := configPath(t)
	raw := []byte("max_events: 10\ncredentials:\n  ticketmaster_key: tm-key\n")
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.MaxEvents != 25 {
		t.Errorf("MaxEvents = %d, want the 25 floor", cfg.MaxEvents)
	}
	if cfg.Credentials.TicketmasterKey != "tm-key" {
		t.Errorf("TicketmasterKey = %q", cfg.Credentials.TicketmasterKey)
	}
	if cfg.Listen == "" || cfg.Timezone == "" || cfg.RefreshCron == "" {
		t.Error("normalization left zero values")
	}
}

func TestNormalizeClampsMaxEvents(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{0, 50},
		{-3, 50},
		{10, 25},
		{25, 25},
		{40, 40},
		{50, 50},
		{500, 50},
	}

	for _, tt := range tests {
		cfg := DefaultConfig()
		cfg.MaxEvents = tt.in
		cfg.Normalize()
		if cfg.MaxEvents != tt.want {
			t.Errorf("Normalize(MaxEvents=%d) = %d, want %d", tt.in, cfg.MaxEvents, tt.want)
		}
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := configPath(t)

	cfg := DefaultConfig()
	cfg.Listen = "127.0.0.1:9999"
	cfg.Credentials.MeetupKey = "mu-key"
	cfg.ScrapeURLs = []string{"https://example.com/events"}
	cfg.Gemini.APIKey = "g-key"

	if err := cfg.Save(path); err != nil {
		t.Fatal(err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Listen != "127.0.0.1:9999" {
		t.Errorf("Listen = %q", loaded.Listen)
	}
	if loaded.Credentials.MeetupKey != "mu-key" {
		t.Errorf("MeetupKey = %q", loaded.Credentials.MeetupKey)
	}
	if len(loaded.ScrapeURLs) != 1 || loaded.ScrapeURLs[0] != "https://example.com/events" {
		t.Errorf("ScrapeURLs = %v", loaded.ScrapeURLs)
	}
	if loaded.Gemini.APIKey != "g-key" {
		t.Errorf("Gemini.APIKey = %q", loaded.Gemini.APIKey)
	}
}

func TestLocation(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Timezone = "UTC"
	if loc := cfg.Location(); loc != time.UTC {
		t.Errorf("Location() = %v, want UTC", loc)
	}

	cfg.Timezone = "Not/AZone"
	if loc := cfg.Location(); loc != time.UTC {
		t.Errorf("invalid timezone should fall back to UTC, got %v", loc)
	}
}

func TestLoadEmptyPath(t *testing.T) {
	if _, err := Load(""); err == nil {
		t.Error("Load with empty path must fail")
	}
}
