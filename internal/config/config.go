package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// CredentialsConfig holds one named credential per live source. An empty
// value deactivates the corresponding adapter; there are no partial states.
type CredentialsConfig struct {
	// TicketmasterKey is the Discovery API key.
	TicketmasterKey string `yaml:"ticketmaster_key" json:"ticketmaster_key"`
	// EventbriteToken is the OAuth bearer token for the search API.
	EventbriteToken string `yaml:"eventbrite_token" json:"eventbrite_token"`
	// MeetupKey is the open-events API key.
	MeetupKey string `yaml:"meetup_key" json:"meetup_key"`
	// FacebookToken is the Graph API access token.
	FacebookToken string `yaml:"facebook_token" json:"facebook_token"`
	// PlacesKey is the map text-search API key.
	PlacesKey string `yaml:"places_key" json:"places_key"`
}

// GeminiConfig configures the hosted text generator.
type GeminiConfig struct {
	// APIKey for the generativelanguage endpoint. Empty means generation is
	// disabled and responses always use the templated fallback.
	APIKey string `yaml:"api_key" json:"api_key"`
	// Model name, e.g. "gemini-1.5-pro".
	Model string `yaml:"model" json:"model"`
}

// Config is the top-level application configuration.
type Config struct {
	// Listen is the HTTP listen address for serve mode.
	Listen string `yaml:"listen" json:"listen"`

	// Timezone is the IANA timezone all day/time interpretation happens in
	// (e.g. "America/Montreal").
	Timezone string `yaml:"timezone" json:"timezone"`

	// RefreshCron is a cron-style schedule (e.g. "*/15 * * * *") used by
	// serve mode to refresh the aggregated event cache.
	RefreshCron string `yaml:"refresh" json:"refresh"`

	// MaxEvents caps the aggregated result list. First N survive; there is
	// no ranking.
	MaxEvents int `yaml:"max_events" json:"max_events"`

	// MemoryPath is the JSON interaction log location.
	MemoryPath string `yaml:"memory_path" json:"memory_path"`

	// Credentials activate individual live sources.
	Credentials CredentialsConfig `yaml:"credentials" json:"credentials"`

	// OpenDataURL is the open-data portal datastore search endpoint.
	OpenDataURL string `yaml:"open_data_url" json:"open_data_url"`

	// CityCalURL is the city events ICS feed. Empty disables the adapter.
	CityCalURL string `yaml:"city_cal_url" json:"city_cal_url"`

	// ScrapeURLs are tourism listing pages rendered headlessly. Empty
	// disables the scraping adapter.
	ScrapeURLs []string `yaml:"scrape_urls" json:"scrape_urls"`

	Gemini GeminiConfig `yaml:"gemini" json:"gemini"`
}

// DefaultConfig returns an in-memory default configuration.
func DefaultConfig() *Config {
	return &Config{
		Listen:      "127.0.0.1:8080",
		Timezone:    "America/Montreal",
		RefreshCron: "*/15 * * * *",
		MaxEvents:   50,
		MemoryPath:  "./var/memory.json",
		OpenDataURL: "https://www.donneesquebec.ca/recherche/api/3/action/datastore_search",
		CityCalURL:  "",
		ScrapeURLs:  []string{},
		Gemini: GeminiConfig{
			Model: "gemini-1.5-pro",
		},
	}
}

// Normalize fills in missing/zero values with sensible defaults so that
// partially-filled configs (e.g., older versions) still behave correctly.
func (c *Config) Normalize() {
	if c.Listen == "" {
		c.Listen = "127.0.0.1:8080"
	}
	if c.Timezone == "" {
		c.Timezone = "America/Montreal"
	}
	if c.RefreshCron == "" {
		c.RefreshCron = "*/15 * * * *"
	}
	// MaxEvents stays inside the documented 25..50 band.
	if c.MaxEvents <= 0 {
		c.MaxEvents = 50
	}
	if c.MaxEvents < 25 {
		c.MaxEvents = 25
	}
	if c.MaxEvents > 50 {
		c.MaxEvents = 50
	}
	if c.MemoryPath == "" {
		c.MemoryPath = "./var/memory.json"
	}
	if c.ScrapeURLs == nil {
		c.ScrapeURLs = []string{}
	}
	if c.Gemini.Model == "" {
		c.Gemini.Model = "gemini-1.5-pro"
	}
}

// Load loads configuration from the given YAML path.
//
// Behavior:
//   - If the file does not exist:
//   - create parent directory if needed
//   - write a default config with 0600 perms
//   - return the default config
//   - If the file exists:
//   - read YAML and unmarshal into Config
//   - normalize defaults
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			// First run: create default config file.
			cfg := DefaultConfig()
			if err := Save(path, cfg); err != nil {
				// Even if save fails, return cfg with error so caller can decide.
				return cfg, err
			}
			return cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.Normalize()

	return &cfg, nil
}

// Save writes the given configuration to the specified path.
//
// Implementation details:
//   - Ensures parent directory exists (0700).
//   - Marshals cfg to YAML.
//   - Writes atomically via a temp file + rename.
//   - Ensures final file permissions are 0600 (credentials live here).
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}

	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	// Atomic write: write to temp file in same directory then rename.
	tmp, err := os.CreateTemp(dir, ".mtlfest-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}

	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}

	if err := os.Rename(tmpName, path); err != nil {
		return err
	}

	return nil
}

// Save is a convenience method on Config that delegates to the package-level
// Save function.
func (c *Config) Save(path string) error {
	return Save(path, c)
}

// Location resolves the configured timezone, falling back to UTC when the
// name cannot be loaded. Callers get a usable *time.Location either way.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
