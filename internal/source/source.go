// Package source contains one adapter per external festival listing source.
//
// Every adapter turns one already-fetched payload shape into canonical
// model.Event records. Missing fields get per-field defaults, malformed
// records are skipped with a warning, and a source that fails entirely
// contributes zero events without affecting the others.
package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	appLog "mtlfest/internal/log"
	"mtlfest/internal/model"
)

// Montreal city center, used by geo-bounded source queries.
const (
	CityLat = 45.5017
	CityLon = -73.5673
)

// Default field values applied when a payload omits them.
const (
	DefaultName  = "Unknown Event"
	DefaultVenue = "Unknown Venue"
	DefaultCity  = "Montreal"
	DefaultPrice = "Free"
)

// fetchTimeout bounds every outbound call; a slow source is treated the
// same as a failed one.
const fetchTimeout = 15 * time.Second

// Source is the adapter contract. Fetch returns the events one source could
// produce right now; an error means the whole source failed (bad
// credentials, network, unparseable body) and is isolated by the caller.
type Source interface {
	// Name is the origin identifier stamped into each Event.
	Name() string

	// Enabled reports whether the adapter has what it needs to run
	// (credentials, URLs). Disabled sources contribute nothing.
	Enabled() bool

	Fetch(ctx context.Context) ([]model.Event, error)
}

// Client is the shared HTTP helper all JSON-speaking adapters use.
type Client struct {
	http *http.Client
}

// NewClient returns a Client with the standard per-source timeout.
func NewClient() *Client {
	return &Client{
		http: &http.Client{
			Timeout: fetchTimeout,
		},
	}
}

// GetJSON issues a GET with optional headers and decodes the response body
// into out. Non-2xx statuses are errors.
func (c *Client) GetJSON(ctx context.Context, rawURL string, headers map[string]string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Drain a little of the body so the error is diagnosable without
		// logging whole payloads.
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return fmt.Errorf("%s: %s", resp.Status, string(snippet))
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

// GetBody issues a GET and returns the raw response body, for sources that
// do not speak JSON (ICS feeds).
func (c *Client) GetBody(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.New(resp.Status)
	}

	return io.ReadAll(resp.Body)
}

// buildURL assembles base + query parameters.
func buildURL(base string, params url.Values) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", err
	}
	u.RawQuery = params.Encode()
	return u.String(), nil
}

// redactURL hides paths and query strings (often carrying keys) in logs.
func redactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "...(redacted)"
	}
	return u.Scheme + "://" + u.Host + "/...(redacted)"
}

// warnSkip logs one skipped record. Record-level malformation never aborts
// a batch.
func warnSkip(source string, reason error) {
	appLog.Warn("skipping malformed record", "source", source, "reason", fmt.Sprint(reason))
}

var errMissingCredentials = errors.New("missing credentials")
