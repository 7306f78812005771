// Package memory is the on-disk interaction log: an append-only JSON file
// of completed user interactions plus stored preferences.
package memory

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	appLog "mtlfest/internal/log"
)

// Interaction is one completed user request/response pair.
type Interaction struct {
	ID             string    `json:"id"`
	Timestamp      time.Time `json:"timestamp"`
	UserInput      string    `json:"user_input"`
	Response       string    `json:"response"`
	FestivalsFound int       `json:"festivals_found"`
}

// Preference is one stored user preference with its last update time.
type Preference struct {
	Value     string    `json:"value"`
	Timestamp time.Time `json:"timestamp"`
}

type storeData struct {
	Interactions []Interaction         `json:"interactions"`
	Preferences  map[string]Preference `json:"preferences"`
	Metadata     struct {
		CreatedAt time.Time `json:"created_at"`
		Version   string    `json:"version"`
	} `json:"metadata"`
}

// Stats summarizes store contents.
type Stats struct {
	TotalInteractions int `json:"total_interactions"`
	TotalPreferences  int `json:"total_preferences"`
}

// Store reads and appends to the memory file. All methods are safe for
// concurrent use; every append persists immediately.
type Store struct {
	path string

	mu   sync.Mutex
	data storeData
}

// Open loads the store at path, creating an empty one on first run.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("memory path is empty")
	}

	s := &Store{path: path}

	raw, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		s.data = emptyData()
		return s, nil
	}

	if err := json.Unmarshal(raw, &s.data); err != nil {
		// A corrupt memory file should not brick the assistant; start
		// fresh and let the next save replace it.
		appLog.Warn("memory file unreadable, starting fresh", "path", path, "err", err.Error())
		s.data = emptyData()
		return s, nil
	}
	if s.data.Preferences == nil {
		s.data.Preferences = make(map[string]Preference)
	}

	return s, nil
}

func emptyData() storeData {
	d := storeData{
		Interactions: []Interaction{},
		Preferences:  make(map[string]Preference),
	}
	d.Metadata.CreatedAt = time.Now().UTC()
	d.Metadata.Version = "1.0"
	return d
}

// AppendInteraction records one completed interaction and persists.
func (s *Store) AppendInteraction(userInput, response string, festivalsFound int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data.Interactions = append(s.data.Interactions, Interaction{
		ID:             uuid.NewString(),
		Timestamp:      time.Now().UTC(),
		UserInput:      userInput,
		Response:       response,
		FestivalsFound: festivalsFound,
	})

	return s.saveLocked()
}

// RecentInteractions returns up to n most recent interactions, oldest
// first.
func (s *Store) RecentInteractions(n int) []Interaction {
	s.mu.Lock()
	defer s.mu.Unlock()

	if n <= 0 || len(s.data.Interactions) == 0 {
		return nil
	}
	if n > len(s.data.Interactions) {
		n = len(s.data.Interactions)
	}
	tail := s.data.Interactions[len(s.data.Interactions)-n:]
	out := make([]Interaction, n)
	copy(out, tail)
	return out
}

// SetPreference stores one user preference and persists.
func (s *Store) SetPreference(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data.Preferences[key] = Preference{
		Value:     value,
		Timestamp: time.Now().UTC(),
	}
	return s.saveLocked()
}

// GetPreference returns a stored preference value.
func (s *Store) GetPreference(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pref, ok := s.data.Preferences[key]
	return pref.Value, ok
}

// Stats returns store counters.
func (s *Store) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Stats{
		TotalInteractions: len(s.data.Interactions),
		TotalPreferences:  len(s.data.Preferences),
	}
}

// saveLocked writes the store atomically: temp file in the same directory,
// then rename. Caller holds s.mu.
func (s *Store) saveLocked() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	raw, err := json.MarshalIndent(&s.data, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".mtlfest-memory-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}

	return os.Rename(tmpName, s.path)
}
