// Package storage holds the two durable stores of the engine: the merged
// trip list document and the photo upload journal. Each store is owned by
// exactly one component and mutated only through it.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/courierapp/tripsync/internal/model"
)

type tripDocument struct {
	Trips   []model.Trip `json:"trips"`
	SavedAt time.Time    `json:"saved_at"`
}

// TripFileStore persists the merged trip list as a single JSON document
// with full-read and full-replace-write semantics. Writes go through a
// temp file and rename, so a crash mid-write leaves the previous
// document intact.
type TripFileStore struct {
	filePath string
	mu       sync.Mutex
}

func NewTripFileStore(filePath string) (*TripFileStore, error) {
	if err := os.MkdirAll(filepath.Dir(filePath), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create trips storage dir: %w", err)
	}
	return &TripFileStore{filePath: filePath}, nil
}

// Load reads the persisted trip list. A missing file is an empty list,
// not an error: first run and wiped storage look the same.
func (s *TripFileStore) Load() ([]model.Trip, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := os.Open(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open trips file: %w", err)
	}
	defer file.Close()

	var doc tripDocument
	if err := json.NewDecoder(file).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode trips file: %w", err)
	}
	return doc.Trips, nil
}

// Replace overwrites the persisted trip list with the given one.
func (s *TripFileStore) Replace(trips []model.Trip) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := tripDocument{Trips: trips, SavedAt: time.Now().UTC()}
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode trips: %w", err)
	}

	tmpPath := s.filePath + ".tmp"
	if err := os.WriteFile(tmpPath, raw, 0o644); err != nil {
		return fmt.Errorf("failed to write trips file: %w", err)
	}
	if err := os.Rename(tmpPath, s.filePath); err != nil {
		return fmt.Errorf("failed to replace trips file: %w", err)
	}
	return nil
}
