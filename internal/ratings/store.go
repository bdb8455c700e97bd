// Kinograph - Movie Recommendation Service
// Copyright 2026 Kinograph Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kinograph/kinograph

// Package ratings holds the mutable rating set. The store enforces
// append-or-update semantics keyed by (user, item); the recommendation
// engine itself never sees duplicates from this store, though it tolerates
// them in its own input contract.
package ratings

import (
	_ "embed"
	"fmt"
	"os"
	"sync"

	"github.com/goccy/go-json"

	"github.com/kinograph/kinograph/internal/recommend"
)

//go:embed ratings.json
var embeddedRatings []byte

// Store is a concurrency-safe in-memory rating set.
type Store struct {
	mu      sync.RWMutex
	ratings []recommend.Rating
}

// NewStore returns a store seeded with the given ratings. Seed entries
// pass through Upsert, so duplicate (user, item) pairs collapse to the
// last occurrence.
func NewStore(seed []recommend.Rating) *Store {
	s := &Store{ratings: make([]recommend.Rating, 0, len(seed))}
	for _, r := range seed {
		s.Upsert(r)
	}
	return s
}

// Load builds a store from a JSON file, or the embedded seed when path
// is empty.
func Load(path string) (*Store, error) {
	data := embeddedRatings
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading ratings file: %w", err)
		}
	}
	var seed []recommend.Rating
	if err := json.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("parsing ratings: %w", err)
	}
	for _, r := range seed {
		if err := validate(r); err != nil {
			return nil, fmt.Errorf("invalid seed rating: %w", err)
		}
	}
	return NewStore(seed), nil
}

func validate(r recommend.Rating) error {
	if r.UserID <= 0 {
		return fmt.Errorf("user id must be positive, got %d", r.UserID)
	}
	if r.ItemID <= 0 {
		return fmt.Errorf("item id must be positive, got %d", r.ItemID)
	}
	if r.Score < 1 || r.Score > 5 {
		return fmt.Errorf("score must be in [1,5], got %d", r.Score)
	}
	return nil
}

// Upsert records a rating, replacing any existing entry for the same
// (user, item) pair in place. Returns true when a new entry was appended,
// false when an existing one was updated.
func (s *Store) Upsert(r recommend.Rating) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.ratings {
		if s.ratings[i].UserID == r.UserID && s.ratings[i].ItemID == r.ItemID {
			s.ratings[i] = r
			return false
		}
	}
	s.ratings = append(s.ratings, r)
	return true
}

// All returns a copy of every rating in insertion order. The copy is safe
// to hand to a new engine snapshot.
func (s *Store) All() []recommend.Rating {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]recommend.Rating, len(s.ratings))
	copy(out, s.ratings)
	return out
}

// ForUser returns a copy of one user's ratings in insertion order.
func (s *Store) ForUser(userID int) []recommend.Rating {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []recommend.Rating
	for _, r := range s.ratings {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out
}

// Len returns the number of stored ratings.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.ratings)
}
