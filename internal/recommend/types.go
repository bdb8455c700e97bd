// Kinograph - Movie Recommendation Service
// Copyright 2026 Kinograph Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kinograph/kinograph

// Package recommend implements the recommendation core: cosine similarity
// over rating vectors, user-based and item-based collaborative filtering,
// content-based genre affinity, and a weighted hybrid combiner.
//
// The package has no dependencies on other internal packages. Callers hand
// the engine an item catalog and a rating snapshot at construction time and
// rebuild the engine whenever the rating set changes.
package recommend

import "sort"

// Item is a catalog entry. The engine only interprets ID and Genres;
// the remaining fields ride along for presentation.
type Item struct {
	ID       int      `json:"id"`
	Title    string   `json:"title"`
	Genres   []string `json:"genres"`
	Year     int      `json:"year"`
	Runtime  int      `json:"runtime,omitempty"`
	Rating   float64  `json:"rating,omitempty"`
	Plot     string   `json:"plot,omitempty"`
	Director string   `json:"director,omitempty"`
	Cast     []string `json:"cast,omitempty"`
	Poster   string   `json:"poster,omitempty"`
}

// Rating is one user's score for one item, on a 1..5 scale.
type Rating struct {
	UserID int `json:"user_id"`
	ItemID int `json:"item_id"`
	Score  int `json:"score"`
}

// Result is a single ranked recommendation. Item points into the engine's
// snapshot catalog and must not be mutated by callers.
type Result struct {
	Item   *Item   `json:"item"`
	Score  float64 `json:"score"`
	Reason string  `json:"reason"`
}

// Snapshot is an immutable view of the catalog and rating set. All
// recommendation calls are pure functions of a snapshot, so concurrent
// calls against the same snapshot are safe without locking. Replace the
// whole snapshot (build a new engine) when ratings change; never mutate
// the inputs after construction.
type Snapshot struct {
	items  []Item
	byID   map[int]*Item
	byUser map[int][]Rating
	byItem map[int][]Rating

	// user ids in ascending order, for deterministic enumeration
	userIDs []int
}

// NewSnapshot indexes the given catalog and ratings. The slices are
// retained by reference, not copied; ownership passes to the snapshot.
func NewSnapshot(items []Item, ratings []Rating) *Snapshot {
	s := &Snapshot{
		items:  items,
		byID:   make(map[int]*Item, len(items)),
		byUser: make(map[int][]Rating),
		byItem: make(map[int][]Rating),
	}
	for i := range items {
		s.byID[items[i].ID] = &items[i]
	}
	for _, r := range ratings {
		if _, seen := s.byUser[r.UserID]; !seen {
			s.userIDs = append(s.userIDs, r.UserID)
		}
		s.byUser[r.UserID] = append(s.byUser[r.UserID], r)
		s.byItem[r.ItemID] = append(s.byItem[r.ItemID], r)
	}
	sort.Ints(s.userIDs)
	return s
}

// NumItems returns the catalog size.
func (s *Snapshot) NumItems() int { return len(s.items) }

// NumUsers returns the number of distinct users in the rating set.
func (s *Snapshot) NumUsers() int { return len(s.userIDs) }

// NumRatings returns the number of rating entries, duplicates included.
func (s *Snapshot) NumRatings() int {
	n := 0
	for _, rs := range s.byUser {
		n += len(rs)
	}
	return n
}

// Item returns the catalog entry for id, or nil when absent.
func (s *Snapshot) Item(id int) *Item { return s.byID[id] }

// ratedSet returns the ids of every item the user has rated, at any score.
func (s *Snapshot) ratedSet(userID int) map[int]struct{} {
	rs := s.byUser[userID]
	set := make(map[int]struct{}, len(rs))
	for _, r := range rs {
		set[r.ItemID] = struct{}{}
	}
	return set
}

// liked returns the user's ratings at or above threshold, in input order.
// Duplicate (user,item) entries are preserved and each contributes.
func (s *Snapshot) liked(userID, threshold int) []Rating {
	var out []Rating
	for _, r := range s.byUser[userID] {
		if r.Score >= threshold {
			out = append(out, r)
		}
	}
	return out
}
