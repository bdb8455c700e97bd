// Kinograph - Movie Recommendation Service
// Copyright 2026 Kinograph Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kinograph/kinograph

package recommend

import (
	"math"
	"testing"

	"github.com/rs/zerolog"
)

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}

func newTestEngine(t *testing.T, items []Item, ratings []Rating, cfg *Config) *Engine {
	t.Helper()
	e, err := NewEngine(items, ratings, cfg, testLogger())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	return e
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestUserSimilarity(t *testing.T) {
	t.Parallel()

	items := []Item{
		{ID: 1, Title: "A", Genres: []string{"Drama"}},
		{ID: 2, Title: "B", Genres: []string{"Drama"}},
		{ID: 3, Title: "C", Genres: []string{"Drama"}},
	}

	tests := []struct {
		name    string
		ratings []Rating
		userA   int
		userB   int
		want    float64
	}{
		{
			name: "identical single rating",
			ratings: []Rating{
				{UserID: 1, ItemID: 1, Score: 5},
				{UserID: 2, ItemID: 1, Score: 5},
			},
			userA: 1,
			userB: 2,
			want:  1.0,
		},
		{
			name: "single common item different scores",
			// one shared dimension always yields similarity 1 for
			// positive scores: (5*4)/(sqrt(25)*sqrt(16))
			ratings: []Rating{
				{UserID: 1, ItemID: 1, Score: 5},
				{UserID: 2, ItemID: 1, Score: 4},
				{UserID: 2, ItemID: 2, Score: 5},
			},
			userA: 1,
			userB: 2,
			want:  1.0,
		},
		{
			name: "no common items",
			ratings: []Rating{
				{UserID: 1, ItemID: 1, Score: 5},
				{UserID: 2, ItemID: 2, Score: 5},
			},
			userA: 1,
			userB: 2,
			want:  0,
		},
		{
			name: "second user has no ratings",
			ratings: []Rating{
				{UserID: 1, ItemID: 1, Score: 5},
			},
			userA: 1,
			userB: 2,
			want:  0,
		},
		{
			name:    "neither user has ratings",
			ratings: nil,
			userA:   1,
			userB:   2,
			want:    0,
		},
		{
			name: "self similarity over non-empty vector",
			ratings: []Rating{
				{UserID: 1, ItemID: 1, Score: 3},
				{UserID: 1, ItemID: 2, Score: 5},
				{UserID: 1, ItemID: 3, Score: 2},
			},
			userA: 1,
			userB: 1,
			want:  1.0,
		},
		{
			name: "two common items",
			// dot = 5*4 + 2*4 = 28, norms sqrt(29)*sqrt(32)
			ratings: []Rating{
				{UserID: 1, ItemID: 1, Score: 5},
				{UserID: 1, ItemID: 2, Score: 2},
				{UserID: 2, ItemID: 1, Score: 4},
				{UserID: 2, ItemID: 2, Score: 4},
			},
			userA: 1,
			userB: 2,
			want:  28.0 / (math.Sqrt(29) * math.Sqrt(32)),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			e := newTestEngine(t, items, tt.ratings, nil)
			got := e.UserSimilarity(tt.userA, tt.userB)
			if !almostEqual(got, tt.want) {
				t.Errorf("UserSimilarity(%d, %d) = %v, want %v", tt.userA, tt.userB, got, tt.want)
			}
		})
	}
}

func TestUserSimilarityRange(t *testing.T) {
	t.Parallel()

	items := []Item{
		{ID: 1, Title: "A", Genres: []string{"Drama"}},
		{ID: 2, Title: "B", Genres: []string{"Action"}},
		{ID: 3, Title: "C", Genres: []string{"Comedy"}},
	}
	ratings := []Rating{
		{UserID: 1, ItemID: 1, Score: 5},
		{UserID: 1, ItemID: 2, Score: 1},
		{UserID: 1, ItemID: 3, Score: 3},
		{UserID: 2, ItemID: 1, Score: 1},
		{UserID: 2, ItemID: 2, Score: 5},
		{UserID: 3, ItemID: 2, Score: 2},
		{UserID: 3, ItemID: 3, Score: 4},
	}
	e := newTestEngine(t, items, ratings, nil)

	for _, a := range []int{1, 2, 3} {
		for _, b := range []int{1, 2, 3} {
			sim := e.UserSimilarity(a, b)
			if sim < 0 || sim > 1+1e-9 {
				t.Errorf("UserSimilarity(%d, %d) = %v, want value in [0,1]", a, b, sim)
			}
		}
	}
}

func TestUserSimilarityDuplicatePairing(t *testing.T) {
	t.Parallel()

	// User 1 rated item 1 twice. The first vector sums every entry while
	// the second vector pairs by first occurrence, so similarity is not
	// symmetric in the presence of duplicates. That asymmetry is part of
	// the contract and must not drift.
	items := []Item{{ID: 1, Title: "A", Genres: []string{"Drama"}}}
	ratings := []Rating{
		{UserID: 1, ItemID: 1, Score: 5},
		{UserID: 1, ItemID: 1, Score: 3},
		{UserID: 2, ItemID: 1, Score: 4},
	}
	e := newTestEngine(t, items, ratings, nil)

	// forward: entries (5,4) and (3,4); dot=32, norms sqrt(34)*sqrt(32)
	wantForward := 32.0 / (math.Sqrt(34) * math.Sqrt(32))
	if got := e.UserSimilarity(1, 2); !almostEqual(got, wantForward) {
		t.Errorf("UserSimilarity(1, 2) = %v, want %v", got, wantForward)
	}

	// reverse: single entry (4,5) paired against user 1's first rating
	if got := e.UserSimilarity(2, 1); !almostEqual(got, 1.0) {
		t.Errorf("UserSimilarity(2, 1) = %v, want 1.0", got)
	}
}

func TestItemSimilarity(t *testing.T) {
	t.Parallel()

	items := []Item{
		{ID: 1, Title: "A", Genres: []string{"Drama"}},
		{ID: 2, Title: "B", Genres: []string{"Drama"}},
		{ID: 3, Title: "C", Genres: []string{"Drama"}},
	}

	tests := []struct {
		name    string
		ratings []Rating
		itemA   int
		itemB   int
		want    float64
	}{
		{
			name: "common raters",
			// dot = 5*4 + 4*5 = 40, norms sqrt(41)*sqrt(41)
			ratings: []Rating{
				{UserID: 1, ItemID: 1, Score: 5},
				{UserID: 1, ItemID: 2, Score: 4},
				{UserID: 2, ItemID: 1, Score: 4},
				{UserID: 2, ItemID: 2, Score: 5},
			},
			itemA: 1,
			itemB: 2,
			want:  40.0 / 41.0,
		},
		{
			name: "disjoint raters",
			ratings: []Rating{
				{UserID: 1, ItemID: 1, Score: 5},
				{UserID: 2, ItemID: 2, Score: 5},
			},
			itemA: 1,
			itemB: 2,
			want:  0,
		},
		{
			name: "unrated item",
			ratings: []Rating{
				{UserID: 1, ItemID: 1, Score: 5},
			},
			itemA: 1,
			itemB: 3,
			want:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			e := newTestEngine(t, items, tt.ratings, nil)
			got := e.ItemSimilarity(tt.itemA, tt.itemB)
			if !almostEqual(got, tt.want) {
				t.Errorf("ItemSimilarity(%d, %d) = %v, want %v", tt.itemA, tt.itemB, got, tt.want)
			}
		})
	}
}
