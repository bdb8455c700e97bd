// Kinograph - Movie Recommendation Service
// Copyright 2026 Kinograph Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kinograph/kinograph

package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kinograph/kinograph/internal/recommend"
)

func testItems() []recommend.Item {
	return []recommend.Item{
		{ID: 1, Title: "Alpha", Genres: []string{"Drama"}, Year: 1994, Rating: 9.3, Plot: "A prison drama", Cast: []string{"Tim Robbins"}},
		{ID: 2, Title: "Beta", Genres: []string{"Crime", "Drama"}, Year: 1972, Rating: 9.2, Plot: "A mob saga", Cast: []string{"Al Pacino"}},
		{ID: 3, Title: "Gamma", Genres: []string{"Sci-Fi"}, Year: 2010, Rating: 8.8, Plot: "Dreams within dreams", Cast: []string{"Leonardo DiCaprio"}},
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		items   []recommend.Item
		wantErr bool
	}{
		{name: "valid", items: testItems()},
		{name: "empty catalog", items: nil},
		{
			name: "duplicate id",
			items: []recommend.Item{
				{ID: 1, Title: "A", Genres: []string{"Drama"}},
				{ID: 1, Title: "B", Genres: []string{"Drama"}},
			},
			wantErr: true,
		},
		{
			name:    "zero id",
			items:   []recommend.Item{{ID: 0, Title: "A", Genres: []string{"Drama"}}},
			wantErr: true,
		},
		{
			name:    "missing title",
			items:   []recommend.Item{{ID: 1, Genres: []string{"Drama"}}},
			wantErr: true,
		},
		{
			name:    "missing genres",
			items:   []recommend.Item{{ID: 1, Title: "A"}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := New(tt.items)
			if (err != nil) != tt.wantErr {
				t.Errorf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadEmbedded(t *testing.T) {
	t.Parallel()

	c, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error = %v", err)
	}
	if c.Len() == 0 {
		t.Fatal("embedded catalog is empty")
	}
	if got := c.Get(1); got == nil || got.Title == "" {
		t.Error("embedded catalog is missing item 1")
	}
	if len(c.Genres()) == 0 {
		t.Error("embedded catalog has no genres")
	}
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	t.Run("valid file", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "movies.json")
		content := `[{"id": 7, "title": "Custom", "genres": ["Drama"], "year": 2020}]`
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}
		c, err := Load(path)
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if c.Len() != 1 || c.Get(7) == nil {
			t.Error("file catalog not loaded")
		}
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		if _, err := Load(filepath.Join(t.TempDir(), "nope.json")); err == nil {
			t.Error("Load() = nil error for missing file")
		}
	})

	t.Run("malformed json", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "bad.json")
		if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
			t.Fatal(err)
		}
		if _, err := Load(path); err == nil {
			t.Error("Load() = nil error for malformed json")
		}
	})
}

func TestSearch(t *testing.T) {
	t.Parallel()

	c, err := New(testItems())
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		query   Query
		wantIDs []int
		wantErr bool
	}{
		{name: "zero query returns all", query: Query{}, wantIDs: []int{1, 2, 3}},
		{name: "title substring", query: Query{Search: "alph"}, wantIDs: []int{1}},
		{name: "plot substring", query: Query{Search: "mob"}, wantIDs: []int{2}},
		{name: "cast substring", query: Query{Search: "dicaprio"}, wantIDs: []int{3}},
		{name: "no match", query: Query{Search: "zzz"}, wantIDs: []int{}},
		{name: "genre filter", query: Query{Genres: []string{"Drama"}}, wantIDs: []int{1, 2}},
		{name: "genre filter case-insensitive", query: Query{Genres: []string{"sci-fi"}}, wantIDs: []int{3}},
		{name: "genre any-of", query: Query{Genres: []string{"Crime", "Sci-Fi"}}, wantIDs: []int{2, 3}},
		{name: "sort by title", query: Query{Sort: SortTitle}, wantIDs: []int{1, 2, 3}},
		{name: "sort by year desc", query: Query{Sort: SortYear}, wantIDs: []int{3, 1, 2}},
		{name: "sort by rating desc", query: Query{Sort: SortRating}, wantIDs: []int{1, 2, 3}},
		{name: "search with sort", query: Query{Genres: []string{"Drama"}, Sort: SortYear}, wantIDs: []int{1, 2}},
		{name: "unknown sort", query: Query{Sort: "bogus"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := c.Search(tt.query)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Search() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if len(got) != len(tt.wantIDs) {
				t.Fatalf("Search() returned %d items, want %d", len(got), len(tt.wantIDs))
			}
			for i, want := range tt.wantIDs {
				if got[i].ID != want {
					t.Errorf("result[%d].ID = %d, want %d", i, got[i].ID, want)
				}
			}
		})
	}
}
