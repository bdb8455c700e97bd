// Kinograph - Movie Recommendation Service
// Copyright 2026 Kinograph Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kinograph/kinograph

// Package catalog holds the movie catalog. The catalog is loaded once at
// startup and immutable for the process lifetime; the recommendation engine
// and the API layer both read from it without synchronization.
package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/goccy/go-json"

	"github.com/kinograph/kinograph/internal/recommend"
)

//go:embed movies.json
var embeddedMovies []byte

// Sort orders accepted by Search.
const (
	SortTitle  = "title"
	SortYear   = "year"
	SortRating = "rating"
)

// Query narrows and orders a catalog listing. Zero value returns the full
// catalog in input order.
type Query struct {
	// Search matches case-insensitive substrings of title, plot, and
	// cast member names.
	Search string

	// Genres keeps items carrying at least one of the listed genres.
	Genres []string

	// Sort is one of the Sort constants; empty keeps input order.
	// Title sorts ascending; year and rating sort descending.
	Sort string
}

// Catalog is an immutable set of movies.
type Catalog struct {
	items  []recommend.Item
	byID   map[int]*recommend.Item
	genres []string
}

// New validates and indexes the given items. Items must have unique
// positive ids, a title, and at least one genre.
func New(items []recommend.Item) (*Catalog, error) {
	c := &Catalog{
		items: items,
		byID:  make(map[int]*recommend.Item, len(items)),
	}
	genreSet := make(map[string]struct{})
	for i := range items {
		it := &items[i]
		if it.ID <= 0 {
			return nil, fmt.Errorf("item %q: id must be positive, got %d", it.Title, it.ID)
		}
		if _, dup := c.byID[it.ID]; dup {
			return nil, fmt.Errorf("duplicate item id %d", it.ID)
		}
		if it.Title == "" {
			return nil, fmt.Errorf("item %d: title is required", it.ID)
		}
		if len(it.Genres) == 0 {
			return nil, fmt.Errorf("item %d (%s): at least one genre is required", it.ID, it.Title)
		}
		c.byID[it.ID] = it
		for _, g := range it.Genres {
			genreSet[g] = struct{}{}
		}
	}
	for g := range genreSet {
		c.genres = append(c.genres, g)
	}
	sort.Strings(c.genres)
	return c, nil
}

// Load reads a catalog from a JSON file, or from the embedded seed when
// path is empty.
func Load(path string) (*Catalog, error) {
	data := embeddedMovies
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading catalog file: %w", err)
		}
	}
	var items []recommend.Item
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}
	c, err := New(items)
	if err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}
	return c, nil
}

// Items returns the full catalog in input order. Callers must not mutate
// the returned slice.
func (c *Catalog) Items() []recommend.Item { return c.items }

// Len returns the catalog size.
func (c *Catalog) Len() int { return len(c.items) }

// Get returns the movie with the given id, or nil when absent.
func (c *Catalog) Get(id int) *recommend.Item { return c.byID[id] }

// Genres returns the sorted set of distinct genres across the catalog.
func (c *Catalog) Genres() []string { return c.genres }

// Search returns items matching the query, freshly allocated so callers
// may reorder the result.
func (c *Catalog) Search(q Query) ([]recommend.Item, error) {
	switch q.Sort {
	case "", SortTitle, SortYear, SortRating:
	default:
		return nil, fmt.Errorf("unknown sort order %q", q.Sort)
	}

	needle := strings.ToLower(strings.TrimSpace(q.Search))
	out := make([]recommend.Item, 0, len(c.items))
	for _, it := range c.items {
		if needle != "" && !matchesText(&it, needle) {
			continue
		}
		if len(q.Genres) > 0 && !hasAnyGenre(&it, q.Genres) {
			continue
		}
		out = append(out, it)
	}

	switch q.Sort {
	case SortTitle:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	case SortYear:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Year > out[j].Year })
	case SortRating:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Rating > out[j].Rating })
	}
	return out, nil
}

func matchesText(it *recommend.Item, needle string) bool {
	if strings.Contains(strings.ToLower(it.Title), needle) {
		return true
	}
	if strings.Contains(strings.ToLower(it.Plot), needle) {
		return true
	}
	for _, member := range it.Cast {
		if strings.Contains(strings.ToLower(member), needle) {
			return true
		}
	}
	return false
}

func hasAnyGenre(it *recommend.Item, genres []string) bool {
	for _, want := range genres {
		for _, g := range it.Genres {
			if strings.EqualFold(g, want) {
				return true
			}
		}
	}
	return false
}
