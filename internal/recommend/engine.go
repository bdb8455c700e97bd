// Kinograph - Movie Recommendation Service
// Copyright 2026 Kinograph Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kinograph/kinograph

package recommend

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog"
)

// Recommendation reasons. Content-based reasons are generated per item
// and are not listed here.
const (
	ReasonUserBased = "Based on users with similar taste"
	ReasonItemBased = "Because you liked similar movies"
	ReasonHybrid    = "Personalized recommendation"
)

// Engine computes recommendations over one immutable snapshot. Build a new
// engine whenever the rating set changes; an engine holds no resources that
// need explicit teardown. All methods are safe for concurrent use.
type Engine struct {
	snap   *Snapshot
	cfg    *Config
	logger zerolog.Logger
}

// NewEngine builds an engine over the given catalog and rating snapshot.
// A nil cfg selects DefaultConfig. The input slices are retained by
// reference and must not be mutated afterwards.
func NewEngine(items []Item, ratings []Rating, cfg *Config, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid engine config: %w", err)
	}
	e := &Engine{
		snap:   NewSnapshot(items, ratings),
		cfg:    cfg.Clone(),
		logger: logger.With().Str("component", "recommend").Logger(),
	}
	e.logger.Debug().
		Int("items", e.snap.NumItems()).
		Int("users", e.snap.NumUsers()).
		Int("ratings", e.snap.NumRatings()).
		Msg("Engine built")
	return e, nil
}

// Snapshot returns the engine's immutable data view.
func (e *Engine) Snapshot() *Snapshot { return e.snap }

// UserSimilarity returns cosine similarity between two users' rating
// vectors over their commonly rated items, in [0,1] for positive scores.
func (e *Engine) UserSimilarity(a, b int) float64 { return e.snap.userSimilarity(a, b) }

// ItemSimilarity returns cosine similarity between two items' rating
// vectors over the users who rated both.
func (e *Engine) ItemSimilarity(a, b int) float64 { return e.snap.itemSimilarity(a, b) }

type neighbor struct {
	userID     int
	similarity float64
}

// similarUsers returns every other user with strictly positive similarity
// to userID, ordered by similarity descending with ties broken by
// ascending user id.
func (e *Engine) similarUsers(userID int) []neighbor {
	var out []neighbor
	for _, id := range e.snap.userIDs {
		if id == userID {
			continue
		}
		if sim := e.snap.userSimilarity(userID, id); sim > 0 {
			out = append(out, neighbor{userID: id, similarity: sim})
		}
	}
	// input is ascending by id, so a stable sort keeps the id tie-break
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].similarity > out[j].similarity
	})
	return out
}

type accumulator struct {
	total float64
	count int
}

// UserBased recommends items highly rated by users with similar taste.
// Scores are averages of similarity-weighted votes, so one vote from a
// near-identical user can outrank many votes from weakly similar ones.
func (e *Engine) UserBased(userID, limit int) []Result {
	limit = e.clampLimit(limit)
	rated := e.snap.ratedSet(userID)

	acc := make(map[int]*accumulator)
	for _, n := range e.similarUsers(userID) {
		for _, r := range e.snap.byUser[n.userID] {
			if r.Score < e.cfg.LikedThreshold {
				continue
			}
			if _, ok := rated[r.ItemID]; ok {
				continue
			}
			a := acc[r.ItemID]
			if a == nil {
				a = &accumulator{}
				acc[r.ItemID] = a
			}
			a.total += float64(r.Score) * n.similarity
			a.count++
		}
	}

	results := e.resolve(acc, ReasonUserBased)
	sortResults(results)
	return truncate(results, limit)
}

// ItemBased recommends items similar to those the user rated at or above
// the liked threshold. Every liked rating is compared against every
// unrated catalog item, an O(liked x catalog) pass that is fine at this
// catalog scale.
func (e *Engine) ItemBased(userID, limit int) []Result {
	limit = e.clampLimit(limit)
	liked := e.snap.liked(userID, e.cfg.LikedThreshold)
	if len(liked) == 0 {
		return nil
	}
	rated := e.snap.ratedSet(userID)

	acc := make(map[int]*accumulator)
	for _, lr := range liked {
		for i := range e.snap.items {
			it := &e.snap.items[i]
			if _, ok := rated[it.ID]; ok {
				continue
			}
			sim := e.snap.itemSimilarity(lr.ItemID, it.ID)
			if sim <= 0 {
				continue
			}
			a := acc[it.ID]
			if a == nil {
				a = &accumulator{}
				acc[it.ID] = a
			}
			a.total += float64(lr.Score) * sim
			a.count++
		}
	}

	results := e.resolve(acc, ReasonItemBased)
	sortResults(results)
	return truncate(results, limit)
}

// ContentBased recommends unrated items whose genres match the user's
// liked items. Each candidate scores the mean affinity across its own
// genre tags; the reason string is generated per item from those tags.
//
// An empty liked set returns an empty list rather than every unrated item
// at score zero.
func (e *Engine) ContentBased(userID, limit int) []Result {
	limit = e.clampLimit(limit)
	liked := e.snap.liked(userID, e.cfg.LikedThreshold)
	if len(liked) == 0 {
		return nil
	}
	rated := e.snap.ratedSet(userID)

	// genre tags are not deduplicated: a tag listed twice on a liked item
	// contributes its score twice
	affinity := make(map[string]float64)
	for _, lr := range liked {
		it := e.snap.byID[lr.ItemID]
		if it == nil {
			continue
		}
		for _, g := range it.Genres {
			affinity[g] += float64(lr.Score)
		}
	}

	var results []Result
	for i := range e.snap.items {
		it := &e.snap.items[i]
		if _, ok := rated[it.ID]; ok {
			continue
		}
		var score float64
		if len(it.Genres) > 0 {
			for _, g := range it.Genres {
				score += affinity[g]
			}
			score /= float64(len(it.Genres))
		}
		results = append(results, Result{
			Item:   it,
			Score:  score,
			Reason: fmt.Sprintf("Because you enjoy %s movies", strings.Join(it.Genres, ", ")),
		})
	}

	// stable keeps catalog order for equal scores
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	return truncate(results, limit)
}

// Hybrid blends the three strategies. Each contributes its top SubLimit
// results, weighted per Config.Weights; an item surfacing in several lists
// sums its weighted scores. Per-source reasons are discarded.
func (e *Engine) Hybrid(userID, limit int) []Result {
	limit = e.clampLimit(limit)
	sub := e.cfg.SubLimit

	sources := []struct {
		results []Result
		weight  float64
	}{
		{e.UserBased(userID, sub), e.cfg.Weights.UserBased},
		{e.ItemBased(userID, sub), e.cfg.Weights.ItemBased},
		{e.ContentBased(userID, sub), e.cfg.Weights.ContentBased},
	}

	merged := make(map[int]*Result)
	for _, src := range sources {
		for _, r := range src.results {
			if ex := merged[r.Item.ID]; ex != nil {
				ex.Score += r.Score * src.weight
				continue
			}
			merged[r.Item.ID] = &Result{
				Item:   r.Item,
				Score:  r.Score * src.weight,
				Reason: ReasonHybrid,
			}
		}
	}

	results := make([]Result, 0, len(merged))
	for _, r := range merged {
		results = append(results, *r)
	}
	sortResults(results)
	return truncate(results, limit)
}

// resolve converts accumulated (total, count) entries into results,
// averaging the weighted votes. Ratings that reference item ids missing
// from the catalog are skipped here, not surfaced as errors.
func (e *Engine) resolve(acc map[int]*accumulator, reason string) []Result {
	results := make([]Result, 0, len(acc))
	for itemID, a := range acc {
		it := e.snap.byID[itemID]
		if it == nil {
			e.logger.Debug().Int("item_id", itemID).Msg("Skipping rating for unknown item")
			continue
		}
		results = append(results, Result{
			Item:   it,
			Score:  a.total / float64(a.count),
			Reason: reason,
		})
	}
	return results
}

func (e *Engine) clampLimit(limit int) int {
	if limit <= 0 {
		return e.cfg.DefaultLimit
	}
	if limit > e.cfg.MaxLimit {
		return e.cfg.MaxLimit
	}
	return limit
}

// sortResults orders by score descending with ascending item id as the
// tie-break, so identical snapshots always produce identical output.
func sortResults(rs []Result) {
	sort.Slice(rs, func(i, j int) bool {
		if rs[i].Score != rs[j].Score {
			return rs[i].Score > rs[j].Score
		}
		return rs[i].Item.ID < rs[j].Item.ID
	})
}

func truncate(rs []Result, limit int) []Result {
	if len(rs) > limit {
		return rs[:limit]
	}
	return rs
}
