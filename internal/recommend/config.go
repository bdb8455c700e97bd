// Kinograph - Movie Recommendation Service
// Copyright 2026 Kinograph Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kinograph/kinograph

package recommend

import "fmt"

// Weights controls how the hybrid combiner blends the three strategies.
type Weights struct {
	UserBased    float64 `koanf:"user_based" json:"user_based"`
	ItemBased    float64 `koanf:"item_based" json:"item_based"`
	ContentBased float64 `koanf:"content_based" json:"content_based"`
}

// Sum returns the total weight mass.
func (w Weights) Sum() float64 {
	return w.UserBased + w.ItemBased + w.ContentBased
}

// Config holds engine tuning parameters.
type Config struct {
	Weights Weights `koanf:"weights" json:"weights"`

	// LikedThreshold is the minimum score at which a rating counts as an
	// endorsement for item-based and content-based profiles.
	LikedThreshold int `koanf:"liked_threshold" json:"liked_threshold"`

	// SubLimit caps each strategy's contribution inside the hybrid
	// combiner, independent of the caller's requested limit.
	SubLimit int `koanf:"sub_limit" json:"sub_limit"`

	DefaultLimit int `koanf:"default_limit" json:"default_limit"`
	MaxLimit     int `koanf:"max_limit" json:"max_limit"`
}

// DefaultConfig returns the standard tuning: hybrid weights 0.4/0.4/0.2,
// liked threshold 4 on the 1..5 scale, sub-limit 5.
func DefaultConfig() *Config {
	return &Config{
		Weights: Weights{
			UserBased:    0.4,
			ItemBased:    0.4,
			ContentBased: 0.2,
		},
		LikedThreshold: 4,
		SubLimit:       5,
		DefaultLimit:   10,
		MaxLimit:       50,
	}
}

// Validate checks config invariants.
func (c *Config) Validate() error {
	if c.Weights.UserBased < 0 || c.Weights.ItemBased < 0 || c.Weights.ContentBased < 0 {
		return fmt.Errorf("hybrid weights must be non-negative, got %+v", c.Weights)
	}
	if c.Weights.Sum() <= 0 {
		return fmt.Errorf("hybrid weights must have positive sum, got %v", c.Weights.Sum())
	}
	if c.LikedThreshold < 1 || c.LikedThreshold > 5 {
		return fmt.Errorf("liked_threshold must be in [1,5], got %d", c.LikedThreshold)
	}
	if c.SubLimit < 1 {
		return fmt.Errorf("sub_limit must be positive, got %d", c.SubLimit)
	}
	if c.DefaultLimit < 1 {
		return fmt.Errorf("default_limit must be positive, got %d", c.DefaultLimit)
	}
	if c.MaxLimit < c.DefaultLimit {
		return fmt.Errorf("max_limit (%d) must be at least default_limit (%d)", c.MaxLimit, c.DefaultLimit)
	}
	return nil
}

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}
	out := *c
	return &out
}
