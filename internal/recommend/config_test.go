// Kinograph - Movie Recommendation Service
// Copyright 2026 Kinograph Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kinograph/kinograph

package recommend

import "testing"

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() error = %v", err)
	}
	if !almostEqual(cfg.Weights.Sum(), 1.0) {
		t.Errorf("default weights sum = %v, want 1.0", cfg.Weights.Sum())
	}
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "negative weight", mutate: func(c *Config) { c.Weights.UserBased = -0.1 }},
		{name: "zero weight sum", mutate: func(c *Config) { c.Weights = Weights{} }},
		{name: "threshold too low", mutate: func(c *Config) { c.LikedThreshold = 0 }},
		{name: "threshold too high", mutate: func(c *Config) { c.LikedThreshold = 6 }},
		{name: "zero sub limit", mutate: func(c *Config) { c.SubLimit = 0 }},
		{name: "zero default limit", mutate: func(c *Config) { c.DefaultLimit = 0 }},
		{name: "max below default", mutate: func(c *Config) { c.MaxLimit = c.DefaultLimit - 1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() = nil, want error")
			}
		})
	}
}

func TestConfigClone(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	clone := cfg.Clone()
	clone.Weights.UserBased = 0.9
	clone.LikedThreshold = 2
	if cfg.Weights.UserBased != 0.4 || cfg.LikedThreshold != 4 {
		t.Error("Clone() shares state with the original")
	}

	var nilCfg *Config
	if nilCfg.Clone() != nil {
		t.Error("Clone() of nil config should be nil")
	}
}
