// Cinematch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package recommend

import "fmt"

const (
	// DefaultK is the number of recommendations returned per request.
	DefaultK = 5

	// MaxK bounds K.
	MaxK = 50
)

// Config contains configuration for the recommendation engine.
type Config struct {
	// K is the number of neighbors returned for a selected movie.
	// Default: 5.
	K int `json:"k"`
}

// DefaultConfig returns the default engine configuration.
func DefaultConfig() *Config {
	return &Config{K: DefaultK}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.K < 1 || c.K > MaxK {
		return fmt.Errorf("k must be in [1, %d], got %d", MaxK, c.K)
	}
	return nil
}

// Clone returns a copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}
