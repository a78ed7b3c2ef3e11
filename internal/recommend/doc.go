// Cinematch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package recommend ranks catalog movies by precomputed similarity.
//
// # Algorithm
//
// For a selected title the engine:
//
//  1. resolves the title to its catalog row (exact match, first row wins)
//  2. reads that row of the similarity matrix
//  3. stable-sorts every other row index by descending score, so equal
//     scores keep ascending row order
//  4. returns the first K entries (default 5)
//
// The selected movie is skipped by index, not by position in the sorted
// order, so a tie between the diagonal and another score never hides a
// neighbor and never leaks the selected movie into its own result.
//
// # Properties
//
//   - Deterministic: identical inputs produce identical outputs
//   - Pure: no state changes besides counters and logging
//   - len(result) == min(K, catalog size - 1)
//
// # Usage
//
//	engine, err := recommend.NewEngine(recommend.DefaultConfig(), logger)
//	if err != nil {
//	    return err
//	}
//	recs, err := engine.Recommend(ctx, "Avatar", cat)
//	if errors.Is(err, catalog.ErrNotFound) {
//	    // show "not found" to the user
//	}
//
// # Thread Safety
//
// Engine is safe for concurrent use. The catalog passed to Recommend must not
// be modified, which the catalog package guarantees.
package recommend
