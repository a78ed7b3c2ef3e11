// Cinematch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package catalog

import "errors"

var (
	// ErrArtifactMissing indicates an artifact could not be located or read.
	ErrArtifactMissing = errors.New("artifact missing")

	// ErrArtifactCorrupt indicates an artifact was read but failed decoding or shape checks.
	ErrArtifactCorrupt = errors.New("artifact corrupt")

	// ErrNotFound indicates no movie has the requested title.
	ErrNotFound = errors.New("movie not found")
)
