// Cinematch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package catalog holds the immutable movie catalog and its precomputed
// similarity matrix.
//
// Both are loaded once at startup from two artifacts and never mutated
// afterwards, so a *Catalog may be shared by any number of goroutines
// without locking.
//
// # Artifact Formats
//
// The catalog artifact is UTF-8 JSON. Array order is row order:
//
//	{
//	  "format": "cinematch.catalog",
//	  "version": 1,
//	  "movies": [
//	    {"title": "Avatar", "external_id": 19995},
//	    {"title": "Spectre", "external_id": 206647}
//	  ]
//	}
//
// The similarity artifact is little-endian binary:
//
//	offset  size  field
//	0       4     magic "CMSM"
//	4       2     format version (1)
//	6       2     reserved, zero
//	8       4     rows (uint32)
//	12      4     cols (uint32)
//	16      4*n   rows*cols IEEE-754 float32 scores, row-major
//	16+4*n  4     CRC-32 (IEEE) of every preceding byte
//
// # Validation
//
// Load checks both artifacts before returning. A file that cannot be opened
// or read fails with ErrArtifactMissing. A file that decodes badly (wrong
// magic, unknown version, truncation, checksum mismatch, NaN or infinite
// scores) or whose shape is wrong (matrix not square, dimension different
// from the movie count) fails with ErrArtifactCorrupt. Callers are expected
// to stop startup on either error; there is no partial catalog.
//
// Duplicate titles are tolerated. ResolveIndex returns the first row with a
// given title and DuplicateTitles reports the others.
package catalog
