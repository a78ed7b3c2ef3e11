// Cinematch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package testinfra provides shared test fixtures: small in-memory catalogs
// and a mock TMDB server.
//
// # Catalog Fixtures
//
//	cat := testinfra.SevenMovieCatalog(t)
//	recs, _ := engine.Recommend(ctx, "A", cat) // C, B, D, E, F
//
// # Mock TMDB Server
//
// MockTMDBServer answers /movie/{id} with canned payloads and records every
// request for verification:
//
//	tmdb := testinfra.NewMockTMDBServer(t)
//	tmdb.SetMovie(19995, testinfra.TMDBMovie{
//	    PosterPath:  testinfra.StringPtr("/a.jpg"),
//	    ReleaseDate: "2009-12-10",
//	    VoteAverage: testinfra.FloatPtr(7.2),
//	})
//	tmdb.SetDelay(285, 2*time.Second)
//
//	client, err := metadata.NewClient(&metadata.Config{BaseURL: tmdb.URL()}, logger)
//
// The server is closed automatically through t.Cleanup.
package testinfra
