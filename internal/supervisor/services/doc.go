// Cinematch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

/*
Package services adapts Cinematch components to suture.Service.

HTTPServerService turns http.Server's blocking ListenAndServe into a
context-aware Serve with a bounded graceful shutdown.

CacheMaintenanceService runs on a ticker. Each pass prunes expired
in-memory metadata, runs BadgerDB value-log GC when the persistent store
is enabled, and updates the cache metrics.

Every service implements fmt.Stringer so supervisor events name it.
*/
package services
