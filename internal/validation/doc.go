// Cinematch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package validation provides request validation using go-playground/validator v10.
//
// Features:
//   - Singleton validator instance (thread-safe, caches struct info)
//   - Error field names taken from query/json tags, so messages name the
//     parameter the client actually sent
//   - nocontrol custom validator for free-text parameters such as titles
//   - Conversion to the API's VALIDATION_ERROR shape
//
// Example usage:
//
//	type RecommendationRequest struct {
//	    Title  string `query:"title" validate:"required,max=500,nocontrol"`
//	    Enrich string `query:"enrich" validate:"omitempty,boolean"`
//	}
//
//	if err := validation.ValidateStruct(&req); err != nil {
//	    apiErr := err.ToAPIError()
//	    respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
//	    return
//	}
package validation
