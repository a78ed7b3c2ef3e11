// Cinematch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package metadata

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/cinematch/internal/metrics"
)

const breakerName = "tmdb-api"

// breakerAPI wraps tmdbAPI with the circuit breaker pattern so a failing
// TMDB is not hammered while it recovers.
//
// Configuration:
//   - Max 3 concurrent requests in half-open state
//   - 1 minute measurement window
//   - Opens after 60% failure rate with minimum 10 requests
type breakerAPI struct {
	api    *tmdbAPI
	cb     *gobreaker.CircuitBreaker[*tmdbMovie]
	name   string
	logger zerolog.Logger
}

//nolint:gocritic // logger passed by value is acceptable for zerolog
func newBreakerAPI(api *tmdbAPI, openTimeout time.Duration, logger zerolog.Logger) *breakerAPI {
	b := &breakerAPI{api: api, name: breakerName, logger: logger}

	metrics.CircuitBreakerState.WithLabelValues(b.name).Set(metrics.BreakerClosed)
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(b.name).Set(0)

	b.cb = gobreaker.NewCircuitBreaker[*tmdbMovie](gobreaker.Settings{
		Name:        b.name,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     openTimeout,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 10 {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			shouldTrip := failureRatio >= 0.6
			if shouldTrip {
				b.logger.Warn().
					Uint32("failures", counts.TotalFailures).
					Float64("failure_rate", failureRatio*100).
					Msg("[CIRCUIT BREAKER] Opening circuit")
			}
			return shouldTrip
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr, toStr := stateToString(from), stateToString(to)
			b.logger.Info().Str("from", fromStr).Str("to", toStr).Msg("[CIRCUIT BREAKER] State transition")

			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()
			if to == gobreaker.StateClosed {
				metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)
			}
		},

		// A caller giving up says nothing about TMDB health.
		IsSuccessful: func(err error) bool {
			if err == nil || errors.Is(err, context.Canceled) {
				return true
			}
			var se *StatusError
			return errors.As(err, &se) && se.clientError()
		},
	})

	return b
}

// GetMovie fetches a movie with circuit breaker protection.
func (b *breakerAPI) GetMovie(ctx context.Context, id int64) (*tmdbMovie, error) {
	movie, err := b.cb.Execute(func() (*tmdbMovie, error) {
		return b.api.GetMovie(ctx, id)
	})

	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(b.name, "rejected").Inc()
			return nil, fmt.Errorf("tmdb circuit breaker: %w", err)
		}
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		metrics.CircuitBreakerRequests.WithLabelValues(b.name, "failure").Inc()
		counts := b.cb.Counts()
		metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(b.name).Set(float64(counts.ConsecutiveFailures))
		return nil, err
	}

	metrics.CircuitBreakerRequests.WithLabelValues(b.name, "success").Inc()
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(b.name).Set(0)
	return movie, nil
}

// State returns the breaker state as a string.
func (b *breakerAPI) State() string {
	return stateToString(b.cb.State())
}

// stateToFloat converts circuit breaker state to numeric value for metrics
func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return metrics.BreakerClosed
	case gobreaker.StateHalfOpen:
		return metrics.BreakerHalfOpen
	case gobreaker.StateOpen:
		return metrics.BreakerOpen
	default:
		return -1
	}
}

// stateToString converts circuit breaker state to string for logging
func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}
