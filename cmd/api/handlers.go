package main

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/geocodry/geocodry/pkg/geocoding"
	"github.com/geocodry/geocodry/pkg/history"
)

const (
	historyDefaultLimit = 50
	historyMaxLimit     = 200
)

// searchHandler forwards a free-text geocoding query. An absent limit means
// the provider default; a present one must at least be an integer, and
// out-of-range values are clamped by the service rather than rejected.
func searchHandler(svc geocoding.Service, lookups history.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		q := c.Query("q")

		limit := geocoding.DefaultLimit
		if raw := c.Query("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil {
				respondError(c, &geocoding.Error{
					Status: http.StatusUnprocessableEntity,
					Detail: fmt.Sprintf("query parameter %q must be an integer, got %q", "limit", raw),
				})
				return
			}

			limit = n
		}

		t0 := time.Now()
		result, err := svc.Search(c.Request.Context(), geocoding.SearchQuery{Text: q, Limit: limit})
		if err != nil {
			record(c, lookups, history.Lookup{
				Operation:  "search",
				Query:      q,
				Status:     normalizedError(err).Status,
				DurationMS: time.Since(t0).Milliseconds(),
			})

			respondError(c, err)
			return
		}

		record(c, lookups, history.Lookup{
			Operation:  "search",
			Query:      result.Query,
			Status:     http.StatusOK,
			Results:    result.Total,
			DurationMS: time.Since(t0).Milliseconds(),
		})

		c.JSON(http.StatusOK, result)
	}
}

func reverseHandler(svc geocoding.Service, lookups history.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		lat, gerr := floatParam(c, "lat")
		if gerr != nil {
			respondError(c, gerr)
			return
		}

		lon, gerr := floatParam(c, "lon")
		if gerr != nil {
			respondError(c, gerr)
			return
		}

		query := geocoding.ReverseQuery{Lat: lat, Lon: lon}

		t0 := time.Now()
		result, err := svc.Reverse(c.Request.Context(), query)
		if err != nil {
			record(c, lookups, history.Lookup{
				Operation:  "reverse",
				Query:      query.String(),
				Status:     normalizedError(err).Status,
				DurationMS: time.Since(t0).Milliseconds(),
			})

			respondError(c, err)
			return
		}

		record(c, lookups, history.Lookup{
			Operation:  "reverse",
			Query:      query.String(),
			Status:     http.StatusOK,
			Results:    1,
			DurationMS: time.Since(t0).Milliseconds(),
		})

		c.JSON(http.StatusOK, result)
	}
}

func historyHandler(lookups history.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		if lookups == nil {
			respondError(c, &geocoding.Error{
				Status: http.StatusServiceUnavailable,
				Detail: "lookup history is not configured",
			})
			return
		}

		limit := historyDefaultLimit
		if raw := c.Query("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 1 {
				respondError(c, &geocoding.Error{
					Status: http.StatusUnprocessableEntity,
					Detail: fmt.Sprintf("query parameter %q must be a positive integer, got %q", "limit", raw),
				})
				return
			}

			limit = n
		}

		// An oversized limit flows straight into the SQL LIMIT otherwise.
		if limit > historyMaxLimit {
			limit = historyMaxLimit
		}

		recent, err := lookups.ListRecent(c.Request.Context(), limit)
		if err != nil {
			slog.ErrorContext(c.Request.Context(), "list lookup history", "error", err.Error())
			respondError(c, &geocoding.Error{
				Status: http.StatusInternalServerError,
				Detail: "unable to read lookup history",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{"lookups": recent, "total": len(recent)})
	}
}

// floatParam parses a required float query parameter. A missing or
// non-numeric value is a wrong-shape input, reported as 422 before any
// validation or outbound call happens.
func floatParam(c *gin.Context, name string) (float64, *geocoding.Error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, &geocoding.Error{
			Status: http.StatusUnprocessableEntity,
			Detail: fmt.Sprintf("query parameter %q is required and must be a number", name),
		}
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, &geocoding.Error{
			Status: http.StatusUnprocessableEntity,
			Detail: fmt.Sprintf("query parameter %q must be a number, got %q", name, raw),
		}
	}

	return v, nil
}

func normalizedError(err error) *geocoding.Error {
	var gerr *geocoding.Error
	if errors.As(err, &gerr) {
		return gerr
	}

	return &geocoding.Error{Status: http.StatusInternalServerError, Detail: "unexpected internal error"}
}

func respondError(c *gin.Context, err error) {
	gerr := normalizedError(err)

	if gerr.RetryAfter != "" {
		c.Header("Retry-After", gerr.RetryAfter)
	}

	c.JSON(gerr.Status, gin.H{"detail": gerr.Detail})
}

// record appends to the audit trail when one is configured. Recording is
// best-effort: a storage failure is logged and the response goes out
// regardless.
func record(c *gin.Context, lookups history.Repository, l history.Lookup) {
	if lookups == nil {
		return
	}

	if err := lookups.Record(c.Request.Context(), l); err != nil {
		slog.ErrorContext(c.Request.Context(), "record lookup", "error", err.Error())
	}
}
