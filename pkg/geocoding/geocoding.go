// package geocoding validates lookup inputs, drives the upstream client and
// translates whatever comes back into either a result envelope or a
// normalized Error. All validation happens before any outbound call.
package geocoding

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/geocodry/geocodry/pkg/nominatim"
)

const (
	// DefaultLimit is the provider's documented default page size. It applies
	// when the caller sent no limit at all; handlers fill it in, since only
	// they can tell an absent parameter from an explicit zero.
	DefaultLimit = 10

	minLimit = 1
	maxLimit = 50
)

type SearchQuery struct {
	Text  string
	Limit int
}

type ReverseQuery struct {
	Lat float64
	Lon float64
}

// String renders the coordinates the way they appear in error details and
// logs, keeping a decimal point so whole numbers still read as coordinates.
func (q ReverseQuery) String() string {
	return fmt.Sprintf("(%s, %s)", formatCoord(q.Lat), formatCoord(q.Lon))
}

type SearchResult struct {
	Results []nominatim.Place `json:"results"`
	Total   int               `json:"total"`
	Query   string            `json:"query"`
}

// ReverseResult is the provider's record plus an exact echo of the caller's
// input coordinates. The provider's own lat/lon may differ in precision, so
// both are kept.
type ReverseResult struct {
	nominatim.Place
	LatInput float64 `json:"lat_input"`
	LonInput float64 `json:"lon_input"`
}

type Service interface {
	Search(ctx context.Context, query SearchQuery) (*SearchResult, error)
	Reverse(ctx context.Context, query ReverseQuery) (*ReverseResult, error)
}

func NewService(c nominatim.Client) *service {
	return &service{client: c}
}

type service struct {
	client nominatim.Client
}

var _ Service = (*service)(nil)

func (s *service) Search(ctx context.Context, query SearchQuery) (*SearchResult, error) {
	text := strings.TrimSpace(query.Text)
	if text == "" {
		return nil, newError(http.StatusBadRequest, "search query must not be empty")
	}

	res, err := s.client.Search(ctx, text, clampLimit(query.Limit))
	if err != nil {
		slog.ErrorContext(ctx, "provider unreachable", "operation", "search", "error", err.Error())
		return nil, unreachable("search addresses")
	}

	switch {
	case res.StatusCode == http.StatusNotFound:
		return nil, newError(http.StatusNotFound, "no locations found for %q", text)
	case res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices:
		return nil, classifyUpstream(res.StatusCode, "search addresses")
	}

	var places []nominatim.Place
	if err := json.Unmarshal(res.Body, &places); err != nil {
		slog.ErrorContext(ctx, "undecodable provider payload", "operation", "search", "error", err.Error())
		return nil, newError(http.StatusInternalServerError, "provider returned an unexpected payload for %q", text)
	}

	if len(places) == 0 {
		return nil, newError(http.StatusNotFound, "no locations found for %q", text)
	}

	return &SearchResult{Results: places, Total: len(places), Query: text}, nil
}

func (s *service) Reverse(ctx context.Context, query ReverseQuery) (*ReverseResult, error) {
	// NaN slips past plain range comparisons, so it gets its own check. The
	// infinities land outside the range and need none.
	if math.IsNaN(query.Lat) || query.Lat < -90 || query.Lat > 90 {
		return nil, newError(http.StatusBadRequest, "latitude must be between -90 and 90")
	}

	if math.IsNaN(query.Lon) || query.Lon < -180 || query.Lon > 180 {
		return nil, newError(http.StatusBadRequest, "longitude must be between -180 and 180")
	}

	res, err := s.client.Reverse(ctx, query.Lat, query.Lon)
	if err != nil {
		slog.ErrorContext(ctx, "provider unreachable", "operation", "reverse", "error", err.Error())
		return nil, unreachable("reverse geocode")
	}

	switch {
	case res.StatusCode == http.StatusNotFound:
		return nil, newError(http.StatusNotFound, "no address found for coordinates %s", query)
	case res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices:
		return nil, classifyUpstream(res.StatusCode, "reverse geocode")
	}

	var place nominatim.Place
	if err := json.Unmarshal(res.Body, &place); err != nil {
		slog.ErrorContext(ctx, "undecodable provider payload", "operation", "reverse", "error", err.Error())
		return nil, newError(http.StatusInternalServerError, "provider returned an unexpected payload for coordinates %s", query)
	}

	// The provider answers 200 with an error marker, or with no identifiable
	// place data at all, when nothing matches. Same outward classification as
	// a provider 404; the detail keeps the actual cause.
	if place.ErrorMessage != "" || (place.PlaceID == 0 && place.DisplayName == "") {
		return nil, newError(http.StatusNotFound, "provider returned no usable place data for coordinates %s", query)
	}

	return &ReverseResult{Place: place, LatInput: query.Lat, LonInput: query.Lon}, nil
}

// clampLimit pins the result limit to the provider's accepted range instead
// of rejecting out-of-range values. Handlers fill in DefaultLimit when the
// caller sent no limit at all, so an explicit 0 clamps up like any other
// below-range value.
func clampLimit(limit int) int {
	switch {
	case limit < minLimit:
		return minLimit
	case limit > maxLimit:
		return maxLimit
	}

	return limit
}

func formatCoord(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}

	return s
}
