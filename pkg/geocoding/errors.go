package geocoding

import (
	"fmt"
	"net/http"
)

// Error is the normalized error surfaced to API consumers. The status comes
// from a fixed taxonomy; the detail is a single human-readable sentence
// naming the concrete cause. Raw provider internals never ride along.
type Error struct {
	Status int
	Detail string

	// RetryAfter is a seconds hint, set only when the provider signaled a
	// rate limit.
	RetryAfter string
}

func (e *Error) Error() string {
	return e.Detail
}

func newError(status int, format string, args ...any) *Error {
	return &Error{Status: status, Detail: fmt.Sprintf(format, args...)}
}

// classifyUpstream maps a provider error status onto the outward taxonomy.
// Not-found handling is operation-specific and happens before this is
// reached. Statuses the taxonomy doesn't name count as an upstream internal
// failure, except the gateway flavours of unavailability.
func classifyUpstream(status int, operation string) *Error {
	switch status {
	case http.StatusForbidden:
		return newError(http.StatusForbidden, "provider rejected the request to %s: identification header missing or blocked", operation)
	case http.StatusTooManyRequests:
		err := newError(http.StatusTooManyRequests, "provider rate limit exceeded while trying to %s, retry in a few seconds", operation)
		err.RetryAfter = "2"
		return err
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return newError(http.StatusServiceUnavailable, "provider temporarily unavailable while trying to %s (upstream status %d)", operation, status)
	default:
		return newError(http.StatusInternalServerError, "provider failed to %s (upstream status %d)", operation, status)
	}
}

// unreachable is the classification for transport failures: no response at
// all, as opposed to an error status. Always 503, never 500.
func unreachable(operation string) *Error {
	return newError(http.StatusServiceUnavailable, "geocoding provider unreachable while trying to %s", operation)
}
