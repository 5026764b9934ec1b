package whttp

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// LoggingRoundTripper logs every outbound call and its outcome. The response
// body is replayed into a fresh reader so callers still get to read it.
type LoggingRoundTripper struct {
	Proxied http.RoundTripper
}

func (lrt LoggingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()

	slog.InfoContext(ctx, "outbound request", "method", req.Method, "url", req.URL.String())

	res, err := lrt.Proxied.RoundTrip(req)
	if err != nil {
		slog.ErrorContext(ctx, "outbound request failed", "error", err.Error())
		return res, err
	}

	var buf bytes.Buffer
	size, _ := io.Copy(&buf, res.Body)
	res.Body.Close()
	res.Body = io.NopCloser(&buf)

	slog.InfoContext(ctx, "outbound response", "status", res.Status, "size", size)

	return res, nil
}

func NewLoggingClient() *http.Client {
	return &http.Client{
		Transport: LoggingRoundTripper{Proxied: http.DefaultTransport},
		Timeout:   10 * time.Second,
	}
}
