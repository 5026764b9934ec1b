package nominatim

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// NewClient creates a client for the provider at baseURL. The provider
// requires every caller to identify itself through the User-Agent header;
// userAgent is attached to every outbound call.
func NewClient(h *http.Client, baseURL, userAgent string) *client {
	return &client{h: h, baseURL: strings.TrimSuffix(baseURL, "/"), userAgent: userAgent}
}

type client struct {
	h         *http.Client
	baseURL   string
	userAgent string
}

var _ Client = (*client)(nil)

func (c *client) Search(ctx context.Context, query string, limit int) (*Response, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("limit", strconv.Itoa(limit))

	return c.get(ctx, "search", params)
}

func (c *client) Reverse(ctx context.Context, lat, lon float64) (*Response, error) {
	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))

	return c.get(ctx, "reverse", params)
}

func (c *client) get(ctx context.Context, resource string, params url.Values) (*Response, error) {
	params.Set("format", "json")
	params.Set("addressdetails", "1")
	params.Set("extratags", "1")
	params.Set("namedetails", "1")

	endpoint := fmt.Sprintf("%s/%s?%s", c.baseURL, resource, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", resource, err)
	}

	req.Header.Set("User-Agent", c.userAgent)

	res, err := c.h.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call %s: %w", resource, err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s response: %w", resource, err)
	}

	return &Response{StatusCode: res.StatusCode, Body: body}, nil
}
