// package env contains getters for the configuration this service reads at
// process start. The provider base URL has a sane public default; the
// identification header does not, since the provider blocks anonymous
// callers and each deployment must identify itself.
package env

import (
	"fmt"
	"os"

	"github.com/geocodry/geocodry/pkg/nominatim"
	"github.com/geocodry/geocodry/pkg/whttp"
)

const defaultBaseURL = "https://nominatim.openstreetmap.org"

// NewNominatimClient creates the outbound client for the configured
// geocoding provider. A missing NOMINATIM_USER_AGENT is a configuration
// error, surfaced here at startup rather than on the first lookup.
func NewNominatimClient() (nominatim.Client, error) {
	userAgent, err := NominatimUserAgent()
	if err != nil {
		return nil, err
	}

	httpClient := whttp.NewLoggingClient()
	return nominatim.NewClient(httpClient, NominatimBaseURL(), userAgent), nil
}

func NominatimBaseURL() string {
	if v := os.Getenv("NOMINATIM_API_BASE_URL"); v != "" {
		return v
	}

	return defaultBaseURL
}

func NominatimUserAgent() (string, error) {
	v := os.Getenv("NOMINATIM_USER_AGENT")
	if v == "" {
		return "", fmt.Errorf("missing NOMINATIM_USER_AGENT environment variable. Please check your environment.")
	}

	return v, nil
}
