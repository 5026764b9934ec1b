// package nominatim talks to a Nominatim-compatible geocoding provider. It
// deliberately does no interpretation: callers get the upstream status code
// and raw body for every HTTP response, and an error only when the call
// itself could not be completed (transport failure).
package nominatim

import "context"

type Client interface {
	// Search geocodes a free-text query against the provider's search
	// resource.
	Search(ctx context.Context, query string, limit int) (*Response, error)

	// Reverse resolves coordinates against the provider's reverse resource.
	Reverse(ctx context.Context, lat, lon float64) (*Response, error)
}

// Response carries the provider's answer to a single call, whatever the
// status. Non-2xx responses are not errors at this layer.
type Response struct {
	StatusCode int
	Body       []byte
}

// Place is a single record as the provider returns it. Coordinates stay in
// the provider's string representation; this service never reinterprets them.
type Place struct {
	PlaceID     int64    `json:"place_id"`
	Licence     string   `json:"licence"`
	OSMType     string   `json:"osm_type,omitempty"`
	OSMID       int64    `json:"osm_id,omitempty"`
	Lat         string   `json:"lat"`
	Lon         string   `json:"lon"`
	DisplayName string   `json:"display_name"`
	Class       string   `json:"class,omitempty"`
	Type        string   `json:"type,omitempty"`
	Importance  *float64 `json:"importance,omitempty"`
	Address     *Address `json:"address,omitempty"`

	// ErrorMessage is set by the provider on reverse lookups that matched
	// nothing, e.g. {"error": "Unable to geocode"}.
	ErrorMessage string `json:"error,omitempty"`
}

type Address struct {
	HouseNumber   string `json:"house_number,omitempty"`
	Road          string `json:"road,omitempty"`
	Neighbourhood string `json:"neighbourhood,omitempty"`
	City          string `json:"city,omitempty"`
	State         string `json:"state,omitempty"`
	Postcode      string `json:"postcode,omitempty"`
	Country       string `json:"country,omitempty"`
	CountryCode   string `json:"country_code,omitempty"`
}
