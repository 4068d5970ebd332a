package services

import (
	"context"
)

// Coordinate is a WGS84 latitude/longitude pair.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Place is the structured result of a reverse geocode lookup.
type Place struct {
	City    string
	State   string
	Country string
}

// Geocoder translates between coordinates and human-readable places. The
// provider is injected so it can be swapped; tests use fakes.
type Geocoder interface {
	// Reverse maps a coordinate to a structured place.
	Reverse(ctx context.Context, coord Coordinate) (Place, error)
	// Forward maps a free-text place name to a coordinate.
	Forward(ctx context.Context, query string) (Coordinate, error)
}

// FormatPlace renders a place as "City, State", falling back to
// "City, Country", then "State, Country", then the bare country.
func FormatPlace(p Place) string {
	switch {
	case p.City != "" && p.State != "":
		return p.City + ", " + p.State
	case p.City != "" && p.Country != "":
		return p.City + ", " + p.Country
	case p.State != "" && p.Country != "":
		return p.State + ", " + p.Country
	default:
		return p.Country
	}
}
