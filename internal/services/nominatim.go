package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const geocoderTimeout = 5 * time.Second

// NominatimClient implements Geocoder against the OpenStreetMap Nominatim
// HTTP API (jsonv2 format).
type NominatimClient struct {
	baseURL   string
	userAgent string
	client    *http.Client
}

func NewNominatimClient(baseURL string) *NominatimClient {
	return &NominatimClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		// Nominatim's usage policy requires an identifying agent.
		userAgent: "everlog-backend/1.0",
		client:    &http.Client{Timeout: geocoderTimeout},
	}
}

type nominatimAddress struct {
	City    string `json:"city"`
	Town    string `json:"town"`
	Village string `json:"village"`
	State   string `json:"state"`
	Country string `json:"country"`
}

type nominatimReverseResponse struct {
	Address nominatimAddress `json:"address"`
}

type nominatimSearchResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

func (c *NominatimClient) Reverse(ctx context.Context, coord Coordinate) (Place, error) {
	q := url.Values{}
	q.Set("format", "jsonv2")
	q.Set("lat", strconv.FormatFloat(coord.Lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(coord.Lng, 'f', -1, 64))

	var decoded nominatimReverseResponse
	if err := c.get(ctx, "/reverse", q, &decoded); err != nil {
		return Place{}, err
	}

	// Nominatim reports the locality under city, town or village
	// depending on the place size.
	city := decoded.Address.City
	if city == "" {
		city = decoded.Address.Town
	}
	if city == "" {
		city = decoded.Address.Village
	}

	return Place{City: city, State: decoded.Address.State, Country: decoded.Address.Country}, nil
}

func (c *NominatimClient) Forward(ctx context.Context, query string) (Coordinate, error) {
	q := url.Values{}
	q.Set("format", "jsonv2")
	q.Set("q", query)
	q.Set("limit", "1")

	var results []nominatimSearchResult
	if err := c.get(ctx, "/search", q, &results); err != nil {
		return Coordinate{}, err
	}
	if len(results) == 0 {
		return Coordinate{}, fmt.Errorf("no results for %q", query)
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return Coordinate{}, fmt.Errorf("invalid latitude in geocoder response: %w", err)
	}
	lng, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return Coordinate{}, fmt.Errorf("invalid longitude in geocoder response: %w", err)
	}
	return Coordinate{Lat: lat, Lng: lng}, nil
}

func (c *NominatimClient) get(ctx context.Context, path string, query url.Values, dest interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+query.Encode(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("geocoder request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("geocoder returned status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("failed to decode geocoder response: %w", err)
	}
	return nil
}
