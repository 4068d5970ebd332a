package services_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/everlog-app/everlog-backend/internal/services"
)

func TestNominatimReverse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/reverse" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("format") != "jsonv2" {
			t.Fatalf("expected jsonv2 format, got %q", r.URL.Query().Get("format"))
		}
		if r.Header.Get("User-Agent") == "" {
			t.Fatalf("expected identifying User-Agent")
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"address":{"city":"Portland","state":"Oregon","country":"United States"}}`))
	}))
	defer srv.Close()

	c := services.NewNominatimClient(srv.URL)
	place, err := c.Reverse(context.Background(), services.Coordinate{Lat: 45.52, Lng: -122.68})
	if err != nil {
		t.Fatalf("reverse: %v", err)
	}
	if place.City != "Portland" || place.State != "Oregon" || place.Country != "United States" {
		t.Fatalf("unexpected place %+v", place)
	}
}

func TestNominatimReverseTownFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"address":{"town":"Sintra","country":"Portugal"}}`))
	}))
	defer srv.Close()

	c := services.NewNominatimClient(srv.URL)
	place, err := c.Reverse(context.Background(), services.Coordinate{})
	if err != nil {
		t.Fatalf("reverse: %v", err)
	}
	if place.City != "Sintra" {
		t.Fatalf("expected town to surface as city, got %+v", place)
	}
}

func TestNominatimForward(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("q") != "Lisbon" {
			t.Fatalf("expected query Lisbon, got %q", r.URL.Query().Get("q"))
		}
		w.Write([]byte(`[{"lat":"38.7223","lon":"-9.1393"}]`))
	}))
	defer srv.Close()

	c := services.NewNominatimClient(srv.URL)
	coord, err := c.Forward(context.Background(), "Lisbon")
	if err != nil {
		t.Fatalf("forward: %v", err)
	}
	if coord.Lat != 38.7223 || coord.Lng != -9.1393 {
		t.Fatalf("unexpected coordinate %+v", coord)
	}
}

func TestNominatimForwardNoResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := services.NewNominatimClient(srv.URL)
	if _, err := c.Forward(context.Background(), "nowhere at all"); err == nil {
		t.Fatalf("expected error for empty result set")
	}
}

func TestNominatimNon200IsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := services.NewNominatimClient(srv.URL)
	if _, err := c.Reverse(context.Background(), services.Coordinate{}); err == nil {
		t.Fatalf("expected error for non-200 response")
	}
	if _, err := c.Forward(context.Background(), "Lisbon"); err == nil {
		t.Fatalf("expected error for non-200 response")
	}
}
