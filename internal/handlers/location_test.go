package handlers_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/everlog-app/everlog-backend/internal/handlers"
	"github.com/everlog-app/everlog-backend/internal/services"
)

func TestLocationRequestGrantedFlow(t *testing.T) {
	env := newTestEnv(t)

	// The shell reports the grant before the request arrives, so the
	// state machine runs straight through.
	lat, lng := 45.52, -122.68
	status := env.do(t, http.MethodPost, "/api/location/report", handlers.LocationReportRequest{
		Status: "granted",
		Lat:    &lat,
		Lng:    &lng,
	}, nil)
	if status != http.StatusOK {
		t.Fatalf("report: status %d", status)
	}

	var resp handlers.LocationRequestResponse
	if status := env.do(t, http.MethodPost, "/api/location/request", nil, &resp); status != http.StatusOK {
		t.Fatalf("request: status %d", status)
	}
	if resp.Result == nil || resp.Result.Outcome != services.OutcomeGranted {
		t.Fatalf("expected granted, got %+v", resp.Result)
	}
	if resp.Result.Place != "Portland, Oregon" {
		t.Fatalf("expected formatted place, got %q", resp.Result.Place)
	}

	var state handlers.LocationStateResponse
	env.do(t, http.MethodGet, "/api/location", nil, &state)
	if state.Status != string(services.LocationResolved) || state.Place != "Portland, Oregon" {
		t.Fatalf("observable state mismatch: %+v", state)
	}
}

func TestLocationRequestDenied(t *testing.T) {
	env := newTestEnv(t)

	env.do(t, http.MethodPost, "/api/location/report", handlers.LocationReportRequest{Status: "denied"}, nil)

	var resp handlers.LocationRequestResponse
	env.do(t, http.MethodPost, "/api/location/request", nil, &resp)
	if resp.Result == nil || resp.Result.Outcome != services.OutcomeDenied {
		t.Fatalf("expected denied, got %+v", resp.Result)
	}
	if resp.Result.Message != services.LocationDeniedMessage {
		t.Fatalf("expected the fixed denial string, got %q", resp.Result.Message)
	}

	var state handlers.LocationStateResponse
	env.do(t, http.MethodGet, "/api/location", nil, &state)
	if state.Status != string(services.LocationDenied) {
		t.Fatalf("expected denied status, got %q", state.Status)
	}
}

func TestLocationReportUnblocksPendingRequest(t *testing.T) {
	env := newTestEnv(t)

	type result struct {
		resp   handlers.LocationRequestResponse
		status int
	}
	done := make(chan result, 1)
	go func() {
		var r result
		r.status = env.do(t, http.MethodPost, "/api/location/request", nil, &r.resp)
		done <- r
	}()

	// Let the request block waiting for the authorization decision.
	time.Sleep(50 * time.Millisecond)
	var state handlers.LocationStateResponse
	env.do(t, http.MethodGet, "/api/location", nil, &state)
	if state.Status != string(services.LocationAwaitingAuthorization) {
		t.Fatalf("expected awaiting_authorization while pending, got %q", state.Status)
	}

	lat, lng := 38.72, -9.14
	env.do(t, http.MethodPost, "/api/location/report", handlers.LocationReportRequest{
		Status: "granted",
		Lat:    &lat,
		Lng:    &lng,
	}, nil)

	select {
	case r := <-done:
		if r.resp.Result == nil || r.resp.Result.Outcome != services.OutcomeGranted {
			t.Fatalf("expected granted after report, got %+v", r.resp.Result)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("location request never completed")
	}
}

func TestLocationReportValidatesStatus(t *testing.T) {
	env := newTestEnv(t)

	status := env.do(t, http.MethodPost, "/api/location/report", handlers.LocationReportRequest{Status: "maybe"}, nil)
	if status != http.StatusBadRequest {
		t.Fatalf("expected 400 for bogus status, got %d", status)
	}
}

func TestReverseGeocodeEndpoint(t *testing.T) {
	env := newTestEnv(t)

	var resp handlers.ReverseGeocodeResponse
	status := env.do(t, http.MethodGet, "/api/geocode/reverse?lat=45.52&lng=-122.68", nil, &resp)
	if status != http.StatusOK {
		t.Fatalf("reverse: status %d", status)
	}
	if resp.Place != "Portland, Oregon" {
		t.Fatalf("expected formatted place, got %q", resp.Place)
	}

	if status := env.do(t, http.MethodGet, "/api/geocode/reverse?lat=abc", nil, nil); status != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad coordinates, got %d", status)
	}

	env.geocoder.fail = true
	if status := env.do(t, http.MethodGet, "/api/geocode/reverse?lat=1&lng=2", nil, nil); status != http.StatusBadGateway {
		t.Fatalf("expected 502 when the geocoder fails, got %d", status)
	}
}

func TestForwardGeocodeEndpoint(t *testing.T) {
	env := newTestEnv(t)

	var resp handlers.ForwardGeocodeResponse
	status := env.do(t, http.MethodGet, "/api/geocode/forward?q=Portland", nil, &resp)
	if status != http.StatusOK {
		t.Fatalf("forward: status %d", status)
	}
	if resp.Coordinate == nil || resp.Coordinate.Lat != 45.52 {
		t.Fatalf("expected coordinate, got %+v", resp.Coordinate)
	}

	if status := env.do(t, http.MethodGet, "/api/geocode/forward", nil, nil); status != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing query, got %d", status)
	}
}
