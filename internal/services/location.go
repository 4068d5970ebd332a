package services

import (
	"context"
	"log"
	"sync"
)

// LocationStatus is the observable state of the acquisition flow.
type LocationStatus string

const (
	LocationUnrequested           LocationStatus = "unrequested"
	LocationAwaitingAuthorization LocationStatus = "awaiting_authorization"
	LocationFetching              LocationStatus = "authorized_fetching"
	LocationDenied                LocationStatus = "denied"
	LocationResolved              LocationStatus = "resolved"
)

// LocationDeniedMessage is shown verbatim when the platform reports the
// permission as denied or restricted. There is no programmatic retry; the
// user has to change the system settings.
const LocationDeniedMessage = "Location access is denied. Enable location permissions in Settings to tag entries with a place."

// Terminal outcomes of a location request.
const (
	OutcomeGranted = "granted"
	OutcomeDenied  = "denied"
	OutcomeFailed  = "failed"
)

// LocationResult is the terminal result of one acquisition request.
type LocationResult struct {
	Outcome    string      `json:"outcome"`
	Place      string      `json:"place,omitempty"`
	Coordinate *Coordinate `json:"coordinate,omitempty"`
	Message    string      `json:"message,omitempty"`
}

// LocationProvider is the narrow surface of the platform's GPS and
// permission machinery. Authorize blocks while the user decision is still
// pending and honors ctx cancellation.
type LocationProvider interface {
	Authorize(ctx context.Context) (bool, error)
	CurrentCoordinate(ctx context.Context) (Coordinate, error)
}

// LocationService runs the acquisition state machine: authorize, fetch,
// reverse geocode, publish an observable place string.
type LocationService struct {
	provider LocationProvider
	geocoder Geocoder

	mu     sync.Mutex
	status LocationStatus
	place  string
}

func NewLocationService(provider LocationProvider, geocoder Geocoder) *LocationService {
	return &LocationService{
		provider: provider,
		geocoder: geocoder,
		status:   LocationUnrequested,
	}
}

// Snapshot returns the observable status and the last resolved place.
func (s *LocationService) Snapshot() (LocationStatus, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status, s.place
}

// Request walks the state machine once and returns a terminal result.
// Cancel the context to abandon a pending authorization or fetch; failed
// attempts reset to unrequested so the user can retry manually.
func (s *LocationService) Request(ctx context.Context) LocationResult {
	s.setStatus(LocationAwaitingAuthorization)

	granted, err := s.provider.Authorize(ctx)
	if err != nil {
		log.Printf("location authorization aborted: %v", err)
		s.setStatus(LocationUnrequested)
		return LocationResult{Outcome: OutcomeFailed, Message: "location request canceled"}
	}
	if !granted {
		s.setStatus(LocationDenied)
		return LocationResult{Outcome: OutcomeDenied, Message: LocationDeniedMessage}
	}

	s.setStatus(LocationFetching)

	coord, err := s.provider.CurrentCoordinate(ctx)
	if err != nil {
		log.Printf("location fetch failed: %v", err)
		s.setStatus(LocationUnrequested)
		return LocationResult{Outcome: OutcomeFailed, Message: "could not determine current location"}
	}

	placeParts, err := s.geocoder.Reverse(ctx, coord)
	if err != nil {
		// The fix itself was fine; only the place name is missing. The
		// observable location stays unset and the user can retry.
		log.Printf("reverse geocoding failed: %v", err)
		s.setStatus(LocationUnrequested)
		return LocationResult{Outcome: OutcomeFailed, Coordinate: &coord, Message: "could not resolve a place name"}
	}

	place := FormatPlace(placeParts)

	s.mu.Lock()
	s.status = LocationResolved
	s.place = place
	s.mu.Unlock()

	return LocationResult{Outcome: OutcomeGranted, Place: place, Coordinate: &coord}
}

func (s *LocationService) setStatus(st LocationStatus) {
	s.mu.Lock()
	s.status = st
	s.mu.Unlock()
}
