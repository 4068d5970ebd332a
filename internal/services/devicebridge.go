package services

import (
	"context"
	"fmt"
	"sync"
)

// DeviceBridge implements LocationProvider with authorization decisions
// and GPS fixes pushed in by the mobile shell. A request blocked in
// Authorize completes as soon as the shell reports the user's decision —
// the platform's permission callback, inverted into a wait.
type DeviceBridge struct {
	mu      sync.Mutex
	changed chan struct{} // closed and replaced on every report
	decided bool
	granted bool
	coord   *Coordinate
}

func NewDeviceBridge() *DeviceBridge {
	return &DeviceBridge{changed: make(chan struct{})}
}

// Report records the platform authorization outcome and, when available,
// the current GPS fix. Safe to call repeatedly; each call wakes waiters.
func (b *DeviceBridge) Report(granted bool, coord *Coordinate) {
	b.mu.Lock()
	b.decided = true
	b.granted = granted
	if coord != nil {
		c := *coord
		b.coord = &c
	}
	close(b.changed)
	b.changed = make(chan struct{})
	b.mu.Unlock()
}

// Authorize returns the reported decision, waiting while it is still
// undetermined.
func (b *DeviceBridge) Authorize(ctx context.Context) (bool, error) {
	for {
		b.mu.Lock()
		if b.decided {
			granted := b.granted
			b.mu.Unlock()
			return granted, nil
		}
		ch := b.changed
		b.mu.Unlock()

		select {
		case <-ctx.Done():
			return false, ctx.Err()
		case <-ch:
		}
	}
}

// CurrentCoordinate returns the most recent GPS fix, waiting for one when
// authorization was granted but no fix has arrived yet.
func (b *DeviceBridge) CurrentCoordinate(ctx context.Context) (Coordinate, error) {
	for {
		b.mu.Lock()
		if b.coord != nil {
			c := *b.coord
			b.mu.Unlock()
			return c, nil
		}
		if b.decided && !b.granted {
			b.mu.Unlock()
			return Coordinate{}, fmt.Errorf("location permission not granted")
		}
		ch := b.changed
		b.mu.Unlock()

		select {
		case <-ctx.Done():
			return Coordinate{}, ctx.Err()
		case <-ch:
		}
	}
}
