// Package settings holds the process-wide, user-adjustable dock settings.
//
// The store is owned by the host and handed to every reader
// explicitly. Readers call Snapshot once per computation so a concurrent
// update never tears a single calculation.
package settings

import (
	"fmt"
	"sync"

	"github.com/1broseidon/deskwm/internal/signal"
)

const (
	DefaultDockSize = 50
	DefaultDockMag  = 2
	// DefaultInfluence is the magnification radius in multiples of DockSize.
	DefaultInfluence = 6
)

// Dock is one consistent view of the dock settings.
type Dock struct {
	DockSize  float64 `json:"dock_size"`
	DockMag   float64 `json:"dock_mag"`
	Influence float64 `json:"influence"`
}

// Radius is the pointer distance beyond which icons are not magnified.
func (d Dock) Radius() float64 {
	return d.DockSize * d.Influence
}

// Validate checks that the settings describe a usable dock.
func (d Dock) Validate() error {
	if d.DockSize <= 0 {
		return fmt.Errorf("dock_size must be > 0")
	}
	if d.DockMag < 1 {
		return fmt.Errorf("dock_mag must be >= 1")
	}
	if d.Influence <= 0 {
		return fmt.Errorf("dock_influence must be > 0")
	}
	return nil
}

// Defaults returns the built-in dock settings.
func Defaults() Dock {
	return Dock{
		DockSize:  DefaultDockSize,
		DockMag:   DefaultDockMag,
		Influence: DefaultInfluence,
	}
}

// Store is the shared settings handle.
type Store struct {
	mu      sync.RWMutex
	dock    Dock
	updates *signal.Value[Dock]
}

// NewStore creates a store seeded with d. Invalid fields fall back to the
// defaults.
func NewStore(d Dock) *Store {
	d = withDefaults(d)
	return &Store{
		dock:    d,
		updates: signal.New(d),
	}
}

// Snapshot returns the current settings.
func (s *Store) Snapshot() Dock {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dock
}

// Update replaces the dock settings after validation.
func (s *Store) Update(d Dock) error {
	if d.Influence == 0 {
		d.Influence = s.Snapshot().Influence
	}
	if err := d.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	s.dock = d
	s.mu.Unlock()

	s.updates.Set(d)
	return nil
}

// Updates publishes every accepted Update.
func (s *Store) Updates() *signal.Value[Dock] {
	return s.updates
}

func withDefaults(d Dock) Dock {
	def := Defaults()
	if d.DockSize <= 0 {
		d.DockSize = def.DockSize
	}
	if d.DockMag < 1 {
		d.DockMag = def.DockMag
	}
	if d.Influence <= 0 {
		d.Influence = def.Influence
	}
	return d
}
