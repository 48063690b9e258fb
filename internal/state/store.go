// Package state holds the shared snapshot the background engine writes and
// the presentation layer reads. The store is plain data behind a read/write
// lock; it is constructed once and handed to both sides, never a global.
package state

import (
	"fmt"
	"sync"
	"time"

	"voidwatch/internal/prefs"
	"voidwatch/internal/tenno"
)

// Snapshot is the latest normalized data plus the current preferences.
// Readers may observe the pre- or post-refresh state but never a torn mix.
type Snapshot struct {
	// Initialized is false until the first data load completes.
	Initialized bool

	Fissures  []tenno.Fissure
	Cetus     tenno.CetusCycle
	Invasions []tenno.Invasion

	Prefs prefs.Prefs

	LastUpdated time.Time
	LastError   error
}

// Store coordinates concurrent access to the snapshot. The engine is the
// sole writer; the presentation layer reads and merges preference toggles.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// NewStore seeds a store with the loaded preferences.
func NewStore(p prefs.Prefs) *Store {
	return &Store{snapshot: Snapshot{Prefs: p.Clone()}}
}

// Snapshot returns an independent copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Fissures = cloneFissures(s.snapshot.Fissures)
	snap.Invasions = cloneInvasions(s.snapshot.Invasions)
	snap.Prefs = s.snapshot.Prefs.Clone()
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

// SetInitialized marks the first data load as complete.
func (s *Store) SetInitialized() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.Initialized = true
}

// ReplaceAll swaps in all three entity sets from one successful parse.
func (s *Store) ReplaceAll(fissures []tenno.Fissure, cetus tenno.CetusCycle, invasions []tenno.Invasion) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.Fissures = cloneFissures(fissures)
	s.snapshot.Cetus = cetus
	s.snapshot.Invasions = cloneInvasions(invasions)
	s.stampLocked()
}

// ReplaceFissures swaps in the fissure list alone, for partial fallback
// success.
func (s *Store) ReplaceFissures(fissures []tenno.Fissure) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.Fissures = cloneFissures(fissures)
	s.stampLocked()
}

// ReplaceCetus swaps in the cycle alone.
func (s *Store) ReplaceCetus(cetus tenno.CetusCycle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.Cetus = cetus
	s.stampLocked()
}

// ReplaceInvasions swaps in the invasion list alone.
func (s *Store) ReplaceInvasions(invasions []tenno.Invasion) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.Invasions = cloneInvasions(invasions)
	s.stampLocked()
}

// SetError records the most recent refresh failure without disturbing the
// data, so stale results remain visible alongside the reason.
func (s *Store) SetError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.LastError = err
}

// Prefs returns a copy of the current preferences.
func (s *Store) Prefs() prefs.Prefs {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot.Prefs.Clone()
}

// UpdatePrefs applies a mutation under the write lock and returns the
// resulting copy for persistence.
func (s *Store) UpdatePrefs(mutate func(*prefs.Prefs)) prefs.Prefs {
	s.mu.Lock()
	defer s.mu.Unlock()
	mutate(&s.snapshot.Prefs)
	return s.snapshot.Prefs.Clone()
}

func (s *Store) stampLocked() {
	s.snapshot.LastUpdated = time.Now()
	s.snapshot.LastError = nil
}

func cloneFissures(items []tenno.Fissure) []tenno.Fissure {
	if len(items) == 0 {
		return nil
	}
	dup := make([]tenno.Fissure, len(items))
	copy(dup, items)
	return dup
}

func cloneInvasions(items []tenno.Invasion) []tenno.Invasion {
	if len(items) == 0 {
		return nil
	}
	dup := make([]tenno.Invasion, len(items))
	copy(dup, items)
	return dup
}
