// Package prefs persists the small durable state that survives restarts:
// refresh cooldown, last-update stamp, notification toggles, and the
// notification dedup history. The file is binary-encoded and rewritten in
// full on every save; last writer wins.
package prefs

import (
	"encoding/gob"
	"errors"
	"fmt"
	"os"
	"time"
)

// DefaultFileName is the preferences file in the process working directory.
const DefaultFileName = "voidwatch.storage"

const (
	defaultCooldown = 300 // seconds between refreshes
	maxNotified     = 512 // dedup records kept before pruning the oldest
)

// Notification records one already-notified event by its activation stamp.
type Notification struct {
	Timestamp int64
}

// Prefs is the durable preference record.
type Prefs struct {
	// UpdateCooldown is how many seconds to wait before fetching new data.
	UpdateCooldown int64
	// LastUpdate is when the last successful fetch happened, in epoch
	// seconds. Zero means never.
	LastUpdate int64

	Notified []Notification

	NotifyVoidCapture  bool
	NotifyEpicInvasion bool
}

// Default returns a fresh preference record.
func Default() Prefs {
	return Prefs{UpdateCooldown: defaultCooldown}
}

// Load reads the preferences file. A missing file creates and persists the
// defaults. A file that exists but cannot be decoded is an error the caller
// must treat as fatal: silently discarding user state is worse than failing.
func Load(path string) (Prefs, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		p := Default()
		if err := Save(path, p); err != nil {
			return Prefs{}, fmt.Errorf("create prefs file: %w", err)
		}
		return p, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return Prefs{}, fmt.Errorf("open prefs file: %w", err)
	}
	defer func() { _ = f.Close() }()

	var p Prefs
	if err := gob.NewDecoder(f).Decode(&p); err != nil {
		return Prefs{}, fmt.Errorf("decode prefs file %s: %w", path, err)
	}
	return p, nil
}

// Save rewrites the preferences file in full.
func Save(path string, p Prefs) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create prefs file: %w", err)
	}
	if err := gob.NewEncoder(f).Encode(p); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode prefs: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	return nil
}

// CanUpdate reports whether enough time has passed since the last update.
func (p Prefs) CanUpdate(now time.Time) bool {
	return p.LastUpdate+p.UpdateCooldown < now.Unix()
}

// UntilNextUpdate returns seconds until the next update may run. Negative
// means overdue.
func (p Prefs) UntilNextUpdate(now time.Time) int64 {
	return (p.LastUpdate + p.UpdateCooldown) - now.Unix()
}

// HasNotified reports whether an event with this activation stamp has
// already fired a notification.
func (p Prefs) HasNotified(timestamp int64) bool {
	for _, n := range p.Notified {
		if n.Timestamp == timestamp {
			return true
		}
	}
	return false
}

// MarkNotified appends a dedup record, pruning the oldest entries once the
// history exceeds its cap.
func (p *Prefs) MarkNotified(timestamp int64) {
	p.Notified = append(p.Notified, Notification{Timestamp: timestamp})
	if overflow := len(p.Notified) - maxNotified; overflow > 0 {
		p.Notified = append(p.Notified[:0], p.Notified[overflow:]...)
	}
}

// Clone returns a deep copy so snapshots cannot alias the live record.
func (p Prefs) Clone() Prefs {
	dup := p
	if len(p.Notified) > 0 {
		dup.Notified = make([]Notification, len(p.Notified))
		copy(dup.Notified, p.Notified)
	}
	return dup
}
