package state

import (
	"errors"
	"testing"
	"time"

	"voidwatch/internal/prefs"
	"voidwatch/internal/tenno"
)

func TestStore_ReplaceAllAndSnapshotClone(t *testing.T) {
	s := NewStore(prefs.Default())

	fissures := []tenno.Fissure{{Tier: tenno.TierLith, Mission: "Capture"}}
	invasions := []tenno.Invasion{{Node: tenno.SolarNode{Value: "Ker (Ceres)"}}}
	cetus := tenno.CetusCycle{Expiry: time.Unix(1700000000, 0)}

	before := time.Now()
	s.ReplaceAll(fissures, cetus, invasions)

	snap := s.Snapshot()
	if len(snap.Fissures) != 1 || snap.Fissures[0].Mission != "Capture" {
		t.Fatalf("snapshot fissures = %#v, want 1 Capture", snap.Fissures)
	}
	if !snap.Cetus.Expiry.Equal(cetus.Expiry) {
		t.Fatalf("snapshot cetus = %v, want %v", snap.Cetus.Expiry, cetus.Expiry)
	}
	if snap.LastUpdated.Before(before) {
		t.Fatalf("LastUpdated = %v, want >= %v", snap.LastUpdated, before)
	}
	if snap.Initialized {
		t.Fatal("Initialized should stay false until SetInitialized")
	}

	// Mutating the returned snapshot must not leak into the store.
	snap.Fissures[0].Mission = "Sabotage"
	if s.Snapshot().Fissures[0].Mission != "Capture" {
		t.Fatal("Snapshot should clone the fissure list")
	}
}

func TestStore_PartialReplacements(t *testing.T) {
	s := NewStore(prefs.Default())
	s.ReplaceAll(
		[]tenno.Fissure{{Tier: tenno.TierAxi}},
		tenno.CetusCycle{Expiry: time.Unix(100, 0)},
		[]tenno.Invasion{{}},
	)

	s.ReplaceFissures([]tenno.Fissure{{Tier: tenno.TierNeo}})
	snap := s.Snapshot()
	if len(snap.Fissures) != 1 || snap.Fissures[0].Tier != tenno.TierNeo {
		t.Fatalf("fissures = %#v, want single Neo entry", snap.Fissures)
	}
	if len(snap.Invasions) != 1 {
		t.Fatal("ReplaceFissures must not touch invasions")
	}
	if !snap.Cetus.Expiry.Equal(time.Unix(100, 0)) {
		t.Fatal("ReplaceFissures must not touch the cycle")
	}

	s.ReplaceCetus(tenno.CetusCycle{Expiry: time.Unix(200, 0)})
	if !s.Snapshot().Cetus.Expiry.Equal(time.Unix(200, 0)) {
		t.Fatal("ReplaceCetus did not swap the cycle")
	}

	s.ReplaceInvasions(nil)
	if len(s.Snapshot().Invasions) != 0 {
		t.Fatal("ReplaceInvasions did not swap the invasion list")
	}
}

func TestStore_SetErrorKeepsData(t *testing.T) {
	s := NewStore(prefs.Default())
	s.ReplaceAll([]tenno.Fissure{{Tier: tenno.TierLith}}, tenno.CetusCycle{}, nil)

	s.SetError(errors.New("primary fetch failed"))
	snap := s.Snapshot()
	if snap.LastError == nil {
		t.Fatal("LastError not recorded")
	}
	if len(snap.Fissures) != 1 {
		t.Fatal("error recording must not drop data")
	}

	// A successful replace clears the error.
	s.ReplaceFissures(nil)
	if s.Snapshot().LastError != nil {
		t.Fatal("successful replace should clear LastError")
	}
}

func TestStore_UpdatePrefs(t *testing.T) {
	s := NewStore(prefs.Default())

	updated := s.UpdatePrefs(func(p *prefs.Prefs) {
		p.NotifyVoidCapture = true
		p.LastUpdate = 1234
	})
	if !updated.NotifyVoidCapture || updated.LastUpdate != 1234 {
		t.Fatalf("UpdatePrefs returned %+v, want mutation applied", updated)
	}
	if got := s.Prefs(); !got.NotifyVoidCapture || got.LastUpdate != 1234 {
		t.Fatalf("store prefs = %+v, want mutation visible", got)
	}

	// Returned copies must not alias the stored record.
	updated.MarkNotified(99)
	if s.Prefs().HasNotified(99) {
		t.Fatal("UpdatePrefs copy should not alias the stored prefs")
	}
}
