package parse

import (
	"errors"
	"testing"
	"time"

	"voidwatch/internal/nodes"
	"voidwatch/internal/tenno"
)

func testIndex(t *testing.T) *nodes.Index {
	t.Helper()
	ix, err := nodes.Load()
	if err != nil {
		t.Fatalf("nodes.Load: %v", err)
	}
	return ix
}

func TestWarframeStatParseFissures(t *testing.T) {
	p := NewWarframeStat(testIndex(t))

	data := []byte(`[
		{"activation":"2024-03-01T10:00:00.000Z","expiry":"2024-03-01T11:00:00.000Z","node":"Hepit (Void)","missionKey":"Capture","tier":"Axi","isStorm":false},
		{"activation":"2024-03-01T10:05:00.000Z","expiry":"2024-03-01T11:05:00.000Z","node":"Ukko (Void)","missionKey":"Capture","tier":"Lith","isStorm":true},
		{"activation":"2024-03-01T10:10:00.000Z","expiry":"2024-03-01T11:10:00.000Z","node":"Nowhere (Null)","missionKey":"Survival","tier":"Prime","isStorm":false}
	]`)

	fissures, err := p.ParseFissures(data)
	if err != nil {
		t.Fatalf("ParseFissures returned error: %v", err)
	}
	if len(fissures) != 3 {
		t.Fatalf("got %d fissures, want 3", len(fissures))
	}

	// Sorted ascending by tier: Unknown, Lith, Axi.
	if fissures[0].Tier != tenno.TierUnknown || fissures[1].Tier != tenno.TierLith || fissures[2].Tier != tenno.TierAxi {
		t.Fatalf("tier order = %v %v %v, want Unknown Lith Axi", fissures[0].Tier, fissures[1].Tier, fissures[2].Tier)
	}

	// Node resolved by display value; unknown value degrades to placeholder.
	if fissures[2].Node.Value != "Hepit (Void)" || fissures[2].Node.Enemy != "Orokin" {
		t.Fatalf("Hepit node = %#v, want resolved Orokin node", fissures[2].Node)
	}
	if fissures[0].Node.Value != "Unknown" {
		t.Fatalf("unresolved node = %q, want Unknown", fissures[0].Node.Value)
	}
	if !fissures[1].Storm {
		t.Fatal("storm flag lost for void storm entry")
	}
}

func TestWarframeStatParseFissuresBadJSON(t *testing.T) {
	p := NewWarframeStat(testIndex(t))

	_, err := p.ParseFissures([]byte(`{not json`))
	var perr *Error
	if !errors.As(err, &perr) {
		t.Fatalf("error = %v, want *parse.Error", err)
	}
	if perr.Source != "warframestat" || perr.Section != "fissures" {
		t.Fatalf("error = %+v, want warframestat/fissures", perr)
	}
}

func TestWarframeStatParseCetusCycleDayNormalization(t *testing.T) {
	p := NewWarframeStat(testIndex(t))
	raw := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	day, err := p.ParseCetusCycle([]byte(`{"expiry":"2024-03-01T12:00:00.000Z","isDay":true}`))
	if err != nil {
		t.Fatalf("ParseCetusCycle returned error: %v", err)
	}
	if want := raw.Add(tenno.NightDuration); !day.Expiry.Equal(want) {
		t.Fatalf("day expiry = %v, want raw+3000s %v", day.Expiry, want)
	}

	night, err := p.ParseCetusCycle([]byte(`{"expiry":"2024-03-01T12:00:00.000Z","isDay":false}`))
	if err != nil {
		t.Fatalf("ParseCetusCycle returned error: %v", err)
	}
	if !night.Expiry.Equal(raw) {
		t.Fatalf("night expiry = %v, want raw %v", night.Expiry, raw)
	}
}

func TestWarframeStatParseInvasionsFiltersCompleted(t *testing.T) {
	p := NewWarframeStat(testIndex(t))

	data := []byte(`[
		{"node":"Ker (Ceres)","activation":"2024-03-01T00:00:00.000Z","completed":false,
		 "attackerReward":{"countedItems":[{"type":"Fieldron","count":3}]},
		 "defenderReward":{"countedItems":[{"type":"Orokin Reactor Blueprint","count":1}]}},
		{"node":"Bode (Ceres)","activation":"2024-03-01T01:00:00.000Z","completed":true,
		 "attackerReward":{"countedItems":[{"type":"Detonite Injector","count":2}]},
		 "defenderReward":{"countedItems":[]}},
		{"node":"Unda (Venus)","activation":"2024-03-01T02:00:00.000Z","completed":false,
		 "attackerReward":[],
		 "defenderReward":{"countedItems":[{"type":"Mutagen Mass","count":2}]}}
	]`)

	invasions, err := p.ParseInvasions(data)
	if err != nil {
		t.Fatalf("ParseInvasions returned error: %v", err)
	}
	if len(invasions) != 2 {
		t.Fatalf("got %d invasions, want 2 (completed filtered)", len(invasions))
	}
	if invasions[0].Rewards.Attacker[0].Item != "Fieldron" || invasions[0].Rewards.Attacker[0].Quantity != 3 {
		t.Fatalf("attacker reward = %#v, want 3 Fieldron", invasions[0].Rewards.Attacker)
	}
	// Malformed reward block (array instead of object) degrades to empty.
	if len(invasions[1].Rewards.Attacker) != 0 {
		t.Fatalf("malformed attacker reward should be empty, got %#v", invasions[1].Rewards.Attacker)
	}
	if invasions[1].Rewards.Defender[0].Item != "Mutagen Mass" {
		t.Fatalf("defender reward = %#v, want Mutagen Mass", invasions[1].Rewards.Defender)
	}
}
