package tenno

import (
	"testing"
	"time"
)

func TestTierFromString(t *testing.T) {
	tests := []struct {
		in   string
		want Tier
	}{
		{"Lith", TierLith},
		{"Meso", TierMeso},
		{"Neo", TierNeo},
		{"Axi", TierAxi},
		{"Requiem", TierRequiem},
		{"lith", TierUnknown},
		{"Void", TierUnknown},
		{"", TierUnknown},
	}
	for _, tt := range tests {
		if got := TierFromString(tt.in); got != tt.want {
			t.Errorf("TierFromString(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestTierOrdering(t *testing.T) {
	fissures := []Fissure{
		{Tier: TierRequiem},
		{Tier: TierLith},
		{Tier: TierAxi},
		{Tier: TierUnknown},
		{Tier: TierMeso},
		{Tier: TierNeo},
	}
	SortFissures(fissures)
	for i := 0; i < len(fissures)-1; i++ {
		if fissures[i].Tier > fissures[i+1].Tier {
			t.Fatalf("fissures not sorted at %d: %v > %v", i, fissures[i].Tier, fissures[i+1].Tier)
		}
	}
	if fissures[0].Tier != TierUnknown || fissures[len(fissures)-1].Tier != TierRequiem {
		t.Fatalf("sort bounds wrong: first=%v last=%v", fissures[0].Tier, fissures[len(fissures)-1].Tier)
	}
}

func TestSortFissuresStableWithinTier(t *testing.T) {
	fissures := []Fissure{
		{Tier: TierLith, Mission: "first"},
		{Tier: TierLith, Mission: "second"},
	}
	SortFissures(fissures)
	if fissures[0].Mission != "first" || fissures[1].Mission != "second" {
		t.Fatalf("sort not stable: %v", fissures)
	}
}

func TestFissureExpiry(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	f := Fissure{Expiry: now.Add(90 * time.Second)}

	if got := f.TillExpired(now); got != 90*time.Second {
		t.Fatalf("TillExpired = %v, want 90s", got)
	}
	if f.HasExpired(now) {
		t.Fatal("HasExpired = true before expiry")
	}
	if !f.HasExpired(now.Add(91 * time.Second)) {
		t.Fatal("HasExpired = false after expiry")
	}
}

func TestCetusCycleDerivation(t *testing.T) {
	expiry := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	c := CetusCycle{Expiry: expiry}

	tests := []struct {
		name      string
		now       time.Time
		wantDay   bool
		wantCycle time.Duration
	}{
		// Day lasts while >= 3000s remain before the stored expiry.
		{"deep day", expiry.Add(-5000 * time.Second), true, 2000 * time.Second},
		// At the exact boundary the day remainder hits zero, so the time
		// reported is the rest of the cycle: the full night.
		{"day boundary", expiry.Add(-NightDuration), true, NightDuration},
		{"just into night", expiry.Add(-2999 * time.Second), false, 2999 * time.Second},
		{"late night", expiry.Add(-10 * time.Second), false, 10 * time.Second},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.IsDay(tt.now); got != tt.wantDay {
				t.Errorf("IsDay = %v, want %v", got, tt.wantDay)
			}
			if got := c.TillCycle(tt.now); got != tt.wantCycle {
				t.Errorf("TillCycle = %v, want %v", got, tt.wantCycle)
			}
		})
	}
}

func TestInvasionActiveDuration(t *testing.T) {
	activation := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	inv := Invasion{Activation: activation}
	now := activation.Add(36 * time.Hour)
	if got := inv.ActiveDuration(now); got != 36*time.Hour {
		t.Fatalf("ActiveDuration = %v, want 36h", got)
	}
}

func TestRewardString(t *testing.T) {
	if got := (Reward{Item: "Fieldron", Quantity: 3}).String(); got != "3 Fieldron" {
		t.Fatalf("Reward.String() = %q, want %q", got, "3 Fieldron")
	}
	if got := (Reward{Item: "Forma Blueprint", Quantity: 1}).String(); got != "Forma Blueprint" {
		t.Fatalf("Reward.String() = %q, want %q", got, "Forma Blueprint")
	}
}

func TestRewardSetAll(t *testing.T) {
	rs := RewardSet{
		Attacker: []Reward{{Item: "Fieldron", Quantity: 2}},
		Defender: []Reward{{Item: "Orokin Reactor Blueprint", Quantity: 1}},
	}
	want := "2 Fieldron, Orokin Reactor Blueprint"
	if got := rs.All(); got != want {
		t.Fatalf("RewardSet.All() = %q, want %q", got, want)
	}
}
