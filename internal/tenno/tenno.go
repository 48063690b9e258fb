// Package tenno holds the normalized in-game entities and the time-based
// facts derived from them. Everything takes the current time as an argument
// so the derivations stay deterministic under test.
package tenno

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Cetus phase lengths in seconds: 100 minutes of day, 50 minutes of night.
const (
	DayDuration   = 6000 * time.Second
	NightDuration = 3000 * time.Second
)

// Tier classifies a fissure. The ordinal order is fixed and used for sorting.
type Tier int

const (
	TierUnknown Tier = iota
	TierLith
	TierMeso
	TierNeo
	TierAxi
	TierRequiem
)

var tierNames = map[Tier]string{
	TierUnknown: "Unknown",
	TierLith:    "Lith",
	TierMeso:    "Meso",
	TierNeo:     "Neo",
	TierAxi:     "Axi",
	TierRequiem: "Requiem",
}

func (t Tier) String() string {
	if name, ok := tierNames[t]; ok {
		return name
	}
	return "Unknown"
}

// TierFromString matches the exact tier token; anything else is Unknown.
func TierFromString(s string) Tier {
	switch s {
	case "Lith":
		return TierLith
	case "Meso":
		return TierMeso
	case "Neo":
		return TierNeo
	case "Axi":
		return TierAxi
	case "Requiem":
		return TierRequiem
	default:
		return TierUnknown
	}
}

// SolarNode describes a place. Unresolved references use UnknownNode instead
// of failing.
type SolarNode struct {
	Value string
	Enemy string
	Type  string
}

// UnknownNode is the placeholder for location references that cannot be
// resolved against the bundled dataset.
func UnknownNode() SolarNode {
	return SolarNode{Value: "Unknown"}
}

// Fissure is a timed mission opportunity. Fissures are replaced wholesale on
// every refresh and never mutated individually.
type Fissure struct {
	Activation time.Time
	Expiry     time.Time
	Node       SolarNode
	Mission    string
	Tier       Tier
	Storm      bool
	Hard       bool
}

// TillExpired returns the time remaining until the fissure expires. Negative
// once expired.
func (f Fissure) TillExpired(now time.Time) time.Duration {
	return f.Expiry.Sub(now)
}

// HasExpired reports whether the fissure's expiry has passed.
func (f Fissure) HasExpired(now time.Time) bool {
	return f.Expiry.Before(now)
}

// SortFissures orders fissures ascending by tier, keeping the incoming order
// within a tier.
func SortFissures(fissures []Fissure) {
	sort.SliceStable(fissures, func(i, j int) bool {
		return fissures[i].Tier < fissures[j].Tier
	})
}

// CetusCycle tracks the repeating day/night timer through a single expiry
// marking the end of night, regardless of which phase was active when the
// data was fetched.
type CetusCycle struct {
	Expiry time.Time
}

// IsDay reports whether the cycle is currently in its day phase: true while
// at least a full night remains before the stored expiry.
func (c CetusCycle) IsDay(now time.Time) bool {
	return c.Expiry.Sub(now) >= NightDuration
}

// TillCycle returns the time remaining in the current phase. During the day
// that is the time until night starts; during the night, the time until the
// cycle expires.
func (c CetusCycle) TillCycle(now time.Time) time.Duration {
	nightStart := c.Expiry.Add(-NightDuration)
	if left := nightStart.Sub(now); left > 0 {
		return left
	}
	return c.Expiry.Sub(now)
}

// Reward is a single (item, quantity) pair from an invasion reward track.
type Reward struct {
	Item     string
	Quantity int
}

func (r Reward) String() string {
	if r.Quantity > 1 {
		return fmt.Sprintf("%d %s", r.Quantity, r.Item)
	}
	return r.Item
}

// RewardSet carries the attacker and defender reward tracks of an invasion.
type RewardSet struct {
	Attacker []Reward
	Defender []Reward
}

// All returns every reward from both tracks as one display string.
func (rs RewardSet) All() string {
	parts := make([]string, 0, len(rs.Attacker)+len(rs.Defender))
	for _, r := range rs.Attacker {
		parts = append(parts, r.String())
	}
	for _, r := range rs.Defender {
		parts = append(parts, r.String())
	}
	return strings.Join(parts, ", ")
}

// Invasion is an active two-sided faction conflict. Completed invasions are
// filtered out before they ever reach this type.
type Invasion struct {
	Activation time.Time
	Node       SolarNode
	Rewards    RewardSet
}

// ActiveDuration returns how long the invasion has been running.
func (i Invasion) ActiveDuration(now time.Time) time.Duration {
	return now.Sub(i.Activation)
}
