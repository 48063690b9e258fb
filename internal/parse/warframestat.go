package parse

import (
	"encoding/json"
	"time"

	"voidwatch/internal/nodes"
	"voidwatch/internal/tenno"
)

// WarframeStat parses the aggregator fallback schema: flat camelCase arrays
// with RFC3339 timestamps and human-readable reward names. One endpoint per
// entity, so each entry point takes only its own document.
type WarframeStat struct {
	nodes *nodes.Index
}

// NewWarframeStat builds the adapter for the fallback source schema.
func NewWarframeStat(ix *nodes.Index) *WarframeStat {
	return &WarframeStat{nodes: ix}
}

var _ Parser = (*WarframeStat)(nil)

type statFissure struct {
	Activation time.Time `json:"activation"`
	Expiry     time.Time `json:"expiry"`
	Node       string    `json:"node"`
	MissionKey string    `json:"missionKey"`
	Tier       string    `json:"tier"`
	IsStorm    bool      `json:"isStorm"`
	IsHard     bool      `json:"isHard"`
}

type statCycle struct {
	Expiry time.Time `json:"expiry"`
	IsDay  bool      `json:"isDay"`
}

type statCountedItem struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

// statRewardSide tolerates missing or malformed reward blocks as empty.
type statRewardSide struct {
	CountedItems []statCountedItem
}

func (r *statRewardSide) UnmarshalJSON(data []byte) error {
	var inner struct {
		CountedItems []statCountedItem `json:"countedItems"`
	}
	if err := json.Unmarshal(data, &inner); err != nil {
		r.CountedItems = nil
		return nil
	}
	r.CountedItems = inner.CountedItems
	return nil
}

type statInvasion struct {
	Node           string         `json:"node"`
	Activation     time.Time      `json:"activation"`
	AttackerReward statRewardSide `json:"attackerReward"`
	DefenderReward statRewardSide `json:"defenderReward"`
	Completed      bool           `json:"completed"`
}

// ParseFissures decodes the fissures endpoint payload into a tier-sorted
// list. The schema flags storms inline rather than in a separate array.
func (p *WarframeStat) ParseFissures(data []byte) ([]tenno.Fissure, error) {
	var raw []statFissure
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &Error{Source: "warframestat", Section: "fissures", Err: err}
	}

	fissures := make([]tenno.Fissure, 0, len(raw))
	for _, f := range raw {
		fissures = append(fissures, tenno.Fissure{
			Activation: f.Activation,
			Expiry:     f.Expiry,
			Node:       p.nodes.ByValue(f.Node),
			Mission:    f.MissionKey,
			Tier:       tenno.TierFromString(f.Tier),
			Storm:      f.IsStorm,
			Hard:       f.IsHard,
		})
	}

	tenno.SortFissures(fissures)
	return fissures, nil
}

// ParseCetusCycle decodes the cycle endpoint payload. The raw expiry marks
// the end of the current phase, so when the source reports day the stored
// end-of-night expiry is the raw value plus one night.
func (p *WarframeStat) ParseCetusCycle(data []byte) (tenno.CetusCycle, error) {
	var raw statCycle
	if err := json.Unmarshal(data, &raw); err != nil {
		return tenno.CetusCycle{}, &Error{Source: "warframestat", Section: "cetusCycle", Err: err}
	}

	expiry := raw.Expiry
	if raw.IsDay {
		expiry = expiry.Add(tenno.NightDuration)
	}
	return tenno.CetusCycle{Expiry: expiry}, nil
}

// ParseInvasions decodes the invasions endpoint payload, dropping completed
// invasions. Reward names arrive already human-readable.
func (p *WarframeStat) ParseInvasions(data []byte) ([]tenno.Invasion, error) {
	var raw []statInvasion
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &Error{Source: "warframestat", Section: "invasions", Err: err}
	}

	invasions := make([]tenno.Invasion, 0, len(raw))
	for _, inv := range raw {
		if inv.Completed {
			continue
		}
		invasions = append(invasions, tenno.Invasion{
			Activation: inv.Activation,
			Node:       p.nodes.ByValue(inv.Node),
			Rewards: tenno.RewardSet{
				Attacker: statRewards(inv.AttackerReward),
				Defender: statRewards(inv.DefenderReward),
			},
		})
	}
	return invasions, nil
}

func statRewards(side statRewardSide) []tenno.Reward {
	if len(side.CountedItems) == 0 {
		return nil
	}
	rewards := make([]tenno.Reward, 0, len(side.CountedItems))
	for _, item := range side.CountedItems {
		rewards = append(rewards, tenno.Reward{Item: item.Type, Quantity: item.Count})
	}
	return rewards
}
