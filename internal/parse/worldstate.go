package parse

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"voidwatch/internal/nodes"
	"voidwatch/internal/tenno"
)

const cetusSyndicateTag = "CetusSyndicate"

var errMissingSection = errors.New("required section missing")

// WorldState parses the raw game-state document: a nested PascalCase JSON
// blob with mongo-style timestamps and internal item path identifiers.
type WorldState struct {
	nodes *nodes.Index
}

// NewWorldState builds the adapter for the primary source schema.
func NewWorldState(ix *nodes.Index) *WorldState {
	return &WorldState{nodes: ix}
}

var _ Parser = (*WorldState)(nil)

// stateTime decodes {"$date": {"$numberLong": "<millis>"}} timestamps. The
// inner value appears both as a quoted string and as a bare number upstream.
type stateTime struct {
	time.Time
}

func (t *stateTime) UnmarshalJSON(data []byte) error {
	var outer struct {
		Date struct {
			NumberLong json.RawMessage `json:"$numberLong"`
		} `json:"$date"`
	}
	if err := json.Unmarshal(data, &outer); err != nil {
		return err
	}
	raw := strings.Trim(string(outer.Date.NumberLong), `"`)
	if raw == "" {
		return errors.New("empty $numberLong timestamp")
	}
	millis, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return err
	}
	t.Time = time.UnixMilli(millis).UTC()
	return nil
}

// missionLabels maps internal mission type tokens to display names.
var missionLabels = map[string]string{
	"MT_ARENA":          "Rathuum",
	"MT_ARTIFACT":       "Disruption",
	"MT_ASSAULT":        "Assault",
	"MT_ASSASSINATION":  "Assassination",
	"MT_CAPTURE":        "Capture",
	"MT_DEFENSE":        "Defense",
	"MT_DISRUPTION":     "Disruption",
	"MT_EVACUATION":     "Defection",
	"MT_EXCAVATE":       "Excavation",
	"MT_EXTERMINATION":  "Extermination",
	"MT_HIVE":           "Hive",
	"MT_INTEL":          "Spy",
	"MT_LANDSCAPE":      "Free Roam",
	"MT_MOBILE_DEFENSE": "Mobile Defense",
	"MT_PVP":            "Conclave",
	"MT_RESCUE":         "Rescue",
	"MT_RETRIEVAL":      "Hijack",
	"MT_SABOTAGE":       "Sabotage",
	"MT_SECTOR":         "Dark Sector",
	"MT_SURVIVAL":       "Survival",
	"MT_TERRITORY":      "Interception",
}

func missionLabel(token string) string {
	if label, ok := missionLabels[token]; ok {
		return label
	}
	return "Unknown"
}

// tierFromModifier maps VoidT1..VoidT5 tokens to tiers, Unknown otherwise.
func tierFromModifier(modifier string) tenno.Tier {
	switch modifier {
	case "VoidT1":
		return tenno.TierLith
	case "VoidT2":
		return tenno.TierMeso
	case "VoidT3":
		return tenno.TierNeo
	case "VoidT4":
		return tenno.TierAxi
	case "VoidT5":
		return tenno.TierRequiem
	default:
		return tenno.TierUnknown
	}
}

type stateMission struct {
	Node        string    `json:"Node"`
	MissionType string    `json:"MissionType"`
	Modifier    string    `json:"Modifier"`
	Activation  stateTime `json:"Activation"`
	Expiry      stateTime `json:"Expiry"`
	Hard        bool      `json:"Hard"`
}

type stateStorm struct {
	Node       string    `json:"Node"`
	Tier       string    `json:"ActiveMissionTier"`
	Activation stateTime `json:"Activation"`
	Expiry     stateTime `json:"Expiry"`
}

type stateSyndicate struct {
	Tag        string    `json:"Tag"`
	Activation stateTime `json:"Activation"`
	Expiry     stateTime `json:"Expiry"`
}

type stateCountedItem struct {
	ItemType  string `json:"ItemType"`
	ItemCount int    `json:"ItemCount"`
}

// stateRewardSide tolerates missing or malformed reward blocks: anything
// that does not decode as a counted-item object counts as no reward.
type stateRewardSide struct {
	CountedItems []stateCountedItem
}

func (r *stateRewardSide) UnmarshalJSON(data []byte) error {
	var inner struct {
		CountedItems []stateCountedItem `json:"countedItems"`
	}
	if err := json.Unmarshal(data, &inner); err != nil {
		r.CountedItems = nil
		return nil
	}
	r.CountedItems = inner.CountedItems
	return nil
}

type stateInvasion struct {
	Node           string          `json:"Node"`
	Activation     stateTime       `json:"Activation"`
	AttackerReward stateRewardSide `json:"AttackerReward"`
	DefenderReward stateRewardSide `json:"DefenderReward"`
	Completed      bool            `json:"Completed"`
}

// ParseFissures merges ActiveMissions and VoidStorms into one tier-sorted
// fissure list, with the storm flag set per source array.
func (p *WorldState) ParseFissures(data []byte) ([]tenno.Fissure, error) {
	var doc struct {
		ActiveMissions json.RawMessage `json:"ActiveMissions"`
		VoidStorms     json.RawMessage `json:"VoidStorms"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &Error{Source: "worldstate", Section: "document", Err: err}
	}
	if doc.ActiveMissions == nil {
		return nil, &Error{Source: "worldstate", Section: "ActiveMissions", Err: errMissingSection}
	}
	if doc.VoidStorms == nil {
		return nil, &Error{Source: "worldstate", Section: "VoidStorms", Err: errMissingSection}
	}

	var missions []stateMission
	if err := json.Unmarshal(doc.ActiveMissions, &missions); err != nil {
		return nil, &Error{Source: "worldstate", Section: "ActiveMissions", Err: err}
	}
	var storms []stateStorm
	if err := json.Unmarshal(doc.VoidStorms, &storms); err != nil {
		return nil, &Error{Source: "worldstate", Section: "VoidStorms", Err: err}
	}

	fissures := make([]tenno.Fissure, 0, len(missions)+len(storms))
	for _, m := range missions {
		fissures = append(fissures, tenno.Fissure{
			Activation: m.Activation.Time,
			Expiry:     m.Expiry.Time,
			Node:       p.nodes.ByKey(m.Node),
			Mission:    missionLabel(m.MissionType),
			Tier:       tierFromModifier(m.Modifier),
			Hard:       m.Hard,
		})
	}
	for _, s := range storms {
		node := p.nodes.ByKey(s.Node)
		// Storms carry no mission type; the node's own type stands in.
		mission := node.Type
		if mission == "" {
			mission = "Unknown"
		}
		fissures = append(fissures, tenno.Fissure{
			Activation: s.Activation.Time,
			Expiry:     s.Expiry.Time,
			Node:       node,
			Mission:    mission,
			Tier:       tierFromModifier(s.Tier),
			Storm:      true,
		})
	}

	tenno.SortFissures(fissures)
	return fissures, nil
}

// ParseCetusCycle extracts the cycle expiry from the syndicate mission
// tagged as the Cetus syndicate. That expiry already marks end-of-night.
func (p *WorldState) ParseCetusCycle(data []byte) (tenno.CetusCycle, error) {
	var doc struct {
		SyndicateMissions json.RawMessage `json:"SyndicateMissions"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return tenno.CetusCycle{}, &Error{Source: "worldstate", Section: "document", Err: err}
	}
	if doc.SyndicateMissions == nil {
		return tenno.CetusCycle{}, &Error{Source: "worldstate", Section: "SyndicateMissions", Err: errMissingSection}
	}

	var syndicates []stateSyndicate
	if err := json.Unmarshal(doc.SyndicateMissions, &syndicates); err != nil {
		return tenno.CetusCycle{}, &Error{Source: "worldstate", Section: "SyndicateMissions", Err: err}
	}

	for _, s := range syndicates {
		if s.Tag == cetusSyndicateTag {
			return tenno.CetusCycle{Expiry: s.Expiry.Time}, nil
		}
	}
	return tenno.CetusCycle{}, &Error{
		Source:  "worldstate",
		Section: "SyndicateMissions",
		Err:     errors.New("no " + cetusSyndicateTag + " entry"),
	}
}

// ParseInvasions returns the non-completed invasions with reward item paths
// translated to display names.
func (p *WorldState) ParseInvasions(data []byte) ([]tenno.Invasion, error) {
	var doc struct {
		Invasions json.RawMessage `json:"Invasions"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &Error{Source: "worldstate", Section: "document", Err: err}
	}
	if doc.Invasions == nil {
		return nil, &Error{Source: "worldstate", Section: "Invasions", Err: errMissingSection}
	}

	var raw []stateInvasion
	if err := json.Unmarshal(doc.Invasions, &raw); err != nil {
		return nil, &Error{Source: "worldstate", Section: "Invasions", Err: err}
	}

	invasions := make([]tenno.Invasion, 0, len(raw))
	for _, inv := range raw {
		if inv.Completed {
			continue
		}
		invasions = append(invasions, tenno.Invasion{
			Activation: inv.Activation.Time,
			Node:       p.nodes.ByKey(inv.Node),
			Rewards: tenno.RewardSet{
				Attacker: stateRewards(inv.AttackerReward),
				Defender: stateRewards(inv.DefenderReward),
			},
		})
	}
	return invasions, nil
}

func stateRewards(side stateRewardSide) []tenno.Reward {
	if len(side.CountedItems) == 0 {
		return nil
	}
	rewards := make([]tenno.Reward, 0, len(side.CountedItems))
	for _, item := range side.CountedItems {
		rewards = append(rewards, tenno.Reward{
			Item:     itemName(item.ItemType),
			Quantity: item.ItemCount,
		})
	}
	return rewards
}
