// Package nodes resolves solar node keys and display names against the
// bundled static dataset. The dataset ships with the binary; failing to
// decode it is a packaging error, not a runtime condition.
package nodes

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"voidwatch/internal/tenno"
)

//go:embed sol_node.json
var solNodeData []byte

// Index provides key and value lookups over the solar node dataset.
type Index struct {
	byKey   map[string]tenno.SolarNode
	byValue map[string]string
}

type rawNode struct {
	Value string `json:"value"`
	Enemy string `json:"enemy"`
	Type  string `json:"type"`
}

// Load decodes the embedded dataset into an Index.
func Load() (*Index, error) {
	var raw map[string]rawNode
	if err := json.Unmarshal(solNodeData, &raw); err != nil {
		return nil, fmt.Errorf("decode solar node dataset: %w", err)
	}

	ix := &Index{
		byKey:   make(map[string]tenno.SolarNode, len(raw)),
		byValue: make(map[string]string, len(raw)),
	}
	for key, n := range raw {
		ix.byKey[key] = tenno.SolarNode{Value: n.Value, Enemy: n.Enemy, Type: n.Type}
		ix.byValue[n.Value] = key
	}
	return ix, nil
}

// ByKey resolves a node key such as "SolNode401". Unknown keys degrade to
// the Unknown placeholder.
func (ix *Index) ByKey(key string) tenno.SolarNode {
	if node, ok := ix.byKey[key]; ok {
		return node
	}
	return tenno.UnknownNode()
}

// ByValue resolves a display name such as "Hepit (Void)" back to its node.
// Unknown values degrade to the Unknown placeholder.
func (ix *Index) ByValue(value string) tenno.SolarNode {
	if key, ok := ix.byValue[value]; ok {
		return ix.byKey[key]
	}
	return tenno.UnknownNode()
}

// Len reports the number of nodes in the dataset.
func (ix *Index) Len() int {
	return len(ix.byKey)
}
