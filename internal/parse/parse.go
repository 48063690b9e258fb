// Package parse converts the two upstream JSON schemas into the normalized
// model. Each adapter exposes three independent, side-effect-free entry
// points; a caller may invoke only the subset it needs.
package parse

import (
	"fmt"

	"voidwatch/internal/tenno"
)

// Parser is the capability every schema adapter implements.
type Parser interface {
	ParseFissures(data []byte) ([]tenno.Fissure, error)
	ParseCetusCycle(data []byte) (tenno.CetusCycle, error)
	ParseInvasions(data []byte) ([]tenno.Invasion, error)
}

// Error reports a failed parse attempt. Invalid JSON or a missing required
// section fails the whole attempt; it never yields a partial result.
type Error struct {
	Source  string // which adapter: "worldstate" or "warframestat"
	Section string // which part of the document failed
	Err     error
}

func (e *Error) Error() string {
	return fmt.Sprintf("parse %s %s: %v", e.Source, e.Section, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
