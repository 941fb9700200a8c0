// Package nfa implements the NFA compiler (spec component F): a
// Thompson-style construction from a query AST into a Machine, and the
// fixed-point optimization passes that shrink it afterward. A Machine
// is immutable once Compile returns; concurrent matchers may share one
// by pointer (spec §5).
package nfa

import (
	"fmt"
	"regexp"

	"github.com/vippsas/structgrep/token"
)

// LabelKind distinguishes the variants of Matcher (the NFA edge
// label).
type LabelKind uint8

const (
	Epsilon LabelKind = iota
	Accept
	Token
	Any
	End
	Regex
	Delimited
)

// StateID indexes a State within a Machine. IDs are stable and
// contiguous (0..N-1) only after Compile's normalization pass; during
// construction they are only guaranteed unique.
type StateID int

// Matcher is the label on one NFA transition. Only the fields relevant
// to Kind are meaningful.
type Matcher struct {
	Kind  LabelKind
	Tok   token.StandardTokenType // Token
	Regex *regexp.Regexp          // Regex
	Op    string                  // Delimited: opener text to match against an AST node
	Cp    string                  // Delimited: the closer recorded on the query AST node (not matched against, kept for diagnostics)
	Start StateID                 // Delimited: entry state of the nested content, in the same Machine
}

// Key returns a stable string for set/dedup purposes (spec §4.F pass
// 4 and pass 5 operate on "(matcher,target)" as a set).
func (m Matcher) Key() string {
	switch m.Kind {
	case Token:
		return "Token:" + m.Tok.Key()
	case Regex:
		return "Regex:" + m.Regex.String()
	case Delimited:
		return fmt.Sprintf("Delimited:%s:%s:%d", m.Op, m.Cp, m.Start)
	default:
		return labelKindName(m.Kind)
	}
}

func labelKindName(k LabelKind) string {
	switch k {
	case Epsilon:
		return "Epsilon"
	case Accept:
		return "Accept"
	case Any:
		return "Any"
	case End:
		return "End"
	default:
		return "Unknown"
	}
}

// Transition is one outgoing edge of a State.
type Transition struct {
	Label  Matcher
	Target StateID
}

// State is a node of the Machine: an id plus its outgoing transitions.
type State struct {
	ID          StateID
	Transitions []Transition
}

// Machine is a compiled, immutable (after Compile returns) NFA.
// Initial is the entry state for a top-level match attempt; Accept is
// the single accepting state shared by the whole machine, including
// every nested Delimited sub-automaton (spec invariants I2, I3).
type Machine struct {
	States  map[StateID]*State
	Initial StateID
	Accept  StateID
}

// State looks up a state by id, panicking with InternalError if it is
// missing (spec invariant I1: every referenced id must exist).
func (m *Machine) State(id StateID) *State {
	s, ok := m.States[id]
	if !ok {
		panic(InternalError{Message: fmt.Sprintf("state %d referenced but not present in machine", id)})
	}
	return s
}
