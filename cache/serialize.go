package cache

import (
	"bytes"
	"encoding/gob"
	"math/big"
	"regexp"

	"github.com/vippsas/structgrep/nfa"
	"github.com/vippsas/structgrep/token"
)

// No library in the pack does generic Go value serialization (pgx and
// go-mssqldb only marshal individual column values, not arbitrary
// structs), so this uses encoding/gob directly, same as the teacher
// reaches for stdlib database/sql types when nothing domain-specific
// fits. regexp.Regexp isn't itself gob-encodable (all its fields are
// unexported), so wireMatcher below carries the pattern source instead
// and recompiles it on decode.
type wireMachine struct {
	States  map[nfa.StateID]wireState
	Initial nfa.StateID
	Accept  nfa.StateID
}

type wireState struct {
	ID          nfa.StateID
	Transitions []wireTransition
}

type wireTransition struct {
	Label  wireMatcher
	Target nfa.StateID
}

type wireMatcher struct {
	Kind        nfa.LabelKind
	Tok         wireTok
	RegexSource string
	Op, Cp      string
	Start       nfa.StateID
}

type wireTok struct {
	Kind  uint8
	Text  string
	Int   []byte // big.Int.Bytes(); sign stored separately
	Sign  int
	Float float64
}

func Marshal(m *nfa.Machine) ([]byte, error) {
	w := wireMachine{States: make(map[nfa.StateID]wireState, len(m.States)), Initial: m.Initial, Accept: m.Accept}
	for id, st := range m.States {
		ws := wireState{ID: st.ID}
		for _, t := range st.Transitions {
			ws.Transitions = append(ws.Transitions, wireTransition{Label: toWireMatcher(t.Label), Target: t.Target})
		}
		w.States[id] = ws
	}
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(w); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func Unmarshal(data []byte) (*nfa.Machine, error) {
	var w wireMachine
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&w); err != nil {
		return nil, err
	}
	m := &nfa.Machine{States: make(map[nfa.StateID]*nfa.State, len(w.States)), Initial: w.Initial, Accept: w.Accept}
	for id, ws := range w.States {
		st := &nfa.State{ID: ws.ID}
		for _, wt := range ws.Transitions {
			lbl, err := fromWireMatcher(wt.Label)
			if err != nil {
				return nil, err
			}
			st.Transitions = append(st.Transitions, nfa.Transition{Label: lbl, Target: wt.Target})
		}
		m.States[id] = st
	}
	return m, nil
}

func toWireMatcher(m nfa.Matcher) wireMatcher {
	w := wireMatcher{Kind: m.Kind, Op: m.Op, Cp: m.Cp, Start: m.Start}
	w.Tok.Kind = uint8(m.Tok.Kind)
	w.Tok.Text = m.Tok.Text
	w.Tok.Float = m.Tok.Float
	if m.Tok.Int != nil {
		w.Tok.Sign = m.Tok.Int.Sign()
		w.Tok.Int = m.Tok.Int.Bytes()
	}
	if m.Regex != nil {
		w.RegexSource = m.Regex.String()
	}
	return w
}

func fromWireMatcher(w wireMatcher) (nfa.Matcher, error) {
	m := nfa.Matcher{Kind: w.Kind, Op: w.Op, Cp: w.Cp, Start: w.Start}
	m.Tok.Kind = tokenKindFromWire(w.Tok.Kind)
	m.Tok.Text = w.Tok.Text
	m.Tok.Float = w.Tok.Float
	if w.Tok.Int != nil {
		m.Tok.Int = intFromWire(w.Tok.Sign, w.Tok.Int)
	}
	if w.RegexSource != "" {
		re, err := regexp.Compile(w.RegexSource)
		if err != nil {
			return nfa.Matcher{}, err
		}
		m.Regex = re
	}
	return m, nil
}

func tokenKindFromWire(k uint8) token.Kind { return token.Kind(k) }

func intFromWire(sign int, bs []byte) *big.Int {
	n := new(big.Int).SetBytes(bs)
	if sign < 0 {
		n.Neg(n)
	}
	return n
}
