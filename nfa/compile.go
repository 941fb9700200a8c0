package nfa

import "github.com/vippsas/structgrep/query"

// Compile builds a Machine from a query AST by Thompson-style
// construction (spec §4.F), then runs the optimization passes to a
// fixed point. The Accept state is shared by the whole machine: every
// nested Delimited content sub-automaton epsilon-transitions into the
// same Accept used by the top level, since spec invariant I3 allows
// only one Accept state and the matcher's recursive Delimited check
// (spec §4.G) relies on reaching it to decide whether nested content
// matched in full.
func Compile(matchers []query.Matcher) *Machine {
	b := &builder{states: make(map[StateID]*State)}
	b.accept = b.newState()
	// Per spec invariant I3 ("only the Accept state carries an Accept
	// edge"), reaching Accept is detected by the matcher as it iterates
	// a frontier state's own transitions, so Accept needs a concrete
	// self-labeled edge rather than being recognized by bare identity.
	b.addEdge(b.accept, Matcher{Kind: Accept}, b.accept)

	start, end := b.compileSeq(matchers)
	b.addEpsilon(end, b.accept)

	m := &Machine{States: b.states, Initial: start, Accept: b.accept}
	return optimize(m)
}

type builder struct {
	states  map[StateID]*State
	counter StateID
	accept  StateID
}

func (b *builder) newState() StateID {
	id := b.counter
	b.counter++
	b.states[id] = &State{ID: id}
	return id
}

func (b *builder) addEdge(from StateID, label Matcher, to StateID) {
	s := b.states[from]
	s.Transitions = append(s.Transitions, Transition{Label: label, Target: to})
}

func (b *builder) addEpsilon(from, to StateID) {
	b.addEdge(from, Matcher{Kind: Epsilon}, to)
}

// compileSeq concatenates a list of matchers by epsilon-chaining (spec
// §4.F's Nested(xs) rule), which also implements the Delimited
// content's own internal sequencing and the top-level construction. An
// empty list compiles to a single state that is simultaneously its own
// start and end (epsilon-equivalent to "already done").
func (b *builder) compileSeq(list []query.Matcher) (start, end StateID) {
	if len(list) == 0 {
		s := b.newState()
		return s, s
	}

	start, end = b.compileOne(list[0])
	for _, m := range list[1:] {
		s2, e2 := b.compileOne(m)
		b.addEpsilon(end, s2)
		end = e2
	}
	return start, end
}

func (b *builder) compileOne(m query.Matcher) (start, end StateID) {
	switch m.Kind {
	case query.MatchToken:
		start, end = b.newState(), b.newState()
		b.addEdge(start, Matcher{Kind: Token, Tok: m.Tok}, end)
		return

	case query.MatchAny:
		start, end = b.newState(), b.newState()
		b.addEdge(start, Matcher{Kind: Any}, end)
		return

	case query.MatchEnd:
		start, end = b.newState(), b.newState()
		b.addEdge(start, Matcher{Kind: End}, end)
		return

	case query.MatchRegex:
		start, end = b.newState(), b.newState()
		b.addEdge(start, Matcher{Kind: Regex, Regex: m.Regex}, end)
		return

	case query.MatchDelimited:
		contentStart, contentEnd := b.compileSeq(m.Inner.List)
		b.addEpsilon(contentEnd, b.accept)
		start, end = b.newState(), b.newState()
		b.addEdge(start, Matcher{Kind: Delimited, Op: m.Op, Cp: m.Cp, Start: contentStart}, end)
		return

	case query.MatchPlus:
		s, e := b.compileOne(m.Inner)
		b.addEpsilon(e, s)
		return s, e

	case query.MatchStar:
		s, e := b.compileOne(m.Inner)
		newEnd := b.newState()
		b.addEpsilon(s, newEnd)
		b.addEpsilon(e, s)
		b.addEpsilon(e, newEnd)
		return s, newEnd

	case query.MatchQuestionMark:
		s, e := b.compileOne(m.Inner)
		newEnd := b.newState()
		b.addEpsilon(s, newEnd)
		b.addEpsilon(e, newEnd)
		return s, newEnd

	case query.MatchOr:
		aStart, aEnd := b.compileOne(m.Left)
		bStart, bEnd := b.compileOne(m.Right)
		start, end = b.newState(), b.newState()
		b.addEpsilon(start, aStart)
		b.addEpsilon(start, bStart)
		b.addEpsilon(aEnd, end)
		b.addEpsilon(bEnd, end)
		return

	case query.MatchNested:
		return b.compileSeq(m.List)

	default:
		panic(InternalError{Message: "compile: unknown query matcher kind"})
	}
}
