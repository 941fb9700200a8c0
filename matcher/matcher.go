// Package matcher implements the frontier-based NFA simulation (spec
// component G): given a compiled nfa.Machine and a parsed source AST,
// it enumerates every match, recursing into Delimited.content both to
// find match starts and to check structural acceptance of a nested
// group.
package matcher

import (
	"github.com/vippsas/structgrep/ast"
	"github.com/vippsas/structgrep/cursor"
	"github.com/vippsas/structgrep/nfa"
	"github.com/vippsas/structgrep/token"
)

// Match is one accepted span of consecutive AST nodes.
type Match struct {
	Nodes []ast.Node
}

// Span merges the spans of the match's first and last node.
func (m Match) Span() cursor.Span {
	s := m.Nodes[0].Span()
	if len(m.Nodes) > 1 {
		s = s.Merge(m.Nodes[len(m.Nodes)-1].Span())
	}
	return s
}

// Run finds every match of machine against input, recursing into every
// Delimited node's content so that a potential match start is any
// suffix of any node list reachable from input (spec §4.G).
func Run(machine *nfa.Machine, input []ast.Node) []Match {
	var out []Match
	var walk func(nodes []ast.Node)
	walk = func(nodes []ast.Node) {
		for k := range nodes {
			if n, ok := simulate(machine, machine.Initial, nodes[k:]); ok {
				length := n
				if length > len(nodes)-k {
					length = len(nodes) - k
				}
				out = append(out, Match{Nodes: nodes[k : k+length]})
			}
		}
		for _, node := range nodes {
			if node.Kind == ast.DelimitedNode {
				walk(node.Content)
			}
		}
	}
	walk(input)
	return out
}

type frontierKey struct {
	pos   int
	state nfa.StateID
}

// simulate runs the frontier simulation from state start against
// input, returning the length of the longest prefix that reaches
// Accept. The returned length may exceed len(input) by one when the
// longest path ends in an End transition taken exactly at end of
// input (spec: "End counts as consuming past-the-end"); callers that
// slice input by this length must clamp it to len(input), since End
// is a zero-width anchor and there is no node past the last one to
// include.
func simulate(machine *nfa.Machine, start nfa.StateID, input []ast.Node) (int, bool) {
	longest := -1
	visited := map[frontierKey]bool{}
	queue := []frontierKey{{pos: 0, state: start}}
	visited[queue[0]] = true

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		push := func(pos int, state nfa.StateID) {
			k := frontierKey{pos: pos, state: state}
			if !visited[k] {
				visited[k] = true
				queue = append(queue, k)
			}
		}

		state := machine.State(cur.state)
		for _, t := range state.Transitions {
			switch t.Label.Kind {
			case nfa.Accept:
				if cur.pos > longest {
					longest = cur.pos
				}
			case nfa.Epsilon:
				push(cur.pos, t.Target)
			case nfa.Any:
				if cur.pos < len(input) {
					push(cur.pos+1, t.Target)
				}
			case nfa.End:
				if cur.pos == len(input) {
					push(cur.pos+1, t.Target)
				}
			case nfa.Token:
				if cur.pos < len(input) {
					node := input[cur.pos]
					if node.Kind == ast.TokenNode && node.Tok.Ty.Equal(t.Label.Tok) {
						push(cur.pos+1, t.Target)
					}
				}
			case nfa.Regex:
				if cur.pos < len(input) {
					node := input[cur.pos]
					if node.Kind == ast.TokenNode && node.Tok.Ty.Kind == token.StringLiteral && t.Label.Regex.MatchString(node.Tok.Ty.Text) {
						push(cur.pos+1, t.Target)
					}
				}
			case nfa.Delimited:
				if cur.pos < len(input) {
					node := input[cur.pos]
					if node.Kind == ast.DelimitedNode && node.Op.Ty.Kind == token.Symbol && node.Op.Ty.Text == t.Label.Op {
						if _, ok := simulate(machine, t.Label.Start, node.Content); ok {
							push(cur.pos+1, t.Target)
						}
					}
				}
			}
		}
	}

	if longest < 0 {
		return 0, false
	}
	return longest, true
}
