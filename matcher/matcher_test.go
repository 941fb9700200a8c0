package matcher_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vippsas/structgrep/ast"
	"github.com/vippsas/structgrep/langs"
	"github.com/vippsas/structgrep/lexer"
	"github.com/vippsas/structgrep/matcher"
	"github.com/vippsas/structgrep/nfa"
	"github.com/vippsas/structgrep/query"
)

func compile(t *testing.T, q string) *nfa.Machine {
	t.Helper()
	opts := langs.ForExtension("c")
	toks, _, err := query.TokenizeQuery("q", q, opts)
	require.NoError(t, err)
	m, err := query.ParseQuery(toks, opts)
	require.NoError(t, err)
	return nfa.Compile(m)
}

func parseSource(t *testing.T, src string) []ast.Node {
	t.Helper()
	toks, _ := lexer.Tokenize("t.c", src, langs.ForExtension("c"))
	return ast.Parse(toks, langs.ForExtension("c"))
}

func TestMatcherExactTokenSequence(t *testing.T) {
	machine := compile(t, "foo bar")
	input := parseSource(t, "foo bar baz")
	matches := matcher.Run(machine, input)
	require.Len(t, matches, 1)
	require.Len(t, matches[0].Nodes, 2)
}

func TestMatcherAnyWildcard(t *testing.T) {
	machine := compile(t, `foo \. baz`)
	input := parseSource(t, "foo bar baz")
	matches := matcher.Run(machine, input)
	require.Len(t, matches, 1)
	require.Len(t, matches[0].Nodes, 3)
}

func TestMatcherStarGreedy(t *testing.T) {
	machine := compile(t, `foo \. \* baz`)
	input := parseSource(t, "foo a b c baz")
	matches := matcher.Run(machine, input)
	require.Len(t, matches, 1)
	require.Len(t, matches[0].Nodes, 5)
}

func TestMatcherNoMatch(t *testing.T) {
	machine := compile(t, "qux")
	input := parseSource(t, "foo bar baz")
	matches := matcher.Run(machine, input)
	require.Empty(t, matches)
}

func TestMatcherMultipleStarts(t *testing.T) {
	machine := compile(t, "foo")
	input := parseSource(t, "foo foo foo")
	matches := matcher.Run(machine, input)
	require.Len(t, matches, 3)
}

func TestMatcherDelimitedStructural(t *testing.T) {
	machine := compile(t, `f(a)`)
	input := parseSource(t, "f(a)")
	matches := matcher.Run(machine, input)
	require.Len(t, matches, 1)
	require.Len(t, matches[0].Nodes, 2)
	require.Equal(t, ast.DelimitedNode, matches[0].Nodes[1].Kind)
}

func TestMatcherDelimitedWrongOpenerDoesNotMatch(t *testing.T) {
	machine := compile(t, `f(a)`)
	input := parseSource(t, "f[a]")
	matches := matcher.Run(machine, input)
	require.Empty(t, matches)
}

func TestMatcherRecursesIntoDelimitedContent(t *testing.T) {
	machine := compile(t, "inner")
	input := parseSource(t, "f(inner)")
	matches := matcher.Run(machine, input)
	require.Len(t, matches, 1)
	require.Equal(t, "inner", matches[0].Nodes[0].Tok.Ty.Text)
}

func TestMatcherOrAlternation(t *testing.T) {
	machine := compile(t, `foo \| bar`)
	input := parseSource(t, "bar foo")
	matches := matcher.Run(machine, input)
	require.Len(t, matches, 2)
}

func TestMatcherEndAnchor(t *testing.T) {
	machine := compile(t, `baz \$`)
	input := parseSource(t, "foo baz")
	matches := matcher.Run(machine, input)
	require.Len(t, matches, 1)
	require.Len(t, matches[0].Nodes, 1)
}

func TestMatcherEndAnchorFailsMidSequence(t *testing.T) {
	machine := compile(t, `foo \$`)
	input := parseSource(t, "foo baz")
	matches := matcher.Run(machine, input)
	require.Empty(t, matches)
}

func TestMatcherRegexAgainstStringLiteral(t *testing.T) {
	machine := compile(t, `\"^%d$"`)
	input := parseSource(t, `"%d" "%s"`)
	matches := matcher.Run(machine, input)
	require.Len(t, matches, 1)
}
