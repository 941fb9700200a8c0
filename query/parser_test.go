package query_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vippsas/structgrep/langs"
	"github.com/vippsas/structgrep/query"
	"github.com/vippsas/structgrep/token"
)

func parseC(t *testing.T, src string) []query.Matcher {
	t.Helper()
	opts := langs.ForExtension("c")
	toks, _, err := query.TokenizeQuery("q", src, opts)
	require.NoError(t, err)
	m, err := query.ParseQuery(toks, opts)
	require.NoError(t, err)
	return m
}

func TestParseQueryPlainTokens(t *testing.T) {
	m := parseC(t, "foo bar")
	require.Len(t, m, 2)
	require.Equal(t, query.MatchToken, m[0].Kind)
}

func TestParseQueryDelimited(t *testing.T) {
	m := parseC(t, "f(a, b)")
	require.Len(t, m, 2)
	require.Equal(t, query.MatchDelimited, m[1].Kind)
	require.Equal(t, "(", m[1].Op)
	require.Equal(t, ")", m[1].Cp)
	require.Len(t, m[1].Inner.List, 3)
}

func TestParseQueryAny(t *testing.T) {
	m := parseC(t, `a \. b`)
	require.Len(t, m, 3)
	require.Equal(t, query.MatchAny, m[1].Kind)
}

func TestParseQueryStarOnPrecedingToken(t *testing.T) {
	m := parseC(t, `a\*`)
	require.Len(t, m, 1)
	require.Equal(t, query.MatchStar, m[0].Kind)
	require.Equal(t, query.MatchToken, m[0].Inner.Kind)
}

func TestParseQueryStarImplicitAny(t *testing.T) {
	m := parseC(t, `\*`)
	require.Len(t, m, 1)
	require.Equal(t, query.MatchStar, m[0].Kind)
	require.Equal(t, query.MatchAny, m[0].Inner.Kind)
}

func TestParseQueryOrSingleLeftOperand(t *testing.T) {
	m := parseC(t, `a \| b`)
	require.Len(t, m, 1)
	require.Equal(t, query.MatchOr, m[0].Kind)
	require.Equal(t, query.MatchToken, m[0].Left.Kind)
	require.Equal(t, query.MatchNested, m[0].Right.Kind)
	require.Len(t, m[0].Right.List, 1)
}

func TestParseQueryOrMultiLeftOperand(t *testing.T) {
	m := parseC(t, `a b \| c`)
	require.Len(t, m, 1)
	require.Equal(t, query.MatchOr, m[0].Kind)
	require.Equal(t, query.MatchNested, m[0].Left.Kind)
	require.Len(t, m[0].Left.List, 2)
}

func TestParseQueryEnd(t *testing.T) {
	m := parseC(t, `a \$`)
	require.Len(t, m, 2)
	require.Equal(t, query.MatchEnd, m[1].Kind)
}

func TestParseQueryNestedMeta(t *testing.T) {
	m := parseC(t, `\( a b \)`)
	require.Len(t, m, 1)
	require.Equal(t, query.MatchNested, m[0].Kind)
	require.Len(t, m[0].List, 2)
}

func TestParseQueryRegexOperand(t *testing.T) {
	m := parseC(t, `\"^foo$"`)
	require.Len(t, m, 1)
	require.Equal(t, query.MatchRegex, m[0].Kind)
	require.True(t, m[0].Regex.MatchString("foo"))
}

func TestParseQueryInvalidRegex(t *testing.T) {
	opts := langs.ForExtension("c")
	toks, _, err := query.TokenizeQuery("q", `\"(unterminated\"`, opts)
	require.NoError(t, err)
	_, err = query.ParseQuery(toks, opts)
	require.Error(t, err)
	var reErr *query.RegexError
	require.ErrorAs(t, err, &reErr)
}

func TestParseQueryMismatchedCloserPreserved(t *testing.T) {
	m := parseC(t, "(a]")
	require.Equal(t, query.MatchDelimited, m[0].Kind)
	require.Equal(t, "]", m[0].Cp)
}

func TestParseQueryUnterminatedDelimited(t *testing.T) {
	m := parseC(t, "(a")
	require.Equal(t, query.MatchDelimited, m[0].Kind)
	require.Equal(t, "", m[0].Cp)
}

func TestParseQueryTokenPreservesStandardPayload(t *testing.T) {
	m := parseC(t, "42")
	require.Equal(t, query.MatchToken, m[0].Kind)
	require.Equal(t, token.Integer, m[0].Tok.Kind)
}
