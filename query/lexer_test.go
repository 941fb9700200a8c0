package query_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vippsas/structgrep/langs"
	"github.com/vippsas/structgrep/query"
	"github.com/vippsas/structgrep/token"
)

func TestTokenizeQueryPlainTokens(t *testing.T) {
	toks, _, err := query.TokenizeQuery("q", "foo(bar)", langs.ForExtension("c"))
	require.NoError(t, err)
	require.Len(t, toks, 4) // foo ( bar )
	for _, tok := range toks {
		require.Equal(t, token.Standard, tok.Ty.Kind)
	}
}

func TestTokenizeQueryMetaEscapes(t *testing.T) {
	toks, _, err := query.TokenizeQuery("q", `\. \* \+ \? \| \$`, langs.ForExtension("c"))
	require.NoError(t, err)
	require.Len(t, toks, 6)
	want := []token.QueryKind{token.Any, token.Star, token.Plus, token.QuestionMark, token.Or, token.End}
	for i, k := range want {
		require.Equal(t, k, toks[i].Ty.Kind)
	}
}

func TestTokenizeQueryNested(t *testing.T) {
	toks, _, err := query.TokenizeQuery("q", `a \( b c \) d`, langs.ForExtension("c"))
	require.NoError(t, err)
	require.Len(t, toks, 3) // a, Nested(b c), d
	require.Equal(t, token.Nested, toks[1].Ty.Kind)
	require.Len(t, toks[1].Ty.Group, 2)
}

func TestTokenizeQueryUnbalancedNested(t *testing.T) {
	_, _, err := query.TokenizeQuery("q", `a \( b`, langs.ForExtension("c"))
	require.Error(t, err)
	var synErr *query.SyntaxError
	require.ErrorAs(t, err, &synErr)
}

func TestTokenizeQueryUnmatchedCloser(t *testing.T) {
	_, _, err := query.TokenizeQuery("q", `a \)`, langs.ForExtension("c"))
	require.Error(t, err)
}

func TestTokenizeQueryRegexOperator(t *testing.T) {
	toks, _, err := query.TokenizeQuery("q", `\"foo.*bar"`, langs.ForExtension("c"))
	require.NoError(t, err)
	require.Len(t, toks, 1)
	require.Equal(t, token.RegexOp, toks[0].Ty.Kind)
	require.Equal(t, "foo.*bar", toks[0].Ty.Pattern)
}

func TestTokenizeQueryUnknownEscape(t *testing.T) {
	_, _, err := query.TokenizeQuery("q", `\z`, langs.ForExtension("c"))
	require.Error(t, err)
}

func TestTokenizeQuerySymbolMergeAcrossMetaBoundary(t *testing.T) {
	// "==" should merge into one Symbol token as in the standard lexer,
	// but the merge buffer must reset across a meta token so "=" \. "="
	// never accidentally merges into "==".
	toks, _, err := query.TokenizeQuery("q", `= \. =`, langs.ForExtension("c"))
	require.NoError(t, err)
	require.Len(t, toks, 3)
	require.Equal(t, "=", toks[0].Ty.Std.Text)
	require.Equal(t, token.Any, toks[1].Ty.Kind)
	require.Equal(t, "=", toks[2].Ty.Std.Text)
}
