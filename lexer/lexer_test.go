package lexer_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vippsas/structgrep/langs"
	"github.com/vippsas/structgrep/lexer"
	"github.com/vippsas/structgrep/token"
)

func TestTokenizeIdentifiersAndSymbols(t *testing.T) {
	toks, _ := lexer.Tokenize("t.c", "foo + bar", langs.ForExtension("c"))
	require.Len(t, toks, 3)
	require.Equal(t, token.Identifier, toks[0].Ty.Kind)
	require.Equal(t, "foo", toks[0].Ty.Text)
	require.Equal(t, token.Symbol, toks[1].Ty.Kind)
	require.Equal(t, "+", toks[1].Ty.Text)
	require.Equal(t, "bar", toks[2].Ty.Text)
}

func TestTokenizeMergesAdjacentSymbols(t *testing.T) {
	toks, _ := lexer.Tokenize("t.c", "a->b", langs.ForExtension("c"))
	require.Len(t, toks, 3)
	require.Equal(t, "->", toks[1].Ty.Text)
}

func TestTokenizeDoesNotMergeAcrossWhitespace(t *testing.T) {
	toks, _ := lexer.Tokenize("t.c", "a - >b", langs.ForExtension("c"))
	require.Len(t, toks, 4)
	require.Equal(t, "-", toks[1].Ty.Text)
	require.Equal(t, ">", toks[2].Ty.Text)
}

func TestTokenizeStringLiteralWithEscape(t *testing.T) {
	toks, _ := lexer.Tokenize("t.c", `"hello \"world\""`, langs.ForExtension("c"))
	require.Len(t, toks, 1)
	require.Equal(t, token.StringLiteral, toks[0].Ty.Kind)
	require.Equal(t, `hello \"world\"`, toks[0].Ty.Text)
}

func TestTokenizeUnterminatedStringEndsAtEOF(t *testing.T) {
	toks, _ := lexer.Tokenize("t.c", `"unterminated`, langs.ForExtension("c"))
	require.Len(t, toks, 1)
	require.Equal(t, "unterminated", toks[0].Ty.Text)
}

func TestTokenizeComments(t *testing.T) {
	toks, _ := lexer.Tokenize("t.c", "a // comment\nb /* block */ c", langs.ForExtension("c"))
	require.Len(t, toks, 3)
	require.Equal(t, "a", toks[0].Ty.Text)
	require.Equal(t, "b", toks[1].Ty.Text)
	require.Equal(t, "c", toks[2].Ty.Text)
}

func TestTokenizeIntegerRadix(t *testing.T) {
	toks, _ := lexer.Tokenize("t.c", "0xFF 0b101 42", langs.ForExtension("c"))
	require.Len(t, toks, 3)
	require.Equal(t, big.NewInt(255), toks[0].Ty.Int)
	require.Equal(t, big.NewInt(5), toks[1].Ty.Int)
	require.Equal(t, big.NewInt(42), toks[2].Ty.Int)
}

func TestTokenizeFloat(t *testing.T) {
	toks, _ := lexer.Tokenize("t.c", "3.14 2e10", langs.ForExtension("c"))
	require.Len(t, toks, 2)
	require.Equal(t, token.Float, toks[0].Ty.Kind)
	require.InDelta(t, 3.14, toks[0].Ty.Float, 1e-9)
	require.InDelta(t, 2e10, toks[1].Ty.Float, 1)
}

func TestTokenizeRegexLiteralAfterSymbol(t *testing.T) {
	toks, _ := lexer.Tokenize("t.js", "x = /ab+c/", langs.ForExtension("js"))
	require.Len(t, toks, 3)
	require.Equal(t, token.Regex, toks[2].Ty.Kind)
	require.Equal(t, "ab+c", toks[2].Ty.Text)
}

func TestTokenizeNoRegexAfterCloseParen(t *testing.T) {
	toks, _ := lexer.Tokenize("t.js", "(x) / 2", langs.ForExtension("js"))
	// "(x) / 2" : '(' x ')' '/' '2' -- division, not a regex literal.
	var kinds []token.Kind
	for _, tk := range toks {
		kinds = append(kinds, tk.Ty.Kind)
	}
	require.Contains(t, kinds, token.Integer)
	foundRegex := false
	for _, tk := range toks {
		if tk.Ty.Kind == token.Regex {
			foundRegex = true
		}
	}
	require.False(t, foundRegex)
}

func TestTokenizeBlockOpenerRecognizedAfterIdentifierScan(t *testing.T) {
	toks, _ := lexer.Tokenize("t.c", "(a)", langs.ForExtension("c"))
	require.Len(t, toks, 3)
	require.Equal(t, "(", toks[0].Ty.Text)
	require.Equal(t, ")", toks[2].Ty.Text)
}

func TestTokenizeUnicodeIdentifierFallsBackToXID(t *testing.T) {
	// langs.Default leaves IdentifierStart/Continue nil for unknown
	// extensions, so a non-ASCII identifier like "héllo" only lexes as
	// one Identifier token via the XID_Start/XID_Continue fallback.
	toks, _ := lexer.Tokenize("t.unknownext", "héllo wörld", langs.ForExtension("unknownext"))
	require.Len(t, toks, 2)
	require.Equal(t, token.Identifier, toks[0].Ty.Kind)
	require.Equal(t, "héllo", toks[0].Ty.Text)
	require.Equal(t, "wörld", toks[1].Ty.Text)
}
