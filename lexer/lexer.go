// Package lexer turns a source byte stream into a standard token
// stream (spec component B), driven entirely by a langs.Options value.
// It never fails: malformed input degrades to best-effort tokens
// rather than an error (see scanNumber and scanDelimited).
package lexer

import (
	"unicode"

	"github.com/smasher164/xid"
	"github.com/vippsas/structgrep/cursor"
	"github.com/vippsas/structgrep/langs"
	"github.com/vippsas/structgrep/token"
)

// Tokenize lexes src under opts, returning the standard token stream
// together with the cursor used to produce it (the caller needs the
// cursor afterward to resolve spans to source lines).
func Tokenize(file cursor.FileRef, src string, opts langs.Options) ([]token.StandardToken, *cursor.Cursor) {
	c := cursor.New(file, src)
	var out []token.StandardToken

	for {
		SkipCommentsAndWhitespace(c, opts)
		if c.AtEOF() {
			break
		}

		tok, ok := ScanOne(c, opts, RegexAdmissible(out))
		if !ok {
			break
		}

		if CanMergeSymbols(out, tok) && !isBlockSymbol(opts, out[len(out)-1]) && !isBlockSymbol(opts, tok) {
			prev := out[len(out)-1]
			merged := token.NewSymbol(prev.Ty.Text + tok.Ty.Text)
			out[len(out)-1] = token.StandardToken{Ty: merged, Span: prev.Span.Merge(tok.Span)}
			continue
		}
		out = append(out, tok)
	}

	return out, c
}

// CanMergeSymbols implements step 9's "no whitespace or comment in
// between" rule. Since SkipCommentsAndWhitespace always runs
// immediately before ScanOne, two tokens only ever merge when nothing
// (not even a comment) separated them in the source, which is exactly
// what byte-adjacency of their spans means; callers never see a
// mid-merge gap because merging happens before the token is appended
// to out. Exported so the query lexer (which interleaves standard
// tokens with meta tokens) can apply the same rule.
func CanMergeSymbols(out []token.StandardToken, tok token.StandardToken) bool {
	if tok.Ty.Kind != token.Symbol || len(out) == 0 {
		return false
	}
	prev := out[len(out)-1]
	if prev.Ty.Kind != token.Symbol {
		return false
	}
	return prev.Span.Hi+1 == tok.Span.Lo
}

// isBlockSymbol reports whether tok is a configured block opener or
// closer. Those are emitted on their own (4.B step 8) and never take
// part in the adjacent-Symbol merge.
func isBlockSymbol(opts langs.Options, tok token.StandardToken) bool {
	return opts.IsBlockOpener(tok.Ty.Text) || opts.IsBlockCloser(tok.Ty.Text)
}

// RegexAdmissible implements 4.B.1: a regex literal may be read when
// the output so far is empty, or when the previous token is a Symbol
// whose text is not ")". The query lexer does not call it; it applies
// its own queryRegexAdmissible over its mixed standard/meta history.
func RegexAdmissible(out []token.StandardToken) bool {
	if len(out) == 0 {
		return true
	}
	last := out[len(out)-1]
	return last.Ty.Kind == token.Symbol && last.Ty.Text != ")"
}

// SkipCommentsAndWhitespace consumes comments and whitespace at the
// cursor's current position, in a loop, until neither matches.
func SkipCommentsAndWhitespace(c *cursor.Cursor, opts langs.Options) {
	for {
		if delim, ok := matchAnyPrefix(c, opts.SingleLineComments); ok {
			consumeRunes(c, delim)
			for !c.AtEOF() {
				if r, _ := c.Peek(); r == '\n' {
					break
				}
				c.Advance()
			}
			continue
		}
		if matchedAnyMultiLine(c, opts) {
			continue
		}
		if r, ok := c.Peek(); ok && unicode.IsSpace(r) {
			c.Advance()
			continue
		}
		break
	}
}

func matchedAnyMultiLine(c *cursor.Cursor, opts langs.Options) bool {
	for _, pair := range opts.MultiLineComments {
		if c.StartsWith(pair.Begin) {
			consumeRunes(c, pair.Begin)
			for !c.AtEOF() && !c.StartsWith(pair.End) {
				c.Advance()
			}
			if !c.AtEOF() {
				consumeRunes(c, pair.End)
			}
			return true
		}
	}
	return false
}

// ScanOne reads exactly one standard token at the cursor's current
// position, assuming any leading comments/whitespace have already
// been skipped (e.g. via SkipCommentsAndWhitespace). regexAllowed
// gates whether a regex-delimiter run is read as a Regex literal
// (4.B.1); callers decide admissibility from their own token history.
func ScanOne(c *cursor.Cursor, opts langs.Options, regexAllowed bool) (token.StandardToken, bool) {
	r, ok := c.Peek()
	if !ok {
		return token.StandardToken{}, false
	}

	if delim, ok := matchAnyPrefix(c, opts.StringCharacters); ok {
		return scanDelimited(c, delim, token.NewStringLiteral), true
	}
	if regexAllowed {
		if delim, ok := matchAnyPrefix(c, opts.RegexDelimiters); ok {
			return scanDelimited(c, delim, token.NewRegexLiteral), true
		}
	}
	if isIdentifierStart(opts, r) {
		return scanIdentifier(c, opts), true
	}
	if r >= '0' && r <= '9' {
		return scanNumber(c, opts), true
	}
	if delim, ok := matchAnyPrefix(c, opts.BlockOpeners); ok {
		return emitSymbol(c, delim), true
	}
	if delim, ok := matchAnyPrefix(c, opts.BlockClosers); ok {
		return emitSymbol(c, delim), true
	}
	return emitSymbol(c, string(r)), true
}

// isIdentifierStart defers to opts' configured regex when the language
// table supplies one; languages with no explicit identifier regex
// (e.g. Options{}, the permissive zero value) fall back to Unicode
// XID_Start, the same fallback the teacher's own scanners use for
// "Unicode Start identifier" characters outside their ASCII fast path.
func isIdentifierStart(opts langs.Options, r rune) bool {
	if opts.IdentifierStart != nil {
		return opts.IdentifierStart.MatchString(string(r))
	}
	return xid.Start(r)
}

func scanIdentifier(c *cursor.Cursor, opts langs.Options) token.StandardToken {
	text, span := c.CollectWhileMap(func(r rune, _ *cursor.Cursor) bool {
		if opts.IdentifierContinue != nil {
			return opts.IdentifierContinue.MatchString(string(r))
		}
		return xid.Continue(r)
	})
	if opts.IsBlockOpener(text) || opts.IsBlockCloser(text) {
		return token.StandardToken{Ty: token.NewSymbol(text), Span: span}
	}
	return token.StandardToken{Ty: token.NewIdentifier(text), Span: span}
}

// scanDelimited reads a string or regex literal: delim opens it, a
// backslash escapes the following character (both kept verbatim in
// the content), and the same delim string closes it. Unterminated
// literals end at EOF; the content up to EOF is kept.
func scanDelimited(c *cursor.Cursor, delim string, ctor func(string) token.StandardTokenType) token.StandardToken {
	start := c.Pos()
	consumeRunes(c, delim)
	contentStart := c.Pos()

	for {
		if c.AtEOF() {
			text := c.Slice(contentStart, c.Pos())
			end := c.Pos() - 1
			if end < start {
				end = start
			}
			return token.StandardToken{Ty: ctor(text), Span: cursor.Span{Lo: start, Hi: end}}
		}
		if r, _ := c.Peek(); r == '\\' {
			c.Advance()
			if !c.AtEOF() {
				c.Advance()
			}
			continue
		}
		if c.StartsWith(delim) {
			contentEnd := c.Pos()
			consumeRunes(c, delim)
			text := c.Slice(contentStart, contentEnd)
			return token.StandardToken{Ty: ctor(text), Span: cursor.Span{Lo: start, Hi: c.Pos() - 1}}
		}
		c.Advance()
	}
}

func emitSymbol(c *cursor.Cursor, text string) token.StandardToken {
	start := c.Pos()
	consumeRunes(c, text)
	return token.StandardToken{Ty: token.NewSymbol(text), Span: cursor.Span{Lo: start, Hi: c.Pos() - 1}}
}

// consumeRunes advances the cursor past exactly the runes in s,
// assuming the cursor is already positioned at the start of s (true
// for every call site, which all follow a StartsWith(s) check).
func consumeRunes(c *cursor.Cursor, s string) {
	for range s {
		c.Advance()
	}
}

// matchAnyPrefix returns the longest entry of set that the unconsumed
// input starts with, so that overlapping delimiters (e.g. "/" and
// "//") resolve to the more specific one.
func matchAnyPrefix(c *cursor.Cursor, set []string) (string, bool) {
	best := ""
	found := false
	for _, s := range set {
		if s == "" {
			continue
		}
		if c.StartsWith(s) && len(s) > len(best) {
			best = s
			found = true
		}
	}
	return best, found
}

