package query

import (
	"github.com/vippsas/structgrep/cursor"
	"github.com/vippsas/structgrep/langs"
	"github.com/vippsas/structgrep/lexer"
	"github.com/vippsas/structgrep/token"
)

// metaEscapes maps the character following a backslash to the meta
// token kind it introduces, for every escape that does not need
// special-case handling (\( and \" are handled separately since they
// introduce a nested structure rather than a single leaf token).
var metaEscapes = map[rune]token.QueryKind{
	'.': token.Any,
	'*': token.Star,
	'+': token.Plus,
	'?': token.QuestionMark,
	'|': token.Or,
	'$': token.End,
}

// TokenizeQuery lexes query text under opts (spec component C): it is
// the standard lexer plus recognition of a leading backslash as
// introducing a meta token. An unknown escape is a query syntax error.
func TokenizeQuery(file cursor.FileRef, src string, opts langs.Options) ([]token.QueryToken, *cursor.Cursor, error) {
	c := cursor.New(file, src)
	out, err := tokenizeQuerySequence(c, opts, false)
	return out, c, err
}

// tokenizeQuerySequence reads query tokens until EOF (top level) or,
// when nested is true, until the matching `\)` that closes a Nested
// group (consumed by the caller, not included in the returned slice).
func tokenizeQuerySequence(c *cursor.Cursor, opts langs.Options, nested bool) ([]token.QueryToken, error) {
	var out []token.QueryToken
	var stdBuf []token.StandardToken

	flushMerge := func(tok token.StandardToken) {
		if lexer.CanMergeSymbols(stdBuf, tok) && len(out) > 0 && out[len(out)-1].Ty.Kind == token.Standard &&
			!isBlockText(opts, stdBuf[len(stdBuf)-1].Ty.Text) && !isBlockText(opts, tok.Ty.Text) {
			prev := stdBuf[len(stdBuf)-1]
			merged := tokenNewSymbol(prev.Ty.Text + tok.Ty.Text)
			mergedSpan := prev.Span.Merge(tok.Span)
			stdBuf[len(stdBuf)-1] = token.StandardToken{Ty: merged, Span: mergedSpan}
			out[len(out)-1] = token.QueryToken{Ty: token.NewStandardQueryToken(merged), Span: mergedSpan}
			return
		}
		stdBuf = append(stdBuf, tok)
		out = append(out, token.QueryToken{Ty: token.NewStandardQueryToken(tok.Ty), Span: tok.Span})
	}

	for {
		lexer.SkipCommentsAndWhitespace(c, opts)
		if c.AtEOF() {
			if nested {
				return out, &SyntaxError{Message: "unbalanced \\( ... \\) : reached end of query", Offset: c.Pos()}
			}
			return out, nil
		}

		if r, _ := c.Peek(); r == '\\' {
			start := c.Pos()
			c.Advance()
			next, hasNext := c.Peek()
			if !hasNext {
				return out, &SyntaxError{Message: "trailing backslash with no escape character", Offset: start}
			}

			if kind, ok := metaEscapes[next]; ok {
				c.Advance()
				out = append(out, token.QueryToken{Ty: token.NewOperator(kind), Span: cursor.Span{Lo: start, Hi: c.Pos() - 1}})
				stdBuf = nil
				continue
			}

			switch next {
			case ')':
				if !nested {
					return out, &SyntaxError{Message: "unmatched \\)", Offset: start}
				}
				c.Advance()
				return out, nil
			case '(':
				c.Advance()
				group, err := tokenizeQuerySequence(c, opts, true)
				if err != nil {
					return out, err
				}
				out = append(out, token.QueryToken{Ty: token.NewNested(group), Span: cursor.Span{Lo: start, Hi: c.Pos() - 1}})
				stdBuf = nil
				continue
			case '"':
				c.Advance()
				patternStart := c.Pos()
				pattern := scanRegexBody(c)
				out = append(out, token.QueryToken{Ty: token.NewRegexOperator(pattern), Span: cursor.Span{Lo: start, Hi: c.Pos() - 1}})
				_ = patternStart
				stdBuf = nil
				continue
			default:
				return out, &SyntaxError{Message: "unknown escape \\" + string(next), Offset: start}
			}
		}

		regexAllowed := queryRegexAdmissible(out)
		tok, ok := lexer.ScanOne(c, opts, regexAllowed)
		if !ok {
			break
		}
		flushMerge(tok)
	}

	return out, nil
}

// scanRegexBody reads a `"…"` body the same way the standard lexer
// reads a string literal (backslash escapes the next character
// verbatim), assuming the opening `"` has already been consumed.
func scanRegexBody(c *cursor.Cursor) string {
	start := c.Pos()
	for {
		if c.AtEOF() {
			return c.Slice(start, c.Pos())
		}
		if r, _ := c.Peek(); r == '\\' {
			c.Advance()
			if !c.AtEOF() {
				c.Advance()
			}
			continue
		}
		if r, _ := c.Peek(); r == '"' {
			end := c.Pos()
			c.Advance()
			return c.Slice(start, end)
		}
		c.Advance()
	}
}

// queryRegexAdmissible extends 4.B.1 per spec component C: also
// admissible when the previous query token is any special meta token.
func queryRegexAdmissible(out []token.QueryToken) bool {
	if len(out) == 0 {
		return true
	}
	last := out[len(out)-1]
	if last.Ty.Kind != token.Standard {
		return true
	}
	return last.Ty.Std.Kind == token.Symbol && last.Ty.Std.Text != ")"
}

func tokenNewSymbol(s string) token.StandardTokenType { return token.NewSymbol(s) }

// isBlockText reports whether s is a configured block opener or closer;
// such symbols are never merged with a neighbouring Symbol.
func isBlockText(opts langs.Options, s string) bool {
	return opts.IsBlockOpener(s) || opts.IsBlockCloser(s)
}
