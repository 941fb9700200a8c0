package query

import (
	"regexp"

	"github.com/vippsas/structgrep/langs"
	"github.com/vippsas/structgrep/token"
)

// ParseQuery folds a query token stream into the query AST (spec
// component E): the same Delimited-frame structure as ast.Parse, with
// operator folding applied as each frame is built. Malformed input
// (an invalid inline regex) is the only way this fails; the framing
// itself is as permissive as ast.Parse.
func ParseQuery(toks []token.QueryToken, opts langs.Options) ([]Matcher, error) {
	p := &queryParser{toks: toks, opts: opts}
	matchers, _, err := p.parseFrame(false)
	return matchers, err
}

type queryParser struct {
	toks []token.QueryToken
	pos  int
	opts langs.Options
}

func (p *queryParser) peek() (token.QueryToken, bool) {
	if p.pos >= len(p.toks) {
		return token.QueryToken{}, false
	}
	return p.toks[p.pos], true
}

// parseFrame implements spec §4.E's fold over one Delimited frame (or
// the top level, when insideFrame is false): it accumulates matchers
// left to right, applying postfix Star/Plus/QuestionMark to the most
// recently accumulated matcher and handing off entirely to Or's
// right-recursion the moment one is seen, per the spec's exact wording
// ("recurse to parse the remainder of the current group as the right
// operand"). insideFrame means any BlockCloser symbol ends this frame
// (a mismatch against its own opener is preserved, as in ast.Parse);
// the returned string is that closer's text, or "" at EOF.
func (p *queryParser) parseFrame(insideFrame bool) ([]Matcher, string, error) {
	var acc []Matcher

	for {
		t, ok := p.peek()
		if !ok {
			return acc, "", nil
		}
		if insideFrame && t.Ty.Kind == token.Standard && t.Ty.Std.Kind == token.Symbol && p.opts.IsBlockCloser(t.Ty.Std.Text) {
			closerText := t.Ty.Std.Text
			p.pos++
			return acc, closerText, nil
		}

		if t.Ty.Kind == token.Standard && t.Ty.Std.Kind == token.Symbol && p.opts.IsBlockOpener(t.Ty.Std.Text) {
			opener := t.Ty.Std.Text
			p.pos++
			content, closerText, err := p.parseFrame(true)
			if err != nil {
				return nil, "", err
			}
			acc = append(acc, Matcher{Kind: MatchDelimited, Op: opener, Cp: closerText, Inner: nestedMatcher(content)})
			continue
		}

		switch t.Ty.Kind {
		case token.Any:
			p.pos++
			acc = append(acc, anyMatcher())
		case token.End:
			p.pos++
			acc = append(acc, endMatcher())
		case token.Nested:
			p.pos++
			inner, err := ParseQuery(t.Ty.Group, p.opts)
			if err != nil {
				return nil, "", err
			}
			acc = append(acc, nestedMatcher(inner))
		case token.RegexOp:
			p.pos++
			re, err := regexp.Compile(t.Ty.Pattern)
			if err != nil {
				return nil, "", &RegexError{Pattern: t.Ty.Pattern, Cause: err}
			}
			acc = append(acc, Matcher{Kind: MatchRegex, Regex: re})
		case token.Star, token.Plus, token.QuestionMark:
			operand := anyMatcher()
			if len(acc) > 0 {
				operand = acc[len(acc)-1]
				acc = acc[:len(acc)-1]
			}
			p.pos++
			acc = append(acc, wrapQuantifier(t.Ty.Kind, operand))
		case token.Or:
			p.pos++
			left := leftOperand(acc)
			right, closerText, err := p.parseFrame(insideFrame)
			if err != nil {
				return nil, "", err
			}
			return []Matcher{{Kind: MatchOr, Left: left, Right: nestedMatcher(right)}}, closerText, nil
		default:
			p.pos++
			acc = append(acc, Matcher{Kind: MatchToken, Tok: t.Ty.Std})
		}
	}
}

// leftOperand implements the Or left-operand rule: the single
// accumulated matcher (or an implicit Any if nothing precedes it) when
// at most one matcher has accumulated, otherwise all of it wrapped in
// Nested.
func leftOperand(acc []Matcher) Matcher {
	switch len(acc) {
	case 0:
		return anyMatcher()
	case 1:
		return acc[0]
	default:
		return nestedMatcher(acc)
	}
}

func wrapQuantifier(kind token.QueryKind, operand Matcher) Matcher {
	switch kind {
	case token.Star:
		return Matcher{Kind: MatchStar, Inner: operand}
	case token.Plus:
		return Matcher{Kind: MatchPlus, Inner: operand}
	default:
		return Matcher{Kind: MatchQuestionMark, Inner: operand}
	}
}
