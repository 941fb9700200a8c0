package ast

import (
	"strings"
	"unicode/utf8"

	"github.com/vippsas/structgrep/cursor"
	"github.com/vippsas/structgrep/langs"
	"github.com/vippsas/structgrep/token"
)

// Parse folds a standard token stream into a forest of Nodes. It never
// fails: a stray closer with no matching opener becomes an ordinary
// Token node, and an opener with no closer before EOF yields a
// Delimited node with Cp == nil.
func Parse(tokens []token.StandardToken, opts langs.Options) []Node {
	p := &parser{toks: append([]token.StandardToken(nil), tokens...), opts: opts}
	return p.parseSequence(nil)
}

type parser struct {
	toks []token.StandardToken
	pos  int
	opts langs.Options
}

// closer decides whether the current token ends the active frame. If
// splitPrefix is set and match succeeded against a multi-rune symbol
// (a merged run of "other" characters, e.g. ">>"), the matching
// leading rune is split off the token before it is consumed as the
// closer, per spec.md §4.D's symbol-splitting rule.
type closer struct {
	match       func(token.StandardToken) bool
	splitPrefix bool
}

func (p *parser) peek() (token.StandardToken, bool) {
	if p.pos >= len(p.toks) {
		return token.StandardToken{}, false
	}
	return p.toks[p.pos], true
}

func (p *parser) parseSequence(c *closer) []Node {
	var nodes []Node
	for {
		t, ok := p.peek()
		if !ok {
			return nodes
		}
		if c != nil && c.match(t) {
			if c.splitPrefix && utf8.RuneCountInString(t.Ty.Text) > 1 {
				p.splitCurrentSymbol()
			}
			return nodes
		}

		if p.opts.TypeParameterParsing && isAngleOpenTrigger(t) && lastIsIdentifierLike(nodes) {
			if node, ok := p.tryParseTypeParameters(); ok {
				nodes = append(nodes, node)
				continue
			}
		}

		if p.isOpener(t) {
			op := t
			p.pos++
			content := p.parseSequence(&closer{match: p.matchesAnyCloser})
			var cp *token.StandardToken
			if tok, ok := p.peek(); ok {
				c := tok
				p.pos++
				cp = &c
			}
			nodes = append(nodes, Node{Kind: DelimitedNode, Op: op, Cp: cp, Content: content})
			continue
		}

		nodes = append(nodes, Node{Kind: TokenNode, Tok: t})
		p.pos++
	}
}

func (p *parser) isOpener(t token.StandardToken) bool {
	return t.Ty.Kind == token.Symbol && p.opts.IsBlockOpener(t.Ty.Text)
}

func (p *parser) matchesAnyCloser(t token.StandardToken) bool {
	return t.Ty.Kind == token.Symbol && p.opts.IsBlockCloser(t.Ty.Text)
}

func isAngleOpenTrigger(t token.StandardToken) bool {
	return t.Ty.Kind == token.Symbol && strings.HasPrefix(t.Ty.Text, "<")
}

func isAngleCloseTrigger(t token.StandardToken) bool {
	return t.Ty.Kind == token.Symbol && strings.HasPrefix(t.Ty.Text, ">")
}

func lastIsIdentifierLike(nodes []Node) bool {
	if len(nodes) == 0 {
		return false
	}
	last := nodes[len(nodes)-1]
	return last.Kind == TokenNode && last.Tok.Ty.Kind == token.Identifier
}

// splitCurrentSymbol peels the first rune off the Symbol at p.pos,
// replacing it with two tokens: that rune alone, and the remainder
// (which stays at the same position for the next call to peek).
func (p *parser) splitCurrentSymbol() {
	t := p.toks[p.pos]
	runes := []rune(t.Ty.Text)
	if len(runes) < 2 {
		return
	}
	firstWidth := utf8.RuneLen(runes[0])
	first := token.StandardToken{
		Ty:   token.NewSymbol(string(runes[0])),
		Span: cursor.Span{Lo: t.Span.Lo, Hi: t.Span.Lo + firstWidth - 1},
	}
	rest := token.StandardToken{
		Ty:   token.NewSymbol(string(runes[1:])),
		Span: cursor.Span{Lo: t.Span.Lo + firstWidth, Hi: t.Span.Hi},
	}
	tail := append([]token.StandardToken{rest}, p.toks[p.pos+1:]...)
	p.toks = append(append(p.toks[:p.pos:p.pos], first), tail...)
}

// tryParseTypeParameters implements the <...> disambiguation heuristic
// from spec.md §4.D: peek ahead with a bounded whitelist-and-balance
// scan before committing to a Delimited group. p.pos is left
// unchanged on failure.
func (p *parser) tryParseTypeParameters() (Node, bool) {
	if !p.peekTypeParameterGroup() {
		return Node{}, false
	}

	t, _ := p.peek()
	if utf8.RuneCountInString(t.Ty.Text) > 1 {
		p.splitCurrentSymbol()
	}
	op, _ := p.peek()
	p.pos++

	content := p.parseSequence(&closer{match: isAngleCloseTrigger, splitPrefix: true})
	var cp *token.StandardToken
	if tok, ok := p.peek(); ok && isAngleCloseTrigger(tok) {
		c := tok
		p.pos++
		cp = &c
	}
	return Node{Kind: DelimitedNode, Op: op, Cp: cp, Content: content}, true
}

// peekTypeParameterGroup performs the bounded balance-and-whitelist
// scan without mutating the token stream. Admitted at angle depth 1:
// identifiers, `, . : ; ? & |`, and matched nested parens (assumed
// single-character, as every builtin language's paren set is).
func (p *parser) peekTypeParameterGroup() bool {
	const whitelist = ",.:;?&|"
	angleDepth := 1
	parenDepth := 0

	// The opening '<' may already be merged with following characters
	// into one Symbol (e.g. a literal "<>"); scan its remainder before
	// moving on to subsequent tokens.
	first, _ := p.peek()
	firstRunes := []rune(first.Ty.Text)
	for _, r := range firstRunes[1:] {
		if angleDepth == 0 {
			return false
		}
		if done, ok := stepTypeParamRune(r, &angleDepth, &parenDepth, whitelist, p.opts); ok {
			if done {
				return true
			}
		} else {
			return false
		}
	}
	if angleDepth == 0 {
		return true
	}

	for i := p.pos + 1; i < len(p.toks); i++ {
		t := p.toks[i]
		if t.Ty.Kind == token.Identifier {
			continue
		}
		if t.Ty.Kind != token.Symbol {
			return false
		}
		for _, r := range t.Ty.Text {
			done, ok := stepTypeParamRune(r, &angleDepth, &parenDepth, whitelist, p.opts)
			if !ok {
				return false
			}
			if done {
				return true
			}
		}
	}
	return false
}

// stepTypeParamRune advances the depth counters by one admitted
// character. ok is false when r is disallowed (scan fails); done is
// true when r closed the outermost angle group.
func stepTypeParamRune(r rune, angleDepth, parenDepth *int, whitelist string, opts langs.Options) (done, ok bool) {
	switch {
	case *parenDepth > 0:
		if opts.IsBlockOpener(string(r)) {
			*parenDepth++
		} else if opts.IsBlockCloser(string(r)) {
			*parenDepth--
		}
		return false, true
	case r == '<':
		*angleDepth++
		return false, true
	case r == '>':
		*angleDepth--
		return *angleDepth == 0, true
	case strings.ContainsRune(whitelist, r):
		return false, true
	case opts.IsBlockOpener(string(r)):
		*parenDepth++
		return false, true
	default:
		return false, false
	}
}
