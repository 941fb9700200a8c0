package query

import (
	"regexp"

	"github.com/vippsas/structgrep/token"
)

// MatcherKind distinguishes the variants of Matcher, the query AST node
// type (spec §3/§4.E). A MatchRegex node carries the compiled Regex
// rather than the raw pattern string; nfa.Compile copies it onto the
// Regex edge of its own nfa.Matcher label.
type MatcherKind uint8

const (
	MatchToken MatcherKind = iota
	MatchAny
	MatchEnd
	MatchRegex
	MatchDelimited
	MatchPlus
	MatchStar
	MatchQuestionMark
	MatchOr
	MatchNested
)

// Matcher is one node of the query AST produced by ParseQuery. Only the
// fields relevant to Kind are meaningful.
type Matcher struct {
	Kind  MatcherKind
	Tok   token.StandardTokenType // MatchToken
	Regex *regexp.Regexp          // MatchRegex
	Op    string                  // MatchDelimited: opener text
	Cp    string                  // MatchDelimited: closer text (may be empty: unconstrained)
	Inner Matcher                 // MatchDelimited (content root wrapped as Nested), Plus, Star, QuestionMark
	Left  Matcher                 // MatchOr
	Right Matcher                 // MatchOr (always MatchNested)
	List  []Matcher               // MatchNested
}

func anyMatcher() Matcher { return Matcher{Kind: MatchAny} }

func endMatcher() Matcher { return Matcher{Kind: MatchEnd} }

func nestedMatcher(list []Matcher) Matcher {
	return Matcher{Kind: MatchNested, List: list}
}
