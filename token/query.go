package token

import "github.com/vippsas/structgrep/cursor"

// QueryKind distinguishes the variants of QueryTokenType. The query
// lexer shares the standard lexer's scanning rules for identifiers,
// numbers, strings and symbols, then reinterprets a leading backslash
// as introducing one of these meta tokens instead of a plain escape.
type QueryKind uint8

const (
	Standard     QueryKind = iota // wraps a StandardTokenType unchanged
	Any                           // \.   matches exactly one token or delimited group
	Star                          // \*   zero-or-more quantifier on the preceding atom
	Plus                          // \+   one-or-more quantifier on the preceding atom
	QuestionMark                  // \?   zero-or-one quantifier on the preceding atom
	Or                            // \|   alternation
	End                           // \$   end-of-sequence anchor
	RegexOp                       // \"…" inline regex operator, matched against StringLiteral content
	Nested                        // \( … \)  groups a sub-sequence of query tokens
)

func (k QueryKind) String() string {
	switch k {
	case Standard:
		return "Standard"
	case Any:
		return "Any"
	case Star:
		return "Star"
	case Plus:
		return "Plus"
	case QuestionMark:
		return "QuestionMark"
	case Or:
		return "Or"
	case End:
		return "End"
	case RegexOp:
		return "RegexOp"
	case Nested:
		return "Nested"
	default:
		return "Unknown"
	}
}

// QueryTokenType is the tagged-union value carried by a QueryToken. The
// Nested variant owns the grouped sub-tokens; every other variant is a
// leaf (Standard wraps exactly one StandardTokenType; the quantifier
// and anchor kinds carry no payload beyond their Kind).
type QueryTokenType struct {
	Kind    QueryKind
	Std     StandardTokenType // meaningful iff Kind == Standard
	Pattern string            // meaningful iff Kind == RegexOp (the \"…" body, raw escapes preserved)
	Group   []QueryToken      // meaningful iff Kind == Nested
}

func NewStandardQueryToken(std StandardTokenType) QueryTokenType {
	return QueryTokenType{Kind: Standard, Std: std}
}

func NewOperator(kind QueryKind) QueryTokenType {
	return QueryTokenType{Kind: kind}
}

func NewRegexOperator(pattern string) QueryTokenType {
	return QueryTokenType{Kind: RegexOp, Pattern: pattern}
}

func NewNested(group []QueryToken) QueryTokenType {
	return QueryTokenType{Kind: Nested, Group: group}
}

// QueryToken is a query token together with its source span in the
// query text (not the searched source file).
type QueryToken struct {
	Ty   QueryTokenType
	Span cursor.Span
}
