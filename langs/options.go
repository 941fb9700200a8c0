// Package langs holds the per-language lexer configuration consumed by
// the core lexer and parser, and a static extension->Options lookup
// table. It is an out-of-core collaborator: the core never reaches
// back into this package, it is only ever handed an Options value.
package langs

import "regexp"

// Options configures the lexer and structural parser for one
// language's conventions. The zero value is usable (every set is
// empty, every bool false) but matches nothing interesting; use
// ForExtension or one of the Builtin entries to get a real
// configuration.
type Options struct {
	// StringCharacters are delimiter strings that open and close a
	// string literal; the same string closes what it opened.
	StringCharacters []string

	// SingleLineComments are comment starters that run to end of line.
	SingleLineComments []string

	// MultiLineComments are begin/end delimiter pairs.
	MultiLineComments []CommentPair

	// BlockOpeners and BlockClosers are the structural grouping
	// tokens recognized by the parser (e.g. "(" "[" "{").
	BlockOpeners []string
	BlockClosers []string

	// IdentifierStart and IdentifierContinue classify the first and
	// subsequent characters of an identifier.
	IdentifierStart    *regexp.Regexp
	IdentifierContinue *regexp.Regexp

	// RegexDelimiters are characters that open/close a regex literal.
	// Empty means the language has no regex literal syntax.
	RegexDelimiters []string

	// Ranges, when true, allows a bare `.` inside a number literal
	// that isn't part of a `..` range operator.
	Ranges bool

	// TypeParameterParsing enables the `<...>` structural grouping
	// heuristic in the parser. Off by default; see DESIGN.md.
	TypeParameterParsing bool
}

// CommentPair is a multi-line comment's begin/end delimiter pair.
type CommentPair struct {
	Begin, End string
}

// HasString reports whether s opens (or closes) a string literal.
func (o Options) HasString(s string) bool {
	return contains(o.StringCharacters, s)
}

// IsBlockOpener reports whether s is a configured opening delimiter.
func (o Options) IsBlockOpener(s string) bool {
	return contains(o.BlockOpeners, s)
}

// IsBlockCloser reports whether s is a configured closing delimiter.
func (o Options) IsBlockCloser(s string) bool {
	return contains(o.BlockCloses(), s)
}

// BlockCloses exists only to keep IsBlockCloser readable; it is the
// closer set.
func (o Options) BlockCloses() []string {
	return o.BlockClosers
}

// HasRegexDelimiter reports whether s opens a regex literal.
func (o Options) HasRegexDelimiter(s string) bool {
	return contains(o.RegexDelimiters, s)
}

func contains(set []string, s string) bool {
	for _, v := range set {
		if v == s {
			return true
		}
	}
	return false
}
