package langs

import "regexp"

var (
	identStartASCII    = regexp.MustCompile(`^[A-Za-z_]$`)
	identContinueASCII = regexp.MustCompile(`^[A-Za-z0-9_]$`)
	identStartWithDash = regexp.MustCompile(`^[A-Za-z_-]$`)
)

var cLikeParens = struct {
	openers, closers []string
}{
	openers: []string{"(", "[", "{"},
	closers: []string{")", "]", "}"},
}

// Builtin is the static extension->Options table. It is grounded on
// original_source's options.rs (single/double/backtick string
// defaults, ranges on by default) generalized to a per-language table,
// since the distilled spec only fixes the shape of Options, not the
// concrete defaults for each language.
var Builtin = map[string]Options{
	"c": {
		StringCharacters:   []string{`"`, `'`},
		SingleLineComments: []string{"//"},
		MultiLineComments:  []CommentPair{{Begin: "/*", End: "*/"}},
		BlockOpeners:       cLikeParens.openers,
		BlockClosers:       cLikeParens.closers,
		IdentifierStart:    identStartASCII,
		IdentifierContinue: identContinueASCII,
		RegexDelimiters:    nil,
		Ranges:             true,
	},
	"js": {
		StringCharacters:   []string{`"`, `'`, "`"},
		SingleLineComments: []string{"//"},
		MultiLineComments:  []CommentPair{{Begin: "/*", End: "*/"}},
		BlockOpeners:       cLikeParens.openers,
		BlockClosers:       cLikeParens.closers,
		IdentifierStart:    identStartASCII,
		IdentifierContinue: identContinueASCII,
		RegexDelimiters:    []string{"/"},
		Ranges:             true,
	},
	"ts": {
		StringCharacters:     []string{`"`, `'`, "`"},
		SingleLineComments:   []string{"//"},
		MultiLineComments:    []CommentPair{{Begin: "/*", End: "*/"}},
		BlockOpeners:         cLikeParens.openers,
		BlockClosers:         cLikeParens.closers,
		IdentifierStart:      identStartASCII,
		IdentifierContinue:   identContinueASCII,
		RegexDelimiters:      []string{"/"},
		Ranges:               true,
		TypeParameterParsing: true,
	},
	"go": {
		StringCharacters:   []string{`"`, "`"},
		SingleLineComments: []string{"//"},
		MultiLineComments:  []CommentPair{{Begin: "/*", End: "*/"}},
		BlockOpeners:       cLikeParens.openers,
		BlockClosers:       cLikeParens.closers,
		IdentifierStart:    identStartASCII,
		IdentifierContinue: identContinueASCII,
		Ranges:             true,
	},
	"rs": {
		StringCharacters:     []string{`"`},
		SingleLineComments:   []string{"//"},
		MultiLineComments:    []CommentPair{{Begin: "/*", End: "*/"}},
		BlockOpeners:         cLikeParens.openers,
		BlockClosers:         cLikeParens.closers,
		IdentifierStart:      identStartASCII,
		IdentifierContinue:   identContinueASCII,
		Ranges:               true,
		TypeParameterParsing: true,
	},
	"java": {
		StringCharacters:     []string{`"`, `'`},
		SingleLineComments:   []string{"//"},
		MultiLineComments:    []CommentPair{{Begin: "/*", End: "*/"}},
		BlockOpeners:         cLikeParens.openers,
		BlockClosers:         cLikeParens.closers,
		IdentifierStart:      identStartASCII,
		IdentifierContinue:   identContinueASCII,
		Ranges:               true,
		TypeParameterParsing: true,
	},
	"py": {
		StringCharacters:   []string{`"`, `'`},
		SingleLineComments: []string{"#"},
		MultiLineComments:  nil,
		BlockOpeners:       cLikeParens.openers,
		BlockClosers:       cLikeParens.closers,
		IdentifierStart:    identStartASCII,
		IdentifierContinue: identContinueASCII,
		Ranges:             true,
	},
	"sql": {
		StringCharacters:   []string{`'`},
		SingleLineComments: []string{"--"},
		MultiLineComments:  []CommentPair{{Begin: "/*", End: "*/"}},
		BlockOpeners:       []string{"("},
		BlockClosers:       []string{")"},
		IdentifierStart:    identStartWithDash,
		IdentifierContinue: identContinueASCII,
		Ranges:             true,
	},
}

// Default is returned by ForExtension for an unrecognized extension. It
// is deliberately permissive: both quote styles, both comment styles,
// all three bracket kinds, no regex literals, ranges on, and — since an
// unknown extension could be anything — no fixed identifier regex at
// all, leaving the lexer to fall back to Unicode XID_Start/XID_Continue
// classification (see lexer.isIdentifierStart) rather than assuming
// ASCII-only identifiers.
var Default = Options{
	StringCharacters:   []string{`"`, `'`},
	SingleLineComments: []string{"//", "#"},
	MultiLineComments:  []CommentPair{{Begin: "/*", End: "*/"}},
	BlockOpeners:       cLikeParens.openers,
	BlockClosers:       cLikeParens.closers,
	Ranges:             true,
}

// ForExtension is a pure lookup collaborator: extension (without the
// leading dot, e.g. "go", "js") to Options. Unknown extensions fall
// back to Default, never an error.
func ForExtension(ext string) Options {
	if o, ok := Builtin[ext]; ok {
		return o
	}
	return Default
}
