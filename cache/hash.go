package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"

	"github.com/vippsas/structgrep/langs"
)

// Key identifies one cache entry: a query's source text plus the
// langs.Options it was compiled under (the same machine compiled
// against different Options, e.g. TypeParameterParsing on vs off, is
// a different cache entry).
type Key struct {
	QueryHash   string
	OptionsHash string
}

// KeyFor hashes query and opts the same way SchemaSuffixFromHash
// hashed a sqlcode.Document: sha256, hex-encoded, truncated to a
// fixed prefix, since a cache key has no collision-resistance
// requirement beyond "practically unique across the machines this
// process will ever compile."
func KeyFor(query string, opts langs.Options) Key {
	qh := sha256.Sum256([]byte(query))
	oh := sha256.Sum256([]byte(optionsFingerprint(opts)))
	return Key{
		QueryHash:   hex.EncodeToString(qh[:])[:16],
		OptionsHash: hex.EncodeToString(oh[:])[:16],
	}
}

// optionsFingerprint renders opts as a value-based string. %#v on the
// struct itself is not an option: IdentifierStart/IdentifierContinue
// are *regexp.Regexp, and %#v on a pointer to a struct with unexported
// fields (regexp.Regexp's own fields are all unexported) prints the
// pointer address, not the pattern, so two processes that each
// regexp.MustCompile the same pattern string would hash to two
// different OptionsHash values. Each regex is instead fingerprinted by
// its .String() source, which is stable across processes and hosts.
func optionsFingerprint(opts langs.Options) string {
	var b strings.Builder
	fmt.Fprintf(&b, "strings=%#v\n", opts.StringCharacters)
	fmt.Fprintf(&b, "singleline=%#v\n", opts.SingleLineComments)
	fmt.Fprintf(&b, "multiline=%#v\n", opts.MultiLineComments)
	fmt.Fprintf(&b, "openers=%#v\n", opts.BlockOpeners)
	fmt.Fprintf(&b, "closers=%#v\n", opts.BlockClosers)
	fmt.Fprintf(&b, "identstart=%s\n", regexSource(opts.IdentifierStart))
	fmt.Fprintf(&b, "identcontinue=%s\n", regexSource(opts.IdentifierContinue))
	fmt.Fprintf(&b, "regexdelims=%#v\n", opts.RegexDelimiters)
	fmt.Fprintf(&b, "ranges=%v\n", opts.Ranges)
	fmt.Fprintf(&b, "typeparams=%v\n", opts.TypeParameterParsing)
	return b.String()
}

func regexSource(re *regexp.Regexp) string {
	if re == nil {
		return ""
	}
	return re.String()
}
