// Package structgrep wires the six core components (cursor, lexer,
// ast, query, nfa, matcher) into the two operations a caller actually
// wants: compiling a query pattern once, and running it against a
// source file's tokens. This is the in-process, no-cache path; the
// optional cache package (driven by the `serve` CLI subcommand) sits
// in front of Compile for hosts that want to share compiled machines.
package structgrep

import (
	"github.com/vippsas/structgrep/ast"
	"github.com/vippsas/structgrep/cursor"
	"github.com/vippsas/structgrep/langs"
	"github.com/vippsas/structgrep/lexer"
	"github.com/vippsas/structgrep/matcher"
	"github.com/vippsas/structgrep/nfa"
	"github.com/vippsas/structgrep/query"
)

// Compile parses pattern as a structgrep query under opts (components
// C and E) and compiles it to a machine (component F). The returned
// machine is immutable and may be reused across any number of Search
// calls, including concurrently (spec §5).
func Compile(pattern string, opts langs.Options) (*nfa.Machine, error) {
	toks, _, err := query.TokenizeQuery(cursor.FileRef("<query>"), pattern, opts)
	if err != nil {
		return nil, err
	}
	matchers, err := query.ParseQuery(toks, opts)
	if err != nil {
		return nil, err
	}
	return nfa.Compile(matchers), nil
}

// Search lexes and structurally parses src (components B and D) under
// opts and runs machine against the resulting forest (component G),
// returning every match found, including ones nested inside Delimited
// groups.
func Search(file cursor.FileRef, src string, opts langs.Options, machine *nfa.Machine) []matcher.Match {
	toks, _ := lexer.Tokenize(file, src, opts)
	nodes := ast.Parse(toks, opts)
	return matcher.Run(machine, nodes)
}
