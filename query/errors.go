// Package query implements the query language front end: the query
// lexer (spec component C, an extension of the standard lexer), the
// query parser (component E), and the error taxonomy a malformed query
// can raise. Unlike the core lexer and structural parser, which never
// fail, a query is user input and can be rejected.
package query

import "fmt"

// SyntaxError is raised at query-compile time for a malformed query:
// an unknown escape, a trailing backslash, or an unbalanced nested
// `\( ... \)`. A postfix operator with no operand is not an error; it
// applies to an implicit Any.
type SyntaxError struct {
	Message string
	Offset  int
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("query syntax error at byte %d: %s", e.Offset, e.Message)
}

// RegexError wraps a failure to compile an inline `\"…"` regex
// operand.
type RegexError struct {
	Pattern string
	Cause   error
}

func (e *RegexError) Error() string {
	return fmt.Sprintf("invalid regex %q: %s", e.Pattern, e.Cause)
}

func (e *RegexError) Unwrap() error { return e.Cause }

// CompileErrors aggregates every error found while lexing and parsing
// one query, so a caller can report all of them at once instead of
// stopping at the first.
type CompileErrors struct {
	Errors []error
}

func (e *CompileErrors) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	return fmt.Sprintf("%d query errors, first: %s", len(e.Errors), e.Errors[0])
}

func (e *CompileErrors) Unwrap() []error { return e.Errors }
