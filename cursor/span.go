// Package cursor provides byte-indexed source spans and a character
// cursor that tracks line information as it consumes a source buffer.
package cursor

// FileRef names the file (or other source) a Pos/Span refers to. It is
// a dedicated type, not a bare string, in case a refactor later wants
// to key it differently (the same convention the teacher's Pos.File
// uses it for).
type FileRef string

// Span is an inclusive byte range [Lo, Hi] in a source buffer. A Span
// covering a single byte has Lo == Hi. Spans are immutable values.
type Span struct {
	Lo, Hi int
}

// Merge returns the smallest span covering both s and other.
func (s Span) Merge(other Span) Span {
	lo, hi := s.Lo, s.Hi
	if other.Lo < lo {
		lo = other.Lo
	}
	if other.Hi > hi {
		hi = other.Hi
	}
	return Span{Lo: lo, Hi: hi}
}

// Len returns the number of bytes covered by the span.
func (s Span) Len() int {
	return s.Hi - s.Lo + 1
}

// Pos is a human-facing position: file, 1-based line, 1-based column.
type Pos struct {
	File FileRef
	Line int
	Col  int
}
