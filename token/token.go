// Package token defines the typed token streams produced by the lexer
// (standard tokens, for source files) and by the query lexer (query
// tokens, which additionally carry escape-introduced operators).
package token

import (
	"math"
	"math/big"
	"strconv"

	"github.com/vippsas/structgrep/cursor"
)

// Kind distinguishes the variants of StandardTokenType. Equality
// between two StandardTokenType values of the same Kind is structural;
// across Kinds values are always unequal.
type Kind uint8

const (
	Identifier Kind = iota
	Integer
	Float
	StringLiteral
	Regex
	Symbol
)

func (k Kind) String() string {
	switch k {
	case Identifier:
		return "Identifier"
	case Integer:
		return "Integer"
	case Float:
		return "Float"
	case StringLiteral:
		return "StringLiteral"
	case Regex:
		return "Regex"
	case Symbol:
		return "Symbol"
	default:
		return "Unknown"
	}
}

// StandardTokenType is the tagged-union value carried by a StandardToken.
// Only the field matching Kind is meaningful. Equality is structural;
// Key returns a stable string suitable for hashing/deduplication (a
// Float is keyed by its raw bit pattern, per spec, so two floats that
// are IEEE-unequal-but-bit-equal collapse, and NaN payloads are
// distinguished rather than all comparing unequal as `==` would do).
type StandardTokenType struct {
	Kind  Kind
	Text  string   // Identifier name / Symbol text / raw StringLiteral or Regex content (escapes preserved verbatim)
	Int   *big.Int // meaningful iff Kind == Integer
	Float float64  // meaningful iff Kind == Float
}

func NewIdentifier(name string) StandardTokenType { return StandardTokenType{Kind: Identifier, Text: name} }
func NewSymbol(text string) StandardTokenType      { return StandardTokenType{Kind: Symbol, Text: text} }
func NewStringLiteral(raw string) StandardTokenType {
	return StandardTokenType{Kind: StringLiteral, Text: raw}
}
func NewRegexLiteral(raw string) StandardTokenType { return StandardTokenType{Kind: Regex, Text: raw} }
func NewInteger(v *big.Int) StandardTokenType      { return StandardTokenType{Kind: Integer, Int: v} }
func NewFloat(v float64) StandardTokenType         { return StandardTokenType{Kind: Float, Float: v} }

// Equal reports structural equality, with Float compared by raw bit
// pattern (see Key).
func (t StandardTokenType) Equal(other StandardTokenType) bool {
	if t.Kind != other.Kind {
		return false
	}
	switch t.Kind {
	case Integer:
		if t.Int == nil || other.Int == nil {
			return t.Int == other.Int
		}
		return t.Int.Cmp(other.Int) == 0
	case Float:
		return math.Float64bits(t.Float) == math.Float64bits(other.Float)
	default:
		return t.Text == other.Text
	}
}

// Key returns a stable, hashable string representation, used by the NFA
// optimizer's transition-set deduplication and state-equivalence
// passes (spec: "hash must be stable; float hashed by raw bit pattern").
func (t StandardTokenType) Key() string {
	switch t.Kind {
	case Integer:
		if t.Int == nil {
			return "Integer()"
		}
		return "Integer(" + t.Int.String() + ")"
	case Float:
		return "Float(0x" + strconv.FormatUint(math.Float64bits(t.Float), 16) + ")"
	default:
		return t.Kind.String() + "(" + t.Text + ")"
	}
}

// StandardToken is a standard token together with its source span.
type StandardToken struct {
	Ty   StandardTokenType
	Span cursor.Span
}
