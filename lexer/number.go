package lexer

import (
	"math/big"
	"strconv"
	"strings"

	"github.com/vippsas/structgrep/cursor"
	"github.com/vippsas/structgrep/langs"
	"github.com/vippsas/structgrep/token"
)

// scanNumber reads a number literal per 4.B step 7: an optional 0b/0x
// radix prefix, then digits/underscores/dot/e(xponent) depending on
// the radix and on opts.Ranges. Parsing never fails: a malformed
// number collapses to the longest valid prefix, falling back to 0 (or
// 0.0) if even that is empty.
func scanNumber(c *cursor.Cursor, opts langs.Options) token.StandardToken {
	start := c.Pos()
	radix := 10
	prefixLen := 0

	if c.StartsWith("0b") || c.StartsWith("0B") {
		radix = 2
		prefixLen = 2
	} else if c.StartsWith("0x") || c.StartsWith("0X") {
		radix = 16
		prefixLen = 2
	}
	for i := 0; i < prefixLen; i++ {
		c.Advance()
	}

	var digits strings.Builder
	hasDot := false
	hasExp := false

	for {
		r, ok := c.Peek()
		if !ok {
			break
		}
		switch {
		case r == '_':
			c.Advance()
		case isRadixDigit(r, radix):
			digits.WriteRune(r)
			c.Advance()
		case radix == 10 && r == '.' && opts.Ranges && !hasDot && !hasExp && !startsRange(c):
			hasDot = true
			digits.WriteRune(r)
			c.Advance()
		case radix == 10 && (r == 'e' || r == 'E') && !hasExp:
			next, _ := c.PeekAt(1)
			if !isExponentStart(next) {
				return finishNumber(c, start, digits.String(), radix, hasDot, hasExp)
			}
			hasExp = true
			digits.WriteRune(r)
			c.Advance()
			if next == '+' || next == '-' {
				digits.WriteRune(next)
				c.Advance()
			}
		default:
			return finishNumber(c, start, digits.String(), radix, hasDot, hasExp)
		}
	}
	return finishNumber(c, start, digits.String(), radix, hasDot, hasExp)
}

func isExponentStart(r rune) bool {
	return (r >= '0' && r <= '9') || r == '+' || r == '-'
}

// startsRange reports whether the `.` at the current position is the
// first of a `..` range operator, which must not be absorbed into a
// number literal even when opts.Ranges is set.
func startsRange(c *cursor.Cursor) bool {
	next, ok := c.PeekAt(1)
	return ok && next == '.'
}

func isRadixDigit(r rune, radix int) bool {
	switch radix {
	case 2:
		return r == '0' || r == '1'
	case 16:
		return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
	default:
		return r >= '0' && r <= '9'
	}
}

func finishNumber(c *cursor.Cursor, start int, digits string, radix int, hasDot, hasExp bool) token.StandardToken {
	span := cursor.Span{Lo: start, Hi: c.Pos() - 1}
	if span.Hi < span.Lo {
		span.Hi = span.Lo
	}

	if hasDot || hasExp {
		f := bestEffortFloat(digits)
		return token.StandardToken{Ty: token.NewFloat(f), Span: span}
	}
	n := bestEffortInt(digits, radix)
	return token.StandardToken{Ty: token.NewInteger(n), Span: span}
}

// bestEffortFloat parses s as a float64, trimming trailing characters
// one at a time until a valid parse is found; an all-invalid string
// yields 0.0.
func bestEffortFloat(s string) float64 {
	for len(s) > 0 {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
		s = s[:len(s)-1]
	}
	return 0.0
}

// bestEffortInt parses s in the given radix, trimming trailing
// characters one at a time until a valid parse is found; an
// all-invalid string yields 0.
func bestEffortInt(s string, radix int) *big.Int {
	for len(s) > 0 {
		if n, ok := new(big.Int).SetString(s, radix); ok {
			return n
		}
		s = s[:len(s)-1]
	}
	return big.NewInt(0)
}
