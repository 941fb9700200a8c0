package cursor

import "unicode/utf8"

// lineRecord maps a line's starting byte offset to where it ends
// (exclusive of the newline) and its 1-based line number.
type lineRecord struct {
	endExclusive int
	number       int
}

// snapshot captures everything PutBack needs to undo a single Advance.
type snapshot struct {
	pos       int
	width     int
	cur       rune
	ok        bool
	line      int
	lineStart int
	addedLine int // byte offset of a lineRecord this Advance added, or -1
}

// Cursor owns a source buffer and yields runes together with their
// starting byte offset, while incrementally building a byte->line map.
// It never fails: past EOF it simply reports no more characters.
type Cursor struct {
	file FileRef
	src  string

	pos   int  // byte offset of the not-yet-consumed current rune
	width int  // width in bytes of the rune at pos, 0 at EOF
	cur   rune // rune at pos, utf8.RuneError-adjacent sentinel at EOF
	ok    bool // false once pos is at or past len(src)

	line      int // 1-based line number containing pos
	lineStart int // byte offset where the current line began

	lines map[int]lineRecord // line start byte offset -> record

	history []snapshot // stack for PutBack
}

// New creates a cursor over src, positioned before the first character.
func New(file FileRef, src string) *Cursor {
	c := &Cursor{
		file:      file,
		src:       src,
		line:      1,
		lineStart: 0,
		lines:     make(map[int]lineRecord),
	}
	c.decodeAt(0)
	return c
}

func (c *Cursor) decodeAt(pos int) {
	if pos >= len(c.src) {
		c.pos = len(c.src)
		c.width = 0
		c.cur = 0
		c.ok = false
		return
	}
	r, w := utf8.DecodeRuneInString(c.src[pos:])
	c.pos = pos
	c.width = w
	c.cur = r
	c.ok = true
}

// Peek returns the current rune without consuming it, and whether one
// is available (false at EOF).
func (c *Cursor) Peek() (rune, bool) {
	return c.cur, c.ok
}

// PeekAt returns the rune `offset` characters ahead of the current one
// (0 == current), without consuming anything.
func (c *Cursor) PeekAt(offset int) (rune, bool) {
	pos := c.pos
	var r rune
	ok := c.ok
	for i := 0; i <= offset; i++ {
		if pos >= len(c.src) {
			return 0, false
		}
		var w int
		r, w = utf8.DecodeRuneInString(c.src[pos:])
		pos += w
	}
	return r, ok
}

// PeekN returns up to n characters ahead (including the current one) as
// a string, without consuming anything. It may return fewer than n
// characters if the source ends first.
func (c *Cursor) PeekN(n int) string {
	pos := c.pos
	for i := 0; i < n && pos < len(c.src); i++ {
		_, w := utf8.DecodeRuneInString(c.src[pos:])
		pos += w
	}
	return c.src[c.pos:pos]
}

// StartsWith reports whether the unconsumed remainder of the source
// begins with the literal string s.
func (c *Cursor) StartsWith(s string) bool {
	if c.pos+len(s) > len(c.src) {
		return false
	}
	return c.src[c.pos:c.pos+len(s)] == s
}

// Slice returns the raw source bytes in [lo, hi), the half-open byte
// range callers get by remembering a Pos() before and after consuming
// a run of characters.
func (c *Cursor) Slice(lo, hi int) string {
	return c.src[lo:hi]
}

// Pos reports the current byte offset.
func (c *Cursor) Pos() int {
	return c.pos
}

// AtEOF reports whether the cursor has consumed the entire buffer.
func (c *Cursor) AtEOF() bool {
	return !c.ok
}

// Advance consumes the current rune and moves to the next one. It is a
// no-op at EOF. Newlines update the line map.
func (c *Cursor) Advance() {
	snap := snapshot{
		pos: c.pos, width: c.width, cur: c.cur, ok: c.ok,
		line: c.line, lineStart: c.lineStart, addedLine: -1,
	}

	if !c.ok {
		c.history = append(c.history, snap)
		return
	}

	consumedAt := c.pos
	wasNewline := c.cur == '\n'
	nextPos := c.pos + c.width
	c.decodeAt(nextPos)

	if wasNewline {
		c.lines[c.lineStart] = lineRecord{endExclusive: consumedAt, number: c.line}
		snap.addedLine = c.lineStart
		c.line++
		c.lineStart = nextPos
	}

	c.history = append(c.history, snap)
}

// PutBack undoes the most recent Advance, restoring the cursor to the
// position it had before that Advance was called. Calling PutBack
// without a matching prior Advance is a programmer error and panics.
func (c *Cursor) PutBack() {
	if len(c.history) == 0 {
		panic("cursor: PutBack without matching Advance")
	}
	snap := c.history[len(c.history)-1]
	c.history = c.history[:len(c.history)-1]

	if snap.addedLine != -1 {
		delete(c.lines, snap.addedLine)
	}
	c.pos, c.width, c.cur, c.ok = snap.pos, snap.width, snap.cur, snap.ok
	c.line, c.lineStart = snap.line, snap.lineStart
}

// flushFinalLine records the current (possibly partial, possibly
// empty) trailing line once, so LineInformation works even for a file
// with no trailing newline.
func (c *Cursor) flushFinalLine() {
	if _, exists := c.lines[c.lineStart]; exists {
		return
	}
	c.lines[c.lineStart] = lineRecord{endExclusive: len(c.src), number: c.line}
}

// CollectWhile advances while pred returns true for the current rune,
// and returns the consumed text together with its span. If pred is
// false immediately, exactly one character is still consumed (per the
// collect-while contract: it always makes progress when input
// remains), unless the cursor is already at EOF, in which case it
// returns an empty string and a zero-width span at the current
// position.
func (c *Cursor) CollectWhile(pred func(r rune) bool) (string, Span) {
	return c.CollectWhileMap(func(r rune, _ *Cursor) bool { return pred(r) })
}

// CollectWhileMap is CollectWhile but the predicate may also inspect
// (not mutate) the cursor, e.g. to peek ahead before deciding whether
// to consume the current rune.
func (c *Cursor) CollectWhileMap(pred func(r rune, cur *Cursor) bool) (string, Span) {
	if !c.ok {
		return "", Span{Lo: c.pos, Hi: c.pos}
	}

	start := c.pos
	first := true
	lastConsumed := start

	for c.ok {
		r, _ := c.Peek()
		if !first && !pred(r, c) {
			break
		}
		lastConsumed = c.pos
		c.Advance()
		first = false
	}

	return c.src[start : lastConsumed+utf8Width(c.src, lastConsumed)], Span{Lo: start, Hi: lastConsumed}
}

func utf8Width(s string, pos int) int {
	if pos >= len(s) {
		return 0
	}
	_, w := utf8.DecodeRuneInString(s[pos:])
	return w
}

// LineInformation resolves a span to the 1-based [first, last] line
// numbers it touches.
func (c *Cursor) LineInformation(span Span) (first, last int) {
	c.flushFinalLine()
	first = c.lineNumberAt(span.Lo)
	last = c.lineNumberAt(span.Hi)
	return
}

// LinesIncluding returns the full text of every line touched by span,
// in line order.
func (c *Cursor) LinesIncluding(span Span) []string {
	c.flushFinalLine()
	first, last := c.lineNumberAt(span.Lo), c.lineNumberAt(span.Hi)

	byNumber := make(map[int]string, last-first+1)
	for start, rec := range c.lines {
		if rec.number >= first && rec.number <= last {
			byNumber[rec.number] = c.src[start:rec.endExclusive]
		}
	}

	ordered := make([]string, 0, last-first+1)
	for n := first; n <= last; n++ {
		if text, ok := byNumber[n]; ok {
			ordered = append(ordered, text)
		}
	}
	return ordered
}

func (c *Cursor) lineNumberAt(bytePos int) int {
	for start, rec := range c.lines {
		if bytePos >= start && bytePos <= rec.endExclusive {
			return rec.number
		}
	}
	// Not flushed yet (bytePos is on the current, in-progress line).
	return c.line
}
