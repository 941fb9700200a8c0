package cursor_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vippsas/structgrep/cursor"
)

func TestCollectWhileDigits(t *testing.T) {
	c := cursor.New("t.go", "123abc")
	text, span := c.CollectWhile(func(r rune) bool { return r >= '0' && r <= '9' })
	require.Equal(t, "123", text)
	require.Equal(t, cursor.Span{Lo: 0, Hi: 2}, span)
}

func TestCollectWhileAlwaysConsumesOne(t *testing.T) {
	c := cursor.New("t.go", "abc")
	text, span := c.CollectWhile(func(r rune) bool { return r >= '0' && r <= '9' })
	require.Equal(t, "a", text)
	require.Equal(t, cursor.Span{Lo: 0, Hi: 0}, span)
}

func TestLineInformationNoTrailingNewline(t *testing.T) {
	c := cursor.New("t.go", "hello")
	for !c.AtEOF() {
		c.Advance()
	}
	first, last := c.LineInformation(cursor.Span{Lo: 0, Hi: 4})
	require.Equal(t, 1, first)
	require.Equal(t, 1, last)
	require.Equal(t, []string{"hello"}, c.LinesIncluding(cursor.Span{Lo: 0, Hi: 4}))
}

func TestLineInformationMultiline(t *testing.T) {
	src := "one\ntwo\nthree"
	c := cursor.New("t.go", src)
	for !c.AtEOF() {
		c.Advance()
	}
	// byte offsets: one=0-2, \n=3, two=4-6, \n=7, three=8-12
	first, last := c.LineInformation(cursor.Span{Lo: 4, Hi: 10})
	require.Equal(t, 2, first)
	require.Equal(t, 3, last)
	require.Equal(t, []string{"two", "three"}, c.LinesIncluding(cursor.Span{Lo: 4, Hi: 10}))
}

func TestPutBack(t *testing.T) {
	c := cursor.New("t.go", "ab")
	r, ok := c.Peek()
	require.True(t, ok)
	require.Equal(t, 'a', r)
	c.Advance()
	r2, _ := c.Peek()
	require.Equal(t, 'b', r2)
	c.PutBack()
	r3, _ := c.Peek()
	require.Equal(t, 'a', r3)
	require.Equal(t, 0, c.Pos())
}

func TestStartsWithAndPeekN(t *testing.T) {
	c := cursor.New("t.go", "/* comment */")
	require.True(t, c.StartsWith("/*"))
	require.Equal(t, "/* c", c.PeekN(4))
}
