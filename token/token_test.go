package token_test

import (
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vippsas/structgrep/token"
)

func TestStandardTokenTypeEqualByKind(t *testing.T) {
	a := token.NewIdentifier("foo")
	b := token.NewIdentifier("foo")
	c := token.NewSymbol("foo")
	require.True(t, a.Equal(b))
	require.False(t, a.Equal(c))
}

func TestStandardTokenTypeIntegerEqual(t *testing.T) {
	a := token.NewInteger(big.NewInt(42))
	b := token.NewInteger(big.NewInt(42))
	c := token.NewInteger(big.NewInt(43))
	require.True(t, a.Equal(b))
	require.False(t, a.Equal(c))
	require.Equal(t, a.Key(), b.Key())
	require.NotEqual(t, a.Key(), c.Key())
}

func TestStandardTokenTypeFloatBitStable(t *testing.T) {
	a := token.NewFloat(0.1)
	b := token.NewFloat(0.1)
	require.True(t, a.Equal(b))
	require.Equal(t, a.Key(), b.Key())

	nan1 := token.NewFloat(math.NaN())
	nan2 := token.NewFloat(math.Float64frombits(math.Float64bits(math.NaN()) ^ 1))
	require.False(t, nan1.Equal(nan2))
}
