package structgrep_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vippsas/structgrep"
	"github.com/vippsas/structgrep/langs"
)

func TestCompileAndSearchFindsExactSequence(t *testing.T) {
	opts := langs.ForExtension("c")
	machine, err := structgrep.Compile(`printf ( "hello" )`, opts)
	require.NoError(t, err)

	matches := structgrep.Search("t.c", `int main() { printf("hello"); }`, opts, machine)
	require.Len(t, matches, 1)
}

func TestCompileAndSearchNoMatch(t *testing.T) {
	opts := langs.ForExtension("c")
	machine, err := structgrep.Compile(`frobnicate`, opts)
	require.NoError(t, err)

	matches := structgrep.Search("t.c", `int main() { printf("hello"); }`, opts, machine)
	require.Empty(t, matches)
}

func TestCompileRejectsInvalidRegex(t *testing.T) {
	opts := langs.ForExtension("c")
	_, err := structgrep.Compile(`\"(unterminated`, opts)
	require.Error(t, err)
}
