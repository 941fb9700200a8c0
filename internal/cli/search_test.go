package cli

import (
	"testing"
	"testing/fstest"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/vippsas/structgrep"
	"github.com/vippsas/structgrep/langs"
)

func TestSearchFSFindsMatchesAcrossFiles(t *testing.T) {
	fsys := fstest.MapFS{
		"a.c": &fstest.MapFile{Data: []byte(`int main() { printf("hi"); }`)},
		"b.c": &fstest.MapFile{Data: []byte(`void f() { log("bye"); }`)},
	}

	machine, err := structgrep.Compile(`printf ( \. )`, langs.ForExtension("c"))
	require.NoError(t, err)

	n, err := searchFS(fsys, "root", langs.Builtin, machine, logrus.New())
	require.NoError(t, err)
	require.Equal(t, 1, n)
}

func TestSearchFSNoMatches(t *testing.T) {
	fsys := fstest.MapFS{
		"a.c": &fstest.MapFile{Data: []byte(`int main() { printf("hi"); }`)},
	}

	machine, err := structgrep.Compile(`frobnicate`, langs.ForExtension("c"))
	require.NoError(t, err)

	n, err := searchFS(fsys, "root", langs.Builtin, machine, logrus.New())
	require.NoError(t, err)
	require.Equal(t, 0, n)
}
