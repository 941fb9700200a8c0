package cli

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vippsas/structgrep/langs"
)

func TestOptionsForFilePicksByExtension(t *testing.T) {
	table := langs.Builtin
	opts := optionsForFile(table, "foo.go")
	require.Equal(t, table["go"], opts)
}

func TestOptionsForFileFallsBackToDefault(t *testing.T) {
	table := langs.Builtin
	opts := optionsForFile(table, "foo.whatsthis")
	require.Equal(t, langs.Default, opts)
}

func TestOptionsForFileLangFlagOverridesExtension(t *testing.T) {
	table := langs.Builtin
	langFlag = "py"
	defer func() { langFlag = "" }()

	opts := optionsForFile(table, "foo.go")
	require.Equal(t, table["py"], opts)
}
