package langs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vippsas/structgrep/langs"
)

func TestForExtensionKnown(t *testing.T) {
	opts := langs.ForExtension("js")
	require.True(t, opts.HasString("`"))
	require.True(t, opts.HasRegexDelimiter("/"))
}

func TestForExtensionUnknownFallsBackToDefault(t *testing.T) {
	opts := langs.ForExtension("made-up-extension")
	require.Equal(t, langs.Default, opts)
}

func TestLoadOverridesMissingFileIsEmpty(t *testing.T) {
	overrides, err := langs.LoadOverrides(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.NoError(t, err)
	require.Empty(t, overrides)
}

func TestLoadOverridesMergesOnTopOfBuiltin(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "langs.yaml")
	contents := `
languages:
  zig:
    string_characters: ["\""]
    single_line_comments: ["//"]
    block_openers: ["(", "{"]
    block_closers: [")", "}"]
    identifier_start: "^[A-Za-z_]$"
    identifier_continue: "^[A-Za-z0-9_]$"
    ranges: true
`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	overrides, err := langs.LoadOverrides(path)
	require.NoError(t, err)
	require.Contains(t, overrides, "zig")

	merged := langs.WithOverrides(overrides)
	require.Contains(t, merged, "zig")
	require.Contains(t, merged, "go")
	require.True(t, merged["zig"].HasString(`"`))
}
