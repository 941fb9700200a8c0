package cli

import (
	"path/filepath"
	"strings"

	"github.com/vippsas/structgrep/langs"
)

// resolveOptions builds the effective extension->Options table for
// this invocation: Builtin merged with any --config overrides.
func resolveOptions() (map[string]langs.Options, error) {
	if configFlag == "" {
		return langs.Builtin, nil
	}
	overrides, err := langs.LoadOverrides(configFlag)
	if err != nil {
		return nil, err
	}
	return langs.WithOverrides(overrides), nil
}

// optionsForFile picks the Options for path: --lang forces a specific
// table entry; otherwise the file's own extension is looked up, same
// as langs.ForExtension but against table instead of Builtin.
func optionsForFile(table map[string]langs.Options, path string) langs.Options {
	ext := langFlag
	if ext == "" {
		ext = strings.TrimPrefix(filepath.Ext(path), ".")
	}
	if o, ok := table[ext]; ok {
		return o
	}
	return langs.Default
}
