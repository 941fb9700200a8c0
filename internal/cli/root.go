// Package cli implements the structgrep command-line driver: cobra
// wiring, flag parsing, filesystem walking, and colorized output. None
// of it is core (spec.md §1 calls filesystem walking, color rendering,
// and flag parsing out of scope for the core); it only calls into the
// structgrep, langs, cursor, nfa, matcher and cache packages the way
// any other caller would.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/vippsas/structgrep/internal/log"
)

var (
	rootCmd = &cobra.Command{
		Use:          "structgrep",
		Short:        "structgrep",
		SilenceUsage: true,
		Long:         `A syntax-aware, language-agnostic structural source code search tool.`,
	}

	langFlag     string
	configFlag   string
	jsonLogsFlag bool
	debugFlag    bool
)

// Execute runs the root command. Grounded on cli/cmd/root.go's
// Execute; the persistent flags here are structgrep's own (--lang,
// --config, --json-logs, --debug) rather than the teacher's
// (--directory, --tags).
func Execute() error {
	rootCmd.PersistentFlags().StringVar(&langFlag, "lang", "", "force a specific language's Options instead of inferring one from each file's extension")
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "path to a YAML file overriding/extending the built-in per-language Options table")
	rootCmd.PersistentFlags().BoolVar(&jsonLogsFlag, "json-logs", false, "emit logs as JSON instead of text")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "enable debug logging and repr-based dumps")
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(func() {
		log.Configure(jsonLogsFlag, debugFlag)
	})
}
