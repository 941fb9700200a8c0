// Command structgrep is the CLI entry point, grounded on the
// teacher's own cli/main.go (a one-line call into cmd.Execute).
package main

import (
	"os"

	"github.com/vippsas/structgrep/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
