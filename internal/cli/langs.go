package cli

import (
	"fmt"
	"sort"

	"github.com/alecthomas/repr"
	"github.com/spf13/cobra"
)

var langsCmd = &cobra.Command{
	Use:   "langs",
	Short: "List the built-in per-language lexer configurations",
	RunE: func(cmd *cobra.Command, args []string) error {
		table, err := resolveOptions()
		if err != nil {
			return err
		}

		exts := make([]string, 0, len(table))
		for ext := range table {
			exts = append(exts, ext)
		}
		sort.Strings(exts)

		for _, ext := range exts {
			fmt.Println(ext)
			if debugFlag {
				fmt.Println(repr.String(table[ext]))
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(langsCmd)
}
