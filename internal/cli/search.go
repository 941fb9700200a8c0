package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/vippsas/structgrep"
	"github.com/vippsas/structgrep/cursor"
	"github.com/vippsas/structgrep/internal/log"
	"github.com/vippsas/structgrep/langs"
	"github.com/vippsas/structgrep/matcher"
	"github.com/vippsas/structgrep/nfa"
)

var (
	fileLabel  = color.New(color.FgMagenta)
	lineLabel  = color.New(color.FgGreen)
	matchStyle = color.New(color.FgYellow, color.Bold)

	searchCmd = &cobra.Command{
		Use:   "search <pattern> [paths...]",
		Short: "Search paths for a structural query pattern",
		RunE:  runSearch,
	}
)

func init() {
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		_ = cmd.Help()
		return errors.New("expected a pattern argument")
	}
	pattern := args[0]
	paths := args[1:]
	if len(paths) == 0 {
		paths = []string{"."}
	}

	table, err := resolveOptions()
	if err != nil {
		return err
	}

	// The pattern is compiled once, not per file: under --lang's table
	// entry when --lang is given, otherwise under langs.Default. A
	// file's own extension only changes how that source file is
	// lexed/parsed, not how the pattern itself is read.
	queryOpts := optionsForFile(table, "<pattern>."+langFlag)
	machine, err := structgrep.Compile(pattern, queryOpts)
	if err != nil {
		return fmt.Errorf("compiling pattern: %w", err)
	}

	logger := log.Logger()
	matchCount := 0

	for _, root := range paths {
		n, err := searchFS(os.DirFS(root), root, table, machine, logger)
		if err != nil {
			return err
		}
		matchCount += n
	}

	logger.WithField("matches", matchCount).Debug("search complete")
	return nil
}

// searchFS walks fsys (an fs.FS, not necessarily backed by the real
// filesystem — tests pass a testing/fstest.MapFS) the same way
// sqlparser.ParseFilesystems takes its input as []fs.FS rather than a
// bare directory path, so the walking itself is trivially testable
// without touching disk. label prefixes each reported path (the
// directory argument the caller originally asked to search).
func searchFS(fsys fs.FS, label string, table map[string]langs.Options, machine *nfa.Machine, logger logrus.FieldLogger) (int, error) {
	matchCount := 0
	err := fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		displayPath := label + "/" + path

		opts := optionsForFile(table, path)
		content, err := fs.ReadFile(fsys, path)
		if err != nil {
			logger.WithField("path", displayPath).WithError(err).Warn("skipping unreadable file")
			return nil
		}

		matches := structgrep.Search(cursor.FileRef(displayPath), string(content), opts, machine)
		for _, m := range matches {
			matchCount++
			printMatch(displayPath, string(content), m)
		}
		return nil
	})
	return matchCount, err
}

// printMatch prints "path:line: <match text>", colorized when stdout
// is a terminal (github.com/fatih/color detects this itself and
// no-ops its escape codes otherwise), the way the teacher's own
// sqltest.DumpRows colorizes string values with alecthomas/repr rather
// than printing plain text unconditionally.
func printMatch(path string, content string, m matcher.Match) {
	span := m.Span()
	line := 1 + strings.Count(content[:span.Lo], "\n")
	text := content[span.Lo : span.Hi+1]

	fileLabel.Print(path)
	fmt.Print(":")
	lineLabel.Print(line)
	fmt.Print(": ")
	matchStyle.Println(text)
}
