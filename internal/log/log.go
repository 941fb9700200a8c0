// Package log wires up the process-wide logrus logger. It exists
// strictly as a CLI/ambient concern: none of the core packages
// (cursor, lexer, ast, query, nfa, matcher) import it or log anything,
// the same separation the teacher keeps between its silent sqlparser
// package and its logging cli/cmd package.
package log

import (
	"os"

	"github.com/sirupsen/logrus"
)

// logger is the package-level logrus.FieldLogger every CLI command and
// the cache package receive, passed down as a parameter rather than
// referenced as a hidden global at call sites (the teacher's own
// DatabaseConfig.Open(ctx, logger) signature style).
var logger = logrus.StandardLogger()

// Configure sets the output format (JSON when asJSON is true, text
// otherwise) and returns the configured logger.
func Configure(asJSON bool, debug bool) logrus.FieldLogger {
	logger.SetOutput(os.Stderr)
	if asJSON {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{})
	}
	if debug {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.InfoLevel)
	}
	return logger
}

// Logger returns the process-wide logger as configured by Configure
// (or the logrus default, if Configure was never called).
func Logger() logrus.FieldLogger {
	return logger
}
