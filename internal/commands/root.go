// Package commands wires the CLI surface over the ingest service and the
// in-memory ledger.
package commands

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/timmit98/parse-and-track-spending/internal/buildinfo"
	"github.com/timmit98/parse-and-track-spending/internal/config"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "spendtrack",
		Short:   "Turn bank and card statements into categorized spending",
		Version: fmt.Sprintf("%s (commit: %s, built: %s, %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date, buildinfo.GoVersion()),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newImportCommand())
	rootCmd.AddCommand(newCategoriesCommand())

	return rootCmd
}

// newLogger builds a JSON logger at the level named by LOG_LEVEL.
func newLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stderr)
	level, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		level = logrus.WarnLevel
	}
	logger.SetLevel(level)
	return logger
}

// loadConfig returns the rules at path, or the built-in defaults when no
// path is given.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}
