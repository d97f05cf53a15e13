/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>

*/
package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// Version information (set via ldflags during build)
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

var (
	rootLogLevel string
	rootConfig   string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "sequels",
	Short: "Find new releases in audiobook series you own",
	Long: `sequels checks whether any audiobook series in your Audible library
has new installments you don't own yet.

It lists your library through the Audible API, works out the most
recently released book you own per series, scrapes each series' public
listing page for release dates, and prints the books released after the
ones you have.

Run 'sequels auth' once to sign in, then 'sequels check' whenever you
want a report (e.g. from cron).`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildDate),
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootLogLevel, "log-level", "error", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&rootConfig, "config", "", "Config file path (default: ~/.config/sequels/config.yaml)")
}

// newLogger builds the process logger. Logs go to stderr so the report
// on stdout stays clean.
func newLogger() zerolog.Logger {
	level, err := zerolog.ParseLevel(rootLogLevel)
	if err != nil {
		level = zerolog.ErrorLevel
	}

	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().
		Timestamp().
		Logger()
}
