package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nao1215/circusanalytics/internal/config"
)

// NewRootCmd creates the root command for circusanalytics.
// Running it without a subcommand performs the full analysis.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "circusanalytics",
		Short: "Analytics report generator for circus performers, shows and venues",
		Long: `circusanalytics loads performers.json, shows.csv and venues.yaml from a data
directory, computes summary statistics and writes:

  - analytics_report.json   totals, specialty counts and revenue potential
  - shows_by_venue.png      bar chart of the number of shows per venue

Optionally it also writes a markdown report (--markdown) and stores the run
in a local archive (--archive) that the history command can read back.

Examples:
  # Analyze ./data and write outputs to the current directory
  circusanalytics

  # Read fixtures/, write to build/, add a markdown report
  circusanalytics -d fixtures -o build -m report.md

  # Archive the run, then list archived runs
  circusanalytics --archive
  circusanalytics history`,
		Version:       getVersion(),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runAnalyzeCmd,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().StringP("data-dir", "d", config.DefaultDataDir,
		"Directory containing performers.json, shows.csv and venues.yaml")
	cmd.PersistentFlags().String("log-format", config.LogFormatText,
		"Log encoding on stderr: text or json")
	cmd.PersistentFlags().StringP("config", "c", "",
		"Configuration file path (default: .circusanalytics in current, home or XDG config directory)")

	// Analysis output flags
	cmd.Flags().StringP("output-dir", "o", config.DefaultOutputDir,
		"Directory to write the report and chart to (created if missing)")
	cmd.Flags().StringP("markdown", "m", "",
		"Also write a markdown report to this file (relative to --output-dir)")
	cmd.Flags().BoolP("archive", "a", false,
		"Store the run in the local archive")

	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewShowCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
