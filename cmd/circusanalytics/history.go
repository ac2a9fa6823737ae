package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nao1215/circusanalytics/internal/archive"
	"github.com/nao1215/circusanalytics/internal/report"
)

// defaultHistoryLimit is the number of runs listed when --limit is not set.
const defaultHistoryLimit = 20

// NewHistoryCmd creates the history command.
// This command lists runs stored with --archive and prints any of them again.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List or print archived analysis runs",
		Long: `History reads the local archive written by 'circusanalytics --archive'.

Without flags it lists the most recent runs with their id, date, data
directory and headline numbers. With --id it prints one archived report.

Examples:
  # List the 20 most recent runs
  circusanalytics history

  # List every run
  circusanalytics history --limit 0

  # Print run 5 as text
  circusanalytics history --id 5

  # Print run 5 as JSON
  circusanalytics history --id 5 --json`,
		Args: cobra.NoArgs,
		RunE: runHistoryCmd,
	}

	cmd.Flags().Int64P("id", "i", 0,
		"Print the archived run with this id (use without flags to see ids)")
	cmd.Flags().IntP("limit", "n", defaultHistoryLimit,
		"Maximum number of runs to list (0 lists all)")
	cmd.Flags().BoolP("json", "j", false,
		"Print the archived report as JSON (requires --id)")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	id, err := cmd.Flags().GetInt64("id")
	if err != nil {
		return err
	}
	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}
	jsonOutput, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}

	// Validate arguments before opening the archive
	if jsonOutput && id == 0 {
		return errors.New("--json requires --id")
	}

	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	a, err := archive.Open(cfg.ArchiveDir, archive.Options{CreateIfNotExists: false})
	if errors.Is(err, archive.ErrNotFound) {
		fmt.Fprintln(out, "No archived runs found.")
		fmt.Fprintln(out, "\nUse 'circusanalytics --archive' to store a run.")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to open archive: %w", err)
	}
	defer a.Close()

	ctx := cmd.Context()
	if id != 0 {
		return printRun(ctx, a, id, jsonOutput, out)
	}
	return listRuns(ctx, a, limit, out)
}

// listRuns prints the archived run metadata, newest first.
func listRuns(ctx context.Context, a *archive.Archive, limit int, out io.Writer) error {
	runs, err := a.ListRuns(ctx, limit)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	if len(runs) == 0 {
		fmt.Fprintln(out, "No archived runs found.")
		fmt.Fprintln(out, "\nUse 'circusanalytics --archive' to store a run.")
		return nil
	}

	fmt.Fprintf(out, "Archived runs (%d):\n\n", len(runs))
	fmt.Fprintf(out, "  %-6s  %-20s  %-10s  %-8s  %-20s  %s\n",
		"ID", "Date", "Performers", "Upcoming", "Data Dir", "Digest")
	fmt.Fprintln(out, "  "+strings.Repeat("-", 86))

	for _, meta := range runs {
		fmt.Fprintf(out, "  %-6d  %-20s  %-10d  %-8d  %-20s  %s\n",
			meta.ID,
			meta.GeneratedAt.Local().Format("2006-01-02 15:04:05"),
			meta.TotalPerformers,
			meta.UpcomingShows,
			meta.DataDir,
			shortDigest(meta.InputDigest),
		)
	}

	fmt.Fprintln(out, "\nUse 'circusanalytics history --id <id>' to print a run.")
	return nil
}

// printRun prints one archived run as text or JSON.
func printRun(ctx context.Context, a *archive.Archive, id int64, jsonOutput bool, out io.Writer) error {
	run, err := a.GetRun(ctx, id)
	if err != nil {
		return err
	}

	if jsonOutput {
		_, err := report.NewJSONWriter(out, report.WithPrettyPrint()).WriteReport(run.Report)
		return err
	}

	fmt.Fprintf(out, "Run %d from %s (digest %s)\n", run.ID, run.DataDir, shortDigest(run.InputDigest))
	doc := &report.Document{Report: run.Report, GeneratedAt: run.GeneratedAt.Local()}
	_, err = report.NewSimpleWriter(out, report.WithVerbose(true)).Write(doc)
	return err
}

// shortDigest abbreviates a hex digest for display.
func shortDigest(d string) string {
	if len(d) > 12 {
		return d[:12]
	}
	return d
}
