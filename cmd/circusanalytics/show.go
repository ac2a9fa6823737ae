package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/nao1215/circusanalytics/internal/analytics"
	"github.com/nao1215/circusanalytics/internal/dataset"
	"github.com/nao1215/circusanalytics/internal/report"
)

// NewShowCmd creates the show command.
func NewShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <show-id>",
		Short: "Print one show with its venue and revenue potential",
		Long: `Show loads the data directory and prints the show with the given id as
JSON, joined with its venue and its average ticket price and potential
revenue. A venue id missing from venues.yaml is reported with
"venue_found": false.

Examples:
  circusanalytics show S1
  circusanalytics show -d fixtures S42`,
		Args: cobra.ExactArgs(1),
		RunE: runShowCmd,
	}
}

// runShowCmd executes the show command.
func runShowCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	ds, err := dataset.Load(cfg.DataDir)
	if err != nil {
		return err
	}

	engine, err := analytics.New(ds, analytics.WithClock(time.Now))
	if err != nil {
		return err
	}

	details, ok := engine.ShowDetails(args[0])
	if !ok {
		return fmt.Errorf("show %q not found in %s", args[0], cfg.DataDir)
	}

	_, err = report.NewJSONWriter(cmd.OutOrStdout(), report.WithPrettyPrint()).WriteShow(details)
	return err
}
