package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"gonum.org/v1/plot/vg"

	"github.com/nao1215/circusanalytics/internal/analytics"
	"github.com/nao1215/circusanalytics/internal/archive"
	"github.com/nao1215/circusanalytics/internal/chart"
	"github.com/nao1215/circusanalytics/internal/config"
	"github.com/nao1215/circusanalytics/internal/dataset"
	"github.com/nao1215/circusanalytics/internal/log"
	"github.com/nao1215/circusanalytics/internal/pipeline"
	"github.com/nao1215/circusanalytics/internal/report"
)

// runAnalyzeCmd executes the full analysis.
func runAnalyzeCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := newLogger(cmd.ErrOrStderr(), cfg)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return analyze(ctx, cfg, logger, cmd.OutOrStdout(), time.Now)
}

// buildConfig creates a Config from defaults, the config file and the
// command flags. Flags override the file only when set explicitly.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()
	flags := cmd.Flags()

	var err error
	cfg.ConfigFilePath, err = flags.GetString("config")
	if err != nil {
		return nil, err
	}

	// If the user explicitly specified a config file path, error if not found.
	// If no path was specified, silently keep the defaults when no file is found.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)

	if configPath != "" {
		file, err := config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		file.Apply(cfg)
	} else if explicitConfigPath {
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	}

	if err := overrideString(cmd, "data-dir", &cfg.DataDir); err != nil {
		return nil, err
	}
	if err := overrideString(cmd, "output-dir", &cfg.OutputDir); err != nil {
		return nil, err
	}
	if err := overrideString(cmd, "markdown", &cfg.MarkdownFile); err != nil {
		return nil, err
	}
	if err := overrideBool(cmd, "archive", &cfg.Archive); err != nil {
		return nil, err
	}
	if err := overrideBool(cmd, "verbose", &cfg.Verbose); err != nil {
		return nil, err
	}
	if err := overrideString(cmd, "log-format", &cfg.LogFormat); err != nil {
		return nil, err
	}

	return cfg, nil
}

// overrideString copies a string flag into dst when the user set it.
// Flags not defined on the command are ignored.
func overrideString(cmd *cobra.Command, name string, dst *string) error {
	f := cmd.Flags().Lookup(name)
	if f == nil || !f.Changed {
		return nil
	}
	v, err := cmd.Flags().GetString(name)
	if err != nil {
		return err
	}
	*dst = v
	return nil
}

// overrideBool copies a bool flag into dst when the user set it.
func overrideBool(cmd *cobra.Command, name string, dst *bool) error {
	f := cmd.Flags().Lookup(name)
	if f == nil || !f.Changed {
		return nil
	}
	v, err := cmd.Flags().GetBool(name)
	if err != nil {
		return err
	}
	*dst = v
	return nil
}

// newLogger builds the stderr logger in the configured format.
func newLogger(w io.Writer, cfg *config.Config) *slog.Logger {
	if cfg.LogFormat == config.LogFormatJSON {
		return log.NewJSONLogger(w, cfg.Verbose)
	}
	return log.NewLogger(w, cfg.Verbose)
}

// chartOptions converts the chart title and color settings.
// The color was checked by Config.Validate.
func chartOptions(cfg *config.Config) []chart.Option {
	var opts []chart.Option
	if cfg.ChartTitle != "" {
		opts = append(opts, chart.WithTitle(cfg.ChartTitle))
	}
	if cfg.ChartColor != "" {
		if c, err := chart.ParseColor(cfg.ChartColor); err == nil {
			opts = append(opts, chart.WithColor(c))
		}
	}
	return opts
}

// analyze loads the dataset, computes the report, runs every output step
// and prints the completion line to out.
func analyze(ctx context.Context, cfg *config.Config, logger *slog.Logger, out io.Writer, now func() time.Time) error {
	logger.Info("starting analysis",
		"data_dir", cfg.DataDir,
		"output_dir", cfg.OutputDir,
		"archive", cfg.Archive,
	)

	ds, err := dataset.Load(cfg.DataDir)
	if err != nil {
		return err
	}
	logger.Debug("dataset loaded",
		"performers", len(ds.Performers),
		"shows", len(ds.Shows),
		"venues", len(ds.Venues),
		"digest", ds.Digest,
	)

	engine, err := analytics.New(ds, analytics.WithClock(now))
	if err != nil {
		return err
	}

	run := pipeline.NewRun(ds, engine, now())

	p := pipeline.New(pipeline.WithLogger(logger))
	p.AddStep(pipeline.NewReportStep(cfg.ReportPath(), logger))
	if path := cfg.MarkdownPath(); path != "" {
		p.AddStep(pipeline.NewMarkdownStep(path, logger))
	}
	p.AddStep(pipeline.NewChartStep(cfg.ChartPath(),
		pipeline.WithChartSize(vg.Length(cfg.ChartWidth)*vg.Inch, vg.Length(cfg.ChartHeight)*vg.Inch),
		pipeline.WithChartOptions(chartOptions(cfg)...),
		pipeline.WithChartLogger(logger),
	))

	if cfg.Archive {
		a, err := archive.Open(cfg.ArchiveDir, archive.DefaultOptions())
		if err != nil {
			return fmt.Errorf("failed to open archive: %w", err)
		}
		defer a.Close()
		logger.Info("archive opened", "archive_dir", cfg.ArchiveDir)

		p.AddStep(pipeline.NewArchiveStep(a, cfg.DataDir, logger))
	}

	if err := p.Execute(ctx, run); err != nil {
		if errors.Is(err, context.Canceled) {
			return fmt.Errorf("analysis interrupted after %d of %d steps: %w",
				len(run.PerformedSteps), p.StepCount(), err)
		}
		return err
	}

	for _, path := range run.Outputs {
		logger.Info("output written", "path", path)
	}

	_, err = report.NewSimpleWriter(out).Write(run.Document)
	return err
}
