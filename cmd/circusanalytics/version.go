package main

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// Version information set at build time via ldflags.
var (
	version = ""
	commit  = ""
	date    = ""
)

// buildMeta is the version information shown by the version command.
type buildMeta struct {
	Version   string
	Commit    string
	Date      string
	GoVersion string
}

// readBuildMeta collects version information.
// Priority per field: ldflags > debug.ReadBuildInfo > placeholder.
func readBuildMeta() buildMeta {
	meta := buildMeta{
		Version:   version,
		Commit:    commit,
		Date:      date,
		GoVersion: runtime.Version(),
	}

	info, ok := debug.ReadBuildInfo()
	if ok {
		if meta.Version == "" {
			meta.Version = info.Main.Version
		}
		for _, s := range info.Settings {
			switch {
			case s.Key == "vcs.revision" && meta.Commit == "":
				meta.Commit = shortRevision(s.Value)
			case s.Key == "vcs.time" && meta.Date == "":
				meta.Date = s.Value
			}
		}
	}

	if meta.Version == "" {
		meta.Version = "(devel)"
	}
	if meta.Commit == "" {
		meta.Commit = "unknown"
	}
	if meta.Date == "" {
		meta.Date = "unknown"
	}
	return meta
}

// shortRevision trims a VCS revision to seven characters.
func shortRevision(rev string) string {
	if len(rev) > 7 {
		return rev[:7]
	}
	return rev
}

// getVersion returns the version string used by --version.
func getVersion() string {
	return readBuildMeta().Version
}

// NewVersionCmd creates the version command.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print the version, commit hash, build date and Go version of circusanalytics.`,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			meta := readBuildMeta()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "circusanalytics version %s\n", meta.Version)
			fmt.Fprintf(out, "  commit: %s\n", meta.Commit)
			fmt.Fprintf(out, "  built:  %s\n", meta.Date)
			fmt.Fprintf(out, "  go:     %s\n", meta.GoVersion)
		},
	}
}
