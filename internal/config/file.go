package config

// ChartSettings holds chart options from the configuration file.
type ChartSettings struct {
	// Width is the chart width in inches. Zero keeps the current value.
	Width float64 `yaml:"width,omitempty"`

	// Height is the chart height in inches. Zero keeps the current value.
	Height float64 `yaml:"height,omitempty"`

	// Title replaces the chart title.
	Title string `yaml:"title,omitempty"`

	// Color is the bar color as #RRGGBB.
	Color string `yaml:"color,omitempty"`
}

// File represents the structure of the .circusanalytics configuration file.
// Every field is optional; unset fields leave the current value untouched.
type File struct {
	DataDir      string        `yaml:"dataDir,omitempty"`
	OutputDir    string        `yaml:"outputDir,omitempty"`
	ReportFile   string        `yaml:"reportFile,omitempty"`
	ChartFile    string        `yaml:"chartFile,omitempty"`
	MarkdownFile string        `yaml:"markdownFile,omitempty"`
	Chart        ChartSettings `yaml:"chart,omitempty"`

	// Archive is a pointer so that an explicit false can be told apart
	// from an absent key.
	Archive    *bool  `yaml:"archive,omitempty"`
	ArchiveDir string `yaml:"archiveDir,omitempty"`
	Verbose    *bool  `yaml:"verbose,omitempty"`
	LogFormat  string `yaml:"logFormat,omitempty"`
}

// Apply overlays the values set in the file onto cfg.
func (f *File) Apply(cfg *Config) {
	if f.DataDir != "" {
		cfg.DataDir = f.DataDir
	}
	if f.OutputDir != "" {
		cfg.OutputDir = f.OutputDir
	}
	if f.ReportFile != "" {
		cfg.ReportFile = f.ReportFile
	}
	if f.ChartFile != "" {
		cfg.ChartFile = f.ChartFile
	}
	if f.MarkdownFile != "" {
		cfg.MarkdownFile = f.MarkdownFile
	}
	if f.Chart.Width != 0 {
		cfg.ChartWidth = f.Chart.Width
	}
	if f.Chart.Height != 0 {
		cfg.ChartHeight = f.Chart.Height
	}
	if f.Chart.Title != "" {
		cfg.ChartTitle = f.Chart.Title
	}
	if f.Chart.Color != "" {
		cfg.ChartColor = f.Chart.Color
	}
	if f.Archive != nil {
		cfg.Archive = *f.Archive
	}
	if f.ArchiveDir != "" {
		cfg.ArchiveDir = f.ArchiveDir
	}
	if f.Verbose != nil {
		cfg.Verbose = *f.Verbose
	}
	if f.LogFormat != "" {
		cfg.LogFormat = f.LogFormat
	}
}
