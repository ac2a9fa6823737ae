// Package chart renders the shows-by-venue bar chart.
//
// BuildVenueBars turns the analytics histogram into labeled bars and Render
// draws them as a PNG with gonum/plot. Render only writes to an io.Writer;
// creating the destination file is the caller's job.
package chart

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"math"
	"strconv"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"

	"github.com/nao1215/circusanalytics/internal/model"
)

// Default chart geometry and labels.
const (
	DefaultWidth  = 10 * vg.Inch
	DefaultHeight = 6 * vg.Inch

	DefaultTitle  = "Number of Shows by Venue"
	DefaultXLabel = "Venue"
	DefaultYLabel = "Number of Shows"
)

var (
	// ErrInvalidSize is returned when the chart width or height is not positive.
	ErrInvalidSize = errors.New("chart size must be positive")

	// ErrInvalidColor is returned by ParseColor for anything but #RRGGBB.
	ErrInvalidColor = errors.New("color must be written as #RRGGBB")
)

// ParseColor parses a hex color such as "#4682b4". The leading '#' is
// optional.
func ParseColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
}

// Bar is one bar of the chart.
type Bar struct {
	VenueID int
	Label   string
	Value   int
}

// BuildVenueBars labels each histogram bucket with name(VenueID), keeping
// the bucket order.
func BuildVenueBars(counts []model.VenueShowCount, name func(id int) string) []Bar {
	bars := make([]Bar, 0, len(counts))
	for _, c := range counts {
		bars = append(bars, Bar{
			VenueID: c.VenueID,
			Label:   name(c.VenueID),
			Value:   c.Count,
		})
	}
	return bars
}

// options holds Render settings.
type options struct {
	width  vg.Length
	height vg.Length
	title  string
	color  color.Color
}

// Option configures Render.
type Option func(*options)

// WithSize sets the image size.
func WithSize(width, height vg.Length) Option {
	return func(o *options) {
		o.width = width
		o.height = height
	}
}

// WithTitle overrides the chart title.
func WithTitle(title string) Option {
	return func(o *options) {
		o.title = title
	}
}

// WithColor sets the bar fill color.
func WithColor(c color.Color) Option {
	return func(o *options) {
		o.color = c
	}
}

// Render draws bars as a PNG bar chart and writes it to w.
// X tick labels are rotated 45 degrees and right aligned so long venue
// names do not overlap. An empty bar list renders empty axes.
func Render(w io.Writer, bars []Bar, opts ...Option) error {
	o := options{
		width:  DefaultWidth,
		height: DefaultHeight,
		title:  DefaultTitle,
		color:  color.RGBA{R: 70, G: 130, B: 180, A: 255},
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.width <= 0 || o.height <= 0 {
		return fmt.Errorf("%w: %vx%v", ErrInvalidSize, o.width, o.height)
	}

	p := plot.New()
	p.Title.Text = o.title
	p.X.Label.Text = DefaultXLabel
	p.Y.Label.Text = DefaultYLabel
	p.Y.Min = 0

	if len(bars) > 0 {
		values := make(plotter.Values, len(bars))
		labels := make([]string, len(bars))
		for i, b := range bars {
			values[i] = float64(b.Value)
			labels[i] = b.Label
		}

		bc, err := plotter.NewBarChart(values, vg.Points(20))
		if err != nil {
			return fmt.Errorf("failed to build bar chart: %w", err)
		}
		bc.Color = o.color
		bc.LineStyle.Width = vg.Length(0)
		p.Add(bc)
		p.NominalX(labels...)

		p.X.Tick.Label.Rotation = math.Pi / 4
		p.X.Tick.Label.XAlign = text.XRight
		p.X.Tick.Label.YAlign = text.YCenter
	} else {
		p.Y.Max = 1
	}

	wt, err := p.WriterTo(o.width, o.height, "png")
	if err != nil {
		return fmt.Errorf("failed to create png canvas: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("failed to encode png: %w", err)
	}
	return nil
}
