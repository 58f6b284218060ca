package chart

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Sayan30092004/load-main/internal/model"
	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Series colours shared with the terminal panel.
const (
	DemandHex   = "f97316"
	SupplyHex   = "3b82f6"
	BlackoutHex = "ef4444"
)

// ErrNotEnoughPoints is returned when a series is too short to plot.
var ErrNotEnoughPoints = errors.New("not enough points to plot")

// Format is an image output format.
type Format string

// Output formats.
const (
	FormatPNG Format = "png"
	FormatSVG Format = "svg"
)

// ParseFormat parses an output format, accepting a file extension with or without the dot.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.TrimPrefix(strings.ToLower(s), ".")) {
	case FormatPNG:
		return FormatPNG, nil
	case FormatSVG:
		return FormatSVG, nil
	default:
		return "", fmt.Errorf("unsupported image format %q", s)
	}
}

// Spec describes one chart to export.
type Spec struct {
	Title  string
	Kind   Kind
	Format Format
	Points []model.TimeSeriesPoint
	Width  int
	Height int
}

// Render writes the chart described by spec to w.
func Render(w io.Writer, spec Spec) error {
	if spec.Width <= 0 {
		spec.Width = 1024
	}
	if spec.Height <= 0 {
		spec.Height = 400
	}

	provider := gochart.PNG
	if spec.Format == FormatSVG {
		provider = gochart.SVG
	}

	switch spec.Kind {
	case KindBar:
		if len(spec.Points) == 0 {
			return ErrNotEnoughPoints
		}
		graph := barChart(spec)
		if err := graph.Render(provider, w); err != nil {
			return fmt.Errorf("failed to render bar chart: %w", err)
		}
	case KindLine, KindArea, "":
		if len(spec.Points) < 2 {
			return ErrNotEnoughPoints
		}
		graph := seriesChart(spec, spec.Kind == KindArea)
		if err := graph.Render(provider, w); err != nil {
			return fmt.Errorf("failed to render %s chart: %w", spec.Kind, err)
		}
	default:
		return fmt.Errorf("invalid chart kind %q", spec.Kind)
	}

	return nil
}

func seriesChart(spec Spec, filled bool) gochart.Chart {
	xs := make([]float64, len(spec.Points))
	ticks := make([]gochart.Tick, len(spec.Points))
	demand := make([]float64, len(spec.Points))
	supply := make([]float64, len(spec.Points))
	blackout := make([]float64, len(spec.Points))

	for i, p := range spec.Points {
		xs[i] = float64(i)
		ticks[i] = gochart.Tick{Value: float64(i), Label: p.Date}
		demand[i] = p.Demand
		supply[i] = p.Supply
		blackout[i] = p.BlackoutProbability
	}

	graph := gochart.Chart{
		Title:  spec.Title,
		Width:  spec.Width,
		Height: spec.Height,
		Background: gochart.Style{
			Padding: gochart.Box{Top: 40, Left: 20, Right: 30, Bottom: 20},
		},
		XAxis: gochart.XAxis{Ticks: ticks},
		YAxis: gochart.YAxis{Name: "MW"},
		Series: []gochart.Series{
			gochart.ContinuousSeries{Name: "demand", XValues: xs, YValues: demand, Style: seriesStyle(DemandHex, filled)},
			gochart.ContinuousSeries{Name: "supply", XValues: xs, YValues: supply, Style: seriesStyle(SupplyHex, filled)},
			gochart.ContinuousSeries{Name: "blackoutProbability", XValues: xs, YValues: blackout, Style: seriesStyle(BlackoutHex, filled)},
		},
	}
	graph.Elements = []gochart.Renderable{gochart.Legend(&graph)}

	return graph
}

func seriesStyle(hex string, filled bool) gochart.Style {
	col := drawing.ColorFromHex(hex)
	style := gochart.Style{
		StrokeColor: col,
		StrokeWidth: 2,
	}
	if filled {
		style.FillColor = col.WithAlpha(150)
	}
	return style
}

func barChart(spec Spec) gochart.BarChart {
	bars := make([]gochart.Value, 0, len(spec.Points)*3)
	for _, p := range spec.Points {
		bars = append(bars,
			gochart.Value{Label: p.Date + " D", Value: p.Demand, Style: barStyle(DemandHex)},
			gochart.Value{Label: "S", Value: p.Supply, Style: barStyle(SupplyHex)},
			gochart.Value{Label: "B", Value: p.BlackoutProbability, Style: barStyle(BlackoutHex)},
		)
	}

	barWidth := spec.Width / (len(bars) + 1) / 2
	if barWidth < 4 {
		barWidth = 4
	}

	return gochart.BarChart{
		Title:    spec.Title,
		Width:    spec.Width,
		Height:   spec.Height,
		BarWidth: barWidth,
		Background: gochart.Style{
			Padding: gochart.Box{Top: 40},
		},
		Bars: bars,
	}
}

func barStyle(hex string) gochart.Style {
	col := drawing.ColorFromHex(hex)
	return gochart.Style{
		FillColor:   col,
		StrokeColor: col,
		StrokeWidth: 0,
	}
}

// FileName builds the export file name for a region's chart, e.g. "north-24-parganas-forecast-line.png".
// The region slug keeps only [a-z0-9-], so the name never contains a path separator.
func FileName(region string, mode Mode, kind Kind, format Format) string {
	slug := slugify(region)
	if slug == "" {
		slug = "chart"
	}
	if format == "" {
		format = FormatPNG
	}
	return fmt.Sprintf("%s-%s-%s.%s", slug, mode, kind, format)
}

// slugify lowercases s and collapses every run of other characters into one "-".
func slugify(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			dash = false
			b.WriteRune(r)
			continue
		}
		dash = true
	}
	return b.String()
}
