package tui

import (
	"time"

	"github.com/Sayan30092004/load-main/internal/chart"
	"github.com/Sayan30092004/load-main/internal/dataset"
	"github.com/Sayan30092004/load-main/internal/geo"
	"github.com/Sayan30092004/load-main/internal/playback"
	"github.com/Sayan30092004/load-main/internal/tui/themes"
	"github.com/Sayan30092004/load-main/internal/workflow"
)

// Config holds TUI configuration.
type Config struct {
	Series        dataset.Provider
	Theme         themes.Theme
	Controller    *workflow.Controller
	Timeline      *playback.Timeline
	Overlay       *geo.Overlay
	InitialRegion string
	ExportDir     string
	ChartKind     chart.Kind
	ChartMode     chart.Mode
	PlaybackBase  time.Duration
	Width         int
	Height        int
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		Theme:        themes.Default,
		Series:       dataset.Samples{},
		ExportDir:    ".",
		ChartKind:    chart.KindLine,
		ChartMode:    chart.ModeHistorical,
		PlaybackBase: 2 * time.Second,
		Width:        80,
		Height:       24,
	}
}

// WithController sets the workflow that owns selection and prediction state.
func WithController(c *workflow.Controller) Option {
	return func(cfg *Config) {
		cfg.Controller = c
	}
}

// WithTimeline sets the playback timeline.
func WithTimeline(t *playback.Timeline) Option {
	return func(cfg *Config) {
		cfg.Timeline = t
	}
}

// WithSeries sets where chart series come from.
func WithSeries(p dataset.Provider) Option {
	return func(cfg *Config) {
		if p != nil {
			cfg.Series = p
		}
	}
}

// WithOverlay sets the boundary overlay drawn under the map. nil draws markers only.
func WithOverlay(o *geo.Overlay) Option {
	return func(cfg *Config) {
		cfg.Overlay = o
	}
}

// WithTheme sets the visual theme.
func WithTheme(theme themes.Theme) Option {
	return func(cfg *Config) {
		cfg.Theme = theme
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(cfg *Config) {
		cfg.Width = width
		cfg.Height = height
	}
}

// WithInitialRegion selects a region as soon as the dashboard starts.
func WithInitialRegion(name string) Option {
	return func(cfg *Config) {
		cfg.InitialRegion = name
	}
}

// WithExportDir sets where exported charts are written.
func WithExportDir(dir string) Option {
	return func(cfg *Config) {
		cfg.ExportDir = dir
	}
}

// WithPlaybackInterval sets the time between auto-advances at 1x speed.
func WithPlaybackInterval(d time.Duration) Option {
	return func(cfg *Config) {
		if d > 0 {
			cfg.PlaybackBase = d
		}
	}
}

// WithChart sets the initial chart kind and dataset mode.
func WithChart(kind chart.Kind, mode chart.Mode) Option {
	return func(cfg *Config) {
		if kind != "" {
			cfg.ChartKind = kind
		}
		if mode != "" {
			cfg.ChartMode = mode
		}
	}
}
