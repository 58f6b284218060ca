package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/Sayan30092004/load-main/internal/chart"
	"github.com/Sayan30092004/load-main/internal/model"
	"github.com/Sayan30092004/load-main/internal/playback"
	"github.com/spf13/viper"
)

// Configuration errors.
var (
	ErrMissingEndpoint = errors.New("prediction.endpoint is required")
	ErrInvalidEndpoint = errors.New("prediction.endpoint must be an http(s) URL")
	ErrInvalidTimeout  = errors.New("prediction.timeout must be positive")
)

// Defaults.
const (
	DefaultEndpoint         = "http://localhost:8000/predict"
	DefaultTimeout          = 30 * time.Second
	DefaultDate             = "2025-04-15"
	DefaultPlaybackInterval = 2 * time.Second
	DefaultLogFile          = "$HOME/.local/state/loadmap/loadmap.log"
	DefaultDatasetPath      = "$HOME/.local/share/loadmap/series.db"
	DefaultExportDir        = "."
	DefaultTheme            = "default"
)

// Dashboard holds everything needed to start the dashboard or the CLI commands.
type Dashboard struct {
	DefaultDate      time.Time
	Endpoint         string
	DefaultRegion    string
	Boundaries       string
	DatasetPath      string
	LogFile          string
	ExportDir        string
	Theme            string
	ChartKind        chart.Kind
	ChartMode        chart.Mode
	Regions          []model.Region
	Timeout          time.Duration
	PlaybackInterval time.Duration
	PlaybackSpeed    float64
}

// SetDefaults registers the dashboard defaults with viper.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("prediction.endpoint", DefaultEndpoint)
	v.SetDefault("prediction.timeout", DefaultTimeout)
	v.SetDefault("dashboard.date", DefaultDate)
	v.SetDefault("dashboard.region", "")
	v.SetDefault("chart.kind", string(chart.KindLine))
	v.SetDefault("chart.mode", string(chart.ModeHistorical))
	v.SetDefault("playback.interval", DefaultPlaybackInterval)
	v.SetDefault("playback.speed", 1.0)
	v.SetDefault("map.boundaries", "")
	v.SetDefault("dataset.path", DefaultDatasetPath)
	v.SetDefault("logging.file", DefaultLogFile)
	v.SetDefault("export.dir", DefaultExportDir)
	v.SetDefault("dashboard.theme", DefaultTheme)
}

// LoadDashboard builds a validated Dashboard from the global viper instance.
func LoadDashboard() (*Dashboard, error) {
	return LoadDashboardFrom(viper.GetViper())
}

// LoadDashboardFrom builds a validated Dashboard from v.
func LoadDashboardFrom(v *viper.Viper) (*Dashboard, error) {
	SetDefaults(v)

	cfg := &Dashboard{
		Endpoint:         strings.TrimSpace(v.GetString("prediction.endpoint")),
		Timeout:          v.GetDuration("prediction.timeout"),
		DefaultRegion:    strings.TrimSpace(v.GetString("dashboard.region")),
		Boundaries:       ExpandPath(v.GetString("map.boundaries")),
		DatasetPath:      ExpandPath(v.GetString("dataset.path")),
		LogFile:          ExpandPath(v.GetString("logging.file")),
		ExportDir:        ExpandPath(v.GetString("export.dir")),
		Theme:            strings.TrimSpace(v.GetString("dashboard.theme")),
		PlaybackInterval: v.GetDuration("playback.interval"),
		PlaybackSpeed:    playback.ClampSpeed(v.GetFloat64("playback.speed")),
	}

	date, err := model.ParseDate(v.GetString("dashboard.date"))
	if err != nil {
		return nil, fmt.Errorf("dashboard.date: %w", err)
	}
	cfg.DefaultDate = date

	if cfg.ChartKind, err = chart.ParseKind(v.GetString("chart.kind")); err != nil {
		return nil, fmt.Errorf("chart.kind: %w", err)
	}
	if cfg.ChartMode, err = chart.ParseMode(v.GetString("chart.mode")); err != nil {
		return nil, fmt.Errorf("chart.mode: %w", err)
	}

	cfg.Regions = model.DefaultRegions()
	if v.IsSet("regions") {
		var regions []model.Region
		if err := v.UnmarshalKey("regions", &regions); err != nil {
			return nil, fmt.Errorf("regions: %w", err)
		}
		if len(regions) > 0 {
			cfg.Regions = regions
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration.
func (d *Dashboard) Validate() error {
	if d.Endpoint == "" {
		return ErrMissingEndpoint
	}
	u, err := url.Parse(d.Endpoint)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %q", ErrInvalidEndpoint, d.Endpoint)
	}
	if d.Timeout <= 0 {
		return ErrInvalidTimeout
	}
	if d.PlaybackInterval <= 0 {
		return fmt.Errorf("playback.interval must be positive, got %s", d.PlaybackInterval)
	}

	set, err := model.NewRegionSet(d.Regions)
	if err != nil {
		return fmt.Errorf("regions: %w", err)
	}
	if d.DefaultRegion != "" && !set.Contains(d.DefaultRegion) {
		return fmt.Errorf("dashboard.region: %w: %q", model.ErrUnknownRegion, d.DefaultRegion)
	}
	return nil
}

// RegionSet returns the validated region set.
func (d *Dashboard) RegionSet() (*model.RegionSet, error) {
	return model.NewRegionSet(d.Regions)
}
