package dataset

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Sayan30092004/load-main/internal/chart"
	"github.com/Sayan30092004/load-main/internal/model"
)

// Provider supplies the chart series for a region.
type Provider interface {
	Series(ctx context.Context, region string, mode chart.Mode) ([]model.TimeSeriesPoint, error)
}

// Samples serves the built-in sample series for every region.
type Samples struct{}

// Series implements Provider.
func (Samples) Series(_ context.Context, _ string, mode chart.Mode) ([]model.TimeSeriesPoint, error) {
	if err := validateMode(mode); err != nil {
		return nil, err
	}
	return chart.SelectDataset(mode, model.SampleHistorical(), model.SampleForecast()), nil
}

// Fallback serves from Primary and falls back to Secondary on any error.
type Fallback struct {
	Primary   Provider
	Secondary Provider
}

// Series implements Provider.
func (f Fallback) Series(ctx context.Context, region string, mode chart.Mode) ([]model.TimeSeriesPoint, error) {
	if f.Primary != nil {
		points, err := f.Primary.Series(ctx, region, mode)
		if err == nil {
			return points, nil
		}
		slog.Debug("Primary dataset unavailable, using fallback",
			"region", region,
			"mode", mode,
			"error", err)
	}
	if f.Secondary == nil {
		return nil, fmt.Errorf("%w: %s/%s", ErrNoSeries, region, mode)
	}
	return f.Secondary.Series(ctx, region, mode)
}

// Pair holds both series for a region.
type Pair struct {
	Historical []model.TimeSeriesPoint
	Forecast   []model.TimeSeriesPoint
}

// Load fetches both series for a region.
func Load(ctx context.Context, p Provider, region string) (Pair, error) {
	hist, err := p.Series(ctx, region, chart.ModeHistorical)
	if err != nil {
		return Pair{}, fmt.Errorf("historical series for %s: %w", region, err)
	}
	fc, err := p.Series(ctx, region, chart.ModeForecast)
	if err != nil {
		return Pair{}, fmt.Errorf("forecast series for %s: %w", region, err)
	}
	return Pair{Historical: hist, Forecast: fc}, nil
}

// Open opens a store at path and migrates it, returning a provider that falls back to the
// samples. An empty path yields the samples alone and a nil store.
func Open(ctx context.Context, path string) (Provider, *Store, error) {
	if path == "" {
		return Samples{}, nil, nil
	}
	store, err := NewSQLiteStore(path)
	if err != nil {
		return nil, nil, err
	}
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, nil, fmt.Errorf("failed to migrate dataset: %w", err)
	}
	return Fallback{Primary: store, Secondary: Samples{}}, store, nil
}
