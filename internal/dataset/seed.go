package dataset

import (
	"context"
	"fmt"
	"hash/fnv"

	"github.com/Sayan30092004/load-main/internal/chart"
	"github.com/Sayan30092004/load-main/internal/model"
)

// Seed writes sample series for the global region and each given region. Regional series
// are the samples scaled by a stable per-region factor so panels differ between regions.
// It returns the number of points written.
func (s *Store) Seed(ctx context.Context, regions []model.Region) (int, error) {
	written := 0
	names := []string{model.GlobalRegion}
	for _, r := range regions {
		names = append(names, r.Name)
	}

	for _, name := range names {
		factor := 1.0
		if name != model.GlobalRegion {
			factor = RegionFactor(name)
		}
		for _, mode := range []chart.Mode{chart.ModeHistorical, chart.ModeForecast} {
			points := Scale(chart.SelectDataset(mode, model.SampleHistorical(), model.SampleForecast()), factor)
			if err := s.SaveSeries(ctx, name, mode, points); err != nil {
				return written, fmt.Errorf("failed to seed %s: %w", name, err)
			}
			written += len(points)
		}
	}
	return written, nil
}

// RegionFactor derives a scale in [0.6, 1.4) from the region name.
func RegionFactor(name string) float64 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(name))
	return 0.6 + float64(h.Sum32()%80)/100
}

// Scale returns a copy of points with demand and supply multiplied by factor.
// Blackout probability is left unchanged.
func Scale(points []model.TimeSeriesPoint, factor float64) []model.TimeSeriesPoint {
	out := make([]model.TimeSeriesPoint, len(points))
	for i, p := range points {
		out[i] = model.TimeSeriesPoint{
			Date:                p.Date,
			Demand:              p.Demand * factor,
			Supply:              p.Supply * factor,
			BlackoutProbability: p.BlackoutProbability,
		}
	}
	return out
}
