package dataset

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/Sayan30092004/load-main/internal/chart"
	"github.com/Sayan30092004/load-main/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockProvider struct {
	mock.Mock
}

func (m *mockProvider) Series(ctx context.Context, region string, mode chart.Mode) ([]model.TimeSeriesPoint, error) {
	args := m.Called(ctx, region, mode)
	points, _ := args.Get(0).([]model.TimeSeriesPoint)
	return points, args.Error(1)
}

func TestSamples(t *testing.T) {
	ctx := context.Background()

	hist, err := Samples{}.Series(ctx, "anything", chart.ModeHistorical)
	require.NoError(t, err)
	assert.Equal(t, model.SampleHistorical(), hist)

	fc, err := Samples{}.Series(ctx, "anything", chart.ModeForecast)
	require.NoError(t, err)
	assert.Equal(t, model.SampleForecast(), fc)

	_, err = Samples{}.Series(ctx, "anything", chart.Mode(""))
	assert.True(t, errors.Is(err, ErrInvalidMode))
}

func TestFallback(t *testing.T) {
	ctx := context.Background()
	stored := []model.TimeSeriesPoint{{Date: "2024-01", Demand: 1}}

	tests := []struct {
		primaryErr error
		primary    []model.TimeSeriesPoint
		want       []model.TimeSeriesPoint
		name       string
	}{
		{
			name:    "primary serves",
			primary: stored,
			want:    stored,
		},
		{
			name:       "primary empty",
			primaryErr: ErrNoSeries,
			want:       model.SampleHistorical(),
		},
		{
			name:       "primary broken",
			primaryErr: errors.New("disk I/O error"),
			want:       model.SampleHistorical(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			primary := new(mockProvider)
			primary.On("Series", ctx, "Kolkata", chart.ModeHistorical).Return(tt.primary, tt.primaryErr).Once()

			got, err := Fallback{Primary: primary, Secondary: Samples{}}.Series(ctx, "Kolkata", chart.ModeHistorical)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			primary.AssertExpectations(t)
		})
	}
}

func TestFallback_NoSecondary(t *testing.T) {
	primary := new(mockProvider)
	primary.On("Series", mock.Anything, "Howrah", chart.ModeForecast).Return(nil, ErrNoSeries)

	_, err := Fallback{Primary: primary}.Series(context.Background(), "Howrah", chart.ModeForecast)
	assert.True(t, errors.Is(err, ErrNoSeries))
}

func TestLoad(t *testing.T) {
	pair, err := Load(context.Background(), Samples{}, "Kolkata")
	require.NoError(t, err)
	assert.Equal(t, model.SampleHistorical(), pair.Historical)
	assert.Equal(t, model.SampleForecast(), pair.Forecast)

	broken := new(mockProvider)
	broken.On("Series", mock.Anything, "Kolkata", chart.ModeHistorical).Return(nil, ErrNoSeries)
	_, err = Load(context.Background(), broken, "Kolkata")
	assert.True(t, errors.Is(err, ErrNoSeries))
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	p, store, err := Open(ctx, "")
	require.NoError(t, err)
	assert.Nil(t, store)
	assert.IsType(t, Samples{}, p)

	p, store, err = Open(ctx, filepath.Join(t.TempDir(), "series.db"))
	require.NoError(t, err)
	require.NotNil(t, store)
	defer func() { _ = store.Close() }()

	// Empty store falls back to samples.
	got, err := p.Series(ctx, "Kolkata", chart.ModeForecast)
	require.NoError(t, err)
	assert.Equal(t, model.SampleForecast(), got)

	_, err = store.Seed(ctx, model.DefaultRegions())
	require.NoError(t, err)
	got, err = p.Series(ctx, "Kolkata", chart.ModeForecast)
	require.NoError(t, err)
	assert.Equal(t, Scale(model.SampleForecast(), RegionFactor("Kolkata")), got)
}
