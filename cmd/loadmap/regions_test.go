package main

import (
	"bytes"
	"testing"

	"github.com/Sayan30092004/load-main/internal/common"
	"github.com/Sayan30092004/load-main/internal/geo"
	"github.com/Sayan30092004/load-main/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A one-degree square around central Kolkata.
const kolkataBoundary = `{
  "type": "FeatureCollection",
  "features": [
    {
      "type": "Feature",
      "properties": {"name": "Kolkata"},
      "geometry": {"type": "Polygon", "coordinates": [[[88,22],[89,22],[89,23],[88,23],[88,22]]]}
    }
  ]
}`

func testOverlay(t *testing.T) *geo.Overlay {
	t.Helper()
	overlay, err := geo.Parse([]byte(kolkataBoundary))
	require.NoError(t, err)
	return overlay
}

func TestRenderRegions(t *testing.T) {
	out := renderRegions(model.DefaultRegions(), testOverlay(t))

	assert.Contains(t, out, "5 regions")
	for _, r := range model.DefaultRegions() {
		assert.Contains(t, out, r.Name)
	}
	assert.Contains(t, out, "22.5726")
	assert.Contains(t, out, "88.3639")

	// Without an overlay no region has a boundary.
	assert.NotContains(t, renderRegions(model.DefaultRegions(), nil), "✓")
}

func TestWriteLocation(t *testing.T) {
	tests := []struct {
		overlay *geo.Overlay
		name    string
		want    []string
		absent  []string
		lat     float64
		lng     float64
	}{
		{
			name:    "inside boundary",
			overlay: testOverlay(t),
			lat:     22.57,
			lng:     88.36,
			want:    []string{"inside Kolkata", "Nearest region", "Kolkata ("},
		},
		{
			name:    "outside every boundary",
			overlay: testOverlay(t),
			lat:     23.8,
			lng:     87.6,
			want:    []string{"outside every boundary", "Birbhum (0.0 km)"},
		},
		{
			name:   "no overlay",
			lat:    22.60,
			lng:    88.26,
			want:   []string{"Howrah"},
			absent: []string{"inside", "outside"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, writeLocation(&buf, model.DefaultRegions(), tt.overlay, tt.lat, tt.lng))

			out := buf.String()
			for _, want := range tt.want {
				assert.Contains(t, out, want)
			}
			for _, absent := range tt.absent {
				assert.NotContains(t, out, absent)
			}
		})
	}
}

func TestParseCoordinate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantLat float64
		wantLng float64
		wantErr bool
	}{
		{name: "valid", input: "22.57,88.36", wantLat: 22.57, wantLng: 88.36},
		{name: "spaces", input: " 23.8 , 87.6 ", wantLat: 23.8, wantLng: 87.6},
		{name: "missing longitude", input: "22.57", wantErr: true},
		{name: "not a number", input: "north,east", wantErr: true},
		{name: "latitude out of range", input: "91,88", wantErr: true},
		{name: "longitude out of range", input: "22,181", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lat, lng, err := parseCoordinate(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, common.ErrInvalidConfig)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.wantLat, lat, 1e-9)
			assert.InDelta(t, tt.wantLng, lng, 1e-9)
		})
	}
}
