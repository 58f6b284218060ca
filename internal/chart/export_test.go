package chart

import (
	"bytes"
	"errors"
	"testing"

	"github.com/Sayan30092004/load-main/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_SVG(t *testing.T) {
	for _, kind := range []Kind{KindLine, KindBar, KindArea} {
		t.Run(string(kind), func(t *testing.T) {
			var buf bytes.Buffer
			err := Render(&buf, Spec{
				Title:  "Kolkata Energy Data - Historical",
				Kind:   kind,
				Format: FormatSVG,
				Points: model.SampleHistorical(),
			})
			require.NoError(t, err)
			assert.Contains(t, buf.String(), "<svg")
		})
	}
}

func TestRender_PNG(t *testing.T) {
	var buf bytes.Buffer
	err := Render(&buf, Spec{Kind: KindLine, Format: FormatPNG, Points: model.SampleForecast()})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")))
}

func TestRender_Errors(t *testing.T) {
	one := model.SampleHistorical()[:1]

	err := Render(&bytes.Buffer{}, Spec{Kind: KindLine, Points: one})
	assert.True(t, errors.Is(err, ErrNotEnoughPoints))

	err = Render(&bytes.Buffer{}, Spec{Kind: KindBar})
	assert.True(t, errors.Is(err, ErrNotEnoughPoints))

	err = Render(&bytes.Buffer{}, Spec{Kind: "pie", Points: model.SampleHistorical()})
	assert.Error(t, err)
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat(".SVG")
	require.NoError(t, err)
	assert.Equal(t, FormatSVG, f)

	f, err = ParseFormat("png")
	require.NoError(t, err)
	assert.Equal(t, FormatPNG, f)

	_, err = ParseFormat("gif")
	assert.Error(t, err)
}

func TestFileName(t *testing.T) {
	tests := []struct {
		name   string
		region string
		mode   Mode
		kind   Kind
		format Format
		want   string
	}{
		{"simple", "Kolkata", ModeHistorical, KindLine, FormatPNG, "kolkata-historical-line.png"},
		{"spaces", "North 24 Parganas", ModeForecast, KindArea, FormatSVG, "north-24-parganas-forecast-area.svg"},
		{"empty region", "", ModeForecast, KindBar, "", "chart-forecast-bar.png"},
		{"path traversal", "../../etc/passwd", ModeHistorical, KindLine, FormatPNG, "etc-passwd-historical-line.png"},
		{"separators only", "/..\\", ModeHistorical, KindLine, FormatSVG, "chart-historical-line.svg"},
		{"punctuation", "Purba  Medinipur (East)", ModeForecast, KindLine, FormatPNG, "purba-medinipur-east-forecast-line.png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FileName(tt.region, tt.mode, tt.kind, tt.format))
		})
	}
}
