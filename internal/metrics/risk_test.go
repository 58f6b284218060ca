package metrics

import (
	"math"
	"testing"
	"time"

	"github.com/Sayan30092004/load-main/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestClassifyRisk(t *testing.T) {
	tests := []struct {
		name  string
		want  RiskLevel
		input float64
	}{
		{name: "zero", input: 0, want: RiskNormal},
		{name: "below threshold", input: 12, want: RiskNormal},
		{name: "at threshold", input: 20, want: RiskNormal},
		{name: "just above threshold", input: 20.01, want: RiskElevated},
		{name: "above threshold", input: 21, want: RiskElevated},
		{name: "maximum", input: 100, want: RiskElevated},
		{name: "negative clamps to zero", input: -5, want: RiskNormal},
		{name: "over 100 clamps", input: 250, want: RiskElevated},
		{name: "NaN treated as zero", input: math.NaN(), want: RiskNormal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyRisk(tt.input))
		})
	}
}

func TestPercent(t *testing.T) {
	assert.Equal(t, "78%", Percent(78))
	assert.Equal(t, "6.5%", Percent(6.5))
	assert.Equal(t, "100%", Percent(130))
	assert.Equal(t, "0%", Percent(-1))
}

func TestSummarize(t *testing.T) {
	at := time.Date(2025, 4, 15, 10, 0, 0, 0, time.UTC)
	s := Summarize(model.PredictionResult{
		Region:              "Kolkata",
		Demand:              140,
		Supply:              150,
		BlackoutProbability: 6,
	}, at)

	assert.Equal(t, "Kolkata", s.Region)
	assert.Equal(t, RiskNormal, s.Risk)
	assert.InDelta(t, 10.0, s.Balance, 1e-9)
	assert.False(t, s.Deficit())
	assert.Nil(t, s.Price)
	assert.Equal(t, at, s.UpdatedAt)

	s = Summarize(model.PredictionResult{Demand: 190, Supply: 180, BlackoutProbability: 35}, at)
	assert.True(t, s.Deficit())
	assert.Equal(t, RiskElevated, s.Risk)
}
