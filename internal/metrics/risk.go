// Package metrics turns raw prediction readings into display bands for the metrics panel.
package metrics

import (
	"fmt"
	"math"
	"time"

	"github.com/Sayan30092004/load-main/internal/model"
)

// RiskThreshold is the blackout probability (percent) above which risk is elevated.
const RiskThreshold = 20.0

// RiskLevel is the display band for a blackout probability.
type RiskLevel string

// Risk levels.
const (
	RiskNormal   RiskLevel = "normal"
	RiskElevated RiskLevel = "elevated"
)

// ClassifyRisk maps a blackout probability in percent to a risk level.
// Inputs outside [0,100] are clamped first.
func ClassifyRisk(blackoutProbabilityPercent float64) RiskLevel {
	if clampPercent(blackoutProbabilityPercent) > RiskThreshold {
		return RiskElevated
	}
	return RiskNormal
}

// Percent formats a reading for display, dropping a trailing ".0".
func Percent(v float64) string {
	v = clampPercent(v)
	if v == math.Trunc(v) {
		return fmt.Sprintf("%.0f%%", v)
	}
	return fmt.Sprintf("%.1f%%", v)
}

// Balance is supply minus demand; negative values are a deficit.
func Balance(demand, supply float64) float64 {
	return supply - demand
}

// Summary is the metrics panel view of a prediction.
type Summary struct {
	UpdatedAt           time.Time
	Price               *float64
	Region              string
	Risk                RiskLevel
	Demand              float64
	Supply              float64
	BlackoutProbability float64
	Balance             float64
}

// Summarize builds the panel summary for a result.
func Summarize(result model.PredictionResult, updatedAt time.Time) Summary {
	return Summary{
		UpdatedAt:           updatedAt,
		Price:               result.Price,
		Region:              result.Region,
		Risk:                ClassifyRisk(result.BlackoutProbability),
		Demand:              result.Demand,
		Supply:              result.Supply,
		BlackoutProbability: result.BlackoutProbability,
		Balance:             Balance(result.Demand, result.Supply),
	}
}

// Deficit reports whether demand exceeds supply.
func (s Summary) Deficit() bool {
	return s.Balance < 0
}

func clampPercent(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
