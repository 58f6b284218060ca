package model

// TimeSeriesPoint is one period of demand, supply, and blackout probability.
type TimeSeriesPoint struct {
	Date                string  `json:"date"`
	Demand              float64 `json:"demand"`
	Supply              float64 `json:"supply"`
	BlackoutProbability float64 `json:"blackoutProbability"`
}

// SampleHistorical returns the built-in historical series used when no dataset is configured.
func SampleHistorical() []TimeSeriesPoint {
	return []TimeSeriesPoint{
		{Date: "2023-01", Demand: 120, Supply: 140, BlackoutProbability: 0.02},
		{Date: "2023-02", Demand: 130, Supply: 145, BlackoutProbability: 0.03},
		{Date: "2023-03", Demand: 145, Supply: 150, BlackoutProbability: 0.04},
		{Date: "2023-04", Demand: 160, Supply: 165, BlackoutProbability: 0.05},
		{Date: "2023-05", Demand: 170, Supply: 160, BlackoutProbability: 0.08},
		{Date: "2023-06", Demand: 190, Supply: 180, BlackoutProbability: 0.12},
	}
}

// SampleForecast returns the built-in forecast series used when no dataset is configured.
func SampleForecast() []TimeSeriesPoint {
	return []TimeSeriesPoint{
		{Date: "2023-07", Demand: 195, Supply: 185, BlackoutProbability: 0.1},
		{Date: "2023-08", Demand: 200, Supply: 190, BlackoutProbability: 0.09},
		{Date: "2023-09", Demand: 185, Supply: 195, BlackoutProbability: 0.05},
		{Date: "2023-10", Demand: 175, Supply: 190, BlackoutProbability: 0.04},
		{Date: "2023-11", Demand: 165, Supply: 185, BlackoutProbability: 0.03},
		{Date: "2023-12", Demand: 155, Supply: 180, BlackoutProbability: 0.02},
	}
}
