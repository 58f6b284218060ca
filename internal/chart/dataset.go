// Package chart selects the active time series for the chart panel and exports it as an image.
package chart

import (
	"fmt"
	"strings"

	"github.com/Sayan30092004/load-main/internal/model"
)

// Mode selects which dataset the chart shows.
type Mode string

// Dataset modes.
const (
	ModeHistorical Mode = "historical"
	ModeForecast   Mode = "forecast"
)

// Kind is the chart rendering style.
type Kind string

// Chart kinds.
const (
	KindLine Kind = "line"
	KindBar  Kind = "bar"
	KindArea Kind = "area"
)

var kinds = []Kind{KindLine, KindBar, KindArea}

// SelectDataset returns historical when mode is historical, else forecast.
// The chosen slice is returned as-is.
func SelectDataset(mode Mode, historical, forecast []model.TimeSeriesPoint) []model.TimeSeriesPoint {
	if mode == ModeHistorical {
		return historical
	}
	return forecast
}

// ParseMode parses a mode name.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeHistorical:
		return ModeHistorical, nil
	case ModeForecast:
		return ModeForecast, nil
	default:
		return "", fmt.Errorf("invalid chart mode %q (want historical or forecast)", s)
	}
}

// Next toggles between historical and forecast.
func (m Mode) Next() Mode {
	if m == ModeHistorical {
		return ModeForecast
	}
	return ModeHistorical
}

// Title is the display label for the mode.
func (m Mode) Title() string {
	if m == ModeHistorical {
		return "Historical"
	}
	return "Forecast"
}

// ParseKind parses a chart kind name.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range kinds {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("invalid chart kind %q (want line, bar or area)", s)
}

// Next cycles line -> bar -> area -> line.
func (k Kind) Next() Kind {
	for i, known := range kinds {
		if k == known {
			return kinds[(i+1)%len(kinds)]
		}
	}
	return KindLine
}
