package dataset

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/Sayan30092004/load-main/internal/chart"
	"github.com/Sayan30092004/load-main/internal/model"
)

// Validation errors.
var (
	ErrNilContext   = errors.New("context cannot be nil")
	ErrEmptyString  = errors.New("string parameter cannot be empty")
	ErrEmptySlice   = errors.New("slice cannot be empty")
	ErrInvalidMode  = errors.New("invalid chart mode")
	ErrInvalidPoint = errors.New("invalid series point")
)

func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

func validateMode(mode chart.Mode) error {
	if mode != chart.ModeHistorical && mode != chart.ModeForecast {
		return fmt.Errorf("%w: %q", ErrInvalidMode, mode)
	}
	return nil
}

func validatePoints(points []model.TimeSeriesPoint) error {
	if len(points) == 0 {
		return fmt.Errorf("%w: points", ErrEmptySlice)
	}

	seen := make(map[string]struct{}, len(points))
	for i, p := range points {
		if err := validatePoint(p); err != nil {
			return fmt.Errorf("point at index %d: %w", i, err)
		}
		if _, dup := seen[p.Date]; dup {
			return fmt.Errorf("point at index %d: %w: duplicate period %q", i, ErrInvalidPoint, p.Date)
		}
		seen[p.Date] = struct{}{}
	}
	return nil
}

// validatePoint checks one point. Periods are free-form labels ("2023-01" or "2025-04-15")
// but must sort lexically, so only digits and dashes are allowed.
func validatePoint(p model.TimeSeriesPoint) error {
	if strings.TrimSpace(p.Date) == "" {
		return fmt.Errorf("%w: empty period", ErrInvalidPoint)
	}
	for _, r := range p.Date {
		if (r < '0' || r > '9') && r != '-' {
			return fmt.Errorf("%w: period %q", ErrInvalidPoint, p.Date)
		}
	}
	for name, v := range map[string]float64{
		"demand":               p.Demand,
		"supply":               p.Supply,
		"blackout probability": p.BlackoutProbability,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return fmt.Errorf("%w: %s %v", ErrInvalidPoint, name, v)
		}
	}
	return nil
}
