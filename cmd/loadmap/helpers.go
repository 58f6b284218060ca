package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Sayan30092004/load-main/internal/common"
	"github.com/Sayan30092004/load-main/internal/config"
	"github.com/Sayan30092004/load-main/internal/dataset"
	"github.com/Sayan30092004/load-main/internal/model"
	"github.com/Sayan30092004/load-main/internal/predict"
	"github.com/Sayan30092004/load-main/internal/workflow"
)

// loadConfig builds the validated dashboard configuration, wrapping failures for the user.
func loadConfig() (*config.Dashboard, error) {
	cfg, err := config.LoadDashboard()
	if err != nil {
		return nil, common.NewUserError("Invalid configuration", fmt.Errorf("%w: %w", common.ErrInvalidConfig, err))
	}
	return cfg, nil
}

// newController wires the prediction client into a workflow over the configured regions.
func newController(cfg *config.Dashboard) (*workflow.Controller, error) {
	regions, err := cfg.RegionSet()
	if err != nil {
		return nil, err
	}

	client, err := predict.NewClient(predict.Config{
		Endpoint:  cfg.Endpoint,
		Timeout:   cfg.Timeout,
		UserAgent: "loadmap/" + version,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create prediction client: %w", err)
	}

	return workflow.New(regions, client), nil
}

// openSeries opens the configured series database. A database that cannot be opened is
// reported and replaced by the built-in samples; the returned store is nil in that case.
func openSeries(ctx context.Context, cfg *config.Dashboard) (dataset.Provider, *dataset.Store) {
	provider, store, err := dataset.Open(ctx, cfg.DatasetPath)
	if err != nil {
		common.LogError(err, "Series database unavailable, using built-in samples", common.Fields{
			"path": cfg.DatasetPath,
		})
		return dataset.Samples{}, nil
	}
	return provider, store
}

// unknownRegionError tells the user which region names are accepted.
func unknownRegionError(name string, known []model.Region, err error) error {
	names := make([]string, 0, len(known))
	for _, r := range known {
		names = append(names, r.Name)
	}
	return common.NewUserError(
		fmt.Sprintf("Unknown region %q (known: %s)", name, strings.Join(names, ", ")), err)
}

// parseDate parses a YYYY-MM-DD flag value, falling back to def when empty.
func parseDate(value string, def time.Time) (time.Time, error) {
	if value == "" {
		return def, nil
	}
	date, err := model.ParseDate(value)
	if err != nil {
		return time.Time{}, common.NewUserError("Dates must be written as YYYY-MM-DD", err)
	}
	return date, nil
}

func closeStore(store *dataset.Store) {
	if store == nil {
		return
	}
	if err := store.Close(); err != nil {
		slog.Warn("Failed to close series database", "error", err)
	}
}
