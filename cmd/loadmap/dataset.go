package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/Sayan30092004/load-main/internal/cli"
	"github.com/Sayan30092004/load-main/internal/common"
	"github.com/Sayan30092004/load-main/internal/dataset"
	"github.com/Sayan30092004/load-main/internal/model"
	"github.com/spf13/cobra"
)

func datasetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dataset",
		Short: "Manage the chart series database",
		Long: `Create, seed and inspect the SQLite database that feeds the chart panel.

The database location comes from dataset.path (or --dataset).`,
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "init",
			Short: "Create the database and apply migrations",
			Args:  cobra.NoArgs,
			RunE:  runDatasetInit,
		},
		&cobra.Command{
			Use:   "seed",
			Short: "Write sample series for every configured region",
			Args:  cobra.NoArgs,
			RunE:  runDatasetSeed,
		},
		&cobra.Command{
			Use:   "status",
			Short: "Show what the database holds",
			Args:  cobra.NoArgs,
			RunE:  runDatasetStatus,
		},
	)

	return cmd
}

// openStore opens and migrates the configured database.
func openStore(ctx context.Context, path string) (*dataset.Store, error) {
	if path == "" {
		return nil, common.NewUserError("No dataset path configured", fmt.Errorf("%w: dataset.path", common.ErrMissingConfig))
	}
	store, err := dataset.NewSQLiteStore(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to migrate dataset: %w", err)
	}
	return store, nil
}

func runDatasetInit(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, err := openStore(cmd.Context(), cfg.DatasetPath)
	if err != nil {
		return err
	}
	defer closeStore(store)

	_, err = fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Dataset ready at "+store.Path()))
	return err
}

func runDatasetSeed(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, err := openStore(cmd.Context(), cfg.DatasetPath)
	if err != nil {
		return err
	}
	defer closeStore(store)

	return seedDataset(cmd.Context(), store, cfg.Regions, cmd.OutOrStdout())
}

func seedDataset(ctx context.Context, store *dataset.Store, regions []model.Region, w io.Writer) error {
	written, err := store.Seed(ctx, regions)
	if err != nil {
		return fmt.Errorf("failed to seed dataset: %w", err)
	}
	common.LogInfo("Seeded dataset", common.Fields{
		"path":    store.Path(),
		"regions": len(regions),
		"points":  written,
	})

	_, err = fmt.Fprintln(w, cli.FormatSuccess(fmt.Sprintf("Seeded %d points for %d regions", written, len(regions)+1)))
	return err
}

func runDatasetStatus(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, err := openStore(cmd.Context(), cfg.DatasetPath)
	if err != nil {
		return err
	}
	defer closeStore(store)

	return writeDatasetStatus(cmd.Context(), store, cmd.OutOrStdout())
}

func writeDatasetStatus(ctx context.Context, store *dataset.Store, w io.Writer) error {
	count, err := store.Count(ctx)
	if err != nil {
		return err
	}
	regions, err := store.Regions(ctx)
	if err != nil {
		return err
	}

	stored := "none"
	if len(regions) > 0 {
		stored = strings.Join(regions, ", ")
	}
	content := strings.Join([]string{
		cli.KeyValue("Path", store.Path()),
		cli.KeyValue("Schema", fmt.Sprintf("v%d", dataset.ExpectedSchemaVersion)),
		cli.KeyValue("Points", count),
		cli.KeyValue("Regions", stored),
	}, "\n")

	_, err = fmt.Fprintln(w, cli.RenderBox(cli.ChartIcon+" Dataset", content))
	return err
}
