package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/Sayan30092004/load-main/internal/chart"
	"github.com/Sayan30092004/load-main/internal/cli"
	"github.com/Sayan30092004/load-main/internal/common"
	"github.com/Sayan30092004/load-main/internal/config"
	"github.com/Sayan30092004/load-main/internal/dataset"
	"github.com/Sayan30092004/load-main/internal/model"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"
)

// exportWorkers bounds concurrent chart renders for --all.
const exportWorkers = 4

func chartCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chart [region]",
		Short: "Export the load chart for a region",
		Long: `Render a region's historical or forecast series to a PNG or SVG file.

Without a region the global series is exported. Use --all to export every
configured region.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runChart,
	}

	// Flags
	cmd.Flags().String("mode", "", "Series to plot (historical, forecast)")
	cmd.Flags().String("kind", "", "Chart kind (line, area, bar)")
	cmd.Flags().String("format", "png", "Image format (png, svg)")
	cmd.Flags().String("out", "", "Output directory")
	cmd.Flags().Bool("all", false, "Export every configured region")

	// Bind to viper
	_ = viper.BindPFlag("chart.mode", cmd.Flags().Lookup("mode"))
	_ = viper.BindPFlag("chart.kind", cmd.Flags().Lookup("kind"))

	return cmd
}

// exportOptions selects what every exported chart looks like.
type exportOptions struct {
	Dir    string
	Mode   chart.Mode
	Kind   chart.Kind
	Format chart.Format
}

func runChart(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	formatStr, _ := cmd.Flags().GetString("format")
	format, err := chart.ParseFormat(formatStr)
	if err != nil {
		return common.NewUserError("Format must be png or svg", err)
	}
	opts := exportOptions{Dir: cfg.ExportDir, Mode: cfg.ChartMode, Kind: cfg.ChartKind, Format: format}
	// export.dir is also bound by the dashboard, so --out is applied here
	if dir, _ := cmd.Flags().GetString("out"); dir != "" {
		opts.Dir = config.ExpandPath(dir)
	}

	all, _ := cmd.Flags().GetBool("all")
	var regions []string
	switch {
	case all:
		for _, r := range cfg.Regions {
			regions = append(regions, r.Name)
		}
	case len(args) == 1:
		set, err := cfg.RegionSet()
		if err != nil {
			return common.NewUserError("Invalid configuration", fmt.Errorf("%w: %w", common.ErrInvalidConfig, err))
		}
		region, err := chartRegion(set, args[0])
		if err != nil {
			return err
		}
		regions = []string{region}
	default:
		regions = []string{model.GlobalRegion}
	}

	provider, store := openSeries(cmd.Context(), cfg)
	defer closeStore(store)

	out := cmd.OutOrStdout()
	if len(regions) == 1 {
		path, err := exportChart(cmd.Context(), provider, regions[0], opts)
		if err != nil {
			return common.NewUserError("Chart export failed", fmt.Errorf("%w: %w", common.ErrExportFailed, err))
		}
		_, err = fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("%s Exported %s", cli.ChartIcon, path)))
		return err
	}

	handler := cli.NewInterruptHandler(cmd.ErrOrStderr())
	var done atomic.Int64
	ctx, stop := handler.HandleInterrupts(cmd.Context(), "Chart export", func() string {
		return fmt.Sprintf("%d of %d charts exported", done.Load(), len(regions))
	})
	defer stop()

	paths, err := exportCharts(ctx, provider, regions, opts, out, &done)
	if handler.WasInterrupted() {
		return nil
	}
	if err != nil {
		return common.NewUserError("Chart export failed", fmt.Errorf("%w: %w", common.ErrExportFailed, err))
	}

	_, err = fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("%s Exported %d charts to %s", cli.ChartIcon, len(paths), opts.Dir)))
	return err
}

// chartRegion checks a region argument against the configured set. The global
// series is always available.
func chartRegion(set *model.RegionSet, name string) (string, error) {
	name = strings.TrimSpace(name)
	if strings.EqualFold(name, model.GlobalRegion) {
		return model.GlobalRegion, nil
	}
	if _, err := set.Lookup(name); err != nil {
		return "", unknownRegionError(name, set.All(), err)
	}
	return name, nil
}

// exportCharts renders one chart per region with a bounded worker pool, advancing a
// progress bar on w. done counts finished charts. Paths are returned in region order.
func exportCharts(ctx context.Context, p dataset.Provider, regions []string, opts exportOptions, w io.Writer, done *atomic.Int64) ([]string, error) {
	bar := newExportBar(w, len(regions))
	paths := make([]string, len(regions))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(exportWorkers)
	for i, region := range regions {
		i, region := i, region
		g.Go(func() error {
			path, err := exportChart(gctx, p, region, opts)
			if err != nil {
				return err
			}
			paths[i] = path
			done.Add(1)
			if err := bar.Add(1); err != nil {
				slog.Warn("Failed to update progress bar", "error", err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return paths, nil
}

// exportChart loads a region's series and writes the chart file, returning its path.
func exportChart(ctx context.Context, p dataset.Provider, region string, opts exportOptions) (string, error) {
	pair, err := dataset.Load(ctx, p, region)
	if err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if err := os.MkdirAll(opts.Dir, 0750); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}
	path := filepath.Join(opts.Dir, chart.FileName(region, opts.Mode, opts.Kind, opts.Format))

	f, err := os.Create(path) //nolint:gosec // Path is built from the export directory
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", path, err)
	}

	renderErr := chart.Render(f, chart.Spec{
		Title:  fmt.Sprintf("%s · %s", region, opts.Mode.Title()),
		Kind:   opts.Kind,
		Format: opts.Format,
		Points: chart.SelectDataset(opts.Mode, pair.Historical, pair.Forecast),
	})
	closeErr := f.Close()
	if err := errors.Join(renderErr, closeErr); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("failed to render %s: %w", region, err)
	}
	return path, nil
}

func newExportBar(w io.Writer, total int) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("[cyan][bold]Exporting charts...[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			if _, err := fmt.Fprintln(w); err != nil {
				slog.Warn("Failed to write newline after progress bar", "error", err)
			}
		}),
	)
}
