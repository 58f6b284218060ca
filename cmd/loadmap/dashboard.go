package main

import (
	"fmt"
	"os"

	"github.com/Sayan30092004/load-main/internal/common"
	"github.com/Sayan30092004/load-main/internal/dataset"
	"github.com/Sayan30092004/load-main/internal/geo"
	"github.com/Sayan30092004/load-main/internal/playback"
	"github.com/Sayan30092004/load-main/internal/tui"
	"github.com/Sayan30092004/load-main/internal/tui/themes"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"
)

func dashboardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "dashboard",
		Aliases: []string{"ui"},
		Short:   "Open the interactive dashboard",
		Long: `Open the terminal dashboard: region map, metrics, charts and time controls.

Logs are written to logging.file while the dashboard owns the terminal.`,
		RunE: runDashboard,
	}

	// Flags
	cmd.Flags().StringP("region", "r", "", "Region to select on startup")
	cmd.Flags().StringP("date", "d", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().String("boundaries", "", "GeoJSON boundary file or URL drawn under the map")
	cmd.Flags().String("theme", "", "Color theme (default, catppuccin-mocha)")
	cmd.Flags().String("export-dir", "", "Directory for charts exported with 'e'")

	// Bind to viper
	_ = viper.BindPFlag("dashboard.region", cmd.Flags().Lookup("region"))
	_ = viper.BindPFlag("dashboard.date", cmd.Flags().Lookup("date"))
	_ = viper.BindPFlag("map.boundaries", cmd.Flags().Lookup("boundaries"))
	_ = viper.BindPFlag("dashboard.theme", cmd.Flags().Lookup("theme"))
	_ = viper.BindPFlag("export.dir", cmd.Flags().Lookup("export-dir"))

	return cmd
}

func runDashboard(cmd *cobra.Command, _ []string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return common.NewUserError("Run the dashboard in a terminal, or use 'loadmap predict'", common.ErrNotInteractive)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Logs go to a file while the TUI owns the terminal
	logFile, err := common.OpenLogFile(cfg.LogFile)
	if err != nil {
		return err
	}
	defer func() { _ = logFile.Close() }()
	if err := common.SetupLogger(logFile, viper.GetString("logging.level"), viper.GetString("logging.format")); err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}

	ctx := cmd.Context()
	controller, err := newController(cfg)
	if err != nil {
		return err
	}

	// Boundaries and series load concurrently; neither is fatal
	var (
		overlay *geo.Overlay
		series  dataset.Provider
		store   *dataset.Store
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		overlay = geo.NewLoader(cfg.Timeout).LoadOptional(gctx, cfg.Boundaries)
		return gctx.Err()
	})
	g.Go(func() error {
		series, store = openSeries(gctx, cfg)
		return gctx.Err()
	})
	err = g.Wait()
	defer closeStore(store)
	if err != nil {
		return err
	}

	common.LogInfo("Starting dashboard", common.Fields{
		"endpoint":   cfg.Endpoint,
		"regions":    len(cfg.Regions),
		"boundaries": overlay.Len(),
		"dataset":    cfg.DatasetPath,
	})

	timeline := playback.New(cfg.DefaultDate)
	timeline.SetSpeed(cfg.PlaybackSpeed)

	return tui.Run(ctx,
		tui.WithController(controller),
		tui.WithTimeline(timeline),
		tui.WithSeries(series),
		tui.WithOverlay(overlay),
		tui.WithTheme(themes.GetTheme(cfg.Theme)),
		tui.WithInitialRegion(cfg.DefaultRegion),
		tui.WithExportDir(cfg.ExportDir),
		tui.WithPlaybackInterval(cfg.PlaybackInterval),
		tui.WithChart(cfg.ChartKind, cfg.ChartMode),
	)
}
