package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Sayan30092004/load-main/internal/chart"
	"github.com/Sayan30092004/load-main/internal/dataset"
	"github.com/Sayan30092004/load-main/internal/model"
	"github.com/Sayan30092004/load-main/internal/workflow"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	resolveTimeout = 30 * time.Second
	seriesTimeout  = 10 * time.Second
)

// resolveCmd performs the request for a ticket off the event loop. The outcome is applied
// in Update so state is only written from one goroutine.
func resolveCmd(c *workflow.Controller, t workflow.Ticket) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), resolveTimeout)
		defer cancel()

		return outcomeMsg{outcome: c.Resolve(ctx, t)}
	}
}

// loadSeriesCmd loads both chart series for a region.
func loadSeriesCmd(p dataset.Provider, region string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), seriesTimeout)
		defer cancel()

		pair, err := dataset.Load(ctx, p, region)
		return seriesLoadedMsg{region: region, pair: pair, err: err}
	}
}

// tickCmd schedules the next playback advance.
func tickCmd(interval time.Duration, gen int) tea.Cmd {
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return playbackTickMsg{gen: gen}
	})
}

// exportCmd writes the chart currently on screen as a PNG under dir.
func exportCmd(dir, region string, mode chart.Mode, kind chart.Kind, points []model.TimeSeriesPoint) tea.Cmd {
	return func() tea.Msg {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return exportedMsg{err: fmt.Errorf("failed to create export directory: %w", err)}
		}

		path := filepath.Join(dir, chart.FileName(region, mode, kind, chart.FormatPNG))
		f, err := os.Create(path) //nolint:gosec // path is built from the configured export dir
		if err != nil {
			return exportedMsg{err: fmt.Errorf("failed to create %s: %w", path, err)}
		}

		renderErr := chart.Render(f, chart.Spec{
			Title:  fmt.Sprintf("%s · %s", region, mode.Title()),
			Kind:   kind,
			Format: chart.FormatPNG,
			Points: points,
		})
		closeErr := f.Close()
		if renderErr != nil {
			_ = os.Remove(path)
			return exportedMsg{err: fmt.Errorf("failed to render chart: %w", renderErr)}
		}
		if closeErr != nil {
			return exportedMsg{err: fmt.Errorf("failed to write %s: %w", path, closeErr)}
		}
		return exportedMsg{path: path}
	}
}
