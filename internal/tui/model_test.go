package tui

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Sayan30092004/load-main/internal/chart"
	"github.com/Sayan30092004/load-main/internal/dataset"
	"github.com/Sayan30092004/load-main/internal/model"
	"github.com/Sayan30092004/load-main/internal/playback"
	"github.com/Sayan30092004/load-main/internal/predict"
	"github.com/Sayan30092004/load-main/internal/tui/components"
	tuitest "github.com/Sayan30092004/load-main/internal/tui/testing"
	"github.com/Sayan30092004/load-main/internal/workflow"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testDate = time.Date(2025, 4, 15, 0, 0, 0, 0, time.UTC)
	testNow  = time.Date(2025, 4, 15, 9, 30, 0, 0, time.UTC)
)

func readings(demand, supply, blackout float64) *predict.MockPredictor {
	p := predict.NewMockPredictor()
	p.PredictFn = func(_ context.Context, q model.PredictionQuery) (model.PredictionResult, error) {
		return model.PredictionResult{
			Region:              q.Region,
			Date:                q.DateString(),
			Demand:              demand,
			Supply:              supply,
			BlackoutProbability: blackout,
		}, nil
	}
	return p
}

func newTestModel(t *testing.T, p predict.Predictor, opts ...Option) Model {
	t.Helper()

	regions, err := model.NewRegionSet(model.DefaultRegions())
	require.NoError(t, err)

	ctrl := workflow.New(regions, p, workflow.WithClock(func() time.Time { return testNow }))
	base := []Option{
		WithController(ctrl),
		WithTimeline(playback.New(testDate)),
		WithSize(140, 40),
		WithPlaybackInterval(time.Millisecond),
		WithExportDir(t.TempDir()),
	}

	m, err := New(append(base, opts...)...)
	require.NoError(t, err)
	return m
}

func newRenderer() *tuitest.TestRenderer {
	r := tuitest.NewTestRenderer()
	r.Skip = func(msg tea.Msg) bool {
		switch msg.(type) {
		case spinner.TickMsg, playbackTickMsg:
			return true
		}
		return false
	}
	return r
}

// started runs Init to completion.
func started(t *testing.T, r *tuitest.TestRenderer, m Model) Model {
	t.Helper()
	r.Commands = append(r.Commands, m.Init())
	return r.ProcessCommands(m).(Model)
}

func send(r *tuitest.TestRenderer, m Model, msgs ...tea.Msg) Model {
	for _, msg := range msgs {
		m = r.Send(m, msg).(Model)
	}
	return m
}

type failingSeries struct{}

func (failingSeries) Series(context.Context, string, chart.Mode) ([]model.TimeSeriesPoint, error) {
	return nil, errors.New("dataset offline")
}

func TestNew_RequiresCollaborators(t *testing.T) {
	_, err := New()
	assert.ErrorIs(t, err, ErrNoController)

	regions, err := model.NewRegionSet(model.DefaultRegions())
	require.NoError(t, err)
	_, err = New(WithController(workflow.New(regions, predict.NewMockPredictor())))
	assert.ErrorIs(t, err, ErrNoTimeline)
}

func TestInit_LoadsSeriesAndInitialRegion(t *testing.T) {
	p := readings(800, 900, 12)
	r := newRenderer()
	m := started(t, r, newTestModel(t, p, WithInitialRegion("Kolkata")))

	snap := m.Snapshot()
	assert.Equal(t, "Kolkata", snap.SelectedRegion)
	assert.False(t, snap.IsLoading)
	require.NotNil(t, snap.LastResult)
	assert.InDelta(t, 800, snap.LastResult.Demand, 0.001)

	assert.Equal(t, "Kolkata", m.chartRegion)
	assert.Equal(t, model.SampleHistorical(), m.chartPanel.Points())

	calls := p.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "2025-04-15", calls[0].DateString())
}

func TestInit_WithoutSelection(t *testing.T) {
	p := predict.NewMockPredictor()
	m := started(t, newRenderer(), newTestModel(t, p))

	assert.Equal(t, model.GlobalRegion, m.Snapshot().SelectedRegion)
	assert.Empty(t, p.Calls())
	assert.NotEmpty(t, m.chartPanel.Points(), "global series are shown before any selection")
}

func TestSelect_LoadingVisibleBeforeCompletion(t *testing.T) {
	p := readings(800, 900, 25)
	m := newTestModel(t, p)

	next, cmd := m.Update(tuitest.KeyEnter())
	m = next.(Model)
	require.NotNil(t, cmd)

	chosen, ok := cmd().(components.RegionChosenMsg)
	require.True(t, ok)
	assert.Equal(t, "Kolkata", chosen.Region)

	next, cmd = m.Update(chosen)
	m = next.(Model)
	require.NotNil(t, cmd)

	snap := m.Snapshot()
	assert.True(t, snap.IsLoading)
	assert.Equal(t, "Kolkata", snap.SelectedRegion)
	assert.Empty(t, p.Calls(), "request is issued by the command, not by Update")
	assert.Contains(t, m.View(), "Loading Kolkata")

	r := newRenderer()
	r.Commands = append(r.Commands, cmd)
	m = r.ProcessCommands(m).(Model)

	snap = m.Snapshot()
	assert.False(t, snap.IsLoading)
	require.NotNil(t, snap.LastResult)
	assert.InDelta(t, 25, snap.LastResult.BlackoutProbability, 0.001)
	assert.Len(t, p.Calls(), 1)
}

func TestOutcome_StaleDiscarded(t *testing.T) {
	p := readings(500, 600, 5)
	m := newTestModel(t, p)
	ctx := context.Background()

	first, err := m.controller.Select("Kolkata", testDate)
	require.NoError(t, err)
	second, err := m.controller.Select("Howrah", testDate)
	require.NoError(t, err)

	next, _ := m.Update(outcomeMsg{outcome: m.controller.Resolve(ctx, first)})
	m = next.(Model)

	snap := m.Snapshot()
	assert.Nil(t, snap.LastResult, "completion for the superseded selection is dropped")
	assert.True(t, snap.IsLoading)
	assert.Equal(t, "Howrah", snap.SelectedRegion)

	next, _ = m.Update(outcomeMsg{outcome: m.controller.Resolve(ctx, second)})
	m = next.(Model)

	snap = m.Snapshot()
	assert.False(t, snap.IsLoading)
	require.NotNil(t, snap.LastResult)
	assert.Equal(t, "Howrah", snap.LastResult.Region)
}

func TestFailure_ShowsErrorIndicator(t *testing.T) {
	p := predict.NewMockPredictor()
	p.PredictFn = func(context.Context, model.PredictionQuery) (model.PredictionResult, error) {
		return model.PredictionResult{}, &predict.Error{Kind: model.ErrorKindHTTP, StatusCode: 500}
	}

	r := newRenderer()
	m := started(t, r, newTestModel(t, p))
	m = send(r, m, tuitest.KeyEnter())

	snap := m.Snapshot()
	assert.False(t, snap.IsLoading)
	assert.Nil(t, snap.LastResult)
	require.NotNil(t, snap.LastError)
	assert.Equal(t, model.ErrorKindHTTP, snap.LastError.Kind)
	assert.Equal(t, 500, snap.LastError.StatusCode)

	assert.Contains(t, tuitest.StripANSI(m.View()), "Kolkata: HTTP 500")
}

func TestChartControls(t *testing.T) {
	r := newRenderer()
	m := started(t, r, newTestModel(t, predict.NewMockPredictor()))

	assert.Equal(t, chart.ModeHistorical, m.mode)
	assert.Equal(t, chart.KindLine, m.kind)

	m = send(r, m, tuitest.KeyTab())
	assert.Equal(t, chart.ModeForecast, m.mode)
	assert.Equal(t, model.SampleForecast(), m.chartPanel.Points())
	assert.Contains(t, tuitest.StripANSI(m.View()), "Forecast")

	m = send(r, m, tuitest.KeyPress("c"))
	assert.Equal(t, chart.KindBar, m.kind)

	m = send(r, m, tuitest.KeyTab(), tuitest.KeyPress("c"))
	assert.Equal(t, chart.ModeHistorical, m.mode)
	assert.Equal(t, chart.KindArea, m.kind)
	assert.Equal(t, model.SampleHistorical(), m.chartPanel.Points())
}

func TestPlayback_TickAdvancesAndReselects(t *testing.T) {
	p := readings(700, 650, 30)
	r := newRenderer()
	m := started(t, r, newTestModel(t, p))
	m = send(r, m, tuitest.KeyEnter())
	require.Len(t, p.Calls(), 1)

	m = send(r, m, tuitest.KeySpace())
	require.True(t, m.timeline.Playing())
	gen := m.playGen

	m = send(r, m, playbackTickMsg{gen: gen})
	assert.Equal(t, testDate.AddDate(0, 0, 1), m.timeline.Date())

	calls := p.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, "Kolkata", calls[1].Region)
	assert.Equal(t, "2025-04-16", calls[1].DateString())

	// A tick from an earlier play session is ignored.
	m = send(r, m, playbackTickMsg{gen: gen - 1})
	assert.Equal(t, testDate.AddDate(0, 0, 1), m.timeline.Date())

	m = send(r, m, tuitest.KeySpace())
	assert.False(t, m.timeline.Playing())
	m = send(r, m, playbackTickMsg{gen: m.playGen})
	assert.Equal(t, testDate.AddDate(0, 0, 1), m.timeline.Date(), "paused timeline does not advance")
	assert.Len(t, p.Calls(), 2)
}

func TestPlayback_TickBeforeSelection(t *testing.T) {
	p := predict.NewMockPredictor()
	r := newRenderer()
	m := started(t, r, newTestModel(t, p))

	m = send(r, m, tuitest.KeySpace())
	m = send(r, m, playbackTickMsg{gen: m.playGen})

	assert.Equal(t, testDate.AddDate(0, 0, 1), m.timeline.Date())
	assert.Empty(t, p.Calls(), "nothing to reselect yet")
}

func TestPlayback_StepAndSpeedKeys(t *testing.T) {
	p := predict.NewMockPredictor()
	r := newRenderer()
	m := started(t, r, newTestModel(t, p))
	m = send(r, m, tuitest.KeyEnter())

	m = send(r, m, tuitest.KeyPress("]"))
	assert.Equal(t, testDate.AddDate(0, 0, 1), m.timeline.Date())
	m = send(r, m, tuitest.KeyPress("["))
	assert.Equal(t, testDate, m.timeline.Date())
	assert.False(t, m.timeline.Playing(), "stepping does not start playback")

	calls := p.Calls()
	require.Len(t, calls, 3)
	assert.Equal(t, "2025-04-16", calls[1].DateString())
	assert.Equal(t, "2025-04-15", calls[2].DateString())

	m = send(r, m, tuitest.KeyPress("+"))
	assert.InDelta(t, 1.5, m.timeline.Speed(), 0.001)
	m = send(r, m, tuitest.KeyPress("-"), tuitest.KeyPress("-"), tuitest.KeyPress("-"))
	assert.InDelta(t, playback.MinSpeed, m.timeline.Speed(), 0.001)
	assert.Contains(t, tuitest.StripANSI(m.View()), "0.5x")
}

func TestShellToggles(t *testing.T) {
	r := newRenderer()
	m := started(t, r, newTestModel(t, predict.NewMockPredictor()))

	m = send(r, m, tuitest.KeyPress("f"))
	assert.True(t, m.fullscreen)
	m = send(r, m, tuitest.KeyEsc())
	assert.False(t, m.fullscreen)
	m = send(r, m, tuitest.KeyPress("f"), tuitest.KeyPress("f"))
	assert.False(t, m.fullscreen)

	assert.Equal(t, components.ViewMap, m.picker.ViewMode())
	m = send(r, m, tuitest.KeyPress("v"))
	assert.Equal(t, components.ViewList, m.picker.ViewMode())

	m = send(r, m, tuitest.KeyPress("z"))
	assert.InDelta(t, 1.2, m.picker.Zoom(), 0.001)
	m = send(r, m, tuitest.KeyPress("Z"), tuitest.KeyPress("Z"), tuitest.KeyPress("Z"))
	assert.InDelta(t, 0.6, m.picker.Zoom(), 0.001)
	m = send(r, m, tuitest.KeyPress("Z"), tuitest.KeyPress("Z"))
	assert.InDelta(t, 0.5, m.picker.Zoom(), 0.001)
}

func TestRefresh(t *testing.T) {
	p := predict.NewMockPredictor()
	r := newRenderer()
	m := started(t, r, newTestModel(t, p))

	m = send(r, m, tuitest.KeyPress("r"))
	assert.Equal(t, "Select a region first", m.notice)
	assert.Empty(t, p.Calls())

	m = send(r, m, tuitest.KeyDown(), tuitest.KeyEnter(), tuitest.KeyPress("r"))
	calls := p.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, calls[0], calls[1], "refresh re-issues the same query")
	assert.Equal(t, "Howrah", calls[1].Region)
	assert.Empty(t, m.notice)
}

func TestExport(t *testing.T) {
	dir := t.TempDir()
	r := newRenderer()
	m := started(t, r, newTestModel(t, predict.NewMockPredictor(), WithExportDir(dir)))

	m = send(r, m, tuitest.KeyPress("e"))

	want := filepath.Join(dir, "global-historical-line.png")
	assert.Equal(t, "Exported "+want, m.notice)

	info, err := os.Stat(want)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestExport_NothingToExport(t *testing.T) {
	r := newRenderer()
	m := newTestModel(t, predict.NewMockPredictor())

	m = send(r, m, tuitest.KeyPress("e"))
	assert.Equal(t, "Nothing to export", m.notice)
}

func TestSeries(t *testing.T) {
	t.Run("load failure leaves a notice", func(t *testing.T) {
		r := newRenderer()
		m := started(t, r, newTestModel(t, predict.NewMockPredictor(), WithSeries(failingSeries{})))

		assert.Empty(t, m.chartPanel.Points())
		assert.Equal(t, "Chart data unavailable for Global", m.notice)
	})

	t.Run("series for another region are ignored", func(t *testing.T) {
		m := newTestModel(t, predict.NewMockPredictor())

		next, _ := m.Update(seriesLoadedMsg{region: "Howrah", pair: dataset.Pair{Historical: model.SampleHistorical()}})
		m = next.(Model)
		assert.Empty(t, m.chartPanel.Points())
	})
}

func TestHelpAndQuit(t *testing.T) {
	r := newRenderer()
	m := started(t, r, newTestModel(t, predict.NewMockPredictor()))

	m = send(r, m, tuitest.KeyPress("?"))
	assert.Equal(t, StateHelp, m.state)
	help := tuitest.StripANSI(m.View())
	assert.Contains(t, help, "loadmap - Help")
	assert.Contains(t, help, "play/pause")

	// Dashboard keys are inert while help is open.
	m = send(r, m, tuitest.KeyPress("f"))
	assert.False(t, m.fullscreen)

	m = send(r, m, tuitest.KeyEsc())
	assert.Equal(t, StateDashboard, m.state)

	m = send(r, m, tuitest.KeyPress("q"))
	assert.True(t, m.quitting)
	assert.True(t, r.Quit())
	assert.Empty(t, m.View())
}

func TestUnknownInitialRegion(t *testing.T) {
	p := predict.NewMockPredictor()
	m := started(t, newRenderer(), newTestModel(t, p, WithInitialRegion("Atlantis")))

	assert.Equal(t, model.GlobalRegion, m.Snapshot().SelectedRegion)
	assert.Contains(t, m.notice, "unknown region")
	assert.Empty(t, p.Calls())
}
