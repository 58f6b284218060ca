package tui

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/Sayan30092004/load-main/internal/chart"
	"github.com/Sayan30092004/load-main/internal/dataset"
	"github.com/Sayan30092004/load-main/internal/geo"
	"github.com/Sayan30092004/load-main/internal/model"
	"github.com/Sayan30092004/load-main/internal/playback"
	"github.com/Sayan30092004/load-main/internal/tui/components"
	"github.com/Sayan30092004/load-main/internal/tui/themes"
	"github.com/Sayan30092004/load-main/internal/workflow"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// Errors returned by New.
var (
	ErrNoController = errors.New("dashboard requires a workflow controller")
	ErrNoTimeline   = errors.New("dashboard requires a playback timeline")
)

// State represents the current state of the TUI.
type State int

const (
	StateDashboard State = iota
	StateHelp
)

// Model holds the main TUI state.
type Model struct {
	theme        themes.Theme
	series       dataset.Provider
	controller   *workflow.Controller
	timeline     *playback.Timeline
	pair         dataset.Pair
	snapshot     model.WorkflowState
	chartRegion  string
	notice       string
	config       Config
	mode         chart.Mode
	kind         chart.Kind
	keymap       KeyMap
	help         help.Model
	spinner      spinner.Model
	picker       components.RegionPickerModel
	metricsPanel components.MetricsPanelModel
	chartPanel   components.ChartPanelModel
	controls     components.TimeControlsModel
	width        int
	height       int
	playGen      int
	state        State
	fullscreen   bool
	quitting     bool
}

// New creates the dashboard model.
func New(opts ...Option) (Model, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Controller == nil {
		return Model{}, ErrNoController
	}
	if cfg.Timeline == nil {
		return Model{}, ErrNoTimeline
	}
	return newModel(cfg), nil
}

// newModel creates a new model with the given configuration.
func newModel(cfg Config) Model {
	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	sp.Style = cfg.Theme.StatusPending

	m := Model{
		state:        StateDashboard,
		config:       cfg,
		keymap:       DefaultKeyMap(),
		theme:        cfg.Theme,
		series:       cfg.Series,
		controller:   cfg.Controller,
		timeline:     cfg.Timeline,
		mode:         cfg.ChartMode,
		kind:         cfg.ChartKind,
		help:         help.New(),
		spinner:      sp,
		picker:       components.NewRegionPicker(cfg.Controller.Regions(), cfg.Overlay, cfg.Theme),
		metricsPanel: components.NewMetricsPanel(cfg.Theme),
		chartPanel:   components.NewChartPanel(cfg.Theme, cfg.ChartMode, cfg.ChartKind),
		controls:     components.NewTimeControls(cfg.Theme),
		width:        cfg.Width,
		height:       cfg.Height,
	}
	m.syncSnapshot()
	m.chartRegion = m.snapshot.SelectedRegion
	m.controls.Sync(m.timeline)
	return m
}

// Init starts the spinner, loads the chart series and issues the initial selection.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.spinner.Tick,
		loadSeriesCmd(m.series, m.chartRegion),
	}
	if m.config.InitialRegion != "" {
		cmds = append(cmds, func() tea.Msg {
			return components.RegionChosenMsg{Region: m.config.InitialRegion}
		})
	}
	return tea.Batch(cmds...)
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case components.RegionChosenMsg:
		return m, m.selectRegion(msg.Region)

	case outcomeMsg:
		disp := m.controller.Apply(msg.outcome)
		if disp != workflow.Applied {
			slog.Debug("Prediction not applied",
				"query", msg.outcome.Ticket.Query.String(),
				"disposition", disp.String())
		}
		m.syncSnapshot()
		return m, nil

	case seriesLoadedMsg:
		if msg.region != m.chartRegion {
			return m, nil
		}
		if msg.err != nil {
			slog.Warn("Failed to load chart series", "region", msg.region, "error", msg.err)
			m.notice = "Chart data unavailable for " + msg.region
			return m, nil
		}
		m.pair = msg.pair
		m.refreshChart()
		return m, nil

	case playbackTickMsg:
		if msg.gen != m.playGen || !m.timeline.Playing() {
			return m, nil
		}
		m.timeline.StepForward()
		m.controls.Sync(m.timeline)
		return m, tea.Batch(m.reselect(), m.nextTick())

	case exportedMsg:
		if msg.err != nil {
			slog.Error("Chart export failed", "error", msg.err)
			m.notice = "Export failed: " + msg.err.Error()
			return m, nil
		}
		slog.Info("Chart exported", "path", msg.path)
		m.notice = "Exported " + msg.path
		return m, nil
	}

	return m, nil
}

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.state == StateHelp {
		return m.renderHelp()
	}

	if m.fullscreen {
		return m.renderFullscreen()
	}

	// Responsive layout based on terminal size
	if m.width < 80 {
		return m.renderCompactView()
	}

	if m.width < 120 {
		return m.renderMediumView()
	}

	return m.renderFullView()
}

// handleKey dispatches key presses. The help screen only answers to close and quit.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keymap.Quit) {
		m.quitting = true
		return m, tea.Quit
	}

	if m.state == StateHelp {
		if key.Matches(msg, m.keymap.Help, m.keymap.Close) {
			m.state = StateDashboard
		}
		return m, nil
	}

	m.notice = ""

	switch {
	case key.Matches(msg, m.keymap.Help):
		m.state = StateHelp

	case key.Matches(msg, m.keymap.Up, m.keymap.Down, m.keymap.Select):
		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)
		return m, cmd

	case key.Matches(msg, m.keymap.CycleMode):
		m.mode = m.mode.Next()
		m.refreshChart()

	case key.Matches(msg, m.keymap.CycleKind):
		m.kind = m.kind.Next()
		m.refreshChart()

	case key.Matches(msg, m.keymap.PlayPause):
		if m.timeline.Toggle() == playback.Playing {
			m.playGen++
			m.controls.Sync(m.timeline)
			return m, m.nextTick()
		}
		m.controls.Sync(m.timeline)

	case key.Matches(msg, m.keymap.StepForward):
		m.timeline.StepForward()
		m.controls.Sync(m.timeline)
		return m, m.reselect()

	case key.Matches(msg, m.keymap.StepBack):
		m.timeline.StepBackward()
		m.controls.Sync(m.timeline)
		return m, m.reselect()

	case key.Matches(msg, m.keymap.Faster):
		m.timeline.Faster()
		m.controls.Sync(m.timeline)

	case key.Matches(msg, m.keymap.Slower):
		m.timeline.Slower()
		m.controls.Sync(m.timeline)

	case key.Matches(msg, m.keymap.ZoomIn):
		m.picker.SetZoom(m.picker.Zoom() + geo.ZoomStep)

	case key.Matches(msg, m.keymap.ZoomOut):
		m.picker.SetZoom(m.picker.Zoom() - geo.ZoomStep)

	case key.Matches(msg, m.keymap.Fullscreen):
		m.fullscreen = !m.fullscreen

	case key.Matches(msg, m.keymap.Close):
		m.fullscreen = false

	case key.Matches(msg, m.keymap.ToggleView):
		m.picker.ToggleView()

	case key.Matches(msg, m.keymap.Refresh):
		if _, ok := m.controller.Current(); !ok {
			m.notice = "Select a region first"
			return m, nil
		}
		return m, m.reselect()

	case key.Matches(msg, m.keymap.Export):
		points := m.chartPanel.Points()
		if len(points) == 0 {
			m.notice = "Nothing to export"
			return m, nil
		}
		return m, exportCmd(m.config.ExportDir, m.chartRegion, m.mode, m.kind, points)
	}

	return m, nil
}

// selectRegion starts a prediction cycle for region at the timeline date. The loading
// state is visible before the request is issued.
func (m *Model) selectRegion(region string) tea.Cmd {
	ticket, err := m.controller.Select(region, m.timeline.Date())
	if err != nil {
		slog.Warn("Selection rejected", "region", region, "error", err)
		m.notice = err.Error()
		return nil
	}
	m.syncSnapshot()
	m.picker.SetSelected(region)

	cmds := []tea.Cmd{resolveCmd(m.controller, ticket)}
	if region != m.chartRegion {
		m.chartRegion = region
		cmds = append(cmds, loadSeriesCmd(m.series, region))
	}
	return tea.Batch(cmds...)
}

// reselect re-issues the current region at the timeline date. It does nothing before
// the first selection.
func (m *Model) reselect() tea.Cmd {
	current, ok := m.controller.Current()
	if !ok {
		return nil
	}
	return m.selectRegion(current.Query.Region)
}

func (m Model) nextTick() tea.Cmd {
	return tickCmd(m.timeline.Interval(m.config.PlaybackBase), m.playGen)
}

func (m *Model) syncSnapshot() {
	m.snapshot = m.controller.Snapshot()
	m.metricsPanel.SetState(m.snapshot)
}

func (m *Model) refreshChart() {
	points := chart.SelectDataset(m.mode, m.pair.Historical, m.pair.Forecast)
	m.chartPanel.SetData(m.chartRegion, m.mode, m.kind, points)
}

// Snapshot returns the workflow state the dashboard is currently showing.
func (m Model) Snapshot() model.WorkflowState {
	return m.snapshot
}

func (m Model) statusText() string {
	if m.snapshot.IsLoading {
		return fmt.Sprintf("%s Loading %s…", m.spinner.View(), m.snapshot.SelectedRegion)
	}
	return fmt.Sprintf("%s · %s", m.snapshot.SelectedRegion, model.FormatDate(m.timeline.Date()))
}
