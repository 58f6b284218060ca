package components

import (
	"fmt"
	"strings"
	"time"

	"github.com/Sayan30092004/load-main/internal/metrics"
	"github.com/Sayan30092004/load-main/internal/model"
	"github.com/Sayan30092004/load-main/internal/tui/themes"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// LongDateLayout is the date format shown to users.
const LongDateLayout = "January 2, 2006"

// MetricsPanelModel shows demand, supply and blackout risk for the selected region.
type MetricsPanelModel struct {
	theme     themes.Theme
	summary   *metrics.Summary
	lastError *model.ErrorInfo
	region    string
	shownDate string
	loadBar   progress.Model
	riskBar   progress.Model
	width     int
	height    int
	isLoading bool
	compact   bool
}

// NewMetricsPanel creates an empty metrics panel.
func NewMetricsPanel(theme themes.Theme) MetricsPanelModel {
	loadBar := progress.New(progress.WithSolidFill(string(theme.Demand)))
	loadBar.ShowPercentage = false
	riskBar := progress.New(progress.WithSolidFill(string(theme.Blackout)))
	riskBar.ShowPercentage = false

	return MetricsPanelModel{
		theme:   theme,
		loadBar: loadBar,
		riskBar: riskBar,
		region:  model.GlobalRegion,
	}
}

// Update handles messages.
func (m MetricsPanelModel) Update(msg tea.Msg) (MetricsPanelModel, tea.Cmd) {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		m.Resize(msg.Width, msg.Height)
	}
	return m, nil
}

// SetState refreshes the panel from a workflow snapshot.
func (m *MetricsPanelModel) SetState(s model.WorkflowState) {
	m.region = s.SelectedRegion
	m.isLoading = s.IsLoading
	m.lastError = s.LastError
	m.summary = nil
	m.shownDate = ""
	if s.LastResult != nil {
		m.shownDate = s.LastResult.Date
		sum := metrics.Summarize(*s.LastResult, s.UpdatedAt)
		m.summary = &sum
	}
}

// Summary returns the summary being shown, if any.
func (m MetricsPanelModel) Summary() (metrics.Summary, bool) {
	if m.summary == nil {
		return metrics.Summary{}, false
	}
	return *m.summary, true
}

// SetCompact toggles the single-line rendering.
func (m *MetricsPanelModel) SetCompact(compact bool) {
	m.compact = compact
}

// Resize sets the panel size.
func (m *MetricsPanelModel) Resize(width, height int) {
	m.width = width
	m.height = height
	barWidth := max(min(width-2, 40), 4)
	m.loadBar.Width = barWidth
	m.riskBar.Width = barWidth
}

// View renders the metrics panel.
func (m MetricsPanelModel) View() string {
	if m.compact {
		return m.renderCompact()
	}
	return m.renderFull()
}

func (m MetricsPanelModel) renderCompact() string {
	if m.summary == nil {
		return m.theme.Box.Render(fmt.Sprintf("%s · %s", m.region, m.placeholder()))
	}
	s := m.summary
	line := fmt.Sprintf("%s · D %.0f · S %.0f · Risk %s %s",
		s.Region, s.Demand, s.Supply,
		metrics.Percent(s.BlackoutProbability),
		m.riskBadge(s.Risk))
	return m.theme.Box.Width(m.width).MaxWidth(m.width).Render(line)
}

func (m MetricsPanelModel) renderFull() string {
	title := m.theme.Subtitle.Render("Metrics · " + m.region)

	if m.summary == nil {
		return lipgloss.JoinVertical(
			lipgloss.Left,
			title,
			"",
			lipgloss.NewStyle().Foreground(m.theme.Muted).Render(m.placeholder()),
		)
	}

	s := m.summary
	// A kept result may belong to an earlier selection
	var stale string
	if s.Region != m.region {
		title = m.theme.Subtitle.Render("Metrics · " + s.Region)
		stale = lipgloss.NewStyle().Foreground(m.theme.Muted).Render(
			fmt.Sprintf("Showing %s · %s, %s pending", s.Region, m.shownDate, m.region))
	}
	demand := lipgloss.NewStyle().Foreground(m.theme.Demand)
	supply := lipgloss.NewStyle().Foreground(m.theme.Supply)

	balance := fmt.Sprintf("%+.1f surplus", s.Balance)
	balanceStyle := m.theme.StatusSuccess
	if s.Deficit() {
		balance = fmt.Sprintf("%.1f deficit", -s.Balance)
		balanceStyle = m.theme.StatusWarning
	}

	lines := []string{
		title,
		stale,
		fmt.Sprintf("%-10s %s", "Demand", demand.Render(fmt.Sprintf("%.1f", s.Demand))),
		fmt.Sprintf("%-10s %s", "Supply", supply.Render(fmt.Sprintf("%.1f", s.Supply))),
		fmt.Sprintf("%-10s %s", "Balance", balanceStyle.Render(balance)),
		m.loadBar.ViewAs(loadRatio(s.Demand, s.Supply)),
		"",
		fmt.Sprintf("%-10s %s %s", "Blackout", metrics.Percent(s.BlackoutProbability), m.riskBadge(s.Risk)),
		m.riskBar.ViewAs(s.BlackoutProbability / 100),
	}
	if s.Price != nil {
		lines = append(lines, "", fmt.Sprintf("%-10s %.2f", "Price", *s.Price))
	}

	footer := []string{""}
	if !s.UpdatedAt.IsZero() {
		footer = append(footer, lipgloss.NewStyle().Foreground(m.theme.Muted).Render(
			"Last updated "+s.UpdatedAt.Local().Format("15:04:05")))
	}
	if m.isLoading {
		footer = append(footer, m.theme.StatusPending.Render("Refreshing…"))
	}
	lines = append(lines, footer...)

	return lipgloss.NewStyle().
		Width(m.width).
		MaxWidth(m.width).
		Render(strings.Join(lines, "\n"))
}

func (m MetricsPanelModel) placeholder() string {
	switch {
	case m.isLoading:
		return "Fetching prediction…"
	case m.lastError != nil:
		return "No data: " + string(m.lastError.Kind)
	case m.region == model.GlobalRegion:
		return "Select a region to see its forecast"
	default:
		return "No data"
	}
}

func (m MetricsPanelModel) riskBadge(level metrics.RiskLevel) string {
	if level == metrics.RiskElevated {
		return m.theme.StatusError.Render("▲ elevated")
	}
	return m.theme.StatusSuccess.Render("● normal")
}

// loadRatio is demand as a fraction of supply, capped at 1.
func loadRatio(demand, supply float64) float64 {
	if supply <= 0 {
		if demand > 0 {
			return 1
		}
		return 0
	}
	return min(max(demand/supply, 0), 1)
}

// FormatLongDate renders a date as "April 15, 2025".
func FormatLongDate(t time.Time) string {
	return t.Format(LongDateLayout)
}
