package tui

import (
	"fmt"
	"strings"

	"github.com/Sayan30092004/load-main/internal/model"
	"github.com/charmbracelet/lipgloss"
)

// renderCompactView stacks the metrics summary above the picker for narrow terminals.
// The chart is only reachable through fullscreen here.
func (m Model) renderCompactView() string {
	// Account for borders (2) and status bar (1)
	usableWidth := m.width - 2
	usableHeight := m.height - 3

	m.metricsPanel.SetCompact(true)
	m.metricsPanel.Resize(usableWidth, 2)
	metrics := m.metricsPanel.View()

	m.controls.Resize(usableWidth)
	controls := m.controls.View()

	pickerHeight := max(usableHeight-lipgloss.Height(metrics)-lipgloss.Height(controls)-1, 3)
	m.picker.Resize(usableWidth, pickerHeight)

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		metrics,
		"",
		m.picker.View(),
		controls,
	)

	return m.wrapWithBorder(content)
}

// renderMediumView renders the layout for medium terminals.
func (m Model) renderMediumView() string {
	// Left: Region picker (40%)
	// Right: Metrics over chart (60%)
	// Account for: border (2) + separator (3) = 5 total
	totalUsableWidth := m.width - 5
	leftWidth := int(float64(totalUsableWidth) * 0.4)
	rightWidth := totalUsableWidth - leftWidth

	// Account for status bar (1) + borders (2) + time controls (1) = 4 total
	usableHeight := m.height - 4

	m.picker.Resize(leftWidth, usableHeight)
	left := m.picker.View()

	m.metricsPanel.SetCompact(true)
	m.metricsPanel.Resize(rightWidth, 2)
	metrics := m.metricsPanel.View()

	m.chartPanel.Resize(rightWidth, max(usableHeight-lipgloss.Height(metrics)-1, 6))
	right := lipgloss.JoinVertical(
		lipgloss.Left,
		metrics,
		m.theme.Normal.Render(strings.Repeat("─", rightWidth)),
		m.chartPanel.View(),
	)

	m.controls.Resize(m.width - 2)
	content := lipgloss.JoinVertical(
		lipgloss.Left,
		lipgloss.JoinHorizontal(
			lipgloss.Top,
			left,
			m.theme.Normal.Render(" │ "),
			right,
		),
		m.controls.View(),
	)

	return m.wrapWithBorder(content)
}

// renderFullView renders the full layout for wide terminals.
func (m Model) renderFullView() string {
	// Three column layout
	// Left: Region picker (28%)
	// Middle: Chart (47%)
	// Right: Metrics (25%)
	// Account for: border (2) + 2 separators (6) = 8 total
	totalUsableWidth := m.width - 8
	leftWidth := int(float64(totalUsableWidth) * 0.28)
	middleWidth := int(float64(totalUsableWidth) * 0.47)
	rightWidth := totalUsableWidth - leftWidth - middleWidth

	// Account for status bar (1) + borders (2) + time controls (1) = 4 total
	usableHeight := m.height - 4

	m.picker.Resize(leftWidth, usableHeight)
	m.chartPanel.Resize(middleWidth, usableHeight)

	m.metricsPanel.SetCompact(false)
	m.metricsPanel.Resize(rightWidth, usableHeight)

	m.controls.Resize(m.width - 2)
	content := lipgloss.JoinVertical(
		lipgloss.Left,
		lipgloss.JoinHorizontal(
			lipgloss.Top,
			m.picker.View(),
			m.theme.Normal.Render(" │ "),
			m.chartPanel.View(),
			m.theme.Normal.Render(" │ "),
			m.metricsPanel.View(),
		),
		m.controls.View(),
	)

	return m.wrapWithBorder(content)
}

// renderFullscreen maximises the chart panel.
func (m Model) renderFullscreen() string {
	usableWidth := m.width - 2
	usableHeight := m.height - 4

	m.chartPanel.Resize(usableWidth, usableHeight)
	m.controls.Resize(usableWidth)

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		m.chartPanel.View(),
		m.controls.View(),
	)

	return m.wrapWithBorder(content)
}

// renderHelp renders the help screen.
func (m Model) renderHelp() string {
	title := m.theme.Title.Render("loadmap - Help")

	h := m.help
	h.ShowAll = true
	h.Width = max(m.width-8, 20)
	h.Styles.FullKey = lipgloss.NewStyle().Foreground(m.theme.Primary)
	h.Styles.FullDesc = m.theme.Normal
	h.Styles.FullSeparator = lipgloss.NewStyle().Foreground(m.theme.Muted)

	footer := lipgloss.NewStyle().Foreground(m.theme.Muted).Render("Press ? or Esc to close help")

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		m.theme.BorderedBox.
			Padding(1, 2).
			MaxWidth(m.width).
			MaxHeight(m.height).
			Render(
				lipgloss.JoinVertical(
					lipgloss.Left,
					title,
					"",
					h.View(m.keymap),
					"",
					footer,
				),
			),
	)
}

// wrapWithBorder adds a border around content.
func (m Model) wrapWithBorder(content string) string {
	// Add status bar at bottom
	statusBar := m.renderStatusBar()

	// Keep the status bar visible when a panel overflows
	fullContent := lipgloss.JoinVertical(
		lipgloss.Left,
		lipgloss.NewStyle().MaxHeight(max(m.height-3, 1)).Render(content),
		statusBar,
	)

	return m.theme.BorderedBox.
		Width(m.width - 2).
		MaxWidth(m.width).
		Height(m.height - 2).
		MaxHeight(m.height).
		Render(fullContent)
}

// renderStatusBar renders the bottom status bar.
func (m Model) renderStatusBar() string {
	// Left: selection or loading spinner
	left := m.theme.StatusInfo.Render(m.statusText())

	// Center: transient notice, else the last failure
	var center string
	switch {
	case m.notice != "":
		center = m.theme.StatusWarning.Render(m.notice)
	case m.snapshot.LastError != nil:
		center = m.theme.StatusError.Render(errorIndicator(*m.snapshot.LastError))
	}

	// Right: help hint
	right := lipgloss.NewStyle().Foreground(m.theme.Muted).Render("? Help")

	// Calculate spacing
	totalWidth := m.width - 2 // Account for borders
	spacing := max(totalWidth-lipgloss.Width(left)-lipgloss.Width(center)-lipgloss.Width(right), 2)
	leftPad := spacing / 2
	rightPad := spacing - leftPad

	status := left + strings.Repeat(" ", leftPad) + center + strings.Repeat(" ", rightPad) + right

	return m.theme.Normal.
		Width(totalWidth).
		MaxWidth(totalWidth).
		Render(status)
}

// errorIndicator is the short form of a failure shown in the status bar.
func errorIndicator(e model.ErrorInfo) string {
	if e.Kind == model.ErrorKindHTTP {
		return fmt.Sprintf("⚠ %s: HTTP %d", e.Region, e.StatusCode)
	}
	return fmt.Sprintf("⚠ %s: %s", e.Region, strings.ReplaceAll(string(e.Kind), "_", " "))
}
