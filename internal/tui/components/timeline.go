package components

import (
	"fmt"
	"time"

	"github.com/Sayan30092004/load-main/internal/playback"
	"github.com/Sayan30092004/load-main/internal/tui/themes"
	"github.com/charmbracelet/lipgloss"
)

// TimeControlsModel renders the playback date, state and speed.
type TimeControlsModel struct {
	theme   themes.Theme
	date    time.Time
	speed   float64
	width   int
	playing bool
}

// NewTimeControls creates the controls panel.
func NewTimeControls(theme themes.Theme) TimeControlsModel {
	return TimeControlsModel{theme: theme, speed: 1}
}

// Sync copies the timeline position into the panel.
func (m *TimeControlsModel) Sync(t *playback.Timeline) {
	m.date = t.Date()
	m.speed = t.Speed()
	m.playing = t.Playing()
}

// Resize sets the panel width.
func (m *TimeControlsModel) Resize(width int) {
	m.width = width
}

// View renders the controls.
func (m TimeControlsModel) View() string {
	icon := m.theme.StatusPending.Render("⏸ paused")
	if m.playing {
		icon = m.theme.StatusSuccess.Render("▶ playing")
	}
	line := fmt.Sprintf("%s  %s  %s  %s",
		lipgloss.NewStyle().Foreground(m.theme.Muted).Render("◀ ["),
		m.theme.Bold.Render(FormatLongDate(m.date)),
		lipgloss.NewStyle().Foreground(m.theme.Muted).Render("] ▶"),
		fmt.Sprintf("%s  %.1fx", icon, m.speed),
	)
	return lipgloss.NewStyle().Width(m.width).MaxWidth(m.width).Render(line)
}
