// Package themes holds the colour palettes and styles shared by the dashboard panels.
package themes

import "github.com/charmbracelet/lipgloss"

// Theme defines the visual style for the TUI.
type Theme struct {
	Selected      lipgloss.Style
	StatusPending lipgloss.Style
	StatusInfo    lipgloss.Style
	StatusError   lipgloss.Style
	StatusWarning lipgloss.Style
	StatusSuccess lipgloss.Style
	Title         lipgloss.Style
	Subtitle      lipgloss.Style
	Normal        lipgloss.Style
	Bold          lipgloss.Style
	Box           lipgloss.Style
	BorderedBox   lipgloss.Style
	MapLand       lipgloss.Style
	MapMarker     lipgloss.Style
	Primary       lipgloss.Color
	Muted         lipgloss.Color

	// Series colours, matching the exported charts.
	Demand   lipgloss.Color
	Supply   lipgloss.Color
	Blackout lipgloss.Color
}

// palette is the handful of colours a theme is derived from.
type palette struct {
	text, subtle, muted, border, base lipgloss.Color
	accent, land                      lipgloss.Color
	ok, warn, bad, info               lipgloss.Color
	demand, supply, blackout          lipgloss.Color
}

func newTheme(p palette) Theme {
	status := func(c lipgloss.Color) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(c).Bold(true)
	}
	text := lipgloss.NewStyle().Foreground(p.text)

	return Theme{
		Primary:  p.accent,
		Muted:    p.muted,
		Demand:   p.demand,
		Supply:   p.supply,
		Blackout: p.blackout,

		Title:    text.Bold(true).MarginBottom(1),
		Subtitle: lipgloss.NewStyle().Foreground(p.subtle),
		Normal:   text,
		Bold:     text.Bold(true),
		Selected: lipgloss.NewStyle().Background(p.accent).Foreground(p.base).Bold(true),

		Box:         lipgloss.NewStyle().Padding(0, 1),
		BorderedBox: lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(p.border),
		MapLand:     lipgloss.NewStyle().Foreground(p.land),
		MapMarker:   status(p.supply),

		StatusSuccess: status(p.ok),
		StatusWarning: status(p.warn),
		StatusError:   status(p.bad),
		StatusInfo:    status(p.info),
		StatusPending: lipgloss.NewStyle().Foreground(p.muted).Italic(true),
	}
}

// Default uses the orange/blue/red series colours of the exported charts.
var Default = newTheme(palette{
	text:     "#fafafa",
	subtle:   "#a3a3a3",
	muted:    "#737373",
	border:   "#404040",
	base:     "#1a1a1a",
	accent:   "#f97316",
	land:     "#2f4f3a",
	ok:       "#10b981",
	warn:     "#f59e0b",
	bad:      "#ef4444",
	info:     "#3b82f6",
	demand:   "#f97316",
	supply:   "#3b82f6",
	blackout: "#ef4444",
})

// CatppuccinMocha is the Catppuccin Mocha theme.
var CatppuccinMocha = newTheme(palette{
	text:     "#cdd6f4",
	subtle:   "#a6adc8",
	muted:    "#6c7086",
	border:   "#45475a",
	base:     "#1e1e2e",
	accent:   "#fab387",
	land:     "#45475a",
	ok:       "#a6e3a1",
	warn:     "#f9e2af",
	bad:      "#f38ba8",
	info:     "#89dceb",
	demand:   "#fab387",
	supply:   "#89b4fa",
	blackout: "#f38ba8",
})

// GetTheme returns a theme by name, falling back to Default.
func GetTheme(name string) Theme {
	switch name {
	case "catppuccin-mocha":
		return CatppuccinMocha
	default:
		return Default
	}
}
