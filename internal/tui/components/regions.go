package components

import (
	"fmt"
	"strings"

	"github.com/Sayan30092004/load-main/internal/geo"
	"github.com/Sayan30092004/load-main/internal/model"
	"github.com/Sayan30092004/load-main/internal/tui/themes"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ViewMode is how the region picker presents regions.
type ViewMode int

// Picker view modes.
const (
	ViewMap ViewMode = iota
	ViewList
)

func (v ViewMode) String() string {
	if v == ViewList {
		return "list"
	}
	return "map"
}

const (
	markerRune   = '●'
	cursorRune   = '◉'
	landRune     = '·'
	minMapWidth  = 16
	minMapHeight = 6
)

// RegionPickerModel lets the user move between regions on a map or in a list.
type RegionPickerModel struct {
	theme    themes.Theme
	overlay  *geo.Overlay
	selected string
	regions  []model.Region
	zoom     float64
	cursor   int
	width    int
	height   int
	view     ViewMode
}

// NewRegionPicker creates a picker over regions. overlay may be nil.
func NewRegionPicker(regions []model.Region, overlay *geo.Overlay, theme themes.Theme) RegionPickerModel {
	return RegionPickerModel{
		theme:   theme,
		overlay: overlay,
		regions: regions,
		zoom:    1,
		view:    ViewMap,
	}
}

// Update handles cursor movement and selection.
func (m RegionPickerModel) Update(msg tea.Msg) (RegionPickerModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "j", "down":
			m.MoveDown()
		case "k", "up":
			m.MoveUp()
		case "enter":
			if r, ok := m.Highlighted(); ok {
				return m, func() tea.Msg {
					return RegionChosenMsg{Region: r.Name}
				}
			}
		}

	case tea.WindowSizeMsg:
		m.Resize(msg.Width, msg.Height)
	}

	return m, nil
}

// MoveUp moves the cursor to the previous region, wrapping around.
func (m *RegionPickerModel) MoveUp() {
	if len(m.regions) == 0 {
		return
	}
	m.cursor = (m.cursor - 1 + len(m.regions)) % len(m.regions)
}

// MoveDown moves the cursor to the next region, wrapping around.
func (m *RegionPickerModel) MoveDown() {
	if len(m.regions) == 0 {
		return
	}
	m.cursor = (m.cursor + 1) % len(m.regions)
}

// Highlighted returns the region under the cursor.
func (m RegionPickerModel) Highlighted() (model.Region, bool) {
	if len(m.regions) == 0 {
		return model.Region{}, false
	}
	return m.regions[m.cursor], true
}

// SetSelected marks the region shown as active and moves the cursor to it.
func (m *RegionPickerModel) SetSelected(name string) {
	m.selected = name
	for i, r := range m.regions {
		if r.Name == name {
			m.cursor = i
			return
		}
	}
}

// ToggleView switches between the map and the list.
func (m *RegionPickerModel) ToggleView() ViewMode {
	if m.view == ViewMap {
		m.view = ViewList
	} else {
		m.view = ViewMap
	}
	return m.view
}

// ViewMode returns the current presentation.
func (m RegionPickerModel) ViewMode() ViewMode {
	return m.view
}

// SetZoom sets the map zoom, clamped to the supported range.
func (m *RegionPickerModel) SetZoom(z float64) float64 {
	m.zoom = geo.ClampZoom(z)
	return m.zoom
}

// Zoom returns the map zoom.
func (m RegionPickerModel) Zoom() float64 {
	return m.zoom
}

// Resize sets the panel size.
func (m *RegionPickerModel) Resize(width, height int) {
	m.width = width
	m.height = height
}

// View renders the picker.
func (m RegionPickerModel) View() string {
	title := m.theme.Subtitle.Render("Regions")
	var body string
	if m.view == ViewMap && m.width >= minMapWidth && m.height >= minMapHeight {
		body = m.renderMap()
	} else {
		body = m.renderList()
	}
	return lipgloss.NewStyle().
		Width(m.width).
		MaxWidth(m.width).
		Render(lipgloss.JoinVertical(lipgloss.Left, title, body))
}

func (m RegionPickerModel) renderList() string {
	lines := make([]string, 0, len(m.regions))
	for i, r := range m.regions {
		prefix := "  "
		if r.Name == m.selected {
			prefix = "● "
		}
		line := fmt.Sprintf("%s%s", prefix, r.Name)
		switch {
		case i == m.cursor:
			line = m.theme.Selected.Render(line)
		case r.Name == m.selected:
			line = m.theme.StatusInfo.Render(line)
		default:
			line = m.theme.Normal.Render(line)
		}
		lines = append(lines, line)
	}
	if len(lines) == 0 {
		lines = append(lines, lipgloss.NewStyle().Foreground(m.theme.Muted).Render("No regions configured"))
	}
	return strings.Join(lines, "\n")
}

// renderMap draws the boundary overlay as a dot field with region markers on top.
// Labels are written to the right of markers where they fit.
func (m RegionPickerModel) renderMap() string {
	width := m.width
	height := m.height - 2 // title and footer
	proj := geo.NewProjection(geo.ViewBound(m.overlay, m.regions), width, height, m.zoom)
	mask := proj.Mask(m.overlay)

	grid := make([][]rune, height)
	kind := make([][]byte, height) // 0 empty, 1 land, 2 marker, 3 cursor, 4 label
	for row := range grid {
		grid[row] = []rune(strings.Repeat(" ", width))
		kind[row] = make([]byte, width)
		for col := range grid[row] {
			if mask[row][col] {
				grid[row][col] = landRune
				kind[row][col] = 1
			}
		}
	}

	for i, r := range m.regions {
		col, row, ok := proj.Cell(geo.Point(r.Coordinates))
		if !ok {
			continue
		}
		mark, k := markerRune, byte(2)
		if i == m.cursor {
			mark, k = cursorRune, 3
		}
		grid[row][col] = mark
		kind[row][col] = k

		label := []rune(" " + r.Name)
		if col+len(label) >= width {
			continue
		}
		free := true
		for j := range label {
			if kind[row][col+1+j] >= 2 {
				free = false
				break
			}
		}
		if !free {
			continue
		}
		for j, ch := range label {
			grid[row][col+1+j] = ch
			kind[row][col+1+j] = 4
		}
	}

	lines := make([]string, height)
	for row := range grid {
		var b strings.Builder
		for col, ch := range grid[row] {
			s := string(ch)
			switch kind[row][col] {
			case 1:
				s = m.theme.MapLand.Render(s)
			case 2:
				s = m.theme.MapMarker.Render(s)
			case 3:
				s = lipgloss.NewStyle().Foreground(m.theme.Primary).Bold(true).Render(s)
			case 4:
				s = m.theme.Subtitle.Render(s)
			}
			b.WriteString(s)
		}
		lines[row] = b.String()
	}

	footer := fmt.Sprintf("zoom %.1fx", m.zoom)
	if r, ok := m.Highlighted(); ok {
		footer = fmt.Sprintf("%s · %s (%.2f, %.2f)", footer, r.Name, r.Coordinates.Lat, r.Coordinates.Lng)
	}
	lines = append(lines, lipgloss.NewStyle().Foreground(m.theme.Muted).Render(footer))
	return strings.Join(lines, "\n")
}
