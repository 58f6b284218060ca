package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/Sayan30092004/load-main/internal/chart"
	"github.com/Sayan30092004/load-main/internal/model"
	"github.com/Sayan30092004/load-main/internal/tui/themes"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const yAxisWidth = 7

var sparkBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// ChartPanelModel draws the active dataset in the terminal.
type ChartPanelModel struct {
	theme  themes.Theme
	mode   chart.Mode
	kind   chart.Kind
	region string
	points []model.TimeSeriesPoint
	width  int
	height int
}

// NewChartPanel creates a chart panel.
func NewChartPanel(theme themes.Theme, mode chart.Mode, kind chart.Kind) ChartPanelModel {
	return ChartPanelModel{
		theme:  theme,
		mode:   mode,
		kind:   kind,
		region: model.GlobalRegion,
	}
}

// Update handles messages.
func (m ChartPanelModel) Update(msg tea.Msg) (ChartPanelModel, tea.Cmd) {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		m.Resize(msg.Width, msg.Height)
	}
	return m, nil
}

// SetData replaces the plotted series.
func (m *ChartPanelModel) SetData(region string, mode chart.Mode, kind chart.Kind, points []model.TimeSeriesPoint) {
	m.region = region
	m.mode = mode
	m.kind = kind
	m.points = points
}

// Points returns the plotted series.
func (m ChartPanelModel) Points() []model.TimeSeriesPoint {
	return m.points
}

// Resize sets the panel size.
func (m *ChartPanelModel) Resize(width, height int) {
	m.width = width
	m.height = height
}

// View renders the chart.
func (m ChartPanelModel) View() string {
	title := m.theme.Subtitle.Render(fmt.Sprintf("%s · %s · %s", m.mode.Title(), m.kind, m.region))
	legend := fmt.Sprintf("%s %s %s",
		lipgloss.NewStyle().Foreground(m.theme.Demand).Render("■ demand"),
		lipgloss.NewStyle().Foreground(m.theme.Supply).Render("■ supply"),
		lipgloss.NewStyle().Foreground(m.theme.Blackout).Render("■ blackout"),
	)

	if len(m.points) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, title,
			lipgloss.NewStyle().Foreground(m.theme.Muted).Render("No data"))
	}

	plotHeight := max(m.height-4, 3) // title, legend, blackout row, x labels
	plotWidth := max(m.width-yAxisWidth-1, 8)

	var body []string
	if m.kind == chart.KindBar {
		body = m.renderBars(plotWidth, plotHeight)
	} else {
		body = m.renderBraille(plotWidth, plotHeight, m.kind == chart.KindArea)
	}

	blackout := make([]float64, len(m.points))
	for i, p := range m.points {
		blackout[i] = p.BlackoutProbability
	}
	body = append(body, fmt.Sprintf("%*s %s", yAxisWidth, "risk",
		renderSparkline(blackout, plotWidth, m.theme.Blackout)))

	lines := append([]string{title, legend}, body...)
	return lipgloss.NewStyle().
		Width(m.width).
		MaxWidth(m.width).
		Render(strings.Join(lines, "\n"))
}

func (m ChartPanelModel) valueRange() (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, p := range m.points {
		lo = min(lo, p.Demand, p.Supply)
		hi = max(hi, p.Demand, p.Supply)
	}
	if m.kind == chart.KindBar || m.kind == chart.KindArea {
		lo = 0
	}
	if hi <= lo {
		hi = lo + 1
	}
	return lo, hi
}

// renderBraille plots demand and supply as braille lines, optionally filled below.
func (m ChartPanelModel) renderBraille(w, h int, fill bool) []string {
	lo, hi := m.valueRange()
	canvas := newBrailleCanvas(w, h)

	series := [][]float64{make([]float64, len(m.points)), make([]float64, len(m.points))}
	for i, p := range m.points {
		series[0][i] = p.Demand
		series[1][i] = p.Supply
	}

	toPixel := func(i int, v float64) (int, int) {
		x := 0
		if len(m.points) > 1 {
			x = int(math.Round(float64(i) / float64(len(m.points)-1) * float64(canvas.pw-1)))
		}
		y := int(math.Round((hi - v) / (hi - lo) * float64(canvas.ph-1)))
		return x, y
	}

	// Supply first so demand wins overlapping cells.
	for si := len(series) - 1; si >= 0; si-- {
		vals := series[si]
		for i := range vals {
			x0, y0 := toPixel(i, vals[i])
			if i == len(vals)-1 {
				canvas.set(x0, y0, si)
				continue
			}
			x1, y1 := toPixel(i+1, vals[i+1])
			canvas.drawLine(x0, y0, x1, y1, si)
		}
		if fill {
			canvas.fillBelow(si)
		}
	}

	rows := canvas.render([]lipgloss.Color{m.theme.Demand, m.theme.Supply})
	out := make([]string, 0, len(rows)+1)
	for i, row := range rows {
		label := ""
		switch i {
		case 0:
			label = formatAxis(hi)
		case len(rows) - 1:
			label = formatAxis(lo)
		}
		out = append(out, fmt.Sprintf("%*s %s", yAxisWidth, label, row))
	}
	out = append(out, fmt.Sprintf("%*s %s", yAxisWidth, "", m.xLabels(w)))
	return out
}

// renderBars draws one column pair per period, demand then supply.
func (m ChartPanelModel) renderBars(w, h int) []string {
	_, hi := m.valueRange()
	groups := len(m.points)
	slot := max(w/groups, 3)
	barW := max((slot-1)/2, 1)

	levels := func(v float64) float64 { return v / hi * float64(h) }
	cell := func(v float64, row int) string {
		lvl := levels(v) - float64(h-1-row)
		switch {
		case lvl >= 1:
			return "█"
		case lvl <= 0:
			return " "
		default:
			return string(sparkBlocks[int(lvl*float64(len(sparkBlocks)-1))])
		}
	}

	demand := lipgloss.NewStyle().Foreground(m.theme.Demand)
	supply := lipgloss.NewStyle().Foreground(m.theme.Supply)

	out := make([]string, 0, h+1)
	for row := 0; row < h; row++ {
		var b strings.Builder
		for _, p := range m.points {
			b.WriteString(demand.Render(strings.Repeat(cell(p.Demand, row), barW)))
			b.WriteString(supply.Render(strings.Repeat(cell(p.Supply, row), barW)))
			b.WriteString(strings.Repeat(" ", slot-2*barW))
		}
		label := ""
		switch row {
		case 0:
			label = formatAxis(hi)
		case h - 1:
			label = "0"
		}
		out = append(out, fmt.Sprintf("%*s %s", yAxisWidth, label, b.String()))
	}

	var labels strings.Builder
	for _, p := range m.points {
		labels.WriteString(fitLabel(shortPeriod(p.Date), slot))
	}
	out = append(out, fmt.Sprintf("%*s %s", yAxisWidth, "", labels.String()))
	return out
}

// xLabels spreads first, middle and last period labels across the plot width.
func (m ChartPanelModel) xLabels(w int) string {
	line := []rune(strings.Repeat(" ", w))
	put := func(pos int, s string) {
		r := []rune(s)
		pos = min(max(pos, 0), max(w-len(r), 0))
		for i, ch := range r {
			if pos+i < len(line) {
				line[pos+i] = ch
			}
		}
	}
	n := len(m.points)
	put(0, shortPeriod(m.points[0].Date))
	if n > 2 {
		mid := m.points[n/2].Date
		put(w/2-len(shortPeriod(mid))/2, shortPeriod(mid))
	}
	if n > 1 {
		last := shortPeriod(m.points[n-1].Date)
		put(w-len(last), last)
	}
	return lipgloss.NewStyle().Foreground(m.theme.Muted).Render(string(line))
}

func shortPeriod(date string) string {
	if len(date) == len("2006-01") {
		if t, err := model.ParseDate(date + "-01"); err == nil {
			return t.Format("Jan 06")
		}
	}
	if t, err := model.ParseDate(date); err == nil {
		return t.Format("Jan 02")
	}
	return date
}

func fitLabel(s string, w int) string {
	r := []rune(s)
	if len(r) >= w {
		return string(r[:max(w-1, 0)]) + " "
	}
	return s + strings.Repeat(" ", w-len(r))
}

func formatAxis(v float64) string {
	switch {
	case v >= 1e6:
		return fmt.Sprintf("%.1fM", v/1e6)
	case v >= 1e3:
		return fmt.Sprintf("%.1fk", v/1e3)
	default:
		return fmt.Sprintf("%.0f", v)
	}
}

func renderSparkline(values []float64, w int, color lipgloss.Color) string {
	if len(values) == 0 || w < 1 {
		return ""
	}

	if len(values) > w {
		step := float64(len(values)) / float64(w)
		sampled := make([]float64, w)
		for i := 0; i < w; i++ {
			sampled[i] = values[min(int(float64(i)*step), len(values)-1)]
		}
		values = sampled
	}

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	rng := hi - lo
	if rng == 0 {
		rng = 1
	}

	var sb strings.Builder
	for _, v := range values {
		idx := int((v - lo) / rng * float64(len(sparkBlocks)-1))
		sb.WriteRune(sparkBlocks[min(max(idx, 0), len(sparkBlocks)-1)])
	}
	return lipgloss.NewStyle().Foreground(color).Render(sb.String())
}
