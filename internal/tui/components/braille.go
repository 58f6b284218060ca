package components

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var brailleDots = [4][2]rune{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// brailleCanvas is a pixel grid at 2x4 dots per character cell.
// Each pixel stores the index of the series that drew it, or -1.
type brailleCanvas struct {
	grid   []int
	cw, ch int
	pw, ph int
}

func newBrailleCanvas(cw, ch int) *brailleCanvas {
	pw, ph := cw*2, ch*4
	grid := make([]int, pw*ph)
	for i := range grid {
		grid[i] = -1
	}
	return &brailleCanvas{cw: cw, ch: ch, pw: pw, ph: ph, grid: grid}
}

func (c *brailleCanvas) set(px, py, seriesIdx int) {
	if px >= 0 && px < c.pw && py >= 0 && py < c.ph {
		c.grid[py*c.pw+px] = seriesIdx
	}
}

func (c *brailleCanvas) get(px, py int) int {
	if px < 0 || px >= c.pw || py < 0 || py >= c.ph {
		return -1
	}
	return c.grid[py*c.pw+px]
}

func (c *brailleCanvas) drawLine(x0, y0, x1, y1, seriesIdx int) {
	dx := float64(x1 - x0)
	dy := float64(y1 - y0)
	steps := math.Max(math.Abs(dx), math.Abs(dy))
	if steps == 0 {
		c.set(x0, y0, seriesIdx)
		return
	}
	xInc := dx / steps
	yInc := dy / steps
	x, y := float64(x0), float64(y0)
	for i := 0; i <= int(steps); i++ {
		c.set(int(math.Round(x)), int(math.Round(y)), seriesIdx)
		x += xInc
		y += yInc
	}
}

// fillBelow fills every empty pixel under the topmost pixel of the series in each column.
func (c *brailleCanvas) fillBelow(seriesIdx int) {
	for px := 0; px < c.pw; px++ {
		top := -1
		for py := 0; py < c.ph; py++ {
			if c.grid[py*c.pw+px] == seriesIdx {
				top = py
				break
			}
		}
		if top < 0 {
			continue
		}
		for py := top; py < c.ph; py++ {
			if c.grid[py*c.pw+px] < 0 {
				c.grid[py*c.pw+px] = seriesIdx
			}
		}
	}
}

func (c *brailleCanvas) render(colors []lipgloss.Color) []string {
	lines := make([]string, c.ch)
	for cy := 0; cy < c.ch; cy++ {
		var sb strings.Builder
		for cx := 0; cx < c.cw; cx++ {
			pattern := rune(0x2800)
			counts := make(map[int]int, 2)
			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if si := c.get(cx*2+dx, cy*4+dy); si >= 0 {
						pattern |= brailleDots[dy][dx]
						counts[si]++
					}
				}
			}

			if pattern == 0x2800 {
				sb.WriteRune(' ')
				continue
			}
			best, bestCnt := 0, -1
			for si, cnt := range counts {
				if cnt > bestCnt || (cnt == bestCnt && si < best) {
					best, bestCnt = si, cnt
				}
			}
			style := lipgloss.NewStyle()
			if best < len(colors) {
				style = style.Foreground(colors[best])
			}
			sb.WriteString(style.Render(string(pattern)))
		}
		lines[cy] = sb.String()
	}
	return lines
}
