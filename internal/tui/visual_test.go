package tui

import (
	"testing"

	"github.com/Sayan30092004/load-main/internal/predict"
	tuitest "github.com/Sayan30092004/load-main/internal/tui/testing"
	"github.com/Sayan30092004/load-main/internal/tui/themes"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

// TestVisualOutput renders every layout at the sizes that select it.
// Run with -v to inspect the frames.
func TestVisualOutput(t *testing.T) {
	tests := []struct {
		name   string
		keys   []tea.Msg
		want   []string
		width  int
		height int
	}{
		{
			name:   "compact",
			width:  70,
			height: 24,
			want:   []string{"Regions", "? Help"},
		},
		{
			name:   "medium",
			width:  100,
			height: 30,
			want:   []string{"Regions", "Historical", "? Help"},
		},
		{
			name:   "full",
			width:  140,
			height: 40,
			want:   []string{"Regions", "Historical", "Kolkata", "? Help"},
		},
		{
			name:   "full_list_view",
			width:  140,
			height: 40,
			keys:   []tea.Msg{tuitest.KeyPress("v")},
			want:   []string{"Kolkata", "Howrah", "North 24 Parganas", "Birbhum", "Bardhaman"},
		},
		{
			name:   "fullscreen_bar",
			width:  120,
			height: 30,
			keys:   []tea.Msg{tuitest.KeyPress("f"), tuitest.KeyPress("c")},
			want:   []string{"Historical · bar", "? Help"},
		},
		{
			name:   "help",
			width:  120,
			height: 30,
			keys:   []tea.Msg{tuitest.KeyPress("?")},
			want:   []string{"loadmap - Help", "zoom in", "Press ? or Esc to close help"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRenderer()
			m := started(t, r, newTestModel(t, readings(812.5, 790, 23),
				WithInitialRegion("Kolkata"),
				WithSize(tt.width, tt.height),
			))
			m = send(r, m, tt.keys...)

			output := r.Render(m)
			t.Logf("\n=== %s (%dx%d) ===\n%s", tt.name, tt.width, tt.height, output)

			plain := tuitest.StripANSI(output)
			for _, want := range tt.want {
				assert.Contains(t, plain, want)
			}
			assert.LessOrEqual(t, tuitest.MaxLineWidth(output), tt.width)
			assert.LessOrEqual(t, lipgloss.Height(output), tt.height)
		})
	}
}

// TestThemeVariations renders the dashboard in each theme.
func TestThemeVariations(t *testing.T) {
	for _, name := range []string{"default", "catppuccin-mocha"} {
		t.Run(name, func(t *testing.T) {
			r := newRenderer()
			m := started(t, r, newTestModel(t, predict.NewMockPredictor(), WithTheme(themes.GetTheme(name))))

			output := r.Render(m)
			t.Logf("\n=== Theme: %s ===\n%s", name, output)
			assert.Contains(t, tuitest.StripANSI(output), "Regions")
		})
	}
}
