package testing

import (
	tea "github.com/charmbracelet/bubbletea"
)

// KeyPress creates a key press message for testing.
func KeyPress(key string) tea.KeyMsg {
	return tea.KeyMsg{
		Type:  tea.KeyRunes,
		Runes: []rune(key),
	}
}

// KeyDown creates a down arrow key message.
func KeyDown() tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyDown}
}

// KeyUp creates an up arrow key message.
func KeyUp() tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyUp}
}

// KeyEnter creates an enter key message.
func KeyEnter() tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyEnter}
}

// KeyEsc creates an escape key message.
func KeyEsc() tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyEsc}
}

// KeyTab creates a tab key message.
func KeyTab() tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyTab}
}

// KeySpace creates a space bar message.
func KeySpace() tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
}

// WindowSize creates a window size message for testing responsive layouts.
func WindowSize(width, height int) tea.WindowSizeMsg {
	return tea.WindowSizeMsg{
		Width:  width,
		Height: height,
	}
}

// InputSequence represents a sequence of inputs for testing.
type InputSequence struct {
	inputs []tea.Msg
}

// NewInputSequence creates a new input sequence.
func NewInputSequence(inputs ...tea.Msg) *InputSequence {
	return &InputSequence{inputs: inputs}
}

// Add adds an input to the sequence.
func (s *InputSequence) Add(input tea.Msg) *InputSequence {
	s.inputs = append(s.inputs, input)
	return s
}

// Type adds a string of characters to the sequence, one key press each.
func (s *InputSequence) Type(text string) *InputSequence {
	for _, r := range text {
		s.inputs = append(s.inputs, tea.KeyMsg{
			Type:  tea.KeyRunes,
			Runes: []rune{r},
		})
	}
	return s
}

// Apply sends every input through the renderer, processing commands after each one.
func (s *InputSequence) Apply(model tea.Model, renderer *TestRenderer) tea.Model {
	result := model
	for _, input := range s.inputs {
		result = renderer.Send(result, input)
	}
	return result
}
