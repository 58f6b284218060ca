// Package testing provides test utilities for TUI components.
package testing

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// TestRenderer drives a Bubble Tea model without a terminal. Commands returned by Update
// are queued and run synchronously by ProcessCommands.
type TestRenderer struct {
	// Skip reports messages that must not be fed back into the model, such as
	// self-rescheduling ticks.
	Skip func(tea.Msg) bool

	// Output contains the last rendered view
	Output string

	// Commands contains commands returned by Update calls that have not run yet
	Commands []tea.Cmd

	// Messages contains all messages sent to the model
	Messages []tea.Msg

	// UpdateCount tracks how many times Update was called
	UpdateCount int
}

// NewTestRenderer creates a new test renderer.
func NewTestRenderer() *TestRenderer {
	return &TestRenderer{
		Commands: make([]tea.Cmd, 0),
		Messages: make([]tea.Msg, 0),
	}
}

// Render captures the model's view.
func (r *TestRenderer) Render(model tea.Model) string {
	r.Output = model.View()
	return r.Output
}

// Update sends a message to the model and records the resulting command.
func (r *TestRenderer) Update(model tea.Model, msg tea.Msg) (tea.Model, tea.Cmd) {
	r.Messages = append(r.Messages, msg)
	r.UpdateCount++

	next, cmd := model.Update(msg)
	if cmd != nil {
		r.Commands = append(r.Commands, cmd)
	}
	return next, cmd
}

// ProcessCommands runs queued commands until none remain, expanding batches and feeding
// every resulting message back through Update. It returns the final model.
func (r *TestRenderer) ProcessCommands(model tea.Model) tea.Model {
	for len(r.Commands) > 0 {
		cmd := r.Commands[0]
		r.Commands = r.Commands[1:]
		if cmd == nil {
			continue
		}

		msg := cmd()
		switch msg := msg.(type) {
		case nil:
		case tea.BatchMsg:
			r.Commands = append(r.Commands, msg...)
		case tea.QuitMsg:
			r.Messages = append(r.Messages, msg)
		default:
			if r.Skip != nil && r.Skip(msg) {
				continue
			}
			model, _ = r.Update(model, msg)
		}
	}
	return model
}

// Send updates the model with msg and processes all commands it produces.
func (r *TestRenderer) Send(model tea.Model, msg tea.Msg) tea.Model {
	model, _ = r.Update(model, msg)
	return r.ProcessCommands(model)
}

// Quit reports whether a tea.QuitMsg was produced.
func (r *TestRenderer) Quit() bool {
	for _, msg := range r.Messages {
		if _, ok := msg.(tea.QuitMsg); ok {
			return true
		}
	}
	return false
}

// StripANSI removes ANSI escape codes from the output for content-only testing.
func (r *TestRenderer) StripANSI() string {
	return StripANSI(r.Output)
}

// Lines returns the output split by newlines.
func (r *TestRenderer) Lines() []string {
	return strings.Split(r.Output, "\n")
}

// Reset clears all captured data.
func (r *TestRenderer) Reset() {
	r.Output = ""
	r.Commands = nil
	r.Messages = nil
	r.UpdateCount = 0
}
