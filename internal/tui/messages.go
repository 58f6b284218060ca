package tui

import (
	"github.com/Sayan30092004/load-main/internal/dataset"
	"github.com/Sayan30092004/load-main/internal/workflow"
)

// outcomeMsg carries a resolved prediction back to the event loop, where it is applied.
type outcomeMsg struct {
	outcome workflow.Outcome
}

// Data loading messages.
type seriesLoadedMsg struct {
	err    error
	region string
	pair   dataset.Pair
}

// playbackTickMsg advances the timeline. Ticks from an older play session carry a stale gen.
type playbackTickMsg struct {
	gen int
}

type exportedMsg struct {
	err  error
	path string
}
