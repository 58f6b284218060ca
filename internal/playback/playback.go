// Package playback tracks the dashboard's current date, play state, and speed multiplier.
package playback

import (
	"math"
	"time"
)

// Speed bounds and granularity.
const (
	MinSpeed  = 0.5
	MaxSpeed  = 5.0
	SpeedStep = 0.5
)

// State is the play state.
type State int

// Play states.
const (
	Paused State = iota
	Playing
)

func (s State) String() string {
	if s == Playing {
		return "playing"
	}
	return "paused"
}

// Timeline is the time/playback state. The zero value is not useful; use New.
type Timeline struct {
	date  time.Time
	speed float64
	state State
}

// New returns a paused timeline at date with speed 1x.
func New(date time.Time) *Timeline {
	return &Timeline{
		date:  truncateDay(date),
		speed: 1,
		state: Paused,
	}
}

// Date returns the current date.
func (t *Timeline) Date() time.Time {
	return t.date
}

// State returns the play state.
func (t *Timeline) State() State {
	return t.state
}

// Playing reports whether the timeline is playing.
func (t *Timeline) Playing() bool {
	return t.state == Playing
}

// Speed returns the current speed multiplier.
func (t *Timeline) Speed() float64 {
	return t.speed
}

// Play moves paused -> playing.
func (t *Timeline) Play() {
	t.state = Playing
}

// Pause moves playing -> paused.
func (t *Timeline) Pause() {
	t.state = Paused
}

// Toggle flips between playing and paused and returns the new state.
func (t *Timeline) Toggle() State {
	if t.state == Playing {
		t.state = Paused
	} else {
		t.state = Playing
	}
	return t.state
}

// StepForward advances exactly one calendar day, in either state.
func (t *Timeline) StepForward() time.Time {
	t.date = t.date.AddDate(0, 0, 1)
	return t.date
}

// StepBackward retreats exactly one calendar day, in either state.
func (t *Timeline) StepBackward() time.Time {
	t.date = t.date.AddDate(0, 0, -1)
	return t.date
}

// SetDate jumps to a date.
func (t *Timeline) SetDate(date time.Time) {
	t.date = truncateDay(date)
}

// SetSpeed clamps the multiplier to [MinSpeed, MaxSpeed] on a SpeedStep grid and returns it.
func (t *Timeline) SetSpeed(multiplier float64) float64 {
	t.speed = ClampSpeed(multiplier)
	return t.speed
}

// Faster raises the speed by one step.
func (t *Timeline) Faster() float64 {
	return t.SetSpeed(t.speed + SpeedStep)
}

// Slower lowers the speed by one step.
func (t *Timeline) Slower() float64 {
	return t.SetSpeed(t.speed - SpeedStep)
}

// Interval scales a base auto-advance period by the speed multiplier.
func (t *Timeline) Interval(base time.Duration) time.Duration {
	return time.Duration(float64(base) / t.speed)
}

// ClampSpeed clamps a multiplier to the allowed range and rounds to the nearest step.
func ClampSpeed(multiplier float64) float64 {
	if math.IsNaN(multiplier) {
		return 1
	}
	v := math.Round(multiplier/SpeedStep) * SpeedStep
	if v < MinSpeed {
		return MinSpeed
	}
	if v > MaxSpeed {
		return MaxSpeed
	}
	return v
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
