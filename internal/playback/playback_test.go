package playback

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNew(t *testing.T) {
	tl := New(time.Date(2025, 4, 15, 18, 30, 0, 0, time.UTC))

	assert.Equal(t, day(2025, 4, 15), tl.Date())
	assert.Equal(t, Paused, tl.State())
	assert.InDelta(t, 1.0, tl.Speed(), 1e-9)
}

func TestTimeline_PlayPause(t *testing.T) {
	tl := New(day(2025, 4, 15))

	tl.Play()
	assert.True(t, tl.Playing())
	assert.Equal(t, "playing", tl.State().String())

	tl.Pause()
	assert.False(t, tl.Playing())

	assert.Equal(t, Playing, tl.Toggle())
	assert.Equal(t, Paused, tl.Toggle())
}

func TestTimeline_StepRoundTrip(t *testing.T) {
	dates := []time.Time{
		day(2025, 4, 15),
		day(2024, 2, 28),
		day(2024, 2, 29),
		day(2024, 12, 31),
		day(2025, 3, 1),
	}

	for _, d := range dates {
		for _, playing := range []bool{false, true} {
			tl := New(d)
			if playing {
				tl.Play()
			}
			tl.StepForward()
			assert.Equal(t, d.AddDate(0, 0, 1), tl.Date())
			tl.StepBackward()
			assert.Equal(t, d, tl.Date(), "round trip from %s", d.Format("2006-01-02"))
		}
	}
}

func TestTimeline_StepCrossesMonthAndYear(t *testing.T) {
	tl := New(day(2024, 12, 31))
	assert.Equal(t, day(2025, 1, 1), tl.StepForward())

	tl = New(day(2024, 3, 1))
	assert.Equal(t, day(2024, 2, 29), tl.StepBackward())
}

func TestClampSpeed(t *testing.T) {
	tests := []struct {
		input float64
		want  float64
	}{
		{input: 7, want: 5},
		{input: 0.1, want: 0.5},
		{input: -3, want: 0.5},
		{input: 0.5, want: 0.5},
		{input: 5, want: 5},
		{input: 1, want: 1},
		{input: 1.2, want: 1},
		{input: 1.3, want: 1.5},
		{input: 2.74, want: 2.5},
		{input: 4.9, want: 5},
	}

	for _, tt := range tests {
		assert.InDelta(t, tt.want, ClampSpeed(tt.input), 1e-9, "ClampSpeed(%v)", tt.input)
	}
}

func TestTimeline_SpeedInEitherState(t *testing.T) {
	tl := New(day(2025, 4, 15))
	assert.InDelta(t, 5.0, tl.SetSpeed(7), 1e-9)

	tl.Play()
	assert.InDelta(t, 0.5, tl.SetSpeed(0.1), 1e-9)
	assert.InDelta(t, 1.0, tl.Faster(), 1e-9)
	assert.InDelta(t, 0.5, tl.Slower(), 1e-9)
	assert.InDelta(t, 0.5, tl.Slower(), 1e-9)
}

func TestTimeline_Interval(t *testing.T) {
	tl := New(day(2025, 4, 15))
	assert.Equal(t, 2*time.Second, tl.Interval(2*time.Second))

	tl.SetSpeed(2)
	assert.Equal(t, time.Second, tl.Interval(2*time.Second))

	tl.SetSpeed(0.5)
	assert.Equal(t, 4*time.Second, tl.Interval(2*time.Second))
}
