package cli

import (
	"bytes"
	"context"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// syncBuffer provides thread-safe access to a bytes.Buffer.
type syncBuffer struct {
	buf bytes.Buffer
	mu  sync.Mutex
}

func (s *syncBuffer) Write(p []byte) (n int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.Write(p)
}

func (s *syncBuffer) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.String()
}

func TestNewInterruptHandler(t *testing.T) {
	tests := []struct {
		writer io.Writer
		name   string
	}{
		{
			name:   "with custom writer",
			writer: &bytes.Buffer{},
		},
		{
			name:   "with nil writer",
			writer: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewInterruptHandler(tt.writer)
			assert.NotNil(t, handler)
			assert.NotNil(t, handler.writer)
			assert.False(t, handler.WasInterrupted())
		})
	}
}

func TestInterrupt_CancelsAndReports(t *testing.T) {
	output := &syncBuffer{}
	handler := NewInterruptHandler(output)

	ctx, stop := handler.HandleInterrupts(context.Background(), "Chart export", func() string {
		return "2 of 5 charts written"
	})
	defer stop()

	select {
	case <-ctx.Done():
		t.Fatal("context should not be canceled initially")
	default:
	}

	handler.Interrupt()
	handler.Interrupt()

	<-ctx.Done()
	assert.True(t, handler.WasInterrupted())

	out := output.String()
	assert.Equal(t, 1, strings.Count(out, "Chart export interrupted"))
	assert.Contains(t, out, "2 of 5 charts written")
}

func TestHandleInterrupts_StopWithoutInterrupt(t *testing.T) {
	output := &syncBuffer{}
	handler := NewInterruptHandler(output)

	ctx, stop := handler.HandleInterrupts(context.Background(), "", nil)
	stop()
	stop()

	<-ctx.Done()
	assert.False(t, handler.WasInterrupted())
	assert.Empty(t, output.String())
}

func TestRenderTable(t *testing.T) {
	out := RenderTable(
		[]string{"Region", "Lat"},
		[][]string{
			{"Kolkata", "22.5726"},
			{"North 24 Parganas", "22.7587"},
		},
	)
	lines := strings.Split(out, "\n")
	require.GreaterOrEqual(t, len(lines), 3)
	assert.Contains(t, out, "North 24 Parganas")
	assert.Contains(t, out, "Region")
}
