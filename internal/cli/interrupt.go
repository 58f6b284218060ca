package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

// InterruptHandler turns SIGINT/SIGTERM into context cancellation with a friendly message.
type InterruptHandler struct {
	writer      io.Writer
	cancelFunc  context.CancelFunc
	progress    func() string
	task        string
	interrupted bool
	mu          sync.Mutex
}

// NewInterruptHandler creates a new interrupt handler.
func NewInterruptHandler(writer io.Writer) *InterruptHandler {
	if writer == nil {
		writer = os.Stdout
	}
	return &InterruptHandler{
		writer: writer,
	}
}

// HandleInterrupts returns a context canceled on the first interrupt. progress, when set, is
// called to describe how far the task got. The returned stop function releases the signal
// handler and must be called when the task is done.
func (h *InterruptHandler) HandleInterrupts(ctx context.Context, task string, progress func() string) (context.Context, func()) {
	ctx, cancel := context.WithCancel(ctx)

	h.mu.Lock()
	h.cancelFunc = cancel
	h.task = task
	h.progress = progress
	h.mu.Unlock()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	done := make(chan struct{})

	go func() {
		select {
		case <-sigChan:
			h.Interrupt()
		case <-done:
		}
	}()

	var once sync.Once
	stop := func() {
		once.Do(func() {
			signal.Stop(sigChan)
			close(done)
			cancel()
		})
	}
	return ctx, stop
}

// Interrupt cancels the task as if a signal had arrived. Only the first call prints.
func (h *InterruptHandler) Interrupt() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.interrupted {
		return
	}
	h.interrupted = true
	h.showInterruptMessage()
	if h.cancelFunc != nil {
		h.cancelFunc()
	}
}

func (h *InterruptHandler) showInterruptMessage() {
	task := h.task
	if task == "" {
		task = "Operation"
	}
	msg := "\n" + FormatWarning(task+" interrupted")
	if h.progress != nil {
		if p := h.progress(); p != "" {
			msg += "\n" + FormatInfo(p)
		}
	}
	msg += "\n"

	if _, err := fmt.Fprint(h.writer, msg); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write interrupt message: %v\n", err)
	}
}

// WasInterrupted returns true if the process was interrupted.
func (h *InterruptHandler) WasInterrupted() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.interrupted
}
