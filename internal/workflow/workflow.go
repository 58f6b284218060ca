// Package workflow owns the region-selection and prediction-fetch state machine.
//
// A selection is split into three steps so that ordering is explicit and testable:
// Select tags the request and flips the loading flag synchronously, Resolve performs the
// network call without touching state, and Apply reconciles the outcome. Apply drops any
// outcome whose ticket is no longer the current selection, so overlapping requests that
// complete out of order can never overwrite newer state.
package workflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/Sayan30092004/load-main/internal/model"
	"github.com/Sayan30092004/load-main/internal/predict"
)

// ErrNoSelection is returned by Refresh before any region has been selected.
var ErrNoSelection = errors.New("no region selected")

// Ticket tags one prediction request with the selection that issued it.
type Ticket struct {
	Query model.PredictionQuery
	Seq   uint64
}

// Outcome is the result of resolving a ticket.
type Outcome struct {
	Err    error
	Result model.PredictionResult
	Ticket Ticket
}

// Disposition reports what Apply did with an outcome.
type Disposition int

// Dispositions.
const (
	Applied Disposition = iota
	Stale
	Mismatched
)

func (d Disposition) String() string {
	switch d {
	case Applied:
		return "applied"
	case Stale:
		return "stale"
	case Mismatched:
		return "mismatched"
	default:
		return fmt.Sprintf("disposition(%d)", int(d))
	}
}

// Controller is the single writer of WorkflowState.
type Controller struct {
	now       func() time.Time
	regions   *model.RegionSet
	predictor predict.Predictor
	subs      map[int]chan model.WorkflowState
	state     model.WorkflowState
	current   Ticket
	wg        sync.WaitGroup
	nextSub   int
	mu        sync.Mutex
}

// Option configures a Controller.
type Option func(*Controller)

// WithClock overrides the time source used for UpdatedAt and error timestamps.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		c.now = now
	}
}

// WithInitialRegion sets the region shown before the first selection.
func WithInitialRegion(name string) Option {
	return func(c *Controller) {
		c.state.SelectedRegion = name
	}
}

// New creates a controller with no result and the global placeholder region.
func New(regions *model.RegionSet, predictor predict.Predictor, opts ...Option) *Controller {
	c := &Controller{
		now:       time.Now,
		regions:   regions,
		predictor: predictor,
		subs:      make(map[int]chan model.WorkflowState),
		state: model.WorkflowState{
			SelectedRegion: model.GlobalRegion,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Select starts a new prediction cycle. The loading flag and selected region are set
// before Select returns; the returned ticket must be passed to Resolve and Apply.
func (c *Controller) Select(regionID string, date time.Time) (Ticket, error) {
	if !c.regions.Contains(regionID) {
		return Ticket{}, fmt.Errorf("%w: %q", model.ErrUnknownRegion, regionID)
	}
	if date.IsZero() {
		return Ticket{}, fmt.Errorf("%w: zero date", model.ErrInvalidDate)
	}

	query := model.NewPredictionQuery(regionID, date)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.current = Ticket{Seq: c.current.Seq + 1, Query: query}
	c.state.SelectedRegion = regionID
	c.state.Date = query.Date
	c.state.IsLoading = true
	c.publishLocked()

	slog.Debug("Region selected",
		"region", regionID,
		"date", query.DateString(),
		"seq", c.current.Seq)

	return c.current, nil
}

// Resolve performs the request for a ticket. It never mutates state.
func (c *Controller) Resolve(ctx context.Context, t Ticket) Outcome {
	result, err := c.predictor.Predict(ctx, t.Query)
	return Outcome{Ticket: t, Result: result, Err: err}
}

// Apply reconciles an outcome into state and reports whether it was used.
func (c *Controller) Apply(o Outcome) Disposition {
	c.mu.Lock()
	defer c.mu.Unlock()

	if o.Ticket.Seq != c.current.Seq || o.Ticket.Query.Region != c.state.SelectedRegion {
		slog.Debug("Discarding stale prediction",
			"query", o.Ticket.Query.String(),
			"seq", o.Ticket.Seq,
			"current_seq", c.current.Seq)
		return Stale
	}

	c.state.IsLoading = false

	if o.Err != nil {
		info := predict.Describe(o.Err)
		info.At = c.now()
		info.Region = o.Ticket.Query.Region
		c.state.LastError = &info
		c.publishLocked()

		slog.Warn("Prediction failed",
			"query", o.Ticket.Query.String(),
			"kind", info.Kind,
			"status", info.StatusCode,
			"error", o.Err)
		return Applied
	}

	if o.Result.Region != "" && o.Result.Region != o.Ticket.Query.Region {
		c.publishLocked()
		slog.Warn("Discarding prediction for mismatched region",
			"error", predict.MismatchError(o.Ticket.Query.Region, o.Result.Region))
		return Mismatched
	}

	result := o.Result
	if result.Region == "" {
		result.Region = o.Ticket.Query.Region
	}
	c.state.LastResult = &result
	c.state.LastError = nil
	c.state.UpdatedAt = c.now()
	c.publishLocked()

	return Applied
}

// SelectRegion runs a full cycle: Select synchronously, then Resolve and Apply in the background.
func (c *Controller) SelectRegion(ctx context.Context, regionID string, date time.Time) (Ticket, error) {
	t, err := c.Select(regionID, date)
	if err != nil {
		return Ticket{}, err
	}

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		c.Apply(c.Resolve(ctx, t))
	}()

	return t, nil
}

// Refresh re-issues the current selection as a new cycle.
func (c *Controller) Refresh(ctx context.Context) (Ticket, error) {
	c.mu.Lock()
	current := c.current
	c.mu.Unlock()

	if current.Seq == 0 {
		return Ticket{}, ErrNoSelection
	}
	return c.SelectRegion(ctx, current.Query.Region, current.Query.Date)
}

// Wait blocks until background cycles started by SelectRegion have been applied.
func (c *Controller) Wait() {
	c.wg.Wait()
}

// Current returns the ticket of the latest selection, if any.
func (c *Controller) Current() (Ticket, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current, c.current.Seq != 0
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() model.WorkflowState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Clone()
}

// Regions returns the selectable regions.
func (c *Controller) Regions() []model.Region {
	return c.regions.All()
}

// Subscribe returns a channel that receives a snapshot after every transition.
// Only the latest undelivered snapshot is kept. Call cancel to close the channel.
func (c *Controller) Subscribe() (<-chan model.WorkflowState, func()) {
	ch := make(chan model.WorkflowState, 1)

	c.mu.Lock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = ch
	c.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			c.mu.Lock()
			delete(c.subs, id)
			c.mu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}

func (c *Controller) publishLocked() {
	if len(c.subs) == 0 {
		return
	}
	snap := c.state.Clone()
	for _, ch := range c.subs {
		select {
		case ch <- snap.Clone():
		default:
			// Replace the undelivered snapshot with the newer one.
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- snap.Clone():
			default:
			}
		}
	}
}
