package model

import (
	"errors"
	"fmt"
	"time"
)

// DateLayout is the ISO calendar date format used on the wire.
const DateLayout = "2006-01-02"

// ErrInvalidDate is returned when a date string is not a valid calendar date.
var ErrInvalidDate = errors.New("invalid date")

// ParseDate parses an ISO calendar date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return t, nil
}

// FormatDate renders a date in the wire format.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// PredictionQuery identifies one prediction request. It is a value and is never mutated.
type PredictionQuery struct {
	Date   time.Time
	Region string
}

// NewPredictionQuery constructs a query for a region and a calendar day.
func NewPredictionQuery(region string, date time.Time) PredictionQuery {
	y, m, d := date.Date()
	return PredictionQuery{
		Region: region,
		Date:   time.Date(y, m, d, 0, 0, 0, 0, time.UTC),
	}
}

// DateString returns the query date in wire format.
func (q PredictionQuery) DateString() string {
	return FormatDate(q.Date)
}

func (q PredictionQuery) String() string {
	return fmt.Sprintf("%s@%s", q.Region, q.DateString())
}

// PredictionResult holds the values returned by the prediction service for a region and date.
// Region and Date echo the request when the service omits them.
type PredictionResult struct {
	Price               *float64 `json:"price,omitempty"`
	Region              string   `json:"region"`
	Date                string   `json:"date"`
	Demand              float64  `json:"demand"`
	Supply              float64  `json:"supply"`
	BlackoutProbability float64  `json:"blackoutProbability"`
}

// HasPrice reports whether the service supplied an energy price.
func (r PredictionResult) HasPrice() bool {
	return r.Price != nil
}

// ErrorKind classifies a failed prediction cycle.
type ErrorKind string

// Error kinds recorded in WorkflowState.LastError.
const (
	ErrorKindNetwork    ErrorKind = "network_failure"
	ErrorKindHTTP       ErrorKind = "http_error"
	ErrorKindParse      ErrorKind = "parse_failure"
	ErrorKindValidation ErrorKind = "validation_failure"
)

// ErrorInfo is the structured description of the most recent failure.
type ErrorInfo struct {
	At         time.Time
	Kind       ErrorKind
	Message    string
	Region     string
	StatusCode int
}

func (e ErrorInfo) String() string {
	if e.Kind == ErrorKindHTTP {
		return fmt.Sprintf("%s(%d): %s", e.Kind, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// WorkflowState is the single source of truth for selection, loading, result, and error.
// Consumers only ever receive copies.
type WorkflowState struct {
	Date           time.Time
	UpdatedAt      time.Time
	LastResult     *PredictionResult
	LastError      *ErrorInfo
	SelectedRegion string
	IsLoading      bool
}

// Clone returns a deep copy so callers cannot reach the owner's pointers.
func (s WorkflowState) Clone() WorkflowState {
	out := s
	if s.LastResult != nil {
		r := *s.LastResult
		if s.LastResult.Price != nil {
			p := *s.LastResult.Price
			r.Price = &p
		}
		out.LastResult = &r
	}
	if s.LastError != nil {
		e := *s.LastError
		out.LastError = &e
	}
	return out
}
