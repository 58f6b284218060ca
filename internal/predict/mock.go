package predict

import (
	"context"
	"sync"

	"github.com/Sayan30092004/load-main/internal/model"
)

// MockPredictor is a mock implementation of Predictor for testing.
type MockPredictor struct {
	// PredictFn controls behavior; when nil the query is echoed back with zero readings.
	PredictFn func(ctx context.Context, query model.PredictionQuery) (model.PredictionResult, error)

	calls []model.PredictionQuery
	mu    sync.Mutex
}

// Ensure we implement the interface.
var _ Predictor = (*MockPredictor)(nil)

// NewMockPredictor creates a new mock predictor.
func NewMockPredictor() *MockPredictor {
	return &MockPredictor{}
}

// Predict implements Predictor.
func (m *MockPredictor) Predict(ctx context.Context, query model.PredictionQuery) (model.PredictionResult, error) {
	m.mu.Lock()
	m.calls = append(m.calls, query)
	fn := m.PredictFn
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, query)
	}

	return model.PredictionResult{
		Region: query.Region,
		Date:   query.DateString(),
	}, nil
}

// Calls returns the queries received so far.
func (m *MockPredictor) Calls() []model.PredictionQuery {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]model.PredictionQuery, len(m.calls))
	copy(out, m.calls)
	return out
}
