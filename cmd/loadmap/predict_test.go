package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Sayan30092004/load-main/internal/common"
	"github.com/Sayan30092004/load-main/internal/model"
	"github.com/Sayan30092004/load-main/internal/predict"
	"github.com/Sayan30092004/load-main/internal/workflow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDate = time.Date(2025, 4, 15, 0, 0, 0, 0, time.UTC)

func newTestController(t *testing.T, p predict.Predictor) *workflow.Controller {
	t.Helper()
	regions, err := model.NewRegionSet(model.DefaultRegions())
	require.NoError(t, err)
	return workflow.New(regions, p)
}

func TestFetchPrediction(t *testing.T) {
	price := 7.25
	tests := []struct {
		predictFn func(context.Context, model.PredictionQuery) (model.PredictionResult, error)
		name      string
		region    string
		wantErr   string
		wantKnown bool
	}{
		{
			name:   "success",
			region: "Kolkata",
			predictFn: func(_ context.Context, q model.PredictionQuery) (model.PredictionResult, error) {
				return model.PredictionResult{Region: q.Region, Date: q.DateString(), Demand: 140, Supply: 150, BlackoutProbability: 6, Price: &price}, nil
			},
		},
		{
			name:   "service failure",
			region: "Kolkata",
			predictFn: func(context.Context, model.PredictionQuery) (model.PredictionResult, error) {
				return model.PredictionResult{}, errors.New("connection refused")
			},
			wantErr: "Prediction for Kolkata failed",
		},
		{
			name:   "mismatched region",
			region: "Kolkata",
			predictFn: func(_ context.Context, q model.PredictionQuery) (model.PredictionResult, error) {
				return model.PredictionResult{Region: "Howrah", Date: q.DateString()}, nil
			},
			wantErr: "Prediction for Kolkata was discarded",
		},
		{
			name:      "unknown region",
			region:    "Atlantis",
			wantErr:   `Unknown region "Atlantis"`,
			wantKnown: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := predict.NewMockPredictor()
			mock.PredictFn = tt.predictFn
			c := newTestController(t, mock)

			state, err := fetchPrediction(context.Background(), c, tt.region, testDate)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, common.UserMessage(err), tt.wantErr)
				if tt.wantKnown {
					assert.Contains(t, common.UserMessage(err), "North 24 Parganas")
					assert.Empty(t, mock.Calls())
				}
				return
			}

			require.NoError(t, err)
			require.NotNil(t, state.LastResult)
			assert.False(t, state.IsLoading)
			assert.Equal(t, "Kolkata", state.SelectedRegion)
			assert.InDelta(t, 150.0, state.LastResult.Supply, 1e-9)
			assert.Len(t, mock.Calls(), 1)
		})
	}
}

func TestFetchPrediction_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	client, err := predict.NewClient(predict.Config{Endpoint: srv.URL + "/predict", Timeout: 5 * time.Second})
	require.NoError(t, err)

	state, err := fetchPrediction(context.Background(), newTestController(t, client), "Howrah", testDate)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
	require.NotNil(t, state.LastError)
	assert.Equal(t, model.ErrorKindHTTP, state.LastError.Kind)
	assert.Nil(t, state.LastResult)
}

func TestRenderPrediction(t *testing.T) {
	price := 7.25
	state := model.WorkflowState{
		SelectedRegion: "Kolkata",
		Date:           testDate,
		UpdatedAt:      testDate,
		LastResult: &model.PredictionResult{
			Region: "Kolkata", Date: "2025-04-15",
			Demand: 812.5, Supply: 790, BlackoutProbability: 23, Price: &price,
		},
	}

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, renderPrediction(&buf, state, "json"))

		var out predictionOutput
		require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
		assert.Equal(t, "Kolkata", out.Region)
		assert.Equal(t, "2025-04-15", out.Date)
		assert.Equal(t, "elevated", out.Risk)
		assert.InDelta(t, -22.5, out.Balance, 1e-9)
		require.NotNil(t, out.Price)
		assert.InDelta(t, 7.25, *out.Price, 1e-9)
	})

	t.Run("table", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, renderPrediction(&buf, state, "table"))

		out := buf.String()
		for _, want := range []string{"Kolkata", "812.5 MW", "790.0 MW", "deficit", "23%", "elevated", "7.25"} {
			assert.Contains(t, out, want)
		}
	})

	t.Run("unknown format", func(t *testing.T) {
		err := renderPrediction(&bytes.Buffer{}, state, "xml")
		require.Error(t, err)
		assert.ErrorIs(t, err, common.ErrInvalidConfig)
	})

	t.Run("no result", func(t *testing.T) {
		err := renderPrediction(&bytes.Buffer{}, model.WorkflowState{}, "json")
		assert.Error(t, err)
	})
}
