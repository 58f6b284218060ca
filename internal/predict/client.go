// Package predict is the client for the external prediction service.
package predict

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/Sayan30092004/load-main/internal/model"
	"github.com/google/uuid"
)

// maxErrorBody caps how much of a failed response body is kept in the error.
const maxErrorBody = 512

// Predictor fetches a prediction for one region and date.
type Predictor interface {
	Predict(ctx context.Context, query model.PredictionQuery) (model.PredictionResult, error)
}

// Config holds client settings.
type Config struct {
	HTTPClient *http.Client
	Endpoint   string
	UserAgent  string
	Timeout    time.Duration
}

// Client calls the prediction endpoint over HTTP.
type Client struct {
	httpClient *http.Client
	endpoint   string
	userAgent  string
}

// Ensure we implement the interface.
var _ Predictor = (*Client)(nil)

// NewClient creates a prediction client.
func NewClient(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.Endpoint) == "" {
		return nil, fmt.Errorf("prediction endpoint is required")
	}
	if !strings.HasPrefix(cfg.Endpoint, "http://") && !strings.HasPrefix(cfg.Endpoint, "https://") {
		return nil, fmt.Errorf("prediction endpoint must be an http(s) URL: %s", cfg.Endpoint)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		httpClient = &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 4,
				IdleConnTimeout:     90 * time.Second,
			},
		}
	}

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = "loadmap"
	}

	return &Client{
		httpClient: httpClient,
		endpoint:   cfg.Endpoint,
		userAgent:  userAgent,
	}, nil
}

type predictRequest struct {
	District string `json:"district"`
	Date     string `json:"date"`
}

// predictResponse accepts both camelCase and snake_case spellings the service has used.
type predictResponse struct {
	District                 *string  `json:"district"`
	Region                   *string  `json:"region"`
	Demand                   *float64 `json:"demand"`
	Supply                   *float64 `json:"supply"`
	BlackoutProbability      *float64 `json:"blackoutProbability"`
	BlackoutProbabilitySnake *float64 `json:"blackout_probability"`
	Price                    *float64 `json:"price"`
	EnergyPrice              *float64 `json:"energyPrice"`
	Date                     string   `json:"date"`
}

// Predict issues one POST for the query. Every failure is a *Error.
func (c *Client) Predict(ctx context.Context, query model.PredictionQuery) (model.PredictionResult, error) {
	payload, err := json.Marshal(predictRequest{
		District: query.Region,
		Date:     query.DateString(),
	})
	if err != nil {
		return model.PredictionResult{}, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return model.PredictionResult{}, fmt.Errorf("failed to create request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", requestID)

	slog.Debug("Requesting prediction",
		"region", query.Region,
		"date", query.DateString(),
		"request_id", requestID)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return model.PredictionResult{}, networkError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return model.PredictionResult{}, networkError(fmt.Errorf("failed to read response: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return model.PredictionResult{}, statusError(resp.StatusCode, truncate(string(body), maxErrorBody))
	}

	result, err := decodeResult(body, query)
	if err != nil {
		return model.PredictionResult{}, err
	}

	slog.Debug("Prediction received",
		"region", result.Region,
		"request_id", requestID,
		"elapsed", time.Since(start))

	return result, nil
}

func decodeResult(body []byte, query model.PredictionQuery) (model.PredictionResult, error) {
	var raw predictResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return model.PredictionResult{}, parseError(err)
	}

	blackout := raw.BlackoutProbability
	if blackout == nil {
		blackout = raw.BlackoutProbabilitySnake
	}
	if raw.Demand == nil && raw.Supply == nil && blackout == nil {
		return model.PredictionResult{}, parseError(errors.New("response has no prediction fields"))
	}

	result := model.PredictionResult{
		Region: query.Region,
		Date:   query.DateString(),
		Price:  raw.Price,
	}
	if result.Price == nil {
		result.Price = raw.EnergyPrice
	}
	switch {
	case raw.District != nil:
		result.Region = *raw.District
	case raw.Region != nil:
		result.Region = *raw.Region
	}
	if raw.Date != "" {
		result.Date = raw.Date
	}
	if raw.Demand != nil {
		result.Demand = *raw.Demand
	}
	if raw.Supply != nil {
		result.Supply = *raw.Supply
	}
	if blackout != nil {
		result.BlackoutProbability = *blackout
	}

	return result, nil
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
