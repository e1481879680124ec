package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	statusSucceeded = "succeeded"
	statusFailed    = "failed"
	statusCanceled  = "canceled"
)

var ErrPredictionFailed = errors.New("prediction failed")

type Client interface {
	GenerateImage(ctx context.Context, input ImageInput) ([]string, error)
}

// ImageInput is the input block of a flux-style image-to-image prediction.
// GuidanceScale is always sent, zero included.
type ImageInput struct {
	Prompt            string  `json:"prompt"`
	Image             string  `json:"image"`
	NumOutputs        int     `json:"num_outputs"`
	NumInferenceSteps int     `json:"num_inference_steps"`
	GuidanceScale     float64 `json:"guidance_scale"`
	Seed              int     `json:"seed"`
}

type prediction struct {
	ID     string          `json:"id"`
	Status string          `json:"status"`
	Output json.RawMessage `json:"output"`
	Error  any             `json:"error"`
	URLs   struct {
		Get string `json:"get"`
	} `json:"urls"`
}

type ImageGenerator struct {
	apiToken     string
	apiUrl       string
	model        string
	pollInterval time.Duration
	httpClient   *http.Client
}

func NewImageGenerator(apiToken, apiUrl, model string, timeout time.Duration) *ImageGenerator {
	return &ImageGenerator{
		apiToken:     apiToken,
		apiUrl:       strings.TrimRight(apiUrl, "/"),
		model:        model,
		pollInterval: time.Second,
		httpClient:   &http.Client{Timeout: timeout},
	}
}

// GenerateImage runs one prediction and returns its output URLs. A prediction
// that succeeds without output returns an empty slice and no error.
func (ig *ImageGenerator) GenerateImage(ctx context.Context, input ImageInput) ([]string, error) {
	requestBody, err := json.Marshal(map[string]any{"input": input})
	if err != nil {
		return nil, fmt.Errorf("failed to encode prediction input: %w", err)
	}

	url := fmt.Sprintf("%s/v1/models/%s/predictions", ig.apiUrl, ig.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(requestBody))
	if err != nil {
		return nil, fmt.Errorf("failed to build prediction request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	// hold the connection until the prediction finishes (up to 60s server side)
	req.Header.Set("Prefer", "wait")

	pred, err := ig.do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to generate image: %w", err)
	}

	for !isTerminal(pred.Status) {
		if pred.URLs.Get == "" {
			return nil, fmt.Errorf("prediction %s is %s and has no polling url", pred.ID, pred.Status)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(ig.pollInterval):
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, pred.URLs.Get, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to build polling request: %w", err)
		}
		if pred, err = ig.do(req); err != nil {
			return nil, fmt.Errorf("failed to poll prediction: %w", err)
		}
	}

	if pred.Status != statusSucceeded {
		return nil, fmt.Errorf("prediction %s %s: %v: %w", pred.ID, pred.Status, pred.Error, ErrPredictionFailed)
	}

	return parseOutput(pred.Output)
}

func (ig *ImageGenerator) do(req *http.Request) (*prediction, error) {
	req.Header.Set("Authorization", "Bearer "+ig.apiToken)

	resp, err := ig.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var problem struct {
			Detail string `json:"detail"`
		}
		_ = json.Unmarshal(bodyBytes, &problem)
		return nil, fmt.Errorf("replicate returned %d: %s", resp.StatusCode, problem.Detail)
	}

	var pred prediction
	if err := json.Unmarshal(bodyBytes, &pred); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &pred, nil
}

func isTerminal(status string) bool {
	return status == statusSucceeded || status == statusFailed || status == statusCanceled
}

// parseOutput accepts a list of URLs or a single URL.
func parseOutput(raw json.RawMessage) ([]string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return []string{}, nil
	}

	var urls []string
	if err := json.Unmarshal(raw, &urls); err == nil {
		return urls, nil
	}

	var single string
	if err := json.Unmarshal(raw, &single); err != nil {
		return nil, fmt.Errorf("unexpected prediction output %s", string(raw))
	}
	if single == "" {
		return []string{}, nil
	}
	return []string{single}, nil
}
