package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

// replicateProvider is the asynchronous backend: a create call returns a
// prediction id which is then polled at a fixed interval with a fixed
// attempt ceiling. Failure or exhaustion degrades to the placeholder.
type replicateProvider struct {
	apiToken     string
	baseURL      string
	httpClient   *http.Client
	pollInterval time.Duration
	maxPolls     int
}

type replicateCreateRequest struct {
	Version string         `json:"version"`
	Input   replicateInput `json:"input"`
}

type replicateInput struct {
	Prompt     string `json:"prompt"`
	NumOutputs int    `json:"num_outputs"`
}

type replicatePrediction struct {
	ID     string   `json:"id"`
	Status string   `json:"status"`
	Output []string `json:"output"`
}

func (p *replicateProvider) CreateImage(ctx context.Context, imagePrompt, name, _ string) ImageResult {
	if p.apiToken == "" {
		return ImageResult{
			ImageURL: placeholderImage(imagePrompt, name),
			Warning:  "Replicate API token not configured; using placeholder",
		}
	}

	imageURL, err := p.generate(ctx, imagePrompt)
	if err != nil {
		log.Printf("Replicate error: %v", err)
		return ImageResult{
			ImageURL: placeholderImage(imagePrompt, name),
			Warning:  fmt.Sprintf("Replicate generation failed: %v", err),
		}
	}

	return ImageResult{ImageURL: imageURL}
}

func (p *replicateProvider) generate(ctx context.Context, imagePrompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, imageTimeout)
	defer cancel()

	prediction, err := p.create(ctx, imagePrompt)
	if err != nil {
		return "", err
	}

	// Bounded polling; the context ceiling still applies
	for i := 0; i < p.maxPolls; i++ {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(p.pollInterval):
		}

		prediction, err = p.poll(ctx, prediction.ID)
		if err != nil {
			return "", err
		}

		if prediction.Status == "succeeded" {
			break
		}
		if prediction.Status == "failed" {
			return "", fmt.Errorf("replicate prediction failed")
		}
	}

	if len(prediction.Output) == 0 || prediction.Output[0] == "" {
		return "", fmt.Errorf("no image URL in replicate response")
	}

	return prediction.Output[0], nil
}

func (p *replicateProvider) create(ctx context.Context, imagePrompt string) (*replicatePrediction, error) {
	reqBody := replicateCreateRequest{
		Version: "black-forest-labs/flux-schnell",
		Input:   replicateInput{Prompt: imagePrompt, NumOutputs: 1},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := strings.TrimSuffix(p.baseURL, "/") + "/v1/predictions"
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Token "+p.apiToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client().Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("replicate API error: status %d, body: %s", resp.StatusCode, string(body))
	}

	var prediction replicatePrediction
	if err := json.NewDecoder(resp.Body).Decode(&prediction); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &prediction, nil
}

func (p *replicateProvider) poll(ctx context.Context, predictionID string) (*replicatePrediction, error) {
	url := strings.TrimSuffix(p.baseURL, "/") + "/v1/predictions/" + predictionID
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Token "+p.apiToken)

	resp, err := p.client().Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("replicate poll error: status %d, body: %s", resp.StatusCode, string(body))
	}

	var prediction replicatePrediction
	if err := json.NewDecoder(resp.Body).Decode(&prediction); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &prediction, nil
}

func (p *replicateProvider) client() *http.Client {
	if p.httpClient != nil {
		return p.httpClient
	}
	return http.DefaultClient
}
