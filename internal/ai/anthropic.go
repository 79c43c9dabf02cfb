package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const anthropicModel = "claude-3-5-sonnet-20241022"

// Approximate USD per thousand tokens.
const (
	anthropicInputPer1k  = 0.003
	anthropicOutputPer1k = 0.015
)

// anthropicProvider calls the Anthropic Messages API directly.
type anthropicProvider struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	System    string             `json:"system"`
	Messages  []anthropicMessage `json:"messages"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Usage struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
}

func (p *anthropicProvider) GenerateDraft(ctx context.Context, idea string) (*TextResult, error) {
	if p.apiKey == "" {
		return nil, fmt.Errorf("ANTHROPIC_API_KEY not configured")
	}

	return generateWithRetry(ctx, anthropicModel, anthropicInputPer1k, anthropicOutputPer1k,
		func(ctx context.Context) (*completion, error) {
			return p.complete(ctx, idea)
		})
}

func (p *anthropicProvider) complete(ctx context.Context, idea string) (*completion, error) {
	reqBody := anthropicRequest{
		Model:     anthropicModel,
		MaxTokens: 2048,
		System:    systemPrompt,
		Messages: []anthropicMessage{
			{Role: "user", Content: userPrompt(idea)},
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := strings.TrimSuffix(p.baseURL, "/") + "/v1/messages"
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("x-api-key", p.apiKey)
	req.Header.Set("anthropic-version", "2023-06-01")
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client().Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("anthropic API error: status %d, body: %s", resp.StatusCode, string(body))
	}

	var result anthropicResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if len(result.Content) == 0 || result.Content[0].Type != "text" {
		return nil, fmt.Errorf("unexpected response content from anthropic")
	}

	return &completion{
		text:         result.Content[0].Text,
		inputTokens:  result.Usage.InputTokens,
		outputTokens: result.Usage.OutputTokens,
	}, nil
}

func (p *anthropicProvider) client() *http.Client {
	if p.httpClient != nil {
		return p.httpClient
	}
	return http.DefaultClient
}
