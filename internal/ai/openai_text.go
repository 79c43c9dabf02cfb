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

const openaiTextModel = "gpt-4o-mini"

// Approximate USD per thousand tokens.
const (
	openaiInputPer1k  = 0.00015
	openaiOutputPer1k = 0.0006
)

// openaiTextProvider calls the OpenAI Chat Completions API directly.
type openaiTextProvider struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

type openaiChatRequest struct {
	Model          string          `json:"model"`
	MaxTokens      int             `json:"max_tokens"`
	ResponseFormat json.RawMessage `json:"response_format,omitempty"`
	Messages       []openaiMessage `json:"messages"`
}

type openaiMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openaiChatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
	} `json:"usage"`
}

func (p *openaiTextProvider) GenerateDraft(ctx context.Context, idea string) (*TextResult, error) {
	if p.apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY not configured")
	}

	return generateWithRetry(ctx, openaiTextModel, openaiInputPer1k, openaiOutputPer1k,
		func(ctx context.Context) (*completion, error) {
			return p.complete(ctx, idea)
		})
}

func (p *openaiTextProvider) complete(ctx context.Context, idea string) (*completion, error) {
	reqBody := openaiChatRequest{
		Model:          openaiTextModel,
		MaxTokens:      2048,
		ResponseFormat: json.RawMessage(`{"type":"json_object"}`),
		Messages: []openaiMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt(idea)},
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := strings.TrimSuffix(p.baseURL, "/") + "/v1/chat/completions"
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+p.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client().Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("openai API error: status %d, body: %s", resp.StatusCode, string(body))
	}

	var result openaiChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if len(result.Choices) == 0 || result.Choices[0].Message.Content == "" {
		return nil, fmt.Errorf("no content in openai response")
	}

	return &completion{
		text:         result.Choices[0].Message.Content,
		inputTokens:  result.Usage.PromptTokens,
		outputTokens: result.Usage.CompletionTokens,
	}, nil
}

func (p *openaiTextProvider) client() *http.Client {
	if p.httpClient != nil {
		return p.httpClient
	}
	return http.DefaultClient
}
