package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"petsynth/internal/config"
	"petsynth/internal/validation"
)

func TestMockProviderDraft(t *testing.T) {
	p := &mockTextProvider{}

	result, err := p.GenerateDraft(context.Background(), "a cloud ferret")
	if err != nil {
		t.Fatalf("Failed to generate draft: %v", err)
	}

	if result.Model != "mock" {
		t.Errorf("Expected model mock, got %s", result.Model)
	}
	if result.Usage != nil {
		t.Errorf("Expected no usage for the mock, got %+v", result.Usage)
	}
	if result.Draft.Name != "Nimbus the Orbital Puff" {
		t.Errorf("Expected the fixed mock draft, got name %q", result.Draft.Name)
	}

	if violations := validation.ValidateDraft(&result.Draft, validation.StageGenerate); len(violations) != 0 {
		t.Errorf("Expected mock draft to validate, got %v", violations)
	}
}

func TestNewTextProviderSelection(t *testing.T) {
	cfg := &config.Config{TextProvider: "mock"}
	if _, ok := NewTextProvider(cfg).(*mockTextProvider); !ok {
		t.Error("Expected mock provider for 'mock'")
	}

	cfg = &config.Config{TextProvider: "unknown-backend"}
	if _, ok := NewTextProvider(cfg).(*mockTextProvider); !ok {
		t.Error("Expected mock provider for unknown selector")
	}

	cfg = &config.Config{TextProvider: "anthropic", AnthropicAPIKey: "k"}
	if _, ok := NewTextProvider(cfg).(*anthropicProvider); !ok {
		t.Error("Expected anthropic provider")
	}

	cfg = &config.Config{TextProvider: "OpenAI", OpenAIAPIKey: "k"}
	if _, ok := NewTextProvider(cfg).(*openaiTextProvider); !ok {
		t.Error("Expected openai provider, selector is case-insensitive")
	}
}

func TestParseDraftFencedBlock(t *testing.T) {
	text := "Here is your pet:\n```json\n{\"name\": \"Nimbus\", \"priceCents\": 48900}\n```\nEnjoy!"

	draft, err := parseDraft(text)
	if err != nil {
		t.Fatalf("Failed to parse fenced draft: %v", err)
	}
	if draft.Name != "Nimbus" {
		t.Errorf("Expected name Nimbus, got %q", draft.Name)
	}
	if draft.PriceCents != 48900 {
		t.Errorf("Expected priceCents 48900, got %d", draft.PriceCents)
	}
}

func TestParseDraftBareJSON(t *testing.T) {
	draft, err := parseDraft(`{"name": "Whisper"}`)
	if err != nil {
		t.Fatalf("Failed to parse bare draft: %v", err)
	}
	if draft.Name != "Whisper" {
		t.Errorf("Expected name Whisper, got %q", draft.Name)
	}
}

func TestParseDraftInvalid(t *testing.T) {
	if _, err := parseDraft("the model rambled instead of emitting JSON"); err == nil {
		t.Error("Expected parse error for non-JSON output")
	}
}

func openaiReply(t *testing.T, w http.ResponseWriter, content string, promptTokens, completionTokens int) {
	t.Helper()
	resp := map[string]interface{}{
		"choices": []map[string]interface{}{
			{"message": map[string]string{"content": content}},
		},
		"usage": map[string]int{
			"prompt_tokens":     promptTokens,
			"completion_tokens": completionTokens,
		},
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		t.Fatalf("Failed to encode fake response: %v", err)
	}
}

func TestOpenAIRetriesOnceOnParseFailure(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("Unexpected auth header %q", got)
		}
		if atomic.AddInt32(&calls, 1) == 1 {
			openaiReply(t, w, "sorry, no JSON this time", 10, 5)
			return
		}
		openaiReply(t, w, `{"name": "Nimbus"}`, 1000, 1000)
	}))
	defer srv.Close()

	p := &openaiTextProvider{apiKey: "test-key", baseURL: srv.URL}

	result, err := p.GenerateDraft(context.Background(), "a cloud ferret")
	if err != nil {
		t.Fatalf("Expected retry to recover, got %v", err)
	}
	if got := atomic.LoadInt32(&calls); got != 2 {
		t.Errorf("Expected 2 attempts, got %d", got)
	}
	if result.Draft.Name != "Nimbus" {
		t.Errorf("Expected parsed draft, got name %q", result.Draft.Name)
	}

	// 1000 in + 1000 out at gpt-4o-mini rates
	if result.Usage == nil {
		t.Fatal("Expected usage accounting")
	}
	want := 0.00015 + 0.0006
	if diff := result.Usage.CostUsd - want; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("Expected cost %f, got %f", want, result.Usage.CostUsd)
	}
}

func TestOpenAIExhaustedRetriesFail(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		openaiReply(t, w, "still not JSON", 1, 1)
	}))
	defer srv.Close()

	p := &openaiTextProvider{apiKey: "test-key", baseURL: srv.URL}

	if _, err := p.GenerateDraft(context.Background(), "a cloud ferret"); err == nil {
		t.Error("Expected error after exhausted retries")
	}
	if got := atomic.LoadInt32(&calls); got != 2 {
		t.Errorf("Expected exactly 2 attempts, got %d", got)
	}
}

func TestOpenAIMissingKey(t *testing.T) {
	p := &openaiTextProvider{}
	if _, err := p.GenerateDraft(context.Background(), "a cloud ferret"); err == nil {
		t.Error("Expected error when no API key is configured")
	}
}

func TestAnthropicMissingKey(t *testing.T) {
	p := &anthropicProvider{}
	if _, err := p.GenerateDraft(context.Background(), "a cloud ferret"); err == nil {
		t.Error("Expected error when no API key is configured")
	}
}

func TestAnthropicCompletion(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/messages" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("x-api-key"); got != "test-key" {
			t.Errorf("Unexpected api key header %q", got)
		}
		if got := r.Header.Get("anthropic-version"); got == "" {
			t.Error("Expected anthropic-version header")
		}
		resp := map[string]interface{}{
			"content": []map[string]string{
				{"type": "text", "text": "```json\n{\"name\": \"Whisper\"}\n```"},
			},
			"usage": map[string]int{"input_tokens": 2000, "output_tokens": 1000},
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	p := &anthropicProvider{apiKey: "test-key", baseURL: srv.URL}

	result, err := p.GenerateDraft(context.Background(), "a theremin cat")
	if err != nil {
		t.Fatalf("Failed to generate: %v", err)
	}
	if result.Draft.Name != "Whisper" {
		t.Errorf("Expected fenced draft to parse, got name %q", result.Draft.Name)
	}

	// 2000 in + 1000 out at claude-3-5-sonnet rates
	want := 2*0.003 + 0.015
	if result.Usage == nil {
		t.Fatal("Expected usage accounting")
	}
	if diff := result.Usage.CostUsd - want; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("Expected cost %f, got %f", want, result.Usage.CostUsd)
	}
}
