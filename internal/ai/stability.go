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
)

// stabilityProvider calls Stability AI SDXL, which returns inline base64
// image bytes, surfaced to callers as a data URL.
type stabilityProvider struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

type stabilityRequest struct {
	TextPrompts []stabilityPrompt `json:"text_prompts"`
	CfgScale    int               `json:"cfg_scale"`
	Height      int               `json:"height"`
	Width       int               `json:"width"`
	Steps       int               `json:"steps"`
	Samples     int               `json:"samples"`
}

type stabilityPrompt struct {
	Text string `json:"text"`
}

type stabilityResponse struct {
	Artifacts []struct {
		Base64 string `json:"base64"`
	} `json:"artifacts"`
}

func (p *stabilityProvider) CreateImage(ctx context.Context, imagePrompt, name, _ string) ImageResult {
	if p.apiKey == "" {
		return ImageResult{
			ImageURL: placeholderImage(imagePrompt, name),
			Warning:  "Stability AI API key not configured; using placeholder",
		}
	}

	dataURL, err := p.generate(ctx, imagePrompt)
	if err != nil {
		log.Printf("Stability AI error: %v", err)
		return ImageResult{
			ImageURL: placeholderImage(imagePrompt, name),
			Warning:  fmt.Sprintf("Stability AI generation failed: %v", err),
		}
	}

	return ImageResult{ImageURL: dataURL}
}

func (p *stabilityProvider) generate(ctx context.Context, imagePrompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, imageTimeout)
	defer cancel()

	reqBody := stabilityRequest{
		TextPrompts: []stabilityPrompt{{Text: imagePrompt}},
		CfgScale:    7,
		Height:      640,
		Width:       896,
		Steps:       30,
		Samples:     1,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := strings.TrimSuffix(p.baseURL, "/") +
		"/v1/generation/stable-diffusion-xl-1024-v1-0/text-to-image"
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+p.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client().Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("stability API error: status %d, body: %s", resp.StatusCode, string(body))
	}

	var result stabilityResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if len(result.Artifacts) == 0 || result.Artifacts[0].Base64 == "" {
		return "", fmt.Errorf("no image data in stability response")
	}

	return "data:image/png;base64," + result.Artifacts[0].Base64, nil
}

func (p *stabilityProvider) client() *http.Client {
	if p.httpClient != nil {
		return p.httpClient
	}
	return http.DefaultClient
}
