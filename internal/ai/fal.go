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

// falProvider calls fal.ai flux/dev, which returns a hosted URL directly.
// No local persistence.
type falProvider struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

type falRequest struct {
	Prompt            string `json:"prompt"`
	ImageSize         string `json:"image_size"`
	NumInferenceSteps int    `json:"num_inference_steps"`
	NumImages         int    `json:"num_images"`
}

type falResponse struct {
	Images []struct {
		URL string `json:"url"`
	} `json:"images"`
}

func (p *falProvider) CreateImage(ctx context.Context, imagePrompt, name, _ string) ImageResult {
	if p.apiKey == "" {
		return ImageResult{
			ImageURL: placeholderImage(imagePrompt, name),
			Warning:  "fal.ai API key not configured; using placeholder",
		}
	}

	imageURL, err := p.generate(ctx, imagePrompt)
	if err != nil {
		log.Printf("fal.ai error: %v", err)
		return ImageResult{
			ImageURL: placeholderImage(imagePrompt, name),
			Warning:  fmt.Sprintf("fal.ai generation failed: %v", err),
		}
	}

	return ImageResult{ImageURL: imageURL}
}

func (p *falProvider) generate(ctx context.Context, imagePrompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, imageTimeout)
	defer cancel()

	reqBody := falRequest{
		Prompt:            imagePrompt,
		ImageSize:         "landscape_4_3",
		NumInferenceSteps: 28,
		NumImages:         1,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := strings.TrimSuffix(p.baseURL, "/") + "/fal-ai/flux/dev"
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Key "+p.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client().Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("fal.ai API error: status %d, body: %s", resp.StatusCode, string(body))
	}

	var result falResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if len(result.Images) == 0 || result.Images[0].URL == "" {
		return "", fmt.Errorf("no image URL in fal.ai response")
	}

	return result.Images[0].URL, nil
}

func (p *falProvider) client() *http.Client {
	if p.httpClient != nil {
		return p.httpClient
	}
	return http.DefaultClient
}
