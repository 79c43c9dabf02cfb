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

	"petsynth/internal/assets"
)

// openaiImageProvider generates a single square image via DALL-E 3 and then
// persists it into local asset storage. A failed persist falls back to the
// provider's temporary URL rather than the placeholder.
type openaiImageProvider struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	store      *assets.Store
}

type openaiImageRequest struct {
	Model   string `json:"model"`
	Prompt  string `json:"prompt"`
	N       int    `json:"n"`
	Size    string `json:"size"`
	Quality string `json:"quality"`
	Style   string `json:"style"`
}

type openaiImageResponse struct {
	Data []struct {
		URL string `json:"url"`
	} `json:"data"`
}

func (p *openaiImageProvider) CreateImage(ctx context.Context, imagePrompt, name, petID string) ImageResult {
	if p.apiKey == "" {
		return ImageResult{
			ImageURL: placeholderImage(imagePrompt, name),
			Warning:  "OpenAI API key not configured; using placeholder",
		}
	}

	tempURL, err := p.generate(ctx, imagePrompt)
	if err != nil {
		log.Printf("OpenAI DALL-E error: %v", err)
		return ImageResult{
			ImageURL: placeholderImage(imagePrompt, name),
			Warning:  fmt.Sprintf("OpenAI DALL-E generation failed: %v", err),
		}
	}

	filename := assets.Filename(petID, name)
	localURL, err := p.store.SaveFromURL(tempURL, filename)
	if err != nil {
		// Unknown retention on the provider side, but still a usable URL
		log.Printf("Failed to save image locally, using temporary URL: %v", err)
		return ImageResult{ImageURL: tempURL}
	}

	log.Printf("Saved image locally: %s", localURL)
	return ImageResult{ImageURL: localURL}
}

func (p *openaiImageProvider) generate(ctx context.Context, imagePrompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, imageTimeout)
	defer cancel()

	// Enhance prompt for consistent sizing
	enhanced := imagePrompt + ". Professional product photography, centered composition, " +
		"clean background, studio lighting, high quality, 1024x1024"

	reqBody := openaiImageRequest{
		Model:   "dall-e-3",
		Prompt:  enhanced,
		N:       1,
		Size:    "1024x1024",
		Quality: "standard",
		Style:   "vivid",
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := strings.TrimSuffix(p.baseURL, "/") + "/v1/images/generations"
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
		return "", fmt.Errorf("openai API error: status %d, body: %s", resp.StatusCode, string(body))
	}

	var result openaiImageResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if len(result.Data) == 0 || result.Data[0].URL == "" {
		return "", fmt.Errorf("no image URL in openai response")
	}

	return result.Data[0].URL, nil
}

func (p *openaiImageProvider) client() *http.Client {
	if p.httpClient != nil {
		return p.httpClient
	}
	return http.DefaultClient
}
