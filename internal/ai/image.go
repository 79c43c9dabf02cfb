package ai

import (
	"context"
	"net/url"
	"strings"
	"time"

	"petsynth/internal/assets"
	"petsynth/internal/config"
)

// imageTimeout bounds a single image-generation provider call.
const imageTimeout = 25 * time.Second

// ImageResult is always usable: ImageURL is never empty. Warning carries a
// human-readable note when the provider degraded to a fallback.
type ImageResult struct {
	ImageURL string `json:"imageUrl"`
	Warning  string `json:"warning,omitempty"`
}

// ImageProvider resolves an image for a draft. Implementations never fail
// outward: any provider error is caught, logged and absorbed into a
// deterministic placeholder (or, for local-persistence failures, the
// provider's own temporary URL).
type ImageProvider interface {
	CreateImage(ctx context.Context, imagePrompt, name, petID string) ImageResult
}

// NewImageProvider selects the configured image backend. The default and
// unknown selectors produce the placeholder-only provider.
func NewImageProvider(cfg *config.Config, store *assets.Store) ImageProvider {
	switch strings.ToLower(cfg.ImageProvider) {
	case "openai":
		return &openaiImageProvider{
			apiKey:  cfg.OpenAIAPIKey,
			baseURL: "https://api.openai.com",
			store:   store,
		}
	case "fal":
		return &falProvider{apiKey: cfg.FalAPIKey, baseURL: "https://fal.run"}
	case "stability":
		return &stabilityProvider{apiKey: cfg.StabilityAPIKey, baseURL: "https://api.stability.ai"}
	case "replicate":
		return &replicateProvider{
			apiToken:     cfg.ReplicateAPIToken,
			baseURL:      "https://api.replicate.com",
			pollInterval: 2 * time.Second,
			maxPolls:     10,
		}
	case "none":
		return &noneProvider{}
	default:
		return &noneProvider{unsupported: cfg.ImageProvider}
	}
}

// placeholderImage builds the deterministic fallback URL from the subject's
// name, or the prompt prefix when no name is known.
func placeholderImage(imagePrompt, name string) string {
	text := name
	if text == "" {
		text = imagePrompt
		if len(text) > 40 {
			text = text[:40]
		}
	}
	return "https://placehold.co/640x480?text=" + url.QueryEscape(text)
}

// noneProvider short-circuits to the placeholder. It is the default when no
// image backend is configured.
type noneProvider struct {
	unsupported string
}

func (p *noneProvider) CreateImage(_ context.Context, imagePrompt, name, _ string) ImageResult {
	result := ImageResult{ImageURL: placeholderImage(imagePrompt, name)}
	if p.unsupported != "" {
		result.Warning = "image provider '" + p.unsupported + "' not supported; using placeholder"
	}
	return result
}
