package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"

	"petsynth/internal/config"
	"petsynth/internal/validation"
)

// textTimeout bounds a single text-generation provider call.
const textTimeout = 25 * time.Second

// Usage is the approximate token and cost accounting for one call.
type Usage struct {
	InputTokens  int     `json:"inputTokens"`
	OutputTokens int     `json:"outputTokens"`
	CostUsd      float64 `json:"costUsd"`
}

// TextResult is a successfully parsed generation. The draft has parsed as
// JSON but has not yet passed semantic validation; that is a separate stage.
type TextResult struct {
	Draft validation.PetDraft
	Usage *Usage
	Model string
}

// TextProvider generates a pet draft from a free-text idea. Implementations
// retry exactly once on parse failure; exhausted retries surface an error to
// the caller.
type TextProvider interface {
	GenerateDraft(ctx context.Context, idea string) (*TextResult, error)
}

// NewTextProvider selects the configured text backend. Unknown selectors and
// the default fall back to the deterministic mock.
func NewTextProvider(cfg *config.Config) TextProvider {
	switch strings.ToLower(cfg.TextProvider) {
	case "anthropic":
		return &anthropicProvider{apiKey: cfg.AnthropicAPIKey, baseURL: "https://api.anthropic.com"}
	case "openai":
		return &openaiTextProvider{apiKey: cfg.OpenAIAPIKey, baseURL: "https://api.openai.com"}
	default:
		return &mockTextProvider{}
	}
}

// fencedJSON matches a ```json fenced block anywhere in the response text.
var fencedJSON = regexp.MustCompile("(?s)```(?:json)?\\s*\\n?(.*?)\\n?```")

// parseDraft extracts strict JSON from the model output, first trying a
// fenced code block, then a whole-text parse.
func parseDraft(text string) (*validation.PetDraft, error) {
	payload := text
	if m := fencedJSON.FindStringSubmatch(text); m != nil {
		payload = m[1]
	}

	var draft validation.PetDraft
	if err := json.Unmarshal([]byte(payload), &draft); err != nil {
		return nil, fmt.Errorf("draft is not valid JSON: %w", err)
	}
	return &draft, nil
}

// completion is one raw model response before draft parsing.
type completion struct {
	text         string
	inputTokens  int
	outputTokens int
}

// generateWithRetry drives one live provider: two attempts total, retrying
// once when the call or the parse fails.
func generateWithRetry(
	ctx context.Context,
	model string,
	inPer1k, outPer1k float64,
	complete func(ctx context.Context) (*completion, error),
) (*TextResult, error) {
	var lastErr error

	for attempt := 0; attempt < 2; attempt++ {
		callCtx, cancel := context.WithTimeout(ctx, textTimeout)
		comp, err := complete(callCtx)
		if err == nil {
			var draft *validation.PetDraft
			draft, err = parseDraft(comp.text)
			if err == nil {
				cancel()
				usage := &Usage{
					InputTokens:  comp.inputTokens,
					OutputTokens: comp.outputTokens,
					CostUsd:      (float64(comp.inputTokens)*inPer1k + float64(comp.outputTokens)*outPer1k) / 1000,
				}
				return &TextResult{Draft: *draft, Usage: usage, Model: model}, nil
			}
		}
		cancel()

		lastErr = err
		if attempt == 0 {
			log.Printf("Generation attempt failed, retrying once: %v", err)
		}
	}

	return nil, fmt.Errorf("failed to generate pet draft: %w", lastErr)
}

// mockTextProvider returns a fixed, valid draft instantly. It never contacts
// a network, which makes it the offline/deterministic testing path.
type mockTextProvider struct{}

func (p *mockTextProvider) GenerateDraft(_ context.Context, _ string) (*TextResult, error) {
	return &TextResult{Draft: mockDraft(), Model: "mock"}, nil
}

func mockDraft() validation.PetDraft {
	return validation.PetDraft{
		Name:    "Nimbus the Orbital Puff",
		Species: "Zero-G Cloud Ferret",
		Traits:  []string{"buoyant", "electrostatic", "purring"},
		Description: "Nimbus is a semi-coherent puff of ionized fluff that orbits your head at a polite distance, " +
			"chirping in Morse when it wants snacks. Its fur is more of a weather pattern than a texture, " +
			"occasionally forming mini cumulonimbus for dramatic effect. Nimbus loves solar windowsills, jazz in " +
			"odd meters, and the scent of printer toner. It will accompany you to meetings by drifting exactly " +
			"43 cm behind your left ear, providing moral support and occasional static confetti.",
		CareInstructions: "- Ground yourself before petting to avoid micro-lightning cuddles\n" +
			"- Feed dehydrated rainbows on Tuesdays only\n" +
			"- Do not store near ceiling fans or oscillating blades\n" +
			"- If Nimbus splits into two, name the clone immediately\n" +
			"- Sing a lullaby in Lydian mode nightly\n" +
			"- Schedule solar basking during golden hour\n" +
			"- Never mix with helium balloons or mylar\n" +
			"- Groom with antistatic gloves and gentle clockwise motions",
		PriceCents: 48900,
		ImagePrompt: "A floating puffball ferret made of iridescent clouds, orbiting a person in an office, " +
			"soft studio lighting, shallow depth of field, 50mm lens, whimsical high-contrast, crisp details",
	}
}
