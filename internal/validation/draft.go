package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"petsynth/internal/types"
)

// Stage selects which view of the draft shape applies. Generation output
// carries an imagePrompt; an accept payload drops it and carries the final
// imageUrl instead. All other rules are shared.
type Stage int

const (
	StageGenerate Stage = iota
	StageAccept
)

// PetDraft is an unpersisted, AI-proposed pet description pending user
// acceptance. CareInstructions accepts either a single string or a list of
// strings on the wire; the list form is joined with newlines.
type PetDraft struct {
	Name             string          `json:"name"`
	Species          string          `json:"species"`
	Traits           []string        `json:"traits"`
	Description      string          `json:"description"`
	CareInstructions types.FlexLines `json:"careInstructions"`
	PriceCents       int             `json:"priceCents"`
	ImagePrompt      string          `json:"imagePrompt,omitempty"`
	ImageURL         string          `json:"imageUrl,omitempty"`
}

const (
	PriceCentsMin = 5000
	PriceCentsMax = 150000

	careLinesMin = 8
	careLinesMax = 14
	careMarker   = "- "
)

// ValidateDraft schema-checks a draft against the structural constraints for
// the given stage. On failure it returns the complete list of violated
// constraints, not just the first.
func ValidateDraft(d *PetDraft, stage Stage) []string {
	var violations []string

	if n := utf8.RuneCountInString(d.Name); n < 2 || n > 40 {
		violations = append(violations, "name must be 2-40 characters")
	}
	if n := utf8.RuneCountInString(d.Species); n < 2 || n > 30 {
		violations = append(violations, "species must be 2-30 characters")
	}

	if len(d.Traits) < 3 || len(d.Traits) > 6 {
		violations = append(violations, "traits must have 3-6 entries")
	}
	for i, trait := range d.Traits {
		if n := utf8.RuneCountInString(trait); n < 2 || n > 20 {
			violations = append(violations, fmt.Sprintf("traits[%d] must be 2-20 characters", i))
		}
	}

	if n := utf8.RuneCountInString(d.Description); n < 80 || n > 1200 {
		violations = append(violations, "description must be 80-1200 characters")
	}

	violations = append(violations, validateCareInstructions(d.CareInstructions)...)

	if d.PriceCents < PriceCentsMin || d.PriceCents > PriceCentsMax {
		violations = append(violations,
			fmt.Sprintf("priceCents must be an integer in [%d,%d]", PriceCentsMin, PriceCentsMax))
	}

	switch stage {
	case StageGenerate:
		if n := utf8.RuneCountInString(d.ImagePrompt); n < 20 || n > 800 {
			violations = append(violations, "imagePrompt must be 20-800 characters")
		}
	case StageAccept:
		// imagePrompt is generation-only and stripped before persistence
		d.ImagePrompt = ""
		if d.ImageURL == "" {
			violations = append(violations, "imageUrl is required")
		}
	}

	return violations
}

func validateCareInstructions(block types.FlexLines) []string {
	var violations []string

	lines := block.Lines()
	if len(lines) < careLinesMin || len(lines) > careLinesMax {
		violations = append(violations,
			fmt.Sprintf("careInstructions must have %d-%d lines", careLinesMin, careLinesMax))
	}
	for _, line := range lines {
		if !strings.HasPrefix(strings.TrimSpace(line), careMarker) {
			violations = append(violations, `each care instruction line must start with "- "`)
			break
		}
	}

	return violations
}
