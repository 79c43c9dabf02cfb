package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"petsynth/internal/ai"
	"petsynth/internal/models"
)

// RecordGeneration appends one telemetry row for a text-generation call.
// Usage may be nil (the mock provider reports none).
func RecordGeneration(db *gorm.DB, userID, prompt, model string, usage *ai.Usage, latencyMs int64) error {
	generation := models.Generation{
		ID:        uuid.NewString(),
		UserID:    userID,
		Prompt:    prompt,
		Model:     model,
		LatencyMs: latencyMs,
		CreatedAt: time.Now().UnixMilli(),
	}

	if usage != nil {
		in, out, cost := usage.InputTokens, usage.OutputTokens, usage.CostUsd
		generation.InputTokens = &in
		generation.OutputTokens = &out
		generation.CostUsd = &cost
	}

	if err := db.Create(&generation).Error; err != nil {
		return fmt.Errorf("failed to record generation: %w", err)
	}

	return nil
}
