package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"petsynth/internal/models"
	"petsynth/internal/validation"
)

// Pagination bounds for pet listing.
const (
	ListLimitDefault = 20
	ListLimitMax     = 100
)

// visibleStatuses are the only statuses exposed by catalog reads.
var visibleStatuses = []string{models.PetStatusSeed, models.PetStatusPublished}

// CreatePet persists an accepted draft as a published pet owned by userID.
func CreatePet(db *gorm.DB, draft *validation.PetDraft, userID string) (*models.Pet, error) {
	traitsJSON, err := json.Marshal(draft.Traits)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize traits: %w", err)
	}

	pet := models.Pet{
		ID:               uuid.NewString(),
		Name:             draft.Name,
		Species:          draft.Species,
		Traits:           traitsJSON,
		Description:      draft.Description,
		CareInstructions: draft.CareInstructions.String(),
		PriceCents:       draft.PriceCents,
		ImageURL:         draft.ImageURL,
		Status:           models.PetStatusPublished,
		CreatedByUserID:  &userID,
		CreatedAt:        time.Now().UnixMilli(),
	}

	if err := db.Create(&pet).Error; err != nil {
		return nil, fmt.Errorf("failed to create pet: %w", err)
	}

	return &pet, nil
}

// ListPets returns visible pets matching the optional case-insensitive
// substring filter, with pagination metadata. The filter spans name,
// species, description and the serialized traits.
func ListPets(db *gorm.DB, q string, limit, offset int) ([]models.Pet, int64, error) {
	if limit <= 0 {
		limit = ListLimitDefault
	}
	if limit > ListLimitMax {
		limit = ListLimitMax
	}
	if offset < 0 {
		offset = 0
	}

	base := db.Model(&models.Pet{}).Where("status IN ?", visibleStatuses)

	if q = strings.TrimSpace(q); q != "" {
		pattern := "%" + escapeLike(strings.ToLower(q)) + "%"
		// sqlite needs an explicit ESCAPE clause for the sanitized wildcards
		base = base.Where(
			db.Where(`LOWER(name) LIKE ? ESCAPE '\'`, pattern).
				Or(`LOWER(species) LIKE ? ESCAPE '\'`, pattern).
				Or(`LOWER(description) LIKE ? ESCAPE '\'`, pattern).
				Or(`LOWER(traits) LIKE ? ESCAPE '\'`, pattern),
		)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count pets: %w", err)
	}

	var items []models.Pet
	if err := base.Limit(limit).Offset(offset).Find(&items).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list pets: %w", err)
	}

	return items, total, nil
}

// GetPet fetches a single visible pet by id. Hidden and absent pets are both
// ErrNotFound.
func GetPet(db *gorm.DB, id string) (*models.Pet, error) {
	var pet models.Pet
	err := db.Where("id = ? AND status IN ?", id, visibleStatuses).First(&pet).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch pet: %w", err)
	}
	return &pet, nil
}

// escapeLike neutralizes SQL LIKE wildcards in a user-supplied filter.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	s = strings.ReplaceAll(s, "_", `\_`)
	return s
}
