package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"petsynth/internal/models"
)

// StoreItem is the minimal pet projection returned for a user's collection.
type StoreItem struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Species    string `json:"species"`
	PriceCents int    `json:"priceCents"`
	ImageURL   string `json:"imageUrl"`
}

// ListUserPets returns the pets in the user's collection.
func ListUserPets(db *gorm.DB, userID string) ([]StoreItem, error) {
	items := []StoreItem{}
	err := db.Model(&models.UserPet{}).
		Select("pets.id, pets.name, pets.species, pets.price_cents, pets.image_url").
		Joins("INNER JOIN pets ON pets.id = user_pets.pet_id").
		Where("user_pets.user_id = ?", userID).
		Scan(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list user pets: %w", err)
	}
	return items, nil
}

// AddUserPet associates a pet with the user's collection. The add is
// idempotent: an already-present pair reports added=false with no error.
func AddUserPet(db *gorm.DB, userID, petID string) (bool, error) {
	var existing models.UserPet
	err := db.Where("user_id = ? AND pet_id = ?", userID, petID).First(&existing).Error
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, fmt.Errorf("failed to check user pet: %w", err)
	}

	userPet := models.UserPet{
		ID:      uuid.NewString(),
		UserID:  userID,
		PetID:   petID,
		AddedAt: time.Now().UnixMilli(),
	}
	if err := db.Create(&userPet).Error; err != nil {
		return false, fmt.Errorf("failed to add user pet: %w", err)
	}

	return true, nil
}

// RemoveUserPet deletes the association. removed=false means the pair was
// not present.
func RemoveUserPet(db *gorm.DB, userID, petID string) (bool, error) {
	result := db.Where("user_id = ? AND pet_id = ?", userID, petID).Delete(&models.UserPet{})
	if result.Error != nil {
		return false, fmt.Errorf("failed to remove user pet: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}
