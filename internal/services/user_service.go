package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"petsynth/internal/models"
)

// ErrNotFound is returned when a requested entity is absent or not visible.
var ErrNotFound = errors.New("not found")

// CreateUser inserts a new user with the given password hash. The username
// unique index is the source of truth for duplicates; callers should check
// FindUserByUsername first for a clean 409.
func CreateUser(db *gorm.DB, username, passwordHash string) (*models.User, error) {
	user := models.User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: &passwordHash,
		CreatedAt:    time.Now().UnixMilli(),
	}

	if err := db.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &user, nil
}

// FindUserByUsername looks up a user by exact username.
func FindUserByUsername(db *gorm.DB, username string) (*models.User, error) {
	var user models.User
	err := db.Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return &user, nil
}
