package models

import (
	"gorm.io/datatypes"
)

// Pet statuses visible in the catalog.
const (
	PetStatusSeed      = "seed"
	PetStatusPublished = "published"
)

// Pet is a catalog entry, created either by the seeding process
// (status=seed, no owner) or by a user accepting a generated draft
// (status=published, owner set). Immutable after creation.
type Pet struct {
	ID               string         `gorm:"type:char(36);primaryKey" json:"id"`
	Name             string         `gorm:"size:40" json:"name"`
	Species          string         `gorm:"size:30" json:"species"`
	Traits           datatypes.JSON `gorm:"type:json" json:"traits"`
	Description      string         `gorm:"type:text" json:"description"`
	CareInstructions string         `gorm:"type:text" json:"careInstructions"`
	PriceCents       int            `json:"priceCents"`
	ImageURL         string         `gorm:"column:image_url" json:"imageUrl"`
	Status           string         `gorm:"size:16;index" json:"status"`
	CreatedByUserID  *string        `gorm:"type:char(36)" json:"createdByUserId"`
	CreatedAt        int64          `gorm:"not null" json:"createdAt"` // epoch ms
}

// TableName overrides the table name for Pet
func (Pet) TableName() string {
	return "pets"
}

// UserPet associates a User with a Pet in their collection.
// At most one association per (UserID, PetID) pair.
type UserPet struct {
	ID      string `gorm:"type:char(36);primaryKey" json:"id"`
	UserID  string `gorm:"type:char(36);not null;index:idx_user_pet,unique" json:"userId"`
	PetID   string `gorm:"type:char(36);not null;index:idx_user_pet,unique" json:"petId"`
	AddedAt int64  `gorm:"not null" json:"addedAt"` // epoch ms
}

// TableName overrides the table name for UserPet
func (UserPet) TableName() string {
	return "user_pets"
}
