package models

// User is a registered account. PasswordHash is nil only for
// externally-provisioned accounts; it is never serialized.
type User struct {
	ID           string  `gorm:"type:char(36);primaryKey" json:"id"`
	Username     string  `gorm:"uniqueIndex;size:24;not null" json:"username"`
	PasswordHash *string `gorm:"size:255" json:"-"`
	CreatedAt    int64   `gorm:"not null" json:"createdAt"` // epoch ms
}

// TableName overrides the table name for User
func (User) TableName() string {
	return "users"
}
