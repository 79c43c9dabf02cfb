package database

import (
	"os"
	"path/filepath"
	"testing"

	"petsynth/internal/config"
	"petsynth/internal/models"
)

func TestConnectSQLite(t *testing.T) {
	cfg := &config.Config{
		DBType:            "sqlite",
		DBDatabase:        filepath.Join(t.TempDir(), "test.db"),
		DBConnectionLimit: 2,
	}

	db, err := Connect(cfg)
	if err != nil {
		t.Fatalf("Failed to connect: %v", err)
	}
	defer Close(db)

	if err := AutoMigrate(db); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}

	// Schema is usable after migration
	user := models.User{ID: "user-1", Username: "alice", CreatedAt: 1}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to insert user: %v", err)
	}

	if _, err := os.Stat(cfg.DBDatabase); err != nil {
		t.Errorf("Expected database file on disk: %v", err)
	}
}

func TestConnectUnsupportedType(t *testing.T) {
	cfg := &config.Config{DBType: "oracle"}
	if _, err := Connect(cfg); err == nil {
		t.Error("Expected error for unsupported database type")
	}
}

func TestUserPetUniqueIndex(t *testing.T) {
	cfg := &config.Config{
		DBType:            "sqlite",
		DBDatabase:        filepath.Join(t.TempDir(), "test.db"),
		DBConnectionLimit: 2,
	}

	db, err := Connect(cfg)
	if err != nil {
		t.Fatalf("Failed to connect: %v", err)
	}
	defer Close(db)

	if err := AutoMigrate(db); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}

	first := models.UserPet{ID: "up-1", UserID: "user-1", PetID: "pet-1", AddedAt: 1}
	if err := db.Create(&first).Error; err != nil {
		t.Fatalf("Failed to insert association: %v", err)
	}

	dup := models.UserPet{ID: "up-2", UserID: "user-1", PetID: "pet-1", AddedAt: 2}
	if err := db.Create(&dup).Error; err == nil {
		t.Error("Expected the unique index to reject a duplicate pair")
	}
}
