package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"petsynth/internal/auth"
	"petsynth/internal/config"
	"petsynth/internal/models"
	"petsynth/internal/server"
)

// newTestApp creates a bare app with the application error handler, so
// middleware-raised errors map to their proper status codes.
func newTestApp() *fiber.App {
	return fiber.New(fiber.Config{ErrorHandler: server.ErrorHandler})
}

var testDBSeq int64

// setupTestDB creates an isolated in-memory SQLite database for one test.
// A named shared-cache DSN keeps the schema visible across pooled
// connections.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:handlers_test_%d?mode=memory&cache=shared",
		atomic.AddInt64(&testDBSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Pet{},
		&models.UserPet{},
		&models.Generation{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

func testCfg() *config.Config {
	return &config.Config{
		JWTSecret:   "handlers-test-secret",
		TokenTTLSec: 3600,
	}
}

// bearerFor issues a token for a synthetic identity.
func bearerFor(t *testing.T, cfg *config.Config, userID, username string) string {
	t.Helper()
	token, err := auth.IssueToken(cfg.JWTSecret, userID, username, time.Hour)
	if err != nil {
		t.Fatalf("Failed to issue test token: %v", err)
	}
	return "Bearer " + token
}

// createTestUser inserts a user row directly.
func createTestUser(t *testing.T, db *gorm.DB, id, username string) {
	t.Helper()
	user := models.User{
		ID:        id,
		Username:  username,
		CreatedAt: time.Now().UnixMilli(),
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
}

// createTestPet inserts a pet row directly.
func createTestPet(t *testing.T, db *gorm.DB, id, name, species, status string) {
	t.Helper()
	pet := models.Pet{
		ID:               id,
		Name:             name,
		Species:          species,
		Traits:           datatypes.JSON(`["friendly","small"]`),
		Description:      "A test creature with enough description text to satisfy nobody in particular.",
		CareInstructions: "- Feed daily",
		PriceCents:       10000,
		ImageURL:         "https://placehold.co/640x480?text=" + id,
		Status:           status,
		CreatedAt:        time.Now().UnixMilli(),
	}
	if err := db.Create(&pet).Error; err != nil {
		t.Fatalf("Failed to create test pet: %v", err)
	}
}

// doJSON executes a JSON request against the app and decodes the body.
func doJSON(t *testing.T, app *fiber.App, method, target, bearer string, payload interface{}) (int, map[string]interface{}) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("Failed to marshal payload: %v", err)
		}
		body = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, target, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", bearer)
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("Failed to read response body: %v", err)
	}

	var decoded map[string]interface{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &decoded); err != nil {
			t.Fatalf("Failed to decode response %q: %v", raw, err)
		}
	}

	return resp.StatusCode, decoded
}
