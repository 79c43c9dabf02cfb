package handlers_test

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"petsynth/internal/handlers"
	"petsynth/internal/middleware"
	"petsynth/internal/models"
	"petsynth/internal/services"
)

func newStoreApp(t *testing.T) (*fiber.App, *gorm.DB, string) {
	t.Helper()

	db := setupTestDB(t)
	cfg := testCfg()
	createTestUser(t, db, "user-1", "alice")

	h := &handlers.StoreHandler{DB: db}

	app := newTestApp()
	store := app.Group("/api/store", middleware.RequireUser(cfg.JWTSecret))
	store.Get("/", h.List)
	store.Post("/", h.Add)
	store.Delete("/:petId", h.Remove)

	return app, db, bearerFor(t, cfg, "user-1", "alice")
}

// listStore fetches the caller's collection, which is a bare array.
func listStore(t *testing.T, app *fiber.App, bearer string) []services.StoreItem {
	t.Helper()

	req := httptest.NewRequest("GET", "/api/store/", nil)
	req.Header.Set("Authorization", bearer)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("Failed to read response body: %v", err)
	}

	var items []services.StoreItem
	if err := json.Unmarshal(raw, &items); err != nil {
		t.Fatalf("Failed to decode collection %q: %v", raw, err)
	}
	return items
}

func TestStoreListEmpty(t *testing.T) {
	app, _, bearer := newStoreApp(t)

	if items := listStore(t, app, bearer); len(items) != 0 {
		t.Errorf("Expected empty collection, got %d items", len(items))
	}
}

func TestStoreAddAndList(t *testing.T) {
	app, db, bearer := newStoreApp(t)
	createTestPet(t, db, "pet-1", "Nimbus", "Cloud Ferret", models.PetStatusSeed)

	status, body := doJSON(t, app, "POST", "/api/store/", bearer,
		map[string]string{"petId": "pet-1"})
	if status != 201 {
		t.Fatalf("Expected status 201, got %d (%v)", status, body)
	}
	if body["message"] != "Pet added to store" {
		t.Errorf("Unexpected message %v", body["message"])
	}

	items := listStore(t, app, bearer)
	if len(items) != 1 {
		t.Fatalf("Expected 1 item, got %d", len(items))
	}
	if items[0].ID != "pet-1" || items[0].Name != "Nimbus" {
		t.Errorf("Unexpected item %+v", items[0])
	}
}

func TestStoreAddIdempotent(t *testing.T) {
	app, db, bearer := newStoreApp(t)
	createTestPet(t, db, "pet-1", "Nimbus", "Cloud Ferret", models.PetStatusSeed)

	payload := map[string]string{"petId": "pet-1"}
	if status, _ := doJSON(t, app, "POST", "/api/store/", bearer, payload); status != 201 {
		t.Fatal("First add failed")
	}

	status, body := doJSON(t, app, "POST", "/api/store/", bearer, payload)
	if status != 200 {
		t.Errorf("Expected repeat add to return 200, got %d", status)
	}
	if body["message"] != "Pet already in store" {
		t.Errorf("Unexpected message %v", body["message"])
	}

	if items := listStore(t, app, bearer); len(items) != 1 {
		t.Errorf("Expected 1 item after repeat add, got %d", len(items))
	}
}

func TestStoreAddMissingPetID(t *testing.T) {
	app, _, bearer := newStoreApp(t)

	status, body := doJSON(t, app, "POST", "/api/store/", bearer, map[string]string{})
	if status != 400 {
		t.Errorf("Expected status 400, got %d", status)
	}
	if body["message"] != "petId is required" {
		t.Errorf("Unexpected message %v", body["message"])
	}
}

func TestStoreAddUnknownPet(t *testing.T) {
	app, _, bearer := newStoreApp(t)

	status, _ := doJSON(t, app, "POST", "/api/store/", bearer,
		map[string]string{"petId": "missing"})
	if status != 404 {
		t.Errorf("Expected status 404, got %d", status)
	}
}

func TestStoreAddHiddenPet(t *testing.T) {
	app, db, bearer := newStoreApp(t)
	createTestPet(t, db, "pet-1", "Hidden", "Ghost", "draft")

	// Hidden pets read the same as missing ones
	status, _ := doJSON(t, app, "POST", "/api/store/", bearer,
		map[string]string{"petId": "pet-1"})
	if status != 404 {
		t.Errorf("Expected status 404 for hidden pet, got %d", status)
	}
}

func TestStoreRemove(t *testing.T) {
	app, db, bearer := newStoreApp(t)
	createTestPet(t, db, "pet-1", "Nimbus", "Cloud Ferret", models.PetStatusSeed)

	doJSON(t, app, "POST", "/api/store/", bearer, map[string]string{"petId": "pet-1"})

	status, body := doJSON(t, app, "DELETE", "/api/store/pet-1", bearer, nil)
	if status != 200 {
		t.Fatalf("Expected status 200, got %d", status)
	}
	if body["message"] != "Pet removed from store" {
		t.Errorf("Unexpected message %v", body["message"])
	}

	if items := listStore(t, app, bearer); len(items) != 0 {
		t.Errorf("Expected empty collection after removal, got %d items", len(items))
	}
}

func TestStoreRemoveAbsent(t *testing.T) {
	app, _, bearer := newStoreApp(t)

	status, body := doJSON(t, app, "DELETE", "/api/store/pet-1", bearer, nil)
	if status != 404 {
		t.Errorf("Expected status 404, got %d", status)
	}
	if body["message"] != "Pet not in store" {
		t.Errorf("Unexpected message %v", body["message"])
	}
}

func TestStoreIsolatedPerUser(t *testing.T) {
	app, db, bearer := newStoreApp(t)
	cfg := testCfg()
	createTestUser(t, db, "user-2", "bob")
	createTestPet(t, db, "pet-1", "Nimbus", "Cloud Ferret", models.PetStatusSeed)

	doJSON(t, app, "POST", "/api/store/", bearer, map[string]string{"petId": "pet-1"})

	other := bearerFor(t, cfg, "user-2", "bob")
	if items := listStore(t, app, other); len(items) != 0 {
		t.Errorf("Expected bob's collection to be empty, got %d items", len(items))
	}
}

func TestStoreRequiresAuth(t *testing.T) {
	app, _, _ := newStoreApp(t)

	status, _ := doJSON(t, app, "GET", "/api/store/", "", nil)
	if status != 401 {
		t.Errorf("Expected status 401, got %d", status)
	}
}
