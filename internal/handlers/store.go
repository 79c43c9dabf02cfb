package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"petsynth/internal/middleware"
	"petsynth/internal/services"
	"petsynth/internal/utils"
)

// StoreHandler handles the user's pet collection routes
type StoreHandler struct {
	DB *gorm.DB
}

type addStoreRequest struct {
	PetID string `json:"petId"`
}

// List handles GET /api/store
// @Summary List the caller's collection
// @Tags Store
// @Produce json
// @Security BearerAuth
// @Success 200 {array} services.StoreItem
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /store [get]
func (h *StoreHandler) List(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	items, err := services.ListUserPets(h.DB, user.ID)
	if err != nil {
		return err
	}

	return c.JSON(items)
}

// Add handles POST /api/store
// @Summary Add a pet to the caller's collection
// @Description Idempotent: adding an already-present pet succeeds with 200
// @Tags Store
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body addStoreRequest true "Pet reference"
// @Success 201 {object} map[string]interface{}
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /store [post]
func (h *StoreHandler) Add(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	var req addStoreRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, "Invalid JSON body", fiber.StatusBadRequest, "validation")
	}
	if req.PetID == "" {
		return utils.ErrorResponse(c, "petId is required", fiber.StatusBadRequest, "validation")
	}

	// Missing and hidden pets are indistinguishable to the caller
	if _, err := services.GetPet(h.DB, req.PetID); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return utils.NotFoundResponse(c, "Pet not found")
		}
		return err
	}

	added, err := services.AddUserPet(h.DB, user.ID, req.PetID)
	if err != nil {
		return err
	}

	if !added {
		return c.JSON(fiber.Map{"message": "Pet already in store"})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Pet added to store"})
}

// Remove handles DELETE /api/store/:petId
// @Summary Remove a pet from the caller's collection
// @Tags Store
// @Produce json
// @Security BearerAuth
// @Param petId path string true "Pet ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /store/{petId} [delete]
func (h *StoreHandler) Remove(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	petID := c.Params("petId")

	removed, err := services.RemoveUserPet(h.DB, user.ID, petID)
	if err != nil {
		return err
	}
	if !removed {
		return utils.NotFoundResponse(c, "Pet not in store")
	}

	return c.JSON(fiber.Map{"message": "Pet removed from store"})
}
