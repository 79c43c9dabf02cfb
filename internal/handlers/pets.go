package handlers

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"petsynth/internal/services"
	"petsynth/internal/utils"
)

// PetsHandler handles public catalog routes
type PetsHandler struct {
	DB *gorm.DB
}

// List handles GET /api/pets
// @Summary List catalog pets
// @Description List visible pets with optional substring search and pagination
// @Tags Pets
// @Produce json
// @Param q query string false "Search filter"
// @Param limit query int false "Page size (max 100, default 20)"
// @Param offset query int false "Page offset"
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /pets [get]
func (h *PetsHandler) List(c *fiber.Ctx) error {
	q := c.Query("q")
	limit := clamp(c.QueryInt("limit", services.ListLimitDefault), 1, services.ListLimitMax)
	offset := c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}

	items, total, err := services.ListPets(h.DB, q, limit, offset)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"items": items,
		"meta": fiber.Map{
			"total":  total,
			"limit":  limit,
			"offset": offset,
			"count":  len(items),
		},
	})
}

// Get handles GET /api/pets/:id
// @Summary Get a single pet
// @Tags Pets
// @Produce json
// @Param id path string true "Pet ID"
// @Success 200 {object} models.Pet
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /pets/{id} [get]
func (h *PetsHandler) Get(c *fiber.Ctx) error {
	id := c.Params("id")

	pet, err := services.GetPet(h.DB, id)
	if errors.Is(err, services.ErrNotFound) {
		return utils.NotFoundResponse(c, fmt.Sprintf("Pet '%s' not found", id))
	}
	if err != nil {
		return err
	}

	return c.JSON(pet)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
