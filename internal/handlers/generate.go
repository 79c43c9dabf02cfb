package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"petsynth/internal/ai"
	"petsynth/internal/middleware"
	"petsynth/internal/services"
	"petsynth/internal/utils"
	"petsynth/internal/validation"
)

// GenerateHandler drives the draft-generation and acceptance pipeline
type GenerateHandler struct {
	DB     *gorm.DB
	Text   ai.TextProvider
	Images ai.ImageProvider
}

// Generate handles POST /api/generate
// @Summary Generate a pet draft from a free-text idea
// @Description Calls the configured text provider, validates the draft, resolves an image and records telemetry
// @Tags Generate
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body validation.GenerateRequest true "Idea"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 429 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /generate [post]
func (h *GenerateHandler) Generate(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	var req validation.GenerateRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, "Invalid JSON body", fiber.StatusBadRequest, "validation")
	}
	if violations := validation.ValidateGenerateRequest(&req); len(violations) > 0 {
		return utils.ValidationErrorResponse(c, "Invalid input", violations)
	}

	start := time.Now()
	result, err := h.Text.GenerateDraft(c.UserContext(), req.Prompt)
	latencyMs := time.Since(start).Milliseconds()
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "generation")
	}

	draft := result.Draft
	if violations := validation.ValidateDraft(&draft, validation.StageGenerate); len(violations) > 0 {
		return utils.GenerationErrorResponse(c, "Generated draft validation failed", violations)
	}

	image := h.Images.CreateImage(c.UserContext(), draft.ImagePrompt, draft.Name, "")
	draft.ImageURL = image.ImageURL

	// Telemetry only once the draft has parsed and validated; failed
	// attempts are not persisted
	if err := services.RecordGeneration(h.DB, user.ID, req.Prompt, result.Model, result.Usage, latencyMs); err != nil {
		return err
	}

	response := fiber.Map{"draft": draft}
	if image.Warning != "" {
		response["imageWarning"] = image.Warning
	}

	return c.JSON(response)
}

// Accept handles POST /api/generate/accept
// @Summary Accept a generated draft into the catalog
// @Description Validates the accept payload, persists the pet (published, owned by the caller) and adds it to the caller's collection
// @Tags Generate
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body validation.PetDraft true "Draft with imageUrl"
// @Success 201 {object} models.Pet
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /generate/accept [post]
func (h *GenerateHandler) Accept(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	var draft validation.PetDraft
	if err := c.BodyParser(&draft); err != nil {
		return utils.ErrorResponse(c, "Invalid JSON body", fiber.StatusBadRequest, "validation")
	}

	if violations := validation.ValidateDraft(&draft, validation.StageAccept); len(violations) > 0 {
		return utils.ValidationErrorResponse(c, "Invalid draft", violations)
	}

	pet, err := services.CreatePet(h.DB, &draft, user.ID)
	if err != nil {
		return err
	}

	if _, err := services.AddUserPet(h.DB, user.ID, pet.ID); err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(pet)
}
