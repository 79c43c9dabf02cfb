package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"petsynth/internal/auth"
	"petsynth/internal/config"
	"petsynth/internal/middleware"
	"petsynth/internal/services"
	"petsynth/internal/utils"
	"petsynth/internal/validation"
)

// AuthHandler handles registration, login and profile routes
type AuthHandler struct {
	DB  *gorm.DB
	Cfg *config.Config
}

// Register handles POST /api/auth/register
// @Summary Register a new user
// @Description Create an account and return a signed session token
// @Tags Auth
// @Accept json
// @Produce json
// @Param payload body validation.Credentials true "Credentials"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var creds validation.Credentials
	if err := c.BodyParser(&creds); err != nil {
		return utils.ErrorResponse(c, "Invalid JSON body", fiber.StatusBadRequest, "validation")
	}

	if violations := validation.ValidateCredentials(&creds); len(violations) > 0 {
		return utils.ValidationErrorResponse(c, "Invalid input", violations)
	}

	if _, err := services.FindUserByUsername(h.DB, creds.Username); err == nil {
		return utils.ErrorResponse(c, "Username already taken", fiber.StatusConflict, "conflict")
	} else if !errors.Is(err, services.ErrNotFound) {
		return err
	}

	hash, err := auth.HashPassword(creds.Password)
	if err != nil {
		return err
	}

	user, err := services.CreateUser(h.DB, creds.Username, hash)
	if err != nil {
		return err
	}

	return h.respondWithToken(c, user.ID, user.Username, fiber.StatusCreated)
}

// Login handles POST /api/auth/login
// @Summary Login with existing credentials
// @Tags Auth
// @Accept json
// @Produce json
// @Param payload body validation.Credentials true "Credentials"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var creds validation.Credentials
	if err := c.BodyParser(&creds); err != nil {
		return utils.ErrorResponse(c, "Invalid JSON body", fiber.StatusBadRequest, "validation")
	}

	if violations := validation.ValidateCredentials(&creds); len(violations) > 0 {
		return utils.ValidationErrorResponse(c, "Invalid input", violations)
	}

	user, err := services.FindUserByUsername(h.DB, creds.Username)
	if errors.Is(err, services.ErrNotFound) {
		return utils.ErrorResponse(c, "Invalid credentials", fiber.StatusUnauthorized, "auth")
	}
	if err != nil {
		return err
	}

	if user.PasswordHash == nil || !auth.VerifyPassword(creds.Password, *user.PasswordHash) {
		return utils.ErrorResponse(c, "Invalid credentials", fiber.StatusUnauthorized, "auth")
	}

	return h.respondWithToken(c, user.ID, user.Username, fiber.StatusOK)
}

// Me handles GET /api/auth/me
// @Summary Get the authenticated user profile
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	return c.JSON(fiber.Map{
		"id":       user.ID,
		"username": user.Username,
	})
}

func (h *AuthHandler) respondWithToken(c *fiber.Ctx, userID, username string, status int) error {
	ttl := time.Duration(h.Cfg.TokenTTLSec) * time.Second
	token, err := auth.IssueToken(h.Cfg.JWTSecret, userID, username, ttl)
	if err != nil {
		return err
	}

	// HttpOnly cookie for the page flow; the API uses the bearer header
	c.Cookie(&fiber.Cookie{
		Name:     middleware.AuthCookieName,
		Value:    token,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
		MaxAge:   h.Cfg.TokenTTLSec,
	})

	return c.Status(status).JSON(fiber.Map{
		"token": token,
		"user": fiber.Map{
			"id":       userID,
			"username": username,
		},
	})
}
