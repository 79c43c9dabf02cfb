package utils

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// ErrorResponse sends the standard error envelope
func ErrorResponse(c *fiber.Ctx, message string, status int, errorType string) error {
	return c.Status(status).JSON(fiber.Map{
		"status":    status,
		"message":   message,
		"ok":        false,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"url":       c.OriginalURL(),
		"type":      errorType,
	})
}

// ValidationErrorResponse sends a 400 with the complete list of violated
// constraints so a caller can report all problems at once.
func ValidationErrorResponse(c *fiber.Ctx, message string, details []string) error {
	return validationResponse(c, fiber.StatusBadRequest, message, details)
}

// GenerationErrorResponse reports a structurally invalid model output as an
// upstream failure rather than a client error.
func GenerationErrorResponse(c *fiber.Ctx, message string, details []string) error {
	return validationResponse(c, fiber.StatusInternalServerError, message, details)
}

func validationResponse(c *fiber.Ctx, status int, message string, details []string) error {
	return c.Status(status).JSON(fiber.Map{
		"status":    status,
		"message":   message,
		"ok":        false,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"url":       c.OriginalURL(),
		"type":      "validation",
		"details":   details,
	})
}

// NotFoundResponse sends a 404 not found response
func NotFoundResponse(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"status":    fiber.StatusNotFound,
		"message":   message,
		"ok":        false,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"url":       c.OriginalURL(),
	})
}

// ErrorResponseStruct defines the schema for error responses
type ErrorResponseStruct struct {
	Status    int      `json:"status"`
	Message   string   `json:"message"`
	Ok        bool     `json:"ok"`
	Timestamp string   `json:"timestamp"`
	URL       string   `json:"url"`
	Type      string   `json:"type,omitempty"`
	Details   []string `json:"details,omitempty"`
}
