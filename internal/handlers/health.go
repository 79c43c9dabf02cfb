package handlers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"petsynth/internal/config"
	"petsynth/internal/services"
)

// HealthHandler reports process and database liveness
type HealthHandler struct {
	DB  *gorm.DB
	Cfg *config.Config
}

// Check handles GET /health
// @Summary Health check
// @Tags Health
// @Produce json
// @Success 200 {object} services.HealthCheckResult
// @Failure 503 {object} services.HealthCheckResult
// @Router /health [get]
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	result := services.HealthCheck(h.Cfg, h.DB)

	status := fiber.StatusOK
	if result.Status != "healthy" {
		status = fiber.StatusServiceUnavailable
	}
	return c.Status(status).JSON(result)
}
