package handlers

import (
	"campus-assetdesk/internal/config"
	"campus-assetdesk/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// HealthHandler handles liveness endpoints
type HealthHandler struct{}

// NewHealthHandler creates a new health handler
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// Root returns a welcome message
// @Summary API root
// @Tags Health
// @Produce json
// @Success 200 {object} response.Response
// @Router / [get]
func (h *HealthHandler) Root(c *fiber.Ctx) error {
	return response.Success(c, "Campus AssetDesk API", fiber.Map{
		"docs": "/swagger/index.html",
	})
}

// Check reports service and database health
// @Summary Health check
// @Tags Health
// @Produce json
// @Success 200 {object} response.Response
// @Failure 503 {object} response.Response
// @Router /health [get]
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	if err := config.HealthCheck(); err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(response.Response{
			Success: false,
			Message: "Service unhealthy",
			Error:   "database unreachable",
		})
	}
	return response.Success(c, "Service healthy", fiber.Map{
		"status": "ok",
	})
}
