package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

type HealthHandler struct {
	started time.Time
}

// NewHealthHandler creates the liveness handler.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{started: time.Now()}
}

// GetHealth godoc
// @Summary Health check
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (h *HealthHandler) GetHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "ok",
		"uptime": time.Since(h.started).Round(time.Second).String(),
	})
}
