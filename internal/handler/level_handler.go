package handler

import (
	"bio-kids-puzzles/internal/middleware"
	"bio-kids-puzzles/internal/service"

	"github.com/gofiber/fiber/v2"
)

// LevelHandler serves the level picker
type LevelHandler struct {
	service service.LevelService
}

// NewLevelHandler creates a new LevelHandler instance
func NewLevelHandler(service service.LevelService) *LevelHandler {
	return &LevelHandler{service: service}
}

// ListLevels godoc
// @Summary List levels
// @Description Returns every level in catalog order with its lock state
// @Tags levels
// @Produce json
// @Success 200 {object} dto.LevelListResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /levels [get]
func (h *LevelHandler) ListLevels(c *fiber.Ctx) error {
	resp, err := h.service.ListLevels(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// GetLevel godoc
// @Summary Get a level
// @Description Returns the summary of one level
// @Tags levels
// @Produce json
// @Param id path int true "Level ID"
// @Success 200 {object} dto.LevelSummaryResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /levels/{id} [get]
func (h *LevelHandler) GetLevel(c *fiber.Ctx) error {
	levelID := c.Locals(middleware.LevelIDKey).(int)
	resp, err := h.service.GetLevel(c.UserContext(), levelID)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}
