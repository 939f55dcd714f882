package handler

import (
	"bio-kids-puzzles/internal/domain"
	"bio-kids-puzzles/internal/dto"
	"bio-kids-puzzles/internal/middleware"
	"bio-kids-puzzles/internal/service"
	"bio-kids-puzzles/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// SessionHandler handles quiz session HTTP requests
type SessionHandler struct {
	service   service.QuizSessionService
	validator *validation.Validator
}

// NewSessionHandler creates a new SessionHandler instance
func NewSessionHandler(service service.QuizSessionService, validator *validation.Validator) *SessionHandler {
	return &SessionHandler{service: service, validator: validator}
}

func sessionID(c *fiber.Ctx) string {
	return c.Locals(middleware.SessionIDKey).(string)
}

// StartSession godoc
// @Summary Start a quiz session
// @Description Opens an unlocked level and starts a new attempt at its first question
// @Tags sessions
// @Produce json
// @Param id path int true "Level ID"
// @Success 201 {object} dto.SessionResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 403 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /levels/{id}/sessions [post]
func (h *SessionHandler) StartSession(c *fiber.Ctx) error {
	levelID := c.Locals(middleware.LevelIDKey).(int)
	resp, err := h.service.Start(c.UserContext(), levelID)
	if err != nil {
		return err
	}
	c.Location("/api/sessions/" + resp.SessionID)
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// GetSession godoc
// @Summary Get a quiz session
// @Tags sessions
// @Produce json
// @Param sessionID path string true "Session ID"
// @Success 200 {object} dto.SessionResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /sessions/{sessionID} [get]
func (h *SessionHandler) GetSession(c *fiber.Ctx) error {
	resp, err := h.service.Get(c.UserContext(), sessionID(c))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// SubmitAnswer godoc
// @Summary Answer the current question
// @Description Records the chosen option. Answering an already answered question changes nothing.
// @Tags sessions
// @Accept json
// @Produce json
// @Param sessionID path string true "Session ID"
// @Param answer body dto.SubmitAnswerRequest true "Chosen option"
// @Success 200 {object} dto.SubmitAnswerResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /sessions/{sessionID}/answer [post]
func (h *SessionHandler) SubmitAnswer(c *fiber.Ctx) error {
	var req dto.SubmitAnswerRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.ValidationErrors{domain.NewInvalidFormatError("body", nil)}
	}
	if errs := h.validator.ValidateStruct(&req); len(errs) > 0 {
		return errs
	}

	resp, err := h.service.SubmitAnswer(c.UserContext(), sessionID(c), *req.OptionIndex)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// Advance godoc
// @Summary Go to the next question
// @Description Moves past the answered current question, completing the session after the last one
// @Tags sessions
// @Produce json
// @Param sessionID path string true "Session ID"
// @Success 200 {object} dto.SessionResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Router /sessions/{sessionID}/advance [post]
func (h *SessionHandler) Advance(c *fiber.Ctx) error {
	resp, err := h.service.Advance(c.UserContext(), sessionID(c))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// Restart godoc
// @Summary Restart a quiz session
// @Description Discards the attempt and starts the level over under the same session id
// @Tags sessions
// @Produce json
// @Param sessionID path string true "Session ID"
// @Success 200 {object} dto.SessionResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /sessions/{sessionID}/restart [post]
func (h *SessionHandler) Restart(c *fiber.Ctx) error {
	resp, err := h.service.Restart(c.UserContext(), sessionID(c))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// EndSession godoc
// @Summary End a quiz session
// @Tags sessions
// @Param sessionID path string true "Session ID"
// @Success 204
// @Failure 404 {object} middleware.ErrorResponse
// @Router /sessions/{sessionID} [delete]
func (h *SessionHandler) EndSession(c *fiber.Ctx) error {
	if err := h.service.End(c.UserContext(), sessionID(c)); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
