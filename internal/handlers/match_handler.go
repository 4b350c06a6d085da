package handlers

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"eddyzhang/jd-matcher/internal/models"
	"eddyzhang/jd-matcher/internal/services"
)

type MatchHandler struct {
	matcher services.MatcherService
}

func NewMatchHandler(matcher services.MatcherService) *MatchHandler {
	return &MatchHandler{
		matcher: matcher,
	}
}

// HandleMatch handles POST /
func (h *MatchHandler) HandleMatch(c *fiber.Ctx) error {
	var req models.MatchRequest

	if err := decodeMatchRequest(c.Body(), &req); err != nil {
		return respondError(c, fiber.StatusBadRequest, msgInvalidJSON)
	}

	result, err := h.matcher.Match(c.UserContext(), req.JD)
	if err != nil {
		status, message := matchErrorStatus(err)
		if status >= fiber.StatusInternalServerError {
			log.Printf("❌ Match failed: %v", err)
		}
		return respondError(c, status, message)
	}

	return respondJSON(c, fiber.StatusOK, result)
}

func (h *MatchHandler) HandleMethodNotAllowed(c *fiber.Ctx) error {
	c.Set(fiber.HeaderAllow, fiber.MethodPost)
	return respondError(c, fiber.StatusMethodNotAllowed, msgMethodNotAllowed)
}

func HandleHealth(c *fiber.Ctx) error {
	return respondJSON(c, fiber.StatusOK, healthResponse())
}

func healthResponse() models.HealthResponse {
	return models.HealthResponse{
		Status: "healthy",
		Time:   time.Now().Format(time.RFC3339),
	}
}

// Register wires the matcher routes onto the fiber app.
func Register(app *fiber.App, match *MatchHandler) {
	app.Get("/health", HandleHealth)
	app.Post("/", match.HandleMatch)
	app.All("/", match.HandleMethodNotAllowed)
}
