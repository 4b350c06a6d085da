package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"eddyzhang/jd-matcher/internal/models"
	"eddyzhang/jd-matcher/internal/services"
)

const (
	msgInvalidJSON      = "Invalid JSON"
	msgMethodNotAllowed = "Only POST is allowed"
	msgPayloadTooLarge  = "Payload too large"
)

// decodeMatchRequest reads the request body. An empty body counts as {}.
func decodeMatchRequest(body []byte, req *models.MatchRequest) error {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	return json.Unmarshal(body, req)
}

// matchErrorStatus maps a pipeline error to the status and message returned
// to the caller.
func matchErrorStatus(err error) (int, string) {
	if errors.Is(err, services.ErrJDRequired) {
		return http.StatusBadRequest, services.ErrJDRequired.Error()
	}
	return http.StatusInternalServerError, err.Error()
}

func respondJSON(c *fiber.Ctx, status int, v any) error {
	if err := c.Status(status).JSON(v); err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
	return nil
}

func respondError(c *fiber.Ctx, status int, message string) error {
	return respondJSON(c, status, models.ErrorResponse{Error: message})
}

// ErrorHandler renders framework-level errors (unknown route, body limit,
// recovered panics) in the same {"error": ...} shape as the handlers.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := err.Error()

	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
	}

	switch code {
	case fiber.StatusRequestEntityTooLarge:
		message = msgPayloadTooLarge
	case fiber.StatusMethodNotAllowed:
		message = msgMethodNotAllowed
	}

	return respondError(c, code, message)
}
