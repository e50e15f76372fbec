package handlers

import (
	"errors"

	applog "wardrobe/internal/log"
	"wardrobe/internal/services"

	"github.com/gofiber/fiber/v2"
)

// Envelope wraps every API response.
type Envelope struct {
	Data    any    `json:"data"`
	Status  int    `json:"status"`
	Message string `json:"message"`
}

func respond(c *fiber.Ctx, status int, msg string, data any) error {
	return c.Status(status).JSON(Envelope{Data: data, Status: status, Message: msg})
}

func success(c *fiber.Ctx, data any) error {
	return respond(c, fiber.StatusOK, "OK", data)
}

func statusOf(k services.Kind) int {
	switch k {
	case services.KindValidation, services.KindBadRequest:
		return fiber.StatusBadRequest
	case services.KindNotFound:
		return fiber.StatusNotFound
	case services.KindConflict:
		return fiber.StatusConflict
	}
	return fiber.StatusInternalServerError
}

// fail maps a service error onto the envelope. Internal errors are logged with
// their cause and answered with a generic message.
func fail(c *fiber.Ctx, action string, err error) error {
	kind := services.KindOf(err)
	switch kind {
	case services.KindInternal:
		applog.Error(c, action, err, nil)
	case services.KindValidation:
		applog.Security(c, "validation.fail", map[string]any{"action": action, "reason": services.Message(err)})
	}
	return respond(c, statusOf(kind), services.Message(err), nil)
}

func badBody(c *fiber.Ctx, action string, err error) error {
	applog.Security(c, "validation.fail", map[string]any{"action": action, "reason": "body", "error": err.Error()})
	return respond(c, fiber.StatusBadRequest, "Invalid request body", nil)
}

func notFoundParam(c *fiber.Ctx, field string) error {
	applog.Security(c, "validation.fail", map[string]any{"field": field})
	return respond(c, fiber.StatusNotFound, "Not found", nil)
}

// ErrorHandler answers errors that escape a handler. fiber errors below 500 keep their
// code and message; anything else is logged and hidden behind a generic 500.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) && fe.Code < fiber.StatusInternalServerError {
		return respond(c, fe.Code, fe.Message, nil)
	}
	applog.Error(c, "server.error", err, nil)
	return respond(c, fiber.StatusInternalServerError, "Internal server error", nil)
}
