package console

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/gestion-cliente/internal/application/dto"
	"github.com/jhoicas/gestion-cliente/internal/domain"
)

// userMessager errores del transporte que traen el texto del backend.
type userMessager interface {
	UserMessage() string
}

// respondError traduce un error de caso de uso a estado HTTP y dto.ErrorResponse.
func respondError(c *fiber.Ctx, err error) error {
	status, code, msg := classify(err)
	var um userMessager
	if errors.As(err, &um) && um.UserMessage() != "" {
		msg = um.UserMessage()
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: msg})
}

func classify(err error) (int, string, string) {
	switch {
	case errors.Is(err, domain.ErrUnauthorized), errors.Is(err, domain.ErrSessionNotFound):
		return fiber.StatusUnauthorized, "UNAUTHORIZED", domain.MsgUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, "FORBIDDEN", domain.MsgForbidden
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound):
		return fiber.StatusNotFound, "NOT_FOUND", domain.MsgNotFound
	case errors.Is(err, domain.ErrInsufficientStock):
		return fiber.StatusConflict, "INSUFFICIENT_STOCK", domain.ErrInsufficientStock.Error()
	case errors.Is(err, domain.ErrEmptyCart):
		return fiber.StatusBadRequest, "EMPTY_CART", domain.ErrEmptyCart.Error()
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, "VALIDATION", domain.ErrInvalidInput.Error()
	case errors.Is(err, domain.ErrNetwork),
		errors.Is(err, context.DeadlineExceeded):
		return fiber.StatusBadGateway, "NETWORK", domain.MsgNetworkError
	case errors.Is(err, domain.ErrServer):
		return fiber.StatusBadGateway, "UPSTREAM", domain.MsgServerError
	default:
		return fiber.StatusInternalServerError, "INTERNAL", domain.MsgServerError
	}
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}

func badID(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id inválido"})
}
