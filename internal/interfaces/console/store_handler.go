package console

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/gestion-cliente/internal/application/dto"
	"github.com/jhoicas/gestion-cliente/internal/application/usecase"
)

// StoreHandler vista /store y compra.
type StoreHandler struct {
	uc  *usecase.StoreUseCase
	src usecase.SessionSource
}

// NewStoreHandler construye el handler.
func NewStoreHandler(uc *usecase.StoreUseCase, src usecase.SessionSource) *StoreHandler {
	return &StoreHandler{uc: uc, src: src}
}

// List GET /store.
func (h *StoreHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.Products(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return render(c, h.src, "store", out)
}

// Checkout POST /store/checkout {items, medioPago}.
func (h *StoreHandler) Checkout(c *fiber.Ctx) error {
	var in dto.CheckoutRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	ctx := c.UserContext()
	cart, err := h.uc.CartFor(ctx, in.Items)
	if err != nil {
		return respondError(c, err)
	}
	order, err := h.uc.Checkout(ctx, cart, in.PaymentMethod)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(order)
}
