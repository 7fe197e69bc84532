package console

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/gestion-cliente/internal/application/dto"
	"github.com/jhoicas/gestion-cliente/internal/application/usecase"
)

// OrderHandler vista /orders y sus acciones.
type OrderHandler struct {
	uc  *usecase.OrderUseCase
	src usecase.SessionSource
}

// NewOrderHandler construye el handler.
func NewOrderHandler(uc *usecase.OrderUseCase, src usecase.SessionSource) *OrderHandler {
	return &OrderHandler{uc: uc, src: src}
}

// List GET /orders; ?mine=true devuelve las órdenes propias.
func (h *OrderHandler) List(c *fiber.Ctx) error {
	list := h.uc.List
	if c.QueryBool("mine") {
		list = h.uc.MyOrders
	}
	out, err := list(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return render(c, h.src, "orders", out)
}

// Statistics GET /orders/statistics.
func (h *OrderHandler) Statistics(c *fiber.Ctx) error {
	out, err := h.uc.Statistics(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID GET /orders/:id.
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return badID(c)
	}
	out, err := h.uc.Get(c.UserContext(), int64(id))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Details GET /orders/:id/details.
func (h *OrderHandler) Details(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return badID(c)
	}
	out, err := h.uc.Details(c.UserContext(), int64(id))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Create POST /orders.
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrderInput
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateStatus PUT /orders/:id/status.
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return badID(c)
	}
	var in dto.UpdateOrderStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.UpdateStatus(c.UserContext(), int64(id), in.Status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Cancel DELETE /orders/:id.
func (h *OrderHandler) Cancel(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return badID(c)
	}
	if err := h.uc.Cancel(c.UserContext(), int64(id)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
