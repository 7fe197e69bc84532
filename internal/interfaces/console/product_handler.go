package console

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/gestion-cliente/internal/application/dto"
	"github.com/jhoicas/gestion-cliente/internal/application/usecase"
)

// ProductHandler vista /products y sus acciones.
type ProductHandler struct {
	uc  *usecase.CatalogUseCase
	src usecase.SessionSource
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *usecase.CatalogUseCase, src usecase.SessionSource) *ProductHandler {
	return &ProductHandler{uc: uc, src: src}
}

// List GET /products. ?q= busca, ?category= filtra; sin filtros pagina con limit/offset.
func (h *ProductHandler) List(c *fiber.Ctx) error {
	ctx := c.UserContext()
	if q := c.Query("q"); q != "" {
		out, err := h.uc.Search(ctx, q)
		if err != nil {
			return respondError(c, err)
		}
		return render(c, h.src, "products", out)
	}
	if cat := c.Query("category"); cat != "" {
		out, err := h.uc.ByCategory(ctx, cat)
		if err != nil {
			return respondError(c, err)
		}
		return render(c, h.src, "products", out)
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Page(ctx, page)
	if err != nil {
		return respondError(c, err)
	}
	return render(c, h.src, "products", out)
}

// GetByID GET /products/:id.
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
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

// Create POST /products.
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.ProductRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update PUT /products/:id.
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return badID(c)
	}
	var in dto.ProductRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), int64(id), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete DELETE /products/:id.
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return badID(c)
	}
	if err := h.uc.Delete(c.UserContext(), int64(id)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
