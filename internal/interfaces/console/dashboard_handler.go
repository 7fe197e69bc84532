package console

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/gestion-cliente/internal/application/usecase"
)

// DashboardHandler vista /dashboard.
type DashboardHandler struct {
	uc  *usecase.DashboardUseCase
	src usecase.SessionSource
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *usecase.DashboardUseCase, src usecase.SessionSource) *DashboardHandler {
	return &DashboardHandler{uc: uc, src: src}
}

// Show contadores visibles para el rol.
func (h *DashboardHandler) Show(c *fiber.Ctx) error {
	stats, err := h.uc.Load(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return render(c, h.src, "dashboard", stats)
}
