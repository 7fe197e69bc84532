package console

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/gestion-cliente/internal/application/navigation"
	"github.com/jhoicas/gestion-cliente/internal/application/usecase"
)

// View envoltorio de toda vista renderizada: barra de navegación más los datos de la página.
type View struct {
	Page   string            `json:"page"`
	Navbar navigation.Navbar `json:"navbar"`
	Data   any               `json:"data,omitempty"`
}

func render(c *fiber.Ctx, src usecase.SessionSource, page string, data any) error {
	return c.JSON(View{Page: page, Navbar: navigation.Present(src.Session()), Data: data})
}
