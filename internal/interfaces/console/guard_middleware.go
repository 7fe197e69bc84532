package console

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/gestion-cliente/internal/application/guard"
	"github.com/jhoicas/gestion-cliente/internal/application/usecase"
	"github.com/jhoicas/gestion-cliente/internal/domain/entity"
	"github.com/jhoicas/gestion-cliente/pkg/logger"
)

// Textos de la vista de acceso denegado.
const (
	DeniedTitle     = "🚫 Acceso Denegado"
	DeniedRoleLabel = "Tu rol actual"
)

// DecisionView cuerpo de las respuestas que no renderizan la vista pedida.
type DecisionView struct {
	Kind      string `json:"kind"`
	Title     string `json:"title,omitempty"`
	Message   string `json:"message,omitempty"`
	RoleLabel string `json:"roleLabel,omitempty"`
	Role      string `json:"role,omitempty"`
	Path      string `json:"path,omitempty"`
}

// GuardRoute evalúa la tabla de rutas para page (no para la ruta concreta: /products/7
// usa los guards de /products).
func GuardRoute(src usecase.SessionSource, page string, log *logger.Logger) fiber.Handler {
	return guardHandler(src, page, log, func(sess entity.Session) guard.Decision {
		return guard.Evaluate(sess, page)
	})
}

// RequireGuards encadena guards explícitos, sin pasar por la tabla de rutas.
func RequireGuards(src usecase.SessionSource, log *logger.Logger, guards ...guard.Func) fiber.Handler {
	return guardHandler(src, "", log, func(sess entity.Session) guard.Decision {
		return guard.Chain(sess, guards...)
	})
}

func guardHandler(src usecase.SessionSource, page string, log *logger.Logger, decide func(entity.Session) guard.Decision) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess := src.Session()
		d := decide(sess)
		if d.Allowed() {
			return c.Next()
		}
		route := page
		if route == "" {
			route = c.Path()
		}
		// Un usuario autenticado redirigido fuera de una vista protegida es una denegación;
		// la redirección de "/" a la ruta por defecto no lo es.
		if d.Kind == guard.Denied || (d.Kind == guard.Redirect && sess.IsAuthenticated && route != "/") {
			log.Info().Str("ruta", route).Str("rol", sess.RawRole()).Str("decision", d.Kind.String()).Msg("acceso denegado")
		}
		return writeDecision(c, d)
	}
}

// writeDecision Pending → 202, Redirect → 302, Denied → 403, NotFound → 404.
func writeDecision(c *fiber.Ctx, d guard.Decision) error {
	switch d.Kind {
	case guard.Pending:
		return c.Status(fiber.StatusAccepted).JSON(DecisionView{Kind: d.Kind.String(), Message: d.Message})
	case guard.Redirect:
		return c.Redirect(d.Path, fiber.StatusFound)
	case guard.Denied:
		return c.Status(fiber.StatusForbidden).JSON(DecisionView{
			Kind:      d.Kind.String(),
			Title:     DeniedTitle,
			Message:   d.Message,
			RoleLabel: DeniedRoleLabel,
			Role:      d.Role,
		})
	default:
		return NotFound(c)
	}
}

// NotFound respuesta para cualquier ruta fuera de la tabla.
func NotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(DecisionView{Kind: guard.NotFound.String(), Message: guard.MsgPageNotFound})
}
