package console

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/gestion-cliente/internal/application/auth"
	"github.com/jhoicas/gestion-cliente/internal/application/dto"
	"github.com/jhoicas/gestion-cliente/internal/application/navigation"
	"github.com/jhoicas/gestion-cliente/internal/domain"
	"github.com/jhoicas/gestion-cliente/internal/domain/entity"
	"github.com/jhoicas/gestion-cliente/internal/domain/rbac"
)

// AuthHandler login, logout y estado de sesión.
type AuthHandler struct {
	m *auth.Manager
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(m *auth.Manager) *AuthHandler {
	return &AuthHandler{m: m}
}

// SessionView estado de sesión expuesto en GET /session.
type SessionView struct {
	State           string            `json:"state"`
	IsAuthenticated bool              `json:"isAuthenticated"`
	IsLoading       bool              `json:"isLoading"`
	User            *entity.User      `json:"user,omitempty"`
	RoleName        string            `json:"roleName,omitempty"`
	Permissions     rbac.Permissions  `json:"permissions"`
	Granted         []string          `json:"granted"`
	Error           string            `json:"error,omitempty"`
	Navbar          navigation.Navbar `json:"navbar"`
}

// LoginView formulario de login; con sesión activa redirige a la ruta por defecto del rol.
func (h *AuthHandler) LoginView(c *fiber.Ctx) error {
	sess := h.m.Session()
	if target := rbac.DefaultRoute(sess.RawRole()); sess.IsAuthenticated && target != rbac.RouteLogin {
		return c.Redirect(target, fiber.StatusFound)
	}
	return c.JSON(fiber.Map{
		"page":  "login",
		"brand": navigation.Brand,
		"error": sess.Error,
	})
}

// Login POST /login {username, password}.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	res := h.m.Login(c.UserContext(), auth.Credentials{Username: in.Username, Password: in.Password})
	if res.Success {
		return c.JSON(res)
	}
	if res.Message == domain.MsgMissingFields {
		return c.Status(fiber.StatusBadRequest).JSON(res)
	}
	return c.Status(fiber.StatusUnauthorized).JSON(res)
}

// Logout POST /logout. Siempre 200.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	return c.JSON(h.m.Logout(c.UserContext()))
}

// Session GET /session.
func (h *AuthHandler) Session(c *fiber.Ctx) error {
	sess := h.m.Session()
	perms := rbac.PermissionsFor(sess.RawRole())
	out := SessionView{
		State:           sess.State.String(),
		IsAuthenticated: sess.IsAuthenticated,
		IsLoading:       sess.IsLoading,
		User:            sess.User,
		Permissions:     perms,
		Granted:         perms.Granted(),
		Error:           sess.Error,
		Navbar:          navigation.Present(sess),
	}
	if sess.User != nil {
		out.RoleName = rbac.DisplayName(sess.User.Role)
	}
	return c.JSON(out)
}
