// Package navigation arma la barra de navegación a partir de la sesión.
package navigation

import (
	"github.com/jhoicas/gestion-cliente/internal/domain/entity"
	"github.com/jhoicas/gestion-cliente/internal/domain/rbac"
)

// Textos fijos de la barra.
const (
	Brand         = "Sistema de Gestión"
	BrandIcon     = "🏢"
	LogoutLabel   = "Salir"
	LogoutConfirm = "¿Estás seguro de que deseas cerrar sesión?"
)

// Navbar modelo de la barra. Sin sesión Visible es false y el resto queda vacío.
type Navbar struct {
	Visible  bool              `json:"visible"`
	Brand    string            `json:"brand,omitempty"`
	Items    []entity.MenuItem `json:"items,omitempty"`
	UserName string            `json:"userName,omitempty"`
	RoleName string            `json:"roleName,omitempty"`
	Logout   string            `json:"logout,omitempty"`
}

// Present construye la barra visible para la sesión.
func Present(sess entity.Session) Navbar {
	if !sess.IsAuthenticated || sess.User == nil {
		return Navbar{}
	}
	role := sess.RawRole()
	return Navbar{
		Visible:  true,
		Brand:    Brand,
		Items:    rbac.MenuItems(role),
		UserName: sess.User.DisplayLabel(),
		RoleName: rbac.DisplayName(role),
		Logout:   LogoutLabel,
	}
}

// Active indica si el ítem corresponde a la ruta actual.
func Active(item entity.MenuItem, path string) bool {
	return item.Path == path
}
