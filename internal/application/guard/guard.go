// Package guard decide qué hacer al abrir una vista protegida: renderizar, esperar,
// redirigir o mostrar acceso denegado. Funciones puras sobre una instantánea de sesión.
package guard

import (
	"github.com/jhoicas/gestion-cliente/internal/domain"
	"github.com/jhoicas/gestion-cliente/internal/domain/entity"
	"github.com/jhoicas/gestion-cliente/internal/domain/rbac"
)

// Kind tipo de decisión.
type Kind int

const (
	Render Kind = iota
	Redirect
	Pending
	Denied
	NotFound
)

func (k Kind) String() string {
	switch k {
	case Render:
		return "render"
	case Redirect:
		return "redirect"
	case Pending:
		return "pending"
	case Denied:
		return "denied"
	case NotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

// Mensajes de las vistas intermedias.
const (
	MsgCheckingSession     = "Verificando sesión..."
	MsgCheckingPermissions = "Verificando permisos..."
	MsgPageNotFound        = "Página no encontrada"
)

// Decision resultado de un guard. Path solo aplica a Redirect; Role es el rol crudo
// mostrado en la vista de acceso denegado.
type Decision struct {
	Kind    Kind   `json:"kind"`
	Path    string `json:"path,omitempty"`
	Message string `json:"message,omitempty"`
	Role    string `json:"role,omitempty"`
}

// Allowed true si la decisión permite renderizar la vista.
func (d Decision) Allowed() bool { return d.Kind == Render }

func render() Decision { return Decision{Kind: Render} }

func redirect(path string) Decision { return Decision{Kind: Redirect, Path: path} }

// Func guard componible.
type Func func(entity.Session) Decision

// Authenticated mientras carga devuelve Pending; sin sesión redirige a /login.
func Authenticated(sess entity.Session) Decision {
	if sess.IsLoading {
		return Decision{Kind: Pending, Message: MsgCheckingSession}
	}
	if !sess.IsAuthenticated {
		return redirect(rbac.RouteLogin)
	}
	return render()
}

// Options parámetros del guard de rol.
type Options struct {
	AllowedRoles     []string
	RedirectTo       string // vacío: ruta por defecto del rol
	ShowUnauthorized bool   // true: vista de acceso denegado en lugar de redirigir
}

// RoleGuard exige autenticación y que el rol esté en AllowedRoles.
func RoleGuard(sess entity.Session, opts Options) Decision {
	if sess.IsLoading {
		return Decision{Kind: Pending, Message: MsgCheckingPermissions}
	}
	if !sess.IsAuthenticated {
		return redirect(rbac.RouteLogin)
	}
	role := sess.RawRole()
	if rbac.HasAnyRole(role, opts.AllowedRoles) {
		return render()
	}
	if opts.ShowUnauthorized {
		return Decision{Kind: Denied, Message: domain.MsgAccessDenied, Role: role}
	}
	to := opts.RedirectTo
	if to == "" {
		to = rbac.DefaultRoute(role)
	}
	return redirect(to)
}

// Role adapta RoleGuard a Func.
func Role(opts Options) Func {
	return func(sess entity.Session) Decision { return RoleGuard(sess, opts) }
}

// Chain evalúa los guards en orden y devuelve la primera decisión distinta de Render.
func Chain(sess entity.Session, guards ...Func) Decision {
	for _, g := range guards {
		if d := g(sess); d.Kind != Render {
			return d
		}
	}
	return render()
}
