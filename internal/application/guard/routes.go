package guard

import (
	"strings"

	"github.com/jhoicas/gestion-cliente/internal/domain/entity"
	"github.com/jhoicas/gestion-cliente/internal/domain/rbac"
)

var (
	staffRoles = []string{entity.RoleNameAdmin, entity.RoleNameAdministrador, entity.RoleNameVendedor}
	adminRoles = []string{entity.RoleNameAdmin, entity.RoleNameAdministrador}
)

// Route entrada de la tabla de rutas de la aplicación.
type Route struct {
	Path   string
	Public bool
	Guards []Func
}

// Routes tabla de rutas de la aplicación, en el orden en que se registran.
func Routes() []Route {
	return []Route{
		{Path: rbac.RouteLogin, Public: true},
		{Path: rbac.RouteHome, Guards: []Func{Authenticated}},
		{Path: rbac.RouteDashboard, Guards: []Func{Authenticated, Role(Options{AllowedRoles: staffRoles})}},
		{Path: rbac.RouteProducts, Guards: []Func{Authenticated, Role(Options{AllowedRoles: staffRoles})}},
		{Path: rbac.RouteOrders, Guards: []Func{Authenticated, Role(Options{AllowedRoles: staffRoles})}},
		{Path: rbac.RouteUsers, Guards: []Func{Authenticated, Role(Options{AllowedRoles: adminRoles})}},
		{Path: rbac.RouteReports, Guards: []Func{Authenticated, Role(Options{AllowedRoles: adminRoles})}},
		{Path: rbac.RouteStore, Guards: []Func{Authenticated}},
		{Path: rbac.RouteProfile, Guards: []Func{Authenticated}},
	}
}

// ForRoute devuelve la cadena de guards de una ruta exacta (sin barra final).
func ForRoute(path string) ([]Func, bool) {
	path = cleanPath(path)
	for _, r := range Routes() {
		if r.Path == path {
			return r.Guards, true
		}
	}
	return nil, false
}

// Evaluate decide para una ruta completa: 404 si no existe y, en "/", redirección a la
// ruta por defecto del rol una vez autenticado.
func Evaluate(sess entity.Session, path string) Decision {
	path = cleanPath(path)
	guards, ok := ForRoute(path)
	if !ok {
		return Decision{Kind: NotFound, Message: MsgPageNotFound}
	}
	d := Chain(sess, guards...)
	if d.Kind == Render && path == rbac.RouteHome {
		return redirect(rbac.DefaultRoute(sess.RawRole()))
	}
	return d
}

func cleanPath(p string) string {
	if p == "" {
		return rbac.RouteHome
	}
	if len(p) > 1 {
		p = strings.TrimRight(p, "/")
		if p == "" {
			return rbac.RouteHome
		}
	}
	return p
}
