package rbac

import (
	"strings"

	"github.com/jhoicas/gestion-cliente/internal/domain/entity"
)

// Rutas de la aplicación.
const (
	RouteHome      = "/"
	RouteLogin     = "/login"
	RouteDashboard = "/dashboard"
	RouteProducts  = "/products"
	RouteOrders    = "/orders"
	RouteUsers     = "/users"
	RouteStore     = "/store"
	RouteReports   = "/reports"
	RouteProfile   = "/profile"
)

// IsAdmin true para ADMIN y ADMINISTRADOR (alias equivalentes).
func IsAdmin(role string) bool { return entity.ParseRole(role) == entity.RoleAdmin }

// IsVendedor true para VENDEDOR.
func IsVendedor(role string) bool { return entity.ParseRole(role) == entity.RoleVendedor }

// IsCliente true para CLIENTE.
func IsCliente(role string) bool { return entity.ParseRole(role) == entity.RoleCliente }

// HasAnyRole indica si el rol normalizado coincide con alguno de los permitidos (normalizados).
// Rol vacío o lista vacía: false.
func HasAnyRole(role string, allowed []string) bool {
	normalized := entity.NormalizeRole(role)
	if normalized == "" {
		return false
	}
	for _, a := range allowed {
		if entity.NormalizeRole(a) == normalized {
			return true
		}
	}
	return false
}

// PermissionsFor deriva el conjunto de permisos del rol. Rol desconocido: todo en false.
func PermissionsFor(role string) Permissions {
	switch entity.ParseRole(role) {
	case entity.RoleAdmin:
		return allPermissions()
	case entity.RoleVendedor:
		// Solo lectura de productos y órdenes, sin tienda.
		return Permissions{
			ViewDashboard:    true,
			ViewProducts:     true,
			ViewOrders:       true,
			ViewOrderDetails: true,
		}
	case entity.RoleCliente:
		return Permissions{
			ViewStore:    true,
			MakePurchase: true,
			CreateOrder:  true,
		}
	default:
		return Permissions{}
	}
}

type routePermission struct {
	prefix string
	allow  func(Permissions) bool
}

// routeTable se evalúa en orden; gana el primer prefijo que coincida.
var routeTable = []routePermission{
	{RouteDashboard, func(p Permissions) bool { return p.ViewDashboard }},
	{RouteProducts, func(p Permissions) bool { return p.ViewProducts }},
	{RouteOrders, func(p Permissions) bool { return p.ViewOrders }},
	{RouteUsers, func(p Permissions) bool { return p.ViewUsers }},
	{RouteStore, func(p Permissions) bool { return p.ViewStore }},
	{RouteReports, func(p Permissions) bool { return p.ViewReports }},
}

// CanAccessRoute decide si el rol puede abrir la ruta. Rutas fuera de la tabla: denegadas.
func CanAccessRoute(role, path string) bool {
	perms := PermissionsFor(role)
	for _, r := range routeTable {
		if strings.HasPrefix(path, r.prefix) {
			return r.allow(perms)
		}
	}
	return false
}

// DefaultRoute ruta de aterrizaje según el rol. Total: nunca devuelve vacío.
func DefaultRoute(role string) string {
	switch entity.ParseRole(role) {
	case entity.RoleAdmin, entity.RoleVendedor:
		return RouteDashboard
	case entity.RoleCliente:
		return RouteStore
	default:
		return RouteLogin
	}
}

// DisplayName nombre descriptivo del rol.
func DisplayName(role string) string {
	switch entity.ParseRole(role) {
	case entity.RoleAdmin:
		return "Administrador"
	case entity.RoleVendedor:
		return "Vendedor"
	case entity.RoleCliente:
		return "Cliente"
	default:
		return "Usuario"
	}
}

type menuEntry struct {
	item  entity.MenuItem
	allow func(Permissions) bool
}

var menuTable = []menuEntry{
	{entity.MenuItem{Label: "Dashboard", Path: RouteDashboard, Icon: "📊"}, func(p Permissions) bool { return p.ViewDashboard }},
	{entity.MenuItem{Label: "Productos", Path: RouteProducts, Icon: "📦"}, func(p Permissions) bool { return p.ViewProducts }},
	{entity.MenuItem{Label: "Órdenes", Path: RouteOrders, Icon: "📋"}, func(p Permissions) bool { return p.ViewOrders }},
	{entity.MenuItem{Label: "Usuarios", Path: RouteUsers, Icon: "👥"}, func(p Permissions) bool { return p.ViewUsers }},
	{entity.MenuItem{Label: "Tienda", Path: RouteStore, Icon: "🛒"}, func(p Permissions) bool { return p.ViewStore }},
	{entity.MenuItem{Label: "Reportes", Path: RouteReports, Icon: "📈"}, func(p Permissions) bool { return p.ViewReports }},
}

// MenuItems entradas del menú visibles para el rol, en orden fijo.
func MenuItems(role string) []entity.MenuItem {
	perms := PermissionsFor(role)
	items := make([]entity.MenuItem, 0, len(menuTable))
	for _, e := range menuTable {
		if e.allow(perms) {
			items = append(items, e.item)
		}
	}
	return items
}
