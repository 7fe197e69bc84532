package entity

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Valores de rol tal como los envía el backend (siempre en mayúsculas tras normalizar).
const (
	RoleNameAdmin         = "ADMIN"
	RoleNameAdministrador = "ADMINISTRADOR"
	RoleNameVendedor      = "VENDEDOR"
	RoleNameCliente       = "CLIENTE"
)

// Role es la forma canónica interna del rol. ADMIN y ADMINISTRADOR colapsan en RoleAdmin;
// cualquier otro valor (vacío incluido) es RoleUnknown y no tiene permisos.
type Role int

const (
	RoleUnknown Role = iota
	RoleAdmin
	RoleVendedor
	RoleCliente
)

// toUpper crea un Caser por llamada: cases.Caser no es seguro entre goroutines.
func toUpper(s string) string {
	return cases.Upper(language.Und).String(s)
}

// NormalizeRole pasa el valor a mayúsculas sin recortarlo: " admin" no es ADMIN.
func NormalizeRole(raw string) string {
	if raw == "" {
		return ""
	}
	return toUpper(raw)
}

// ParseRole convierte un rol externo (cualquier capitalización) a su variante canónica.
func ParseRole(raw string) Role {
	switch NormalizeRole(raw) {
	case RoleNameAdmin, RoleNameAdministrador:
		return RoleAdmin
	case RoleNameVendedor:
		return RoleVendedor
	case RoleNameCliente:
		return RoleCliente
	default:
		return RoleUnknown
	}
}

// String devuelve el nombre canónico que se envía al backend.
func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return RoleNameAdmin
	case RoleVendedor:
		return RoleNameVendedor
	case RoleCliente:
		return RoleNameCliente
	default:
		return "UNKNOWN"
	}
}

// Known indica si el rol es uno de los reconocidos por el sistema.
func (r Role) Known() bool { return r != RoleUnknown }

// KnownRoleNames lista los valores de rol aceptados al asignar un rol a un usuario.
func KnownRoleNames() []string {
	return []string{RoleNameAdmin, RoleNameAdministrador, RoleNameVendedor, RoleNameCliente}
}
