// Package usecase orquesta las vistas de la aplicación sobre los servicios del backend.
// Cada operación revisa primero los permisos del rol en sesión: si falta el permiso no se
// llama al backend.
package usecase

import (
	"strconv"

	"github.com/jhoicas/gestion-cliente/internal/domain"
	"github.com/jhoicas/gestion-cliente/internal/domain/entity"
	"github.com/jhoicas/gestion-cliente/internal/domain/rbac"
)

// SessionSource fuente de la sesión actuante (auth.Manager).
type SessionSource interface {
	Session() entity.Session
}

// authorize devuelve la sesión si está autenticada y tiene el permiso. perm vacío solo exige
// autenticación.
func authorize(src SessionSource, perm string) (entity.Session, error) {
	sess := src.Session()
	if !sess.IsAuthenticated || sess.User == nil {
		return sess, domain.ErrUnauthorized
	}
	if perm != "" && !rbac.PermissionsFor(sess.RawRole()).Has(perm) {
		return sess, domain.ErrForbidden
	}
	return sess, nil
}

// numericID convierte el id de sesión al id numérico que espera /orders; 0 si no es numérico.
func numericID(id string) int64 {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return 0
	}
	return n
}
