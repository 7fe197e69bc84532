package usecase

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/gestion-cliente/internal/application/ports"
	"github.com/jhoicas/gestion-cliente/internal/domain/rbac"
	"github.com/jhoicas/gestion-cliente/pkg/logger"
)

// DashboardStats contadores del dashboard. Un contador sin permiso queda en 0 y su
// bandera Show en false.
type DashboardStats struct {
	Products     int              `json:"products"`
	Orders       int              `json:"orders"`
	Users        int              `json:"users"`
	ShowProducts bool             `json:"showProducts"`
	ShowOrders   bool             `json:"showOrders"`
	ShowUsers    bool             `json:"showUsers"`
	Welcome      string           `json:"welcome"`
	Role         string           `json:"role"`
	Permissions  rbac.Permissions `json:"permissions"`
	Granted      []string         `json:"granted"`
}

// DashboardUseCase arma la vista principal según el rol.
type DashboardUseCase struct {
	backend ports.Backend
	session SessionSource
	log     *logger.Logger
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(backend ports.Backend, session SessionSource, log *logger.Logger) *DashboardUseCase {
	return &DashboardUseCase{backend: backend, session: session, log: log.Component("dashboard")}
}

// Load consulta en paralelo solo los listados que el rol puede ver. Un listado que falla
// deja su contador en 0 y se registra; nunca falla la vista completa.
func (uc *DashboardUseCase) Load(ctx context.Context) (*DashboardStats, error) {
	sess, err := authorize(uc.session, rbac.PermViewDashboard)
	if err != nil {
		return nil, err
	}
	role := sess.RawRole()
	perms := rbac.PermissionsFor(role)
	stats := &DashboardStats{
		ShowProducts: perms.ViewProducts,
		ShowOrders:   perms.ViewOrders,
		ShowUsers:    perms.ViewUsers,
		Welcome:      sess.User.DisplayLabel(),
		Role:         role,
		Permissions:  perms,
		Granted:      perms.Granted(),
	}

	// Cada goroutine escribe un campo distinto; Wait sincroniza.
	var g errgroup.Group
	if perms.ViewProducts {
		g.Go(func() error {
			items, err := uc.backend.Products.List(ctx)
			if err != nil {
				uc.log.Warn().Err(err).Msg("no se pudieron contar productos")
				return nil
			}
			stats.Products = len(items)
			return nil
		})
	}
	if perms.ViewOrders {
		g.Go(func() error {
			items, err := uc.backend.Orders.List(ctx)
			if err != nil {
				uc.log.Warn().Err(err).Msg("no se pudieron contar órdenes")
				return nil
			}
			stats.Orders = len(items)
			return nil
		})
	}
	if perms.ViewUsers {
		g.Go(func() error {
			items, err := uc.backend.Users.List(ctx)
			if err != nil {
				uc.log.Warn().Err(err).Msg("no se pudieron contar usuarios")
				return nil
			}
			stats.Users = len(items)
			return nil
		})
	}
	_ = g.Wait()
	return stats, nil
}
