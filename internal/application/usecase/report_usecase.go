package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/gestion-cliente/internal/application/dto"
	"github.com/jhoicas/gestion-cliente/internal/application/ports"
	"github.com/jhoicas/gestion-cliente/internal/domain"
	"github.com/jhoicas/gestion-cliente/internal/domain/entity"
	"github.com/jhoicas/gestion-cliente/internal/domain/rbac"
	"github.com/jhoicas/gestion-cliente/pkg/logger"
)

// MsgReportsUnavailable mensaje visible cuando una carga de reportes falla.
const MsgReportsUnavailable = "No se pudieron cargar los datos de reportes."

// DefaultPollInterval intervalo de refresco de la vista de reportes.
const DefaultPollInterval = 5 * time.Second

// ReportUpdate resultado de una carga durante el polling. Con Err distinto de nil,
// Snapshot es nil y Message trae el texto visible.
type ReportUpdate struct {
	Snapshot *dto.ReportSnapshot
	Err      error
	Message  string
}

// ReportUseCase vista de reportes (solo administradores).
type ReportUseCase struct {
	backend ports.Backend
	session SessionSource
	log     *logger.Logger
	now     func() time.Time
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(backend ports.Backend, session SessionSource, log *logger.Logger) *ReportUseCase {
	return &ReportUseCase{backend: backend, session: session, log: log.Component("reports"), now: time.Now}
}

// Snapshot carga productos, órdenes y usuarios en paralelo; si cualquiera falla, falla todo.
func (uc *ReportUseCase) Snapshot(ctx context.Context) (*dto.ReportSnapshot, error) {
	if _, err := authorize(uc.session, rbac.PermViewReports); err != nil {
		return nil, err
	}

	var (
		products []entity.Product
		orders   []entity.Order
		users    []entity.ManagedUser
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		products, err = uc.backend.Products.List(gctx)
		return err
	})
	g.Go(func() (err error) {
		orders, err = uc.backend.Orders.List(gctx)
		return err
	})
	g.Go(func() (err error) {
		users, err = uc.backend.Users.List(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("reportes: %w", err)
	}

	sum, by := dto.SalesTotals(orders)
	return &dto.ReportSnapshot{
		Products:    len(products),
		Orders:      len(orders),
		Users:       len(users),
		Subtotal:    sum.Subtotal,
		IVA:         sum.IVA,
		TotalConIVA: sum.Total,
		ByPayment:   by,
		GeneratedAt: uc.now(),
	}, nil
}

// Poll hace una carga inicial y luego una por tick hasta que ctx se cancele. Los errores
// se entregan a fn sin detener el ciclo, salvo falta de sesión o de permiso.
func (uc *ReportUseCase) Poll(ctx context.Context, interval time.Duration, fn func(ReportUpdate)) error {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	load := func() error {
		snap, err := uc.Snapshot(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			uc.log.Warn().Err(err).Msg("carga de reportes fallida")
			fn(ReportUpdate{Err: err, Message: MsgReportsUnavailable})
			if errors.Is(err, domain.ErrUnauthorized) || errors.Is(err, domain.ErrForbidden) {
				return err
			}
			return nil
		}
		fn(ReportUpdate{Snapshot: snap})
		return nil
	}

	if err := load(); err != nil {
		return err
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := load(); err != nil {
				return err
			}
		}
	}
}
