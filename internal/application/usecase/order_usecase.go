package usecase

import (
	"context"
	"strings"

	"github.com/jhoicas/gestion-cliente/internal/application/dto"
	"github.com/jhoicas/gestion-cliente/internal/application/ports"
	"github.com/jhoicas/gestion-cliente/internal/domain"
	"github.com/jhoicas/gestion-cliente/internal/domain/entity"
	"github.com/jhoicas/gestion-cliente/internal/domain/rbac"
)

// OrderUseCase casos de uso de órdenes.
type OrderUseCase struct {
	orders  ports.OrderService
	session SessionSource
}

// NewOrderUseCase construye el caso de uso.
func NewOrderUseCase(orders ports.OrderService, session SessionSource) *OrderUseCase {
	return &OrderUseCase{orders: orders, session: session}
}

// List todas las órdenes.
func (uc *OrderUseCase) List(ctx context.Context) ([]entity.Order, error) {
	if _, err := authorize(uc.session, rbac.PermViewOrders); err != nil {
		return nil, err
	}
	return uc.orders.List(ctx)
}

// Get una orden por id.
func (uc *OrderUseCase) Get(ctx context.Context, id int64) (*entity.Order, error) {
	if _, err := authorize(uc.session, rbac.PermViewOrders); err != nil {
		return nil, err
	}
	return uc.orders.Get(ctx, id)
}

// MyOrders órdenes del usuario en sesión; basta con estar autenticado.
func (uc *OrderUseCase) MyOrders(ctx context.Context) ([]entity.Order, error) {
	if _, err := authorize(uc.session, ""); err != nil {
		return nil, err
	}
	return uc.orders.MyOrders(ctx)
}

// Details líneas de una orden.
func (uc *OrderUseCase) Details(ctx context.Context, id int64) ([]entity.OrderDetail, error) {
	if _, err := authorize(uc.session, rbac.PermViewOrderDetails); err != nil {
		return nil, err
	}
	return uc.orders.Details(ctx, id)
}

// Statistics estadísticas agregadas del backend.
func (uc *OrderUseCase) Statistics(ctx context.Context) (dto.OrderStatistics, error) {
	if _, err := authorize(uc.session, rbac.PermViewOrders); err != nil {
		return nil, err
	}
	return uc.orders.Statistics(ctx)
}

// Create normaliza el pedido y lo envía. Sin vendedor explícito, un vendedor o administrador
// en sesión queda como vendedor de la orden.
func (uc *OrderUseCase) Create(ctx context.Context, in dto.CreateOrderInput) (*entity.Order, error) {
	sess, err := authorize(uc.session, rbac.PermCreateOrder)
	if err != nil {
		return nil, err
	}
	if len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.VendorID == 0 {
		if r := sess.User.CanonicalRole(); r == entity.RoleVendedor || r == entity.RoleAdmin {
			in.VendorID = numericID(sess.User.ID)
		}
	}
	return uc.orders.Create(ctx, in.Normalize())
}

// UpdateStatus cambia el estado de una orden.
func (uc *OrderUseCase) UpdateStatus(ctx context.Context, id int64, status string) (*entity.Order, error) {
	if _, err := authorize(uc.session, rbac.PermEditOrder); err != nil {
		return nil, err
	}
	status = strings.ToUpper(strings.TrimSpace(status))
	if id <= 0 || status == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.orders.UpdateStatus(ctx, id, status)
}

// Cancel anula una orden.
func (uc *OrderUseCase) Cancel(ctx context.Context, id int64) error {
	if _, err := authorize(uc.session, rbac.PermCancelOrder); err != nil {
		return err
	}
	if id <= 0 {
		return domain.ErrInvalidInput
	}
	return uc.orders.Cancel(ctx, id)
}
