package mock

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/gestion-cliente/internal/application/dto"
	"github.com/jhoicas/gestion-cliente/internal/application/ports"
	"github.com/jhoicas/gestion-cliente/internal/domain"
	"github.com/jhoicas/gestion-cliente/internal/domain/entity"
)

var _ ports.OrderService = (*OrderService)(nil)

// OrderService /orders simulado.
type OrderService struct{ b *Backend }

func (s *OrderService) List(_ context.Context) ([]entity.Order, error) {
	s.b.mu.RLock()
	defer s.b.mu.RUnlock()
	out := make([]entity.Order, 0, len(s.b.orders))
	for _, o := range s.b.orders {
		out = append(out, o.Order)
	}
	return out, nil
}

func (s *OrderService) Get(_ context.Context, id int64) (*entity.Order, error) {
	s.b.mu.RLock()
	defer s.b.mu.RUnlock()
	i := s.b.findOrderLocked(id)
	if i < 0 {
		return nil, domain.ErrNotFound
	}
	o := s.b.orders[i].Order
	return &o, nil
}

// Create registra la orden y descuenta stock. Falla sin cambios si alguna línea no tiene
// stock suficiente.
func (s *OrderService) Create(_ context.Context, req dto.OrderRequest) (*entity.Order, error) {
	if len(req.Detalle) == 0 {
		return nil, domain.ErrInvalidInput
	}
	b := s.b
	b.mu.Lock()
	defer b.mu.Unlock()

	details := make([]entity.OrderDetail, 0, len(req.Detalle))
	idx := make([]int, 0, len(req.Detalle))
	taken := make(map[int]int, len(req.Detalle))
	for _, l := range req.Detalle {
		i := b.findProductLocked(l.ProductID)
		if i < 0 {
			return nil, domain.ErrNotFound
		}
		taken[i] += l.Cantidad
		if b.products[i].Stock < taken[i] {
			return nil, domain.ErrInsufficientStock
		}
		idx = append(idx, i)
		details = append(details, entity.OrderDetail{
			ProductID:   l.ProductID,
			ProductName: b.products[i].Name,
			Quantity:    l.Cantidad,
			Price:       l.PrecioUnitario,
			Subtotal:    l.PrecioUnitario.Mul(decimal.NewFromInt(int64(l.Cantidad))),
		})
	}
	for n, i := range idx {
		b.products[i].Stock -= req.Detalle[n].Cantidad
	}

	var customer string
	if c := b.findUserLocked(idString(req.ClienteID)); c >= 0 {
		customer = b.users[c].Name
	}
	var vendor string
	if v := b.findUserLocked(idString(req.VendedorID)); req.VendedorID != 0 && v >= 0 {
		vendor = b.users[v].Name
	}
	now := time.Now().Format("2006-01-02T15:04:05")
	o := entity.Order{
		ID:           b.nextOrd,
		CustomerID:   req.ClienteID,
		CustomerName: customer,
		VendorID:     req.VendedorID,
		VendorName:   vendor,
		Total:        req.MontoTotal,
		Date:         now,
		CreatedAt:    now,
		Status:       req.Estado,
	}
	b.nextOrd++
	b.orders = append(b.orders, order{Order: o, details: details})
	b.log.Info().Int64("orden", o.ID).Str("total", o.Total.StringFixed(2)).Msg("orden simulada creada")
	return &o, nil
}

func (s *OrderService) UpdateStatus(_ context.Context, id int64, status string) (*entity.Order, error) {
	s.b.mu.Lock()
	defer s.b.mu.Unlock()
	i := s.b.findOrderLocked(id)
	if i < 0 {
		return nil, domain.ErrNotFound
	}
	s.b.orders[i].Status = status
	o := s.b.orders[i].Order
	return &o, nil
}

// Cancel elimina la orden, como DELETE /orders/{id}.
func (s *OrderService) Cancel(_ context.Context, id int64) error {
	s.b.mu.Lock()
	defer s.b.mu.Unlock()
	i := s.b.findOrderLocked(id)
	if i < 0 {
		return domain.ErrNotFound
	}
	s.b.orders = append(s.b.orders[:i], s.b.orders[i+1:]...)
	return nil
}

// MyOrders órdenes donde el usuario en sesión es cliente o vendedor.
func (s *OrderService) MyOrders(_ context.Context) ([]entity.Order, error) {
	acc, err := s.b.current()
	if err != nil {
		return nil, err
	}
	s.b.mu.RLock()
	defer s.b.mu.RUnlock()
	out := make([]entity.Order, 0)
	for _, o := range s.b.orders {
		if idString(o.CustomerID) == acc.ID || (o.VendorID != 0 && idString(o.VendorID) == acc.ID) {
			out = append(out, o.Order)
		}
	}
	return out, nil
}

func (s *OrderService) Details(_ context.Context, id int64) ([]entity.OrderDetail, error) {
	s.b.mu.RLock()
	defer s.b.mu.RUnlock()
	i := s.b.findOrderLocked(id)
	if i < 0 {
		return nil, domain.ErrNotFound
	}
	out := make([]entity.OrderDetail, len(s.b.orders[i].details))
	copy(out, s.b.orders[i].details)
	return out, nil
}

// Statistics conteo por estado y total vendido.
func (s *OrderService) Statistics(_ context.Context) (dto.OrderStatistics, error) {
	s.b.mu.RLock()
	defer s.b.mu.RUnlock()
	byStatus := make(map[string]int)
	total := decimal.Zero
	for _, o := range s.b.orders {
		byStatus[o.Status]++
		total = total.Add(o.Total)
	}
	return dto.OrderStatistics{
		"totalOrdenes": len(s.b.orders),
		"totalVentas":  total.StringFixed(2),
		"porEstado":    byStatus,
	}, nil
}
