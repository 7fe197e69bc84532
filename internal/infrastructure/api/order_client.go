package api

import (
	"context"
	"strconv"

	"github.com/jhoicas/gestion-cliente/internal/application/dto"
	"github.com/jhoicas/gestion-cliente/internal/application/ports"
	"github.com/jhoicas/gestion-cliente/internal/domain/entity"
)

var _ ports.OrderService = (*OrderClient)(nil)

// OrderClient implementa ports.OrderService sobre /orders, traduciendo los DTO del backend.
type OrderClient struct {
	c *Client
}

func NewOrderClient(c *Client) *OrderClient { return &OrderClient{c: c} }

func orderPath(id int64) string { return "/orders/" + strconv.FormatInt(id, 10) }

func toOrders(in []dto.OrderResponse) []entity.Order {
	out := make([]entity.Order, 0, len(in))
	for _, o := range in {
		out = append(out, o.ToEntity())
	}
	return out
}

func (o *OrderClient) List(ctx context.Context) ([]entity.Order, error) {
	var raw []dto.OrderResponse
	if err := o.c.Get(ctx, "/orders", &raw); err != nil {
		return nil, err
	}
	return toOrders(raw), nil
}

func (o *OrderClient) Get(ctx context.Context, id int64) (*entity.Order, error) {
	var raw dto.OrderResponse
	if err := o.c.Get(ctx, orderPath(id), &raw); err != nil {
		return nil, err
	}
	ord := raw.ToEntity()
	return &ord, nil
}

func (o *OrderClient) Create(ctx context.Context, req dto.OrderRequest) (*entity.Order, error) {
	var raw dto.OrderResponse
	if err := o.c.Post(ctx, "/orders", req, &raw); err != nil {
		return nil, err
	}
	ord := raw.ToEntity()
	return &ord, nil
}

// UpdateStatus PUT /orders/{id} con {status}.
func (o *OrderClient) UpdateStatus(ctx context.Context, id int64, status string) (*entity.Order, error) {
	var raw dto.OrderResponse
	if err := o.c.Put(ctx, orderPath(id), dto.UpdateOrderStatusRequest{Status: status}, &raw); err != nil {
		return nil, err
	}
	ord := raw.ToEntity()
	return &ord, nil
}

// Cancel DELETE /orders/{id}.
func (o *OrderClient) Cancel(ctx context.Context, id int64) error {
	return o.c.Delete(ctx, orderPath(id))
}

// MyOrders GET /orders/my-orders.
func (o *OrderClient) MyOrders(ctx context.Context) ([]entity.Order, error) {
	var raw []dto.OrderResponse
	if err := o.c.Get(ctx, "/orders/my-orders", &raw); err != nil {
		return nil, err
	}
	return toOrders(raw), nil
}

// Details GET /orders/{id}/details.
func (o *OrderClient) Details(ctx context.Context, id int64) ([]entity.OrderDetail, error) {
	var raw []dto.OrderDetailResponse
	if err := o.c.Get(ctx, orderPath(id)+"/details", &raw); err != nil {
		return nil, err
	}
	out := make([]entity.OrderDetail, 0, len(raw))
	for _, d := range raw {
		out = append(out, d.ToEntity())
	}
	return out, nil
}

// Statistics GET /orders/statistics.
func (o *OrderClient) Statistics(ctx context.Context) (dto.OrderStatistics, error) {
	out := dto.OrderStatistics{}
	if err := o.c.Get(ctx, "/orders/statistics", &out); err != nil {
		return nil, err
	}
	return out, nil
}
