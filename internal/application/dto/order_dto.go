package dto

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/gestion-cliente/internal/domain/entity"
)

// IVARate tarifa de IVA usada para los valores de presentación.
var IVARate = decimal.NewFromFloat(0.19)

// OrderResponse orden tal como la devuelve el backend (campos en español).
type OrderResponse struct {
	ID             int64           `json:"id"`
	ClienteID      int64           `json:"clienteId"`
	ClienteNombre  string          `json:"clienteNombre"`
	VendedorID     int64           `json:"vendedorId"`
	VendedorNombre string          `json:"vendedorNombre"`
	MontoTotal     decimal.Decimal `json:"montoTotal"`
	Fecha          string          `json:"fecha"`
	FechaCreacion  string          `json:"fechaCreacion"`
	Estado         string          `json:"estado"`
	Observaciones  string          `json:"observaciones"`
}

// ToEntity traduce al formato interno.
func (o OrderResponse) ToEntity() entity.Order {
	return entity.Order{
		ID:           o.ID,
		CustomerID:   o.ClienteID,
		CustomerName: o.ClienteNombre,
		VendorID:     o.VendedorID,
		VendorName:   o.VendedorNombre,
		Total:        o.MontoTotal,
		Date:         o.Fecha,
		CreatedAt:    o.FechaCreacion,
		Status:       o.Estado,
		Observations: o.Observaciones,
	}
}

// OrderDetailResponse línea de /orders/{id}/details.
type OrderDetailResponse struct {
	PerfumeID      int64           `json:"perfumeId"`
	PerfumeNombre  string          `json:"perfumeNombre"`
	Cantidad       int             `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precioUnitario"`
	Subtotal       decimal.Decimal `json:"subtotal"`
}

// ToEntity traduce al formato interno.
func (d OrderDetailResponse) ToEntity() entity.OrderDetail {
	return entity.OrderDetail{
		ProductID:   d.PerfumeID,
		ProductName: d.PerfumeNombre,
		Quantity:    d.Cantidad,
		Price:       d.PrecioUnitario,
		Subtotal:    d.Subtotal,
	}
}

// OrderItemInput línea de una orden nueva desde la UI/CLI.
type OrderItemInput struct {
	ProductID int64           `json:"productId"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

// CreateOrderInput contrato flexible de creación; Normalize lo convierte al DTO del backend.
// Subtotal, IVA y Total son opcionales: si faltan se derivan de los ítems.
type CreateOrderInput struct {
	CustomerID    int64            `json:"customerId"`
	VendorID      int64            `json:"vendedorId,omitempty"`
	Status        string           `json:"status,omitempty"`
	PaymentMethod string           `json:"medioPago,omitempty"`
	Cuotas        int              `json:"cuotas,omitempty"`
	Items         []OrderItemInput `json:"items"`
	Subtotal      *decimal.Decimal `json:"subtotal,omitempty"`
	IVA           *decimal.Decimal `json:"iva,omitempty"`
	Total         *decimal.Decimal `json:"total,omitempty"`
}

// OrderLineRequest línea del payload OrderRequest.
type OrderLineRequest struct {
	ProductID      int64           `json:"productId"`
	Cantidad       int             `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
}

// OrderRequest payload de POST /orders.
type OrderRequest struct {
	ClienteID  int64              `json:"clienteId"`
	VendedorID int64              `json:"vendedorId,omitempty"`
	MontoTotal decimal.Decimal    `json:"montoTotal"`
	Estado     string             `json:"estado"`
	MedioPago  string             `json:"medioPago"`
	Cuotas     int                `json:"cuotas"`
	Detalle    []OrderLineRequest `json:"detalle"`
	Subtotal   decimal.Decimal    `json:"subtotal"`
	IVA        decimal.Decimal    `json:"iva"`
}

// Normalize aplica los valores por defecto del backend: estado PENDIENTE en mayúsculas,
// medio de pago efectivo, cuotas solo con crédito (si no, 1), cantidad mínima 1 y totales derivados.
func (in CreateOrderInput) Normalize() OrderRequest {
	medio := strings.ToLower(strings.TrimSpace(in.PaymentMethod))
	if medio == "" {
		medio = entity.PaymentEfectivo
	}
	cuotas := in.Cuotas
	if cuotas <= 0 || medio != entity.PaymentCredito {
		cuotas = 1
	}
	estado := strings.ToUpper(strings.TrimSpace(in.Status))
	if estado == "" {
		estado = entity.OrderDefaultEstado
	}

	lines := make([]OrderLineRequest, 0, len(in.Items))
	computed := decimal.Zero
	for _, it := range in.Items {
		qty := it.Quantity
		if qty <= 0 {
			qty = 1
		}
		lines = append(lines, OrderLineRequest{ProductID: it.ProductID, Cantidad: qty, PrecioUnitario: it.Price})
		computed = computed.Add(it.Price.Mul(decimal.NewFromInt(int64(qty))))
	}

	subtotal := computed
	if in.Subtotal != nil {
		subtotal = *in.Subtotal
	}
	iva := subtotal.Mul(IVARate).Round(2)
	if in.IVA != nil {
		iva = *in.IVA
	}
	total := subtotal.Add(iva)
	if in.Total != nil {
		total = *in.Total
	}

	return OrderRequest{
		ClienteID:  in.CustomerID,
		VendedorID: in.VendorID,
		MontoTotal: total,
		Estado:     estado,
		MedioPago:  medio,
		Cuotas:     cuotas,
		Detalle:    lines,
		Subtotal:   subtotal,
		IVA:        iva,
	}
}

// UpdateOrderStatusRequest cuerpo de PUT /orders/{id}.
type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

// OrderStatistics respuesta libre de /orders/statistics.
type OrderStatistics map[string]any

// CheckoutItem línea del carrito enviada por la tienda.
type CheckoutItem struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

// CheckoutRequest cuerpo de POST /store/checkout.
type CheckoutRequest struct {
	Items         []CheckoutItem `json:"items"`
	PaymentMethod string         `json:"medioPago"`
}
