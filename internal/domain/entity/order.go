package entity

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Estados de orden.
const (
	OrderPending    = "PENDING"
	OrderConfirmed  = "CONFIRMED"
	OrderProcessing = "PROCESSING"
	OrderShipped    = "SHIPPED"
	OrderDelivered  = "DELIVERED"
	OrderCancelled  = "CANCELLED"
)

// Estado por defecto con el que el backend registra una orden nueva.
const OrderDefaultEstado = "PENDIENTE"

var orderStatusLabels = map[string]string{
	OrderPending:    "Pendiente",
	OrderConfirmed:  "Confirmada",
	OrderProcessing: "En Proceso",
	OrderShipped:    "Enviada",
	OrderDelivered:  "Entregada",
	OrderCancelled:  "Cancelada",
}

// OrderStatusLabel traduce un estado; si no se conoce devuelve el valor original.
func OrderStatusLabel(status string) string {
	if l, ok := orderStatusLabels[toUpper(strings.TrimSpace(status))]; ok {
		return l
	}
	return status
}

// Medios de pago.
const (
	PaymentEfectivo = "efectivo"
	PaymentDebito   = "debito"
	PaymentCredito  = "credito"
)

// Order orden (boleta) en el formato interno del cliente.
type Order struct {
	ID           int64           `json:"id"`
	CustomerID   int64           `json:"customerId"`
	CustomerName string          `json:"customerName"`
	VendorID     int64           `json:"vendorId,omitempty"`
	VendorName   string          `json:"vendorName,omitempty"`
	Total        decimal.Decimal `json:"total"`
	Date         string          `json:"date,omitempty"`
	CreatedAt    string          `json:"createdAt,omitempty"`
	Status       string          `json:"status"`
	Observations string          `json:"observations,omitempty"`
}

// OrderDetail línea de detalle de una orden.
type OrderDetail struct {
	ProductID   int64           `json:"productId"`
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}
