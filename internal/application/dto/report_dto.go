package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/gestion-cliente/internal/domain/entity"
)

// PaymentTotals totales de ventas de un medio de pago.
type PaymentTotals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	IVA      decimal.Decimal `json:"iva"`
	Total    decimal.Decimal `json:"total"`
}

// ReportSnapshot resumen de la vista de reportes.
type ReportSnapshot struct {
	Products    int                      `json:"products"`
	Orders      int                      `json:"orders"`
	Users       int                      `json:"users"`
	Subtotal    decimal.Decimal          `json:"subtotal"`
	IVA         decimal.Decimal          `json:"iva"`
	TotalConIVA decimal.Decimal          `json:"totalConIva"`
	ByPayment   map[string]PaymentTotals `json:"porMedioPago"`
	GeneratedAt time.Time                `json:"generatedAt"`
}

// PaymentMethods medios de pago del reporte, en orden de presentación.
func PaymentMethods() []string {
	return []string{entity.PaymentEfectivo, entity.PaymentDebito, entity.PaymentCredito}
}

var ivaDivisor = decimal.NewFromInt(1).Add(IVARate)

// SalesTotals deriva los totales desde el monto total de cada orden: el monto ya incluye IVA,
// subtotal = total / 1.19 e iva = subtotal × 0.19. Las órdenes no guardan el medio de pago,
// así que todo se asigna a efectivo.
func SalesTotals(orders []entity.Order) (PaymentTotals, map[string]PaymentTotals) {
	total := decimal.Zero
	for _, o := range orders {
		total = total.Add(o.Total)
	}
	subtotal := total.DivRound(ivaDivisor, 2)
	iva := subtotal.Mul(IVARate).Round(2)
	sum := PaymentTotals{Subtotal: subtotal, IVA: iva, Total: total}

	by := make(map[string]PaymentTotals, 3)
	for _, m := range PaymentMethods() {
		by[m] = PaymentTotals{Subtotal: decimal.Zero, IVA: decimal.Zero, Total: decimal.Zero}
	}
	by[entity.PaymentEfectivo] = sum
	return sum, by
}
