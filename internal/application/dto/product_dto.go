package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/gestion-cliente/internal/domain/entity"
)

// ProductRequest cuerpo para crear/actualizar un producto (solo ADMIN).
type ProductRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Category    string          `json:"category"`
}

// Validate revisa los campos mínimos antes de llamar al backend.
func (r ProductRequest) Validate() bool {
	return r.Name != "" && !r.Price.IsNegative() && r.Stock >= 0
}

// ProductPage página de productos del listado.
type ProductPage struct {
	Items []entity.Product `json:"items"`
	PageResponse
}
