package entity

import "github.com/shopspring/decimal"

// Product representa un producto del catálogo tal como lo expone el backend.
type Product struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Category    string          `json:"category"`
}

// InStock indica si hay unidades disponibles para la tienda.
func (p Product) InStock() bool { return p.Stock > 0 }
