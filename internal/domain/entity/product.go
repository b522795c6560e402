package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product referencia de catálogo. El CRUD de productos vive fuera de este núcleo;
// aquí solo se consulta para resolver categoría y nombre en alertas.
type Product struct {
	ID         string
	CategoryID string // vacío si no tiene categoría
	SKU        string
	Name       string
	Price      decimal.Decimal
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
