package entity

import "time"

// Category categoría de productos. Su umbral mínimo se hereda por los productos
// que tienen activo UseCategoryThreshold; nil significa sin umbral definido (efectivo 0).
type Category struct {
	ID                    string
	Name                  string
	MinimumStockThreshold *int
	UpdatedAt             time.Time
}
