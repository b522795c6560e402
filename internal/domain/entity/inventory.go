package entity

import "time"

// InventoryStatus estado derivado del inventario. Nunca lo fija el caller:
// se recalcula después de cada mutación a partir de (cantidad, umbral efectivo).
type InventoryStatus string

const (
	StatusInStock    InventoryStatus = "IN_STOCK"
	StatusLowStock   InventoryStatus = "LOW_STOCK"
	StatusOutOfStock InventoryStatus = "OUT_OF_STOCK"
)

// Inventory registro de inventario de un producto (una fila por producto).
// Es el único lugar donde se mutan las cantidades.
type Inventory struct {
	ProductID            string
	QuantityInStock      int // unidades disponibles para venta; nunca negativo
	QuantityReserved     int // deducidas del stock pero aún no liquidadas
	MinimumStockLevel    int // umbral propio del producto
	UseCategoryThreshold bool
	Status               InventoryStatus
	LastRestocked        *time.Time
	LastThresholdBreach  *time.Time
	UpdatedAt            time.Time
}

// AvailableQuantity unidades en stock netas de reservas.
func (i *Inventory) AvailableQuantity() int {
	if i.QuantityInStock < i.QuantityReserved {
		return 0
	}
	return i.QuantityInStock - i.QuantityReserved
}
