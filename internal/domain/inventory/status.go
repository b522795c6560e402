package inventory

import "github.com/tu-usuario/comercio-pro/internal/domain/entity"

// ComputeStatus deriva el estado del inventario a partir de la cantidad en stock
// y el umbral efectivo. Es la única regla de estado: se aplica idéntica después
// de cada mutación.
func ComputeStatus(quantityInStock, effectiveThreshold int) entity.InventoryStatus {
	switch {
	case quantityInStock == 0:
		return entity.StatusOutOfStock
	case quantityInStock <= effectiveThreshold:
		return entity.StatusLowStock
	default:
		return entity.StatusInStock
	}
}
