package inventory

import (
	"fmt"
	"time"

	"github.com/tu-usuario/comercio-pro/internal/domain/entity"
)

// Severidades para el notificador externo.
const (
	SeverityCritical = "CRITICAL"
	SeverityHigh     = "HIGH"
	SeverityInfo     = "INFO"
)

// DetectBreach compara el estado antes/después de una mutación y devuelve el
// evento de transición, o nil cuando no hay transición que reportar.
// Garantiza exactamente un evento por cambio de estado: LOW_STOCK→LOW_STOCK
// tras otra deducción no produce nada.
func DetectBreach(prev, next entity.InventoryStatus, snap *entity.Inventory, threshold int, now time.Time) *entity.BreachEvent {
	if prev == next {
		return nil
	}

	var breachType entity.BreachType
	var details string
	switch next {
	case entity.StatusOutOfStock:
		breachType = entity.BreachOutOfStock
		details = fmt.Sprintf("producto %s agotado", snap.ProductID)
	case entity.StatusLowStock:
		breachType = entity.BreachThreshold
		details = fmt.Sprintf("producto %s con stock (%d) por debajo del umbral (%d)",
			snap.ProductID, snap.QuantityInStock, threshold)
	case entity.StatusInStock:
		// Solo es transición reportable si viene de un estado degradado.
		switch prev {
		case entity.StatusOutOfStock:
			breachType = entity.BreachBackInStock
			details = fmt.Sprintf("producto %s de nuevo en stock con %d unidades",
				snap.ProductID, snap.QuantityInStock)
		case entity.StatusLowStock:
			breachType = entity.BreachThresholdRestored
			details = fmt.Sprintf("producto %s restaurado por encima del umbral (%d) con %d unidades",
				snap.ProductID, threshold, snap.QuantityInStock)
		default:
			return nil
		}
	default:
		return nil
	}

	return &entity.BreachEvent{
		ProductID:       snap.ProductID,
		CurrentQuantity: snap.QuantityInStock,
		ThresholdLevel:  threshold,
		BreachType:      breachType,
		NewStatus:       next,
		Details:         details,
		CreatedAt:       now,
	}
}

// SeverityFor mapea el tipo de evento a la severidad que espera el notificador.
func SeverityFor(t entity.BreachType) string {
	switch t {
	case entity.BreachOutOfStock:
		return SeverityCritical
	case entity.BreachThreshold:
		return SeverityHigh
	default:
		return SeverityInfo
	}
}
