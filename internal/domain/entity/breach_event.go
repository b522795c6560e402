package entity

import "time"

// BreachType tipo de transición de estado que origina el evento.
type BreachType string

const (
	BreachThreshold         BreachType = "THRESHOLD_BREACH"   // bajó del umbral mínimo
	BreachOutOfStock        BreachType = "OUT_OF_STOCK"       // producto agotado
	BreachBackInStock       BreachType = "BACK_IN_STOCK"      // recuperado desde agotado
	BreachThresholdRestored BreachType = "THRESHOLD_RESTORED" // recuperado por encima del umbral
)

// BreachEvent registro append-only de una transición de estado de inventario.
// Se crea exactamente una vez por transición observada y nunca se muta;
// lo consume el sink externo de notificaciones/auditoría.
type BreachEvent struct {
	ID              string
	ProductID       string
	CurrentQuantity int
	ThresholdLevel  int
	BreachType      BreachType
	NewStatus       InventoryStatus
	Details         string
	CreatedAt       time.Time
}
