package inventory

import (
	"context"
	"time"

	"github.com/tu-usuario/comercio-pro/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que la mutación del inventario y el
// evento de transición que origina se confirmen (o reviertan) juntos.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		invRepo repository.InventoryRepository,
		breachRepo repository.BreachEventRepository,
	) error) error
}

// ThresholdCache capacidad de caché read-through con TTL para umbrales
// (Redis en producción). No es fuente de verdad: una falla del backend degrada
// a lecturas directas de la BD.
type ThresholdCache interface {
	// Get devuelve (valor, true) en hit; (0, false) en miss.
	Get(ctx context.Context, key string) (int, bool, error)
	Set(ctx context.Context, key string, value int, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// Notifier sink de alertas fire-and-forget. Sus fallos nunca revierten una
// mutación de inventario ya confirmada.
type Notifier interface {
	SendAlert(title, message, severity string, metadata map[string]any)
}
