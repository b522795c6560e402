package repository

import (
	"context"

	"github.com/tu-usuario/comercio-pro/internal/domain/entity"
)

// BreachEventRepository puerto append-only para eventos de transición de inventario.
// Create debe ejecutarse en la misma transacción que la mutación que originó el evento.
type BreachEventRepository interface {
	Create(ctx context.Context, event *entity.BreachEvent) error
	// ListByProduct devuelve los eventos más recientes primero.
	ListByProduct(ctx context.Context, productID string, limit int) ([]*entity.BreachEvent, error)
}
