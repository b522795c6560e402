package repository

import (
	"context"

	"github.com/tu-usuario/comercio-pro/internal/domain/entity"
)

// OrderRepository puerto de persistencia de órdenes creadas por el checkout.
type OrderRepository interface {
	// Create persiste la cabecera de la orden.
	Create(ctx context.Context, order *entity.Order) error
	// CreateItem persiste una línea al precio capturado en el checkout.
	CreateItem(ctx context.Context, item *entity.OrderItem) error
	// GetByID devuelve la orden completa con sus líneas; nil, nil si no existe.
	GetByID(ctx context.Context, id string) (*entity.Order, error)
}
