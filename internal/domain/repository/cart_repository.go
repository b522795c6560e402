package repository

import (
	"context"

	"github.com/tu-usuario/comercio-pro/internal/domain/entity"
)

// CartRepository puerto de lectura del carrito. El checkout solo lo muta
// para vaciarlo tras crear la orden.
type CartRepository interface {
	// GetByID devuelve el carrito con sus líneas; nil, nil si no existe.
	GetByID(ctx context.Context, id string) (*entity.Cart, error)
	GetByUser(ctx context.Context, userID string) (*entity.Cart, error)
	// Clear elimina las líneas del carrito del usuario (la cabecera se conserva).
	Clear(ctx context.Context, userID string) error
}
