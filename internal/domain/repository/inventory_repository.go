package repository

import (
	"context"

	"github.com/tu-usuario/comercio-pro/internal/domain/entity"
)

// InventoryRepository define el puerto de persistencia del registro de inventario (DIP).
// Las mutaciones de cantidades deben pasar por GetForUpdate dentro de una transacción
// para serializar accesos concurrentes al mismo producto.
type InventoryRepository interface {
	// Get devuelve nil, nil si el producto no tiene fila de inventario.
	Get(ctx context.Context, productID string) (*entity.Inventory, error)
	// GetForUpdate bloquea la fila para update (SELECT FOR UPDATE). nil, nil si no existe.
	GetForUpdate(ctx context.Context, productID string) (*entity.Inventory, error)
	Upsert(ctx context.Context, inv *entity.Inventory) error

	// SetMinimumStockLevel fija el umbral propio del producto y desactiva la
	// herencia de categoría, sin tocar cantidades. ErrNotFound si no hay fila.
	SetMinimumStockLevel(ctx context.Context, productID string, level int) error
	// SetUseCategoryThreshold activa o desactiva la herencia del umbral de categoría.
	SetUseCategoryThreshold(ctx context.Context, productID string, use bool) error

	ListLowStock(ctx context.Context) ([]*entity.Inventory, error)
	ListOutOfStock(ctx context.Context) ([]*entity.Inventory, error)
	// ListBelowThreshold devuelve filas cuyo stock está en o bajo su umbral efectivo
	// (propio o heredado de la categoría).
	ListBelowThreshold(ctx context.Context) ([]*entity.Inventory, error)
}
