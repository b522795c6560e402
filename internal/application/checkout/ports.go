package checkout

import (
	"context"

	"github.com/tu-usuario/comercio-pro/internal/domain/entity"
	"github.com/tu-usuario/comercio-pro/internal/domain/repository"
)

// TxRunner ejecuta el cierre del checkout (crear orden + vaciar carrito)
// dentro de una transacción de BD.
type TxRunner interface {
	RunCheckout(ctx context.Context, fn func(
		cartRepo repository.CartRepository,
		orderRepo repository.OrderRepository,
	) error) error
}

// StockService puerto hacia el motor de stock. Cada Deduct es atómico por
// producto; el motor no tiene conciencia transaccional entre llamadas, por lo
// que la compensación entre líneas es responsabilidad del orquestador.
type StockService interface {
	HasStock(ctx context.Context, productID string, quantity int) (bool, error)
	Deduct(ctx context.Context, productID string, quantity int) (*entity.Inventory, error)
	AddStock(ctx context.Context, productID string, delta int) (*entity.Inventory, error)
	GetByProduct(ctx context.Context, productID string) (*entity.Inventory, error)
}
