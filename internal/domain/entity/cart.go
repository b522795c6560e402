package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Cart carrito de compras de un usuario. El núcleo de checkout lo lee y
// solo lo muta para vaciarlo tras un checkout exitoso.
type Cart struct {
	ID        string
	UserID    string
	Items     []CartItem
	UpdatedAt time.Time
}

// CartItem línea del carrito con el precio unitario vigente al agregarla.
type CartItem struct {
	ProductID string
	Quantity  int
	UnitPrice decimal.Decimal
}

// TotalPrice subtotal de la línea (cantidad × precio unitario).
func (it CartItem) TotalPrice() decimal.Decimal {
	return it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity)))
}
