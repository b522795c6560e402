package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del ciclo de vida de una orden.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusConfirmed OrderStatus = "CONFIRMED"
	OrderStatusShipped   OrderStatus = "SHIPPED"
	OrderStatusDelivered OrderStatus = "DELIVERED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// Order orden creada por el checkout. Los precios de sus líneas quedan
// congelados al momento de la compra, independientes de cambios posteriores
// del catálogo.
type Order struct {
	ID             string
	OrderNumber    string // único, formato ORD-XXXXXXXX
	UserID         string
	Status         OrderStatus
	TotalAmount    decimal.Decimal
	TaxAmount      decimal.Decimal
	ShippingAmount decimal.Decimal
	PaymentMethod  string // vacío cuando el checkout no lleva pago asociado
	Items          []OrderItem
	CreatedAt      time.Time
}

// OrderItem línea de la orden al precio capturado en el checkout.
type OrderItem struct {
	ID        string
	OrderID   string
	ProductID string
	Quantity  int
	UnitPrice decimal.Decimal
}
