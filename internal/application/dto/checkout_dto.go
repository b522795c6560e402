package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/comercio-pro/internal/domain/entity"
)

// ValidateCartRequest body para POST /api/checkout/validate.
type ValidateCartRequest struct {
	CartID string `json:"cart_id"`
}

// CheckoutRequest body para POST /api/checkout.
type CheckoutRequest struct {
	CartID string `json:"cart_id"`
}

// CheckoutPaymentRequest body para POST /api/checkout/payment.
type CheckoutPaymentRequest struct {
	CartID        string `json:"cart_id"`
	PaymentMethod string `json:"payment_method"`
}

// CartTotalResponse total estimado de GET /api/checkout/:cartId/total.
type CartTotalResponse struct {
	CartID string          `json:"cart_id"`
	Total  decimal.Decimal `json:"total"`
}

// OrderItemResponse línea del pedido en respuestas.
type OrderItemResponse struct {
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// OrderResponse pedido creado por el checkout.
type OrderResponse struct {
	ID             string              `json:"id"`
	OrderNumber    string              `json:"order_number"`
	UserID         string              `json:"user_id"`
	Status         string              `json:"status"`
	TotalAmount    decimal.Decimal     `json:"total_amount"`
	TaxAmount      decimal.Decimal     `json:"tax_amount"`
	ShippingAmount decimal.Decimal     `json:"shipping_amount"`
	PaymentMethod  string              `json:"payment_method,omitempty"`
	Items          []OrderItemResponse `json:"items"`
	CreatedAt      time.Time           `json:"created_at"`
}

// NewOrderResponse mapea la entidad a la respuesta HTTP.
func NewOrderResponse(o *entity.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, OrderItemResponse{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
		})
	}
	return OrderResponse{
		ID:             o.ID,
		OrderNumber:    o.OrderNumber,
		UserID:         o.UserID,
		Status:         string(o.Status),
		TotalAmount:    o.TotalAmount,
		TaxAmount:      o.TaxAmount,
		ShippingAmount: o.ShippingAmount,
		PaymentMethod:  o.PaymentMethod,
		Items:          items,
		CreatedAt:      o.CreatedAt,
	}
}
