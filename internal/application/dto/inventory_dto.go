package dto

import (
	"time"

	"github.com/tu-usuario/comercio-pro/internal/domain/entity"
)

// AdjustStockRequest body para POST /api/inventory/:productId/{deduct|add|set}.
type AdjustStockRequest struct {
	Quantity int `json:"quantity"`
}

// StockCheckResponse respuesta de GET /api/inventory/:productId/stock.
type StockCheckResponse struct {
	ProductID string `json:"product_id"`
	Requested int    `json:"requested"`
	HasStock  bool   `json:"has_stock"`
}

// InventoryResponse ficha de inventario de un producto.
type InventoryResponse struct {
	ProductID            string     `json:"product_id"`
	QuantityInStock      int        `json:"quantity_in_stock"`
	QuantityReserved     int        `json:"quantity_reserved"`
	AvailableQuantity    int        `json:"available_quantity"`
	MinimumStockLevel    int        `json:"minimum_stock_level"`
	UseCategoryThreshold bool       `json:"use_category_threshold"`
	Status               string     `json:"status"`
	LastRestocked        *time.Time `json:"last_restocked,omitempty"`
	LastThresholdBreach  *time.Time `json:"last_threshold_breach,omitempty"`
	UpdatedAt            time.Time  `json:"updated_at"`
}

// NewInventoryResponse mapea la entidad a la respuesta HTTP.
func NewInventoryResponse(inv *entity.Inventory) InventoryResponse {
	return InventoryResponse{
		ProductID:            inv.ProductID,
		QuantityInStock:      inv.QuantityInStock,
		QuantityReserved:     inv.QuantityReserved,
		AvailableQuantity:    inv.AvailableQuantity(),
		MinimumStockLevel:    inv.MinimumStockLevel,
		UseCategoryThreshold: inv.UseCategoryThreshold,
		Status:               string(inv.Status),
		LastRestocked:        inv.LastRestocked,
		LastThresholdBreach:  inv.LastThresholdBreach,
		UpdatedAt:            inv.UpdatedAt,
	}
}

// NewInventoryList mapea un listado de entidades.
func NewInventoryList(list []*entity.Inventory) []InventoryResponse {
	out := make([]InventoryResponse, 0, len(list))
	for _, inv := range list {
		out = append(out, NewInventoryResponse(inv))
	}
	return out
}

// SetThresholdRequest body para PUT de umbrales (producto o categoría).
type SetThresholdRequest struct {
	Threshold int `json:"threshold"`
}

// ThresholdResponse umbral efectivo de un producto.
type ThresholdResponse struct {
	ProductID string `json:"product_id"`
	Threshold int    `json:"threshold"`
}

// UseCategoryThresholdRequest body para activar/desactivar la herencia de umbral.
type UseCategoryThresholdRequest struct {
	UseCategory bool `json:"use_category"`
}

// BreachEventResponse evento del historial de umbrales.
type BreachEventResponse struct {
	ID              string    `json:"id"`
	ProductID       string    `json:"product_id"`
	CurrentQuantity int       `json:"current_quantity"`
	ThresholdLevel  int       `json:"threshold_level"`
	BreachType      string    `json:"breach_type"`
	NewStatus       string    `json:"new_status"`
	Details         string    `json:"details,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// NewBreachEventList mapea los eventos a la respuesta HTTP.
func NewBreachEventList(events []*entity.BreachEvent) []BreachEventResponse {
	out := make([]BreachEventResponse, 0, len(events))
	for _, ev := range events {
		out = append(out, BreachEventResponse{
			ID:              ev.ID,
			ProductID:       ev.ProductID,
			CurrentQuantity: ev.CurrentQuantity,
			ThresholdLevel:  ev.ThresholdLevel,
			BreachType:      string(ev.BreachType),
			NewStatus:       string(ev.NewStatus),
			Details:         ev.Details,
			CreatedAt:       ev.CreatedAt,
		})
	}
	return out
}
