package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/comercio-pro/internal/application/dto"
	"github.com/tu-usuario/comercio-pro/internal/application/inventory"
)

// InventoryHandler maneja las peticiones HTTP de stock y umbrales (protegido).
type InventoryHandler struct {
	stock      *inventory.StockUseCase
	thresholds *inventory.ThresholdUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(stock *inventory.StockUseCase, thresholds *inventory.ThresholdUseCase) *InventoryHandler {
	return &InventoryHandler{stock: stock, thresholds: thresholds}
}

// CheckStock godoc
// @Summary      Verificar disponibilidad de stock
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        productId  path   string  true  "ID del producto"
// @Param        quantity   query  int     true  "Cantidad solicitada (> 0)"
// @Success      200  {object}  dto.StockCheckResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/{productId}/stock [get]
func (h *InventoryHandler) CheckStock(c *fiber.Ctx) error {
	productID := c.Params("productId")
	quantity, err := strconv.Atoi(c.Query("quantity"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "quantity debe ser un entero"})
	}
	ok, err := h.stock.HasStock(c.Context(), productID, quantity)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.StockCheckResponse{ProductID: productID, Requested: quantity, HasStock: ok})
}

// GetInventory godoc
// @Summary      Ficha de inventario de un producto
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        productId  path  string  true  "ID del producto"
// @Success      200  {object}  dto.InventoryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/{productId} [get]
func (h *InventoryHandler) GetInventory(c *fiber.Ctx) error {
	inv, err := h.stock.GetByProduct(c.Context(), c.Params("productId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewInventoryResponse(inv))
}

// Deduct godoc
// @Summary      Descontar stock (reserva la cantidad)
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        productId  path  string                  true  "ID del producto"
// @Param        body       body  dto.AdjustStockRequest  true  "quantity > 0"
// @Success      200  {object}  dto.InventoryResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/inventory/{productId}/deduct [post]
func (h *InventoryHandler) Deduct(c *fiber.Ctx) error {
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	inv, err := h.stock.Deduct(c.Context(), c.Params("productId"), in.Quantity)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewInventoryResponse(inv))
}

// AddStock godoc
// @Summary      Reponer stock
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        productId  path  string                  true  "ID del producto"
// @Param        body       body  dto.AdjustStockRequest  true  "quantity >= 0"
// @Success      200  {object}  dto.InventoryResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/{productId}/add [post]
func (h *InventoryHandler) AddStock(c *fiber.Ctx) error {
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	inv, err := h.stock.AddStock(c.Context(), c.Params("productId"), in.Quantity)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewInventoryResponse(inv))
}

// SetStock godoc
// @Summary      Fijar stock absoluto (ajuste de inventario)
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        productId  path  string                  true  "ID del producto"
// @Param        body       body  dto.AdjustStockRequest  true  "quantity >= 0"
// @Success      200  {object}  dto.InventoryResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/{productId}/set [post]
func (h *InventoryHandler) SetStock(c *fiber.Ctx) error {
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	inv, err := h.stock.SetStock(c.Context(), c.Params("productId"), in.Quantity)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewInventoryResponse(inv))
}

// ListLowStock godoc
// @Summary      Productos en LOW_STOCK
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.InventoryResponse
// @Router       /api/inventory/low-stock [get]
func (h *InventoryHandler) ListLowStock(c *fiber.Ctx) error {
	list, err := h.stock.ListLowStock(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewInventoryList(list))
}

// ListOutOfStock godoc
// @Summary      Productos agotados
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.InventoryResponse
// @Router       /api/inventory/out-of-stock [get]
func (h *InventoryHandler) ListOutOfStock(c *fiber.Ctx) error {
	list, err := h.stock.ListOutOfStock(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewInventoryList(list))
}

// ListBelowThreshold godoc
// @Summary      Productos en o bajo su umbral efectivo
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.InventoryResponse
// @Router       /api/inventory/below-threshold [get]
func (h *InventoryHandler) ListBelowThreshold(c *fiber.Ctx) error {
	list, err := h.stock.ListBelowThreshold(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewInventoryList(list))
}

// GetThreshold godoc
// @Summary      Umbral efectivo del producto
// @Tags         thresholds
// @Security     Bearer
// @Produce      json
// @Param        productId  path  string  true  "ID del producto"
// @Success      200  {object}  dto.ThresholdResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/{productId}/threshold [get]
func (h *InventoryHandler) GetThreshold(c *fiber.Ctx) error {
	productID := c.Params("productId")
	threshold, err := h.thresholds.GetEffectiveThreshold(c.Context(), productID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ThresholdResponse{ProductID: productID, Threshold: threshold})
}

// SetProductThreshold godoc
// @Summary      Fijar umbral propio del producto
// @Description  Fija el umbral mínimo y desactiva la herencia del umbral de categoría.
// @Tags         thresholds
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        productId  path  string                   true  "ID del producto"
// @Param        body       body  dto.SetThresholdRequest  true  "threshold >= 0"
// @Success      200  {object}  dto.MessageResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/{productId}/threshold [put]
func (h *InventoryHandler) SetProductThreshold(c *fiber.Ctx) error {
	var in dto.SetThresholdRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.thresholds.SetProductThreshold(c.Context(), c.Params("productId"), in.Threshold); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "umbral actualizado"})
}

// SetCategoryThreshold godoc
// @Summary      Fijar umbral por defecto de la categoría
// @Tags         thresholds
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID de la categoría"
// @Param        body  body  dto.SetThresholdRequest  true  "threshold >= 0"
// @Success      200  {object}  dto.MessageResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/categories/{id}/threshold [put]
func (h *InventoryHandler) SetCategoryThreshold(c *fiber.Ctx) error {
	var in dto.SetThresholdRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.thresholds.SetCategoryThreshold(c.Context(), c.Params("id"), in.Threshold); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "umbral de categoría actualizado"})
}

// UseCategoryThreshold godoc
// @Summary      Activar o desactivar la herencia del umbral de categoría
// @Tags         thresholds
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        productId  path  string                           true  "ID del producto"
// @Param        body       body  dto.UseCategoryThresholdRequest  true  "use_category"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/{productId}/threshold/use-category [put]
func (h *InventoryHandler) UseCategoryThreshold(c *fiber.Ctx) error {
	var in dto.UseCategoryThresholdRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.thresholds.UseCategoryThreshold(c.Context(), c.Params("productId"), in.UseCategory); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "herencia de umbral actualizada"})
}

// ListBreaches godoc
// @Summary      Historial de eventos de umbral del producto
// @Tags         thresholds
// @Security     Bearer
// @Produce      json
// @Param        productId  path   string  true   "ID del producto"
// @Param        limit      query  int     false  "Máx eventos (default 50)"
// @Success      200  {array}  dto.BreachEventResponse
// @Router       /api/inventory/{productId}/breaches [get]
func (h *InventoryHandler) ListBreaches(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit"))
	events, err := h.stock.ListBreaches(c.Context(), c.Params("productId"), limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewBreachEventList(events))
}
