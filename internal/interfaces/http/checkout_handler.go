package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/comercio-pro/internal/application/checkout"
	"github.com/tu-usuario/comercio-pro/internal/application/dto"
)

// CheckoutHandler maneja el cierre de compra del carrito (protegido).
type CheckoutHandler struct {
	uc *checkout.CheckoutUseCase
}

// NewCheckoutHandler construye el handler.
func NewCheckoutHandler(uc *checkout.CheckoutUseCase) *CheckoutHandler {
	return &CheckoutHandler{uc: uc}
}

// Validate godoc
// @Summary      Validar el carrito antes del checkout
// @Description  Verifica propiedad, carrito no vacío y disponibilidad de stock por línea.
// @Tags         checkout
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ValidateCartRequest  true  "cart_id"
// @Success      200  {object}  dto.MessageResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/checkout/validate [post]
func (h *CheckoutHandler) Validate(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.ValidateCartRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.Validate(c.Context(), userID, in.CartID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "carrito válido"})
}

// Checkout godoc
// @Summary      Procesar el checkout del carrito
// @Description  Valida, descuenta stock línea a línea y crea el pedido; ante cualquier
//
//	fallo repone las líneas ya descontadas.
//
// @Tags         checkout
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CheckoutRequest  true  "cart_id"
// @Success      201  {object}  dto.OrderResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/checkout [post]
func (h *CheckoutHandler) Checkout(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CheckoutRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	order, err := h.uc.Checkout(c.Context(), userID, in.CartID)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewOrderResponse(order))
}

// CheckoutWithPayment godoc
// @Summary      Procesar el checkout indicando método de pago
// @Tags         checkout
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CheckoutPaymentRequest  true  "cart_id, payment_method"
// @Success      201  {object}  dto.OrderResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/checkout/payment [post]
func (h *CheckoutHandler) CheckoutWithPayment(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CheckoutPaymentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	order, err := h.uc.CheckoutWithPayment(c.Context(), userID, in.CartID, in.PaymentMethod)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewOrderResponse(order))
}

// GetOrder godoc
// @Summary      Consultar una orden creada por el checkout
// @Tags         checkout
// @Security     Bearer
// @Produce      json
// @Param        orderId  path  string  true  "ID de la orden"
// @Success      200  {object}  dto.OrderResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/checkout/orders/{orderId} [get]
func (h *CheckoutHandler) GetOrder(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	order, err := h.uc.GetOrder(c.Context(), userID, c.Params("orderId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewOrderResponse(order))
}

// GetTotal godoc
// @Summary      Total estimado del carrito
// @Description  Devuelve 0 para carritos inexistentes o vacíos (previsualización tolerante).
// @Tags         checkout
// @Produce      json
// @Param        cartId  path  string  true  "ID del carrito"
// @Success      200  {object}  dto.CartTotalResponse
// @Router       /api/checkout/{cartId}/total [get]
func (h *CheckoutHandler) GetTotal(c *fiber.Ctx) error {
	cartID := c.Params("cartId")
	total, err := h.uc.CalculateFinalTotal(c.Context(), cartID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.CartTotalResponse{CartID: cartID, Total: total})
}
