package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/comercio-pro/internal/application/checkout"
	"github.com/tu-usuario/comercio-pro/internal/application/inventory"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	StockUC     *inventory.StockUseCase
	ThresholdUC *inventory.ThresholdUseCase
	CheckoutUC  *checkout.CheckoutUseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	inventoryHandler := NewInventoryHandler(deps.StockUC, deps.ThresholdUC)
	checkoutHandler := NewCheckoutHandler(deps.CheckoutUC)

	// Previsualización de total (pública, tolerante a carritos inexistentes)
	api.Get("/checkout/:cartId/total", checkoutHandler.GetTotal)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Checkout (cualquier usuario autenticado; la propiedad del carrito se valida en el usecase)
	checkoutGroup := protected.Group("/checkout")
	checkoutGroup.Post("/validate", checkoutHandler.Validate)
	checkoutGroup.Post("/payment", checkoutHandler.CheckoutWithPayment)
	checkoutGroup.Post("/", checkoutHandler.Checkout)
	checkoutGroup.Get("/orders/:orderId", checkoutHandler.GetOrder)

	// Inventario. RequireRole va por ruta y no como middleware de grupo:
	// un Use sobre el prefijo /inventory alcanzaría también las lecturas
	// de cualquier usuario autenticado.
	adminOnly := RequireRole("admin")
	invGroup := protected.Group("/inventory")
	invGroup.Get("/:productId/stock", inventoryHandler.CheckStock)

	// Los reportes van antes que la ruta de snapshot para que :productId no los capture.
	invGroup.Get("/low-stock", adminOnly, inventoryHandler.ListLowStock)
	invGroup.Get("/out-of-stock", adminOnly, inventoryHandler.ListOutOfStock)
	invGroup.Get("/below-threshold", adminOnly, inventoryHandler.ListBelowThreshold)
	invGroup.Get("/:productId", inventoryHandler.GetInventory)

	// Mutaciones y umbrales, sólo administradores
	invGroup.Post("/:productId/deduct", adminOnly, inventoryHandler.Deduct)
	invGroup.Post("/:productId/add", adminOnly, inventoryHandler.AddStock)
	invGroup.Post("/:productId/set", adminOnly, inventoryHandler.SetStock)
	invGroup.Get("/:productId/threshold", adminOnly, inventoryHandler.GetThreshold)
	invGroup.Put("/:productId/threshold", adminOnly, inventoryHandler.SetProductThreshold)
	invGroup.Put("/:productId/threshold/use-category", adminOnly, inventoryHandler.UseCategoryThreshold)
	invGroup.Get("/:productId/breaches", adminOnly, inventoryHandler.ListBreaches)

	// Categorías (umbral por defecto, administradores)
	categories := protected.Group("/categories", RequireRole("admin"))
	categories.Put("/:id/threshold", inventoryHandler.SetCategoryThreshold)
}
