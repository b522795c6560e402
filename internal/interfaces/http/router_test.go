package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appcheckout "github.com/tu-usuario/comercio-pro/internal/application/checkout"
	appinv "github.com/tu-usuario/comercio-pro/internal/application/inventory"
	"github.com/tu-usuario/comercio-pro/internal/domain/entity"
	invdomain "github.com/tu-usuario/comercio-pro/internal/domain/inventory"
	"github.com/tu-usuario/comercio-pro/internal/domain/repository"
	apphttp "github.com/tu-usuario/comercio-pro/internal/interfaces/http"
	"github.com/tu-usuario/comercio-pro/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes mínimos para levantar el router completo
// ──────────────────────────────────────────────────────────────────────────────

type routerInvRepo struct {
	mu   sync.Mutex
	rows map[string]*entity.Inventory
}

func (r *routerInvRepo) Get(_ context.Context, productID string) (*entity.Inventory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	inv, ok := r.rows[productID]
	if !ok {
		return nil, nil
	}
	cp := *inv
	return &cp, nil
}

func (r *routerInvRepo) GetForUpdate(ctx context.Context, productID string) (*entity.Inventory, error) {
	return r.Get(ctx, productID)
}

func (r *routerInvRepo) Upsert(_ context.Context, inv *entity.Inventory) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *inv
	r.rows[inv.ProductID] = &cp
	return nil
}

func (r *routerInvRepo) SetMinimumStockLevel(_ context.Context, productID string, level int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if inv, ok := r.rows[productID]; ok {
		inv.MinimumStockLevel = level
		inv.UseCategoryThreshold = false
	}
	return nil
}

func (r *routerInvRepo) SetUseCategoryThreshold(_ context.Context, productID string, use bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if inv, ok := r.rows[productID]; ok {
		inv.UseCategoryThreshold = use
	}
	return nil
}

func (r *routerInvRepo) listByStatus(status entity.InventoryStatus) []*entity.Inventory {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Inventory
	for _, inv := range r.rows {
		if inv.Status == status {
			cp := *inv
			out = append(out, &cp)
		}
	}
	return out
}

func (r *routerInvRepo) ListLowStock(context.Context) ([]*entity.Inventory, error) {
	return r.listByStatus(entity.StatusLowStock), nil
}

func (r *routerInvRepo) ListOutOfStock(context.Context) ([]*entity.Inventory, error) {
	return r.listByStatus(entity.StatusOutOfStock), nil
}

func (r *routerInvRepo) ListBelowThreshold(context.Context) ([]*entity.Inventory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Inventory
	for _, inv := range r.rows {
		if inv.QuantityInStock <= inv.MinimumStockLevel {
			cp := *inv
			out = append(out, &cp)
		}
	}
	return out, nil
}

type routerBreachRepo struct{}

func (routerBreachRepo) Create(context.Context, *entity.BreachEvent) error { return nil }
func (routerBreachRepo) ListByProduct(context.Context, string, int) ([]*entity.BreachEvent, error) {
	return nil, nil
}

type routerTxRunner struct {
	inv *routerInvRepo
}

func (t *routerTxRunner) Run(_ context.Context, fn func(
	invRepo repository.InventoryRepository,
	breachRepo repository.BreachEventRepository,
) error) error {
	return fn(t.inv, routerBreachRepo{})
}

type routerProductRepo struct{}

func (routerProductRepo) GetByID(context.Context, string) (*entity.Product, error) { return nil, nil }

type routerCategoryRepo struct{}

func (routerCategoryRepo) GetByID(context.Context, string) (*entity.Category, error) {
	return nil, nil
}
func (routerCategoryRepo) UpdateThreshold(context.Context, string, int) error { return nil }

type routerCache struct{}

func (routerCache) Get(context.Context, string) (int, bool, error)        { return 0, false, nil }
func (routerCache) Set(context.Context, string, int, time.Duration) error { return nil }
func (routerCache) Delete(context.Context, string) error                  { return nil }

type routerNotifier struct{}

func (routerNotifier) SendAlert(string, string, string, map[string]any) {}

type routerCartRepo struct{}

func (routerCartRepo) GetByID(context.Context, string) (*entity.Cart, error)   { return nil, nil }
func (routerCartRepo) GetByUser(context.Context, string) (*entity.Cart, error) { return nil, nil }
func (routerCartRepo) Clear(context.Context, string) error                     { return nil }

type routerOrderRepo struct{}

func (routerOrderRepo) Create(context.Context, *entity.Order) error         { return nil }
func (routerOrderRepo) CreateItem(context.Context, *entity.OrderItem) error { return nil }
func (routerOrderRepo) GetByID(context.Context, string) (*entity.Order, error) {
	return nil, nil
}

type routerCheckoutTx struct{}

func (routerCheckoutTx) RunCheckout(_ context.Context, fn func(
	cartRepo repository.CartRepository,
	orderRepo repository.OrderRepository,
) error) error {
	return fn(routerCartRepo{}, routerOrderRepo{})
}

// newRouterApp levanta la aplicación Fiber con el router real y una fila de
// inventario sembrada para el producto p1.
func newRouterApp(t *testing.T) *fiber.App {
	t.Helper()

	invRepo := &routerInvRepo{rows: map[string]*entity.Inventory{}}
	seed := &entity.Inventory{
		ProductID:         "p1",
		QuantityInStock:   10,
		MinimumStockLevel: 2,
		UpdatedAt:         time.Now().UTC(),
	}
	seed.Status = invdomain.ComputeStatus(seed.QuantityInStock, seed.MinimumStockLevel)
	invRepo.rows["p1"] = seed

	log := logger.Nop()
	thresholdUC := appinv.NewThresholdUseCase(invRepo, routerProductRepo{}, routerCategoryRepo{}, routerCache{}, log)
	stockUC := appinv.NewStockUseCase(&routerTxRunner{inv: invRepo}, invRepo, routerBreachRepo{}, thresholdUC, routerNotifier{}, log)
	checkoutUC := appcheckout.NewCheckoutUseCase(
		routerCheckoutTx{}, routerCartRepo{}, routerOrderRepo{}, stockUC,
		appcheckout.Config{TaxRate: decimal.RequireFromString("0.05"), ShippingFee: decimal.NewFromInt(50)},
		log,
	)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		StockUC:     stockUC,
		ThresholdUC: thresholdUC,
		CheckoutUC:  checkoutUC,
		JWTSecret:   testJWTSecret,
	})
	return app
}

// do lanza una petición con header opcional de autorización y cuerpo JSON opcional.
func do(t *testing.T, app *fiber.App, method, path, authHeader string, body any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests de autorización por ruta
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: el snapshot de inventario es una lectura autenticada, no exclusiva
// de administradores: un customer debe recibir 200, nunca 403.
func TestRouter_SnapshotAccesibleParaCliente(t *testing.T) {
	app := newRouterApp(t)

	resp := do(t, app, http.MethodGet, "/api/inventory/p1", tokenForRole(t, "customer"), nil)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode,
		"GET /api/inventory/:productId debe ser accesible para cualquier usuario autenticado")

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "p1", body["product_id"])
	assert.Equal(t, float64(10), body["quantity_in_stock"])
	assert.Equal(t, string(entity.StatusInStock), body["status"])
}

// Caso 2: la verificación de stock también es lectura autenticada.
func TestRouter_CheckStockAccesibleParaCliente(t *testing.T) {
	app := newRouterApp(t)

	resp := do(t, app, http.MethodGet, "/api/inventory/p1/stock?quantity=3", tokenForRole(t, "customer"), nil)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["has_stock"])
}

// Caso 3: los reportes y las mutaciones siguen siendo sólo de administradores.
func TestRouter_RutasAdminBloqueadasParaCliente(t *testing.T) {
	app := newRouterApp(t)
	customer := tokenForRole(t, "customer")

	cases := []struct {
		method string
		path   string
		body   any
	}{
		{http.MethodGet, "/api/inventory/low-stock", nil},
		{http.MethodGet, "/api/inventory/out-of-stock", nil},
		{http.MethodGet, "/api/inventory/below-threshold", nil},
		{http.MethodPost, "/api/inventory/p1/deduct", map[string]int{"quantity": 1}},
		{http.MethodPost, "/api/inventory/p1/add", map[string]int{"quantity": 1}},
		{http.MethodPost, "/api/inventory/p1/set", map[string]int{"quantity": 1}},
		{http.MethodGet, "/api/inventory/p1/threshold", nil},
		{http.MethodPut, "/api/inventory/p1/threshold", map[string]int{"threshold": 5}},
		{http.MethodGet, "/api/inventory/p1/breaches", nil},
		{http.MethodPut, "/api/categories/c1/threshold", map[string]int{"threshold": 5}},
	}
	for _, tc := range cases {
		resp := do(t, app, tc.method, tc.path, customer, tc.body)
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		assert.Equal(t, http.StatusForbidden, resp.StatusCode,
			"%s %s debe estar restringido a admin", tc.method, tc.path)
		assert.Contains(t, string(body), "FORBIDDEN")
	}
}

// Caso 4: un admin sí accede a reportes y mutaciones.
func TestRouter_AdminAccedeReportesYMutaciones(t *testing.T) {
	app := newRouterApp(t)
	admin := tokenForRole(t, "admin")

	// El reporte responde un array JSON, no el snapshot de un producto
	// llamado "low-stock": la ruta con parámetro no debe capturarlo.
	resp := do(t, app, http.MethodGet, "/api/inventory/low-stock", admin, nil)
	raw, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list []map[string]any
	require.NoError(t, json.Unmarshal(raw, &list), "el reporte debe responder un array JSON")

	resp = do(t, app, http.MethodPost, "/api/inventory/p1/deduct", admin, map[string]int{"quantity": 2})
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var after map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&after))
	assert.Equal(t, float64(8), after["quantity_in_stock"])
	assert.Equal(t, float64(2), after["quantity_reserved"])
}

// Caso 5: sin token, las rutas protegidas devuelven 401; la previsualización
// de total es pública.
func TestRouter_RutasPublicasYProtegidas(t *testing.T) {
	app := newRouterApp(t)

	resp := do(t, app, http.MethodGet, "/api/inventory/p1", "", nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode,
		"el snapshot requiere autenticación")

	resp = do(t, app, http.MethodGet, "/api/checkout/c1/total", "", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode,
		"la previsualización de total es pública")

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "0", body["total"], "carrito inexistente previsualiza total 0")
}
