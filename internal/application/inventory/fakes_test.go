package inventory_test

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/tu-usuario/comercio-pro/internal/domain"
	"github.com/tu-usuario/comercio-pro/internal/domain/entity"
	"github.com/tu-usuario/comercio-pro/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
//
// fakeTxRunner serializa los callbacks con un mutex, reproduciendo la exclusión
// mutua por producto que en producción da el SELECT FOR UPDATE. Los fakes
// devuelven copias en las lecturas: una mutación solo es visible tras Upsert.
// ──────────────────────────────────────────────────────────────────────────────

type fakeStore struct {
	mu   sync.Mutex
	rows map[string]*entity.Inventory
}

func newFakeStore() *fakeStore {
	return &fakeStore{rows: make(map[string]*entity.Inventory)}
}

func (s *fakeStore) seed(inv *entity.Inventory) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *inv
	s.rows[inv.ProductID] = &cp
}

func (s *fakeStore) Get(_ context.Context, productID string) (*entity.Inventory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	inv, ok := s.rows[productID]
	if !ok {
		return nil, nil
	}
	cp := *inv
	return &cp, nil
}

func (s *fakeStore) GetForUpdate(ctx context.Context, productID string) (*entity.Inventory, error) {
	return s.Get(ctx, productID)
}

func (s *fakeStore) Upsert(_ context.Context, inv *entity.Inventory) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *inv
	s.rows[inv.ProductID] = &cp
	return nil
}

func (s *fakeStore) SetMinimumStockLevel(_ context.Context, productID string, level int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	inv, ok := s.rows[productID]
	if !ok {
		return fmt.Errorf("inventario de producto %s: %w", productID, domain.ErrNotFound)
	}
	inv.MinimumStockLevel = level
	inv.UseCategoryThreshold = false
	return nil
}

func (s *fakeStore) SetUseCategoryThreshold(_ context.Context, productID string, use bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	inv, ok := s.rows[productID]
	if !ok {
		return fmt.Errorf("inventario de producto %s: %w", productID, domain.ErrNotFound)
	}
	inv.UseCategoryThreshold = use
	return nil
}

func (s *fakeStore) listByStatus(status entity.InventoryStatus) []*entity.Inventory {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*entity.Inventory
	for _, inv := range s.rows {
		if inv.Status == status {
			cp := *inv
			out = append(out, &cp)
		}
	}
	return out
}

func (s *fakeStore) ListLowStock(context.Context) ([]*entity.Inventory, error) {
	return s.listByStatus(entity.StatusLowStock), nil
}

func (s *fakeStore) ListOutOfStock(context.Context) ([]*entity.Inventory, error) {
	return s.listByStatus(entity.StatusOutOfStock), nil
}

func (s *fakeStore) ListBelowThreshold(context.Context) ([]*entity.Inventory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*entity.Inventory
	for _, inv := range s.rows {
		if inv.QuantityInStock <= inv.MinimumStockLevel {
			cp := *inv
			out = append(out, &cp)
		}
	}
	return out, nil
}

type fakeBreachRepo struct {
	mu     sync.Mutex
	events []*entity.BreachEvent
}

func (r *fakeBreachRepo) Create(_ context.Context, ev *entity.BreachEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *ev
	r.events = append(r.events, &cp)
	return nil
}

func (r *fakeBreachRepo) ListByProduct(_ context.Context, productID string, limit int) ([]*entity.BreachEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.BreachEvent
	for i := len(r.events) - 1; i >= 0 && len(out) < limit; i-- {
		if r.events[i].ProductID == productID {
			cp := *r.events[i]
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeBreachRepo) byProduct(productID string) []*entity.BreachEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.BreachEvent
	for _, ev := range r.events {
		if ev.ProductID == productID {
			out = append(out, ev)
		}
	}
	return out
}

// fakeTxRunner serializa las transacciones igual que el lock de fila en BD.
type fakeTxRunner struct {
	mu      sync.Mutex
	store   *fakeStore
	breachs *fakeBreachRepo
}

func (r *fakeTxRunner) Run(ctx context.Context, fn func(
	invRepo repository.InventoryRepository,
	breachRepo repository.BreachEventRepository,
) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return fn(r.store, r.breachs)
}

type fakeProductRepo struct {
	products map[string]*entity.Product
}

func (r *fakeProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

type fakeCategoryRepo struct {
	mu         sync.Mutex
	categories map[string]*entity.Category
}

func (r *fakeCategoryRepo) GetByID(_ context.Context, id string) (*entity.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.categories[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCategoryRepo) UpdateThreshold(_ context.Context, id string, threshold int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.categories[id]
	if !ok {
		return fmt.Errorf("categoría %s: %w", id, domain.ErrNotFound)
	}
	c.MinimumStockThreshold = &threshold
	return nil
}

// memCache caché en memoria con flags de falla para probar la degradación.
type memCache struct {
	mu         sync.Mutex
	values     map[string]int
	failGet    bool
	failSet    bool
	failDelete bool
}

func newMemCache() *memCache {
	return &memCache{values: make(map[string]int)}
}

func (c *memCache) Get(_ context.Context, key string) (int, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failGet {
		return 0, false, fmt.Errorf("cache caído")
	}
	v, ok := c.values[key]
	return v, ok, nil
}

func (c *memCache) Set(_ context.Context, key string, value int, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failSet {
		return fmt.Errorf("cache caído")
	}
	c.values[key] = value
	return nil
}

func (c *memCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failDelete {
		return fmt.Errorf("cache caído")
	}
	delete(c.values, key)
	return nil
}

func (c *memCache) has(key string) (int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.values[key]
	return v, ok
}

func (c *memCache) put(key string, value int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[key] = value
}

func (c *memCache) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values = make(map[string]int)
}

// recordNotifier acumula las alertas emitidas.
type recordNotifier struct {
	mu     sync.Mutex
	alerts []recordedAlert
}

type recordedAlert struct {
	Title    string
	Message  string
	Severity string
	Metadata map[string]any
}

func (n *recordNotifier) SendAlert(title, message, severity string, metadata map[string]any) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.alerts = append(n.alerts, recordedAlert{Title: title, Message: message, Severity: severity, Metadata: metadata})
}

func (n *recordNotifier) all() []recordedAlert {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]recordedAlert, len(n.alerts))
	copy(out, n.alerts)
	return out
}
