package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/comercio-pro/internal/domain"
	"github.com/tu-usuario/comercio-pro/internal/domain/entity"
	"github.com/tu-usuario/comercio-pro/internal/domain/repository"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

const inventoryColumns = `product_id, quantity_in_stock, quantity_reserved, minimum_stock_level,
		       use_category_threshold, status, last_restocked, last_threshold_breach, updated_at`

// InventoryRepo implementación de InventoryRepository sobre PostgreSQL (usable con pool o tx).
type InventoryRepo struct {
	q Querier
}

// NewInventoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

// Get obtiene la fila de inventario del producto; nil si no existe.
func (r *InventoryRepo) Get(ctx context.Context, productID string) (*entity.Inventory, error) {
	query := `
		SELECT ` + inventoryColumns + `
		FROM inventory WHERE product_id = $1`
	return r.scanOne(ctx, query, productID)
}

// GetForUpdate obtiene la fila y la bloquea para update (SELECT FOR UPDATE).
// Serializa mutaciones concurrentes sobre el mismo producto.
func (r *InventoryRepo) GetForUpdate(ctx context.Context, productID string) (*entity.Inventory, error) {
	query := `
		SELECT ` + inventoryColumns + `
		FROM inventory WHERE product_id = $1
		FOR UPDATE`
	return r.scanOne(ctx, query, productID)
}

func (r *InventoryRepo) scanOne(ctx context.Context, query, productID string) (*entity.Inventory, error) {
	var inv entity.Inventory
	err := r.q.QueryRow(ctx, query, productID).Scan(
		&inv.ProductID, &inv.QuantityInStock, &inv.QuantityReserved, &inv.MinimumStockLevel,
		&inv.UseCategoryThreshold, &inv.Status, &inv.LastRestocked, &inv.LastThresholdBreach, &inv.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory: %w", err)
	}
	return &inv, nil
}

// Upsert inserta o actualiza la fila completa de inventario del producto.
func (r *InventoryRepo) Upsert(ctx context.Context, inv *entity.Inventory) error {
	query := `
		INSERT INTO inventory (product_id, quantity_in_stock, quantity_reserved, minimum_stock_level,
		                       use_category_threshold, status, last_restocked, last_threshold_breach, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (product_id)
		DO UPDATE SET quantity_in_stock      = EXCLUDED.quantity_in_stock,
		              quantity_reserved      = EXCLUDED.quantity_reserved,
		              minimum_stock_level    = EXCLUDED.minimum_stock_level,
		              use_category_threshold = EXCLUDED.use_category_threshold,
		              status                 = EXCLUDED.status,
		              last_restocked         = EXCLUDED.last_restocked,
		              last_threshold_breach  = EXCLUDED.last_threshold_breach,
		              updated_at             = EXCLUDED.updated_at`
	_, err := r.q.Exec(ctx, query,
		inv.ProductID, inv.QuantityInStock, inv.QuantityReserved, inv.MinimumStockLevel,
		inv.UseCategoryThreshold, inv.Status, inv.LastRestocked, inv.LastThresholdBreach, inv.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert inventory: %w", err)
	}
	return nil
}

// SetMinimumStockLevel fija el umbral propio y desactiva la herencia de
// categoría, sin tocar las cantidades (no compite con deducciones en curso).
func (r *InventoryRepo) SetMinimumStockLevel(ctx context.Context, productID string, level int) error {
	query := `
		UPDATE inventory
		SET minimum_stock_level = $2, use_category_threshold = false, updated_at = now()
		WHERE product_id = $1`
	tag, err := r.q.Exec(ctx, query, productID, level)
	if err != nil {
		return fmt.Errorf("set minimum stock level: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("inventario de producto %s: %w", productID, domain.ErrNotFound)
	}
	return nil
}

// SetUseCategoryThreshold activa o desactiva la herencia del umbral de categoría.
func (r *InventoryRepo) SetUseCategoryThreshold(ctx context.Context, productID string, use bool) error {
	query := `
		UPDATE inventory
		SET use_category_threshold = $2, updated_at = now()
		WHERE product_id = $1`
	tag, err := r.q.Exec(ctx, query, productID, use)
	if err != nil {
		return fmt.Errorf("set use category threshold: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("inventario de producto %s: %w", productID, domain.ErrNotFound)
	}
	return nil
}

// ListLowStock devuelve las filas en estado LOW_STOCK.
func (r *InventoryRepo) ListLowStock(ctx context.Context) ([]*entity.Inventory, error) {
	query := `
		SELECT ` + inventoryColumns + `
		FROM inventory WHERE status = $1
		ORDER BY quantity_in_stock ASC`
	return r.list(ctx, query, string(entity.StatusLowStock))
}

// ListOutOfStock devuelve las filas en estado OUT_OF_STOCK.
func (r *InventoryRepo) ListOutOfStock(ctx context.Context) ([]*entity.Inventory, error) {
	query := `
		SELECT ` + inventoryColumns + `
		FROM inventory WHERE status = $1
		ORDER BY updated_at DESC`
	return r.list(ctx, query, string(entity.StatusOutOfStock))
}

// ListBelowThreshold devuelve filas con stock en o bajo su umbral efectivo,
// resolviendo la herencia de categoría en la consulta.
func (r *InventoryRepo) ListBelowThreshold(ctx context.Context) ([]*entity.Inventory, error) {
	query := `
		SELECT i.product_id, i.quantity_in_stock, i.quantity_reserved, i.minimum_stock_level,
		       i.use_category_threshold, i.status, i.last_restocked, i.last_threshold_breach, i.updated_at
		FROM inventory i
		LEFT JOIN products p   ON p.id = i.product_id
		LEFT JOIN categories c ON c.id = p.category_id
		WHERE i.quantity_in_stock <= COALESCE(
			CASE WHEN i.use_category_threshold THEN c.minimum_stock_threshold END,
			i.minimum_stock_level)
		ORDER BY i.quantity_in_stock ASC`
	return r.list(ctx, query)
}

func (r *InventoryRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Inventory, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list inventory: %w", err)
	}
	defer rows.Close()

	var result []*entity.Inventory
	for rows.Next() {
		var inv entity.Inventory
		if err := rows.Scan(
			&inv.ProductID, &inv.QuantityInStock, &inv.QuantityReserved, &inv.MinimumStockLevel,
			&inv.UseCategoryThreshold, &inv.Status, &inv.LastRestocked, &inv.LastThresholdBreach, &inv.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan inventory: %w", err)
		}
		result = append(result, &inv)
	}
	return result, rows.Err()
}
