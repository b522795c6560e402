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

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo implementación de CategoryRepository sobre PostgreSQL (usable con pool o tx).
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

// GetByID obtiene la categoría; nil si no existe.
func (r *CategoryRepo) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	query := `
		SELECT id, name, minimum_stock_threshold, updated_at
		FROM categories WHERE id = $1`
	var cat entity.Category
	err := r.q.QueryRow(ctx, query, id).Scan(
		&cat.ID, &cat.Name, &cat.MinimumStockThreshold, &cat.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return &cat, nil
}

// UpdateThreshold fija el umbral mínimo de stock de la categoría.
func (r *CategoryRepo) UpdateThreshold(ctx context.Context, id string, threshold int) error {
	query := `
		UPDATE categories
		SET minimum_stock_threshold = $2, updated_at = now()
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, id, threshold)
	if err != nil {
		return fmt.Errorf("update category threshold: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("categoría %s: %w", id, domain.ErrNotFound)
	}
	return nil
}
