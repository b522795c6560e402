package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/comercio-pro/internal/domain/entity"
	"github.com/tu-usuario/comercio-pro/internal/domain/repository"
)

var _ repository.CartRepository = (*CartRepo)(nil)

// CartRepo implementación de CartRepository sobre PostgreSQL.
type CartRepo struct {
	q Querier
}

func NewCartRepository(q Querier) *CartRepo {
	return &CartRepo{q: q}
}

// GetByID obtiene el carrito con sus líneas; nil si no existe.
func (r *CartRepo) GetByID(ctx context.Context, id string) (*entity.Cart, error) {
	return r.get(ctx, `SELECT id, user_id, updated_at FROM carts WHERE id = $1`, id)
}

// GetByUser obtiene el carrito del usuario; nil si no tiene.
func (r *CartRepo) GetByUser(ctx context.Context, userID string) (*entity.Cart, error) {
	return r.get(ctx, `SELECT id, user_id, updated_at FROM carts WHERE user_id = $1`, userID)
}

func (r *CartRepo) get(ctx context.Context, query, arg string) (*entity.Cart, error) {
	var cart entity.Cart
	err := r.q.QueryRow(ctx, query, arg).Scan(&cart.ID, &cart.UserID, &cart.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cart: %w", err)
	}
	items, err := r.items(ctx, cart.ID)
	if err != nil {
		return nil, err
	}
	cart.Items = items
	return &cart, nil
}

func (r *CartRepo) items(ctx context.Context, cartID string) ([]entity.CartItem, error) {
	query := `
		SELECT product_id, quantity, unit_price
		FROM cart_items
		WHERE cart_id = $1
		ORDER BY product_id`
	rows, err := r.q.Query(ctx, query, cartID)
	if err != nil {
		return nil, fmt.Errorf("list cart items: %w", err)
	}
	defer rows.Close()

	var items []entity.CartItem
	for rows.Next() {
		var it entity.CartItem
		if err := rows.Scan(&it.ProductID, &it.Quantity, &it.UnitPrice); err != nil {
			return nil, fmt.Errorf("scan cart item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// Clear elimina las líneas del carrito del usuario. La cabecera del carrito se conserva.
func (r *CartRepo) Clear(ctx context.Context, userID string) error {
	query := `
		DELETE FROM cart_items
		WHERE cart_id IN (SELECT id FROM carts WHERE user_id = $1)`
	if _, err := r.q.Exec(ctx, query, userID); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}
