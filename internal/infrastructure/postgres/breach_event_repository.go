package postgres

import (
	"context"
	"fmt"

	"github.com/tu-usuario/comercio-pro/internal/domain/entity"
	"github.com/tu-usuario/comercio-pro/internal/domain/repository"
)

var _ repository.BreachEventRepository = (*BreachEventRepo)(nil)

// BreachEventRepo implementación de BreachEventRepository sobre PostgreSQL.
type BreachEventRepo struct {
	q Querier
}

func NewBreachEventRepository(q Querier) *BreachEventRepo {
	return &BreachEventRepo{q: q}
}

// Create inserta el evento de umbral. Se invoca dentro de la misma tx que la mutación de stock.
func (r *BreachEventRepo) Create(ctx context.Context, ev *entity.BreachEvent) error {
	query := `
		INSERT INTO breach_events
			(id, product_id, current_quantity, threshold_level, breach_type, new_status, details, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		ev.ID, ev.ProductID, ev.CurrentQuantity, ev.ThresholdLevel,
		string(ev.BreachType), string(ev.NewStatus), nullIfEmpty(ev.Details), ev.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create breach event: %w", err)
	}
	return nil
}

// ListByProduct devuelve el historial de eventos del producto, más recientes primero.
func (r *BreachEventRepo) ListByProduct(ctx context.Context, productID string, limit int) ([]*entity.BreachEvent, error) {
	query := `
		SELECT id, product_id, current_quantity, threshold_level, breach_type, new_status,
		       COALESCE(details, ''), created_at
		FROM breach_events
		WHERE product_id = $1
		ORDER BY created_at DESC
		LIMIT $2`
	rows, err := r.q.Query(ctx, query, productID, limit)
	if err != nil {
		return nil, fmt.Errorf("list breach events: %w", err)
	}
	defer rows.Close()

	var events []*entity.BreachEvent
	for rows.Next() {
		var ev entity.BreachEvent
		if err := rows.Scan(
			&ev.ID, &ev.ProductID, &ev.CurrentQuantity, &ev.ThresholdLevel,
			&ev.BreachType, &ev.NewStatus, &ev.Details, &ev.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan breach event: %w", err)
		}
		events = append(events, &ev)
	}
	return events, rows.Err()
}
