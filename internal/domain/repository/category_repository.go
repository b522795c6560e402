package repository

import (
	"context"

	"github.com/tu-usuario/comercio-pro/internal/domain/entity"
)

// CategoryRepository define el puerto de persistencia para Category (DIP).
// Solo expone lo que el núcleo de umbrales necesita; el CRUD completo vive fuera.
type CategoryRepository interface {
	// GetByID devuelve nil, nil si la categoría no existe.
	GetByID(ctx context.Context, id string) (*entity.Category, error)
	// UpdateThreshold fija el umbral mínimo de la categoría. ErrNotFound si no existe.
	UpdateThreshold(ctx context.Context, id string, threshold int) error
}
