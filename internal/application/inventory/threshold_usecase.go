package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/tu-usuario/comercio-pro/internal/domain"
	"github.com/tu-usuario/comercio-pro/internal/domain/entity"
	"github.com/tu-usuario/comercio-pro/internal/domain/repository"
	"github.com/tu-usuario/comercio-pro/pkg/logger"
)

// Claves y TTL del caché de umbrales.
const (
	productThresholdPrefix  = "inventory:threshold:"
	categoryThresholdPrefix = "category:threshold:"
	thresholdCacheTTL       = 24 * time.Hour
)

// ThresholdUseCase resuelve el umbral efectivo de stock bajo por producto:
// el umbral propio del producto, o el de su categoría cuando la herencia está
// activa. Las lecturas pasan por un caché con TTL acotado; las escrituras
// actualizan el caché de forma síncrona antes de retornar, de modo que el
// escritor nunca lee un valor anterior a su propia escritura.
type ThresholdUseCase struct {
	invRepo      repository.InventoryRepository
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	cache        ThresholdCache
	log          *logger.Logger
}

// NewThresholdUseCase construye el caso de uso.
func NewThresholdUseCase(
	invRepo repository.InventoryRepository,
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	cache ThresholdCache,
	log *logger.Logger,
) *ThresholdUseCase {
	return &ThresholdUseCase{
		invRepo:      invRepo,
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		cache:        cache,
		log:          log,
	}
}

// GetProductThreshold devuelve el umbral propio del producto (caché read-through).
func (uc *ThresholdUseCase) GetProductThreshold(ctx context.Context, productID string) (int, error) {
	key := productThresholdPrefix + productID
	if val, ok := uc.cacheGet(ctx, key); ok {
		return val, nil
	}

	inv, err := uc.invRepo.Get(ctx, productID)
	if err != nil {
		return 0, err
	}
	if inv == nil {
		return 0, fmt.Errorf("inventario de producto %s: %w", productID, domain.ErrNotFound)
	}

	uc.cacheSet(ctx, key, inv.MinimumStockLevel)
	return inv.MinimumStockLevel, nil
}

// GetCategoryThreshold devuelve el umbral de la categoría; 0 si no está definido.
func (uc *ThresholdUseCase) GetCategoryThreshold(ctx context.Context, categoryID string) (int, error) {
	key := categoryThresholdPrefix + categoryID
	if val, ok := uc.cacheGet(ctx, key); ok {
		return val, nil
	}

	cat, err := uc.categoryRepo.GetByID(ctx, categoryID)
	if err != nil {
		return 0, err
	}
	if cat == nil {
		return 0, fmt.Errorf("categoría %s: %w", categoryID, domain.ErrNotFound)
	}

	threshold := 0
	if cat.MinimumStockThreshold != nil {
		threshold = *cat.MinimumStockThreshold
	}

	uc.cacheSet(ctx, key, threshold)
	return threshold, nil
}

// GetEffectiveThreshold devuelve el umbral efectivo del producto: el de la
// categoría cuando la herencia está activa y el producto tiene categoría,
// el propio en caso contrario.
func (uc *ThresholdUseCase) GetEffectiveThreshold(ctx context.Context, productID string) (int, error) {
	inv, err := uc.invRepo.Get(ctx, productID)
	if err != nil {
		return 0, err
	}
	if inv == nil {
		return 0, fmt.Errorf("inventario de producto %s: %w", productID, domain.ErrNotFound)
	}
	return uc.EffectiveFor(ctx, inv)
}

// EffectiveFor resuelve el umbral efectivo para una fila de inventario ya cargada
// (la usa el motor de stock dentro de su transacción, sin relecturas).
func (uc *ThresholdUseCase) EffectiveFor(ctx context.Context, inv *entity.Inventory) (int, error) {
	if inv.UseCategoryThreshold {
		product, err := uc.productRepo.GetByID(ctx, inv.ProductID)
		if err != nil {
			return 0, err
		}
		if product != nil && product.CategoryID != "" {
			return uc.GetCategoryThreshold(ctx, product.CategoryID)
		}
	}
	return inv.MinimumStockLevel, nil
}

// SetProductThreshold fija el umbral propio del producto y desactiva la herencia
// de categoría. Rechaza valores negativos. Escribe el caché antes de retornar.
func (uc *ThresholdUseCase) SetProductThreshold(ctx context.Context, productID string, minimumLevel int) error {
	if minimumLevel < 0 {
		return fmt.Errorf("umbral negativo (%d): %w", minimumLevel, domain.ErrInvalidInput)
	}
	if err := uc.invRepo.SetMinimumStockLevel(ctx, productID, minimumLevel); err != nil {
		return err
	}
	uc.cacheSet(ctx, productThresholdPrefix+productID, minimumLevel)
	uc.log.Info().Str("product_id", productID).Int("threshold", minimumLevel).Msg("umbral de producto actualizado")
	return nil
}

// SetCategoryThreshold fija el umbral de la categoría. Rechaza valores negativos.
func (uc *ThresholdUseCase) SetCategoryThreshold(ctx context.Context, categoryID string, minimumLevel int) error {
	if minimumLevel < 0 {
		return fmt.Errorf("umbral negativo (%d): %w", minimumLevel, domain.ErrInvalidInput)
	}
	if err := uc.categoryRepo.UpdateThreshold(ctx, categoryID, minimumLevel); err != nil {
		return err
	}
	uc.cacheSet(ctx, categoryThresholdPrefix+categoryID, minimumLevel)
	uc.log.Info().Str("category_id", categoryID).Int("threshold", minimumLevel).Msg("umbral de categoría actualizado")
	return nil
}

// UseCategoryThreshold activa o desactiva la herencia del umbral de categoría
// para el producto, invalidando su entrada de caché de forma síncrona.
func (uc *ThresholdUseCase) UseCategoryThreshold(ctx context.Context, productID string, use bool) error {
	if err := uc.invRepo.SetUseCategoryThreshold(ctx, productID, use); err != nil {
		return err
	}
	uc.cacheDelete(ctx, productThresholdPrefix+productID)
	uc.log.Info().Str("product_id", productID).Bool("use_category", use).Msg("herencia de umbral de categoría actualizada")
	return nil
}

// cacheGet lee del caché tolerando fallas del backend (degrada a miss).
func (uc *ThresholdUseCase) cacheGet(ctx context.Context, key string) (int, bool) {
	if uc.cache == nil {
		return 0, false
	}
	val, ok, err := uc.cache.Get(ctx, key)
	if err != nil {
		uc.log.Warn().Err(err).Str("key", key).Msg("caché de umbrales no disponible, leyendo de BD")
		return 0, false
	}
	return val, ok
}

func (uc *ThresholdUseCase) cacheSet(ctx context.Context, key string, value int) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.Set(ctx, key, value, thresholdCacheTTL); err != nil {
		// Si el write-through falla, invalidar para no dejar un valor viejo vigente.
		uc.log.Warn().Err(err).Str("key", key).Msg("no se pudo escribir el caché de umbrales")
		uc.cacheDelete(ctx, key)
	}
}

func (uc *ThresholdUseCase) cacheDelete(ctx context.Context, key string) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.Delete(ctx, key); err != nil {
		uc.log.Warn().Err(err).Str("key", key).Msg("no se pudo invalidar el caché de umbrales")
	}
}
