package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/comercio-pro/internal/domain"
	"github.com/tu-usuario/comercio-pro/internal/domain/entity"
	invdomain "github.com/tu-usuario/comercio-pro/internal/domain/inventory"
	"github.com/tu-usuario/comercio-pro/internal/domain/repository"
	"github.com/tu-usuario/comercio-pro/pkg/logger"
)

// StockUseCase es el motor de stock: el único camino por el que se mutan las
// cantidades de inventario. Cada mutación bloquea la fila del producto
// (SELECT FOR UPDATE vía el TxRunner), recalcula el estado con la regla única
// y persiste el evento de transición en la misma transacción. La alerta al
// notificador se emite después del commit y sus fallos se tragan.
type StockUseCase struct {
	txRunner   TxRunner
	invRepo    repository.InventoryRepository   // lecturas fuera de transacción
	breachRepo repository.BreachEventRepository // lecturas del historial
	thresholds *ThresholdUseCase
	notifier   Notifier
	log        *logger.Logger
}

// NewStockUseCase construye el caso de uso.
func NewStockUseCase(
	txRunner TxRunner,
	invRepo repository.InventoryRepository,
	breachRepo repository.BreachEventRepository,
	thresholds *ThresholdUseCase,
	notifier Notifier,
	log *logger.Logger,
) *StockUseCase {
	return &StockUseCase{
		txRunner:   txRunner,
		invRepo:    invRepo,
		breachRepo: breachRepo,
		thresholds: thresholds,
		notifier:   notifier,
		log:        log,
	}
}

// HasStock verifica disponibilidad sin efectos secundarios.
// Un producto sin fila de inventario no tiene stock.
func (uc *StockUseCase) HasStock(ctx context.Context, productID string, quantity int) (bool, error) {
	if quantity <= 0 {
		return false, fmt.Errorf("cantidad %d: %w", quantity, domain.ErrInvalidInput)
	}
	inv, err := uc.invRepo.Get(ctx, productID)
	if err != nil {
		return false, err
	}
	if inv == nil {
		return false, nil
	}
	return inv.QuantityInStock >= quantity, nil
}

// Deduct descuenta quantity unidades de forma atómica: verifica el stock bajo
// el bloqueo de fila y, si alcanza, resta del disponible y suma a reservado.
// Stock insuficiente es un resultado esperado (InsufficientStockError), no una
// falla, y no deja estado parcial.
func (uc *StockUseCase) Deduct(ctx context.Context, productID string, quantity int) (*entity.Inventory, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("cantidad %d: %w", quantity, domain.ErrInvalidInput)
	}

	var snap *entity.Inventory
	var event *entity.BreachEvent
	err := uc.txRunner.Run(ctx, func(
		invRepo repository.InventoryRepository,
		breachRepo repository.BreachEventRepository,
	) error {
		inv, err := invRepo.GetForUpdate(ctx, productID)
		if err != nil {
			return err
		}
		if inv == nil {
			return fmt.Errorf("inventario de producto %s: %w", productID, domain.ErrNotFound)
		}
		if inv.QuantityInStock < 0 {
			return fmt.Errorf("cantidad negativa almacenada para producto %s: %w", productID, domain.ErrIntegrity)
		}
		if inv.QuantityInStock < quantity {
			return &domain.InsufficientStockError{
				ProductID: productID,
				Requested: quantity,
				Available: inv.QuantityInStock,
			}
		}

		inv.QuantityInStock -= quantity
		inv.QuantityReserved += quantity

		event, err = uc.applyStatus(ctx, inv, invRepo, breachRepo)
		if err != nil {
			return err
		}
		snap = inv
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.alert(event)
	return snap, nil
}

// AddStock incrementa el stock en delta unidades (delta >= 0) y estampa
// LastRestocked cuando delta > 0. Crea la fila de inventario si no existe:
// es también el camino por el que entra stock inicial al sistema.
func (uc *StockUseCase) AddStock(ctx context.Context, productID string, delta int) (*entity.Inventory, error) {
	if delta < 0 {
		return nil, fmt.Errorf("delta %d: %w", delta, domain.ErrInvalidInput)
	}

	var snap *entity.Inventory
	var event *entity.BreachEvent
	err := uc.txRunner.Run(ctx, func(
		invRepo repository.InventoryRepository,
		breachRepo repository.BreachEventRepository,
	) error {
		inv, err := invRepo.GetForUpdate(ctx, productID)
		if err != nil {
			return err
		}
		if inv == nil {
			inv = &entity.Inventory{ProductID: productID}
		}

		inv.QuantityInStock += delta
		if delta > 0 {
			now := time.Now()
			inv.LastRestocked = &now
		}

		event, err = uc.applyStatus(ctx, inv, invRepo, breachRepo)
		if err != nil {
			return err
		}
		snap = inv
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.alert(event)
	return snap, nil
}

// SetStock fija la cantidad absoluta (operación administrativa).
func (uc *StockUseCase) SetStock(ctx context.Context, productID string, newQuantity int) (*entity.Inventory, error) {
	if newQuantity < 0 {
		return nil, fmt.Errorf("cantidad %d: %w", newQuantity, domain.ErrInvalidInput)
	}

	var snap *entity.Inventory
	var event *entity.BreachEvent
	err := uc.txRunner.Run(ctx, func(
		invRepo repository.InventoryRepository,
		breachRepo repository.BreachEventRepository,
	) error {
		inv, err := invRepo.GetForUpdate(ctx, productID)
		if err != nil {
			return err
		}
		if inv == nil {
			return fmt.Errorf("inventario de producto %s: %w", productID, domain.ErrNotFound)
		}

		inv.QuantityInStock = newQuantity

		event, err = uc.applyStatus(ctx, inv, invRepo, breachRepo)
		if err != nil {
			return err
		}
		snap = inv
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.alert(event)
	return snap, nil
}

// GetByProduct devuelve el snapshot del inventario.
func (uc *StockUseCase) GetByProduct(ctx context.Context, productID string) (*entity.Inventory, error) {
	inv, err := uc.invRepo.Get(ctx, productID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, fmt.Errorf("inventario de producto %s: %w", productID, domain.ErrNotFound)
	}
	return inv, nil
}

// GetStatus devuelve el estado derivado actual.
func (uc *StockUseCase) GetStatus(ctx context.Context, productID string) (entity.InventoryStatus, error) {
	inv, err := uc.GetByProduct(ctx, productID)
	if err != nil {
		return "", err
	}
	return inv.Status, nil
}

// IsBelowThreshold indica si el stock está en o bajo el umbral efectivo.
func (uc *StockUseCase) IsBelowThreshold(ctx context.Context, productID string) (bool, error) {
	inv, err := uc.GetByProduct(ctx, productID)
	if err != nil {
		return false, err
	}
	threshold, err := uc.thresholds.EffectiveFor(ctx, inv)
	if err != nil {
		return false, err
	}
	return inv.QuantityInStock <= threshold, nil
}

// ListLowStock, ListOutOfStock y ListBelowThreshold son lecturas de reporte.
func (uc *StockUseCase) ListLowStock(ctx context.Context) ([]*entity.Inventory, error) {
	return uc.invRepo.ListLowStock(ctx)
}

func (uc *StockUseCase) ListOutOfStock(ctx context.Context) ([]*entity.Inventory, error) {
	return uc.invRepo.ListOutOfStock(ctx)
}

func (uc *StockUseCase) ListBelowThreshold(ctx context.Context) ([]*entity.Inventory, error) {
	return uc.invRepo.ListBelowThreshold(ctx)
}

// ListBreaches devuelve el historial de eventos de transición del producto,
// más recientes primero.
func (uc *StockUseCase) ListBreaches(ctx context.Context, productID string, limit int) ([]*entity.BreachEvent, error) {
	if limit <= 0 {
		limit = 50
	}
	return uc.breachRepo.ListByProduct(ctx, productID, limit)
}

// applyStatus recalcula el estado con la regla única, estampa
// LastThresholdBreach al entrar en LOW_STOCK, persiste la fila y registra el
// evento de transición en la misma transacción. Devuelve el evento (o nil).
func (uc *StockUseCase) applyStatus(
	ctx context.Context,
	inv *entity.Inventory,
	invRepo repository.InventoryRepository,
	breachRepo repository.BreachEventRepository,
) (*entity.BreachEvent, error) {
	threshold, err := uc.thresholds.EffectiveFor(ctx, inv)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	prev := inv.Status
	next := invdomain.ComputeStatus(inv.QuantityInStock, threshold)
	inv.Status = next
	if next == entity.StatusLowStock && prev != entity.StatusLowStock {
		inv.LastThresholdBreach = &now
	}
	inv.UpdatedAt = now

	if err := invRepo.Upsert(ctx, inv); err != nil {
		return nil, err
	}

	event := invdomain.DetectBreach(prev, next, inv, threshold, now)
	if event != nil {
		event.ID = uuid.New().String()
		if err := breachRepo.Create(ctx, event); err != nil {
			return nil, err
		}
	}
	return event, nil
}

// alert emite la notificación del evento tras el commit. Fire-and-forget:
// un sink caído no afecta la mutación que ya quedó confirmada.
func (uc *StockUseCase) alert(event *entity.BreachEvent) {
	if event == nil || uc.notifier == nil {
		return
	}

	metadata := map[string]any{
		"productId":       event.ProductID,
		"currentQuantity": event.CurrentQuantity,
		"threshold":       event.ThresholdLevel,
		"breachType":      string(event.BreachType),
	}

	var title, message string
	switch event.BreachType {
	case entity.BreachOutOfStock:
		title = "Alerta de inventario: agotado"
		message = fmt.Sprintf("El producto %s está AGOTADO", event.ProductID)
	case entity.BreachThreshold:
		title = "Alerta de inventario: stock bajo"
		message = fmt.Sprintf("El producto %s tiene stock críticamente bajo (%d/%d unidades)",
			event.ProductID, event.CurrentQuantity, event.ThresholdLevel)
	case entity.BreachBackInStock:
		title = "Inventario: de nuevo en stock"
		message = fmt.Sprintf("El producto %s volvió a stock con %d unidades",
			event.ProductID, event.CurrentQuantity)
	default:
		title = "Inventario: umbral restaurado"
		message = fmt.Sprintf("El producto %s se recuperó por encima del umbral con %d unidades",
			event.ProductID, event.CurrentQuantity)
	}

	uc.notifier.SendAlert(title, message, invdomain.SeverityFor(event.BreachType), metadata)
}
