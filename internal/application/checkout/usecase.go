package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/comercio-pro/internal/domain"
	"github.com/tu-usuario/comercio-pro/internal/domain/entity"
	"github.com/tu-usuario/comercio-pro/internal/domain/repository"
	"github.com/tu-usuario/comercio-pro/pkg/logger"
)

// Config política de totales: impuesto porcentual y envío de tarifa plana,
// ambos calculados sobre el subtotal antes de impuestos y aplicados de forma
// uniforme sin distinción de región ni tamaño de orden.
type Config struct {
	TaxRate     decimal.Decimal
	ShippingFee decimal.Decimal
}

// CheckoutUseCase convierte un carrito en una orden confirmada garantizando
// que el stock nunca se sobrevenda. Máquina de estados por intento:
// VALIDATING → RESERVING → COMMITTED, o VALIDATING → REJECTED /
// RESERVING → ROLLED_BACK. No existe estado terminal de commit parcial:
// si una línea falla al deducir, todas las deducciones previas del intento
// se compensan antes de devolver el error.
type CheckoutUseCase struct {
	txRunner  TxRunner
	cartRepo  repository.CartRepository
	orderRepo repository.OrderRepository
	stock     StockService
	cfg       Config
	log       *logger.Logger
}

// NewCheckoutUseCase construye el orquestador.
func NewCheckoutUseCase(
	txRunner TxRunner,
	cartRepo repository.CartRepository,
	orderRepo repository.OrderRepository,
	stock StockService,
	cfg Config,
	log *logger.Logger,
) *CheckoutUseCase {
	return &CheckoutUseCase{
		txRunner:  txRunner,
		cartRepo:  cartRepo,
		orderRepo: orderRepo,
		stock:     stock,
		cfg:       cfg,
		log:       log,
	}
}

// Validate verifica que el carrito exista, pertenezca al usuario, no esté
// vacío y que cada línea pase la verificación de stock. Solo lectura; sirve
// como pre-chequeo público y como primera fase del checkout. Devuelve nil
// cuando el carrito es válido, o un error tipado que identifica la línea que
// falló.
func (uc *CheckoutUseCase) Validate(ctx context.Context, userID, cartID string) error {
	cart, err := uc.cartRepo.GetByID(ctx, cartID)
	if err != nil {
		return err
	}
	if cart == nil {
		return fmt.Errorf("carrito %s: %w", cartID, domain.ErrNotFound)
	}
	if cart.UserID != userID {
		return fmt.Errorf("carrito %s no pertenece al usuario: %w", cartID, domain.ErrForbidden)
	}
	if len(cart.Items) == 0 {
		return fmt.Errorf("carrito %s vacío: %w", cartID, domain.ErrInvalidInput)
	}

	for _, item := range cart.Items {
		if item.Quantity <= 0 {
			return fmt.Errorf("producto %s con cantidad %d: %w", item.ProductID, item.Quantity, domain.ErrInvalidInput)
		}
		ok, err := uc.stock.HasStock(ctx, item.ProductID, item.Quantity)
		if err != nil {
			return err
		}
		if !ok {
			available := 0
			if snap, err := uc.stock.GetByProduct(ctx, item.ProductID); err == nil {
				available = snap.QuantityInStock
			}
			return &domain.InsufficientStockError{
				ProductID: item.ProductID,
				Requested: item.Quantity,
				Available: available,
			}
		}
	}
	return nil
}

// Checkout ejecuta el intento completo: valida, calcula totales, deduce stock
// línea por línea, persiste la orden con sus líneas a los precios capturados y
// vacía el carrito. Cualquier falla después de la primera deducción dispara la
// compensación de las líneas ya deducidas.
func (uc *CheckoutUseCase) Checkout(ctx context.Context, userID, cartID string) (*entity.Order, error) {
	return uc.run(ctx, userID, cartID, "")
}

// CheckoutWithPayment es idéntico a Checkout pero registra el método de pago
// en la orden. La creación de la orden no espera la confirmación del pago: la
// orden queda en PENDING y el consumidor de pagos la confirma o cancela después.
// Esto permite que exista una orden cuyo pago luego falle; el comportamiento
// se conserva tal como está desplegado.
func (uc *CheckoutUseCase) CheckoutWithPayment(ctx context.Context, userID, cartID, paymentMethod string) (*entity.Order, error) {
	if strings.TrimSpace(paymentMethod) == "" {
		return nil, fmt.Errorf("método de pago vacío: %w", domain.ErrInvalidInput)
	}
	return uc.run(ctx, userID, cartID, paymentMethod)
}

// CalculateFinalTotal calcula el total con la misma fórmula del checkout, solo
// lectura. Tolera carrito inexistente o vacío devolviendo 0: soporta la vista
// previa de precios sin autenticación.
func (uc *CheckoutUseCase) CalculateFinalTotal(ctx context.Context, cartID string) (decimal.Decimal, error) {
	cart, err := uc.cartRepo.GetByID(ctx, cartID)
	if err != nil {
		uc.log.Warn().Err(err).Str("cart_id", cartID).Msg("cálculo de total sobre carrito inaccesible")
		return decimal.Zero, nil
	}
	if cart == nil || len(cart.Items) == 0 {
		return decimal.Zero, nil
	}
	_, _, _, total := uc.totals(cart)
	return total, nil
}

// GetOrder devuelve la orden con sus líneas. Solo el dueño puede consultarla.
func (uc *CheckoutUseCase) GetOrder(ctx context.Context, userID, orderID string) (*entity.Order, error) {
	order, err := uc.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, fmt.Errorf("orden %s: %w", orderID, domain.ErrNotFound)
	}
	if order.UserID != userID {
		return nil, fmt.Errorf("orden %s no pertenece al usuario: %w", orderID, domain.ErrForbidden)
	}
	return order, nil
}

func (uc *CheckoutUseCase) run(ctx context.Context, userID, cartID, paymentMethod string) (*entity.Order, error) {
	// Fase VALIDATING: rechazo temprano con el producto ofensor identificado.
	if err := uc.Validate(ctx, userID, cartID); err != nil {
		return nil, err
	}

	cart, err := uc.cartRepo.GetByID(ctx, cartID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, fmt.Errorf("carrito %s: %w", cartID, domain.ErrNotFound)
	}

	// Totales capturados antes de tocar el inventario: los precios de la orden
	// son los del carrito, no los del catálogo al momento de confirmar.
	subtotal, tax, shipping, total := uc.totals(cart)

	now := time.Now()
	order := &entity.Order{
		ID:             uuid.New().String(),
		OrderNumber:    generateOrderNumber(),
		UserID:         userID,
		Status:         entity.OrderStatusPending,
		TotalAmount:    total,
		TaxAmount:      tax,
		ShippingAmount: shipping,
		PaymentMethod:  paymentMethod,
		CreatedAt:      now,
	}
	for _, item := range cart.Items {
		order.Items = append(order.Items, entity.OrderItem{
			ID:        uuid.New().String(),
			OrderID:   order.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}

	// Fase RESERVING: deducción línea por línea. La primera falla compensa
	// todo lo ya deducido y termina el intento en ROLLED_BACK.
	deducted := make([]entity.CartItem, 0, len(cart.Items))
	for _, item := range cart.Items {
		if _, err := uc.stock.Deduct(ctx, item.ProductID, item.Quantity); err != nil {
			uc.compensate(deducted)
			if errors.Is(err, domain.ErrInsufficientStock) || errors.Is(err, domain.ErrNotFound) {
				return nil, err
			}
			// Timeout de lock, caída de BD, etc.: reintentable por el caller.
			return nil, fmt.Errorf("deducción de producto %s: %v: %w", item.ProductID, err, domain.ErrTransient)
		}
		deducted = append(deducted, item)
	}

	// Fase COMMITTED: orden + líneas + vaciado del carrito en una transacción.
	err = uc.txRunner.RunCheckout(ctx, func(
		cartRepo repository.CartRepository,
		orderRepo repository.OrderRepository,
	) error {
		if err := orderRepo.Create(ctx, order); err != nil {
			return err
		}
		for i := range order.Items {
			if err := orderRepo.CreateItem(ctx, &order.Items[i]); err != nil {
				return err
			}
		}
		return cartRepo.Clear(ctx, userID)
	})
	if err != nil {
		uc.compensate(deducted)
		return nil, fmt.Errorf("cierre de checkout: %v: %w", err, domain.ErrTransient)
	}

	uc.log.Info().
		Str("user_id", userID).
		Str("order_number", order.OrderNumber).
		Str("total", total.String()).
		Str("subtotal", subtotal.String()).
		Msg("checkout completado")
	return order, nil
}

// totals aplica la política: subtotal = Σ(cantidad × precio); impuesto y envío
// se calculan ambos sobre el subtotal antes de impuestos y luego se suman.
func (uc *CheckoutUseCase) totals(cart *entity.Cart) (subtotal, tax, shipping, total decimal.Decimal) {
	subtotal = decimal.Zero
	for _, item := range cart.Items {
		subtotal = subtotal.Add(item.TotalPrice())
	}
	tax = subtotal.Mul(uc.cfg.TaxRate)
	shipping = uc.cfg.ShippingFee
	total = subtotal.Add(tax).Add(shipping)
	return subtotal, tax, shipping, total
}

// compensate revierte las deducciones ya aplicadas devolviendo las unidades al
// stock. Usa un contexto propio: la compensación debe ejecutarse aunque el
// contexto del caller ya haya expirado. Un fallo aquí se registra para
// atención del operador; no hay reintento automático.
func (uc *CheckoutUseCase) compensate(lines []entity.CartItem) {
	if len(lines) == 0 {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	for _, item := range lines {
		if _, err := uc.stock.AddStock(ctx, item.ProductID, item.Quantity); err != nil {
			uc.log.Error().Err(err).
				Str("product_id", item.ProductID).
				Int("quantity", item.Quantity).
				Msg("compensación de stock fallida")
		}
	}
}

func generateOrderNumber() string {
	return "ORD-" + strings.ToUpper(uuid.New().String()[:8])
}
