package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/tu-usuario/comercio-pro/internal/application/checkout"
	"github.com/tu-usuario/comercio-pro/internal/application/inventory"
	"github.com/tu-usuario/comercio-pro/internal/infrastructure/notify"
	"github.com/tu-usuario/comercio-pro/internal/infrastructure/postgres"
	"github.com/tu-usuario/comercio-pro/internal/infrastructure/rediscache"
	httpRouter "github.com/tu-usuario/comercio-pro/internal/interfaces/http"
	"github.com/tu-usuario/comercio-pro/pkg/config"
	"github.com/tu-usuario/comercio-pro/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	redisClient, err := rediscache.NewClient(ctx, cfg.Redis)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a Redis")
	}
	defer redisClient.Close()

	invRepo := postgres.NewInventoryRepository(pool)
	breachRepo := postgres.NewBreachEventRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	cartRepo := postgres.NewCartRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	thresholdCache := rediscache.NewThresholdCache(redisClient)
	notifier := notify.NewLogNotifier(log)

	thresholdUC := inventory.NewThresholdUseCase(invRepo, productRepo, categoryRepo, thresholdCache, log)
	stockUC := inventory.NewStockUseCase(txRunner, invRepo, breachRepo, thresholdUC, notifier, log)
	checkoutUC := checkout.NewCheckoutUseCase(txRunner, cartRepo, orderRepo, stockUC, checkout.Config{
		TaxRate:     cfg.Checkout.TaxRate,
		ShippingFee: cfg.Checkout.ShippingFee,
	}, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "ComercioPro API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		StockUC:     stockUC,
		ThresholdUC: thresholdUC,
		CheckoutUC:  checkoutUC,
		JWTSecret:   cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
