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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/titya18/pos-react-front-office-sub001/internal/application/exchange"
	"github.com/titya18/pos-react-front-office-sub001/internal/application/order"
	"github.com/titya18/pos-react-front-office-sub001/internal/application/returns"
	"github.com/titya18/pos-react-front-office-sub001/internal/application/settlement"
	reconciler "github.com/titya18/pos-react-front-office-sub001/internal/domain/returns"
	"github.com/titya18/pos-react-front-office-sub001/internal/infrastructure/cache"
	"github.com/titya18/pos-react-front-office-sub001/internal/infrastructure/metrics"
	infrapdf "github.com/titya18/pos-react-front-office-sub001/internal/infrastructure/pdf"
	"github.com/titya18/pos-react-front-office-sub001/internal/infrastructure/postgres"
	httpRouter "github.com/titya18/pos-react-front-office-sub001/internal/interfaces/http"
	"github.com/titya18/pos-react-front-office-sub001/pkg/config"
	"github.com/titya18/pos-react-front-office-sub001/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
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

	if cfg.DB.Migrate {
		version, err := postgres.Migrate(pool)
		if err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
		log.Info().Uint("schema_version", version).Msg("migraciones aplicadas")
	}

	// Redis es opcional: sin REDIS_ADDR la tasa vigente se lee siempre de PostgreSQL.
	redisClient, err := cache.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		log.Warn().Err(err).Msg("redis no disponible, se continúa sin caché")
		redisClient = nil
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	orderRepo := postgres.NewOrderRepository(pool)
	paymentRepo := postgres.NewPaymentRepository(pool)
	returnRepo := postgres.NewReturnRepository(pool)
	rateRepo := cache.NewExchangeRateCache(
		postgres.NewExchangeRateRepository(pool),
		redisClient,
		time.Duration(cfg.Redis.TTLSeconds)*time.Second,
		log.Component("rate_cache"),
	)
	txRunner := postgres.NewTxRunner(pool)

	orderUC := order.NewUseCase(orderRepo, txRunner, m, log.Component("orders"))
	settlementUC := settlement.NewUseCase(settlement.Deps{
		Orders:     orderRepo,
		Payments:   paymentRepo,
		Returns:    returnRepo,
		Rates:      rateRepo,
		Statements: infrapdf.NewMarotoPDFGenerator(cfg.App.Name),
		Tx:         txRunner,
		Recorder:   m,
		Currencies: settlement.Currencies{
			Primary:   cfg.Settlement.PrimaryCurrency,
			Secondary: cfg.Settlement.SecondaryCurrency,
		},
		Log: log.Component("settlement"),
	})
	returnUC := returns.NewUseCase(orderRepo, returnRepo, txRunner, m,
		reconciler.ParsePricingMode(cfg.Settlement.ReturnPricingMode), log.Component("returns"))
	exchangeUC := exchange.NewUseCase(rateRepo, cfg.Settlement.PrimaryCurrency, cfg.Settlement.SecondaryCurrency,
		log.Component("exchange"))

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(m.Middleware())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "POS Back-Office API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		OrderUC:      orderUC,
		SettlementUC: settlementUC,
		ReturnUC:     returnUC,
		ExchangeUC:   exchangeUC,
		Gatherer:     reg,
		JWTSecret:    cfg.JWT.Secret,
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
