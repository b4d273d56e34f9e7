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
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/jhoicas/procura-api/internal/application/inventory"
	"github.com/jhoicas/procura-api/internal/domain/repository"
	"github.com/jhoicas/procura-api/internal/infrastructure/audit"
	"github.com/jhoicas/procura-api/internal/infrastructure/memory"
	"github.com/jhoicas/procura-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/procura-api/internal/interfaces/http"
	"github.com/jhoicas/procura-api/pkg/config"
	"github.com/jhoicas/procura-api/pkg/logger"
)

// storage agrupa los puertos que dependen del backend elegido.
type storage struct {
	txRunner     inventory.TxRunner
	items        repository.ItemRepository
	sites        repository.SiteRepository
	bins         repository.BinRepository
	movements    repository.MovementRepository
	transactions repository.StockTransactionRepository
	balances     repository.BalanceRepository
	close        func()
}

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
		Str("storage", cfg.App.Storage).
		Msg("iniciando aplicación")

	ctx := context.Background()
	st := openStorage(ctx, cfg, log)
	defer st.close()

	resolver := inventory.NewLocationResolver(st.bins, st.sites)
	recordUC := inventory.NewRecordMovementUseCase(
		st.txRunner,
		st.items,
		resolver,
		inventory.NewBalanceLedger(cfg.Ledger.NegativeTolerance, inventory.SystemClock{}),
		inventory.NewMovementNumberer(cfg.Ledger.NumberingTZ),
		audit.NewLogger(log),
		inventory.SystemClock{},
		log.Component("ledger"),
	)
	queryUC := inventory.NewQueryUseCase(st.movements, st.transactions, st.balances, st.items, resolver)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(requestid.New())

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat("./docs/swagger.json"); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: "./docs/swagger.json",
			Path:     "docs",
			Title:    "Procura API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "storage": cfg.App.Storage})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		RecordMovement: recordUC,
		Queries:        queryUC,
		JWTSecret:      cfg.JWT.Secret,
		Logger:         log.Component("http"),
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

func openStorage(ctx context.Context, cfg *config.Config, log *logger.Logger) storage {
	if cfg.App.Storage == "memory" {
		store := memory.NewStore(cfg.Ledger.LockTimeout)
		if err := memory.SeedDemo(store, cfg.App.DemoTenant); err != nil {
			log.Fatal().Err(err).Msg("catálogo de demostración")
		}
		log.Warn().Str("tenant_id", cfg.App.DemoTenant).Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
		return storage{
			txRunner: store, items: store, sites: store, bins: store,
			movements: store, transactions: store, balances: store,
			close: func() {},
		}
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	catalog := postgres.NewCatalogRepository(pool)
	return storage{
		txRunner:     postgres.NewTxRunner(pool, cfg.Ledger.LockTimeout),
		items:        catalog,
		sites:        catalog,
		bins:         catalog,
		movements:    postgres.NewMovementRepository(pool),
		transactions: postgres.NewStockTransactionRepository(pool),
		balances:     postgres.NewBalanceRepository(pool),
		close:        pool.Close,
	}
}
