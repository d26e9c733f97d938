package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pdv-api/docs"
	"github.com/jhoicas/pdv-api/internal/application/alerts"
	appanalytics "github.com/jhoicas/pdv-api/internal/application/analytics"
	"github.com/jhoicas/pdv-api/internal/application/auth"
	"github.com/jhoicas/pdv-api/internal/application/inventory"
	"github.com/jhoicas/pdv-api/internal/application/ports"
	"github.com/jhoicas/pdv-api/internal/application/sale"
	"github.com/jhoicas/pdv-api/internal/application/usecase"
	domaininv "github.com/jhoicas/pdv-api/internal/domain/inventory"
	"github.com/jhoicas/pdv-api/internal/domain/repository"
	infrakafka "github.com/jhoicas/pdv-api/internal/infrastructure/kafka"
	"github.com/jhoicas/pdv-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/pdv-api/internal/infrastructure/pdf"
	"github.com/jhoicas/pdv-api/internal/infrastructure/postgres"
	"github.com/jhoicas/pdv-api/internal/infrastructure/redisstore"
	"github.com/jhoicas/pdv-api/internal/infrastructure/whatsapp"
	httpRouter "github.com/jhoicas/pdv-api/internal/interfaces/http"
	"github.com/jhoicas/pdv-api/pkg/config"
	"github.com/jhoicas/pdv-api/pkg/jwt"
	"github.com/jhoicas/pdv-api/pkg/logger"
	"github.com/jhoicas/pdv-api/pkg/telemetry"
)

// txRunner une los dos contratos transaccionales (estoque y venta).
type txRunner interface {
	inventory.TxRunner
	sale.TxRunner
}

// storage repositorios según DB_DRIVER.
type storage struct {
	products  repository.ProductRepository
	sales     repository.SaleRepository
	analytics repository.AnalyticsRepository
	lowStock  repository.LowStockNotificationRepository
	tx        txRunner
	ping      func(context.Context) error
	close     func()
}

// @title        PDV API
// @version      1.0
// @description  Ponto de venda: catálogo, estoque, checkout, vendas e alertas por WhatsApp.
// @BasePath     /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
// @securityDefinitions.apikey  CronSecret
// @in                          header
// @name                        Authorization
func main() {
	// El frontend del PDV espera montos como número JSON (preco: 10.5), no como string.
	decimal.MarshalJSONWithoutQuotes = true

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
		Str("db_driver", cfg.DB.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()

	loc, err := time.LoadLocation(cfg.Alerts.Location)
	if err != nil {
		log.Warn().Err(err).Str("tz", cfg.Alerts.Location).Msg("zona horaria inválida, usando UTC")
		loc = time.UTC
	}

	store, err := openStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacenamiento")
	}
	defer store.close()

	// Trazas (opcional)
	if cfg.Telemetry.JaegerEndpoint != "" {
		tp, err := telemetry.InitTracer(cfg.App.Name, cfg.Telemetry.JaegerEndpoint)
		if err != nil {
			log.Warn().Err(err).Msg("no se pudo iniciar el tracer, continuando sin trazas")
		} else {
			defer func() {
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = tp.Shutdown(shutdownCtx)
			}()
			log.Info().Str("endpoint", cfg.Telemetry.JaegerEndpoint).Msg("tracer Jaeger activo")
		}
	}

	// Redis (opcional): cooldown compartido entre réplicas y lock de idempotencia
	var (
		cooldownRepo = store.lowStock
		checkoutLock ports.IdempotencyLock = ports.NopLock{}
	)
	if cfg.Redis.Addr != "" {
		rc, err := redisstore.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Warn().Err(err).Msg("Redis no disponible, usando cooldown de la base y sin lock de idempotencia")
		} else {
			defer rc.Close()
			cooldownRepo = redisstore.NewCooldownStore(rc, cfg.Alerts.LowStockCooldown)
			checkoutLock = redisstore.NewIdempotencyLock(rc)
			log.Info().Str("addr", cfg.Redis.Addr).Msg("Redis conectado")
		}
	}

	// Kafka (opcional)
	var events ports.EventPublisher = ports.NopPublisher{}
	if len(cfg.Kafka.Brokers) > 0 {
		publisher := infrakafka.NewPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic, log.Named("kafka"))
		defer publisher.Close()
		events = publisher
		log.Info().Strs("brokers", cfg.Kafka.Brokers).Str("topic", cfg.Kafka.Topic).Msg("publicación de eventos activa")
	}

	notifier := whatsapp.NewClient(cfg.WhatsApp, log.Named("whatsapp"))
	defer notifier.Close()
	if !cfg.WhatsApp.Enabled() {
		log.Warn().Msg("WhatsApp sin credenciales: las alertas se registran pero no se envían")
	}

	thresholds := domaininv.Thresholds{
		Default:    cfg.Alerts.LowStockDefault,
		ByCategory: cfg.Alerts.LowStockByCategory,
	}
	lowStock := alerts.NewLowStockChecker(store.products, cooldownRepo, notifier, events, alerts.LowStockConfig{
		Thresholds: thresholds,
		Cooldown:   cfg.Alerts.LowStockCooldown,
		Timeout:    cfg.Alerts.LowStockCheckTimeout,
	}, log)
	expiry := alerts.NewExpiryChecker(store.products, notifier, alerts.ExpiryConfig{
		WindowDays:      cfg.Alerts.ExpiryWindowDays,
		MaxItems:        cfg.Alerts.ExpiryMaxItems,
		NotifyWhenEmpty: cfg.Alerts.ExpiryNotifyWhenEmpty,
		Location:        loc,
	}, log)

	productUC := usecase.NewProductUseCase(store.products, lowStock)
	stockUC := inventory.NewStockUseCase(store.tx, lowStock, events, log)
	replenishmentUC := inventory.NewReplenishmentUseCase(store.products, store.analytics, thresholds, log)
	commitUC := sale.NewCommitUseCase(store.tx, store.sales, checkoutLock, events, lowStock, log)
	saleUC := sale.NewSaleUseCase(store.sales, store.products, events, log)
	receiptUC := sale.NewReceiptUseCase(saleUC, infrapdf.NewMarotoReceiptGenerator(), ports.StoreInfo{
		Name:    cfg.Store.Name,
		TaxID:   cfg.Store.TaxID,
		Address: cfg.Store.Address,
	})
	dashboardUC := appanalytics.NewDashboardUseCase(store.analytics, loc)
	authUC := auth.NewAuthUseCase([]auth.Operator{{
		Username:     cfg.Admin.Username,
		PasswordHash: cfg.Admin.PasswordHash,
		Role:         jwt.RoleAdmin,
	}}, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	if cfg.Admin.PasswordHash == "" || cfg.JWT.Secret == "" {
		log.Warn().Msg("ADMIN_PASSWORD_HASH o JWT_SECRET vacíos: el login de admin queda deshabilitado")
	}
	if cfg.Cron.Secret == "" {
		log.Warn().Msg("CRON_SECRET vacío: /check-expiry y /check-low-stock responden 503")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.HTTP.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, " + httpRouter.HeaderIdempotencyKey,
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
	}))
	app.Use(httpRouter.RequestLogger(log.Named("http")))
	if cfg.Telemetry.MetricsEnabled {
		app.Use(httpRouter.Metrics())
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	}

	// Swagger UI en local: http://localhost:<port>/docs
	docs.SwaggerInfo.Title = cfg.App.Name
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "PDV API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		pingCtx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := store.ping(pingCtx); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:       productUC,
		StockUC:         stockUC,
		ReplenishmentUC: replenishmentUC,
		CommitUC:        commitUC,
		SaleUC:          saleUC,
		ReceiptUC:       receiptUC,
		DashboardUC:     dashboardUC,
		LowStock:        lowStock,
		Expiry:          expiry,
		AuthUC:          authUC,
		JWTSecret:       cfg.JWT.Secret,
		CronSecret:      cfg.Cron.Secret,
		Location:        loc,
		Logger:          log,
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
	// Esperar las verificaciones de estoque baixo en curso antes de cerrar la base
	lowStock.Wait()

	log.Info().Msg("aplicación detenida")
}

func openStorage(ctx context.Context, cfg *config.Config, log *logger.Logger) (*storage, error) {
	if strings.EqualFold(cfg.DB.Driver, "memory") {
		log.Warn().Msg("DB_DRIVER=memory: los datos se pierden al reiniciar")
		mem := memory.NewStore()
		return &storage{
			products:  mem.Products(),
			sales:     mem.Sales(),
			analytics: mem.Analytics(),
			lowStock:  mem.LowStock(),
			tx:        mem.TxRunner(),
			ping:      func(context.Context) error { return nil },
			close:     func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	if cfg.DB.AutoMigrate {
		applied, err := postgres.Migrate(ctx, pool)
		if err != nil {
			pool.Close()
			return nil, err
		}
		if len(applied) > 0 {
			log.Info().Strs("migrations", applied).Msg("migraciones aplicadas")
		}
	}
	return &storage{
		products:  postgres.NewProductRepository(pool),
		sales:     postgres.NewSaleRepository(pool),
		analytics: postgres.NewAnalyticsRepository(pool),
		lowStock:  postgres.NewLowStockNotificationRepository(pool),
		tx:        postgres.NewTxRunner(pool),
		ping:      pool.Ping,
		close:     pool.Close,
	}, nil
}
