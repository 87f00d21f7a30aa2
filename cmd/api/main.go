package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/cargodesk/cargodesk-backend/api/routes"
	"github.com/cargodesk/cargodesk-backend/internal/archive"
	"github.com/cargodesk/cargodesk-backend/internal/audit"
	"github.com/cargodesk/cargodesk-backend/internal/auth"
	"github.com/cargodesk/cargodesk-backend/internal/counterparties"
	"github.com/cargodesk/cargodesk-backend/internal/inventory"
	"github.com/cargodesk/cargodesk-backend/internal/notifications"
	"github.com/cargodesk/cargodesk-backend/internal/orders"
	"github.com/cargodesk/cargodesk-backend/internal/trucks"
	"github.com/cargodesk/cargodesk-backend/internal/users"
	"github.com/cargodesk/cargodesk-backend/internal/warehouses"
	pkgauth "github.com/cargodesk/cargodesk-backend/pkg/auth"
	"github.com/cargodesk/cargodesk-backend/pkg/auth/session"
	"github.com/cargodesk/cargodesk-backend/pkg/config"
	"github.com/cargodesk/cargodesk-backend/pkg/db"
	"github.com/cargodesk/cargodesk-backend/pkg/logger"
	"github.com/cargodesk/cargodesk-backend/pkg/metrics"
	"github.com/cargodesk/cargodesk-backend/pkg/migrate"
	"github.com/cargodesk/cargodesk-backend/pkg/pubsub"
	"github.com/cargodesk/cargodesk-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessions, err := session.New(redisClient, cfg.JWT.SessionTTL())
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	tokens, err := pkgauth.NewTokenIssuer(cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create token issuer", err)
		os.Exit(1)
	}

	// The notification topic is optional. Without it the sink logs and
	// drops instead of publishing.
	var pubsubClient *pubsub.Client
	var pubsubCheck routes.Pinger
	if cfg.Notify.Topic != "" {
		pubsubClient, err = pubsub.NewClient(context.Background(), cfg.GCP, cfg.Notify, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap pubsub", err)
			os.Exit(1)
		}
		defer func() {
			if err := pubsubClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing pubsub", err)
			}
		}()
		pubsubCheck = pubsubClient
	}

	sink, err := notifications.New(pubsubClient.NotificationPublisher(), logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create notification sink", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics := metrics.NewHTTPMetrics(registry)

	gormDB := dbClient.DB()
	auditService, err := audit.NewService(audit.NewRepository(gormDB))
	if err != nil {
		logg.Error(context.Background(), "failed to create audit service", err)
		os.Exit(1)
	}
	inventoryService, err := inventory.NewService(inventory.NewRepository(gormDB), dbClient, auditService)
	if err != nil {
		logg.Error(context.Background(), "failed to create inventory service", err)
		os.Exit(1)
	}
	truckService, err := trucks.NewService(trucks.NewRepository(gormDB), dbClient, auditService)
	if err != nil {
		logg.Error(context.Background(), "failed to create truck service", err)
		os.Exit(1)
	}
	counterpartyService, err := counterparties.NewService(counterparties.NewRepository(gormDB), dbClient, auditService)
	if err != nil {
		logg.Error(context.Background(), "failed to create counterparty service", err)
		os.Exit(1)
	}
	warehouseService, err := warehouses.NewService(warehouses.NewRepository(gormDB), dbClient, auditService)
	if err != nil {
		logg.Error(context.Background(), "failed to create warehouse service", err)
		os.Exit(1)
	}
	archiveService, err := archive.NewService(archive.NewRepository(gormDB), dbClient, auditService)
	if err != nil {
		logg.Error(context.Background(), "failed to create archive service", err)
		os.Exit(1)
	}

	userRepo := users.NewRepository(gormDB)
	userService, err := users.NewService(userRepo, cfg.Password)
	if err != nil {
		logg.Error(context.Background(), "failed to create user service", err)
		os.Exit(1)
	}
	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:       userRepo,
		TokenIssuer:    tokens,
		SessionManager: sessions,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	orderService, err := orders.NewService(
		orders.NewRepository(gormDB),
		dbClient,
		inventoryService,
		truckService,
		auditService,
		sink,
		logg,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create order service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:      cfg,
			Logger:      logg,
			TokenIssuer: tokens,
			Sessions:    sessions,
			Metrics:     httpMetrics,
			Registry:    registry,

			AuthService:    authService,
			UserService:    userService,
			OrderService:   orderService,
			Counterparties: counterpartyService,
			Warehouses:     warehouseService,
			Inventory:      inventoryService,
			Trucks:         truckService,
			Archive:        archiveService,
			Audit:          auditService,

			ReadyChecks: map[string]routes.Pinger{
				"database": dbClient,
				"redis":    redisClient,
				"pubsub":   pubsubCheck,
			},
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
