package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/lotmotors/resale-backend/api/routes"
	"github.com/lotmotors/resale-backend/internal/catalog"
	"github.com/lotmotors/resale-backend/internal/documents"
	"github.com/lotmotors/resale-backend/internal/partners"
	"github.com/lotmotors/resale-backend/internal/reports"
	"github.com/lotmotors/resale-backend/internal/sales"
	"github.com/lotmotors/resale-backend/internal/services"
	"github.com/lotmotors/resale-backend/internal/vehicles"
	"github.com/lotmotors/resale-backend/pkg/config"
	"github.com/lotmotors/resale-backend/pkg/db"
	"github.com/lotmotors/resale-backend/pkg/logger"
	"github.com/lotmotors/resale-backend/pkg/metrics"
	"github.com/lotmotors/resale-backend/pkg/migrate"
	"github.com/lotmotors/resale-backend/pkg/outbox"
	"github.com/lotmotors/resale-backend/pkg/redis"
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

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	registry := prometheus.NewRegistry()
	lifecycleMetrics := metrics.NewLifecycleMetrics(registry)

	outboxService := outbox.NewService(outbox.NewRepository(dbClient.DB()), logg)
	calculator := sales.NewCalculator(cfg.Tax)

	catalogService, err := catalog.NewService(catalog.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}

	partnersRepo := partners.NewRepository(dbClient.DB())
	partnersService, err := partners.NewService(partnersRepo, dbClient, outboxService)
	if err != nil {
		logg.Error(context.Background(), "failed to create partners service", err)
		os.Exit(1)
	}

	storage, err := documents.NewDiskStorage(cfg.Documents.StorageDir)
	if err != nil {
		logg.Error(context.Background(), "failed to prepare document storage", err)
		os.Exit(1)
	}

	vehiclesRepo := vehicles.NewRepository(dbClient.DB())
	documentsRepo := documents.NewRepository(dbClient.DB())

	documentsService, err := documents.NewService(documentsRepo, vehiclesRepo, storage, cfg.Documents)
	if err != nil {
		logg.Error(context.Background(), "failed to create documents service", err)
		os.Exit(1)
	}

	servicesService, err := services.NewService(services.NewRepository(dbClient.DB()), vehiclesRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create services service", err)
		os.Exit(1)
	}

	vehiclesService, err := vehicles.NewService(vehicles.ServiceParams{
		Repo:       vehiclesRepo,
		Partners:   partnersRepo,
		Documents:  documentsRepo,
		Catalog:    catalogService,
		Tx:         dbClient,
		Outbox:     outboxService,
		Metrics:    lifecycleMetrics,
		Calculator: calculator,
		Lifecycle:  cfg.Lifecycle,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create vehicles service", err)
		os.Exit(1)
	}

	reportsService, err := reports.NewService(reports.NewRepository(dbClient.DB()), calculator, lifecycleMetrics)
	if err != nil {
		logg.Error(context.Background(), "failed to create reports service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	id := os.Getenv("DYNO")
	if id == "" {
		id = "local"
	}
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"instance": id,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.RouterParams{
			Config:    cfg,
			Logger:    logg,
			DB:        dbClient,
			Redis:     redisClient,
			Metrics:   registry,
			Vehicles:  vehiclesService,
			Partners:  partnersService,
			Services:  servicesService,
			Documents: documentsService,
			Catalog:   catalogService,
			Reports:   reportsService,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
