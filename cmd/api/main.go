package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"

	"github.com/diningtech/tableside/api/controllers"
	"github.com/diningtech/tableside/api/routes"
	"github.com/diningtech/tableside/internal/cartstore"
	"github.com/diningtech/tableside/internal/gateway"
	"github.com/diningtech/tableside/internal/menu"
	"github.com/diningtech/tableside/internal/remote"
	"github.com/diningtech/tableside/internal/sessions"
	"github.com/diningtech/tableside/internal/tables"
	"github.com/diningtech/tableside/pkg/config"
	"github.com/diningtech/tableside/pkg/logger"
	"github.com/diningtech/tableside/pkg/metrics"
	"github.com/diningtech/tableside/pkg/redis"
)

const shutdownTimeout = 10 * time.Second

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

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	remoteClient, err := remote.New(ctx, cfg.Firestore, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap firestore", err)
		os.Exit(1)
	}

	var closers []func() error
	closers = append(closers, remoteClient.Close)

	var cartBackend cartstore.Store
	var readinessPinger controllers.Pinger
	if cfg.Flags.UseSQLite {
		sqliteStore, err := cartstore.NewSQLiteStore(cfg.Flags.SQLitePath)
		if err != nil {
			logg.Error(ctx, "failed to open cart database", err)
			os.Exit(1)
		}
		cartBackend = sqliteStore
	} else {
		redisClient, err := redis.New(ctx, cfg.Redis)
		if err != nil {
			logg.Error(ctx, "failed to bootstrap redis", err)
			os.Exit(1)
		}
		closers = append(closers, redisClient.Close)
		cartBackend = cartstore.NewRedisStore(redisClient)
		readinessPinger = redisClient
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	stats := metrics.New(registry)

	catalog := menu.NewStore(logg, stats)
	catalog.Subscribe(ctx, cfg.Venue.RestaurantID, remoteClient)

	orderGateway, err := gateway.NewService(remoteClient, cfg.Venue.RestaurantID, stats)
	if err != nil {
		logg.Error(ctx, "failed to create order gateway", err)
		os.Exit(1)
	}

	sessionRegistry, err := sessions.NewRegistry(sessions.Deps{
		VenueID:      cfg.Venue.RestaurantID,
		TaxPercent:   cfg.Venue.TaxPercent,
		RestoreGrace: cfg.Venue.RestoreGrace,
		Catalog:      catalog,
		Bridge:       cartstore.NewBridge(cartBackend, logg),
		Gateway:      orderGateway,
		Logger:       logg,
	})
	if err != nil {
		logg.Error(ctx, "failed to create session registry", err)
		os.Exit(1)
	}

	resolver := tables.NewResolver(cfg.Venue.TableCount)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	startCtx := logg.WithFields(ctx, map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"venue_id": cfg.Venue.RestaurantID,
		"tables":   cfg.Venue.TableCount,
	})
	logg.Info(startCtx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, readinessPinger, catalog, resolver, sessionRegistry, registry),
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(startCtx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		logg.Info(startCtx, "shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logg.Error(startCtx, "server shutdown failed", err)
	}

	var errs []error
	for _, closeFn := range closers {
		errs = append(errs, closeFn())
	}
	if err := multierr.Combine(errs...); err != nil {
		logg.Error(startCtx, "error closing clients", err)
	}
}
