package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"

	"github.com/saikambala25/goat/api/controllers"
	"github.com/saikambala25/goat/api/middleware"
	"github.com/saikambala25/goat/api/routes"
	"github.com/saikambala25/goat/internal/auth"
	"github.com/saikambala25/goat/internal/livestock"
	"github.com/saikambala25/goat/internal/orders"
	"github.com/saikambala25/goat/internal/users"
	"github.com/saikambala25/goat/internal/userstate"
	pkgAuth "github.com/saikambala25/goat/pkg/auth"
	"github.com/saikambala25/goat/pkg/config"
	"github.com/saikambala25/goat/pkg/db"
	"github.com/saikambala25/goat/pkg/instance"
	"github.com/saikambala25/goat/pkg/logger"
	"github.com/saikambala25/goat/pkg/metrics"
	"github.com/saikambala25/goat/pkg/migrate"
	"github.com/saikambala25/goat/pkg/redis"
	"github.com/saikambala25/goat/pkg/security"
)

const shutdownTimeout = 15 * time.Second

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

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	// Redis is optional. Without it the auth endpoints are not throttled and
	// the catalog list is read straight from the database.
	var (
		redisClient  *redis.Client
		redisPinger  controllers.Pinger
		rateLimiter  middleware.RateLimitStore
		catalogCache livestock.Cache
	)
	if cfg.Redis.Enabled() {
		redisClient, err = redis.New(context.Background(), cfg.Redis, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap redis", err)
			os.Exit(1)
		}
		redisPinger = redisClient
		rateLimiter = redisClient
		catalogCache = redisClient
	} else {
		logg.Warn(context.Background(), "redis disabled: auth rate limiting and catalog cache are off")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics := metrics.NewHTTPMetrics(registry)

	hasher, err := security.NewPasswordHasher(cfg.Password)
	if err != nil {
		logg.Error(context.Background(), "failed to create password hasher", err)
		os.Exit(1)
	}
	signer, err := pkgAuth.NewHMACSigner(cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create token signer", err)
		os.Exit(1)
	}

	userRepo := users.NewRepository(dbClient.DB())
	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo: userRepo,
		Hasher:   hasher,
		Signer:   signer,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	livestockService, err := livestock.NewService(livestock.ServiceParams{
		Repo:     livestock.NewRepository(dbClient.DB()),
		Cache:    catalogCache,
		CacheTTL: cfg.Catalog.CacheTTL,
		Metrics:  httpMetrics,
		Logger:   logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create livestock service", err)
		os.Exit(1)
	}

	ordersService, err := orders.NewService(orders.ServiceParams{
		Repo:   orders.NewRepository(dbClient.DB()),
		Logger: logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create orders service", err)
		os.Exit(1)
	}

	userStateService, err := userstate.NewService(userstate.ServiceParams{
		Users:   userRepo,
		Catalog: livestockService,
		Orders:  ordersService,
		Logger:  logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create user state service", err)
		os.Exit(1)
	}

	addr := ":" + cfg.App.Port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"instance": instance.GetID(),
		"db":       dbClient.Dialect(),
		"redis":    redisClient != nil,
	})
	logg.Info(ctx, "starting api server")

	handler := routes.NewRouter(routes.Dependencies{
		Config:           cfg,
		Logger:           logg,
		DB:               dbClient,
		Redis:            redisPinger,
		RateLimiter:      rateLimiter,
		Signer:           signer,
		Metrics:          httpMetrics,
		Gatherer:         registry,
		AuthService:      authService,
		UserStateService: userStateService,
		LivestockService: livestockService,
		OrdersService:    ordersService,
	})

	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	var runErr error
	select {
	case err := <-serveErr:
		runErr = err
	case sig := <-stop:
		logg.Info(logg.WithField(ctx, "signal", sig.String()), "shutting down api server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	err = multierr.Combine(
		runErr,
		server.Shutdown(shutdownCtx),
		dbClient.Close(),
	)
	if redisClient != nil {
		err = multierr.Append(err, redisClient.Close())
	}
	if err != nil {
		logg.Error(ctx, "api server stopped with errors", err)
		os.Exit(1)
	}
	logg.Info(ctx, "api server stopped")
}
