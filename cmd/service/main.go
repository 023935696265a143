package main

import (
	"context"
	"fmt"
	stdlog "log"
	"net"
	"net/http"
	_ "net/http/pprof" //nolint:gosec // localhost-only ${PPROF_PORT}
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	application "pickup/internal/app"
	"pickup/internal/handlers/rest/healthcheck_head"
	"pickup/internal/handlers/rest/pharmacy_stats_get"
	"pickup/internal/handlers/rest/ping_get"
	"pickup/internal/handlers/rest/request_cancel_put"
	"pickup/internal/handlers/rest/request_complete_put"
	"pickup/internal/handlers/rest/request_get"
	"pickup/internal/handlers/rest/request_history_get"
	"pickup/internal/handlers/rest/request_status_put"
	"pickup/internal/handlers/rest/requests_get"
	"pickup/internal/handlers/rest/requests_post"
	"pickup/internal/pkg/cache"
	"pickup/internal/pkg/config"
	"pickup/internal/pkg/dotenv"
	metrics_system "pickup/internal/pkg/metrics"
	"pickup/internal/pkg/middlewares/actor"
	"pickup/internal/pkg/middlewares/graceful_shutdown"
	"pickup/internal/pkg/middlewares/metrics"
	"pickup/internal/pkg/middlewares/rate_limiter"
	"pickup/internal/pkg/middlewares/timeout"
	"pickup/internal/pkg/migrations"
	"pickup/internal/pkg/postgres"
	"pickup/internal/pkg/telemetry"
	statsService "pickup/internal/service/stats"
	"pickup/pkg/logger"
	"pickup/pkg/logger/zap_adapter"
	"pickup/pkg/token_bucket"
)

const serviceName = "pickup-service"

func main() {
	zapLogger, err := zap_adapter.NewZapAdapter(os.Getenv("LOG_LEVEL"))
	if err != nil {
		stdlog.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() {
		if err := zapLogger.Sync(); err != nil {
			stdlog.Printf("failed to sync logger: %v", err)
		}
	}()

	var appLogger logger.Logger = zapLogger
	mainLog := appLogger.With()

	mainLog.Info("starting pickup-service application")

	if _, err := os.Stat(".env"); err == nil {
		if err := dotenv.Load(dotenv.PortOverride); err != nil {
			mainLog.Error("failed to load .env file", logger.NewField("error", err))
			return
		}
	} else {
		mainLog.Warn("No .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		mainLog.Error("load config", logger.NewField("error", err))
		return
	}

	err = run(context.Background(), cfg, appLogger)
	if err != nil {
		mainLog.Error("application failed", logger.NewField("error", err))
		return
	}
}

//nolint:contextcheck // Получаю предупреждения от линтера в местах де наследуюсь от context.Background(), хотя это часть gracefull shutdown
func run(ctx context.Context, cfg *config.Config, log logger.Logger) error {
	const (
		shutdownPeriod      = 15 * time.Second
		shutdownHardPeriod  = 3 * time.Second
		readinessDrainDelay = 5 * time.Second
	)

	// https://victoriametrics.com/blog/go-graceful-shutdown/#b-use-basecontext-to-provide-a-global-context-to-all-connections
	var isShuttingDown atomic.Bool

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	runLog := log.With()

	shutdownTracing, err := telemetry.Setup(ctx, log, &cfg.Telemetry, serviceName)
	if err != nil {
		return fmt.Errorf("telemetry: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownHardPeriod)
		defer cancel()
		if err := shutdownTracing(shutdownCtx); err != nil {
			runLog.Error("failed to shutdown tracing", logger.NewField("error", err))
		}
	}()

	if cfg.Database.AutoMigrate {
		if err := migrations.Up(ctx, log, &cfg.Database); err != nil {
			return fmt.Errorf("migrations: %w", err)
		}
	}

	pool, err := postgres.NewConnPool(ctx, log, &cfg.Database)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	defer pool.Close()

	// без REDIS_ADDR статистика считается на каждый запрос
	var statsCache statsService.Cache
	if cfg.Redis.Addr != "" {
		redisCache, err := cache.NewRedisCache(ctx, log, &cfg.Redis, serviceName)
		if err != nil {
			return fmt.Errorf("redis: %w", err)
		}
		defer func() {
			if err := redisCache.Close(); err != nil {
				runLog.Error("failed to close redis connection", logger.NewField("error", err))
			}
		}()
		statsCache = redisCache
	}

	businessApp, err := application.InitializeApplication(ctx, log, pool, pgxv5.DefaultCtxGetter, statsCache, cfg)
	if err != nil {
		return fmt.Errorf("business logic: %w", err)
	}

	metrics_system.StartSystemMetricsCollector(ctx)

	// ongoingCtx используется для BaseContext и не должен отменяться при SIGTERM.
	// Он отменяется только после server.Shutdown() для завершения in-flight запросов.
	// https://victoriametrics.com/blog/go-graceful-shutdown/#b-use-basecontext-to-provide-a-global-context-to-all-connections
	ongoingCtx, stopOngoingGracefully := context.WithCancel(context.Background())
	defer stopOngoingGracefully()

	// основной http сервер
	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: initRouter(ongoingCtx, log, &isShuttingDown, businessApp, pool, cfg.Server),
		BaseContext: func(_ net.Listener) context.Context {
			return ongoingCtx
		},

		ReadHeaderTimeout: 5 * time.Second, // Slowloris DoS gosec G112
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		defer close(serverErr)
		runLog.Info("server starting",
			logger.NewField("port", cfg.Server.Port),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()
	// основной http сервер

	// pprof http сервер
	var pprofServer *http.Server
	var pprofServerErr chan error
	if cfg.Server.PprofEnabled {
		pprofServer = &http.Server{
			Addr:    fmt.Sprintf(":%s", cfg.Server.PprofPort),
			Handler: initPprofRouter(&isShuttingDown),
			BaseContext: func(_ net.Listener) context.Context {
				return ongoingCtx
			},

			ReadHeaderTimeout: 5 * time.Second, // Slowloris DoS gosec G112
			ReadTimeout:       60 * time.Second,
			WriteTimeout:      60 * time.Second,
			IdleTimeout:       60 * time.Second,
		}

		pprofServerErr = make(chan error, 1)
		go func() {
			defer close(pprofServerErr)
			runLog.Info("pprof server starting",
				logger.NewField("port", cfg.Server.PprofPort),
			)
			if err := pprofServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				pprofServerErr <- err
			}
		}()
	}
	// pprof http сервер

	select {
	case <-ctx.Done():
		runLog.Info("Shutdown signal received")
	case err := <-serverErr:
		return fmt.Errorf("server: %w", err)
	case err := <-pprofServerErr: // if !cfg.Server.PprofEnabled будет nil по умолчанию, и данный кейс будет проигнорирован
		return fmt.Errorf("pprof server: %w", err)
	}

	stop()
	isShuttingDown.Store(true)

	time.Sleep(readinessDrainDelay)
	runLog.Info("draining requests")

	// shutdownCtx должен быть независим от ctx, который уже отменен на этом этапе.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownPeriod)
	defer cancel()

	var shutdownErr error
	err = server.Shutdown(shutdownCtx)
	if pprofServer != nil {
		shutdownErr = pprofServer.Shutdown(shutdownCtx)
		if shutdownErr != nil {
			runLog.Error("pprof server shutdown error", logger.NewField("error", shutdownErr))
		} else {
			runLog.Info("pprof server stopped")
		}
	}

	stopOngoingGracefully()
	if err != nil || shutdownErr != nil {
		runLog.Info("Graceful shutdown timeout, forcing close")
		time.Sleep(shutdownHardPeriod)
	}

	runLog.Info("Server stopped")
	return nil
}

func initRouter(
	ongoingCtx context.Context,
	log logger.Logger,
	isShuttingDown *atomic.Bool,
	app *application.Application,
	store healthcheck_head.Pinger,
	cfg config.HTTPServer,
) http.Handler {
	router := mux.NewRouter()

	router.Use(graceful_shutdown.Middleware(isShuttingDown, ongoingCtx))

	router.Use(timeout.Middleware(cfg.RequestTimeout))
	router.Use(metrics.Middleware(log))
	router.Use(rate_limiter.Middleware(log, cfg.RateLimiterQPS, token_bucket.NewKeyedLimiter(cfg.RateLimiterQPS, float64(cfg.RateLimiterBurst))))
	router.Handle("/metrics", promhttp.Handler())

	router.Handle("/healthcheck", healthcheck_head.New(isShuttingDown, store)).Methods("HEAD")
	router.Handle("/ping", ping_get.New(log)).Methods("GET")

	// всё, что ниже, требует X-Actor-Id / X-Actor-Role
	api := router.NewRoute().Subrouter()
	api.Use(actor.Middleware(log))

	api.Handle("/requests", requests_post.New(log, app.ServicePickup)).Methods("POST")
	api.Handle("/requests", requests_get.New(log, app.ServicePickup)).Methods("GET")
	api.Handle("/requests/{id}", request_get.New(log, app.ServicePickup)).Methods("GET")
	api.Handle("/requests/{id}/history", request_history_get.New(log, app.ServicePickup)).Methods("GET")
	api.Handle("/requests/{id}/status", request_status_put.New(log, app.ServicePickup)).Methods("PUT")
	api.Handle("/requests/{id}/cancel", request_cancel_put.New(log, app.ServicePickup)).Methods("PUT")
	api.Handle("/requests/{id}/complete", request_complete_put.New(log, app.ServicePickup)).Methods("PUT")

	api.Handle("/pharmacies/{id}/stats", pharmacy_stats_get.New(log, app.ServiceStats)).Methods("GET")

	return otelhttp.NewHandler(router, serviceName)
}

func initPprofRouter(isShuttingDown *atomic.Bool) http.Handler {
	router := mux.NewRouter()

	router.Handle("/healthcheck", healthcheck_head.New(isShuttingDown, nil)).Methods("HEAD")
	router.PathPrefix("/debug/pprof/").Handler(http.DefaultServeMux)

	return router
}
