package main

import (
	"context"
	"errors"
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

	application "dispatch/internal/app"
	"dispatch/internal/gateway/s3/attachment"
	"dispatch/internal/handlers/rest/courier_evidence_get"
	"dispatch/internal/handlers/rest/courier_get"
	"dispatch/internal/handlers/rest/courier_presence_put"
	"dispatch/internal/handlers/rest/couriers_get"
	"dispatch/internal/handlers/rest/healthcheck_head"
	"dispatch/internal/handlers/rest/incident_resolve_post"
	"dispatch/internal/handlers/rest/incidents_get"
	"dispatch/internal/handlers/rest/order_assign_post"
	"dispatch/internal/handlers/rest/order_candidates_get"
	"dispatch/internal/handlers/rest/order_delete"
	"dispatch/internal/handlers/rest/order_events_get"
	"dispatch/internal/handlers/rest/order_evidence_get"
	"dispatch/internal/handlers/rest/order_evidence_post"
	"dispatch/internal/handlers/rest/order_get"
	"dispatch/internal/handlers/rest/order_incidents_post"
	"dispatch/internal/handlers/rest/order_status_post"
	"dispatch/internal/handlers/rest/order_transfer_post"
	"dispatch/internal/handlers/rest/orders_get"
	"dispatch/internal/handlers/rest/orders_post"
	"dispatch/internal/handlers/rest/ping_get"
	"dispatch/internal/handlers/rest/stats_get"
	"dispatch/internal/pkg/config"
	"dispatch/internal/pkg/dotenv"
	"dispatch/internal/pkg/grpcserver"
	"dispatch/internal/pkg/kafka"
	metrics_system "dispatch/internal/pkg/metrics"
	"dispatch/internal/pkg/middlewares/auth"
	"dispatch/internal/pkg/middlewares/graceful_shutdown"
	"dispatch/internal/pkg/middlewares/metrics"
	"dispatch/internal/pkg/middlewares/rate_limiter"
	"dispatch/internal/pkg/middlewares/timeout"
	"dispatch/internal/pkg/migrations"
	"dispatch/internal/pkg/postgres"
	"dispatch/internal/pkg/redis"
	"dispatch/internal/pkg/scheduler"
	"dispatch/pkg/logger"
	"dispatch/pkg/logger/zap_adapter"
	"dispatch/pkg/token_bucket"

	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	zapLogger, err := zap_adapter.NewZapAdapter(
		zap_adapter.WithLevel(os.Getenv("LOG_LEVEL")),
		zap_adapter.WithService("dispatch-api"),
	)
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

	mainLog.Info("starting dispatch service")

	loaded, err := dotenv.Load()
	if err != nil {
		mainLog.Error("failed to load .env file", logger.NewField("error", err))
		return
	}
	if len(loaded) == 0 {
		mainLog.Warn("No .env file found, using system environment variables")
	}
	if err := dotenv.ApplyFlags(os.Args[1:]); err != nil {
		mainLog.Error("invalid command line flags", logger.NewField("error", err))
		return
	}

	cfg, err := config.LoadService()
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
		retryAfter          = 5 * time.Second
		sweepTimeout        = 30 * time.Second
	)

	// https://victoriametrics.com/blog/go-graceful-shutdown/#b-use-basecontext-to-provide-a-global-context-to-all-connections
	var isShuttingDown atomic.Bool

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	runLog := log.With()

	pool, err := postgres.NewConnPool(ctx, log, &cfg.Database)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	defer pool.Close()

	if err := migrations.Up(ctx, log, pool); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}

	redisClient, err := redis.NewClient(ctx, log, &cfg.Redis)
	if err != nil {
		return fmt.Errorf("redis: %w", err)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			runLog.Error("failed to close redis connection", logger.NewField("error", err))
		}
	}()

	s3Client, err := attachment.NewClient(ctx, &cfg.Storage)
	if err != nil {
		return fmt.Errorf("s3 client: %w", err)
	}

	producer, err := kafka.NewSyncProducer(ctx, log, &cfg.Kafka)
	if err != nil {
		return fmt.Errorf("kafka producer: %w", err)
	}
	defer func() {
		if err := producer.Close(); err != nil {
			runLog.Error("failed to close kafka producer", logger.NewField("error", err))
		}
	}()

	businessApp, err := application.InitializeApplication(ctx, log, pool, pgxv5.DefaultCtxGetter, redisClient, s3Client, producer, cfg)
	if err != nil {
		return fmt.Errorf("business logic: %w", err)
	}

	metrics_system.StartSystemMetricsCollector(ctx, metrics_system.DefaultCollectInterval)

	sweeps := scheduler.New(log)
	err = sweeps.Add(ctx, cfg.Tasks.AtRiskSweepSchedule, sweepTimeout, businessApp.AtRiskSweep)
	if err != nil {
		return fmt.Errorf("scheduler: %w", err)
	}
	sweeps.Start()

	// ongoingCtx используется для BaseContext и не должен отменяться при SIGTERM.
	// Он отменяется только после server.Shutdown() для завершения in-flight запросов.
	// https://victoriametrics.com/blog/go-graceful-shutdown/#b-use-basecontext-to-provide-a-global-context-to-all-connections
	ongoingCtx, stopOngoingGracefully := context.WithCancel(context.Background())
	defer stopOngoingGracefully()

	dependencies := map[string]healthcheck_head.Pinger{
		"postgres": businessApp.Storage,
		"redis": healthcheck_head.PingFunc(func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		}),
	}

	// основной http сервер
	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: initRouter(ongoingCtx, log, &isShuttingDown, businessApp, dependencies, cfg, retryAfter),
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
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()
	// основной http сервер

	// grpc health сервер, по нему watcher ждет готовности API
	grpcServer := grpcserver.New(log)
	grpcListener, err := net.Listen("tcp", fmt.Sprintf(":%s", cfg.Server.GRPCPort))
	if err != nil {
		return fmt.Errorf("grpc listen: %w", err)
	}

	grpcServerErr := make(chan error, 1)
	go func() {
		defer close(grpcServerErr)
		if err := grpcServer.Serve(grpcListener); err != nil {
			grpcServerErr <- err
		}
	}()
	grpcServer.SetServing()
	// grpc health сервер

	// pprof http сервер
	var pprofServer *http.Server
	var pprofServerErr chan error
	if cfg.Server.PprofEnabled {
		pprofServer = &http.Server{
			Addr:    fmt.Sprintf(":%s", cfg.Server.PprofPort),
			Handler: initPprofRouter(log, &isShuttingDown),
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
			if err := pprofServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
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
	case err := <-grpcServerErr:
		return fmt.Errorf("grpc server: %w", err)
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

	sweeps.Stop(shutdownCtx)
	grpcServer.Shutdown()

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
	dependencies map[string]healthcheck_head.Pinger,
	cfg *config.Config,
	retryAfter time.Duration,
) http.Handler {
	router := mux.NewRouter()

	router.Use(graceful_shutdown.Middleware(isShuttingDown, ongoingCtx, retryAfter))

	router.Use(timeout.Middleware(cfg.Server.RequestTimeout))
	router.Use(metrics.Middleware(log))
	router.Use(rate_limiter.Middleware(
		log,
		cfg.Server.RateLimiterQPS,
		token_bucket.NewBuckets(cfg.Server.RateLimiterQPS, float64(cfg.Server.RateLimiterBurst)),
		"/ping", "/healthcheck", "/metrics",
	))
	router.Handle("/metrics", promhttp.Handler())

	router.Handle("/healthcheck", healthcheck_head.New(log, isShuttingDown, dependencies)).Methods("HEAD")
	router.Handle("/ping", ping_get.New(log, time.Now)).Methods("GET")

	api := router.NewRoute().Subrouter()
	api.Use(auth.Middleware(log, auth.NewVerifier(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer)))

	api.Handle("/orders", orders_post.New(log, app.Orders)).Methods("POST")
	api.Handle("/orders", orders_get.New(log, app.Orders)).Methods("GET")
	api.Handle("/orders/{id}", order_get.New(log, app.Orders)).Methods("GET")
	api.Handle("/orders/{id}", order_delete.New(log, app.Orders)).Methods("DELETE")
	api.Handle("/orders/{id}/status", order_status_post.New(log, app.Orders)).Methods("POST")

	api.Handle("/orders/{id}/assign", order_assign_post.New(log, app.Assignment)).Methods("POST")
	api.Handle("/orders/{id}/transfer", order_transfer_post.New(log, app.Assignment)).Methods("POST")
	api.Handle("/orders/{id}/candidates", order_candidates_get.New(log, app.Assignment)).Methods("GET")

	api.Handle("/orders/{id}/evidence", order_evidence_post.New(log, app.Evidence)).Methods("POST")
	api.Handle("/orders/{id}/evidence", order_evidence_get.New(log, app.Evidence)).Methods("GET")
	api.Handle("/orders/{id}/events", order_events_get.New(log, app.History)).Methods("GET")

	api.Handle("/orders/{id}/incidents", order_incidents_post.New(log, app.Incidents)).Methods("POST")
	api.Handle("/incidents", incidents_get.New(log, app.Incidents)).Methods("GET")
	api.Handle("/incidents/{id}/resolve", incident_resolve_post.New(log, app.Incidents)).Methods("POST")

	api.Handle("/couriers", couriers_get.New(log, app.Couriers)).Methods("GET")
	api.Handle("/couriers/me/presence", courier_presence_put.New(log, app.Couriers)).Methods("PUT")
	api.Handle("/couriers/{id}", courier_get.New(log, app.Couriers)).Methods("GET")
	api.Handle("/couriers/{id}/evidence", courier_evidence_get.New(log, app.Evidence)).Methods("GET")

	api.Handle("/stats", stats_get.New(log, app.Orders)).Methods("GET")

	return router
}

func initPprofRouter(log logger.Logger, isShuttingDown *atomic.Bool) http.Handler {
	router := mux.NewRouter()

	router.Handle("/healthcheck", healthcheck_head.New(log, isShuttingDown, nil)).Methods("HEAD")
	router.PathPrefix("/debug/pprof/").Handler(http.DefaultServeMux)

	return router
}
