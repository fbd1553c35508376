package main

import (
	"context"
	"fmt"
	stdlog "log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dispatch/internal/app"
	"dispatch/internal/pkg/config"
	"dispatch/internal/pkg/dotenv"
	"dispatch/internal/pkg/grpcclient"
	"dispatch/internal/pkg/kafka"
	"dispatch/internal/pkg/middlewares/auth"
	"dispatch/pkg/background"
	"dispatch/pkg/logger"
	"dispatch/pkg/logger/zap_adapter"

	"github.com/IBM/sarama"
)

func main() {
	zapLogger, err := zap_adapter.NewZapAdapter(
		zap_adapter.WithLevel(os.Getenv("LOG_LEVEL")),
		zap_adapter.WithService("dispatch-watcher"),
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

	mainLog.Info("starting order watcher")

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

	cfg, err := config.LoadWatcher()
	if err != nil {
		mainLog.Error("load config", logger.NewField("error", err))
		return
	}

	err = run(context.Background(), appLogger, cfg)
	if err != nil {
		mainLog.Error("application failed", logger.NewField("error", err))
		return
	}
}

func run(ctx context.Context, log logger.Logger, cfg *config.Config) error {
	const drainPeriod = 10 * time.Second

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	actor, err := auth.ActorFromToken(cfg.Watcher.Token)
	if err != nil {
		return fmt.Errorf("watcher token: %w", err)
	}

	runLog := log.With(
		logger.NewField("actor", actor.ID),
		logger.NewField("role", actor.Role.String()),
	)

	// опрос начинается только после того, как API ответит SERVING
	conn, err := grpcclient.NewConnClient(ctx, log, cfg.Watcher.APIGRPCHost)
	if err != nil {
		return fmt.Errorf("gRPC client: %w", err)
	}
	defer func() {
		if err := conn.Close(); err != nil {
			runLog.Error("failed to close gRPC connection", logger.NewField("error", err))
		}
	}()

	var producer sarama.SyncProducer
	if cfg.Kafka.NotificationsTopic != "" {
		producer, err = kafka.NewSyncProducer(ctx, log, &cfg.Kafka)
		if err != nil {
			return fmt.Errorf("kafka producer: %w", err)
		}
		defer func() {
			if err := producer.Close(); err != nil {
				runLog.Error("failed to close kafka producer", logger.NewField("error", err))
			}
		}()
	}

	client := &http.Client{Timeout: cfg.Watcher.RequestTimeout}

	watcherApp, err := app.InitializeWatcherApp(ctx, log, client, producer, actor, cfg)
	if err != nil {
		return fmt.Errorf("watcher: %w", err)
	}

	worker, err := background.New(ctx, log, []background.Task{watcherApp.Poller})
	if err != nil {
		return fmt.Errorf("background workers: %w", err)
	}

	runLog.Info("watching orders",
		logger.NewField("interval", cfg.Watcher.Interval.String()),
		logger.NewField("group", cfg.Watcher.Group),
	)

	<-ctx.Done()

	// producer закрывается defer-ом, опрос не должен остаться посреди отправки
	drainCtx, cancel := context.WithTimeout(context.Background(), drainPeriod)
	defer cancel()
	if err := worker.Wait(drainCtx); err != nil {
		runLog.Warn("in-flight poll did not finish", logger.NewField("error", err))
	}

	runLog.Info("Watcher stopped")
	return nil
}
