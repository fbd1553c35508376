//go:build wireinject
// +build wireinject

package app

import (
	"context"
	"net/http"

	"dispatch/internal/entities"
	"dispatch/internal/pkg/config"
	"dispatch/pkg/logger"

	"github.com/IBM/sarama"
	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/wire"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

var storageSet = wire.NewSet(
	provideTxManager,
	provideQuerier,

	provideOrderRepository,
	provideCourierRepository,
	provideIncidentRepository,
	provideEvidenceRepository,
	provideOrderEventRepository,
)

// InitializeApplication для HTTP сервиса (cmd/service)
func InitializeApplication(
	ctx context.Context,
	log logger.Logger,
	pool *pgxpool.Pool,
	getter *pgxv5.CtxGetter,
	redisClient *redis.Client,
	s3Client *s3.Client,
	producer sarama.SyncProducer,
	cfg *config.Config,
) (*Application, error) {
	wire.Build(
		storageSet,

		provideIdempotencyStore,
		provideAttachmentGateway,
		provideEventPublisher,
		provideSweepNotifier,

		provideOrderService,
		provideAssignmentService,
		provideEvidenceService,
		provideIncidentService,
		provideCourierService,
		provideHistoryService,

		provideAtRiskSweep,

		wire.Struct(new(Application), "*"),
	)
	return &Application{}, nil
}

// InitializeKafkaWorkerApp для Kafka воркера (cmd/worker-order-status-changed)
func InitializeKafkaWorkerApp(
	ctx context.Context,
	log logger.Logger,
	pool *pgxpool.Pool,
	getter *pgxv5.CtxGetter,
	cfg *config.Config,
) (*KafkaWorkerApp, error) {
	wire.Build(
		storageSet,

		provideHistoryService,

		wire.Struct(new(KafkaWorkerApp), "*"),
	)
	return nil, nil
}

// InitializeWatcherApp для клиента уведомлений (cmd/watcher)
func InitializeWatcherApp(
	ctx context.Context,
	log logger.Logger,
	client *http.Client,
	producer sarama.SyncProducer,
	actor entities.Actor,
	cfg *config.Config,
) (*WatcherApp, error) {
	wire.Build(
		provideRestOrderGateway,
		provideDetector,
		provideWatchNotifier,
		providePoller,

		wire.Struct(new(WatcherApp), "*"),
	)
	return nil, nil
}
