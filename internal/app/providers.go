package app

import (
	"net/http"

	"dispatch/internal/entities"
	"dispatch/internal/gateway/kafka/publisher"
	restOrderGateway "dispatch/internal/gateway/rest/order"
	"dispatch/internal/gateway/s3/attachment"
	"dispatch/internal/handlers/tasks/at_risk_sweep"
	"dispatch/internal/pkg/config"
	courierRepo "dispatch/internal/repository/courier"
	evidenceRepo "dispatch/internal/repository/evidence"
	"dispatch/internal/repository/idempotency"
	incidentRepo "dispatch/internal/repository/incident"
	orderRepo "dispatch/internal/repository/order"
	orderEventRepo "dispatch/internal/repository/order_event"
	assignmentService "dispatch/internal/service/assignment"
	courierService "dispatch/internal/service/courier"
	evidenceService "dispatch/internal/service/evidence"
	historyService "dispatch/internal/service/history"
	incidentService "dispatch/internal/service/incident"
	orderService "dispatch/internal/service/order"
	"dispatch/internal/watch"
	"dispatch/pkg/logger"
	"dispatch/pkg/querier"
	"dispatch/pkg/tx"

	"github.com/IBM/sarama"
	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// audienceDispatchers ключ сообщений об заказах под угрозой в топике уведомлений.
const audienceDispatchers = "dispatchers"

func provideTxManager(pool *pgxpool.Pool) *tx.Manager {
	return tx.New(pool)
}

func provideQuerier(pool *pgxpool.Pool, getter *pgxv5.CtxGetter) *querier.Querier {
	return querier.New(pool, getter)
}

func provideOrderRepository(querier *querier.Querier) *orderRepo.Repository {
	return orderRepo.New(querier)
}

func provideCourierRepository(querier *querier.Querier) *courierRepo.Repository {
	return courierRepo.New(querier)
}

func provideIncidentRepository(querier *querier.Querier) *incidentRepo.Repository {
	return incidentRepo.New(querier)
}

func provideEvidenceRepository(querier *querier.Querier) *evidenceRepo.Repository {
	return evidenceRepo.New(querier)
}

func provideOrderEventRepository(querier *querier.Querier) *orderEventRepo.Repository {
	return orderEventRepo.New(querier)
}

func provideIdempotencyStore(client *redis.Client, cfg *config.Config) *idempotency.Store {
	return idempotency.New(client, cfg.Redis.IdempotencyTTL)
}

func provideAttachmentGateway(client *s3.Client, cfg *config.Config) *attachment.Gateway {
	return attachment.New(client, cfg.Storage.Bucket, attachment.PublicURL(&cfg.Storage))
}

func provideEventPublisher(producer sarama.SyncProducer, cfg *config.Config, log logger.Logger) *publisher.EventPublisher {
	return publisher.NewEventPublisher(producer, cfg.Kafka.Topic, log)
}

// provideSweepNotifier без топика уведомлений сообщения об угрозе пишутся только в лог.
func provideSweepNotifier(producer sarama.SyncProducer, cfg *config.Config, log logger.Logger) at_risk_sweep.Notifier {
	logNotifier := watch.NewLogNotifier(log)
	if cfg.Kafka.NotificationsTopic == "" {
		return logNotifier
	}
	return watch.Notifiers{
		logNotifier,
		publisher.NewNotificationSink(producer, cfg.Kafka.NotificationsTopic, audienceDispatchers, log),
	}
}

func provideOrderService(
	repository *orderRepo.Repository,
	incidents *incidentRepo.Repository,
	couriers *courierRepo.Repository,
	evidence *evidenceRepo.Repository,
	idempotencyStore *idempotency.Store,
	eventPublisher *publisher.EventPublisher,
	txManager *tx.Manager,
	log logger.Logger,
) *orderService.Service {
	return orderService.New(repository, incidents, couriers, evidence, idempotencyStore, eventPublisher, txManager, log)
}

func provideAssignmentService(
	orders *orderRepo.Repository,
	couriers *courierRepo.Repository,
	incidents *incidentRepo.Repository,
	eventPublisher *publisher.EventPublisher,
	txManager *tx.Manager,
	log logger.Logger,
) *assignmentService.Service {
	return assignmentService.New(orders, couriers, incidents, eventPublisher, txManager, log)
}

func provideEvidenceService(
	repository *evidenceRepo.Repository,
	orders *orderRepo.Repository,
	incidents *incidentRepo.Repository,
	attachments *attachment.Gateway,
	eventPublisher *publisher.EventPublisher,
	txManager *tx.Manager,
	log logger.Logger,
) *evidenceService.Service {
	return evidenceService.New(repository, orders, incidents, attachments, eventPublisher, txManager, log)
}

func provideIncidentService(
	repository *incidentRepo.Repository,
	orders *orderRepo.Repository,
	reassigner *assignmentService.Service,
	attachments *attachment.Gateway,
	eventPublisher *publisher.EventPublisher,
	txManager *tx.Manager,
	log logger.Logger,
) *incidentService.Service {
	return incidentService.New(repository, orders, reassigner, attachments, eventPublisher, txManager, log)
}

func provideCourierService(repository *courierRepo.Repository) *courierService.Courier {
	return courierService.New(repository)
}

func provideHistoryService(repository *orderEventRepo.Repository, orders *orderRepo.Repository) *historyService.Service {
	return historyService.New(repository, orders)
}

func provideAtRiskSweep(log logger.Logger, orders *orderService.Service, notifier at_risk_sweep.Notifier) *at_risk_sweep.AtRiskSweep {
	return at_risk_sweep.New(log, orders, notifier)
}

func provideRestOrderGateway(client *http.Client, cfg *config.Config) *restOrderGateway.OrderGateway {
	return restOrderGateway.New(client, cfg.Watcher.APIBaseURL, cfg.Watcher.Token)
}

func provideDetector(cfg *config.Config) *watch.Detector {
	return watch.NewDetector(
		watch.WithCooldown(cfg.Watcher.Cooldown),
		watch.WithSuppressWindow(cfg.Watcher.SuppressWindow),
	)
}

// provideWatchNotifier producer равен nil, когда топик уведомлений не задан.
func provideWatchNotifier(producer sarama.SyncProducer, actor entities.Actor, cfg *config.Config, log logger.Logger) watch.Notifier {
	logNotifier := watch.NewLogNotifier(log)
	if producer == nil || cfg.Kafka.NotificationsTopic == "" {
		return logNotifier
	}
	return watch.Notifiers{
		logNotifier,
		publisher.NewNotificationSink(producer, cfg.Kafka.NotificationsTopic, actor.ID, log),
	}
}

func providePoller(
	source *restOrderGateway.OrderGateway,
	detector *watch.Detector,
	notifier watch.Notifier,
	actor entities.Actor,
	cfg *config.Config,
	log logger.Logger,
) *watch.Poller {
	poller := watch.NewPoller(source, detector, notifier, actor, cfg.Watcher.Interval, log)
	if cfg.Watcher.Group != "" {
		poller.SetFilter(entities.OrderFilter{Group: entities.StatusGroup(cfg.Watcher.Group)})
	}
	return poller
}
