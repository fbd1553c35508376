package publisher

import (
	"context"
	"encoding/json"
	"time"

	"dispatch/internal/entities"
	"dispatch/pkg/logger"

	"github.com/IBM/sarama"
)

// EventPublisher отправляет факты смены статуса после коммита.
// Ошибки только логируются: история догоняется не за счет бизнес-операции.
type EventPublisher struct {
	producer producer
	topic    string
	log      handlerLogger
}

func NewEventPublisher(producer producer, topic string, log handlerLogger) *EventPublisher {
	return &EventPublisher{
		producer: producer,
		topic:    topic,
		log: log.With(
			logger.NewField("component", "order-event-publisher"),
			logger.NewField("topic", topic),
		),
	}
}

// Publish не смотрит на ctx: статус уже закоммичен, событие уходит и при отмененном запросе.
func (p *EventPublisher) Publish(_ context.Context, event entities.OrderEvent) {
	payload, err := json.Marshal(fromOrderEvent(event))
	if err != nil {
		p.log.Warn("order event marshal failed",
			logger.NewField("order", event.OrderID),
			logger.NewField("error", err),
		)
		return
	}

	// ключ по заказу: события одного заказа идут по порядку в одной партиции
	partition, offset, err := p.producer.SendMessage(&sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(event.OrderID),
		Value: sarama.ByteEncoder(payload),
	})
	if err != nil {
		p.log.Warn("order event publish failed",
			logger.NewField("order", event.OrderID),
			logger.NewField("to_status", event.ToStatus.String()),
			logger.NewField("error", err),
		)
		return
	}

	p.log.Info("order event published",
		logger.NewField("order", event.OrderID),
		logger.NewField("to_status", event.ToStatus.String()),
		logger.NewField("partition", partition),
		logger.NewField("offset", offset),
	)
}

// NotificationSink приемник уведомлений watcher'а и sweep'а в Kafka.
type NotificationSink struct {
	producer producer
	topic    string
	audience string
	now      func() time.Time
	log      handlerLogger
}

// NewNotificationSink audience попадает в ключ сообщения, обычно id актора или "dispatch".
func NewNotificationSink(producer producer, topic string, audience string, log handlerLogger) *NotificationSink {
	return &NotificationSink{
		producer: producer,
		topic:    topic,
		audience: audience,
		now:      time.Now,
		log: log.With(
			logger.NewField("component", "notification-sink"),
			logger.NewField("topic", topic),
		),
	}
}

func (s *NotificationSink) Notify(_ context.Context, kind entities.NotificationKind, count int) {
	payload, err := json.Marshal(notificationMessage{
		Kind:     kind.String(),
		Count:    count,
		Audience: s.audience,
		SentAt:   s.now().UTC(),
	})
	if err != nil {
		s.log.Warn("notification marshal failed", logger.NewField("error", err))
		return
	}

	msg := &sarama.ProducerMessage{
		Topic: s.topic,
		Value: sarama.ByteEncoder(payload),
	}
	if s.audience != "" {
		msg.Key = sarama.StringEncoder(s.audience)
	}

	if _, _, err := s.producer.SendMessage(msg); err != nil {
		s.log.Warn("notification publish failed",
			logger.NewField("kind", kind.String()),
			logger.NewField("error", err),
		)
	}
}
