package watch

import (
	"context"

	"dispatch/internal/entities"
	"dispatch/pkg/logger"
)

// LogNotifier пишет уведомления в лог.
type LogNotifier struct {
	log handlerLogger
}

func NewLogNotifier(log handlerLogger) *LogNotifier {
	return &LogNotifier{
		log: log.With(logger.NewField("component", "notifier")),
	}
}

func (n *LogNotifier) Notify(_ context.Context, kind entities.NotificationKind, count int) {
	n.log.Info("notification",
		logger.NewField("kind", kind.String()),
		logger.NewField("count", count),
	)
}

// Notifiers рассылает уведомление во все приемники по очереди.
type Notifiers []Notifier

func (n Notifiers) Notify(ctx context.Context, kind entities.NotificationKind, count int) {
	for _, notifier := range n {
		notifier.Notify(ctx, kind, count)
	}
}
