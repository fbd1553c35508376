package watch

import (
	"context"
	"fmt"
	"sync"
	"time"

	"dispatch/internal/entities"
	"dispatch/pkg/logger"
)

const DefaultInterval = 30 * time.Second

// Poller периодически забирает заказы актора и передает снимок в Detector.
// Выполняется как background.Task.
type Poller struct {
	source   OrderSource
	detector *Detector
	notifier Notifier
	kind     entities.NotificationKind
	interval time.Duration
	log      handlerLogger

	mu         sync.Mutex
	filter     entities.OrderFilter
	generation uint64
}

func NewPoller(
	source OrderSource,
	detector *Detector,
	notifier Notifier,
	actor entities.Actor,
	interval time.Duration,
	log handlerLogger,
) *Poller {
	kind := entities.NotifyNewOrder
	if actor.Is(entities.RoleCourier) {
		kind = entities.NotifyNewAssignment
	}

	return &Poller{
		source:   source,
		detector: detector,
		notifier: notifier,
		kind:     kind,
		interval: interval,
		log: log.With(
			logger.NewField("component", "order-watcher"),
			logger.NewField("actor", actor.ID),
		),
	}
}

// TTL возвращает интервал между выполнениями задачи.
func (p *Poller) TTL() time.Duration {
	return p.interval
}

// Do один цикл опроса. Ответ устаревшего цикла отбрасывается.
func (p *Poller) Do(ctx context.Context) error {
	p.mu.Lock()
	generation := p.generation
	filter := p.filter
	p.mu.Unlock()

	ids, err := p.source.ListOrderIDs(ctx, filter)
	if err != nil {
		return fmt.Errorf("poll orders: %w", err)
	}

	p.mu.Lock()
	if generation != p.generation {
		p.mu.Unlock()
		p.log.Info("discarding stale poll result",
			logger.NewField("generation", generation),
		)
		return nil
	}
	added := p.detector.Observe(ids)
	p.mu.Unlock()

	if added > 0 {
		notificationsTotal.WithLabelValues(p.kind.String()).Inc()
		p.notifier.Notify(ctx, p.kind, added)
	}
	return nil
}

// Info возвращает читаемое описание задачи для логгирования и отладки.
func (p *Poller) Info() string {
	return "order watcher"
}

// SetFilter меняет отслеживаемую выборку. Следующий снимок только запоминается,
// уведомления приглушаются на окно подавления.
func (p *Poller) SetFilter(filter entities.OrderFilter) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.filter = filter
	p.generation++
	p.detector.Reset()
	p.detector.Suppress()
}
