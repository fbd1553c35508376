package scheduler

import (
	"context"
	"fmt"
	"time"

	"dispatch/pkg/logger"

	"github.com/robfig/cron/v3"
)

// Scheduler запускает Job по cron расписанию. Повторный запуск пропускается,
// пока предыдущий не завершился, паника внутри задачи не роняет процесс.
type Scheduler struct {
	cron *cron.Cron
	log  handlerLogger
}

func New(log handlerLogger) *Scheduler {
	schedulerLog := log.With(logger.NewField("component", "scheduler"))
	cronLog := cronLogger{log: schedulerLog}

	return &Scheduler{
		cron: cron.New(cron.WithChain(
			cron.Recover(cronLog),
			cron.SkipIfStillRunning(cronLog),
		)),
		log: schedulerLog,
	}
}

// Add регистрирует задачу. timeout ограничивает один запуск, 0 без ограничения.
func (s *Scheduler) Add(ctx context.Context, spec string, timeout time.Duration, job Job) error {
	jobLog := s.log.With(
		logger.NewField("job", job.Info()),
		logger.NewField("schedule", spec),
	)

	_, err := s.cron.AddFunc(spec, func() {
		if ctx.Err() != nil {
			return
		}

		runCtx := ctx
		if timeout > 0 {
			var cancel context.CancelFunc
			runCtx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}

		if err := job.Do(runCtx); err != nil {
			jobLog.With(
				logger.NewField("error", err),
			).Error("scheduled job failed")
		}
	})
	if err != nil {
		return fmt.Errorf("schedule %q: %w", job.Info(), err)
	}

	jobLog.Info("job scheduled")
	return nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop ждет завершения запущенных задач, но не дольше ctx.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		s.log.Info("scheduler stopped")
	case <-ctx.Done():
		s.log.Warn("scheduler stop timed out")
	}
}

// cronLogger пробрасывает внутренние сообщения cron в наш логгер.
type cronLogger struct {
	log handlerLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Info("cron: "+msg, toFields(keysAndValues)...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	fields := append(toFields(keysAndValues), logger.NewField("error", err))
	l.log.Error("cron: "+msg, fields...)
}

func toFields(keysAndValues []interface{}) []logger.Field {
	fields := make([]logger.Field, 0, len(keysAndValues)/2)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			key = fmt.Sprint(keysAndValues[i])
		}
		fields = append(fields, logger.NewField(key, keysAndValues[i+1]))
	}
	return fields
}
