// Package scheduler запускает периодические задачи обслуживания календарей
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

const (
	JobPruneHistory = "prune-history"

	jobTimeout = 5 * time.Minute
)

// Scheduler обертка над cron с задачами сервиса
type Scheduler struct {
	cron    *cron.Cron
	prune   PruneUseCase
	metrics Metrics
	logger  Logger
}

// New создает планировщик и регистрирует задачу очистки истории
// Расписание в стандартном формате cron из пяти полей, время - в часовом поясе loc.
func New(pruneCron string, loc *time.Location, prune PruneUseCase, metrics Metrics, logger Logger) (*Scheduler, error) {
	if loc == nil {
		loc = time.UTC
	}

	cronLogger := &cronLogger{logger: logger}
	s := &Scheduler{
		cron: cron.New(
			cron.WithLocation(loc),
			cron.WithLogger(cronLogger),
			cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
		),
		prune:   prune,
		metrics: metrics,
		logger:  logger,
	}

	if _, err := s.cron.AddFunc(pruneCron, s.runPrune); err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidSchedule, pruneCron, err)
	}

	return s, nil
}

// Start запускает планировщик в фоне
func (s *Scheduler) Start() {
	s.cron.Start()
	for _, entry := range s.cron.Entries() {
		s.logger.Info("Scheduler: next run at %s", entry.Next.Format(time.RFC3339))
	}
}

// Stop останавливает планировщик и ждет завершения запущенных задач (или отмены ctx)
func (s *Scheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Scheduler) runPrune() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	start := time.Now()
	results, err := s.prune.ExecuteAll(ctx)

	removed := 0
	for _, r := range results {
		removed += r.Removed
	}

	if s.metrics != nil {
		s.metrics.IncSchedulerJob(JobPruneHistory, err)
	}
	if err != nil {
		s.logger.Error("Scheduler: job %s failed after %s: %v", JobPruneHistory, time.Since(start), err)
		return
	}
	s.logger.Info("Scheduler: job %s done in %s, calendars=%d, removed=%d",
		JobPruneHistory, time.Since(start), len(results), removed)
}

// cronLogger адаптер логгера сервиса к cron.Logger
type cronLogger struct {
	logger Logger
}

func (l *cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Info("cron: %s %v", msg, keysAndValues)
}

func (l *cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error("cron: %s: %v %v", msg, err, keysAndValues)
}
