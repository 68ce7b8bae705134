package scheduler

import (
	"context"

	"github.com/m04kA/SMC-CalendarService/internal/usecase/prune_history"
)

// PruneUseCase интерфейс очистки истории
type PruneUseCase interface {
	ExecuteAll(ctx context.Context) ([]*prune_history.Result, error)
}

// Metrics интерфейс метрик планировщика
type Metrics interface {
	IncSchedulerJob(job string, err error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}
