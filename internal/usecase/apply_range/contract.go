package apply_range

import (
	"context"

	"github.com/m04kA/SMC-CalendarService/internal/availability"
	"github.com/m04kA/SMC-CalendarService/internal/domain"
)

// CalendarRepository интерфейс репозитория календарей
type CalendarRepository interface {
	// EnsureBySlug блокирует строку календаря (создавая ее при необходимости) до конца транзакции
	EnsureBySlug(ctx context.Context, slug string) (*domain.Calendar, error)
}

// AvailabilityRepository интерфейс репозитория интервалов
type AvailabilityRepository interface {
	Load(ctx context.Context, calendarID int64) ([]availability.Record, error)
	Replace(ctx context.Context, calendarID int64, set availability.Set) error
}

// Cache интерфейс кеша наборов доступности
type Cache interface {
	// Store сохраняет зафиксированный набор поверх закешированного
	Store(ctx context.Context, slug string, set availability.Set)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics интерфейс доменных метрик
type Metrics interface {
	IncRangeApplied(source, status string)
	IncDiagnostic(reason string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
