package availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CalendarService/internal/availability"
	"github.com/m04kA/SMC-CalendarService/internal/domain"
)

// CalendarRepository интерфейс репозитория календарей
type CalendarRepository interface {
	GetBySlug(ctx context.Context, slug string) (*domain.Calendar, error)
}

// AvailabilityRepository интерфейс репозитория интервалов
type AvailabilityRepository interface {
	Load(ctx context.Context, calendarID int64) ([]availability.Record, error)
}

// Cache интерфейс кеша наборов доступности
type Cache interface {
	Get(ctx context.Context, slug string) (availability.Set, bool)
	// SetIfAbsent не перезаписывает набор, уже сохраненный писателем
	SetIfAbsent(ctx context.Context, slug string, set availability.Set)
}

// Metrics интерфейс доменных метрик
type Metrics interface {
	IncDiagnostic(reason string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
