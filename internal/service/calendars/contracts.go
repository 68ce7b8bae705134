package calendars

import (
	"context"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
)

// CalendarRepository интерфейс репозитория календарей
type CalendarRepository interface {
	Create(ctx context.Context, cal *domain.Calendar) (*domain.Calendar, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Calendar, error)
	Update(ctx context.Context, cal *domain.Calendar) (*domain.Calendar, error)
	List(ctx context.Context) ([]*domain.Calendar, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
