package get_month

import (
	"context"
	"net/http"
	"time"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
)

type AvailabilityService interface {
	MonthView(ctx context.Context, slug string, year int, month time.Month, admin bool) (*domain.MonthView, error)
}

// AdminChecker определяет, пришел ли запрос от администратора
type AdminChecker interface {
	IsAdmin(r *http.Request) bool
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
