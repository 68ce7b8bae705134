package export_xlsx

import (
	"context"

	"github.com/m04kA/SMC-CalendarService/internal/availability"
	"github.com/m04kA/SMC-CalendarService/internal/domain"
)

type AvailabilityService interface {
	Snapshot(ctx context.Context, slug string) (*domain.Calendar, availability.Set, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
