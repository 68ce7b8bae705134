package get_availability

import (
	"context"

	"github.com/m04kA/SMC-CalendarService/internal/availability"
)

type AvailabilityService interface {
	GetSet(ctx context.Context, slug string) (availability.Set, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
