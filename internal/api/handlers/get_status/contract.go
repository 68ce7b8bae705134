package get_status

import (
	"context"

	"github.com/m04kA/SMC-CalendarService/internal/availability"
	"github.com/m04kA/SMC-CalendarService/pkg/types"
)

type AvailabilityService interface {
	StatusForDate(ctx context.Context, slug string, date types.Date) (availability.Status, bool, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
