package get_calendar

import (
	"context"

	"github.com/m04kA/SMC-CalendarService/internal/service/calendars/models"
)

type CalendarService interface {
	Get(ctx context.Context, slug string) (*models.CalendarResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
