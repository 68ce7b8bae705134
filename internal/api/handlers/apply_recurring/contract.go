package apply_recurring

import (
	"context"

	applyRecurring "github.com/m04kA/SMC-CalendarService/internal/usecase/apply_recurring"
)

type ApplyRecurringUseCase interface {
	Execute(ctx context.Context, req *applyRecurring.Request) (*applyRecurring.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
