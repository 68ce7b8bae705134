package apply_range

import (
	"context"

	applyRange "github.com/m04kA/SMC-CalendarService/internal/usecase/apply_range"
)

type ApplyRangeUseCase interface {
	Execute(ctx context.Context, req *applyRange.Request) (*applyRange.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
