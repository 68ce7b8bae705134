package scheduler

import "errors"

var (
	// ErrInvalidSchedule возвращается при некорректном выражении cron
	ErrInvalidSchedule = errors.New("scheduler: invalid cron expression")
)
