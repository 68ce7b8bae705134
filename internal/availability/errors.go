package availability

import "errors"

var (
	// ErrInvalidRange возвращается при некорректном диапазоне дат (пустые даты, слишком длинный диапазон)
	ErrInvalidRange = errors.New("availability: invalid date range")

	// ErrRangeTooLong диапазон длиннее MaxRangeDays (всегда вместе с ErrInvalidRange)
	ErrRangeTooLong = errors.New("availability: range too long")

	// ErrInvalidStatus возвращается при неизвестном статусе доступности
	ErrInvalidStatus = errors.New("availability: invalid status")

	// ErrInvalidRule возвращается при некорректном правиле повторения (RRULE)
	ErrInvalidRule = errors.New("availability: invalid recurrence rule")
)
