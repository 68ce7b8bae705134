package availability

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных (slug, дата, месяц)
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
