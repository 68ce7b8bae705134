package apply_range

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	// Ошибки движка (availability.ErrInvalidRange, availability.ErrInvalidStatus) оборачиваются вместе с ним.
	ErrInvalidInput = errors.New("apply_range: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("apply_range: internal error")
)
