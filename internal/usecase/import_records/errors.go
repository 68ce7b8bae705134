package import_records

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("import_records: invalid input data")

	// ErrUnsupportedFormat возвращается, если файл не удалось разобрать
	ErrUnsupportedFormat = errors.New("import_records: unsupported file format")

	// ErrTooManyRecords возвращается при превышении лимита записей в одном файле
	ErrTooManyRecords = errors.New("import_records: too many records")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("import_records: internal error")
)
