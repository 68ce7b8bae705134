package export

import "errors"

var (
	// ErrGenerate возвращается, если файл экспорта не удалось сформировать
	ErrGenerate = errors.New("export: failed to generate file")
)
