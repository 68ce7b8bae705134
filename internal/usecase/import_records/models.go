package import_records

import (
	"github.com/m04kA/SMC-CalendarService/internal/availability"
)

// Request модель запроса на импорт
type Request struct {
	Slug    string                // Календарь
	Records []availability.Record // Записи в порядке файла
	Replace bool                  // true - текущий набор отбрасывается перед импортом
}

// Response модель ответа
type Response struct {
	CalendarSlug   string
	Applied        int                       // Сколько записей применено
	Skipped        []availability.Diagnostic // Записи файла, которые не удалось применить
	Availabilities availability.Set          // Итоговый набор
	Diagnostics    []availability.Diagnostic // Аномалии в ранее сохраненных данных
}
