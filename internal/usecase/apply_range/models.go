package apply_range

import (
	"github.com/m04kA/SMC-CalendarService/internal/availability"
)

// Request модель запроса на применение диапазона
// Даты и статус приходят строками из формы; порядок дат не важен.
type Request struct {
	Slug   string // Календарь
	Start  string // YYYY-MM-DD
	End    string // YYYY-MM-DD
	Status string // Dostępny, Częściowo dostępny, Niedostępny или алиас
}

// Response модель ответа
type Response struct {
	CalendarSlug   string                    // Календарь
	Applied        availability.Interval     // Применённый диапазон (после нормализации)
	Availabilities availability.Set          // Новый набор, отсортированный по дате начала
	Diagnostics    []availability.Diagnostic // Аномалии в ранее сохраненных данных
}
