package apply_recurring

import (
	"github.com/m04kA/SMC-CalendarService/internal/availability"
	"github.com/m04kA/SMC-CalendarService/pkg/types"
)

// Request модель запроса на применение повторяющегося правила
type Request struct {
	Slug   string // Календарь
	Rule   string // RRULE, например FREQ=WEEKLY;BYDAY=SA,SU
	From   string // YYYY-MM-DD, начало развертки правила
	Until  string // YYYY-MM-DD, конец развертки (включительно)
	Status string
}

// Response модель ответа
type Response struct {
	CalendarSlug   string
	Days           []types.Date // Дни, к которым применено правило
	Availabilities availability.Set
	Diagnostics    []availability.Diagnostic
}
