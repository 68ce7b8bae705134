package update_calendar

import (
	"github.com/m04kA/SMC-CalendarService/internal/service/calendars/models"
)

// UpdateCalendarRequest тело запроса PUT /calendars/{slug}
type UpdateCalendarRequest struct {
	Name      string `json:"name" validate:"omitempty,max=100"`
	Timezone  string `json:"timezone" validate:"omitempty,timezone"`
	WeekStart string `json:"weekStart" validate:"omitempty,oneof=monday sunday"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateCalendarRequest) ToServiceRequest(slug string) *models.UpsertCalendarRequest {
	return &models.UpsertCalendarRequest{
		Slug:      slug,
		Name:      r.Name,
		Timezone:  r.Timezone,
		WeekStart: r.WeekStart,
	}
}
