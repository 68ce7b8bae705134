package models

import (
	"time"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
)

// UpsertCalendarRequest запрос на создание или обновление настроек календаря
// Пустые поля заменяются значениями по умолчанию
type UpsertCalendarRequest struct {
	Slug      string `json:"-"`
	Name      string `json:"name"`
	Timezone  string `json:"timezone"`
	WeekStart string `json:"weekStart"`
}

// CalendarResponse ответ с настройками календаря
type CalendarResponse struct {
	Slug       string     `json:"slug"`
	Name       string     `json:"name"`
	Timezone   string     `json:"timezone"`
	WeekStart  string     `json:"weekStart"`
	Configured bool       `json:"configured"` // false - календарь еще не сохранен, показаны значения по умолчанию
	CreatedAt  *time.Time `json:"createdAt,omitempty"`
	UpdatedAt  *time.Time `json:"updatedAt,omitempty"`
}

// ToDomainCalendar конвертирует запрос в domain модель
func (r *UpsertCalendarRequest) ToDomainCalendar() *domain.Calendar {
	cal := domain.NewDefaultCalendar(r.Slug)
	if r.Name != "" {
		cal.Name = r.Name
	}
	if r.Timezone != "" {
		cal.Timezone = r.Timezone
	}
	if r.WeekStart != "" {
		cal.WeekStart = domain.WeekStart(r.WeekStart)
	}
	return cal
}

// FromDomainCalendar конвертирует domain модель в DTO
func FromDomainCalendar(c *domain.Calendar) *CalendarResponse {
	if c == nil {
		return nil
	}

	resp := &CalendarResponse{
		Slug:       c.Slug,
		Name:       c.Name,
		Timezone:   c.Timezone,
		WeekStart:  string(c.WeekStart),
		Configured: c.IsPersisted(),
	}
	if c.IsPersisted() {
		createdAt, updatedAt := c.CreatedAt, c.UpdatedAt
		resp.CreatedAt = &createdAt
		resp.UpdatedAt = &updatedAt
	}
	return resp
}
