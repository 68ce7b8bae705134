package get_month

import (
	"github.com/m04kA/SMC-CalendarService/internal/availability"
	"github.com/m04kA/SMC-CalendarService/internal/domain"
	"github.com/m04kA/SMC-CalendarService/pkg/types"
)

// DayResponse клетка сетки месяца
type DayResponse struct {
	Date     types.Date             `json:"date"`
	InMonth  bool                   `json:"inMonth"`
	IsToday  bool                   `json:"isToday"`
	Status   *availability.Status   `json:"status"`
	Code     string                 `json:"code"`
	Interval *availability.Interval `json:"interval,omitempty"` // только в режиме администратора
}

// MonthResponse сетка месяца из целых недель
type MonthResponse struct {
	Calendar  string          `json:"calendar"`
	Month     string          `json:"month"`
	WeekStart string          `json:"weekStart"`
	Admin     bool            `json:"admin"`
	Weeks     [][]DayResponse `json:"weeks"`
	Summary   map[string]int  `json:"summary"` // количество дней месяца по кодам статусов
}

// FromMonthView конвертирует domain модель в HTTP ответ
func FromMonthView(view *domain.MonthView) *MonthResponse {
	resp := &MonthResponse{
		Calendar:  view.CalendarSlug,
		Month:     types.NewDate(view.Year, view.Month, 1).Time().Format(domain.MonthFormat),
		WeekStart: string(view.WeekStart),
		Admin:     view.Admin,
		Weeks:     make([][]DayResponse, 0, len(view.Weeks)),
		Summary:   make(map[string]int, len(availability.AllStatuses)),
	}

	for _, week := range view.Weeks {
		days := make([]DayResponse, 0, len(week))
		for _, cell := range week {
			day := DayResponse{
				Date:     cell.Date,
				InMonth:  cell.InMonth,
				IsToday:  cell.IsToday,
				Code:     "unknown",
				Interval: cell.Interval,
			}
			if cell.Known {
				status := cell.Status
				day.Status = &status
				day.Code = status.Code()
			}
			days = append(days, day)
		}
		resp.Weeks = append(resp.Weeks, days)
	}

	for _, status := range availability.AllStatuses {
		resp.Summary[status.Code()] = 0
	}
	for status, n := range view.CountByStatus() {
		resp.Summary[status.Code()] = n
	}

	return resp
}
