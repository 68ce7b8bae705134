package apply_range

import (
	"github.com/m04kA/SMC-CalendarService/internal/availability"
	applyRange "github.com/m04kA/SMC-CalendarService/internal/usecase/apply_range"
)

// ApplyRangeRequest тело запроса формы администратора
type ApplyRangeRequest struct {
	Start  string `json:"start" validate:"required,datetime=2006-01-02"`
	End    string `json:"end" validate:"required,datetime=2006-01-02"`
	Status string `json:"status" validate:"required,availability_status"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *ApplyRangeRequest) ToUseCaseRequest(slug string) *applyRange.Request {
	return &applyRange.Request{
		Slug:   slug,
		Start:  r.Start,
		End:    r.End,
		Status: r.Status,
	}
}

// ApplyRangeResponse новый набор после применения диапазона
type ApplyRangeResponse struct {
	Calendar       string                    `json:"calendar"`
	Applied        availability.Interval     `json:"applied"`
	Availabilities []availability.Interval   `json:"availabilities"`
	Diagnostics    []availability.Diagnostic `json:"diagnostics,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP ответ
func FromUseCaseResponse(resp *applyRange.Response) *ApplyRangeResponse {
	return &ApplyRangeResponse{
		Calendar:       resp.CalendarSlug,
		Applied:        resp.Applied,
		Availabilities: resp.Availabilities,
		Diagnostics:    resp.Diagnostics,
	}
}
