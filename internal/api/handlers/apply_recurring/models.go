package apply_recurring

import (
	"github.com/m04kA/SMC-CalendarService/internal/availability"
	applyRecurring "github.com/m04kA/SMC-CalendarService/internal/usecase/apply_recurring"
	"github.com/m04kA/SMC-CalendarService/pkg/types"
)

// ApplyRecurringRequest тело запроса с правилом повторения
type ApplyRecurringRequest struct {
	Rule   string `json:"rule" validate:"required,max=512"`
	From   string `json:"from" validate:"required,datetime=2006-01-02"`
	Until  string `json:"until" validate:"required,datetime=2006-01-02"`
	Status string `json:"status" validate:"required,availability_status"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *ApplyRecurringRequest) ToUseCaseRequest(slug string) *applyRecurring.Request {
	return &applyRecurring.Request{
		Slug:   slug,
		Rule:   r.Rule,
		From:   r.From,
		Until:  r.Until,
		Status: r.Status,
	}
}

// ApplyRecurringResponse дни, к которым применено правило, и новый набор
type ApplyRecurringResponse struct {
	Calendar       string                    `json:"calendar"`
	Days           []types.Date              `json:"days"`
	Availabilities []availability.Interval   `json:"availabilities"`
	Diagnostics    []availability.Diagnostic `json:"diagnostics,omitempty"`
}

func FromUseCaseResponse(resp *applyRecurring.Response) *ApplyRecurringResponse {
	days := resp.Days
	if days == nil {
		days = []types.Date{}
	}
	return &ApplyRecurringResponse{
		Calendar:       resp.CalendarSlug,
		Days:           days,
		Availabilities: resp.Availabilities,
		Diagnostics:    resp.Diagnostics,
	}
}
