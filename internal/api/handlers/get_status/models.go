package get_status

import (
	"github.com/m04kA/SMC-CalendarService/internal/availability"
	"github.com/m04kA/SMC-CalendarService/pkg/types"
)

// StatusResponse статус одного дня; Status = null, если о дне нет информации
type StatusResponse struct {
	Date   types.Date           `json:"date"`
	Status *availability.Status `json:"status"`
	Code   string               `json:"code,omitempty"`
	Known  bool                 `json:"known"`
}

func newStatusResponse(date types.Date, status availability.Status, known bool) StatusResponse {
	resp := StatusResponse{Date: date, Known: known}
	if known {
		resp.Status = &status
		resp.Code = status.Code()
	}
	return resp
}
