package update_calendar

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CalendarService/internal/api/handlers"
	"github.com/m04kA/SMC-CalendarService/internal/service/calendars"
)

const (
	msgInvalidData = "nieprawidłowe ustawienia kalendarza"
)

type Handler struct {
	service CalendarService
	logger  Logger
}

func NewHandler(service CalendarService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/calendars/{slug}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	var req UpdateCalendarRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /calendars/{slug} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.MsgInvalidRequestBody)
		return
	}
	if err := handlers.ValidateStruct(&req); err != nil {
		h.logger.Warn("PUT /calendars/{slug} - Validation failed: %s", handlers.FailedFields(err))
		handlers.RespondBadRequest(w, msgInvalidData)
		return
	}

	result, err := h.service.Upsert(r.Context(), req.ToServiceRequest(slug))
	if err != nil {
		if errors.Is(err, calendars.ErrInvalidInput) {
			h.logger.Warn("PUT /calendars/{slug} - Invalid data: slug=%s, error=%v", slug, err)
			handlers.RespondBadRequest(w, msgInvalidData)
			return
		}
		h.logger.Error("PUT /calendars/{slug} - Failed to save calendar: slug=%s, error=%v", slug, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("PUT /calendars/{slug} - Calendar saved: slug=%s", slug)
	handlers.RespondJSON(w, http.StatusOK, result)
}
