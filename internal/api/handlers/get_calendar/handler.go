package get_calendar

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CalendarService/internal/api/handlers"
	"github.com/m04kA/SMC-CalendarService/internal/service/calendars"
)

const (
	msgInvalidSlug = "nieprawidłowy identyfikator kalendarza"
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

// Handle GET /api/v1/calendars/{slug}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	result, err := h.service.Get(r.Context(), slug)
	if err != nil {
		if errors.Is(err, calendars.ErrInvalidInput) {
			h.logger.Warn("GET /calendars/{slug} - Invalid slug: %q", slug)
			handlers.RespondBadRequest(w, msgInvalidSlug)
			return
		}
		h.logger.Error("GET /calendars/{slug} - Failed to get calendar: slug=%s, error=%v", slug, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
