package get_availability

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CalendarService/internal/api/handlers"
	"github.com/m04kA/SMC-CalendarService/internal/availability"
	availabilityService "github.com/m04kA/SMC-CalendarService/internal/service/availability"
)

const (
	msgInvalidSlug = "nieprawidłowy identyfikator kalendarza"
)

type Handler struct {
	service AvailabilityService
	logger  Logger
}

func NewHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/calendars/{slug}/availability
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	set, err := h.service.GetSet(r.Context(), slug)
	if err != nil {
		if errors.Is(err, availabilityService.ErrInvalidInput) {
			h.logger.Warn("GET /calendars/{slug}/availability - Invalid slug: %q", slug)
			handlers.RespondBadRequest(w, msgInvalidSlug)
			return
		}
		h.logger.Error("GET /calendars/{slug}/availability - Failed to load: slug=%s, error=%v", slug, err)
		handlers.RespondInternalError(w)
		return
	}

	if set == nil {
		set = availability.Set{}
	}
	handlers.RespondJSON(w, http.StatusOK, AvailabilityResponse{
		Calendar:       slug,
		Availabilities: set,
	})
}
