package export_ics

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CalendarService/internal/api/handlers"
	"github.com/m04kA/SMC-CalendarService/internal/export"
	availabilityService "github.com/m04kA/SMC-CalendarService/internal/service/availability"
)

const (
	msgInvalidSlug = "nieprawidłowy identyfikator kalendarza"
)

type Handler struct {
	service      AvailabilityService
	timeProvider TimeProvider
	logger       Logger
}

func NewHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		service:      service,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени (DTSTAMP)
func (h *Handler) WithTimeProvider(tp TimeProvider) *Handler {
	h.timeProvider = tp
	return h
}

// Handle GET /api/v1/calendars/{slug}/availability.ics
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	cal, set, err := h.service.Snapshot(r.Context(), slug)
	if err != nil {
		if errors.Is(err, availabilityService.ErrInvalidInput) {
			h.logger.Warn("GET /calendars/{slug}/availability.ics - Invalid slug: %q", slug)
			handlers.RespondBadRequest(w, msgInvalidSlug)
			return
		}
		h.logger.Error("GET /calendars/{slug}/availability.ics - Failed: slug=%s, error=%v", slug, err)
		handlers.RespondInternalError(w)
		return
	}

	feed := export.ICal(cal, set, h.timeProvider.Now())
	handlers.RespondFile(w, export.ICalContentType, "", []byte(feed))
}
