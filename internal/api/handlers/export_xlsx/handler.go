package export_xlsx

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
	service AvailabilityService
	logger  Logger
}

func NewHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/calendars/{slug}/availability.xlsx
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	cal, set, err := h.service.Snapshot(r.Context(), slug)
	if err != nil {
		if errors.Is(err, availabilityService.ErrInvalidInput) {
			h.logger.Warn("GET /calendars/{slug}/availability.xlsx - Invalid slug: %q", slug)
			handlers.RespondBadRequest(w, msgInvalidSlug)
			return
		}
		h.logger.Error("GET /calendars/{slug}/availability.xlsx - Failed: slug=%s, error=%v", slug, err)
		handlers.RespondInternalError(w)
		return
	}

	buf, err := export.XLSX(cal, set)
	if err != nil {
		h.logger.Error("GET /calendars/{slug}/availability.xlsx - Failed to build file: slug=%s, error=%v", slug, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /calendars/{slug}/availability.xlsx - Exported: slug=%s, intervals=%d", slug, len(set))
	handlers.RespondFile(w, export.XLSXContentType, export.XLSXFilename(cal), buf.Bytes())
}
