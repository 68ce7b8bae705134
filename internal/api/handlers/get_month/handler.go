package get_month

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CalendarService/internal/api/handlers"
	"github.com/m04kA/SMC-CalendarService/internal/domain"
	availabilityService "github.com/m04kA/SMC-CalendarService/internal/service/availability"
)

const (
	msgInvalidMonth = "nieprawidłowy miesiąc, oczekiwano formatu RRRR-MM"
	msgInvalidSlug  = "nieprawidłowy identyfikator kalendarza"
)

type Handler struct {
	service      AvailabilityService
	admin        AdminChecker
	timeProvider TimeProvider
	logger       Logger
}

func NewHandler(service AvailabilityService, admin AdminChecker, logger Logger) *Handler {
	return &Handler{
		service:      service,
		admin:        admin,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени (месяц по умолчанию)
func (h *Handler) WithTimeProvider(tp TimeProvider) *Handler {
	h.timeProvider = tp
	return h
}

// Handle GET /api/v1/calendars/{slug}/month?month=YYYY-MM
// Без параметра month показывается текущий месяц. Режим администратора включается валидным токеном.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	month := h.timeProvider.Now()
	if raw := r.URL.Query().Get("month"); raw != "" {
		parsed, err := time.Parse(domain.MonthFormat, raw)
		if err != nil {
			h.logger.Warn("GET /calendars/{slug}/month - Invalid month %q: %v", raw, err)
			handlers.RespondBadRequest(w, msgInvalidMonth)
			return
		}
		month = parsed
	}

	admin := h.admin != nil && h.admin.IsAdmin(r)

	view, err := h.service.MonthView(r.Context(), slug, month.Year(), month.Month(), admin)
	if err != nil {
		if errors.Is(err, availabilityService.ErrInvalidInput) {
			h.logger.Warn("GET /calendars/{slug}/month - Invalid input: slug=%q, error=%v", slug, err)
			handlers.RespondBadRequest(w, msgInvalidSlug)
			return
		}
		h.logger.Error("GET /calendars/{slug}/month - Failed: slug=%s, error=%v", slug, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromMonthView(view))
}
