package apply_recurring

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CalendarService/internal/api/handlers"
	"github.com/m04kA/SMC-CalendarService/internal/availability"
	applyRecurring "github.com/m04kA/SMC-CalendarService/internal/usecase/apply_recurring"
)

const (
	msgInvalidForm   = "podaj regułę, daty od i do (RRRR-MM-DD) oraz status"
	msgInvalidRule   = "nieprawidłowa reguła powtarzania"
	msgInvalidRange  = "nieprawidłowy zakres dat"
	msgInvalidStatus = "wybierz status: Dostępny, Częściowo dostępny lub Niedostępny"
	msgInvalidSlug   = "nieprawidłowy identyfikator kalendarza"
)

type Handler struct {
	useCase ApplyRecurringUseCase
	logger  Logger
}

func NewHandler(useCase ApplyRecurringUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/calendars/{slug}/availability/recurring
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	var req ApplyRecurringRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /calendars/{slug}/availability/recurring - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.MsgInvalidRequestBody)
		return
	}

	if err := handlers.ValidateStruct(&req); err != nil {
		h.logger.Warn("POST /calendars/{slug}/availability/recurring - Validation failed: %s", handlers.FailedFields(err))
		if handlers.FailedTag(err, "Status") != "" {
			handlers.RespondBadRequest(w, msgInvalidStatus)
			return
		}
		handlers.RespondBadRequest(w, msgInvalidForm)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(slug))
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrInvalidRule):
			h.logger.Warn("POST /calendars/{slug}/availability/recurring - Invalid rule: slug=%s, rule=%q, error=%v", slug, req.Rule, err)
			handlers.RespondBadRequest(w, msgInvalidRule)

		case errors.Is(err, availability.ErrInvalidStatus):
			handlers.RespondBadRequest(w, msgInvalidStatus)

		case errors.Is(err, availability.ErrInvalidRange):
			h.logger.Warn("POST /calendars/{slug}/availability/recurring - Invalid range: slug=%s, error=%v", slug, err)
			handlers.RespondBadRequest(w, msgInvalidRange)

		case errors.Is(err, applyRecurring.ErrInvalidInput):
			h.logger.Warn("POST /calendars/{slug}/availability/recurring - Invalid input: slug=%q, error=%v", slug, err)
			handlers.RespondBadRequest(w, msgInvalidSlug)

		default:
			h.logger.Error("POST /calendars/{slug}/availability/recurring - Failed: slug=%s, error=%v", slug, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /calendars/{slug}/availability/recurring - Rule applied: slug=%s, days=%d", slug, len(result.Days))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
