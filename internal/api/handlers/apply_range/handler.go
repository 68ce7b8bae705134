package apply_range

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CalendarService/internal/api/handlers"
	"github.com/m04kA/SMC-CalendarService/internal/availability"
	applyRange "github.com/m04kA/SMC-CalendarService/internal/usecase/apply_range"
)

const (
	msgInvalidDates  = "podaj poprawne daty początku i końca (RRRR-MM-DD)"
	msgInvalidRange  = "nieprawidłowy zakres dat"
	msgInvalidStatus = "wybierz status: Dostępny, Częściowo dostępny lub Niedostępny"
	msgInvalidSlug   = "nieprawidłowy identyfikator kalendarza"
)

type Handler struct {
	useCase ApplyRangeUseCase
	logger  Logger
}

func NewHandler(useCase ApplyRangeUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/calendars/{slug}/availability
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	var req ApplyRangeRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /calendars/{slug}/availability - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.MsgInvalidRequestBody)
		return
	}

	if err := handlers.ValidateStruct(&req); err != nil {
		h.logger.Warn("POST /calendars/{slug}/availability - Validation failed: %s", handlers.FailedFields(err))
		if handlers.FailedTag(err, "Status") != "" {
			handlers.RespondBadRequest(w, msgInvalidStatus)
			return
		}
		handlers.RespondBadRequest(w, msgInvalidDates)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(slug))
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrInvalidStatus):
			h.logger.Warn("POST /calendars/{slug}/availability - Invalid status: slug=%s, status=%q", slug, req.Status)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		case errors.Is(err, availability.ErrInvalidRange):
			h.logger.Warn("POST /calendars/{slug}/availability - Invalid range: slug=%s, error=%v", slug, err)
			handlers.RespondBadRequest(w, msgInvalidRange)

		case errors.Is(err, applyRange.ErrInvalidInput):
			h.logger.Warn("POST /calendars/{slug}/availability - Invalid input: slug=%q, error=%v", slug, err)
			handlers.RespondBadRequest(w, msgInvalidSlug)

		default:
			h.logger.Error("POST /calendars/{slug}/availability - Failed to apply range: slug=%s, error=%v", slug, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /calendars/{slug}/availability - Range applied: slug=%s, range=%s", slug, result.Applied)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
