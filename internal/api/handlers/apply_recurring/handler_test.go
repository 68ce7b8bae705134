package apply_recurring

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CalendarService/internal/api/handlers"
	"github.com/m04kA/SMC-CalendarService/internal/availability"
	applyRecurring "github.com/m04kA/SMC-CalendarService/internal/usecase/apply_recurring"
	"github.com/m04kA/SMC-CalendarService/internal/usecase/usecasetest"
	"github.com/m04kA/SMC-CalendarService/pkg/logger"
)

type fakeUseCase struct {
	got  *applyRecurring.Request
	resp *applyRecurring.Response
	err  error
}

func (f *fakeUseCase) Execute(_ context.Context, req *applyRecurring.Request) (*applyRecurring.Response, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	if f.resp != nil {
		return f.resp, nil
	}
	return &applyRecurring.Response{CalendarSlug: req.Slug}, nil
}

func serve(uc ApplyRecurringUseCase, body string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/calendars/{slug}/availability/recurring", NewHandler(uc, logger.NewNop()).Handle).Methods(http.MethodPost)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/calendars/main/availability/recurring", strings.NewReader(body)))
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) handlers.ErrorResponse {
	t.Helper()
	var body handlers.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestHandle_Success(t *testing.T) {
	uc := &fakeUseCase{}
	rec := serve(uc, `{"rule":"FREQ=WEEKLY;BYDAY=SU","from":"2024-01-01","until":"2024-01-31","status":"niedostepny"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, &applyRecurring.Request{
		Slug:   "main",
		Rule:   "FREQ=WEEKLY;BYDAY=SU",
		From:   "2024-01-01",
		Until:  "2024-01-31",
		Status: "niedostepny",
	}, uc.got)

	// Пустой список дней отдается массивом, а не null
	assert.JSONEq(t, `{"calendar":"main","days":[],"availabilities":null}`, rec.Body.String())
}

func TestHandle_Errors(t *testing.T) {
	valid := `{"rule":"FREQ=DAILY","from":"2024-01-01","until":"2024-01-31","status":"Dostępny"}`

	tests := []struct {
		name    string
		body    string
		ucErr   error
		status  int
		message string
	}{
		{
			name:    "malformed body",
			body:    `{"rule":`,
			status:  http.StatusBadRequest,
			message: handlers.MsgInvalidRequestBody,
		},
		{
			name:    "missing rule",
			body:    `{"from":"2024-01-01","until":"2024-01-31","status":"Dostępny"}`,
			status:  http.StatusBadRequest,
			message: msgInvalidForm,
		},
		{
			name:    "unknown status",
			body:    `{"rule":"FREQ=DAILY","from":"2024-01-01","until":"2024-01-31","status":"Może"}`,
			status:  http.StatusBadRequest,
			message: msgInvalidStatus,
		},
		{
			name:    "invalid rule",
			body:    valid,
			ucErr:   fmt.Errorf("%w: %w", applyRecurring.ErrInvalidInput, availability.ErrInvalidRule),
			status:  http.StatusBadRequest,
			message: msgInvalidRule,
		},
		{
			name:    "invalid range",
			body:    valid,
			ucErr:   fmt.Errorf("%w: %w", applyRecurring.ErrInvalidInput, availability.ErrInvalidRange),
			status:  http.StatusBadRequest,
			message: msgInvalidRange,
		},
		{
			name:    "invalid status from engine",
			body:    valid,
			ucErr:   fmt.Errorf("%w: %w", applyRecurring.ErrInvalidInput, availability.ErrInvalidStatus),
			status:  http.StatusBadRequest,
			message: msgInvalidStatus,
		},
		{
			name:    "invalid slug",
			body:    valid,
			ucErr:   fmt.Errorf("%w: slug", applyRecurring.ErrInvalidInput),
			status:  http.StatusBadRequest,
			message: msgInvalidSlug,
		},
		{
			name:    "storage failure",
			body:    valid,
			ucErr:   fmt.Errorf("%w: %w", applyRecurring.ErrInternal, errors.New("conn refused")),
			status:  http.StatusInternalServerError,
			message: handlers.MsgInternalError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&fakeUseCase{err: tt.ucErr}, tt.body)
			assert.Equal(t, tt.status, rec.Code)

			body := decodeError(t, rec)
			assert.Equal(t, tt.message, body.Message)
			assert.Equal(t, tt.status, body.Code)
		})
	}
}

func TestHandle_EngineErrorsAreBadRequests(t *testing.T) {
	store := usecasetest.NewStore()
	uc := applyRecurring.NewUseCase(store, store, &usecasetest.Cache{}, &usecasetest.TxManager{}, nil, logger.NewNop())

	tests := []struct {
		name    string
		body    string
		message string
	}{
		{
			name:    "sub-hourly rule",
			body:    `{"rule":"FREQ=SECONDLY","from":"2024-01-01","until":"2025-12-31","status":"Dostępny"}`,
			message: msgInvalidRule,
		},
		{
			name:    "unparsable rule",
			body:    `{"rule":"FREQ=SOMETIMES","from":"2024-01-01","until":"2024-01-31","status":"Dostępny"}`,
			message: msgInvalidRule,
		},
		{
			name:    "too many days",
			body:    `{"rule":"FREQ=DAILY","from":"2024-01-01","until":"2025-06-30","status":"Dostępny"}`,
			message: msgInvalidRule,
		},
		{
			name:    "window too long",
			body:    `{"rule":"FREQ=WEEKLY","from":"2020-01-01","until":"2024-01-01","status":"Dostępny"}`,
			message: msgInvalidRange,
		},
		{
			name:    "unset date sentinel",
			body:    `{"rule":"FREQ=WEEKLY","from":"0001-01-01","until":"2024-01-01","status":"Dostępny"}`,
			message: msgInvalidRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(uc, tt.body)
			require.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tt.message, decodeError(t, rec).Message)
		})
	}
	assert.Empty(t, store.Records("main"))
}
