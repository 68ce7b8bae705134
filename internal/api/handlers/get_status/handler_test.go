package get_status

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CalendarService/internal/availability"
	"github.com/m04kA/SMC-CalendarService/pkg/logger"
	"github.com/m04kA/SMC-CalendarService/pkg/types"
)

type fakeService struct {
	set availability.Set
}

func (f *fakeService) StatusForDate(_ context.Context, _ string, date types.Date) (availability.Status, bool, error) {
	status, ok := availability.StatusForDate(f.set, date)
	return status, ok, nil
}

func serve(target string) *httptest.ResponseRecorder {
	svc := &fakeService{set: availability.Set{{
		Start:  types.MustParseDate("2024-01-01"),
		End:    types.MustParseDate("2024-01-05"),
		Status: availability.StatusPartiallyAvailable,
	}}}

	r := mux.NewRouter()
	r.HandleFunc("/calendars/{slug}/availability/status", NewHandler(svc, logger.NewNop()).Handle)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandle(t *testing.T) {
	rec := serve("/calendars/main/availability/status?date=2024-01-03")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"date":"2024-01-03","status":"Częściowo dostępny","code":"partially_available","known":true}`, rec.Body.String())

	rec = serve("/calendars/main/availability/status?date=2024-02-01")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"date":"2024-02-01","status":null,"known":false}`, rec.Body.String())
}

func TestHandle_InvalidDate(t *testing.T) {
	for _, target := range []string{
		"/calendars/main/availability/status",
		"/calendars/main/availability/status?date=2024-02-30",
	} {
		rec := serve(target)
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)

		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, msgInvalidDate, body["message"])
	}
}
