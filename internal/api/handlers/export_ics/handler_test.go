package export_ics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CalendarService/internal/availability"
	"github.com/m04kA/SMC-CalendarService/internal/domain"
	"github.com/m04kA/SMC-CalendarService/pkg/logger"
	"github.com/m04kA/SMC-CalendarService/pkg/types"
)

type fakeService struct{}

func (fakeService) Snapshot(_ context.Context, slug string) (*domain.Calendar, availability.Set, error) {
	return domain.NewDefaultCalendar(slug), availability.Set{{
		Start:  types.MustParseDate("2024-05-01"),
		End:    types.MustParseDate("2024-05-03"),
		Status: availability.StatusUnavailable,
	}}, nil
}

type fixedClock struct{}

func (fixedClock) Now() time.Time { return time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC) }

func TestHandle(t *testing.T) {
	r := mux.NewRouter()
	h := NewHandler(fakeService{}, logger.NewNop()).WithTimeProvider(fixedClock{})
	r.HandleFunc("/calendars/{slug}/availability.ics", h.Handle)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/calendars/main/availability.ics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Header().Get("Content-Type"), "text/calendar"))

	body := rec.Body.String()
	assert.Contains(t, body, "BEGIN:VEVENT")
	assert.Contains(t, body, "DTSTART;VALUE=DATE:20240501")
	assert.Contains(t, body, "DTEND;VALUE=DATE:20240504")
	assert.Contains(t, body, "SUMMARY:Niedostępny")
}
