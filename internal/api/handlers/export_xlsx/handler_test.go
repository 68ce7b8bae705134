package export_xlsx

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/m04kA/SMC-CalendarService/internal/availability"
	"github.com/m04kA/SMC-CalendarService/internal/domain"
	"github.com/m04kA/SMC-CalendarService/internal/export"
	availabilityService "github.com/m04kA/SMC-CalendarService/internal/service/availability"
	"github.com/m04kA/SMC-CalendarService/pkg/logger"
	"github.com/m04kA/SMC-CalendarService/pkg/types"
)

type fakeService struct {
	err error
}

func (f *fakeService) Snapshot(_ context.Context, slug string) (*domain.Calendar, availability.Set, error) {
	if f.err != nil {
		return nil, nil, f.err
	}
	return domain.NewDefaultCalendar(slug), availability.Set{{
		Start:  types.MustParseDate("2024-05-01"),
		End:    types.MustParseDate("2024-05-03"),
		Status: availability.StatusUnavailable,
	}}, nil
}

func serve(svc AvailabilityService) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/calendars/{slug}/availability.xlsx", NewHandler(svc, logger.NewNop()).Handle).Methods(http.MethodGet)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/calendars/main/availability.xlsx", nil))
	return rec
}

func TestHandle(t *testing.T) {
	rec := serve(&fakeService{})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, export.XLSXContentType, rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="dostepnosc_main.xlsx"`, rec.Header().Get("Content-Disposition"))

	f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Dostępność")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"2024-05-01", "2024-05-03", "3", "Niedostępny", "unavailable"}, rows[1])
}

func TestHandle_Errors(t *testing.T) {
	rec := serve(&fakeService{err: fmt.Errorf("%w: slug", availabilityService.ErrInvalidInput)})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(&fakeService{err: fmt.Errorf("%w: %w", availabilityService.ErrInternal, errors.New("conn refused"))})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
