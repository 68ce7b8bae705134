package export

import (
	"strings"
	"testing"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/m04kA/SMC-CalendarService/internal/availability"
	"github.com/m04kA/SMC-CalendarService/internal/domain"
	"github.com/m04kA/SMC-CalendarService/pkg/types"
)

func testSet() availability.Set {
	return availability.Set{
		{Start: types.MustParseDate("2024-01-10"), End: types.MustParseDate("2024-01-12"), Status: availability.StatusUnavailable},
		{Start: types.MustParseDate("2024-01-01"), End: types.MustParseDate("2024-01-09"), Status: availability.StatusAvailable},
	}
}

func TestICal(t *testing.T) {
	cal := domain.NewDefaultCalendar("main")
	out := ICal(cal, testSet(), time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC))

	parsed, err := ics.ParseCalendar(strings.NewReader(out))
	require.NoError(t, err)

	events := parsed.Events()
	require.Len(t, events, 2)

	first := events[0]
	assert.Equal(t, "Dostępny", first.GetProperty(ics.ComponentPropertySummary).Value)
	assert.Equal(t, "20240101", first.GetProperty(ics.ComponentPropertyDtStart).Value)
	assert.Equal(t, "20240110", first.GetProperty(ics.ComponentPropertyDtEnd).Value)

	second := events[1]
	assert.Equal(t, "Niedostępny", second.GetProperty(ics.ComponentPropertySummary).Value)
	assert.Equal(t, "20240113", second.GetProperty(ics.ComponentPropertyDtEnd).Value)
	assert.Equal(t, "OPAQUE", second.GetProperty(ics.ComponentPropertyTransp).Value)
}

func TestEventUID_Stable(t *testing.T) {
	set := testSet()

	assert.Equal(t, EventUID("main", set[0]), EventUID("main", set[0]))
	assert.NotEqual(t, EventUID("main", set[0]), EventUID("main", set[1]))
	assert.NotEqual(t, EventUID("main", set[0]), EventUID("workshop", set[0]))
	assert.True(t, strings.HasSuffix(EventUID("main", set[0]), "@main"))
}

func TestXLSX(t *testing.T) {
	cal := domain.NewDefaultCalendar("main")

	buf, err := XLSX(cal, testSet())
	require.NoError(t, err)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)

	require.Len(t, rows, 3)
	assert.Equal(t, xlsxHeader, rows[0])
	assert.Equal(t, []string{"2024-01-01", "2024-01-09", "9", "Dostępny", "available"}, rows[1])
	assert.Equal(t, []string{"2024-01-10", "2024-01-12", "3", "Niedostępny", "unavailable"}, rows[2])
	assert.Equal(t, "dostepnosc_main.xlsx", XLSXFilename(cal))
}

func TestXLSX_Empty(t *testing.T) {
	buf, err := XLSX(domain.NewDefaultCalendar("main"), nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
