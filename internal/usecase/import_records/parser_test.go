package import_records

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CalendarService/internal/availability"
	"github.com/m04kA/SMC-CalendarService/internal/domain"
)

func TestParseRecords(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		format Format
		want   []availability.Record
	}{
		{
			name:   "json array",
			data:   `[{"start":"2024-01-01","end":"2024-01-05","status":"Dostępny"},{"start":"2024-01-03","end":"2024-01-03","status":"Niedostępny"}]`,
			format: FormatJSON,
			want: []availability.Record{
				{Start: "2024-01-01", End: "2024-01-05", Status: "Dostępny"},
				{Start: "2024-01-03", End: "2024-01-03", Status: "Niedostępny"},
			},
		},
		{
			name:   "json document",
			data:   `{"availabilities":[{"start":"2024-02-01","end":"2024-02-02","status":"Częściowo dostępny"}]}`,
			format: FormatAuto,
			want: []availability.Record{
				{Start: "2024-02-01", End: "2024-02-02", Status: "Częściowo dostępny"},
			},
		},
		{
			name: "yaml list",
			data: "- start: 2024-03-01\n  end: 2024-03-10\n  status: Dostępny\n",
			want: []availability.Record{
				{Start: "2024-03-01", End: "2024-03-10", Status: "Dostępny"},
			},
		},
		{
			name: "day map keeps file order",
			data: `{"2024-01-02": "zajety", "2024-01-01": "dostepny", "2024-01-03": "niedostepny"}`,
			want: []availability.Record{
				{Start: "2024-01-02", End: "2024-01-02", Status: "zajety"},
				{Start: "2024-01-01", End: "2024-01-01", Status: "dostepny"},
				{Start: "2024-01-03", End: "2024-01-03", Status: "niedostepny"},
			},
		},
		{
			name: "empty",
			data: "",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRecords([]byte(tt.data), tt.format)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseRecords_Errors(t *testing.T) {
	_, err := ParseRecords([]byte("start: [unclosed"), FormatAuto)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = ParseRecords([]byte("- a: 1\n"), FormatJSON)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = ParseRecords([]byte(`"just a string"`), FormatAuto)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = ParseRecords([]byte(`{"2024-01-01": ["x"]}`), FormatAuto)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	var b strings.Builder
	b.WriteString("[")
	for i := 0; i <= domain.MaxImportRecords; i++ {
		if i > 0 {
			b.WriteString(",")
		}
		b.WriteString(`{"start":"2024-01-01","end":"2024-01-01","status":"Dostępny"}`)
	}
	b.WriteString("]")
	_, err = ParseRecords([]byte(b.String()), FormatJSON)
	assert.ErrorIs(t, err, ErrTooManyRecords)
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("YML")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)

	f, err = ParseFormat("auto")
	require.NoError(t, err)
	assert.Equal(t, FormatAuto, f)

	_, err = ParseFormat("csv")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}
