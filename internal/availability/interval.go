package availability

import (
	"fmt"
	"sort"

	"github.com/m04kA/SMC-CalendarService/pkg/types"
)

// MaxRangeDays максимальная длина одного диапазона в днях (включительно)
const MaxRangeDays = 732

// Interval непрерывный диапазон дней [Start, End] с одним статусом
// Инвариант: Start <= End
type Interval struct {
	Start  types.Date `json:"start"`
	End    types.Date `json:"end"`
	Status Status     `json:"status"`
}

// Contains возвращает true, если дата попадает в [Start, End]
func (i Interval) Contains(date types.Date) bool {
	return !date.Before(i.Start) && !date.After(i.End)
}

// Overlaps возвращает true, если интервалы имеют хотя бы один общий день
func (i Interval) Overlaps(other Interval) bool {
	return !i.End.Before(other.Start) && !i.Start.After(other.End)
}

// Days количество дней в интервале
func (i Interval) Days() int {
	return i.Start.DaysUntil(i.End) + 1
}

// IsValid проверяет инвариант интервала
func (i Interval) IsValid() bool {
	return !i.Start.IsZero() && !i.End.IsZero() && !i.Start.After(i.End) && i.Status.IsValid()
}

func (i Interval) String() string {
	return fmt.Sprintf("[%s, %s] %s", i.Start, i.End, i.Status)
}

// Range новый диапазон, отправленный администратором
// Создается только через NewRange, поэтому Start <= End гарантировано.
type Range struct {
	Start  types.Date
	End    types.Date
	Status Status
}

// NewRange создает диапазон, нормализуя порядок дат
// Если start позже end, даты меняются местами (как при выборе дней кликами в обратном порядке).
func NewRange(start, end types.Date, status Status) (Range, error) {
	if start.IsZero() || end.IsZero() {
		return Range{}, fmt.Errorf("%w: start and end are required", ErrInvalidRange)
	}
	if !status.IsValid() {
		return Range{}, fmt.Errorf("%w: %q", ErrInvalidStatus, string(status))
	}

	if start.After(end) {
		start, end = end, start
	}

	if days := start.DaysUntil(end) + 1; days > MaxRangeDays {
		return Range{}, fmt.Errorf("%w: %w: %d days, limit is %d", ErrInvalidRange, ErrRangeTooLong, days, MaxRangeDays)
	}

	return Range{Start: start, End: end, Status: status}, nil
}

// Interval возвращает диапазон как интервал
func (r Range) Interval() Interval {
	return Interval{Start: r.Start, End: r.End, Status: r.Status}
}

// Set набор интервалов доступности (порядок не имеет значения)
// Инвариант: никакой день не покрыт двумя интервалами. Пропуски допустимы.
type Set []Interval

// Sorted возвращает копию набора, упорядоченную по дате начала
func (s Set) Sorted() Set {
	out := make(Set, len(s))
	copy(out, s)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Start.Equal(out[j].Start) {
			return out[i].End.Before(out[j].End)
		}
		return out[i].Start.Before(out[j].Start)
	})
	return out
}

// Record интервал в том виде, в каком он хранится (сырые строки)
// Используется на границе с хранилищем, чтобы поврежденные записи доходили до диагностики, а не роняли чтение.
type Record struct {
	Start  string `json:"start" yaml:"start"`
	End    string `json:"end" yaml:"end"`
	Status string `json:"status" yaml:"status"`
}

// ToRecord конвертирует интервал в запись хранилища
func (i Interval) ToRecord() Record {
	return Record{
		Start:  i.Start.String(),
		End:    i.End.String(),
		Status: string(i.Status),
	}
}

// ToRecords конвертирует набор в записи хранилища
func ToRecords(set Set) []Record {
	records := make([]Record, len(set))
	for i, interval := range set {
		records[i] = interval.ToRecord()
	}
	return records
}

// DiagnosticReason причина, по которой запись была пропущена или исправлена
type DiagnosticReason string

const (
	ReasonBadStartDate   DiagnosticReason = "bad_start_date"
	ReasonBadEndDate     DiagnosticReason = "bad_end_date"
	ReasonUnknownStatus  DiagnosticReason = "unknown_status"
	ReasonInvertedBounds DiagnosticReason = "inverted_bounds"
	ReasonOverlap        DiagnosticReason = "overlap"
	ReasonRangeTooLong   DiagnosticReason = "range_too_long"
	ReasonInvalidRange   DiagnosticReason = "invalid_range"
)

// Diagnostic аномалия в сохраненных данных, обнаруженная движком
// Index - позиция записи во входном наборе.
type Diagnostic struct {
	Index  int              `json:"index"`
	Record Record           `json:"record"`
	Reason DiagnosticReason `json:"reason"`
	Detail string           `json:"detail,omitempty"`
}

func (d Diagnostic) String() string {
	if d.Detail == "" {
		return fmt.Sprintf("#%d %s: %+v", d.Index, d.Reason, d.Record)
	}
	return fmt.Sprintf("#%d %s (%s): %+v", d.Index, d.Reason, d.Detail, d.Record)
}
