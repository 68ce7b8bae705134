package availability

import (
	"fmt"

	"github.com/m04kA/SMC-CalendarService/pkg/types"
)

// Result результат применения диапазона
// Set - новый набор, полностью заменяющий предыдущий; Diagnostics - аномалии во входном наборе.
type Result struct {
	Set         Set
	Diagnostics []Diagnostic
}

// ApplyRange применяет новый диапазон к существующему набору
// Новый диапазон имеет приоритет над любым пересекающимся покрытием:
//
//  1. интервал не пересекается с диапазоном - остается без изменений
//  2. интервал целиком внутри диапазона - удаляется
//  3. интервал начинается раньше и заканчивается внутри (или на границе) - конец обрезается до r.Start-1
//  4. интервал начинается внутри и заканчивается позже - начало сдвигается на r.End+1
//  5. интервал накрывает диапазон с обеих сторон - делится на [s, r.Start-1] и [r.End+1, e]
//
// После этого диапазон добавляется одним интервалом. Смежные интервалы с одинаковым статусом не склеиваются.
//
// Некорректные интервалы во входном наборе пропускаются, пересекающиеся между собой - разрешаются
// в порядке хранения (более поздний побеждает). Все такие случаи попадают в Diagnostics.
func ApplyRange(existing Set, r Range) Result {
	return applyRange(existing, nil, r)
}

// ApplyRangeToRecords разбирает сохраненные записи и применяет к ним диапазон
// Index в диагностике - позиция записи в records, в том числе для пересечений.
func ApplyRangeToRecords(records []Record, r Range) Result {
	existing, positions, diagnostics := fromRecords(records)
	result := applyRange(existing, positions, r)
	result.Diagnostics = append(diagnostics, result.Diagnostics...)
	return result
}

func applyRange(existing Set, positions []int, r Range) Result {
	clean, diagnostics := sanitize(existing, positions)

	next := subtract(clean, r)
	next = append(next, r.Interval())

	return Result{
		Set:         next.Sorted(),
		Diagnostics: diagnostics,
	}
}

// StatusForDate возвращает статус интервала, содержащего дату
// Второе значение false означает "нет информации" - это не то же самое, что StatusUnavailable.
func StatusForDate(set Set, date types.Date) (Status, bool) {
	for _, interval := range set {
		if interval.Contains(date) {
			return interval.Status, true
		}
	}
	return "", false
}

// FromRecords парсит сохраненные записи
// Записи с битой датой, неизвестным статусом или перевернутыми границами пропускаются с диагностикой,
// чтобы одна поврежденная запись не блокировала все последующие обновления.
func FromRecords(records []Record) (Set, []Diagnostic) {
	set, _, diagnostics := fromRecords(records)
	return set, diagnostics
}

// InspectRecords разбирает записи и дополнительно сообщает о пересечениях, ничего не исправляя
func InspectRecords(records []Record) (Set, []Diagnostic) {
	set, positions, diagnostics := fromRecords(records)
	return set, append(diagnostics, validate(set, positions)...)
}

// fromRecords возвращает также позицию исходной записи для каждого интервала набора
func fromRecords(records []Record) (Set, []int, []Diagnostic) {
	set := make(Set, 0, len(records))
	positions := make([]int, 0, len(records))
	var diagnostics []Diagnostic

	for i, rec := range records {
		start, err := types.ParseDate(rec.Start)
		if err != nil {
			diagnostics = append(diagnostics, Diagnostic{Index: i, Record: rec, Reason: ReasonBadStartDate})
			continue
		}

		end, err := types.ParseDate(rec.End)
		if err != nil {
			diagnostics = append(diagnostics, Diagnostic{Index: i, Record: rec, Reason: ReasonBadEndDate})
			continue
		}

		status, err := ParseStatus(rec.Status)
		if err != nil {
			diagnostics = append(diagnostics, Diagnostic{Index: i, Record: rec, Reason: ReasonUnknownStatus})
			continue
		}

		if start.After(end) {
			diagnostics = append(diagnostics, Diagnostic{Index: i, Record: rec, Reason: ReasonInvertedBounds})
			continue
		}

		set = append(set, Interval{Start: start, End: end, Status: status})
		positions = append(positions, i)
	}

	return set, positions, diagnostics
}

// Validate проверяет инварианты набора, ничего не исправляя
func Validate(set Set) []Diagnostic {
	return validate(set, nil)
}

func validate(set Set, positions []int) []Diagnostic {
	var diagnostics []Diagnostic

	for i, interval := range set {
		if reason, ok := invalidReason(interval); ok {
			diagnostics = append(diagnostics, Diagnostic{Index: position(positions, i), Record: interval.ToRecord(), Reason: reason})
		}
	}

	for i := 0; i < len(set); i++ {
		for j := i + 1; j < len(set); j++ {
			if set[i].IsValid() && set[j].IsValid() && set[i].Overlaps(set[j]) {
				diagnostics = append(diagnostics, Diagnostic{
					Index:  position(positions, j),
					Record: set[j].ToRecord(),
					Reason: ReasonOverlap,
					Detail: fmt.Sprintf("overlaps #%d %s", position(positions, i), set[i]),
				})
			}
		}
	}

	return diagnostics
}

// DayStatus статус конкретного дня
type DayStatus struct {
	Date   types.Date
	Status Status
	Known  bool
}

// Days разворачивает набор в статусы по дням в диапазоне [from, to]
func Days(set Set, from, to types.Date) []DayStatus {
	if from.After(to) {
		from, to = to, from
	}

	days := make([]DayStatus, 0, from.DaysUntil(to)+1)
	for d := from; !d.After(to); d = d.AddDays(1) {
		status, known := StatusForDate(set, d)
		days = append(days, DayStatus{Date: d, Status: status, Known: known})
	}
	return days
}

// sanitize отбрасывает некорректные интервалы и разрешает пересечения между оставшимися
// positions[i] - индекс, под которым existing[i] сообщается в диагностике; nil - сама позиция i.
func sanitize(existing Set, positions []int) (Set, []Diagnostic) {
	var diagnostics []Diagnostic

	clean := make(Set, 0, len(existing))
	overlapping := false

	for i, interval := range existing {
		if reason, ok := invalidReason(interval); ok {
			diagnostics = append(diagnostics, Diagnostic{Index: position(positions, i), Record: interval.ToRecord(), Reason: reason})
			continue
		}
		for _, kept := range clean {
			if kept.Overlaps(interval) {
				overlapping = true
				break
			}
		}
		clean = append(clean, interval)
	}

	if !overlapping {
		return clean, diagnostics
	}

	// Проигрываем интервалы в порядке хранения, как последовательные отправки формы
	replayed := make(Set, 0, len(clean))
	for i, interval := range existing {
		if _, bad := invalidReason(interval); bad {
			continue
		}
		for _, kept := range replayed {
			if kept.Overlaps(interval) {
				diagnostics = append(diagnostics, Diagnostic{
					Index:  position(positions, i),
					Record: interval.ToRecord(),
					Reason: ReasonOverlap,
					Detail: fmt.Sprintf("overrides %s", kept),
				})
				break
			}
		}
		replayed = subtract(replayed, Range{Start: interval.Start, End: interval.End, Status: interval.Status})
		replayed = append(replayed, interval)
	}

	return replayed, diagnostics
}

// subtract убирает из набора все дни диапазона r (случаи 1-5)
func subtract(set Set, r Range) Set {
	out := make(Set, 0, len(set)+1)

	for _, interval := range set {
		// 1. Не пересекается
		if interval.End.Before(r.Start) || interval.Start.After(r.End) {
			out = append(out, interval)
			continue
		}

		startsBefore := interval.Start.Before(r.Start)
		endsAfter := interval.End.After(r.End)

		switch {
		// 5. Накрывает диапазон с обеих сторон - делим
		case startsBefore && endsAfter:
			out = append(out,
				Interval{Start: interval.Start, End: r.Start.AddDays(-1), Status: interval.Status},
				Interval{Start: r.End.AddDays(1), End: interval.End, Status: interval.Status},
			)

		// 3. Начинается раньше, заканчивается внутри или на границе - обрезаем конец
		case startsBefore:
			out = append(out, Interval{Start: interval.Start, End: r.Start.AddDays(-1), Status: interval.Status})

		// 4. Начинается внутри, заканчивается позже - сдвигаем начало
		case endsAfter:
			out = append(out, Interval{Start: r.End.AddDays(1), End: interval.End, Status: interval.Status})

		// 2. Целиком внутри - вытесняется новым диапазоном
		default:
		}
	}

	return out
}

func position(positions []int, i int) int {
	if positions == nil {
		return i
	}
	return positions[i]
}

func invalidReason(interval Interval) (DiagnosticReason, bool) {
	switch {
	case interval.Start.IsZero():
		return ReasonBadStartDate, true
	case interval.End.IsZero():
		return ReasonBadEndDate, true
	case !interval.Status.IsValid():
		return ReasonUnknownStatus, true
	case interval.Start.After(interval.End):
		return ReasonInvertedBounds, true
	default:
		return "", false
	}
}
