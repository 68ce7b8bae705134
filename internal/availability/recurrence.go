package availability

import (
	"fmt"
	"strings"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/m04kA/SMC-CalendarService/pkg/types"
)

// MaxRuleOccurrences ограничение на количество дней, порождаемых одним правилом
const MaxRuleOccurrences = 366

// ExpandRule разворачивает правило iCalendar (например FREQ=WEEKLY;BYDAY=SU) в список дней [from, until]
// Отсчет правила начинается с from. Если дней больше max, возвращается ErrInvalidRule.
func ExpandRule(rule string, from, until types.Date, max int) ([]types.Date, error) {
	if from.IsZero() || until.IsZero() {
		return nil, fmt.Errorf("%w: from and until are required", ErrInvalidRange)
	}
	if from.After(until) {
		from, until = until, from
	}
	if max <= 0 {
		max = MaxRuleOccurrences
	}

	rule = strings.TrimPrefix(strings.TrimSpace(rule), "RRULE:")
	if rule == "" {
		return nil, fmt.Errorf("%w: empty rule", ErrInvalidRule)
	}

	r, err := rrule.StrToRRule(rule)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRule, err)
	}
	// Календарь дневной, правила чаще чем раз в час не имеют смысла
	if r.OrigOptions.Freq > rrule.HOURLY {
		return nil, fmt.Errorf("%w: frequency below one hour is not supported", ErrInvalidRule)
	}
	r.DTStart(from.Time())

	// Последний день включительно, даже если правило задает BYHOUR
	end := until.AddDays(1).Time().Add(-time.Second)
	if u := r.GetUntil(); u.IsZero() || u.After(end) {
		r.Until(end)
	}

	// Несколько вхождений в один день (BYHOUR) дают один день
	days := make([]types.Date, 0)
	next := r.Iterator()
	for occ, ok := next(); ok; occ, ok = next() {
		if occ.After(end) {
			break
		}
		day := types.DateOf(occ)
		if len(days) > 0 && days[len(days)-1].Equal(day) {
			continue
		}
		if len(days) == max {
			return nil, fmt.Errorf("%w: rule yields more than %d days", ErrInvalidRule, max)
		}
		days = append(days, day)
	}

	return days, nil
}

// ApplyRule применяет каждое вхождение правила как однодневный диапазон через ApplyRange
// Диагностика входного набора возвращается один раз, по первому применению.
func ApplyRule(existing Set, rule string, from, until types.Date, status Status) (Result, error) {
	return applyRule(existing, nil, rule, from, until, status)
}

// ApplyRuleToRecords разбирает сохраненные записи и применяет к ним правило
// Index в диагностике - позиция записи в records.
func ApplyRuleToRecords(records []Record, rule string, from, until types.Date, status Status) (Result, error) {
	existing, positions, diagnostics := fromRecords(records)
	result, err := applyRule(existing, positions, rule, from, until, status)
	if err != nil {
		return Result{}, err
	}
	result.Diagnostics = append(diagnostics, result.Diagnostics...)
	return result, nil
}

func applyRule(existing Set, positions []int, rule string, from, until types.Date, status Status) (Result, error) {
	if !status.IsValid() {
		return Result{}, fmt.Errorf("%w: %q", ErrInvalidStatus, string(status))
	}

	days, err := ExpandRule(rule, from, until, MaxRuleOccurrences)
	if err != nil {
		return Result{}, err
	}

	// Входной набор чистится даже если правило не дало ни одного дня
	clean, diagnostics := sanitize(existing, positions)
	result := Result{Set: clean.Sorted(), Diagnostics: diagnostics}

	for _, day := range days {
		r, err := NewRange(day, day, status)
		if err != nil {
			return Result{}, err
		}
		result.Set = ApplyRange(result.Set, r).Set
	}

	return result, nil
}
