package import_records

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-CalendarService/internal/availability"
	"github.com/m04kA/SMC-CalendarService/internal/domain"
)

const source = "import"

// Результаты импорта отдельной записи для метрик
const (
	resultApplied = "applied"
	resultSkipped = "skipped"
)

// UseCase use case для импорта записей старого календаря
type UseCase struct {
	calendarRepo     CalendarRepository
	availabilityRepo AvailabilityRepository
	cache            Cache
	txManager        TransactionManager
	metrics          Metrics
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	calendarRepo CalendarRepository,
	availabilityRepo AvailabilityRepository,
	cache Cache,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		calendarRepo:     calendarRepo,
		availabilityRepo: availabilityRepo,
		cache:            cache,
		txManager:        txManager,
		metrics:          metrics,
		logger:           logger,
	}
}

// Execute проигрывает записи файла в порядке следования, как последовательные отправки формы
// Некорректные записи пропускаются и возвращаются в Skipped; импорт целиком не отменяется.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ImportRecords: calendar=%s, records=%d, replace=%t", req.Slug, len(req.Records), req.Replace)

	// 1. Валидация запроса
	if err := domain.ValidateSlug(req.Slug); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if len(req.Records) > domain.MaxImportRecords {
		return nil, fmt.Errorf("%w: %w: %d records", ErrInvalidInput, ErrTooManyRecords, len(req.Records))
	}

	// 2. Разбираем записи до начала транзакции
	ranges, skipped := buildRanges(req.Records)
	if len(ranges) == 0 && !req.Replace {
		uc.logger.Warn("ImportRecords: calendar=%s nothing to apply, skipped=%d", req.Slug, len(skipped))
		uc.recordMetrics(nil, skipped, nil)
		return &Response{CalendarSlug: req.Slug, Skipped: skipped}, nil
	}

	var (
		set         availability.Set
		diagnostics []availability.Diagnostic
	)

	// 3. Read-modify-write в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		diagnostics = nil

		cal, err := uc.calendarRepo.EnsureBySlug(txCtx, req.Slug)
		if err != nil {
			return fmt.Errorf("%w: lock calendar: %w", ErrInternal, err)
		}

		var stored []availability.Record
		if !req.Replace {
			stored, err = uc.availabilityRepo.Load(txCtx, cal.ID)
			if err != nil {
				return fmt.Errorf("%w: load intervals: %w", ErrInternal, err)
			}
		}

		// Первый диапазон применяется к сохраненным записям, диагностика ссылается на их позиции
		set = availability.Set{}
		for i, r := range ranges {
			var result availability.Result
			if i == 0 {
				result = availability.ApplyRangeToRecords(stored, r)
				diagnostics = result.Diagnostics
			} else {
				result = availability.ApplyRange(set, r)
			}
			set = result.Set
		}

		if err := uc.availabilityRepo.Replace(txCtx, cal.ID, set); err != nil {
			return fmt.Errorf("%w: replace intervals: %w", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		uc.logger.Error("ImportRecords: calendar=%s transaction failed: %v", req.Slug, err)
		return nil, err
	}

	// 4. Кладем зафиксированный набор в кеш
	uc.cache.Store(ctx, req.Slug, set)

	// 5. Метрики и диагностика
	uc.recordMetrics(ranges, skipped, diagnostics)

	uc.logger.Info("ImportRecords: calendar=%s applied=%d skipped=%d intervals=%d",
		req.Slug, len(ranges), len(skipped), len(set))

	return &Response{
		CalendarSlug:   req.Slug,
		Applied:        len(ranges),
		Skipped:        skipped,
		Availabilities: set,
		Diagnostics:    diagnostics,
	}, nil
}

func (uc *UseCase) recordMetrics(ranges []availability.Range, skipped, diagnostics []availability.Diagnostic) {
	for _, d := range skipped {
		uc.logger.Warn("ImportRecords: skipped record %s", d)
	}
	for _, d := range diagnostics {
		uc.logger.Warn("ImportRecords: stored record anomaly %s", d)
	}

	if uc.metrics == nil {
		return
	}
	for _, r := range ranges {
		uc.metrics.IncImportedRecord(resultApplied)
		uc.metrics.IncRangeApplied(source, r.Status.Code())
	}
	for range skipped {
		uc.metrics.IncImportedRecord(resultSkipped)
	}
	for _, d := range diagnostics {
		uc.metrics.IncDiagnostic(string(d.Reason))
	}
}

// buildRanges превращает записи файла в диапазоны, Index в диагностике - позиция записи в файле
func buildRanges(records []availability.Record) ([]availability.Range, []availability.Diagnostic) {
	ranges := make([]availability.Range, 0, len(records))
	var skipped []availability.Diagnostic

	for i, rec := range records {
		parsed, diags := availability.FromRecords([]availability.Record{rec})
		if len(diags) > 0 {
			d := diags[0]
			d.Index = i
			skipped = append(skipped, d)
			continue
		}

		interval := parsed[0]
		r, err := availability.NewRange(interval.Start, interval.End, interval.Status)
		if err != nil {
			reason := availability.ReasonInvalidRange
			if errors.Is(err, availability.ErrRangeTooLong) {
				reason = availability.ReasonRangeTooLong
			}
			skipped = append(skipped, availability.Diagnostic{
				Index:  i,
				Record: rec,
				Reason: reason,
				Detail: err.Error(),
			})
			continue
		}
		ranges = append(ranges, r)
	}

	return ranges, skipped
}
