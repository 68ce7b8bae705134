package apply_recurring

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-CalendarService/internal/availability"
	"github.com/m04kA/SMC-CalendarService/internal/domain"
	"github.com/m04kA/SMC-CalendarService/pkg/types"
)

const source = "recurring"

// UseCase use case для применения повторяющегося правила (например, все воскресенья недоступны)
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

// Execute разворачивает правило в дни и применяет каждый день как однодневный диапазон
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ApplyRecurring: calendar=%s, rule=%s, from=%s, until=%s, status=%s",
		req.Slug, req.Rule, req.From, req.Until, req.Status)

	// 1. Валидация входных данных
	from, until, status, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("ApplyRecurring: validation failed: %v", err)
		return nil, err
	}

	// 2. Разворачиваем правило заранее, чтобы ошибка правила не открывала транзакцию
	days, err := availability.ExpandRule(req.Rule, from, until, availability.MaxRuleOccurrences)
	if err != nil {
		uc.logger.Warn("ApplyRecurring: invalid rule %q: %v", req.Rule, err)
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	var result availability.Result

	// 3. Read-modify-write в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		cal, err := uc.calendarRepo.EnsureBySlug(txCtx, req.Slug)
		if err != nil {
			return fmt.Errorf("%w: lock calendar: %w", ErrInternal, err)
		}

		records, err := uc.availabilityRepo.Load(txCtx, cal.ID)
		if err != nil {
			return fmt.Errorf("%w: load intervals: %w", ErrInternal, err)
		}

		result, err = availability.ApplyRuleToRecords(records, req.Rule, from, until, status)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}

		if err := uc.availabilityRepo.Replace(txCtx, cal.ID, result.Set); err != nil {
			return fmt.Errorf("%w: replace intervals: %w", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		uc.logger.Error("ApplyRecurring: calendar=%s transaction failed: %v", req.Slug, err)
		return nil, err
	}

	// 4. Обновляем кеш, пишем метрики
	uc.cache.Store(ctx, req.Slug, result.Set)

	if uc.metrics != nil {
		for range days {
			uc.metrics.IncRangeApplied(source, status.Code())
		}
	}
	for _, d := range result.Diagnostics {
		uc.logger.Warn("ApplyRecurring: calendar=%s stored record anomaly %s", req.Slug, d)
		if uc.metrics != nil {
			uc.metrics.IncDiagnostic(string(d.Reason))
		}
	}

	uc.logger.Info("ApplyRecurring: calendar=%s applied %d day(s), intervals=%d", req.Slug, len(days), len(result.Set))

	return &Response{
		CalendarSlug:   req.Slug,
		Days:           days,
		Availabilities: result.Set,
		Diagnostics:    result.Diagnostics,
	}, nil
}

// validateRequest проверяет календарь, даты и статус
func validateRequest(req *Request) (types.Date, types.Date, availability.Status, error) {
	if err := domain.ValidateSlug(req.Slug); err != nil {
		return types.Date{}, types.Date{}, "", fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	from, err := types.ParseDate(req.From)
	if err != nil {
		return types.Date{}, types.Date{}, "", fmt.Errorf("%w: %w: from: %v", ErrInvalidInput, availability.ErrInvalidRange, err)
	}

	until, err := types.ParseDate(req.Until)
	if err != nil {
		return types.Date{}, types.Date{}, "", fmt.Errorf("%w: %w: until: %v", ErrInvalidInput, availability.ErrInvalidRange, err)
	}

	if from.After(until) {
		from, until = until, from
	}
	if days := from.DaysUntil(until) + 1; days > availability.MaxRangeDays {
		return types.Date{}, types.Date{}, "", fmt.Errorf("%w: %w: %d days exceeds limit of %d",
			ErrInvalidInput, availability.ErrInvalidRange, days, availability.MaxRangeDays)
	}

	status, err := availability.ParseStatus(req.Status)
	if err != nil {
		return types.Date{}, types.Date{}, "", fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	return from, until, status, nil
}
