package prune_history

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-CalendarService/internal/availability"
	"github.com/m04kA/SMC-CalendarService/internal/domain"
	calendarRepo "github.com/m04kA/SMC-CalendarService/internal/infra/storage/calendar"
	"github.com/m04kA/SMC-CalendarService/pkg/types"
)

// Result результат очистки одного календаря
type Result struct {
	CalendarSlug string
	Cutoff       types.Date // Интервалы, закончившиеся раньше этой даты, удалены
	Removed      int
	Kept         int
	Diagnostics  []availability.Diagnostic
}

// UseCase use case для удаления устаревших интервалов
type UseCase struct {
	calendarRepo     CalendarRepository
	availabilityRepo AvailabilityRepository
	cache            Cache
	txManager        TransactionManager
	metrics          Metrics
	timeProvider     TimeProvider
	retentionDays    int
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
// retentionDays - сколько дней истории хранить; 0 - удалять все, что закончилось до сегодняшнего дня.
func NewUseCase(
	calendarRepo CalendarRepository,
	availabilityRepo AvailabilityRepository,
	cache Cache,
	txManager TransactionManager,
	metrics Metrics,
	retentionDays int,
	logger Logger,
) *UseCase {
	return &UseCase{
		calendarRepo:     calendarRepo,
		availabilityRepo: availabilityRepo,
		cache:            cache,
		txManager:        txManager,
		metrics:          metrics,
		timeProvider:     &RealTimeProvider{},
		retentionDays:    retentionDays,
		logger:           logger,
	}
}

// WithTimeProvider подменяет источник времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// ExecuteAll очищает все календари, ошибка одного не останавливает остальные
func (uc *UseCase) ExecuteAll(ctx context.Context) ([]*Result, error) {
	calendars, err := uc.calendarRepo.List(ctx)
	if err != nil {
		uc.logger.Error("PruneHistory: failed to list calendars: %v", err)
		return nil, fmt.Errorf("%w: list calendars: %w", ErrInternal, err)
	}

	results := make([]*Result, 0, len(calendars))
	var errs []error
	for _, cal := range calendars {
		res, err := uc.Execute(ctx, cal.Slug)
		if err != nil {
			errs = append(errs, fmt.Errorf("calendar %s: %w", cal.Slug, err))
			continue
		}
		results = append(results, res)
	}

	return results, errors.Join(errs...)
}

// Execute удаляет интервалы календаря, закончившиеся раньше чем retentionDays дней назад
// Интервал, заходящий в окно хранения, остается целиком.
func (uc *UseCase) Execute(ctx context.Context, slug string) (*Result, error) {
	if err := domain.ValidateSlug(slug); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	result := &Result{CalendarSlug: slug}
	var committed availability.Set

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		*result = Result{CalendarSlug: slug}
		committed = nil

		// 1. Блокируем календарь; если его нет, чистить нечего
		cal, err := uc.calendarRepo.LockBySlug(txCtx, slug)
		if errors.Is(err, calendarRepo.ErrCalendarNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%w: lock calendar: %w", ErrInternal, err)
		}

		// 2. Граница считается в часовом поясе календаря
		result.Cutoff = cal.Today(uc.timeProvider.Now()).AddDays(-uc.retentionDays)

		records, err := uc.availabilityRepo.Load(txCtx, cal.ID)
		if err != nil {
			return fmt.Errorf("%w: load intervals: %w", ErrInternal, err)
		}

		set, diagnostics := availability.FromRecords(records)
		result.Diagnostics = diagnostics

		// 3. Оставляем только интервалы, заканчивающиеся не раньше границы
		kept := make(availability.Set, 0, len(set))
		for _, interval := range set {
			if interval.End.Before(result.Cutoff) {
				result.Removed++
				continue
			}
			kept = append(kept, interval)
		}
		result.Kept = len(kept)

		if result.Removed == 0 && len(diagnostics) == 0 {
			return nil
		}

		committed = kept.Sorted()
		if err := uc.availabilityRepo.Replace(txCtx, cal.ID, committed); err != nil {
			return fmt.Errorf("%w: replace intervals: %w", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		uc.logger.Error("PruneHistory: calendar=%s failed: %v", slug, err)
		return nil, err
	}

	if result.Removed > 0 || len(result.Diagnostics) > 0 {
		uc.cache.Store(ctx, slug, committed)
	}

	if uc.metrics != nil {
		uc.metrics.AddPrunedIntervals(result.Removed)
	}
	for _, d := range result.Diagnostics {
		uc.logger.Warn("PruneHistory: calendar=%s dropped corrupt record %s", slug, d)
		if uc.metrics != nil {
			uc.metrics.IncDiagnostic(string(d.Reason))
		}
	}

	uc.logger.Info("PruneHistory: calendar=%s cutoff=%s removed=%d kept=%d",
		slug, result.Cutoff, result.Removed, result.Kept)

	return result, nil
}
