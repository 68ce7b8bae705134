package apply_range

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-CalendarService/internal/availability"
)

const source = "form"

// UseCase use case для применения диапазона дат со статусом
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

// Execute применяет диапазон к календарю
// Чтение, слияние и запись выполняются в одной сериализуемой транзакции под блокировкой строки календаря,
// поэтому параллельные отправки не теряют обновления друг друга.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ApplyRange: calendar=%s, start=%s, end=%s, status=%s", req.Slug, req.Start, req.End, req.Status)

	// 1. Валидация и нормализация диапазона
	r, err := buildRange(req)
	if err != nil {
		uc.logger.Warn("ApplyRange: validation failed: %v", err)
		return nil, err
	}

	var result availability.Result

	// 2. Read-modify-write в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Блокируем календарь
		cal, err := uc.calendarRepo.EnsureBySlug(txCtx, req.Slug)
		if err != nil {
			return fmt.Errorf("%w: lock calendar: %w", ErrInternal, err)
		}

		// 2.2. Загружаем сохраненные записи
		records, err := uc.availabilityRepo.Load(txCtx, cal.ID)
		if err != nil {
			return fmt.Errorf("%w: load intervals: %w", ErrInternal, err)
		}

		// 2.3. Применяем диапазон
		result = availability.ApplyRangeToRecords(records, r)

		// 2.4. Сохраняем новый набор целиком
		if err := uc.availabilityRepo.Replace(txCtx, cal.ID, result.Set); err != nil {
			return fmt.Errorf("%w: replace intervals: %w", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		uc.logger.Error("ApplyRange: calendar=%s transaction failed: %v", req.Slug, err)
		return nil, err
	}

	// 3. Кладем зафиксированный набор в кеш
	uc.cache.Store(ctx, req.Slug, result.Set)

	// 4. Метрики и диагностика
	if uc.metrics != nil {
		uc.metrics.IncRangeApplied(source, r.Status.Code())
	}
	for _, d := range result.Diagnostics {
		uc.logger.Warn("ApplyRange: calendar=%s stored record anomaly %s", req.Slug, d)
		if uc.metrics != nil {
			uc.metrics.IncDiagnostic(string(d.Reason))
		}
	}

	uc.logger.Info("ApplyRange: calendar=%s applied %s, intervals=%d", req.Slug, r.Interval(), len(result.Set))

	return &Response{
		CalendarSlug:   req.Slug,
		Applied:        r.Interval(),
		Availabilities: result.Set,
		Diagnostics:    result.Diagnostics,
	}, nil
}
