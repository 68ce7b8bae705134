package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-CalendarService/internal/availability"
	"github.com/m04kA/SMC-CalendarService/internal/domain"
	calendarRepo "github.com/m04kA/SMC-CalendarService/internal/infra/storage/calendar"
	"github.com/m04kA/SMC-CalendarService/pkg/types"
)

// Service сервис чтения доступности
type Service struct {
	calendarRepo     CalendarRepository
	availabilityRepo AvailabilityRepository
	cache            Cache
	metrics          Metrics
	timeProvider     TimeProvider
	logger           Logger
}

// NewService создает новый экземпляр сервиса доступности
func NewService(
	calendarRepo CalendarRepository,
	availabilityRepo AvailabilityRepository,
	cache Cache,
	metrics Metrics,
	timeProvider TimeProvider,
	logger Logger,
) *Service {
	return &Service{
		calendarRepo:     calendarRepo,
		availabilityRepo: availabilityRepo,
		cache:            cache,
		metrics:          metrics,
		timeProvider:     timeProvider,
		logger:           logger,
	}
}

// GetSet возвращает текущий набор интервалов календаря, отсортированный по дате начала
// Для ненастроенного календаря возвращается пустой набор.
func (s *Service) GetSet(ctx context.Context, slug string) (availability.Set, error) {
	_, set, err := s.load(ctx, slug)
	return set, err
}

// Snapshot возвращает настройки календаря вместе с набором (для выгрузок)
func (s *Service) Snapshot(ctx context.Context, slug string) (*domain.Calendar, availability.Set, error) {
	return s.load(ctx, slug)
}

// StatusForDate возвращает статус дня; false - нет информации
func (s *Service) StatusForDate(ctx context.Context, slug string, date types.Date) (availability.Status, bool, error) {
	if date.IsZero() {
		return "", false, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	set, err := s.GetSet(ctx, slug)
	if err != nil {
		return "", false, err
	}

	status, ok := availability.StatusForDate(set, date)
	return status, ok, nil
}

// MonthView строит сетку месяца из целых недель
// В режиме администратора каждый день дополнительно содержит покрывающий его интервал.
func (s *Service) MonthView(ctx context.Context, slug string, year int, month time.Month, admin bool) (*domain.MonthView, error) {
	if month < time.January || month > time.December || year < 1 {
		return nil, fmt.Errorf("%w: invalid month %d-%02d", ErrInvalidInput, year, month)
	}

	cal, set, err := s.load(ctx, slug)
	if err != nil {
		return nil, err
	}

	first := types.NewDate(year, month, 1)
	last := first.AddDays(daysIn(year, month) - 1)
	weekStart := cal.WeekStart.Weekday()

	// Сетка начинается с первого дня недели и заканчивается последним
	gridStart := first.AddDays(-((int(first.Weekday()) - int(weekStart) + 7) % 7))
	gridEnd := last.AddDays((int(weekStart) + 6 - int(last.Weekday()) + 7) % 7)

	today := cal.Today(s.timeProvider.Now())
	days := availability.Days(set, gridStart, gridEnd)

	view := &domain.MonthView{
		CalendarSlug: cal.Slug,
		Year:         year,
		Month:        month,
		WeekStart:    cal.WeekStart,
		Admin:        admin,
		Weeks:        make([][]domain.DayCell, 0, len(days)/7),
	}

	for i := 0; i < len(days); i += 7 {
		week := make([]domain.DayCell, 0, 7)
		for _, day := range days[i : i+7] {
			cell := domain.DayCell{
				Date:    day.Date,
				InMonth: day.Date.Month() == month,
				IsToday: day.Date.Equal(today),
				Status:  day.Status,
				Known:   day.Known,
			}
			if admin && day.Known {
				cell.Interval = coveringInterval(set, day.Date)
			}
			week = append(week, cell)
		}
		view.Weeks = append(view.Weeks, week)
	}

	return view, nil
}

// load возвращает настройки календаря и его набор
func (s *Service) load(ctx context.Context, slug string) (*domain.Calendar, availability.Set, error) {
	if err := domain.ValidateSlug(slug); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	cal, err := s.calendarRepo.GetBySlug(ctx, slug)
	if errors.Is(err, calendarRepo.ErrCalendarNotFound) {
		return domain.NewDefaultCalendar(slug), availability.Set{}, nil
	}
	if err != nil {
		s.logger.Error("load: failed to get calendar slug=%s: %v", slug, err)
		return nil, nil, fmt.Errorf("%w: load - get calendar: %v", ErrInternal, err)
	}

	if set, ok := s.cache.Get(ctx, slug); ok {
		return cal, set.Sorted(), nil
	}

	records, err := s.availabilityRepo.Load(ctx, cal.ID)
	if err != nil {
		s.logger.Error("load: failed to load intervals calendar=%s: %v", slug, err)
		return nil, nil, fmt.Errorf("%w: load - load intervals: %v", ErrInternal, err)
	}

	// Пересечения в сохраненных данных на чтении не исправляются, только сообщаются
	set, diagnostics := availability.InspectRecords(records)
	s.report(slug, diagnostics)

	set = set.Sorted()
	s.cache.SetIfAbsent(ctx, slug, set)

	return cal, set, nil
}

func (s *Service) report(slug string, diagnostics []availability.Diagnostic) {
	for _, d := range diagnostics {
		s.logger.Warn("load: calendar=%s stored record anomaly %s", slug, d)
		if s.metrics != nil {
			s.metrics.IncDiagnostic(string(d.Reason))
		}
	}
}

func coveringInterval(set availability.Set, date types.Date) *availability.Interval {
	for i := range set {
		if set[i].Contains(date) {
			interval := set[i]
			return &interval
		}
	}
	return nil
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
