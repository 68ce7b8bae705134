package calendars

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
	calendarRepo "github.com/m04kA/SMC-CalendarService/internal/infra/storage/calendar"
	"github.com/m04kA/SMC-CalendarService/internal/service/calendars/models"
)

// Service сервис для работы с настройками календарей
type Service struct {
	calendarRepo CalendarRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса календарей
func NewService(calendarRepo CalendarRepository, logger Logger) *Service {
	return &Service{
		calendarRepo: calendarRepo,
		logger:       logger,
	}
}

// Get получает настройки календаря
// Публичный метод. Если календарь еще не настроен, возвращает значения по умолчанию.
func (s *Service) Get(ctx context.Context, slug string) (*models.CalendarResponse, error) {
	if err := domain.ValidateSlug(slug); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	cal, err := s.calendarRepo.GetBySlug(ctx, slug)
	if errors.Is(err, calendarRepo.ErrCalendarNotFound) {
		return models.FromDomainCalendar(domain.NewDefaultCalendar(slug)), nil
	}
	if err != nil {
		s.logger.Error("Get: failed to get calendar slug=%s: %v", slug, err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainCalendar(cal), nil
}

// List получает все сохраненные календари
func (s *Service) List(ctx context.Context) ([]*models.CalendarResponse, error) {
	calendars, err := s.calendarRepo.List(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	resp := make([]*models.CalendarResponse, 0, len(calendars))
	for _, cal := range calendars {
		resp = append(resp, models.FromDomainCalendar(cal))
	}
	return resp, nil
}

// Upsert создает календарь или обновляет его настройки
// Доступно только администратору
func (s *Service) Upsert(ctx context.Context, req *models.UpsertCalendarRequest) (*models.CalendarResponse, error) {
	s.logger.Info("Upsert: saving calendar slug=%s", req.Slug)

	// 1. Валидируем входные данные
	cal := req.ToDomainCalendar()
	if err := s.validateCalendar(cal); err != nil {
		s.logger.Warn("Upsert: validation failed: %v", err)
		return nil, err
	}

	// 2. Обновляем существующий календарь
	updated, err := s.calendarRepo.Update(ctx, cal)
	if err == nil {
		s.logger.Info("Upsert: updated calendar id=%d slug=%s", updated.ID, updated.Slug)
		return models.FromDomainCalendar(updated), nil
	}
	if !errors.Is(err, calendarRepo.ErrCalendarNotFound) {
		s.logger.Error("Upsert: failed to update calendar slug=%s: %v", cal.Slug, err)
		return nil, fmt.Errorf("%w: Upsert - update: %v", ErrInternal, err)
	}

	// 3. Календаря нет - создаем
	created, err := s.calendarRepo.Create(ctx, cal)
	if errors.Is(err, calendarRepo.ErrDuplicateSlug) {
		// Параллельный запрос успел создать календарь
		updated, err = s.calendarRepo.Update(ctx, cal)
		if err == nil {
			return models.FromDomainCalendar(updated), nil
		}
	}
	if err != nil {
		s.logger.Error("Upsert: failed to create calendar slug=%s: %v", cal.Slug, err)
		return nil, fmt.Errorf("%w: Upsert - create: %v", ErrInternal, err)
	}

	s.logger.Info("Upsert: created calendar id=%d slug=%s", created.ID, created.Slug)
	return models.FromDomainCalendar(created), nil
}

// validateCalendar валидирует настройки календаря
func (s *Service) validateCalendar(cal *domain.Calendar) error {
	if err := domain.ValidateSlug(cal.Slug); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if n := utf8.RuneCountInString(cal.Name); n == 0 || n > domain.MaxCalendarNameLength {
		return fmt.Errorf("%w: name must be between 1 and %d characters", ErrInvalidInput, domain.MaxCalendarNameLength)
	}

	if _, err := time.LoadLocation(cal.Timezone); err != nil {
		return fmt.Errorf("%w: unknown timezone %q", ErrInvalidInput, cal.Timezone)
	}

	if !cal.WeekStart.IsValid() {
		return fmt.Errorf("%w: weekStart must be %q or %q", ErrInvalidInput, domain.WeekStartMonday, domain.WeekStartSunday)
	}

	return nil
}
