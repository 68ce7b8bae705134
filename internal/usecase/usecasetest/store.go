// Package usecasetest содержит in-memory реализации зависимостей use case для тестов
package usecasetest

import (
	"context"
	"sort"
	"sync"

	"github.com/m04kA/SMC-CalendarService/internal/availability"
	"github.com/m04kA/SMC-CalendarService/internal/domain"
	calendarRepo "github.com/m04kA/SMC-CalendarService/internal/infra/storage/calendar"
)

// Store хранилище календарей и записей в памяти
type Store struct {
	mu        sync.Mutex
	calendars map[string]*domain.Calendar
	records   map[int64][]availability.Record
	nextID    int64

	// Ошибки, которые вернут соответствующие методы
	LoadErr    error
	ReplaceErr error

	Replaces int
}

// NewStore создает пустое хранилище
func NewStore() *Store {
	return &Store{
		calendars: map[string]*domain.Calendar{},
		records:   map[int64][]availability.Record{},
	}
}

// Seed создает календарь с сохраненными записями
func (s *Store) Seed(slug string, records ...availability.Record) *domain.Calendar {
	s.mu.Lock()
	defer s.mu.Unlock()

	cal := s.ensure(slug)
	s.records[cal.ID] = append([]availability.Record(nil), records...)
	return cal
}

// Records возвращает сохраненные записи календаря
func (s *Store) Records(slug string) []availability.Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	cal, ok := s.calendars[slug]
	if !ok {
		return nil
	}
	return append([]availability.Record(nil), s.records[cal.ID]...)
}

func (s *Store) GetBySlug(_ context.Context, slug string) (*domain.Calendar, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cal, ok := s.calendars[slug]
	if !ok {
		return nil, calendarRepo.ErrCalendarNotFound
	}
	out := *cal
	return &out, nil
}

func (s *Store) EnsureBySlug(_ context.Context, slug string) (*domain.Calendar, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cal := *s.ensure(slug)
	return &cal, nil
}

func (s *Store) LockBySlug(_ context.Context, slug string) (*domain.Calendar, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cal, ok := s.calendars[slug]
	if !ok {
		return nil, calendarRepo.ErrCalendarNotFound
	}
	out := *cal
	return &out, nil
}

func (s *Store) List(context.Context) ([]*domain.Calendar, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*domain.Calendar, 0, len(s.calendars))
	for _, cal := range s.calendars {
		c := *cal
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Slug < out[j].Slug })
	return out, nil
}

func (s *Store) Load(_ context.Context, calendarID int64) ([]availability.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.LoadErr != nil {
		return nil, s.LoadErr
	}
	return append([]availability.Record(nil), s.records[calendarID]...), nil
}

func (s *Store) Replace(_ context.Context, calendarID int64, set availability.Set) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ReplaceErr != nil {
		return s.ReplaceErr
	}
	s.Replaces++
	s.records[calendarID] = availability.ToRecords(set)
	return nil
}

func (s *Store) ensure(slug string) *domain.Calendar {
	if cal, ok := s.calendars[slug]; ok {
		return cal
	}
	s.nextID++
	cal := domain.NewDefaultCalendar(slug)
	cal.ID = s.nextID
	s.calendars[slug] = cal
	return cal
}

// TxManager выполняет функцию сразу, считая вызовы
type TxManager struct {
	Calls int
}

func (m *TxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.Calls++
	return fn(ctx)
}

// Cache кеш наборов в памяти с семантикой Redis SET / SETNX / DEL
// Stored запоминает календари, для которых писатели сохранили зафиксированный набор.
type Cache struct {
	mu   sync.Mutex
	sets map[string]availability.Set

	Stored []string
}

func (c *Cache) Get(_ context.Context, slug string) (availability.Set, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	set, ok := c.sets[slug]
	return set, ok
}

func (c *Cache) SetIfAbsent(_ context.Context, slug string, set availability.Set) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.sets[slug]; ok {
		return
	}
	c.put(slug, set)
}

func (c *Cache) Store(_ context.Context, slug string, set availability.Set) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.Stored = append(c.Stored, slug)
	c.put(slug, set)
}

func (c *Cache) Invalidate(_ context.Context, slug string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.sets, slug)
}

func (c *Cache) put(slug string, set availability.Set) {
	if c.sets == nil {
		c.sets = map[string]availability.Set{}
	}
	c.sets[slug] = append(availability.Set{}, set...)
}

// Metrics запоминает доменные события
type Metrics struct {
	Applied     []string
	Diagnostics []string
	Pruned      int
	Imported    map[string]int
}

func (m *Metrics) IncRangeApplied(source, status string) {
	m.Applied = append(m.Applied, source+":"+status)
}

func (m *Metrics) IncDiagnostic(reason string) {
	m.Diagnostics = append(m.Diagnostics, reason)
}

func (m *Metrics) AddPrunedIntervals(n int) {
	m.Pruned += n
}

func (m *Metrics) IncImportedRecord(result string) {
	if m.Imported == nil {
		m.Imported = map[string]int{}
	}
	m.Imported[result]++
}
