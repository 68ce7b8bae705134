package availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CalendarService/internal/availability"
	"github.com/m04kA/SMC-CalendarService/internal/domain"
	calendarRepo "github.com/m04kA/SMC-CalendarService/internal/infra/storage/calendar"
	applyRange "github.com/m04kA/SMC-CalendarService/internal/usecase/apply_range"
	"github.com/m04kA/SMC-CalendarService/internal/usecase/usecasetest"
	"github.com/m04kA/SMC-CalendarService/pkg/logger"
	"github.com/m04kA/SMC-CalendarService/pkg/types"
)

type fakeCalendars struct {
	cal *domain.Calendar
	err error
}

func (f *fakeCalendars) GetBySlug(_ context.Context, slug string) (*domain.Calendar, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.cal == nil || f.cal.Slug != slug {
		return nil, calendarRepo.ErrCalendarNotFound
	}
	return f.cal, nil
}

type fakeIntervals struct {
	records []availability.Record
	loads   int
}

func (f *fakeIntervals) Load(context.Context, int64) ([]availability.Record, error) {
	f.loads++
	return f.records, nil
}

type mapCache struct {
	sets map[string]availability.Set
}

func (c *mapCache) Get(_ context.Context, slug string) (availability.Set, bool) {
	set, ok := c.sets[slug]
	return set, ok
}

func (c *mapCache) SetIfAbsent(_ context.Context, slug string, set availability.Set) {
	if _, ok := c.sets[slug]; !ok {
		c.sets[slug] = set
	}
}

type diagnosticCounter struct {
	reasons []string
}

func (c *diagnosticCounter) IncDiagnostic(reason string) {
	c.reasons = append(c.reasons, reason)
}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

func newTestService(cal *domain.Calendar, records []availability.Record) (*Service, *fakeIntervals, *mapCache, *diagnosticCounter) {
	intervals := &fakeIntervals{records: records}
	cache := &mapCache{sets: map[string]availability.Set{}}
	counter := &diagnosticCounter{}
	clock := fixedClock{now: time.Date(2024, 1, 15, 23, 30, 0, 0, time.UTC)}

	svc := NewService(&fakeCalendars{cal: cal}, intervals, cache, counter, clock, logger.NewNop())
	return svc, intervals, cache, counter
}

func mainCalendar() *domain.Calendar {
	cal := domain.NewDefaultCalendar("main")
	cal.ID = 1
	return cal
}

func TestGetSet_ParsesSortsAndCaches(t *testing.T) {
	svc, intervals, cache, counter := newTestService(mainCalendar(), []availability.Record{
		{Start: "2024-01-10", End: "2024-01-12", Status: "Niedostępny"},
		{Start: "2024-01-01", End: "2024-01-05", Status: "Dostępny"},
		{Start: "garbage", End: "2024-01-05", Status: "Dostępny"},
	})
	ctx := context.Background()

	set, err := svc.GetSet(ctx, "main")
	require.NoError(t, err)

	require.Len(t, set, 2)
	assert.Equal(t, "2024-01-01", set[0].Start.String())
	assert.Equal(t, availability.StatusUnavailable, set[1].Status)
	assert.Equal(t, []string{string(availability.ReasonBadStartDate)}, counter.reasons)
	assert.Len(t, cache.sets["main"], 2)

	_, err = svc.GetSet(ctx, "main")
	require.NoError(t, err)
	assert.Equal(t, 1, intervals.loads)
}

func TestGetSet_UnknownCalendarIsEmpty(t *testing.T) {
	svc, intervals, _, _ := newTestService(nil, nil)

	set, err := svc.GetSet(context.Background(), "main")
	require.NoError(t, err)
	assert.Empty(t, set)
	assert.Equal(t, 0, intervals.loads)
}

func TestGetSet_RepositoryError(t *testing.T) {
	svc := NewService(&fakeCalendars{err: errors.New("db down")}, &fakeIntervals{},
		&mapCache{sets: map[string]availability.Set{}}, nil, fixedClock{}, logger.NewNop())

	_, err := svc.GetSet(context.Background(), "main")
	assert.ErrorIs(t, err, ErrInternal)
}

// interleavedLoad отдает записи, прочитанные до фиксации, и только потом запускает писателя
type interleavedLoad struct {
	store *usecasetest.Store
	write func()
}

func (l *interleavedLoad) Load(ctx context.Context, calendarID int64) ([]availability.Record, error) {
	records, err := l.store.Load(ctx, calendarID)
	if l.write != nil {
		write := l.write
		l.write = nil
		write()
	}
	return records, err
}

func TestGetSet_StaleReadDoesNotOverwriteCommittedSet(t *testing.T) {
	store := usecasetest.NewStore()
	store.Seed("main", availability.Record{Start: "2024-01-01", End: "2024-01-31", Status: "Dostępny"})
	cache := &usecasetest.Cache{}
	ctx := context.Background()

	writer := applyRange.NewUseCase(store, store, cache, &usecasetest.TxManager{}, nil, logger.NewNop())
	var committed availability.Set
	load := &interleavedLoad{store: store, write: func() {
		resp, err := writer.Execute(ctx, &applyRange.Request{
			Slug: "main", Start: "2024-01-10", End: "2024-01-12", Status: "Niedostępny",
		})
		require.NoError(t, err)
		committed = resp.Availabilities
	}}

	svc := NewService(store, load, cache, nil, fixedClock{}, logger.NewNop())

	// Читатель получил старый набор, но кеш остается за писателем
	stale, err := svc.GetSet(ctx, "main")
	require.NoError(t, err)
	assert.Len(t, stale, 1)

	cached, ok := cache.Get(ctx, "main")
	require.True(t, ok)
	assert.Equal(t, committed, cached)

	fresh, err := svc.GetSet(ctx, "main")
	require.NoError(t, err)
	require.Len(t, fresh, 3)
	assert.Equal(t, availability.StatusUnavailable, fresh[1].Status)
}

func TestStatusForDate(t *testing.T) {
	svc, _, _, _ := newTestService(mainCalendar(), []availability.Record{
		{Start: "2024-01-01", End: "2024-01-05", Status: "Częściowo dostępny"},
	})
	ctx := context.Background()

	status, ok, err := svc.StatusForDate(ctx, "main", types.MustParseDate("2024-01-05"))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, availability.StatusPartiallyAvailable, status)

	_, ok, err = svc.StatusForDate(ctx, "main", types.MustParseDate("2024-01-06"))
	require.NoError(t, err)
	assert.False(t, ok)

	_, _, err = svc.StatusForDate(ctx, "main", types.Date{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestMonthView_MondayStart(t *testing.T) {
	svc, _, _, _ := newTestService(mainCalendar(), []availability.Record{
		{Start: "2023-12-30", End: "2024-01-02", Status: "Dostępny"},
		{Start: "2024-01-16", End: "2024-01-16", Status: "Niedostępny"},
	})

	view, err := svc.MonthView(context.Background(), "main", 2024, time.January, false)
	require.NoError(t, err)

	require.Len(t, view.Weeks, 5)
	first := view.Weeks[0][0]
	last := view.Weeks[4][6]
	assert.Equal(t, "2024-01-01", first.Date.String())
	assert.Equal(t, time.Monday, first.Date.Weekday())
	assert.Equal(t, "2024-02-04", last.Date.String())
	assert.False(t, last.InMonth)

	assert.True(t, first.Known)
	assert.Equal(t, availability.StatusAvailable, first.Status)
	assert.Nil(t, first.Interval)

	// 23:30 UTC 15 января - уже 16 января в Варшаве
	jan16 := view.Weeks[2][1]
	assert.Equal(t, "2024-01-16", jan16.Date.String())
	assert.True(t, jan16.IsToday)
	assert.Equal(t, availability.StatusUnavailable, jan16.Status)

	assert.False(t, view.Weeks[1][0].Known)

	counts := view.CountByStatus()
	assert.Equal(t, 2, counts[availability.StatusAvailable])
	assert.Equal(t, 1, counts[availability.StatusUnavailable])
}

func TestMonthView_SundayStartAdmin(t *testing.T) {
	cal := mainCalendar()
	cal.WeekStart = domain.WeekStartSunday
	svc, _, _, _ := newTestService(cal, []availability.Record{
		{Start: "2023-12-30", End: "2024-01-02", Status: "Dostępny"},
	})

	view, err := svc.MonthView(context.Background(), "main", 2024, time.January, true)
	require.NoError(t, err)

	first := view.Weeks[0][0]
	assert.Equal(t, "2023-12-31", first.Date.String())
	assert.Equal(t, time.Sunday, first.Date.Weekday())
	assert.Equal(t, "2024-02-03", view.Weeks[len(view.Weeks)-1][6].Date.String())

	require.NotNil(t, first.Interval)
	assert.Equal(t, "2023-12-30", first.Interval.Start.String())
	assert.Equal(t, "2024-01-02", first.Interval.End.String())
	assert.Nil(t, view.Weeks[0][5].Interval)
}

func TestMonthView_InvalidMonth(t *testing.T) {
	svc, _, _, _ := newTestService(mainCalendar(), nil)

	_, err := svc.MonthView(context.Background(), "main", 2024, time.Month(13), false)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
