package calendars

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
	calendarRepo "github.com/m04kA/SMC-CalendarService/internal/infra/storage/calendar"
	"github.com/m04kA/SMC-CalendarService/internal/service/calendars/models"
	"github.com/m04kA/SMC-CalendarService/pkg/logger"
)

type memoryRepo struct {
	bySlug map[string]*domain.Calendar
	nextID int64
	err    error
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{bySlug: map[string]*domain.Calendar{}}
}

func (r *memoryRepo) Create(_ context.Context, cal *domain.Calendar) (*domain.Calendar, error) {
	if r.err != nil {
		return nil, r.err
	}
	if _, ok := r.bySlug[cal.Slug]; ok {
		return nil, calendarRepo.ErrDuplicateSlug
	}
	r.nextID++
	cal.ID = r.nextID
	cal.CreatedAt = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	cal.UpdatedAt = cal.CreatedAt
	stored := *cal
	r.bySlug[cal.Slug] = &stored
	return cal, nil
}

func (r *memoryRepo) GetBySlug(_ context.Context, slug string) (*domain.Calendar, error) {
	if r.err != nil {
		return nil, r.err
	}
	cal, ok := r.bySlug[slug]
	if !ok {
		return nil, calendarRepo.ErrCalendarNotFound
	}
	out := *cal
	return &out, nil
}

func (r *memoryRepo) Update(_ context.Context, cal *domain.Calendar) (*domain.Calendar, error) {
	if r.err != nil {
		return nil, r.err
	}
	stored, ok := r.bySlug[cal.Slug]
	if !ok {
		return nil, calendarRepo.ErrCalendarNotFound
	}
	stored.Name, stored.Timezone, stored.WeekStart = cal.Name, cal.Timezone, cal.WeekStart
	out := *stored
	return &out, nil
}

func (r *memoryRepo) List(context.Context) ([]*domain.Calendar, error) {
	out := make([]*domain.Calendar, 0, len(r.bySlug))
	for _, cal := range r.bySlug {
		out = append(out, cal)
	}
	return out, r.err
}

func TestGet_DefaultsWhenMissing(t *testing.T) {
	svc := NewService(newMemoryRepo(), logger.NewNop())

	resp, err := svc.Get(context.Background(), "main")
	require.NoError(t, err)

	assert.Equal(t, "main", resp.Slug)
	assert.Equal(t, domain.DefaultTimezone, resp.Timezone)
	assert.Equal(t, string(domain.WeekStartMonday), resp.WeekStart)
	assert.False(t, resp.Configured)
	assert.Nil(t, resp.CreatedAt)
}

func TestGet_InvalidSlug(t *testing.T) {
	svc := NewService(newMemoryRepo(), logger.NewNop())

	for _, slug := range []string{"", "Main", "../etc", "-x"} {
		_, err := svc.Get(context.Background(), slug)
		assert.ErrorIs(t, err, ErrInvalidInput, slug)
	}
}

func TestUpsert_CreatesThenUpdates(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, logger.NewNop())
	ctx := context.Background()

	created, err := svc.Upsert(ctx, &models.UpsertCalendarRequest{Slug: "main", Name: "Złota rączka"})
	require.NoError(t, err)
	assert.True(t, created.Configured)
	assert.Equal(t, "Złota rączka", created.Name)
	assert.Equal(t, domain.DefaultTimezone, created.Timezone)

	updated, err := svc.Upsert(ctx, &models.UpsertCalendarRequest{
		Slug:      "main",
		Name:      "Złota rączka",
		Timezone:  "Europe/London",
		WeekStart: "sunday",
	})
	require.NoError(t, err)
	assert.Equal(t, "Europe/London", updated.Timezone)
	assert.Equal(t, "sunday", updated.WeekStart)
	assert.Len(t, repo.bySlug, 1)
}

func TestUpsert_Validation(t *testing.T) {
	svc := NewService(newMemoryRepo(), logger.NewNop())

	tests := []*models.UpsertCalendarRequest{
		{Slug: "main", Timezone: "Nowhere/City"},
		{Slug: "main", WeekStart: "wednesday"},
		{Slug: "main", Name: string(make([]rune, domain.MaxCalendarNameLength+1))},
		{Slug: "Bad Slug"},
	}

	for _, req := range tests {
		_, err := svc.Upsert(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	}
}

func TestUpsert_RepositoryError(t *testing.T) {
	repo := newMemoryRepo()
	repo.err = errors.New("connection refused")
	svc := NewService(repo, logger.NewNop())

	_, err := svc.Upsert(context.Background(), &models.UpsertCalendarRequest{Slug: "main"})
	assert.ErrorIs(t, err, ErrInternal)
}
