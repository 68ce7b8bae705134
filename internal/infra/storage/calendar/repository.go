package calendar

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
	"github.com/m04kA/SMC-CalendarService/pkg/dbmetrics"
	"github.com/m04kA/SMC-CalendarService/pkg/psqlbuilder"
)

const table = "calendars"

var columns = []string{
	"id",
	"slug",
	"name",
	"timezone",
	"week_start",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с настройками календарей
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория календарей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает календарь
// Если в контексте передана активная транзакция, использует её
func (r *Repository) Create(ctx context.Context, cal *domain.Calendar) (*domain.Calendar, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns("slug", "name", "timezone", "week_start").
		Values(cal.Slug, cal.Name, cal.Timezone, string(cal.WeekStart)).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&cal.ID, &createdAt, &updatedAt)
	if isUniqueViolation(err) {
		return nil, ErrDuplicateSlug
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	cal.CreatedAt = createdAt.Time
	cal.UpdatedAt = updatedAt.Time

	return cal, nil
}

// GetBySlug получает календарь по slug
func (r *Repository) GetBySlug(ctx context.Context, slug string) (*domain.Calendar, error) {
	return r.getBySlug(ctx, slug, false)
}

// LockBySlug получает календарь с блокировкой строки (SELECT ... FOR UPDATE)
// Должен вызываться внутри транзакции: так все записи в один календарь выполняются последовательно.
func (r *Repository) LockBySlug(ctx context.Context, slug string) (*domain.Calendar, error) {
	return r.getBySlug(ctx, slug, dbmetrics.IsInTransaction(ctx))
}

func (r *Repository) getBySlug(ctx context.Context, slug string, forUpdate bool) (*domain.Calendar, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"slug": slug})

	if forUpdate {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetBySlug - build select query: %v", ErrBuildQuery, err)
	}

	cal, err := scanCalendar(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCalendarNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetBySlug - scan calendar: %w", ErrScanRow, err)
	}

	return cal, nil
}

// List получает все календари, упорядоченные по slug
func (r *Repository) List(ctx context.Context) ([]*domain.Calendar, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		OrderBy("slug ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	calendars := make([]*domain.Calendar, 0)
	for rows.Next() {
		cal, err := scanCalendar(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %w", ErrScanRow, err)
		}
		calendars = append(calendars, cal)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %w", ErrScanRow, err)
	}

	return calendars, nil
}

// Update обновляет настройки календаря по slug
func (r *Repository) Update(ctx context.Context, cal *domain.Calendar) (*domain.Calendar, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("name", cal.Name).
		Set("timezone", cal.Timezone).
		Set("week_start", string(cal.WeekStart)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"slug": cal.Slug}).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&cal.ID, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCalendarNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %w", ErrExecQuery, err)
	}

	cal.CreatedAt = createdAt.Time
	cal.UpdatedAt = updatedAt.Time

	return cal, nil
}

// EnsureBySlug возвращает календарь с блокировкой, создавая его с настройками по умолчанию при отсутствии
func (r *Repository) EnsureBySlug(ctx context.Context, slug string) (*domain.Calendar, error) {
	cal, err := r.LockBySlug(ctx, slug)
	if err == nil {
		return cal, nil
	}
	if !errors.Is(err, ErrCalendarNotFound) {
		return nil, err
	}

	created, err := r.Create(ctx, domain.NewDefaultCalendar(slug))
	if err != nil {
		return nil, err
	}
	return created, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanCalendar(row rowScanner) (*domain.Calendar, error) {
	var cal domain.Calendar
	var weekStart string
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&cal.ID,
		&cal.Slug,
		&cal.Name,
		&cal.Timezone,
		&weekStart,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	cal.WeekStart = domain.WeekStart(weekStart)
	cal.CreatedAt = createdAt.Time
	cal.UpdatedAt = updatedAt.Time

	return &cal, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
