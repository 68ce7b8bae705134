package availability

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-CalendarService/internal/availability"
	"github.com/m04kA/SMC-CalendarService/pkg/dbmetrics"
	"github.com/m04kA/SMC-CalendarService/pkg/psqlbuilder"
)

const table = "availability_intervals"

// insertBatchSize ограничение строк в одном INSERT (лимит плейсхолдеров PostgreSQL - 65535)
const insertBatchSize = 1000

// Repository репозиторий интервалов доступности
// Набор календаря всегда перезаписывается целиком, порядок записей сохраняется в колонке position.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория интервалов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Load читает сохраненные записи календаря в порядке сохранения
// Значения возвращаются как есть (строками): разбор и проверка - задача движка.
func (r *Repository) Load(ctx context.Context, calendarID int64) ([]availability.Record, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("start_date", "end_date", "status").
		From(table).
		Where(squirrel.Eq{"calendar_id": calendarID}).
		OrderBy("position ASC", "id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Load - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: Load - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	records := make([]availability.Record, 0)
	for rows.Next() {
		var rec availability.Record
		if err := rows.Scan(&rec.Start, &rec.End, &rec.Status); err != nil {
			return nil, fmt.Errorf("%w: Load - scan row: %w", ErrScanRow, err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: Load - rows error: %w", ErrScanRow, err)
	}

	return records, nil
}

// Replace заменяет набор календаря новым
// Требует транзакцию в контексте: удаление и вставка должны быть атомарными.
func (r *Repository) Replace(ctx context.Context, calendarID int64, set availability.Set) error {
	if !dbmetrics.IsInTransaction(ctx) {
		return ErrTransactionRequired
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(table).
		Where(squirrel.Eq{"calendar_id": calendarID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Replace - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Replace - execute delete: %w", ErrExecQuery, err)
	}

	records := availability.ToRecords(set)
	for from := 0; from < len(records); from += insertBatchSize {
		to := min(from+insertBatchSize, len(records))

		insertBuilder := psqlbuilder.Insert(table).
			Columns("calendar_id", "position", "start_date", "end_date", "status")
		for i := from; i < to; i++ {
			insertBuilder = insertBuilder.Values(calendarID, i, records[i].Start, records[i].End, records[i].Status)
		}

		query, args, err := insertBuilder.ToSql()
		if err != nil {
			return fmt.Errorf("%w: Replace - build insert query: %v", ErrBuildQuery, err)
		}

		if _, err := executor.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("%w: Replace - execute insert: %w", ErrExecQuery, err)
		}
	}

	return nil
}
