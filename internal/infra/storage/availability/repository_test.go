package availability

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CalendarService/internal/availability"
	"github.com/m04kA/SMC-CalendarService/pkg/dbmetrics"
	"github.com/m04kA/SMC-CalendarService/pkg/types"
)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func beginTx(t *testing.T, db *sql.DB, mock sqlmock.Sqlmock) context.Context {
	t.Helper()
	mock.ExpectBegin()
	tx, err := db.Begin()
	require.NoError(t, err)
	return dbmetrics.WithTx(context.Background(), &dbmetrics.SqlTxWrapper{Tx: tx})
}

func TestLoad_ReturnsRawRecordsInStoredOrder(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRepository(db)

	mock.ExpectQuery(`^SELECT start_date, end_date, status FROM availability_intervals WHERE calendar_id = \$1 ORDER BY position ASC, id ASC$`).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"start_date", "end_date", "status"}).
			AddRow("2024-01-05", "2024-01-09", "Niedostępny").
			AddRow("2024-13-01", "2024-01-01", "zajety"))

	records, err := repo.Load(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, []availability.Record{
		{Start: "2024-01-05", End: "2024-01-09", Status: "Niedostępny"},
		{Start: "2024-13-01", End: "2024-01-01", Status: "zajety"},
	}, records)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoad_QueryError(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRepository(db)

	mock.ExpectQuery(`FROM availability_intervals`).WillReturnError(errors.New("conn refused"))

	_, err := repo.Load(context.Background(), 7)
	assert.ErrorIs(t, err, ErrExecQuery)
}

func TestReplace_RequiresTransaction(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRepository(db)

	err := repo.Replace(context.Background(), 7, nil)
	assert.ErrorIs(t, err, ErrTransactionRequired)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReplace_DeletesAndInsertsWithPositions(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRepository(db)
	txCtx := beginTx(t, db, mock)

	set := availability.Set{
		{Start: types.MustParseDate("2024-01-01"), End: types.MustParseDate("2024-01-04"), Status: availability.StatusAvailable},
		{Start: types.MustParseDate("2024-01-05"), End: types.MustParseDate("2024-01-05"), Status: availability.StatusUnavailable},
	}

	mock.ExpectExec(`^DELETE FROM availability_intervals WHERE calendar_id = \$1$`).
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(`^INSERT INTO availability_intervals \(calendar_id,position,start_date,end_date,status\) VALUES \(\$1,\$2,\$3,\$4,\$5\),\(\$6,\$7,\$8,\$9,\$10\)$`).
		WithArgs(
			int64(7), 0, "2024-01-01", "2024-01-04", "Dostępny",
			int64(7), 1, "2024-01-05", "2024-01-05", "Niedostępny",
		).
		WillReturnResult(sqlmock.NewResult(0, 2))

	require.NoError(t, repo.Replace(txCtx, 7, set))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReplace_EmptySetOnlyDeletes(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRepository(db)
	txCtx := beginTx(t, db, mock)

	mock.ExpectExec(`^DELETE FROM availability_intervals`).WillReturnResult(sqlmock.NewResult(0, 5))

	require.NoError(t, repo.Replace(txCtx, 7, availability.Set{}))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReplace_SplitsInsertIntoBatches(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRepository(db)
	txCtx := beginTx(t, db, mock)

	first := types.MustParseDate("2020-01-01")
	set := make(availability.Set, 0, insertBatchSize+1)
	for i := 0; i <= insertBatchSize; i++ {
		day := first.AddDays(i)
		set = append(set, availability.Interval{Start: day, End: day, Status: availability.StatusAvailable})
	}
	last := set[insertBatchSize]

	mock.ExpectExec(`^DELETE FROM availability_intervals`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`VALUES \(\$1,\$2,\$3,\$4,\$5\),.*,\(\$4996,\$4997,\$4998,\$4999,\$5000\)$`).
		WillReturnResult(sqlmock.NewResult(0, insertBatchSize))
	mock.ExpectExec(`VALUES \(\$1,\$2,\$3,\$4,\$5\)$`).
		WithArgs(int64(7), insertBatchSize, last.Start.String(), last.End.String(), "Dostępny").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Replace(txCtx, 7, set))
	assert.NoError(t, mock.ExpectationsWereMet())
}
