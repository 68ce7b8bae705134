package apply_recurring

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CalendarService/internal/availability"
	"github.com/m04kA/SMC-CalendarService/internal/usecase/usecasetest"
	"github.com/m04kA/SMC-CalendarService/pkg/logger"
)

func TestExecute_ClosesWeekends(t *testing.T) {
	store := usecasetest.NewStore()
	store.Seed("main", availability.Record{Start: "2024-06-01", End: "2024-06-16", Status: "Dostępny"})
	cache := &usecasetest.Cache{}
	metrics := &usecasetest.Metrics{}
	uc := NewUseCase(store, store, cache, &usecasetest.TxManager{}, metrics, logger.NewNop())

	resp, err := uc.Execute(context.Background(), &Request{
		Slug:   "main",
		Rule:   "FREQ=WEEKLY;BYDAY=SA,SU",
		From:   "2024-06-03",
		Until:  "2024-06-16",
		Status: "Niedostępny",
	})
	require.NoError(t, err)

	require.Len(t, resp.Days, 4)
	assert.Equal(t, "2024-06-08", resp.Days[0].String())
	assert.Equal(t, "2024-06-16", resp.Days[3].String())

	assert.Equal(t, []availability.Record{
		{Start: "2024-06-01", End: "2024-06-07", Status: "Dostępny"},
		{Start: "2024-06-08", End: "2024-06-08", Status: "Niedostępny"},
		{Start: "2024-06-09", End: "2024-06-09", Status: "Niedostępny"},
		{Start: "2024-06-10", End: "2024-06-14", Status: "Dostępny"},
		{Start: "2024-06-15", End: "2024-06-15", Status: "Niedostępny"},
		{Start: "2024-06-16", End: "2024-06-16", Status: "Niedostępny"},
	}, store.Records("main"))

	assert.Equal(t, []string{"main"}, cache.Stored)
	assert.Len(t, metrics.Applied, 4)
}

func TestExecute_InvalidRule(t *testing.T) {
	store := usecasetest.NewStore()
	tx := &usecasetest.TxManager{}
	uc := NewUseCase(store, store, &usecasetest.Cache{}, tx, nil, logger.NewNop())

	_, err := uc.Execute(context.Background(), &Request{
		Slug: "main", Rule: "FREQ=FORTNIGHTLY", From: "2024-06-01", Until: "2024-06-30", Status: "Niedostępny",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Equal(t, 0, tx.Calls)

	_, err = uc.Execute(context.Background(), &Request{
		Slug: "main", Rule: "FREQ=DAILY", From: "2024-06-01", Until: "2024-06-30", Status: "maybe",
	})
	assert.ErrorIs(t, err, availability.ErrInvalidStatus)
}
