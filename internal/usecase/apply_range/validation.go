package apply_range

import (
	"fmt"

	"github.com/m04kA/SMC-CalendarService/internal/availability"
	"github.com/m04kA/SMC-CalendarService/internal/domain"
	"github.com/m04kA/SMC-CalendarService/pkg/types"
)

// buildRange валидирует запрос и строит нормализованный диапазон
func buildRange(req *Request) (availability.Range, error) {
	if err := domain.ValidateSlug(req.Slug); err != nil {
		return availability.Range{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	start, err := types.ParseDate(req.Start)
	if err != nil {
		return availability.Range{}, fmt.Errorf("%w: %w: start: %v", ErrInvalidInput, availability.ErrInvalidRange, err)
	}

	end, err := types.ParseDate(req.End)
	if err != nil {
		return availability.Range{}, fmt.Errorf("%w: %w: end: %v", ErrInvalidInput, availability.ErrInvalidRange, err)
	}

	status, err := availability.ParseStatus(req.Status)
	if err != nil {
		return availability.Range{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	r, err := availability.NewRange(start, end, status)
	if err != nil {
		return availability.Range{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	return r, nil
}
