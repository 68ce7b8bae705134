package get_availability

import (
	"github.com/m04kA/SMC-CalendarService/internal/availability"
)

// AvailabilityResponse набор интервалов календаря
type AvailabilityResponse struct {
	Calendar       string                  `json:"calendar"`
	Availabilities []availability.Interval `json:"availabilities"`
}
