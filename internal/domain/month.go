package domain

import (
	"time"

	"github.com/m04kA/SMC-CalendarService/internal/availability"
	"github.com/m04kA/SMC-CalendarService/pkg/types"
)

// DayCell represents a single day of the month grid
type DayCell struct {
	Date    types.Date
	InMonth bool // false for leading/trailing days of neighbouring months
	IsToday bool
	Status  availability.Status
	Known   bool // false = no availability information for this day

	// Interval covering this day, filled only in admin mode
	Interval *availability.Interval
}

// MonthView represents a month grid made of whole weeks
type MonthView struct {
	CalendarSlug string
	Year         int
	Month        time.Month
	WeekStart    WeekStart
	Admin        bool
	Weeks        [][]DayCell
}

// CountByStatus returns how many in-month days carry each status
func (m *MonthView) CountByStatus() map[availability.Status]int {
	counts := make(map[availability.Status]int, len(availability.AllStatuses))
	for _, week := range m.Weeks {
		for _, day := range week {
			if day.InMonth && day.Known {
				counts[day.Status]++
			}
		}
	}
	return counts
}
