package domain

import (
	"errors"
	"regexp"
	"time"

	"github.com/m04kA/SMC-CalendarService/pkg/types"
)

// ErrInvalidSlug is returned for a malformed calendar identifier
var ErrInvalidSlug = errors.New("domain: invalid calendar slug")

var slugPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)

// ValidateSlug checks a calendar identifier (lowercase letters, digits and dashes)
func ValidateSlug(slug string) error {
	if len(slug) < MinSlugLength || len(slug) > MaxSlugLength || !slugPattern.MatchString(slug) {
		return ErrInvalidSlug
	}
	return nil
}

// WeekStart first day of the week in the month grid
type WeekStart string

const (
	WeekStartMonday WeekStart = "monday"
	WeekStartSunday WeekStart = "sunday"
)

// IsValid returns true for a supported week start
func (w WeekStart) IsValid() bool {
	return w == WeekStartMonday || w == WeekStartSunday
}

// Weekday returns the corresponding time.Weekday (Monday for unknown values)
func (w WeekStart) Weekday() time.Weekday {
	if w == WeekStartSunday {
		return time.Sunday
	}
	return time.Monday
}

// Calendar represents settings of a named availability calendar
type Calendar struct {
	ID        int64
	Slug      string
	Name      string
	Timezone  string
	WeekStart WeekStart
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewDefaultCalendar returns settings used when the calendar has not been configured yet
func NewDefaultCalendar(slug string) *Calendar {
	return &Calendar{
		Slug:      slug,
		Name:      DefaultCalendarName,
		Timezone:  DefaultTimezone,
		WeekStart: WeekStartMonday,
	}
}

// IsPersisted returns true if the calendar exists in storage
func (c *Calendar) IsPersisted() bool {
	return c.ID > 0
}

// Location returns the calendar time zone (UTC if it cannot be loaded)
func (c *Calendar) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Today returns the current date in the calendar time zone
func (c *Calendar) Today(now time.Time) types.Date {
	return types.DateOf(now.In(c.Location()))
}
