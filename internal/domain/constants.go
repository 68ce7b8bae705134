package domain

// Default calendar values
const (
	DefaultCalendarSlug = "main"
	DefaultCalendarName = "Kalendarz dostępności"
	DefaultTimezone     = "Europe/Warsaw"
)

// Business validation constants
const (
	MinSlugLength         = 1
	MaxSlugLength         = 64
	MaxCalendarNameLength = 100
	MaxImportRecords      = 10000
)

// Time format constants
const (
	DateFormat  = "2006-01-02" // YYYY-MM-DD
	MonthFormat = "2006-01"    // YYYY-MM
)
