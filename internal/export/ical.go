// Package export формирует выгрузки набора доступности (iCalendar, XLSX)
package export

import (
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-CalendarService/internal/availability"
	"github.com/m04kA/SMC-CalendarService/internal/domain"
)

const (
	ICalContentType = "text/calendar; charset=utf-8"
	productID       = "-//SMC//CalendarService//PL"
)

// uidNamespace пространство имен для UID событий
var uidNamespace = uuid.MustParse("6f1c1e44-3f7b-4b53-9d0e-0b8f3c7a2d11")

// ICal формирует iCalendar-ленту: одно событие на весь день для каждого интервала
// DTEND исключающий (End+1). UID зависит только от календаря и содержимого интервала,
// поэтому клиенты не дублируют события при повторной загрузке ленты.
func ICal(cal *domain.Calendar, set availability.Set, generatedAt time.Time) string {
	feed := ics.NewCalendar()
	feed.SetMethod(ics.MethodPublish)
	feed.SetProductId(productID)
	feed.SetName(cal.Name)
	feed.SetXWRCalName(cal.Name)
	feed.SetXWRTimezone(cal.Timezone)

	for _, interval := range set.Sorted() {
		event := feed.AddEvent(EventUID(cal.Slug, interval))
		event.SetDtStampTime(generatedAt.UTC())
		event.SetAllDayStartAt(interval.Start.Time())
		event.SetAllDayEndAt(interval.End.AddDays(1).Time())
		event.SetSummary(interval.Status.String())
		event.SetDescription(fmt.Sprintf("%s: %s - %s", cal.Name, interval.Start, interval.End))
		if interval.Status == availability.StatusAvailable {
			event.SetTimeTransparency(ics.TransparencyTransparent)
		} else {
			event.SetTimeTransparency(ics.TransparencyOpaque)
		}
	}

	return feed.Serialize()
}

// EventUID стабильный идентификатор события для интервала
func EventUID(slug string, interval availability.Interval) string {
	name := fmt.Sprintf("%s|%s|%s|%s", slug, interval.Start, interval.End, interval.Status.Code())
	return uuid.NewSHA1(uidNamespace, []byte(name)).String() + "@" + slug
}
