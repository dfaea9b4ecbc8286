package ical

import (
	"fmt"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"

	"boothly/internal/domain"
)

const productID = "-//Boothly//Event Calendar//EN"

type encoder struct {
	name string
	now  func() time.Time
}

// NewEncoder returns a CalendarEncoder producing an iCalendar feed with one
// all-day VEVENT per event.
func NewEncoder(calendarName string) domain.CalendarEncoder {
	return &encoder{name: calendarName, now: time.Now}
}

func (e *encoder) ContentType() string {
	return "text/calendar; charset=utf-8"
}

func (e *encoder) Encode(cal *domain.Calendar) ([]byte, error) {
	if cal == nil {
		return nil, fmt.Errorf("calendar is nil")
	}
	out := ics.NewCalendar()
	out.SetMethod(ics.MethodPublish)
	out.SetProductId(productID)
	out.SetXWRCalName(e.name)
	stamp := e.now().UTC()

	for _, day := range cal.Days {
		for _, ev := range day.Events {
			vev := out.AddEvent(ev.ID + "@boothly")
			vev.SetDtStampTime(stamp)
			if !ev.CreatedAt.IsZero() {
				vev.SetCreatedTime(ev.CreatedAt.UTC())
			}
			vev.SetAllDayStartAt(ev.Date.Time())
			vev.SetAllDayEndAt(ev.Date.AddDays(1).Time())
			vev.SetSummary(ev.Name)
			if ev.Address != "" {
				vev.SetLocation(ev.Address)
			}
			if ev.HasApplicationLink() {
				vev.SetURL(ev.ApplicationLink)
			}
			if desc := describe(ev); desc != "" {
				vev.SetDescription(desc)
			}
		}
	}
	return []byte(out.Serialize()), nil
}

func describe(ev *domain.Event) string {
	var lines []string
	if ev.Cost != "" {
		lines = append(lines, "Cost: "+ev.Cost)
	}
	if ev.Phone != "" {
		lines = append(lines, "Phone: "+ev.Phone)
	}
	if ev.Email != "" {
		lines = append(lines, "Email: "+ev.Email)
	}
	if ev.HasFlyer() {
		lines = append(lines, "Flyer: "+ev.FlyerURL)
	}
	return strings.Join(lines, "\n")
}
