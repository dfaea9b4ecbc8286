package domain

import "context"

// CalendarDays is the number of day buckets in the calendar view.
const CalendarDays = 90

// DayEvents is one calendar day and the events held on it.
// swagger:model DayEvents
type DayEvents struct {
	Date   Date     `json:"date" swaggertype:"string" format:"date"`
	Events []*Event `json:"events"`
}

// Calendar is the rolling calendar view starting today.
// swagger:model Calendar
type Calendar struct {
	Start       Date        `json:"start" swaggertype:"string" format:"date"`
	End         Date        `json:"end" swaggertype:"string" format:"date"`
	Keyword     string      `json:"keyword,omitempty"`
	Days        []DayEvents `json:"days"`
	Suggestions []string    `json:"suggestions"`
}

// GroupByDay returns days consecutive buckets starting at first. Each event
// lands in the bucket whose date equals its own, keeping input order; events
// dated outside the buckets are dropped.
func GroupByDay(events []*Event, first Date, days int) []DayEvents {
	if days < 0 {
		days = 0
	}
	buckets := make([]DayEvents, days)
	index := make(map[Date]int, days)
	for i := range buckets {
		d := first.AddDays(i)
		buckets[i] = DayEvents{Date: d, Events: []*Event{}}
		index[d] = i
	}
	for _, e := range events {
		if e == nil {
			continue
		}
		if i, ok := index[e.Date]; ok {
			buckets[i].Events = append(buckets[i].Events, e)
		}
	}
	return buckets
}

// SuggestNames returns the distinct event names in first-seen order.
func SuggestNames(events []*Event) []string {
	seen := make(map[string]struct{}, len(events))
	names := make([]string, 0, len(events))
	for _, e := range events {
		if e == nil {
			continue
		}
		if _, ok := seen[e.Name]; ok {
			continue
		}
		seen[e.Name] = struct{}{}
		names = append(names, e.Name)
	}
	return names
}

// CalendarService builds the calendar view.
type CalendarService interface {
	// Calendar queries [today, today+CalendarDays] and groups the result into
	// CalendarDays buckets starting today.
	Calendar(ctx context.Context, keyword string) (*Calendar, error)
}

// CalendarEncoder renders a calendar into an exportable feed (e.g. iCalendar).
type CalendarEncoder interface {
	Encode(cal *Calendar) ([]byte, error)
	ContentType() string
}

// LinkEncoder renders a link as an image (e.g. a QR code PNG).
type LinkEncoder interface {
	Encode(link string) ([]byte, error)
	ContentType() string
}
