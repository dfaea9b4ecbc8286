package domain

import (
	"context"
	"strings"
	"time"
)

// Event is a market, fair or pop-up listed on the calendar.
// swagger:model Event
type Event struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Date            Date      `json:"date" swaggertype:"string" format:"date"`
	Address         string    `json:"address,omitempty"`
	Phone           string    `json:"phone,omitempty"`
	Email           string    `json:"email,omitempty"`
	Cost            string    `json:"cost,omitempty"`
	FlyerURL        string    `json:"flyer_url,omitempty"`
	ApplicationLink string    `json:"application_link,omitempty"`
	OrganizerID     string    `json:"organizer_id,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// NewEvent returns a new Event with the given fields. ID is set by the repository on create.
func NewEvent(name string, date Date, organizerID string, createdAt time.Time) *Event {
	return &Event{
		Name:        name,
		Date:        date,
		OrganizerID: organizerID,
		CreatedAt:   createdAt,
	}
}

// HasFlyer reports whether the flyer URL looks like a link.
func (e *Event) HasFlyer() bool {
	return isLink(e.FlyerURL)
}

// HasApplicationLink reports whether the application link looks like a link.
func (e *Event) HasApplicationLink() bool {
	return isLink(e.ApplicationLink)
}

func isLink(s string) bool {
	return strings.HasPrefix(s, "http")
}

// EventQuery selects events dated within [Start, End] whose name contains
// Keyword, ignoring case. An empty keyword matches every name.
type EventQuery struct {
	Keyword string
	Start   Date
	End     Date
}

// NormalizedKeyword returns the keyword with surrounding space removed.
func (q EventQuery) NormalizedKeyword() string {
	return strings.TrimSpace(q.Keyword)
}

// Validate checks that both bounds are set and ordered.
func (q EventQuery) Validate() error {
	var problems []string
	if q.Start.IsZero() {
		problems = append(problems, "start date is required")
	}
	if q.End.IsZero() {
		problems = append(problems, "end date is required")
	}
	if len(problems) == 0 && q.Start.After(q.End) {
		problems = append(problems, "start date must not be after end date")
	}
	if len(problems) > 0 {
		return NewValidationError(problems...)
	}
	return nil
}

// Matches reports whether e satisfies the query.
func (q EventQuery) Matches(e *Event) bool {
	if e == nil || !e.Date.Within(q.Start, q.End) {
		return false
	}
	kw := q.NormalizedKeyword()
	if kw == "" {
		return true
	}
	return strings.Contains(strings.ToLower(e.Name), strings.ToLower(kw))
}

// CreateEventInput is an organizer's event submission. Flyer is optional.
type CreateEventInput struct {
	Name            string
	Date            Date
	Address         string
	Phone           string
	Email           string
	Cost            string
	ApplicationLink string
	FlyerURL        string
	Flyer           *Upload
}

// Validate checks required fields.
func (in CreateEventInput) Validate() error {
	var problems []string
	if strings.TrimSpace(in.Name) == "" {
		problems = append(problems, "name is required")
	}
	if in.Date.IsZero() {
		problems = append(problems, "date is required")
	}
	if len(problems) > 0 {
		return NewValidationError(problems...)
	}
	return nil
}

// EventRepository defines the interface for event storage.
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	// Query returns every event matching q, ordered by date then name.
	Query(ctx context.Context, q EventQuery) ([]*Event, error)
}

// EventService defines the business logic for events.
type EventService interface {
	// CreateEvent uploads the optional flyer, then inserts the event. A failed
	// upload abandons the insert.
	CreateEvent(ctx context.Context, organizer *TokenClaims, in CreateEventInput) (*Event, error)
	UploadFlyer(ctx context.Context, organizer *TokenClaims, flyer *Upload) (*StoredObject, error)
	GetEvent(ctx context.Context, id string) (*Event, error)
	SearchEvents(ctx context.Context, q EventQuery) ([]*Event, error)
}
