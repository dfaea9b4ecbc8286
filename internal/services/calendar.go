package services

import (
	"context"
	"fmt"
	"time"

	"boothly/internal/domain"
)

type calendarService struct {
	eventRepo      domain.EventRepository
	location       *time.Location
	contextTimeout time.Duration
	now            func() time.Time
}

// NewCalendarService returns a CalendarService whose "today" is taken in location.
func NewCalendarService(eventRepo domain.EventRepository, location *time.Location, timeout time.Duration) domain.CalendarService {
	if location == nil {
		location = time.UTC
	}
	return &calendarService{
		eventRepo:      eventRepo,
		location:       location,
		contextTimeout: timeout,
		now:            time.Now,
	}
}

func (s *calendarService) Calendar(ctx context.Context, keyword string) (*domain.Calendar, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	today := domain.Today(s.now(), s.location)
	q := domain.EventQuery{
		Keyword: keyword,
		Start:   today,
		End:     today.AddDays(domain.CalendarDays),
	}
	events, err := s.eventRepo.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	return &domain.Calendar{
		Start:       q.Start,
		End:         q.End,
		Keyword:     q.NormalizedKeyword(),
		Days:        domain.GroupByDay(events, today, domain.CalendarDays),
		Suggestions: domain.SuggestNames(events),
	}, nil
}
