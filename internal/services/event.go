package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"boothly/internal/domain"
)

type eventService struct {
	eventRepo      domain.EventRepository
	store          domain.ObjectStore
	flyersBucket   string
	notifier       domain.Notifier
	logger         *slog.Logger
	location       *time.Location
	contextTimeout time.Duration
	now            func() time.Time
}

func NewEventService(
	eventRepo domain.EventRepository,
	store domain.ObjectStore,
	flyersBucket string,
	notifier domain.Notifier,
	logger *slog.Logger,
	location *time.Location,
	timeout time.Duration,
) domain.EventService {
	if location == nil {
		location = time.UTC
	}
	return &eventService{
		eventRepo:      eventRepo,
		store:          store,
		flyersBucket:   flyersBucket,
		notifier:       notifier,
		logger:         logger,
		location:       location,
		contextTimeout: timeout,
		now:            time.Now,
	}
}

func (s *eventService) CreateEvent(ctx context.Context, organizer *domain.TokenClaims, in domain.CreateEventInput) (*domain.Event, error) {
	if err := requireOrganizer(organizer); err != nil {
		return nil, err
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	flyerURL := in.FlyerURL
	if in.Flyer != nil {
		obj, err := s.putFlyer(ctx, in.Flyer)
		if err != nil {
			return nil, err
		}
		flyerURL = obj.URL
	}

	event := domain.NewEvent(in.Name, in.Date, organizer.UserID, s.now().UTC())
	event.Address = in.Address
	event.Phone = in.Phone
	event.Email = in.Email
	event.Cost = in.Cost
	event.ApplicationLink = in.ApplicationLink
	event.FlyerURL = flyerURL
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}
	if err := s.notifier.EventCreated(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "event creation not published", "event_id", event.ID, "error", err)
	}
	return event, nil
}

func (s *eventService) UploadFlyer(ctx context.Context, organizer *domain.TokenClaims, flyer *domain.Upload) (*domain.StoredObject, error) {
	if err := requireOrganizer(organizer); err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	return s.putFlyer(ctx, flyer)
}

// putFlyer stores the flyer under a millisecond-timestamped name. Existing
// objects are never replaced.
func (s *eventService) putFlyer(ctx context.Context, flyer *domain.Upload) (*domain.StoredObject, error) {
	name, err := uploadName(flyer)
	if err != nil {
		return nil, err
	}
	path := fmt.Sprintf("flyers/%d_%s", s.now().UnixMilli(), name)
	obj, err := s.store.Put(ctx, s.flyersBucket, path, flyer, false)
	if err != nil {
		return nil, fmt.Errorf("failed to upload flyer: %w", err)
	}
	return obj, nil
}

func (s *eventService) GetEvent(ctx context.Context, id string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	return s.eventRepo.GetByID(ctx, id)
}

// SearchEvents defaults a missing start to today and a missing end to
// start plus the calendar window.
func (s *eventService) SearchEvents(ctx context.Context, q domain.EventQuery) ([]*domain.Event, error) {
	if q.Start.IsZero() {
		q.Start = domain.Today(s.now(), s.location)
	}
	if q.End.IsZero() {
		q.End = q.Start.AddDays(domain.CalendarDays)
	}
	if err := q.Validate(); err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, err := s.eventRepo.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	return events, nil
}

func requireOrganizer(claims *domain.TokenClaims) error {
	if claims == nil || claims.UserID == "" {
		return domain.ErrUnauthenticated
	}
	if claims.Role != domain.RoleOrganizer {
		return domain.ErrForbidden
	}
	return nil
}
