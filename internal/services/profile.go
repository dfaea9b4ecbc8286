package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"boothly/internal/domain"
)

type profileService struct {
	profileRepo    domain.ProfileRepository
	store          domain.ObjectStore
	uploadsBucket  string
	notifier       domain.Notifier
	logger         *slog.Logger
	contextTimeout time.Duration
	now            func() time.Time
}

func NewProfileService(
	profileRepo domain.ProfileRepository,
	store domain.ObjectStore,
	uploadsBucket string,
	notifier domain.Notifier,
	logger *slog.Logger,
	timeout time.Duration,
) domain.ProfileService {
	return &profileService{
		profileRepo:    profileRepo,
		store:          store,
		uploadsBucket:  uploadsBucket,
		notifier:       notifier,
		logger:         logger,
		contextTimeout: timeout,
		now:            time.Now,
	}
}

func (s *profileService) GetProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	return s.profileRepo.GetByUserID(ctx, userID)
}

// SaveProfile stores p as the owner's profile. The owner's identity and role
// always come from the session, never from p.
func (s *profileService) SaveProfile(ctx context.Context, owner *domain.TokenClaims, p *domain.Profile) (*domain.Profile, error) {
	if owner == nil || owner.UserID == "" {
		return nil, domain.ErrUnauthenticated
	}
	if p == nil {
		return nil, domain.NewValidationError("profile is required")
	}
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	saved := *p
	saved.UserID = owner.UserID
	saved.Role = owner.Role
	saved.UpdatedAt = s.now().UTC()
	if saved.PortfolioURLs == nil {
		saved.PortfolioURLs = []string{}
	}
	if err := s.profileRepo.Upsert(ctx, &saved); err != nil {
		return nil, fmt.Errorf("failed to save profile: %w", err)
	}
	if err := s.notifier.ProfileSaved(ctx, &saved); err != nil {
		s.logger.WarnContext(ctx, "profile change not published", "user_id", saved.UserID, "error", err)
	}
	return &saved, nil
}

// UploadImage stores img at <user>/<kind>/<filename> in the uploads bucket,
// replacing any previous object at that path.
func (s *profileService) UploadImage(ctx context.Context, owner *domain.TokenClaims, kind domain.UploadKind, img *domain.Upload) (*domain.StoredObject, error) {
	if owner == nil || owner.UserID == "" {
		return nil, domain.ErrUnauthenticated
	}
	if _, ok := domain.ParseUploadKind(string(kind)); !ok {
		return nil, domain.NewValidationError("upload type must be one of profile, logo, portfolio")
	}
	name, err := uploadName(img)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	path := fmt.Sprintf("%s/%s/%s", owner.UserID, kind, name)
	obj, err := s.store.Put(ctx, s.uploadsBucket, path, img, true)
	if err != nil {
		return nil, fmt.Errorf("failed to upload %s image: %w", kind, err)
	}
	return obj, nil
}
