package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"boothly/internal/domain"
)

const minPasswordLen = 8

const tokenType = "Bearer"

var emailRegexp = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

type authService struct {
	userRepo       domain.UserRepository
	hasher         domain.PasswordHasher
	issuer         domain.TokenIssuer
	revocations    domain.RevocationStore
	emailService   domain.EmailService
	notifier       domain.Notifier
	logger         *slog.Logger
	jwtExpiry      time.Duration
	contextTimeout time.Duration
	now            func() time.Time
}

// NewAuthService creates an AuthService. Welcome emails and session-change
// notifications are best effort: their failures are logged, not returned.
func NewAuthService(
	userRepo domain.UserRepository,
	hasher domain.PasswordHasher,
	issuer domain.TokenIssuer,
	revocations domain.RevocationStore,
	emailService domain.EmailService,
	notifier domain.Notifier,
	logger *slog.Logger,
	jwtExpiry time.Duration,
	timeout time.Duration,
) domain.AuthService {
	return &authService{
		userRepo:       userRepo,
		hasher:         hasher,
		issuer:         issuer,
		revocations:    revocations,
		emailService:   emailService,
		notifier:       notifier,
		logger:         logger,
		jwtExpiry:      jwtExpiry,
		contextTimeout: timeout,
		now:            time.Now,
	}
}

func (s *authService) SignUp(ctx context.Context, email, password string, role domain.Role) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	email = normalizeEmail(email)
	var problems []string
	if !emailRegexp.MatchString(email) {
		problems = append(problems, "invalid email format")
	}
	if len(password) < minPasswordLen {
		problems = append(problems, fmt.Sprintf("password must be at least %d characters", minPasswordLen))
	}
	if role == "" {
		role = domain.DefaultRole
	} else if r, ok := domain.ParseRole(string(role)); ok {
		role = r
	} else {
		problems = append(problems, "role must be one of maker, organizer, shop_owner")
	}
	if len(problems) > 0 {
		return nil, domain.NewValidationError(problems...)
	}

	salt, err := s.hasher.GenerateSalt()
	if err != nil {
		return nil, err
	}
	hash, err := s.hasher.Hash(salt, password)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	user := domain.NewUser(email, role, hash, salt, now, now)
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if err := s.emailService.SendWelcomeMessage(ctx, &domain.WelcomeMessageEmailData{
		Email:     user.Email,
		RoleLabel: roleLabel(user.Role),
	}); err != nil {
		s.logger.WarnContext(ctx, "welcome email failed", "user_id", user.ID, "error", err)
	}
	s.publish(ctx, domain.SessionSignedUp, user)
	return user, nil
}

func (s *authService) SignIn(ctx context.Context, email, password string) (*domain.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	user, err := s.userRepo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if err := s.hasher.Compare(user.PasswordHash, user.Salt, password); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	token, claims, err := s.issuer.Issue(user, s.jwtExpiry)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}
	s.publish(ctx, domain.SessionSignedIn, user)
	return &domain.Session{
		Token:     token,
		TokenType: tokenType,
		ExpiresAt: claims.ExpiresAt,
		User:      user,
	}, nil
}

func (s *authService) GetSession(ctx context.Context, claims *domain.TokenClaims) (*domain.Session, error) {
	if claims == nil || claims.UserID == "" {
		return nil, domain.ErrUnauthenticated
	}
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnauthenticated
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return &domain.Session{ExpiresAt: claims.ExpiresAt, User: user}, nil
}

// SignOut revokes the token until its own expiry.
func (s *authService) SignOut(ctx context.Context, claims *domain.TokenClaims) error {
	if claims == nil || claims.TokenID == "" {
		return domain.ErrUnauthenticated
	}
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.revocations.Revoke(ctx, claims.TokenID, claims.ExpiresAt); err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	s.publish(ctx, domain.SessionSignedOut, &domain.User{ID: claims.UserID, Email: claims.Email})
	return nil
}

func (s *authService) publish(ctx context.Context, kind domain.SessionChangeType, user *domain.User) {
	change := domain.SessionChange{Type: kind, UserID: user.ID, Email: user.Email, At: s.now().UTC()}
	if err := s.notifier.SessionChanged(ctx, change); err != nil {
		s.logger.WarnContext(ctx, "session change not published", "type", kind, "user_id", user.ID, "error", err)
	}
}

func normalizeEmail(email string) string {
	return strings.TrimSpace(strings.ToLower(email))
}

func roleLabel(r domain.Role) string {
	switch r {
	case domain.RoleOrganizer:
		return "event organizer"
	case domain.RoleShopOwner:
		return "shop owner"
	default:
		return "maker"
	}
}
