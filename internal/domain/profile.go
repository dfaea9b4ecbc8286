package domain

import (
	"context"
	"time"
)

// PortfolioDisplayLimit is the number of portfolio images the dashboard
// offers. It is display copy only; saves with more URLs are accepted.
const PortfolioDisplayLimit = 10

// Profile is a user's public page: bio plus image URLs. One per user.
// swagger:model Profile
type Profile struct {
	UserID        string    `json:"user_id"`
	Role          Role      `json:"role" swaggertype:"string" enums:"maker,organizer,shop_owner"`
	Bio           string    `json:"bio"`
	ProfileURL    string    `json:"profile_url"`
	LogoURL       string    `json:"logo_url"`
	PortfolioURLs []string  `json:"portfolio_urls"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ProfileRepository stores profiles keyed by user ID.
type ProfileRepository interface {
	// Upsert inserts or replaces the profile for p.UserID; the last write wins.
	Upsert(ctx context.Context, p *Profile) error
	GetByUserID(ctx context.Context, userID string) (*Profile, error)
}

// ProfileService defines the business logic for profiles and their images.
type ProfileService interface {
	GetProfile(ctx context.Context, userID string) (*Profile, error)
	SaveProfile(ctx context.Context, owner *TokenClaims, p *Profile) (*Profile, error)
	UploadImage(ctx context.Context, owner *TokenClaims, kind UploadKind, img *Upload) (*StoredObject, error)
}
