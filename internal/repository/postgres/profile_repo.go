package postgres

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	"boothly/internal/domain"
)

type profileRepository struct {
	DB *sql.DB
}

func NewProfileRepository(db *sql.DB) domain.ProfileRepository {
	return &profileRepository{DB: db}
}

// Upsert writes every field of p; concurrent writers resolve last-write-wins.
func (r *profileRepository) Upsert(ctx context.Context, p *domain.Profile) error {
	query := `
		INSERT INTO profiles (user_id, role, bio, profile_url, logo_url, portfolio_urls, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id) DO UPDATE SET
			role = EXCLUDED.role,
			bio = EXCLUDED.bio,
			profile_url = EXCLUDED.profile_url,
			logo_url = EXCLUDED.logo_url,
			portfolio_urls = EXCLUDED.portfolio_urls,
			updated_at = EXCLUDED.updated_at
	`
	urls := p.PortfolioURLs
	if urls == nil {
		urls = []string{}
	}
	_, err := r.DB.ExecContext(ctx, query, p.UserID, string(p.Role), p.Bio, p.ProfileURL, p.LogoURL, pq.Array(urls), p.UpdatedAt)
	return err
}

func (r *profileRepository) GetByUserID(ctx context.Context, userID string) (*domain.Profile, error) {
	query := `
		SELECT user_id, role, bio, profile_url, logo_url, portfolio_urls, updated_at
		FROM profiles
		WHERE user_id = $1
	`
	p := &domain.Profile{}
	var role string
	urls := pq.StringArray{}
	err := r.DB.QueryRowContext(ctx, query, userID).Scan(&p.UserID, &role, &p.Bio, &p.ProfileURL, &p.LogoURL, &urls, &p.UpdatedAt)
	if err != nil {
		return nil, lookupErr(err)
	}
	p.Role = domain.Role(role)
	p.PortfolioURLs = []string(urls)
	if p.PortfolioURLs == nil {
		p.PortfolioURLs = []string{}
	}
	return p, nil
}
