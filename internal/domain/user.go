package domain

import (
	"context"
	"strings"
	"time"
)

// Role is the kind of account a user holds.
type Role string

// Roles supported by Boothly.
const (
	RoleMaker     Role = "maker"
	RoleOrganizer Role = "organizer"
	RoleShopOwner Role = "shop_owner"
)

// DefaultRole is assigned when sign-up does not name a role.
const DefaultRole = RoleMaker

// ParseRole normalizes s and reports whether it names a known role.
// "shop-owner" and "shopowner" are accepted for shop_owner.
func ParseRole(s string) (Role, bool) {
	switch strings.ReplaceAll(strings.TrimSpace(strings.ToLower(s)), "-", "_") {
	case "maker":
		return RoleMaker, true
	case "organizer":
		return RoleOrganizer, true
	case "shop_owner", "shopowner":
		return RoleShopOwner, true
	}
	return "", false
}

// User represents a registered user
// swagger:model User
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Role         Role      `json:"role" swaggertype:"string" enums:"maker,organizer,shop_owner"`
	PasswordHash string    `json:"-"`
	Salt         string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewUser returns a new User with the given fields. ID is typically set by the repository on create.
func NewUser(email string, role Role, passwordHash, salt string, createdAt, updatedAt time.Time) *User {
	return &User{
		Email:        email,
		Role:         role,
		PasswordHash: passwordHash,
		Salt:         salt,
		CreatedAt:    createdAt,
		UpdatedAt:    updatedAt,
	}
}

// TokenClaims is what a verified bearer token says about its holder.
type TokenClaims struct {
	UserID    string
	Email     string
	Role      Role
	TokenID   string
	ExpiresAt time.Time
}

// Session is an authenticated session. Token is only set on sign-in.
// swagger:model Session
type Session struct {
	Token     string    `json:"token,omitempty"`
	TokenType string    `json:"token_type,omitempty"`
	ExpiresAt time.Time `json:"expires_at"`
	User      *User     `json:"user"`
}

// PasswordHasher handles salt generation, hashing, and verification.
// Implementations may use bcrypt, argon2, etc.
type PasswordHasher interface {
	GenerateSalt() (string, error)
	Hash(salt, password string) (hash string, err error)
	Compare(hash, salt, password string) error
}

// TokenIssuer issues tokens (e.g. JWT) for an authenticated user.
type TokenIssuer interface {
	Issue(user *User, expiry time.Duration) (token string, claims *TokenClaims, err error)
}

// TokenVerifier verifies a token's signature and expiry.
type TokenVerifier interface {
	Verify(token string) (*TokenClaims, error)
}

// RevocationStore remembers signed-out token IDs until they would have expired.
type RevocationStore interface {
	Revoke(ctx context.Context, tokenID string, until time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// UserRepository defines the interface for user storage
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
}

// AuthService covers email/password sign-up, sign-in, session lookup and sign-out.
type AuthService interface {
	SignUp(ctx context.Context, email, password string, role Role) (*User, error)
	SignIn(ctx context.Context, email, password string) (*Session, error)
	GetSession(ctx context.Context, claims *TokenClaims) (*Session, error)
	SignOut(ctx context.Context, claims *TokenClaims) error
}
