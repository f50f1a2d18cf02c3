package ports

import (
	"context"

	"github.com/marketbay/storefront-api/internal/core/domain"
)

// UserRepository owns user records in the document store.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)

	// FindByUsername matches the username exactly (case-sensitive).
	FindByUsername(ctx context.Context, username string) (*domain.User, error)

	// FindByRefreshToken finds the user whose stored refresh token equals
	// token verbatim. domain.ErrSessionNotFound when no record matches.
	FindByRefreshToken(ctx context.Context, token string) (*domain.User, error)

	// UsernameExists matches case-insensitively (availability checks only;
	// login stays case-sensitive).
	UsernameExists(ctx context.Context, username string) (bool, error)

	// SetRefreshToken overwrites the user's single refresh-token slot,
	// invalidating whatever token was stored before. Last writer wins.
	SetRefreshToken(ctx context.Context, username, token string) error

	// ClearRefreshToken removes the stored token wherever it matches. A
	// no-match is not an error so logout stays idempotent.
	ClearRefreshToken(ctx context.Context, token string) error

	List(ctx context.Context) ([]domain.User, error)
	Delete(ctx context.Context, id string) error

	// UpdateRole applies the named role atomically: Admin unsets Editor,
	// Editor unsets Admin, User unsets both. Returns the updated record.
	UpdateRole(ctx context.Context, id, role string) (*domain.User, error)
}

// UserService defines the user-administration use cases.
type UserService interface {
	List(ctx context.Context) ([]domain.User, error)
	Exists(ctx context.Context, username string) (bool, error)
	Delete(ctx context.Context, id string) error
	UpdateRole(ctx context.Context, id, role string) (*domain.User, error)
}
