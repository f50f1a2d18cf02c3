package ports

import (
	"context"

	"github.com/marketbay/storefront-api/internal/core/domain"
)

// SessionResult is returned by Login and Refresh. RefreshToken is empty on
// Refresh: the stored refresh token is not rotated, only access tokens are.
type SessionResult struct {
	Roles        []int
	AccessToken  string
	RefreshToken string
}

// SessionStatus is the advisory, never-failing answer to the status query.
type SessionStatus struct {
	IsAdmin  bool   `json:"isAdmin"`
	IsEditor bool   `json:"isEditor"`
	Roles    []int  `json:"roles"`
	Username string `json:"username,omitempty"`
}

// RegisterInput carries the fields accepted at account creation.
type RegisterInput struct {
	Username string
	Password string
	Email    string
	Age      string
	Job      string
	Country  string
}

// SessionService orchestrates the login/refresh/logout protocol over the
// credential store and token service.
type SessionService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	Login(ctx context.Context, username, password string) (*SessionResult, error)
	Refresh(ctx context.Context, refreshToken string) (*SessionResult, error)
	Status(ctx context.Context, refreshToken string) *SessionStatus
	Logout(ctx context.Context, refreshToken string) error
}
