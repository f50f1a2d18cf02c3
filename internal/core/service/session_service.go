package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/marketbay/storefront-api/internal/api/metrics"
	"github.com/marketbay/storefront-api/internal/core/domain"
	"github.com/marketbay/storefront-api/internal/core/ports"
)

// SessionService implements the login/refresh/logout protocol. A user has a
// single refresh-token slot: every successful login overwrites it, so only
// the most recent session survives (single-active-session policy, last
// writer wins on a genuine double-login race).
type SessionService struct {
	users  ports.UserRepository
	tokens ports.TokenService
	log    zerolog.Logger
}

func NewSessionService(users ports.UserRepository, tokens ports.TokenService, log zerolog.Logger) *SessionService {
	return &SessionService{users: users, tokens: tokens, log: log}
}

// Register creates an account with the baseline role grant.
func (s *SessionService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	if in.Username == "" || in.Password == "" {
		return nil, domain.ErrValidation
	}

	if _, err := s.users.FindByUsername(ctx, in.Username); err == nil {
		return nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Username:     in.Username,
		PasswordHash: string(hash),
		Email:        in.Email,
		Age:          in.Age,
		Job:          in.Job,
		Country:      in.Country,
		Roles:        domain.DefaultRoles(),
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("username", created.Username).Msg("user registered")
	return created, nil
}

// Login verifies the password and issues the token pair. Unknown username
// and wrong password both return domain.ErrInvalidCredentials so the two
// cases are indistinguishable to the caller; the distinction is logged.
func (s *SessionService) Login(ctx context.Context, username, password string) (*ports.SessionResult, error) {
	if username == "" || password == "" {
		metrics.LoginsTotal.WithLabelValues("rejected").Inc()
		return nil, domain.ErrValidation
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.log.Debug().Str("username", username).Msg("login for unknown username")
			metrics.LoginsTotal.WithLabelValues("rejected").Inc()
			return nil, domain.ErrInvalidCredentials
		}
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.log.Debug().Str("username", username).Msg("login with wrong password")
		metrics.LoginsTotal.WithLabelValues("rejected").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	roles := user.Roles.Values()

	access, err := s.tokens.IssueAccessToken(user.Username, roles)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("issue access token: %w", err)
	}
	refresh, err := s.tokens.IssueRefreshToken(user.Username)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("issue refresh token: %w", err)
	}

	// Persisting the new refresh token overwrites the previous one, which
	// revokes any session issued from an earlier login.
	if err := s.users.SetRefreshToken(ctx, user.Username, refresh); err != nil {
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("persist refresh token: %w", err)
	}

	s.log.Info().Str("username", user.Username).Ints("roles", roles).Msg("login succeeded")
	metrics.LoginsTotal.WithLabelValues("ok").Inc()

	return &ports.SessionResult{
		Roles:        roles,
		AccessToken:  access,
		RefreshToken: refresh,
	}, nil
}

// Refresh exchanges a stored refresh token for a new access token. The new
// token carries the roles persisted right now, so a role change takes effect
// on the next refresh rather than only on the next login. The refresh token
// itself is not rotated.
func (s *SessionService) Refresh(ctx context.Context, refreshToken string) (*ports.SessionResult, error) {
	user, err := s.users.FindByRefreshToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			metrics.TokenRefreshesTotal.WithLabelValues("rejected").Inc()
		}
		return nil, err
	}

	claims, err := s.tokens.VerifyRefreshToken(refreshToken)
	if err != nil || claims.Username != user.Username {
		// A stored token that no longer verifies, or that names a different
		// identity than the record it was found on, is treated the same as
		// an unknown token.
		s.log.Warn().Str("username", user.Username).Msg("stored refresh token failed verification")
		metrics.TokenRefreshesTotal.WithLabelValues("rejected").Inc()
		return nil, domain.ErrSessionNotFound
	}

	roles := user.Roles.Values()
	access, err := s.tokens.IssueAccessToken(user.Username, roles)
	if err != nil {
		return nil, fmt.Errorf("issue access token: %w", err)
	}

	metrics.TokenRefreshesTotal.WithLabelValues("ok").Inc()
	return &ports.SessionResult{Roles: roles, AccessToken: access}, nil
}

// Status is the advisory read-only session check. It never fails outward:
// any lookup or verification problem collapses to the anonymous shape.
func (s *SessionService) Status(ctx context.Context, refreshToken string) *ports.SessionStatus {
	anonymous := &ports.SessionStatus{Roles: []int{}}
	if refreshToken == "" {
		return anonymous
	}

	user, err := s.users.FindByRefreshToken(ctx, refreshToken)
	if err != nil {
		return anonymous
	}

	claims, err := s.tokens.VerifyRefreshToken(refreshToken)
	if err != nil || claims.Username != user.Username {
		return anonymous
	}

	return &ports.SessionStatus{
		IsAdmin:  user.Roles.HasAdmin(),
		IsEditor: user.Roles.HasEditor(),
		Roles:    user.Roles.Values(),
		Username: user.Username,
	}
}

// Logout clears the stored refresh token wherever it matches. Unknown tokens
// are not an error; logout is idempotent.
func (s *SessionService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	if err := s.users.ClearRefreshToken(ctx, refreshToken); err != nil {
		return fmt.Errorf("clear refresh token: %w", err)
	}
	return nil
}
