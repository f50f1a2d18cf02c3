package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/marketbay/storefront-api/internal/core/domain"
	"github.com/marketbay/storefront-api/internal/core/ports"
)

// Role names accepted by the role-update operation.
const (
	RoleNameAdmin  = "Admin"
	RoleNameEditor = "Editor"
	RoleNameUser   = "User"
)

// UserService implements user administration.
type UserService struct {
	repo ports.UserRepository
	log  zerolog.Logger
}

func NewUserService(repo ports.UserRepository, log zerolog.Logger) *UserService {
	return &UserService{repo: repo, log: log}
}

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.repo.List(ctx)
}

// Exists checks username availability case-insensitively. Login matching
// stays case-sensitive; the mismatch is intentional and preserved.
func (s *UserService) Exists(ctx context.Context, username string) (bool, error) {
	if username == "" {
		return false, domain.ErrValidation
	}
	return s.repo.UsernameExists(ctx, username)
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrValidation
	}
	return s.repo.Delete(ctx, id)
}

// UpdateRole assigns a named role. Admin and Editor displace each other;
// User strips both elevated grants. The repository applies the change as one
// atomic update.
func (s *UserService) UpdateRole(ctx context.Context, id, role string) (*domain.User, error) {
	if id == "" || role == "" {
		return nil, domain.ErrValidation
	}
	switch role {
	case RoleNameAdmin, RoleNameEditor, RoleNameUser:
	default:
		return nil, domain.ErrValidation
	}

	updated, err := s.repo.UpdateRole(ctx, id, role)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("username", updated.Username).Str("role", role).Msg("role updated")
	return updated, nil
}
