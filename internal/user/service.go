// AngelaMos | 2026
// service.go

package user

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/carterperez-dev/bookhive/internal/auth"
	"github.com/carterperez-dev/bookhive/internal/middleware"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetByID(
	ctx context.Context,
	id string,
) (*auth.UserInfo, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return toUserInfo(user), nil
}

func (s *Service) GetByEmail(
	ctx context.Context,
	email string,
) (*auth.UserInfo, error) {
	user, err := s.repo.GetByEmail(ctx, strings.ToLower(email))
	if err != nil {
		return nil, err
	}

	return toUserInfo(user), nil
}

// Create stores a new account in the disabled state; it becomes usable
// only after email activation.
func (s *Service) Create(
	ctx context.Context,
	firstname, lastname, email, passwordHash string,
) (*auth.UserInfo, error) {
	user := &User{
		ID:            uuid.New().String(),
		Firstname:     firstname,
		Lastname:      lastname,
		Email:         strings.ToLower(email),
		PasswordHash:  passwordHash,
		Enabled:       false,
		AccountLocked: false,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	return toUserInfo(user), nil
}

func (s *Service) Enable(ctx context.Context, userID string) error {
	return s.repo.Enable(ctx, userID)
}

func (s *Service) EmailExists(
	ctx context.Context,
	email string,
) (bool, error) {
	return s.repo.ExistsByEmail(ctx, strings.ToLower(email))
}

func (s *Service) ResolveByEmail(
	ctx context.Context,
	email string,
) (*middleware.Identity, error) {
	user, err := s.repo.GetByEmail(ctx, strings.ToLower(email))
	if err != nil {
		return nil, err
	}

	return &middleware.Identity{
		UserID:   user.ID,
		Email:    user.Email,
		FullName: user.FullName(),
		Enabled:  user.Enabled,
		Locked:   user.AccountLocked,
	}, nil
}

func toUserInfo(u *User) *auth.UserInfo {
	return &auth.UserInfo{
		ID:            u.ID,
		Email:         u.Email,
		Firstname:     u.Firstname,
		Lastname:      u.Lastname,
		FullName:      u.FullName(),
		PasswordHash:  u.PasswordHash,
		Enabled:       u.Enabled,
		AccountLocked: u.AccountLocked,
		Roles:         u.Roles,
	}
}

var (
	_ auth.UserProvider           = (*Service)(nil)
	_ middleware.IdentityResolver = (*Service)(nil)
)
