// AngelaMos | 2026
// service.go

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/carterperez-dev/bookhive/internal/core"
)

var (
	ErrEmailExists  = errors.New("email already exists")
	ErrInvalidToken = errors.New("invalid activation token")
	ErrExpiredToken = errors.New("activation token expired")
)

const activationTokenTTL = 5 * time.Minute

type UserInfo struct {
	ID            string
	Email         string
	Firstname     string
	Lastname      string
	FullName      string
	PasswordHash  string
	Enabled       bool
	AccountLocked bool
	Roles         []string
}

type UserProvider interface {
	GetByID(ctx context.Context, id string) (*UserInfo, error)
	GetByEmail(ctx context.Context, email string) (*UserInfo, error)
	Create(
		ctx context.Context,
		firstname, lastname, email, passwordHash string,
	) (*UserInfo, error)
	Enable(ctx context.Context, userID string) error
	EmailExists(ctx context.Context, email string) (bool, error)
}

// Mailer delivers the activation email. Implementations are expected to
// be safe for concurrent use.
type Mailer interface {
	SendActivation(ctx context.Context, to, name, code string) error
}

type Service struct {
	repo         Repository
	jwt          *JWTManager
	userProvider UserProvider
	mailer       Mailer
	mailTimeout  time.Duration

	// overridable for tests
	generateCode func() (string, error)
	now          func() time.Time
}

func NewService(
	repo Repository,
	jwt *JWTManager,
	userProvider UserProvider,
	mailer Mailer,
	mailTimeout time.Duration,
) *Service {
	if mailTimeout <= 0 {
		mailTimeout = 30 * time.Second
	}

	return &Service{
		repo:         repo,
		jwt:          jwt,
		userProvider: userProvider,
		mailer:       mailer,
		mailTimeout:  mailTimeout,
		generateCode: core.GenerateActivationCode,
		now:          time.Now,
	}
}

// Register creates a disabled account, stores a fresh activation token
// and mails the code without blocking the request.
func (s *Service) Register(ctx context.Context, req RegisterRequest) error {
	exists, err := s.userProvider.EmailExists(ctx, req.Email)
	if err != nil {
		return fmt.Errorf("check email: %w", err)
	}
	if exists {
		return ErrEmailExists
	}

	passwordHash, err := core.HashPassword(req.Password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	user, err := s.userProvider.Create(
		ctx,
		req.Firstname,
		req.Lastname,
		req.Email,
		passwordHash,
	)
	if err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			return ErrEmailExists
		}
		return fmt.Errorf("create user: %w", err)
	}

	return s.sendActivationToken(ctx, user)
}

// Authenticate checks credentials and mints the access token. Lockout
// and disabled states map to their own business codes before the
// password is even considered.
func (s *Service) Authenticate(
	ctx context.Context,
	req AuthenticationRequest,
) (*AuthenticationResponse, error) {
	user, err := s.userProvider.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			//nolint:errcheck // timing attack prevention - always verify to prevent enumeration
			_, _, _ = core.VerifyPasswordTimingSafe(req.Password, nil)
			return nil, core.BusinessError(
				core.CodeBadCredentials,
				"username or password is incorrect",
			)
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	if user.AccountLocked {
		return nil, core.BusinessError(
			core.CodeAccountLocked,
			"user account is locked",
		)
	}

	if !user.Enabled {
		return nil, core.BusinessError(
			core.CodeAccountDisabled,
			"user account is disabled",
		)
	}

	valid, _, err := core.VerifyPasswordTimingSafe(
		req.Password,
		&user.PasswordHash,
	)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}

	if !valid {
		return nil, core.BusinessError(
			core.CodeBadCredentials,
			"username or password is incorrect",
		)
	}

	token, err := s.jwt.CreateAccessToken(user.Email, user.FullName)
	if err != nil {
		return nil, fmt.Errorf("create access token: %w", err)
	}

	return &AuthenticationResponse{Token: token}, nil
}

// ActivateAccount consumes an activation code. An expired code triggers
// exactly one replacement token and email; a code that was already used
// is rejected outright.
func (s *Service) ActivateAccount(ctx context.Context, code string) error {
	token, err := s.repo.FindByToken(ctx, code)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return ErrInvalidToken
		}
		return fmt.Errorf("find token: %w", err)
	}

	if token.IsValidated() {
		return ErrInvalidToken
	}

	user, err := s.userProvider.GetByID(ctx, token.UserID)
	if err != nil {
		return fmt.Errorf("get user: %w", err)
	}

	if s.now().After(token.ExpiresAt) {
		if err := s.sendActivationToken(ctx, user); err != nil {
			return fmt.Errorf("reissue token: %w", err)
		}
		return ErrExpiredToken
	}

	if err := s.userProvider.Enable(ctx, user.ID); err != nil {
		return fmt.Errorf("enable user: %w", err)
	}

	if err := s.repo.MarkValidated(ctx, token.ID); err != nil {
		return fmt.Errorf("consume token: %w", err)
	}

	return nil
}

// StartTokenCleanup purges stale activation tokens in the background
// until ctx is cancelled. Tokens linger for a day past expiry so a user
// activating with a stale code still gets the reissue flow.
func (s *Service) StartTokenCleanup(
	ctx context.Context,
	interval time.Duration,
) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				deleted, err := s.repo.DeleteExpired(ctx)
				if err != nil {
					slog.Error("activation token cleanup", "error", err)
					continue
				}
				if deleted > 0 {
					slog.Info("expired activation tokens removed",
						"count", deleted,
					)
				}
			}
		}
	}()
}

func (s *Service) sendActivationToken(
	ctx context.Context,
	user *UserInfo,
) error {
	code, err := s.generateCode()
	if err != nil {
		return fmt.Errorf("generate activation code: %w", err)
	}

	token := &ActivationToken{
		ID:        uuid.New().String(),
		Token:     code,
		UserID:    user.ID,
		ExpiresAt: s.now().Add(activationTokenTTL),
	}

	if err := s.repo.Create(ctx, token); err != nil {
		return fmt.Errorf("store activation token: %w", err)
	}

	// Delivery is detached from the request; a failed send is logged
	// and the user can re-trigger it by activating with the stale code.
	go func() {
		sendCtx, cancel := context.WithTimeout(
			context.Background(),
			s.mailTimeout,
		)
		defer cancel()

		if err := s.mailer.SendActivation(
			sendCtx,
			user.Email,
			user.FullName,
			code,
		); err != nil {
			slog.Error("send activation email",
				"error", err,
				"email", user.Email,
			)
		}
	}()

	return nil
}
