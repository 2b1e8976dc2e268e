package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/lupashe/backoffice/internal/core/domain"
	"github.com/lupashe/backoffice/internal/core/ports"
)

// DefaultBcryptCost is the work factor applied when none is configured.
const DefaultBcryptCost = 10

const maxPasswordBytes = 72

var _ ports.AuthService = (*AuthService)(nil)

// AuthService implements login, registration and token renewal.
type AuthService struct {
	repo   ports.UserRepository
	tokens ports.TokenCodec
	cost   int
	log    zerolog.Logger

	// dummyHash is compared against when the username is unknown so that
	// both login failure paths spend the same bcrypt time.
	dummyHash []byte
}

func NewAuthService(repo ports.UserRepository, tokens ports.TokenCodec, cost int, log zerolog.Logger) *AuthService {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultBcryptCost
	}
	dummy, err := bcrypt.GenerateFromPassword([]byte("lupashe-dummy-password"), cost)
	if err != nil {
		// Only possible for an out-of-range cost, which was clamped above.
		panic(fmt.Sprintf("auth service: dummy hash: %v", err))
	}
	return &AuthService{repo: repo, tokens: tokens, cost: cost, log: log, dummyHash: dummy}
}

func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.LoginResult, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
			s.log.Debug().Str("username", username).Msg("login rejected: unknown user")
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.log.Debug().Str("username", username).Msg("login rejected: bad password")
		return nil, domain.ErrInvalidCredentials
	}

	id := domain.Identity{UserID: user.ID, Role: user.Role}
	access, err := s.tokens.IssueAccessToken(id)
	if err != nil {
		return nil, fmt.Errorf("login: access token: %w", err)
	}
	refresh, err := s.tokens.IssueRefreshToken(id)
	if err != nil {
		return nil, fmt.Errorf("login: refresh token: %w", err)
	}

	s.log.Info().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("user logged in")

	return &domain.LoginResult{
		AccessToken:  access,
		RefreshToken: refresh,
		User:         user.Public(),
	}, nil
}

func (s *AuthService) Register(ctx context.Context, in domain.RegisterInput) (*domain.PublicUser, error) {
	role, err := domain.ParseRole(in.Role)
	if err != nil {
		return nil, err
	}
	// bcrypt only reads the first 72 bytes.
	if len(in.Password) > maxPasswordBytes {
		return nil, domain.ErrPasswordTooLong
	}

	if err := s.ensureAbsent(ctx, s.repo.FindByUsername, in.Username, domain.ErrUsernameTaken); err != nil {
		return nil, err
	}
	if in.Email != "" {
		if err := s.ensureAbsent(ctx, s.repo.FindByEmail, in.Email, domain.ErrEmailTaken); err != nil {
			return nil, err
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("register: hash password: %w", err)
	}

	now := time.Now().UTC()
	created, err := s.repo.Create(ctx, &domain.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		if errors.Is(err, domain.ErrUsernameTaken) || errors.Is(err, domain.ErrEmailTaken) {
			return nil, err
		}
		return nil, fmt.Errorf("register: %w", err)
	}

	s.log.Info().Str("user_id", created.ID).Str("username", created.Username).Str("role", string(created.Role)).Msg("user registered")

	pub := created.Public()
	return &pub, nil
}

// ensureAbsent fails with conflict when lookup finds a user for key.
func (s *AuthService) ensureAbsent(ctx context.Context, lookup func(context.Context, string) (*domain.User, error), key string, conflict error) error {
	_, err := lookup(ctx, key)
	switch {
	case err == nil:
		return conflict
	case errors.Is(err, domain.ErrUserNotFound):
		return nil
	default:
		return fmt.Errorf("register: %w", err)
	}
}

func (s *AuthService) Refresh(_ context.Context, refreshToken string) (string, error) {
	if refreshToken == "" {
		return "", domain.ErrInvalidRefreshToken
	}

	id, err := s.tokens.VerifyRefreshToken(refreshToken)
	if err != nil {
		if errors.Is(err, domain.ErrServerMisconfigured) {
			return "", err
		}
		s.log.Debug().Err(err).Msg("refresh rejected")
		return "", domain.ErrInvalidRefreshToken
	}

	access, err := s.tokens.IssueAccessToken(id)
	if err != nil {
		return "", fmt.Errorf("refresh: %w", err)
	}
	return access, nil
}

func (s *AuthService) Me(ctx context.Context, id domain.Identity) (*domain.PublicUser, error) {
	user, err := s.repo.FindByID(ctx, id.UserID)
	if err != nil {
		return nil, err
	}
	pub := user.Public()
	return &pub, nil
}
