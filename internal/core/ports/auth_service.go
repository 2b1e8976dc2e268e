package ports

import (
	"context"

	"github.com/lupashe/backoffice/internal/core/domain"
)

type AuthService interface {
	Login(ctx context.Context, username, password string) (*domain.LoginResult, error)
	Register(ctx context.Context, in domain.RegisterInput) (*domain.PublicUser, error)
	Refresh(ctx context.Context, refreshToken string) (string, error)
	Me(ctx context.Context, id domain.Identity) (*domain.PublicUser, error)
}

// TokenIssuer mints signed access and refresh tokens.
type TokenIssuer interface {
	IssueAccessToken(id domain.Identity) (string, error)
	IssueRefreshToken(id domain.Identity) (string, error)
}

// TokenVerifier checks tokens minted by a TokenIssuer.
type TokenVerifier interface {
	VerifyAccessToken(token string) (domain.Identity, error)
	VerifyRefreshToken(token string) (domain.Identity, error)
}

// TokenCodec both issues and verifies tokens.
type TokenCodec interface {
	TokenIssuer
	TokenVerifier
}
