package ports

import (
	"context"

	"github.com/lupashe/backoffice/internal/core/domain"
)

// UserRepository is the credential store consulted by the authenticator.
// Create must enforce username and non-empty email uniqueness atomically and
// report violations as domain.ErrUsernameTaken or domain.ErrEmailTaken.
type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}
