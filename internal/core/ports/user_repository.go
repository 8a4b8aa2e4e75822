package ports

import (
	"context"

	"github.com/calckit/calculator-service/internal/core/domain"
)

// UserRepository defines the persistence interface for user principals.
// Create must fail with domain.ErrUserExists on a username or email collision.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
}
