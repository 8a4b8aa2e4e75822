package ports

import (
	"context"

	"github.com/calckit/calculator-service/internal/core/domain"
)

// AuthService orchestrates registration and login. Both return a freshly
// issued bearer token alongside the principal.
type AuthService interface {
	Register(ctx context.Context, username, email, password string) (*domain.User, string, error)
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
}
