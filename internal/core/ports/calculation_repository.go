package ports

import (
	"context"

	"github.com/calckit/calculator-service/internal/core/domain"
)

// CalculationRepository persists calculation records. Every lookup is scoped
// to the owning user: an id owned by someone else behaves exactly like a
// missing id (domain.ErrCalculationNotFound).
type CalculationRepository interface {
	Create(ctx context.Context, calc *domain.Calculation) (*domain.Calculation, error)
	FindByIDAndOwner(ctx context.Context, id, userID string) (*domain.Calculation, error)
	ListByOwner(ctx context.Context, userID string) ([]*domain.Calculation, error)
	Update(ctx context.Context, calc *domain.Calculation) error
	DeleteByIDAndOwner(ctx context.Context, id, userID string) error
}
