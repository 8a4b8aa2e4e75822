package ports

import (
	"context"

	"github.com/calckit/calculator-service/internal/core/domain"
)

// CalculationInput carries the caller-supplied fields of a calculation.
// Operation arrives as the raw request string and is resolved by the service.
type CalculationInput struct {
	A         float64
	B         float64
	Operation string
}

// CalculationService exposes the owner-scoped calculation operations.
type CalculationService interface {
	Create(ctx context.Context, userID string, in CalculationInput) (*domain.Calculation, error)
	Get(ctx context.Context, userID, id string) (*domain.Calculation, error)
	List(ctx context.Context, userID string) ([]*domain.Calculation, error)
	Update(ctx context.Context, userID, id string, in CalculationInput) (*domain.Calculation, error)
	Delete(ctx context.Context, userID, id string) error
}
