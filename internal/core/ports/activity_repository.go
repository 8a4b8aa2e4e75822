package ports

import (
	"context"

	"github.com/calckit/calculator-service/internal/core/domain"
)

// ActivityRepository stores the append-only activity trail.
type ActivityRepository interface {
	Insert(ctx context.Context, event *domain.ActivityEvent) error
	ListByUser(ctx context.Context, userID string, limit int64) ([]*domain.ActivityEvent, error)
}
