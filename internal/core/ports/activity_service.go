package ports

import (
	"context"

	"github.com/calckit/calculator-service/internal/core/domain"
)

// ActivityRecorder accepts activity events for asynchronous persistence.
// Record must not block the calling request beyond a buffered enqueue.
type ActivityRecorder interface {
	Record(event domain.ActivityEvent)
}

// ActivityService persists queued events and serves the per-user trail.
type ActivityService interface {
	Process(ctx context.Context, event domain.ActivityEvent) error
	ListByUser(ctx context.Context, userID string, limit int64) ([]*domain.ActivityEvent, error)
}
