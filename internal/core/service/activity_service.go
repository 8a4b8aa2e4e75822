package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/calckit/calculator-service/internal/core/domain"
	"github.com/calckit/calculator-service/internal/core/ports"
)

type activityService struct {
	repo ports.ActivityRepository
	log  zerolog.Logger
}

// NewActivityService returns an ActivityService persisting the activity trail.
func NewActivityService(repo ports.ActivityRepository, log zerolog.Logger) ports.ActivityService {
	return &activityService{repo: repo, log: log}
}

// Process persists a single queued activity event.
func (s *activityService) Process(ctx context.Context, event domain.ActivityEvent) error {
	if err := s.repo.Insert(ctx, &event); err != nil {
		return fmt.Errorf("process activity: %w", err)
	}
	s.log.Debug().
		Str("user_id", event.UserID).
		Str("action", string(event.Action)).
		Msg("activity recorded")
	return nil
}

func (s *activityService) ListByUser(ctx context.Context, userID string, limit int64) ([]*domain.ActivityEvent, error) {
	return s.repo.ListByUser(ctx, userID, limit)
}
