package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/calckit/calculator-service/internal/core/domain"
	"github.com/calckit/calculator-service/internal/core/ports"
)

// CalculationService implements the owner-scoped calculation operations on
// top of the operation dispatch and compute/persist policy in domain.
type CalculationService struct {
	repo     ports.CalculationRepository
	activity ports.ActivityRecorder
	log      zerolog.Logger
}

func NewCalculationService(repo ports.CalculationRepository, activity ports.ActivityRecorder, log zerolog.Logger) *CalculationService {
	return &CalculationService{repo: repo, activity: activity, log: log}
}

// Create validates the operation, computes the result with idempotent-create
// semantics and persists the record under the owner.
func (s *CalculationService) Create(ctx context.Context, userID string, in ports.CalculationInput) (*domain.Calculation, error) {
	op, err := domain.ParseOperation(in.Operation)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	calc := &domain.Calculation{
		A:         in.A,
		B:         in.B,
		Operation: op,
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := calc.Compute(true, false); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, calc)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to create calculation")
		return nil, err
	}

	s.record(domain.ActivityEvent{UserID: userID, Action: domain.ActivityCalculationCreate, CalculationID: created.ID})
	s.log.Info().Str("calculation_id", created.ID).Str("operation", string(op)).Msg("calculation created")

	return created, nil
}

func (s *CalculationService) Get(ctx context.Context, userID, id string) (*domain.Calculation, error) {
	return s.repo.FindByIDAndOwner(ctx, id, userID)
}

func (s *CalculationService) List(ctx context.Context, userID string) ([]*domain.Calculation, error) {
	return s.repo.ListByOwner(ctx, userID)
}

// Update replaces operands and operation wholesale and recomputes with
// force=true, always refreshing the stored result.
func (s *CalculationService) Update(ctx context.Context, userID, id string, in ports.CalculationInput) (*domain.Calculation, error) {
	op, err := domain.ParseOperation(in.Operation)
	if err != nil {
		return nil, err
	}

	calc, err := s.repo.FindByIDAndOwner(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	calc.A = in.A
	calc.B = in.B
	calc.Operation = op
	calc.UpdatedAt = time.Now().UTC()

	if _, err := calc.Compute(true, true); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, calc); err != nil {
		s.log.Error().Err(err).Str("calculation_id", id).Msg("failed to update calculation")
		return nil, err
	}

	s.record(domain.ActivityEvent{UserID: userID, Action: domain.ActivityCalculationUpdate, CalculationID: id})

	return calc, nil
}

func (s *CalculationService) Delete(ctx context.Context, userID, id string) error {
	if err := s.repo.DeleteByIDAndOwner(ctx, id, userID); err != nil {
		return err
	}
	s.record(domain.ActivityEvent{UserID: userID, Action: domain.ActivityCalculationDelete, CalculationID: id})
	return nil
}

func (s *CalculationService) record(event domain.ActivityEvent) {
	if s.activity == nil {
		return
	}
	event.Timestamp = time.Now().UTC()
	s.activity.Record(event)
}
