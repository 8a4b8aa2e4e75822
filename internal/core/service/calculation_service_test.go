package service

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/rs/zerolog"

	"github.com/calckit/calculator-service/internal/core/domain"
	"github.com/calckit/calculator-service/internal/core/ports"
)

type stubCalcRepo struct {
	calcs  map[string]*domain.Calculation
	nextID int
}

func newStubCalcRepo() *stubCalcRepo {
	return &stubCalcRepo{calcs: make(map[string]*domain.Calculation)}
}

func cloneCalc(c *domain.Calculation) *domain.Calculation {
	clone := *c
	if c.Result != nil {
		v := *c.Result
		clone.Result = &v
	}
	return &clone
}

func (r *stubCalcRepo) Create(_ context.Context, calc *domain.Calculation) (*domain.Calculation, error) {
	r.nextID++
	stored := cloneCalc(calc)
	stored.ID = "calc-" + strconv.Itoa(r.nextID)
	r.calcs[stored.ID] = stored
	return cloneCalc(stored), nil
}

func (r *stubCalcRepo) FindByIDAndOwner(_ context.Context, id, userID string) (*domain.Calculation, error) {
	c, ok := r.calcs[id]
	if !ok || c.UserID != userID {
		return nil, domain.ErrCalculationNotFound
	}
	return cloneCalc(c), nil
}

func (r *stubCalcRepo) ListByOwner(_ context.Context, userID string) ([]*domain.Calculation, error) {
	out := make([]*domain.Calculation, 0)
	for _, c := range r.calcs {
		if c.UserID == userID {
			out = append(out, cloneCalc(c))
		}
	}
	return out, nil
}

func (r *stubCalcRepo) Update(_ context.Context, calc *domain.Calculation) error {
	c, ok := r.calcs[calc.ID]
	if !ok || c.UserID != calc.UserID {
		return domain.ErrCalculationNotFound
	}
	r.calcs[calc.ID] = cloneCalc(calc)
	return nil
}

func (r *stubCalcRepo) DeleteByIDAndOwner(_ context.Context, id, userID string) error {
	c, ok := r.calcs[id]
	if !ok || c.UserID != userID {
		return domain.ErrCalculationNotFound
	}
	delete(r.calcs, id)
	return nil
}

func TestCalculationService_Create(t *testing.T) {
	repo := newStubCalcRepo()
	activity := &recordedEvents{}
	svc := NewCalculationService(repo, activity, zerolog.Nop())

	calc, err := svc.Create(context.Background(), "u1", ports.CalculationInput{A: 10, B: 4, Operation: "subtract"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if calc.ID == "" {
		t.Fatalf("expected assigned id")
	}
	if calc.Result == nil || *calc.Result != 6 {
		t.Fatalf("expected result 6, got %v", calc.Result)
	}
	if calc.UserID != "u1" {
		t.Fatalf("expected owner u1, got %q", calc.UserID)
	}
	if len(activity.events) != 1 || activity.events[0].Action != domain.ActivityCalculationCreate {
		t.Fatalf("expected create activity event, got %+v", activity.events)
	}
}

func TestCalculationService_Create_UnsupportedOperation(t *testing.T) {
	svc := NewCalculationService(newStubCalcRepo(), nil, zerolog.Nop())

	if _, err := svc.Create(context.Background(), "u1", ports.CalculationInput{A: 1, B: 2, Operation: "modulo"}); !errors.Is(err, domain.ErrUnsupportedOperation) {
		t.Fatalf("expected ErrUnsupportedOperation, got %v", err)
	}
}

func TestCalculationService_Create_DivideByZero(t *testing.T) {
	repo := newStubCalcRepo()
	svc := NewCalculationService(repo, nil, zerolog.Nop())

	if _, err := svc.Create(context.Background(), "u1", ports.CalculationInput{A: 1, B: 0, Operation: "divide"}); !errors.Is(err, domain.ErrDivisionByZero) {
		t.Fatalf("expected ErrDivisionByZero, got %v", err)
	}
	if len(repo.calcs) != 0 {
		t.Fatalf("failed create must not persist a record")
	}
}

func TestCalculationService_Update_RecomputesWholesale(t *testing.T) {
	repo := newStubCalcRepo()
	svc := NewCalculationService(repo, nil, zerolog.Nop())

	created, err := svc.Create(context.Background(), "u1", ports.CalculationInput{A: 10, B: 4, Operation: "subtract"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	updated, err := svc.Update(context.Background(), "u1", created.ID, ports.CalculationInput{A: 3, B: 4, Operation: "add"})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.A != 3 || updated.B != 4 || updated.Operation != domain.OpAdd {
		t.Fatalf("fields not replaced wholesale: %+v", updated)
	}
	if updated.Result == nil || *updated.Result != 7 {
		t.Fatalf("expected recomputed result 7, got %v", updated.Result)
	}

	stored := repo.calcs[created.ID]
	if stored.Result == nil || *stored.Result != 7 {
		t.Fatalf("stored result not refreshed, got %v", stored.Result)
	}
}

func TestCalculationService_Update_DivideByZero(t *testing.T) {
	repo := newStubCalcRepo()
	svc := NewCalculationService(repo, nil, zerolog.Nop())

	created, err := svc.Create(context.Background(), "u1", ports.CalculationInput{A: 6, B: 3, Operation: "divide"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if _, err := svc.Update(context.Background(), "u1", created.ID, ports.CalculationInput{A: 6, B: 0, Operation: "divide"}); !errors.Is(err, domain.ErrDivisionByZero) {
		t.Fatalf("expected ErrDivisionByZero, got %v", err)
	}

	// Stored record must keep its previous state.
	stored := repo.calcs[created.ID]
	if stored.B != 3 || stored.Result == nil || *stored.Result != 2 {
		t.Fatalf("failed update must not mutate stored record: %+v", stored)
	}
}

func TestCalculationService_OwnerIsolation(t *testing.T) {
	repo := newStubCalcRepo()
	svc := NewCalculationService(repo, nil, zerolog.Nop())

	created, err := svc.Create(context.Background(), "u1", ports.CalculationInput{A: 1, B: 2, Operation: "add"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	// Another principal reading u1's id gets the same outcome as a missing id.
	_, otherOwner := svc.Get(context.Background(), "u2", created.ID)
	_, missing := svc.Get(context.Background(), "u2", "calc-999")
	if !errors.Is(otherOwner, domain.ErrCalculationNotFound) || !errors.Is(missing, domain.ErrCalculationNotFound) {
		t.Fatalf("expected ErrCalculationNotFound for both, got %v / %v", otherOwner, missing)
	}

	if err := svc.Delete(context.Background(), "u2", created.ID); !errors.Is(err, domain.ErrCalculationNotFound) {
		t.Fatalf("non-owner delete: expected ErrCalculationNotFound, got %v", err)
	}
	if _, err := svc.Update(context.Background(), "u2", created.ID, ports.CalculationInput{A: 1, B: 1, Operation: "add"}); !errors.Is(err, domain.ErrCalculationNotFound) {
		t.Fatalf("non-owner update: expected ErrCalculationNotFound, got %v", err)
	}

	list, err := svc.List(context.Background(), "u2")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("u2 must not see u1's calculations, got %d", len(list))
	}
}

func TestCalculationService_Delete(t *testing.T) {
	repo := newStubCalcRepo()
	svc := NewCalculationService(repo, nil, zerolog.Nop())

	created, err := svc.Create(context.Background(), "u1", ports.CalculationInput{A: 1, B: 2, Operation: "multiply"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := svc.Delete(context.Background(), "u1", created.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := svc.Get(context.Background(), "u1", created.ID); !errors.Is(err, domain.ErrCalculationNotFound) {
		t.Fatalf("expected ErrCalculationNotFound after delete, got %v", err)
	}
}
