package goal

import (
	"testing"

	"github.com/pkg/errors"

	"github.com/fineduca/backend/core/ledger"
	testutil "github.com/fineduca/backend/tests"
)

type fakeRepo struct {
	goals     map[int64]Goal
	nextID    int64
	insertErr error
	updateErr error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{goals: make(map[int64]Goal)}
}

func (r *fakeRepo) ListGoals(userID string) ([]Goal, error) {
	out := make([]Goal, 0, len(r.goals))
	for _, g := range r.goals {
		out = append(out, g)
	}
	return out, nil
}

func (r *fakeRepo) InsertGoal(userID, text string) (Goal, error) {
	if r.insertErr != nil {
		return Goal{}, r.insertErr
	}
	r.nextID++
	g := Goal{ID: r.nextID, Text: text}
	r.goals[g.ID] = g
	return g, nil
}

func (r *fakeRepo) UpdateGoal(id int64, completed bool) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	g, ok := r.goals[id]
	if !ok {
		return ErrNotFound
	}
	g.Completed = completed
	r.goals[id] = g
	return nil
}

type fakeLedgerRepo struct {
	events    []ledger.PointEvent
	insertErr error
}

func (r *fakeLedgerRepo) ListPointEvents(userID string) ([]ledger.PointEvent, error) {
	return r.events, nil
}

func (r *fakeLedgerRepo) InsertPointEvent(userID string, points int, reason string) (ledger.PointEvent, error) {
	if r.insertErr != nil {
		return ledger.PointEvent{}, r.insertErr
	}
	evt := ledger.PointEvent{Points: points, Reason: reason, Timestamp: int64(len(r.events) + 1)}
	r.events = append(r.events, evt)
	return evt, nil
}

func setup(t *testing.T) (*Tracker, *fakeRepo, *fakeLedgerRepo) {
	repo := newFakeRepo()
	ledgerRepo := &fakeLedgerRepo{}
	return NewTracker(repo, ledger.NewService(ledgerRepo), testutil.Logger(t)), repo, ledgerRepo
}

func TestAdd(t *testing.T) {
	tracker, repo, _ := setup(t)

	g, err := tracker.Add("usr-1", NewGoal{Text: "  Guardar R$ 500  "})
	if err != nil {
		t.Fatalf("Add() failed: %v", err)
	}
	if g.ID == 0 {
		t.Error("Add() returned no store-assigned id")
	}
	if g.Text != "Guardar R$ 500" {
		t.Errorf("Text = %q, want cleaned text", g.Text)
	}
	if g.Completed {
		t.Error("new goal created as completed")
	}

	// empty/whitespace-only text is rejected locally
	for _, text := range []string{"", "   ", "\t\n"} {
		if _, err = tracker.Add("usr-1", NewGoal{Text: text}); err == nil {
			t.Errorf("Add(%q) error = nil, want validation error", text)
		}
	}
	if len(repo.goals) != 1 {
		t.Errorf("stored goals = %d, want 1 (rejections must not reach the store)", len(repo.goals))
	}

	repo.insertErr = errors.New("boom")
	if _, err = tracker.Add("usr-1", NewGoal{Text: "Quitar o cartão"}); err == nil {
		t.Error("Add() error = nil, want insert failure")
	}
}

func TestToggle(t *testing.T) {
	tracker, repo, ledgerRepo := setup(t)
	g, _ := tracker.Add("usr-1", NewGoal{Text: "Fazer reserva de emergência"})

	// complete: flips flag and awards points
	res, err := tracker.Toggle("usr-1", g)
	if err != nil {
		t.Fatalf("Toggle() failed: %v", err)
	}
	if !res.Goal.Completed {
		t.Error("goal not completed")
	}
	if res.Awarded == nil || res.Awarded.Points != ledger.GoalCompletedPoints || res.Awarded.Reason != ledger.ReasonGoalCompleted {
		t.Errorf("awarded = %+v, want %d-point goal event", res.Awarded, ledger.GoalCompletedPoints)
	}
	if !repo.goals[g.ID].Completed {
		t.Error("remote flag not updated")
	}

	// un-complete: no points
	res, err = tracker.Toggle("usr-1", res.Goal)
	if err != nil {
		t.Fatalf("Toggle() failed: %v", err)
	}
	if res.Goal.Completed {
		t.Error("goal still completed")
	}
	if res.Awarded != nil {
		t.Errorf("awarded = %+v on un-complete, want none", res.Awarded)
	}
	if len(ledgerRepo.events) != 1 {
		t.Errorf("ledger events = %d, want 1", len(ledgerRepo.events))
	}
}

func TestToggleRollback(t *testing.T) {
	tracker, repo, ledgerRepo := setup(t)
	g, _ := tracker.Add("usr-1", NewGoal{Text: "Investir todo mês"})
	repo.updateErr = errors.New("boom")

	res, err := tracker.Toggle("usr-1", g)
	if err == nil {
		t.Fatal("Toggle() error = nil, want persist failure")
	}
	// rollback property: the flag after the operation equals its value before
	if res.Goal.Completed != g.Completed {
		t.Error("goal flag not compensated after persist failure")
	}
	if !res.RolledBack {
		t.Error("result not marked as rolled back")
	}
	// the point event is a permanent reward: it is not retracted
	if len(ledgerRepo.events) != 1 {
		t.Errorf("ledger events = %d, want 1 (award commits independently)", len(ledgerRepo.events))
	}
	if res.Awarded == nil {
		t.Error("awarded event missing from result")
	}
}

func TestToggleAwardFailureIsBestEffort(t *testing.T) {
	tracker, repo, ledgerRepo := setup(t)
	g, _ := tracker.Add("usr-1", NewGoal{Text: "Declarar o IR em dia"})
	ledgerRepo.insertErr = errors.New("boom")

	res, err := tracker.Toggle("usr-1", g)
	if err != nil {
		t.Fatalf("Toggle() failed: %v", err)
	}
	if !res.Goal.Completed || !repo.goals[g.ID].Completed {
		t.Error("toggle did not complete despite award failure")
	}
	if res.Awarded != nil {
		t.Errorf("awarded = %+v, want none", res.Awarded)
	}
}
