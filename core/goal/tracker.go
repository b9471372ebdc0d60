package goal

import (
	"github.com/pkg/errors"

	"github.com/fineduca/backend/core"
	"github.com/fineduca/backend/core/ledger"
)

// ToggleResult carries the goal value the caller must converge its local
// state to: the new value on confirmation, or the prior value when the remote
// write failed and the flip was compensated. Any point event recorded along
// the way rides along.
type ToggleResult struct {
	Goal       Goal
	Awarded    *ledger.PointEvent
	RolledBack bool
}

// Tracker owns goal CRUD with optimistic local mutation reconciled against
// remote write outcomes.
type Tracker struct {
	repo   Repository
	ledger *ledger.Service
	logger core.Logger
}

func NewTracker(repo Repository, ledgerSvc *ledger.Service, logger core.Logger) *Tracker {
	return &Tracker{repo: repo, ledger: ledgerSvc, logger: logger}
}

// List fetches the user's goals.
func (t *Tracker) List(userID string) ([]Goal, error) {
	goals, err := t.repo.ListGoals(userID)
	if err != nil {
		return nil, errors.Wrap(err, "listing goals")
	}
	return goals, nil
}

// Add creates a goal from validated input. Empty or whitespace-only text is
// rejected locally, before any remote call.
func (t *Tracker) Add(userID string, ng NewGoal) (Goal, error) {
	if err := ng.Validate(); err != nil {
		return Goal{}, err
	}
	g, err := t.repo.InsertGoal(userID, ng.Text)
	if err != nil {
		return Goal{}, errors.Wrap(err, "adding goal")
	}
	return g, nil
}

// Toggle flips the goal's completed flag as a two-phase operation: the
// optimistic new value is committed remotely and, on failure, compensated
// back to the prior value so local and remote state converge either way.
// Completing a goal awards points first; that append commits independently
// and is not retracted if the toggle-persist then fails.
func (t *Tracker) Toggle(userID string, g Goal) (ToggleResult, error) {
	res := ToggleResult{Goal: g}
	res.Goal.Completed = !g.Completed

	if res.Goal.Completed {
		evt, err := t.ledger.Award(userID, ledger.GoalCompletedPoints, ledger.ReasonGoalCompleted)
		if err != nil {
			t.logger.Warn("recording goal point event failed", err)
		} else {
			res.Awarded = &evt
		}
	}

	if err := t.repo.UpdateGoal(g.ID, res.Goal.Completed); err != nil {
		res.Goal.Completed = g.Completed
		res.RolledBack = true
		return res, errors.Wrap(err, "persisting goal")
	}
	return res, nil
}
