package goal

import (
	"github.com/pkg/errors"

	"github.com/fineduca/backend/core"
)

var ErrNotFound = errors.New("goal not found")

// Goal is a user-defined objective. The identifier is store-assigned. Goals
// are toggled, never hard-deleted.
type Goal struct {
	ID        int64  `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// NewGoal contains information needed to create a Goal.
type NewGoal struct {
	Text string `json:"text" validate:"required"`
}

func (ng *NewGoal) Validate() error {
	ng.Text = core.CleanString(ng.Text)
	return core.Validate.Struct(ng)
}

// Repository is the store for a user's goal list.
type Repository interface {
	ListGoals(userID string) ([]Goal, error)
	// InsertGoal creates a goal with completed=false and returns it with its
	// store-assigned identifier.
	InsertGoal(userID, text string) (Goal, error)
	UpdateGoal(id int64, completed bool) error
}
