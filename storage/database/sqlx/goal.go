package sqlxrepos

import (
	"github.com/jmoiron/sqlx"

	"github.com/fineduca/backend/core/goal"
	"github.com/fineduca/backend/storage/database"
)

type goalRepository struct {
	db *sqlx.DB
}

var _ goal.Repository = (*goalRepository)(nil) // interface compliance check

func NewGoalRepository(db *sqlx.DB) *goalRepository {
	return &goalRepository{db: db}
}

func (repo goalRepository) ListGoals(userID string) ([]goal.Goal, error) {
	var goals []goal.Goal
	q := `SELECT id, text, completed FROM goals WHERE user_id = $1 ORDER BY created_at, id`
	if err := repo.db.Select(&goals, q, userID); err != nil {
		return nil, database.TranslateError(err)
	}
	return goals, nil
}

func (repo goalRepository) InsertGoal(userID, text string) (goal.Goal, error) {
	g := goal.Goal{Text: text}
	q := `INSERT INTO goals (user_id, text) VALUES ($1, $2) RETURNING id`
	if err := repo.db.Get(&g.ID, q, userID, text); err != nil {
		return goal.Goal{}, database.TranslateError(err)
	}
	return g, nil
}

func (repo goalRepository) UpdateGoal(id int64, completed bool) error {
	res, err := repo.db.Exec(`UPDATE goals SET completed = $2 WHERE id = $1`, id, completed)
	if err != nil {
		return database.TranslateError(err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return goal.ErrNotFound
	}
	return nil
}
