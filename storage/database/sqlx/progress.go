package sqlxrepos

import (
	"database/sql"
	"encoding/json"

	"github.com/jmoiron/sqlx"
	"github.com/jmoiron/sqlx/types"
	"github.com/pkg/errors"

	"github.com/fineduca/backend/core/progress"
	"github.com/fineduca/backend/storage/database"
)

type progressRow struct {
	CoursesCompleted types.JSONText `db:"courses_completed"`
	QuizzesPassed    types.JSONText `db:"quizzes_passed"`
}

type progressRepository struct {
	db *sqlx.DB
}

var _ progress.Repository = (*progressRepository)(nil) // interface compliance check

func NewProgressRepository(db *sqlx.DB) *progressRepository {
	return &progressRepository{db: db}
}

func (repo progressRepository) GetProgress(userID string) (progress.Progress, error) {
	var row progressRow
	err := repo.db.Get(&row, `SELECT courses_completed, quizzes_passed FROM progress WHERE user_id = $1`, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return progress.Progress{}, progress.ErrNotFound
		}
		return progress.Progress{}, database.TranslateError(err)
	}

	p := progress.New()
	if err = json.Unmarshal(row.CoursesCompleted, &p.CoursesCompleted); err != nil {
		return progress.Progress{}, errors.Wrap(err, "decoding completed courses")
	}
	if err = json.Unmarshal(row.QuizzesPassed, &p.QuizzesPassed); err != nil {
		return progress.Progress{}, errors.Wrap(err, "decoding passed quizzes")
	}
	return p, nil
}

func (repo progressRepository) CreateProgress(userID string) error {
	_, err := repo.db.Exec(`INSERT INTO progress (user_id) VALUES ($1)`, userID)
	return database.TranslateError(err)
}

// UpdateProgress persists both fields in one write.
func (repo progressRepository) UpdateProgress(userID string, p progress.Progress) error {
	completed, err := json.Marshal(p.CoursesCompleted)
	if err != nil {
		return errors.Wrap(err, "encoding completed courses")
	}
	passed, err := json.Marshal(p.QuizzesPassed)
	if err != nil {
		return errors.Wrap(err, "encoding passed quizzes")
	}

	q := `UPDATE progress SET courses_completed = $2, quizzes_passed = $3, updated_at = now() WHERE user_id = $1`
	res, err := repo.db.Exec(q, userID, types.JSONText(completed), types.JSONText(passed))
	if err != nil {
		return database.TranslateError(err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return progress.ErrNotFound
	}
	return nil
}
