package sqlxrepos

import (
	"encoding/json"

	"github.com/jmoiron/sqlx"
	"github.com/jmoiron/sqlx/types"
	"github.com/pkg/errors"

	"github.com/fineduca/backend/core/course"
	"github.com/fineduca/backend/storage/database"
)

type courseRepository struct {
	db *sqlx.DB
}

var _ course.Repository = (*courseRepository)(nil) // interface compliance check

func NewCourseRepository(db *sqlx.DB) *courseRepository {
	return &courseRepository{db: db}
}

func (repo courseRepository) ListUserCourses(userID string) ([]course.Course, error) {
	var rows []types.JSONText
	q := `SELECT course_data FROM user_courses WHERE user_id = $1 ORDER BY created_at`
	if err := repo.db.Select(&rows, q, userID); err != nil {
		return nil, database.TranslateError(err)
	}

	courses := make([]course.Course, 0, len(rows))
	for _, raw := range rows {
		var crs course.Course
		if err := json.Unmarshal(raw, &crs); err != nil {
			return nil, errors.Wrap(err, "decoding course record")
		}
		courses = append(courses, crs)
	}
	return courses, nil
}

// InsertUserCourses persists courses as user-course records in one batch;
// the transaction keeps the all-or-nothing contract.
func (repo courseRepository) InsertUserCourses(userID string, courses []course.Course) error {
	if len(courses) == 0 {
		return nil
	}

	tx, err := repo.db.Beginx()
	if err != nil {
		return database.TranslateError(err)
	}

	q := `INSERT INTO user_courses (user_id, course_id, course_data) VALUES ($1, $2, $3)`
	for _, crs := range courses {
		data, err := json.Marshal(crs)
		if err != nil {
			_ = tx.Rollback()
			return errors.Wrapf(err, "encoding course %q", crs.ID)
		}
		if _, err = tx.Exec(q, userID, crs.ID, types.JSONText(data)); err != nil {
			_ = tx.Rollback()
			return database.TranslateError(err)
		}
	}
	return database.TranslateError(tx.Commit())
}
