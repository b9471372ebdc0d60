package sqlxrepos

import (
	"github.com/jmoiron/sqlx"

	"github.com/fineduca/backend/core/ledger"
	"github.com/fineduca/backend/storage/database"
)

type pointsRepository struct {
	db *sqlx.DB
}

var _ ledger.Repository = (*pointsRepository)(nil) // interface compliance check

func NewPointsRepository(db *sqlx.DB) *pointsRepository {
	return &pointsRepository{db: db}
}

func (repo pointsRepository) ListPointEvents(userID string) ([]ledger.PointEvent, error) {
	var events []ledger.PointEvent
	q := `
SELECT points, reason, (extract(epoch FROM created_at) * 1000)::bigint AS timestamp
FROM points_history
WHERE user_id = $1
ORDER BY created_at, id`
	if err := repo.db.Select(&events, q, userID); err != nil {
		return nil, database.TranslateError(err)
	}
	return events, nil
}

func (repo pointsRepository) InsertPointEvent(userID string, points int, reason string) (ledger.PointEvent, error) {
	evt := ledger.PointEvent{Points: points, Reason: reason}
	q := `
INSERT INTO points_history (user_id, points, reason)
VALUES ($1, $2, $3)
RETURNING (extract(epoch FROM created_at) * 1000)::bigint`
	if err := repo.db.Get(&evt.Timestamp, q, userID, points, reason); err != nil {
		return ledger.PointEvent{}, database.TranslateError(err)
	}
	return evt, nil
}
