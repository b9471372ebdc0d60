package ledger

import "github.com/pkg/errors"

// Service appends to and reads the append-only point-event log.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// History returns all of the user's point events.
func (svc *Service) History(userID string) ([]PointEvent, error) {
	events, err := svc.repo.ListPointEvents(userID)
	if err != nil {
		return nil, errors.Wrap(err, "listing point events")
	}
	return events, nil
}

// Award appends a point event and returns it with its server timestamp.
func (svc *Service) Award(userID string, points int, reason string) (PointEvent, error) {
	evt, err := svc.repo.InsertPointEvent(userID, points, reason)
	if err != nil {
		return PointEvent{}, errors.Wrapf(err, "awarding %d points (%s)", points, reason)
	}
	return evt, nil
}

// TotalPoints folds the event list into the user's point total. It is a pure
// function recomputed from the full list on purpose: an incrementally
// maintained counter could drift from the log.
func TotalPoints(events []PointEvent) int {
	var sum int
	for _, evt := range events {
		sum += evt.Points
	}
	return sum
}
