package ledger

// Point awards and their reasons, as recorded in the event log.
const (
	QuizPassedPoints      = 50
	CourseCompletedPoints = 100
	GoalCompletedPoints   = 25

	ReasonQuizPassed      = "Quiz Passou"
	ReasonCourseCompleted = "Curso Completo"
	ReasonGoalCompleted   = "Meta Concluída"
)

// PointEvent is an immutable record of a point-earning action. Timestamp is
// server-assigned, in milliseconds since the epoch. Events are append-only:
// never mutated, never deleted.
type PointEvent struct {
	Points    int    `json:"points"`
	Reason    string `json:"reason"`
	Timestamp int64  `json:"timestamp"`
}

// Repository is the store for a user's point events.
type Repository interface {
	ListPointEvents(userID string) ([]PointEvent, error)
	// InsertPointEvent appends an event and returns it with its
	// server-assigned timestamp.
	InsertPointEvent(userID string, points int, reason string) (PointEvent, error)
}
