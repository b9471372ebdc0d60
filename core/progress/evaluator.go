package progress

import (
	"github.com/pkg/errors"

	"github.com/fineduca/backend/core"
	"github.com/fineduca/backend/core/course"
	"github.com/fineduca/backend/core/ledger"
)

// PassThresholdPercent is the minimum share of correct answers for a quiz
// attempt to pass.
const PassThresholdPercent = 70

// Attempt is one ordered selection per question of the target lesson's quiz.
type Attempt struct {
	CourseID    string `json:"course_id" validate:"required"`
	LessonIndex int    `json:"lesson_index" validate:"min=0"`
	Answers     []int  `json:"answers" validate:"required"`
}

// Result reports the outcome of a quiz attempt. Awarded carries the point
// events that were successfully recorded remotely, in award order, for the
// caller to fold into its local ledger.
type Result struct {
	Score           int                 `json:"score"`
	Total           int                 `json:"total"`
	Passed          bool                `json:"passed"`
	AlreadyPassed   bool                `json:"already_passed"`
	CourseCompleted bool                `json:"course_completed"`
	Awarded         []ledger.PointEvent `json:"awarded,omitempty"`
}

// Evaluator scores quiz attempts and, on a first pass, drives the ledger and
// progress updates.
type Evaluator struct {
	repo   Repository
	ledger *ledger.Service
	logger core.Logger
}

func NewEvaluator(repo Repository, ledgerSvc *ledger.Service, logger core.Logger) *Evaluator {
	return &Evaluator{repo: repo, ledger: ledgerSvc, logger: logger}
}

// Complete scores the attempt against the lesson's quiz and applies the pass
// side effects. It returns the updated progress (equal to cur on fail or
// repeat pass) alongside the result; the caller owns folding both into local
// state. A persist failure still returns the updated progress, since the
// ledger events already committed remotely (local and remote reconverge on
// the next load).
func (ev *Evaluator) Complete(userID string, crs course.Course, cur Progress, att Attempt) (Progress, Result, error) {
	if att.LessonIndex < 0 || att.LessonIndex >= len(crs.Lessons) {
		return cur, Result{}, core.NewValidationError(errors.Errorf("course %q has no lesson %d", crs.ID, att.LessonIndex))
	}
	quiz := crs.Lessons[att.LessonIndex].Quiz
	if len(att.Answers) != len(quiz) {
		return cur, Result{}, core.NewValidationError(errors.Errorf("attempt has %d answers, quiz has %d questions", len(att.Answers), len(quiz)))
	}

	res := Result{Total: len(quiz)}
	for i, q := range quiz {
		if att.Answers[i] < 0 || att.Answers[i] >= len(q.Options) {
			return cur, Result{}, core.NewValidationError(errors.Errorf("answer %d out of range", i))
		}
		if att.Answers[i] == q.CorrectAnswerIndex {
			res.Score++
		}
	}
	// a lesson without a quiz has nothing to pass; an empty attempt fails
	res.Passed = res.Total > 0 && res.Score*100 >= res.Total*PassThresholdPercent

	// fail, or repeat pass of an already-passed lesson: no state mutation,
	// no remote write
	if !res.Passed {
		return cur, res, nil
	}
	if cur.IsQuizPassed(att.CourseID, att.LessonIndex) {
		res.AlreadyPassed = true
		return cur, res, nil
	}

	ev.award(userID, ledger.QuizPassedPoints, ledger.ReasonQuizPassed, &res)

	updated := cur.withQuizPassed(att.CourseID, att.LessonIndex)
	if len(updated.QuizzesPassed[att.CourseID]) == len(crs.Lessons) && !updated.IsCourseCompleted(att.CourseID) {
		updated.CoursesCompleted = append(updated.CoursesCompleted, att.CourseID)
		res.CourseCompleted = true
		ev.award(userID, ledger.CourseCompletedPoints, ledger.ReasonCourseCompleted, &res)
	}

	if err := ev.repo.UpdateProgress(userID, updated); err != nil {
		return updated, res, errors.Wrap(err, "persisting progress")
	}
	return updated, res, nil
}

// award records a point event remotely and folds it into the result on
// success. A failed insert is logged and skipped: the attempt outcome stands
// either way, matching the ledger's best-effort append policy.
func (ev *Evaluator) award(userID string, points int, reason string, res *Result) {
	evt, err := ev.ledger.Award(userID, points, reason)
	if err != nil {
		ev.logger.Warn("recording point event failed", err)
		return
	}
	res.Awarded = append(res.Awarded, evt)
}
