package progress

import (
	"sort"

	"github.com/pkg/errors"
)

var ErrNotFound = errors.New("progress not found")

// Progress is the per-user record of completed courses and passed quiz
// lessons. A course identifier appears in CoursesCompleted only when
// QuizzesPassed holds an entry for every lesson of that course.
type Progress struct {
	CoursesCompleted []string         `json:"coursesCompleted"`
	QuizzesPassed    map[string][]int `json:"quizzesPassed"` // courseID -> lesson indices
}

func New() Progress {
	return Progress{
		CoursesCompleted: []string{},
		QuizzesPassed:    map[string][]int{},
	}
}

func (p Progress) IsCourseCompleted(courseID string) bool {
	for _, id := range p.CoursesCompleted {
		if id == courseID {
			return true
		}
	}
	return false
}

func (p Progress) IsQuizPassed(courseID string, lessonIndex int) bool {
	for _, idx := range p.QuizzesPassed[courseID] {
		if idx == lessonIndex {
			return true
		}
	}
	return false
}

// Clone returns a deep copy so updates never alias the caller's maps.
func (p Progress) Clone() Progress {
	cp := Progress{
		CoursesCompleted: make([]string, len(p.CoursesCompleted)),
		QuizzesPassed:    make(map[string][]int, len(p.QuizzesPassed)),
	}
	copy(cp.CoursesCompleted, p.CoursesCompleted)
	for id, idxs := range p.QuizzesPassed {
		cp.QuizzesPassed[id] = append([]int(nil), idxs...)
	}
	return cp
}

// withQuizPassed returns a copy with lessonIndex recorded for the course
// (idempotent union, kept ordered).
func (p Progress) withQuizPassed(courseID string, lessonIndex int) Progress {
	if p.IsQuizPassed(courseID, lessonIndex) {
		return p
	}
	cp := p.Clone()
	idxs := append(cp.QuizzesPassed[courseID], lessonIndex)
	sort.Ints(idxs)
	cp.QuizzesPassed[courseID] = idxs
	return cp
}

// Repository is the store for the per-user progress singleton.
type Repository interface {
	GetProgress(userID string) (Progress, error)
	CreateProgress(userID string) error
	// UpdateProgress persists both fields in one write.
	UpdateProgress(userID string, p Progress) error
}
