package course

import (
	"context"
	"strconv"
	"time"

	"github.com/pkg/errors"

	"github.com/fineduca/backend/core"
)

type (
	Difficulty string
	Icon       string
)

const (
	Beginner     Difficulty = "beginner"
	Intermediate Difficulty = "intermediate"

	IconTax        Icon = "tax"
	IconInvestment Icon = "investment"
	IconBudget     Icon = "budget"
)

var (
	ErrNotFound = errors.New("course not found")

	nowFunc = time.Now // mockable
)

type QuizQuestion struct {
	Question           string   `json:"question" validate:"required"`
	Options            []string `json:"options" validate:"required,len=4,dive,required"` // order significant, displayed as-is
	CorrectAnswerIndex int      `json:"correctAnswerIndex" validate:"min=0,max=3"`
}

// Lesson is referenced by Progress through its index within the course.
type Lesson struct {
	Title   string         `json:"title" validate:"required"`
	Content string         `json:"content" validate:"required"`
	Quiz    []QuizQuestion `json:"quiz,omitempty" validate:"omitempty,dive"`
}

// Course is immutable once created; generated courses are persisted verbatim.
type Course struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Icon        Icon       `json:"icon"`
	Difficulty  Difficulty `json:"difficulty"`
	Lessons     []Lesson   `json:"lessons"`
}

// GeneratedContent is what the content provider returns for a topic; the
// catalog turns it into a Course by assigning an identifier and the topic as
// title.
type GeneratedContent struct {
	Description string     `json:"description" validate:"required"`
	Icon        Icon       `json:"icon" validate:"required,oneof=tax investment budget"`
	Difficulty  Difficulty `json:"difficulty" validate:"required,oneof=beginner intermediate"`
	Lessons     []Lesson   `json:"lessons" validate:"required,min=1,dive"`
}

func (gc GeneratedContent) Validate() error {
	return core.Validate.Struct(gc)
}

// NewCourse contains information needed to request a course generation.
type NewCourse struct {
	Topic      string     `json:"topic" validate:"required"`
	Difficulty Difficulty `json:"difficulty" validate:"required,oneof=beginner intermediate"`
}

func (nc *NewCourse) Validate() error {
	nc.Topic = core.CleanString(nc.Topic)
	return core.Validate.Struct(nc)
}

// NewCourseID builds a unique identifier for a generated course: the
// slugified topic plus a creation-time disambiguator, so concurrent
// generations of the same topic never collide on the same identifier.
func NewCourseID(topic string) string {
	return core.Slugify(topic) + "-" + strconv.FormatInt(nowFunc().UnixNano()/int64(time.Millisecond), 10)
}

type (
	// Repository persists a user's stored course records.
	Repository interface {
		ListUserCourses(userID string) ([]Course, error)
		// InsertUserCourses persists courses as user-course records in one batch.
		InsertUserCourses(userID string, courses []Course) error
	}

	// Generator produces structured course content for a topic.
	Generator interface {
		GenerateCourse(ctx context.Context, topic string, difficulty Difficulty) (GeneratedContent, error)
	}
)
