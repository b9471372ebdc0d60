package userdata

import (
	"github.com/fineduca/backend/core/course"
	"github.com/fineduca/backend/core/goal"
	"github.com/fineduca/backend/core/ledger"
	"github.com/fineduca/backend/core/profile"
	"github.com/fineduca/backend/core/progress"
)

// State is the complete per-user snapshot served to clients. It is a value;
// every read hands out an independent copy so callers can never observe a
// half-applied mutation.
type State struct {
	Courses           map[string]course.Course `json:"courses"`
	Progress          progress.Progress        `json:"progress"`
	Goals             []goal.Goal              `json:"goals"`
	PointsHistory     []ledger.PointEvent      `json:"points_history"`
	FullName          string                   `json:"full_name,omitempty"`
	PictureURL        string                   `json:"picture_url,omitempty"`
	Theme             profile.Theme            `json:"theme"`
	ColorScheme       profile.ColorScheme      `json:"color_scheme"`
	DashboardImageURL string                   `json:"dashboard_image_url,omitempty"`
}

// DefaultState is the signed-out snapshot: no courses, empty progress and
// history, the default theme in light mode.
func DefaultState() State {
	return State{
		Courses:       make(map[string]course.Course),
		Progress:      progress.New(),
		Goals:         []goal.Goal{},
		PointsHistory: []ledger.PointEvent{},
		Theme:         profile.DefaultTheme(),
		ColorScheme:   profile.SchemeLight,
	}
}

// TotalPoints folds the points history; the score is never stored.
func (s State) TotalPoints() int {
	return ledger.TotalPoints(s.PointsHistory)
}

func (s State) clone() State {
	cp := s
	cp.Courses = make(map[string]course.Course, len(s.Courses))
	for id, crs := range s.Courses {
		cp.Courses[id] = crs
	}
	cp.Progress = s.Progress.Clone()
	cp.Goals = append([]goal.Goal{}, s.Goals...)
	cp.PointsHistory = append([]ledger.PointEvent{}, s.PointsHistory...)
	return cp
}
