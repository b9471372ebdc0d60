package inmemdb

import (
	"sync"
	"time"

	"github.com/fineduca/backend/core/course"
	"github.com/fineduca/backend/core/goal"
	"github.com/fineduca/backend/core/ledger"
	"github.com/fineduca/backend/core/profile"
	"github.com/fineduca/backend/core/progress"
)

// DB is the in-memory store used in tests and local development. Errors can
// be injected per table to exercise failure paths.
type (
	DB struct {
		profiles *profileTable
		progress *progressTable
		goals    *goalTable
		points   *pointsTable
		courses  *courseTable
	}

	profileTable struct {
		sync.RWMutex
		table map[string]profile.Profile
		// columns reported missing by reads, simulating a remote schema
		// that predates them
		missingColumns []string
		err            error
	}

	progressTable struct {
		sync.RWMutex
		table map[string]progress.Progress
		err   error
	}

	goalTable struct {
		sync.RWMutex
		table  map[string][]goal.Goal
		nextID int64
		err    error
	}

	pointsTable struct {
		sync.RWMutex
		table map[string][]ledger.PointEvent
		err   error
	}

	courseTable struct {
		sync.RWMutex
		table map[string][]course.Course
		err   error
	}
)

func Open() (*DB, error) {
	db := &DB{
		profiles: &profileTable{table: make(map[string]profile.Profile)},
		progress: &progressTable{table: make(map[string]progress.Progress)},
		goals:    &goalTable{table: make(map[string][]goal.Goal)},
		points:   &pointsTable{table: make(map[string][]ledger.PointEvent)},
		courses:  &courseTable{table: make(map[string][]course.Course)},
	}
	return db, nil
}

// FailProfiles makes profile operations return err until cleared with nil.
func (db *DB) FailProfiles(err error) {
	db.profiles.Lock()
	defer db.profiles.Unlock()
	db.profiles.err = err
}

// FailProgress makes progress operations return err until cleared with nil.
func (db *DB) FailProgress(err error) {
	db.progress.Lock()
	defer db.progress.Unlock()
	db.progress.err = err
}

// FailGoals makes goal operations return err until cleared with nil.
func (db *DB) FailGoals(err error) {
	db.goals.Lock()
	defer db.goals.Unlock()
	db.goals.err = err
}

// FailPoints makes point-event operations return err until cleared with nil.
func (db *DB) FailPoints(err error) {
	db.points.Lock()
	defer db.points.Unlock()
	db.points.err = err
}

// FailCourses makes course operations return err until cleared with nil.
func (db *DB) FailCourses(err error) {
	db.courses.Lock()
	defer db.courses.Unlock()
	db.courses.err = err
}

// MissProfileColumns marks profile columns as absent from the simulated
// remote schema; reads including them fail with core.UndefinedColumnError.
func (db *DB) MissProfileColumns(cols ...string) {
	db.profiles.Lock()
	defer db.profiles.Unlock()
	db.profiles.missingColumns = cols
}

func nowMillis() int64 {
	return time.Now().UnixNano() / int64(time.Millisecond)
}
