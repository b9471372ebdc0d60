package inmemdb

import (
	"github.com/volatiletech/null/v8"

	"github.com/fineduca/backend/core"
	"github.com/fineduca/backend/core/course"
	"github.com/fineduca/backend/core/goal"
	"github.com/fineduca/backend/core/ledger"
	"github.com/fineduca/backend/core/profile"
	"github.com/fineduca/backend/core/progress"
)

type profileRepository struct {
	db *profileTable
}

var _ profile.Repository = (*profileRepository)(nil)

func NewProfileRepository(db *DB) *profileRepository {
	return &profileRepository{db: db.profiles}
}

func (repo *profileRepository) GetProfile(userID string, omitColumns ...string) (profile.Profile, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	if repo.db.err != nil {
		return profile.Profile{}, repo.db.err
	}
	for _, col := range repo.db.missingColumns {
		omitted := false
		for _, o := range omitColumns {
			if o == col {
				omitted = true
				break
			}
		}
		if !omitted {
			return profile.Profile{}, &core.UndefinedColumnError{Column: col}
		}
	}
	p, ok := repo.db.table[userID]
	if !ok {
		return profile.Profile{}, profile.ErrNotFound
	}
	return p, nil
}

func (repo *profileRepository) CreateProfile(p profile.Profile) error {
	repo.db.Lock()
	defer repo.db.Unlock()
	if repo.db.err != nil {
		return repo.db.err
	}
	repo.db.table[p.UserID] = p
	return nil
}

func (repo *profileRepository) UpdateProfile(userID string, up profile.Update) error {
	repo.db.Lock()
	defer repo.db.Unlock()
	if repo.db.err != nil {
		return repo.db.err
	}
	p, ok := repo.db.table[userID]
	if !ok {
		return profile.ErrNotFound
	}
	apply := func(dst *string, v null.String) {
		if v.Valid {
			*dst = v.String
		}
	}
	apply(&p.FullName, up.FullName)
	apply(&p.PictureURL, up.PictureURL)
	apply(&p.ThemeID, up.ThemeID)
	apply(&p.DashboardImageURL, up.DashboardImageURL)
	if up.ColorScheme.Valid {
		p.ColorScheme = profile.ColorScheme(up.ColorScheme.String)
	}
	repo.db.table[userID] = p
	return nil
}

type progressRepository struct {
	db *progressTable
}

var _ progress.Repository = (*progressRepository)(nil)

func NewProgressRepository(db *DB) *progressRepository {
	return &progressRepository{db: db.progress}
}

func (repo *progressRepository) GetProgress(userID string) (progress.Progress, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	if repo.db.err != nil {
		return progress.Progress{}, repo.db.err
	}
	p, ok := repo.db.table[userID]
	if !ok {
		return progress.Progress{}, progress.ErrNotFound
	}
	return p.Clone(), nil
}

func (repo *progressRepository) CreateProgress(userID string) error {
	repo.db.Lock()
	defer repo.db.Unlock()
	if repo.db.err != nil {
		return repo.db.err
	}
	repo.db.table[userID] = progress.New()
	return nil
}

func (repo *progressRepository) UpdateProgress(userID string, p progress.Progress) error {
	repo.db.Lock()
	defer repo.db.Unlock()
	if repo.db.err != nil {
		return repo.db.err
	}
	if _, ok := repo.db.table[userID]; !ok {
		return progress.ErrNotFound
	}
	repo.db.table[userID] = p.Clone()
	return nil
}

type goalRepository struct {
	db *goalTable
}

var _ goal.Repository = (*goalRepository)(nil)

func NewGoalRepository(db *DB) *goalRepository {
	return &goalRepository{db: db.goals}
}

func (repo *goalRepository) ListGoals(userID string) ([]goal.Goal, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	if repo.db.err != nil {
		return nil, repo.db.err
	}
	return append([]goal.Goal{}, repo.db.table[userID]...), nil
}

func (repo *goalRepository) InsertGoal(userID, text string) (goal.Goal, error) {
	repo.db.Lock()
	defer repo.db.Unlock()
	if repo.db.err != nil {
		return goal.Goal{}, repo.db.err
	}
	repo.db.nextID++
	g := goal.Goal{ID: repo.db.nextID, Text: text}
	repo.db.table[userID] = append(repo.db.table[userID], g)
	return g, nil
}

func (repo *goalRepository) UpdateGoal(id int64, completed bool) error {
	repo.db.Lock()
	defer repo.db.Unlock()
	if repo.db.err != nil {
		return repo.db.err
	}
	for userID, goals := range repo.db.table {
		for i := range goals {
			if goals[i].ID == id {
				goals[i].Completed = completed
				repo.db.table[userID] = goals
				return nil
			}
		}
	}
	return goal.ErrNotFound
}

type pointsRepository struct {
	db *pointsTable
}

var _ ledger.Repository = (*pointsRepository)(nil)

func NewPointsRepository(db *DB) *pointsRepository {
	return &pointsRepository{db: db.points}
}

func (repo *pointsRepository) ListPointEvents(userID string) ([]ledger.PointEvent, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	if repo.db.err != nil {
		return nil, repo.db.err
	}
	return append([]ledger.PointEvent{}, repo.db.table[userID]...), nil
}

func (repo *pointsRepository) InsertPointEvent(userID string, points int, reason string) (ledger.PointEvent, error) {
	repo.db.Lock()
	defer repo.db.Unlock()
	if repo.db.err != nil {
		return ledger.PointEvent{}, repo.db.err
	}
	evt := ledger.PointEvent{Points: points, Reason: reason, Timestamp: nowMillis()}
	repo.db.table[userID] = append(repo.db.table[userID], evt)
	return evt, nil
}

type courseRepository struct {
	db *courseTable
}

var _ course.Repository = (*courseRepository)(nil)

func NewCourseRepository(db *DB) *courseRepository {
	return &courseRepository{db: db.courses}
}

func (repo *courseRepository) ListUserCourses(userID string) ([]course.Course, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	if repo.db.err != nil {
		return nil, repo.db.err
	}
	return append([]course.Course{}, repo.db.table[userID]...), nil
}

func (repo *courseRepository) InsertUserCourses(userID string, courses []course.Course) error {
	repo.db.Lock()
	defer repo.db.Unlock()
	if repo.db.err != nil {
		return repo.db.err
	}
	repo.db.table[userID] = append(repo.db.table[userID], courses...)
	return nil
}
