package userdata

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/fineduca/backend/core"
	"github.com/fineduca/backend/core/course"
	"github.com/fineduca/backend/core/goal"
	"github.com/fineduca/backend/core/ledger"
	"github.com/fineduca/backend/core/profile"
	"github.com/fineduca/backend/core/progress"
	"github.com/fineduca/backend/core/session"
)

var (
	// ErrNotLoaded is returned by actions invoked before the user's data has
	// been loaded through a sign-in.
	ErrNotLoaded = errors.New("user data not loaded")

	// ErrSuperseded means a newer session transition invalidated this load
	// before it could apply.
	ErrSuperseded = errors.New("load superseded")
)

// Synchronizer owns the per-user State snapshots and keeps them converged
// with the remote store. Sign-in triggers a full load, sign-out resets to the
// default snapshot, and every domain action folds its outcome back into the
// snapshot under a single lock. Each load carries a generation tag; results
// arriving after the user's generation has moved on are discarded so a stale
// session can never overwrite a fresh one.
type Synchronizer struct {
	mu          sync.Mutex
	states      map[string]State
	generations map[string]uuid.UUID
	loadErrs    map[string]error
	bg          sync.WaitGroup

	profiles  *profile.Service
	catalog   *course.Catalog
	progRepo  progress.Repository
	points    *ledger.Service
	goals     *goal.Tracker
	evaluator *progress.Evaluator
	logger    core.Logger
}

// Deps bundles the domain services a Synchronizer coordinates.
type Deps struct {
	Profiles     *profile.Service
	Catalog      *course.Catalog
	ProgressRepo progress.Repository
	Points       *ledger.Service
	Goals        *goal.Tracker
	Evaluator    *progress.Evaluator
	Logger       core.Logger
}

func NewSynchronizer(deps Deps) *Synchronizer {
	return &Synchronizer{
		states:      make(map[string]State),
		generations: make(map[string]uuid.UUID),
		loadErrs:    make(map[string]error),
		profiles:    deps.Profiles,
		catalog:     deps.Catalog,
		progRepo:    deps.ProgressRepo,
		points:      deps.Points,
		goals:       deps.Goals,
		evaluator:   deps.Evaluator,
		logger:      deps.Logger,
	}
}

// HandleSessionEvent is the session.Listener wired to the session manager.
// Token refreshes change nothing about the data.
func (s *Synchronizer) HandleSessionEvent(evt session.Event, sess session.Session) {
	switch evt {
	case session.SignedIn:
		if _, err := s.Load(sess); err != nil && errors.Cause(err) != ErrSuperseded {
			s.logger.Error("loading user data failed", err, "user", sess.UserID)
		}
	case session.SignedOut:
		s.Reset(sess.UserID)
	}
}

// Load assembles the user's full snapshot from the remote store, provisioning
// first-run rows as needed. Partial data never applies: any failure beyond
// the tolerated ones leaves the previous snapshot in place and is retained
// for LoadError.
func (s *Synchronizer) Load(sess session.Session) (State, error) {
	userID := sess.UserID

	s.mu.Lock()
	gen := uuid.New()
	s.generations[userID] = gen
	delete(s.loadErrs, userID)
	s.mu.Unlock()

	st, err := s.assemble(sess, gen)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generations[userID] != gen {
		return State{}, ErrSuperseded
	}
	if err != nil {
		s.loadErrs[userID] = err
		return State{}, err
	}
	s.states[userID] = st
	return st.clone(), nil
}

func (s *Synchronizer) assemble(sess session.Session, gen uuid.UUID) (State, error) {
	userID := sess.UserID

	prof, err := s.profiles.Fetch(userID)
	if errors.Cause(err) == profile.ErrNotFound {
		if err = s.provision(sess); err != nil {
			return State{}, err
		}
		prof, err = s.profiles.Fetch(userID)
	}
	if err != nil {
		return State{}, err
	}

	var (
		prog    progress.Progress
		goals   []goal.Goal
		history []ledger.PointEvent
		courses map[string]course.Course
	)
	fetchErrs := make([]error, 4)
	var wg sync.WaitGroup
	wg.Add(4)
	go func() { defer wg.Done(); prog, fetchErrs[0] = s.progRepo.GetProgress(userID) }()
	go func() { defer wg.Done(); goals, fetchErrs[1] = s.goals.List(userID) }()
	go func() { defer wg.Done(); history, fetchErrs[2] = s.points.History(userID) }()
	go func() { defer wg.Done(); courses, fetchErrs[3] = s.catalog.LoadUserCourses(userID) }()
	wg.Wait()
	for _, ferr := range fetchErrs {
		if ferr != nil {
			return State{}, ferr
		}
	}

	if err = s.catalog.EnsureSeedCourses(userID, courses); err != nil {
		return State{}, err
	}

	st := DefaultState()
	st.Courses = courses
	st.Progress = prog
	if goals != nil {
		st.Goals = goals
	}
	if history != nil {
		st.PointsHistory = history
	}
	st.FullName = prof.FullName
	if st.FullName == "" && sess.FullName != "" {
		st.FullName = sess.FullName
		s.profiles.BackfillName(userID, sess.FullName)
	}
	st.PictureURL = prof.PictureURL
	if theme, ok := profile.ThemeByID(prof.ThemeID); ok {
		st.Theme = theme
	}
	if prof.ColorScheme.Valid() {
		st.ColorScheme = prof.ColorScheme
	}
	st.DashboardImageURL = prof.DashboardImageURL

	if st.DashboardImageURL == "" {
		s.bg.Add(1)
		go func() {
			defer s.bg.Done()
			s.backfillDashboardImage(userID, gen)
		}()
	}
	return st, nil
}

// Wait blocks until background work, such as dashboard image backfills, has
// drained. Called on shutdown.
func (s *Synchronizer) Wait() {
	s.bg.Wait()
}

func (s *Synchronizer) provision(sess session.Session) error {
	if err := s.profiles.Create(sess.UserID, sess.FullName); err != nil {
		return errors.Wrap(err, "provisioning profile")
	}
	if err := s.progRepo.CreateProgress(sess.UserID); err != nil {
		return errors.Wrap(err, "provisioning progress")
	}
	return nil
}

// backfillDashboardImage runs off the load path; the snapshot is usable
// without the illustration and picks it up when generation completes.
func (s *Synchronizer) backfillDashboardImage(userID string, gen uuid.UUID) {
	url, err := s.profiles.GenerateDashboardImage(context.Background(), userID)
	if err != nil {
		s.logger.Warn("dashboard image backfill failed", err, "user", userID)
		return
	}
	s.fold(userID, gen, func(st *State) { st.DashboardImageURL = url })
}

// Reset tears the user's snapshot down to the signed-out default and bumps
// the generation so any in-flight load discards itself.
func (s *Synchronizer) Reset(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generations[userID] = uuid.New()
	delete(s.states, userID)
	delete(s.loadErrs, userID)
}

// Current returns the user's snapshot and whether a load has populated it.
// Without one the default snapshot is served.
func (s *Synchronizer) Current(userID string) (State, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.states[userID]
	if !ok {
		return DefaultState(), false
	}
	return st.clone(), true
}

// LoadError reports the failure of the user's most recent load, if any.
func (s *Synchronizer) LoadError(userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadErrs[userID]
}

// fold applies fn to the user's snapshot, provided the snapshot still exists
// and the generation it was computed against is still current.
func (s *Synchronizer) fold(userID string, gen uuid.UUID, fn func(*State)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generations[userID] != gen {
		return false
	}
	st, ok := s.states[userID]
	if !ok {
		return false
	}
	fn(&st)
	s.states[userID] = st
	return true
}

// snapshot reads the loaded state plus its generation for a subsequent fold.
func (s *Synchronizer) snapshot(userID string) (State, uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.states[userID]
	if !ok {
		return State{}, uuid.UUID{}, ErrNotLoaded
	}
	return st.clone(), s.generations[userID], nil
}

// CompleteQuiz grades the attempt against the loaded snapshot and folds the
// updated progress and any awarded points back in. A persistence failure
// still folds, keeping the local snapshot ahead of the store until the next
// load reconverges them; the error surfaces alongside.
func (s *Synchronizer) CompleteQuiz(userID string, att progress.Attempt) (progress.Result, error) {
	st, gen, err := s.snapshot(userID)
	if err != nil {
		return progress.Result{}, err
	}
	crs, ok := st.Courses[att.CourseID]
	if !ok {
		return progress.Result{}, course.ErrNotFound
	}

	updated, res, err := s.evaluator.Complete(userID, crs, st.Progress, att)
	if err != nil && !res.Passed {
		return res, err
	}
	s.fold(userID, gen, func(cur *State) {
		cur.Progress = updated
		cur.PointsHistory = append(cur.PointsHistory, res.Awarded...)
	})
	return res, err
}

// AddGoal validates and persists a new goal, then folds it into the snapshot.
func (s *Synchronizer) AddGoal(userID string, ng goal.NewGoal) (goal.Goal, error) {
	_, gen, err := s.snapshot(userID)
	if err != nil {
		return goal.Goal{}, err
	}
	g, err := s.goals.Add(userID, ng)
	if err != nil {
		return goal.Goal{}, err
	}
	s.fold(userID, gen, func(cur *State) { cur.Goals = append(cur.Goals, g) })
	return g, nil
}

// ToggleGoal flips the goal's completed flag through the tracker's two-phase
// commit and folds whichever value, confirmed or compensated, the tracker
// settled on. Points awarded on completion stay in the history even when the
// toggle itself rolled back.
func (s *Synchronizer) ToggleGoal(userID string, goalID int64) (goal.ToggleResult, error) {
	st, gen, err := s.snapshot(userID)
	if err != nil {
		return goal.ToggleResult{}, err
	}
	var target *goal.Goal
	for i := range st.Goals {
		if st.Goals[i].ID == goalID {
			target = &st.Goals[i]
			break
		}
	}
	if target == nil {
		return goal.ToggleResult{}, goal.ErrNotFound
	}

	res, err := s.goals.Toggle(userID, *target)
	s.fold(userID, gen, func(cur *State) {
		for i := range cur.Goals {
			if cur.Goals[i].ID == goalID {
				cur.Goals[i] = res.Goal
				break
			}
		}
		if res.Awarded != nil {
			cur.PointsHistory = append(cur.PointsHistory, *res.Awarded)
		}
	})
	return res, err
}

// GenerateCourse produces a personalized course and folds it into the
// snapshot once persisted.
func (s *Synchronizer) GenerateCourse(ctx context.Context, userID string, nc course.NewCourse) (course.Course, error) {
	_, gen, err := s.snapshot(userID)
	if err != nil {
		return course.Course{}, err
	}
	crs, err := s.catalog.Generate(ctx, userID, nc)
	if err != nil {
		return course.Course{}, err
	}
	s.fold(userID, gen, func(cur *State) { cur.Courses[crs.ID] = crs })
	return crs, nil
}

// SetTheme applies the theme locally once validated; persistence is
// fire-and-forget inside the profile service.
func (s *Synchronizer) SetTheme(userID, themeID string) (profile.Theme, error) {
	_, gen, err := s.snapshot(userID)
	if err != nil {
		return profile.Theme{}, err
	}
	theme, err := s.profiles.SetTheme(userID, themeID)
	if err != nil {
		return profile.Theme{}, err
	}
	s.fold(userID, gen, func(cur *State) { cur.Theme = theme })
	return theme, nil
}

// SetColorScheme applies the scheme locally; persistence is fire-and-forget.
// Without a loaded snapshot the change is a no-op.
func (s *Synchronizer) SetColorScheme(userID string, scheme profile.ColorScheme) error {
	_, gen, err := s.snapshot(userID)
	if err != nil {
		return nil
	}
	if err = s.profiles.SetColorScheme(userID, scheme); err != nil {
		return err
	}
	s.fold(userID, gen, func(cur *State) { cur.ColorScheme = scheme })
	return nil
}

// SetPicture persists the profile picture and folds it in on success.
func (s *Synchronizer) SetPicture(userID, pictureURL string) error {
	_, gen, err := s.snapshot(userID)
	if err != nil {
		return err
	}
	if err = s.profiles.SetPicture(userID, pictureURL); err != nil {
		return err
	}
	s.fold(userID, gen, func(cur *State) { cur.PictureURL = pictureURL })
	return nil
}
