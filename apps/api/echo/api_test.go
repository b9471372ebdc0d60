package echoapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fineduca/backend/core"
	"github.com/fineduca/backend/core/chat"
	"github.com/fineduca/backend/core/course"
	"github.com/fineduca/backend/core/goal"
	"github.com/fineduca/backend/core/ledger"
	"github.com/fineduca/backend/core/profile"
	"github.com/fineduca/backend/core/progress"
	"github.com/fineduca/backend/core/session"
	"github.com/fineduca/backend/core/userdata"
	dummysvc "github.com/fineduca/backend/services/content/dummy"
	inmemdb "github.com/fineduca/backend/storage/database/inmem"
	testutil "github.com/fineduca/backend/tests"
)

type testApp struct {
	server  Server
	manager *session.Manager
	sync    *userdata.Synchronizer
	db      *inmemdb.DB
	content *dummysvc.Service
	token   string
}

func newTestApp(t *testing.T) *testApp {
	conf := &core.Config{
		Env:       "TEST",
		TestMode:  true,
		AppName:   "FinEduca",
		SecretKey: "secret",
		Server:    core.ServerConfig{Host: "localhost:0"},
	}
	logger := testutil.Logger(t)

	db, err := inmemdb.Open()
	require.NoError(t, err)
	content := dummysvc.NewService()

	profileSvc := profile.NewService(inmemdb.NewProfileRepository(db), content, logger)
	pointsSvc := ledger.NewService(inmemdb.NewPointsRepository(db))
	catalog := course.NewCatalog(inmemdb.NewCourseRepository(db), content)
	progressRepo := inmemdb.NewProgressRepository(db)

	sync := userdata.NewSynchronizer(userdata.Deps{
		Profiles:     profileSvc,
		Catalog:      catalog,
		ProgressRepo: progressRepo,
		Points:       pointsSvc,
		Goals:        goal.NewTracker(inmemdb.NewGoalRepository(db), pointsSvc, logger),
		Evaluator:    progress.NewEvaluator(progressRepo, pointsSvc, logger),
		Logger:       logger,
	})
	chatSvc := chat.NewService(content, logger)

	manager := session.NewManager(conf.SecretKey)
	manager.Subscribe(sync.HandleSessionEvent)
	manager.Subscribe(func(evt session.Event, sess session.Session) {
		if evt == session.SignedOut {
			chatSvc.Reset(sess.UserID)
		}
	})

	token, err := manager.NewToken("user-1", "ana@example.com", "Ana Lima", time.Hour)
	require.NoError(t, err)

	server := NewServer(ServerDeps{
		Conf:     conf,
		Logger:   logger,
		Sessions: manager,
		Sync:     sync,
		Chat:     chatSvc,
		Profiles: profileSvc,
	})
	t.Cleanup(sync.Wait)

	return &testApp{server: server, manager: manager, sync: sync, db: db, content: content, token: token}
}

func (app *testApp) request(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	app.server.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
}

func TestAuthRequired(t *testing.T) {
	app := newTestApp(t)

	rec := app.request(t, http.MethodGet, "/v1/state", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = app.request(t, http.MethodGet, "/v1/state", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGetState(t *testing.T) {
	app := newTestApp(t)

	rec := app.request(t, http.MethodGet, "/v1/state", app.token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Courses       map[string]course.Course `json:"courses"`
		Goals         []goal.Goal              `json:"goals"`
		FullName      string                   `json:"full_name"`
		ColorScheme   string                   `json:"color_scheme"`
		TotalPoints   int                      `json:"total_points"`
		PointsHistory []ledger.PointEvent      `json:"points_history"`
	}
	decode(t, rec, &resp)

	assert.Len(t, resp.Courses, len(course.SeedCourses))
	assert.Empty(t, resp.Goals)
	assert.Equal(t, "Ana Lima", resp.FullName)
	assert.Equal(t, "light", resp.ColorScheme)
	assert.Equal(t, 0, resp.TotalPoints)
}

func TestGetStateRetriesFailedLoad(t *testing.T) {
	app := newTestApp(t)

	app.db.FailGoals(errors.New("store unavailable"))
	rec := app.request(t, http.MethodGet, "/v1/state", app.token, nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	app.db.FailGoals(nil)
	rec = app.request(t, http.MethodGet, "/v1/state", app.token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCompleteQuiz(t *testing.T) {
	app := newTestApp(t)
	require.Equal(t, http.StatusOK, app.request(t, http.MethodGet, "/v1/state", app.token, nil).Code)

	crs := course.SeedCourses[0]
	answers := make([]int, 0, len(crs.Lessons[0].Quiz))
	for _, q := range crs.Lessons[0].Quiz {
		answers = append(answers, q.CorrectAnswerIndex)
	}

	rec := app.request(t, http.MethodPost, "/v1/quizzes/complete", app.token,
		progress.Attempt{CourseID: crs.ID, LessonIndex: 0, Answers: answers})
	require.Equal(t, http.StatusOK, rec.Code)

	var res progress.Result
	decode(t, rec, &res)
	assert.True(t, res.Passed)
	assert.Equal(t, len(answers), res.Score)

	var state struct {
		TotalPoints int `json:"total_points"`
	}
	rec = app.request(t, http.MethodGet, "/v1/state", app.token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &state)
	assert.Equal(t, ledger.QuizPassedPoints, state.TotalPoints)
}

func TestCompleteQuizUnknownCourse(t *testing.T) {
	app := newTestApp(t)
	require.Equal(t, http.StatusOK, app.request(t, http.MethodGet, "/v1/state", app.token, nil).Code)

	rec := app.request(t, http.MethodPost, "/v1/quizzes/complete", app.token,
		progress.Attempt{CourseID: "nope", LessonIndex: 0, Answers: []int{0}})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGoals(t *testing.T) {
	app := newTestApp(t)
	require.Equal(t, http.StatusOK, app.request(t, http.MethodGet, "/v1/state", app.token, nil).Code)

	// empty text rejected locally
	rec := app.request(t, http.MethodPost, "/v1/goals", app.token, map[string]string{"text": "   "})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = app.request(t, http.MethodPost, "/v1/goals", app.token, map[string]string{"text": "Poupar R$500"})
	require.Equal(t, http.StatusCreated, rec.Code)
	var g goal.Goal
	decode(t, rec, &g)
	assert.Equal(t, "Poupar R$500", g.Text)
	assert.False(t, g.Completed)

	rec = app.request(t, http.MethodPatch, fmt.Sprintf("/v1/goals/%d/toggle", g.ID), app.token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var res toggleResponse
	decode(t, rec, &res)
	assert.True(t, res.Goal.Completed)
	require.NotNil(t, res.Awarded)
	assert.Equal(t, ledger.GoalCompletedPoints, res.Awarded.Points)

	rec = app.request(t, http.MethodGet, "/v1/goals", app.token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var goals []goal.Goal
	decode(t, rec, &goals)
	require.Len(t, goals, 1)
	assert.True(t, goals[0].Completed)
}

func TestToggleGoalRollback(t *testing.T) {
	app := newTestApp(t)
	require.Equal(t, http.StatusOK, app.request(t, http.MethodGet, "/v1/state", app.token, nil).Code)

	rec := app.request(t, http.MethodPost, "/v1/goals", app.token, map[string]string{"text": "Quitar o cartão"})
	require.Equal(t, http.StatusCreated, rec.Code)
	var g goal.Goal
	decode(t, rec, &g)

	app.db.FailGoals(errors.New("write rejected"))
	rec = app.request(t, http.MethodPatch, fmt.Sprintf("/v1/goals/%d/toggle", g.ID), app.token, nil)
	require.Equal(t, http.StatusConflict, rec.Code)

	var res toggleResponse
	decode(t, rec, &res)
	assert.True(t, res.RolledBack)
	assert.False(t, res.Goal.Completed)
}

func TestGenerateCourse(t *testing.T) {
	app := newTestApp(t)
	require.Equal(t, http.StatusOK, app.request(t, http.MethodGet, "/v1/state", app.token, nil).Code)

	rec := app.request(t, http.MethodPost, "/v1/courses/generate", app.token,
		course.NewCourse{Topic: "Cartão de Crédito", Difficulty: course.Beginner})
	require.Equal(t, http.StatusCreated, rec.Code)

	var crs course.Course
	decode(t, rec, &crs)
	assert.Equal(t, "Cartão de Crédito", crs.Title)
	assert.NotEmpty(t, crs.Lessons)

	// invalid difficulty rejected
	rec = app.request(t, http.MethodPost, "/v1/courses/generate", app.token,
		map[string]string{"topic": "Juros", "difficulty": "expert"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestThemesAndAppearance(t *testing.T) {
	app := newTestApp(t)
	require.Equal(t, http.StatusOK, app.request(t, http.MethodGet, "/v1/state", app.token, nil).Code)

	rec := app.request(t, http.MethodGet, "/v1/themes", app.token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var themes []profile.Theme
	decode(t, rec, &themes)
	assert.Len(t, themes, len(profile.Themes))

	rec = app.request(t, http.MethodPut, "/v1/profile/theme", app.token, map[string]string{"theme_id": "emerald"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = app.request(t, http.MethodPut, "/v1/profile/theme", app.token, map[string]string{"theme_id": "neon"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = app.request(t, http.MethodPut, "/v1/profile/scheme", app.token, map[string]string{"color_scheme": "dark"})
	require.Equal(t, http.StatusNoContent, rec.Code)

	var state struct {
		Theme       profile.Theme `json:"theme"`
		ColorScheme string        `json:"color_scheme"`
	}
	rec = app.request(t, http.MethodGet, "/v1/state", app.token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &state)
	assert.Equal(t, "emerald", state.Theme.ID)
	assert.Equal(t, "dark", state.ColorScheme)
}

func TestChat(t *testing.T) {
	app := newTestApp(t)
	require.Equal(t, http.StatusOK, app.request(t, http.MethodGet, "/v1/state", app.token, nil).Code)

	rec := app.request(t, http.MethodPost, "/v1/chat", app.token, map[string]string{"message": "O que é CDB?"})
	require.Equal(t, http.StatusOK, rec.Code)
	var resp chatResponse
	decode(t, rec, &resp)
	assert.NotEmpty(t, resp.Reply)

	// provider failure degrades to the fallback reply
	app.content.Fail(errors.New("assistant offline"))
	rec = app.request(t, http.MethodPost, "/v1/chat", app.token, map[string]string{"message": "E LCI?"})
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &resp)
	assert.Equal(t, chat.FallbackReply, resp.Reply)
	app.content.Fail(nil)

	// empty message rejected
	rec = app.request(t, http.MethodPost, "/v1/chat", app.token, map[string]string{"message": "  "})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSignOut(t *testing.T) {
	app := newTestApp(t)
	require.Equal(t, http.StatusOK, app.request(t, http.MethodGet, "/v1/state", app.token, nil).Code)

	rec := app.request(t, http.MethodPost, "/v1/auth/signout", app.token, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	_, loaded := app.sync.Current("user-1")
	assert.False(t, loaded, "sign-out should drop the snapshot")

	// the same token re-establishes a session and reloads on the next request
	rec = app.request(t, http.MethodGet, "/v1/state", app.token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}
