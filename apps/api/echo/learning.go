package echoapi

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/fineduca/backend/core"
	"github.com/fineduca/backend/core/course"
	"github.com/fineduca/backend/core/progress"
	"github.com/fineduca/backend/core/userdata"
)

type learningApi struct {
	sync   *userdata.Synchronizer
	logger core.Logger
}

func registerLearningAPI(g *echo.Group, sync *userdata.Synchronizer, logger core.Logger) {
	api := learningApi{sync: sync, logger: logger}

	g.POST("/quizzes/complete", api.completeQuiz)
	g.POST("/courses/generate", api.generateCourse)
}

// Handlers

func (api *learningApi) completeQuiz(ctx echo.Context) error {
	sess, err := getContextSession(ctx)
	if err != nil {
		return err
	}

	var att progress.Attempt
	if err = ctx.Bind(&att); err != nil {
		return errors.Wrap(err, "binding to Attempt")
	}

	res, err := api.sync.CompleteQuiz(sess.UserID, att)
	if err != nil {
		// a pass that failed to persist still applied locally; the snapshot
		// reconverges with the store on the next load
		if !res.Passed {
			return err
		}
		api.logger.Warn(fmt.Sprintf("quiz result not persisted: %v", err), err, sess)
	}
	return ctx.JSON(http.StatusOK, res)
}

func (api *learningApi) generateCourse(ctx echo.Context) error {
	sess, err := getContextSession(ctx)
	if err != nil {
		return err
	}

	var nc course.NewCourse
	if err = ctx.Bind(&nc); err != nil {
		return errors.Wrap(err, "binding to NewCourse")
	}

	crs, err := api.sync.GenerateCourse(ctx.Request().Context(), sess.UserID, nc)
	if err != nil {
		return errors.Wrap(err, "generating course")
	}
	return ctx.JSON(http.StatusCreated, crs)
}
