package echoapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/fineduca/backend/core/goal"
	"github.com/fineduca/backend/core/ledger"
	"github.com/fineduca/backend/core/userdata"
)

type goalApi struct {
	sync *userdata.Synchronizer
}

func registerGoalAPI(g *echo.Group, sync *userdata.Synchronizer) {
	api := goalApi{sync: sync}

	g.GET("/goals", api.list)
	g.POST("/goals", api.create)
	g.PATCH("/goals/:id/toggle", api.toggle)
}

type toggleResponse struct {
	Goal       goal.Goal          `json:"goal"`
	Awarded    *ledger.PointEvent `json:"awarded,omitempty"`
	RolledBack bool               `json:"rolled_back,omitempty"`
}

// Handlers

func (api *goalApi) list(ctx echo.Context) error {
	sess, err := getContextSession(ctx)
	if err != nil {
		return err
	}
	st, loaded := api.sync.Current(sess.UserID)
	if !loaded {
		return userdata.ErrNotLoaded
	}
	return ctx.JSON(http.StatusOK, st.Goals)
}

func (api *goalApi) create(ctx echo.Context) error {
	sess, err := getContextSession(ctx)
	if err != nil {
		return err
	}

	var ng goal.NewGoal
	if err = ctx.Bind(&ng); err != nil {
		return errors.Wrap(err, "binding to NewGoal")
	}

	g, err := api.sync.AddGoal(sess.UserID, ng)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, g)
}

func (api *goalApi) toggle(ctx echo.Context) error {
	sess, err := getContextSession(ctx)
	if err != nil {
		return err
	}

	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		return goal.ErrNotFound
	}

	res, err := api.sync.ToggleGoal(sess.UserID, id)
	if err != nil {
		// the flip was compensated remotely; hand the client the value to
		// converge to
		if res.RolledBack {
			return ctx.JSON(http.StatusConflict, toggleResponse{Goal: res.Goal, Awarded: res.Awarded, RolledBack: true})
		}
		return err
	}
	return ctx.JSON(http.StatusOK, toggleResponse{Goal: res.Goal, Awarded: res.Awarded})
}
