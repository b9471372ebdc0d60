package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/fineduca/backend/core/session"
	"github.com/fineduca/backend/core/userdata"
)

type stateApi struct {
	sync     *userdata.Synchronizer
	sessions *session.Manager
}

func registerStateAPI(g *echo.Group, sync *userdata.Synchronizer, sessions *session.Manager) {
	api := stateApi{sync: sync, sessions: sessions}

	g.GET("/state", api.retrieve)
	g.POST("/auth/signout", api.signOut)
}

type stateResponse struct {
	userdata.State
	TotalPoints int `json:"total_points"`
}

// Handlers

func (api *stateApi) retrieve(ctx echo.Context) error {
	sess, err := getContextSession(ctx)
	if err != nil {
		return err
	}

	// sign-in already triggered a load; a missing snapshot means it failed,
	// so this request retries it
	st, loaded := api.sync.Current(sess.UserID)
	if !loaded {
		if st, err = api.sync.Load(sess); err != nil {
			return errors.Wrap(err, "loading user data")
		}
	}
	return ctx.JSON(http.StatusOK, stateResponse{State: st, TotalPoints: st.TotalPoints()})
}

func (api *stateApi) signOut(ctx echo.Context) error {
	sess, err := getContextSession(ctx)
	if err != nil {
		return err
	}
	api.sessions.SignOut(sess.UserID)
	return ctx.NoContent(http.StatusNoContent)
}
