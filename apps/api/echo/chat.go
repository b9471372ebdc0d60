package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/fineduca/backend/core"
	"github.com/fineduca/backend/core/chat"
)

type chatApi struct {
	svc *chat.Service
}

func registerChatAPI(g *echo.Group, svc *chat.Service) {
	api := chatApi{svc: svc}

	g.POST("/chat", api.send)
	g.GET("/chat", api.history)
}

type (
	chatRequest struct {
		Message string `json:"message"`
	}

	chatResponse struct {
		Reply string `json:"reply"`
	}
)

// Handlers

func (api *chatApi) send(ctx echo.Context) error {
	sess, err := getContextSession(ctx)
	if err != nil {
		return err
	}

	var data chatRequest
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to chatRequest")
	}

	reply, err := api.svc.Send(ctx.Request().Context(), sess.UserID, data.Message)
	if err != nil {
		// validation errors surface; provider failures degrade to the
		// fallback reply the service already produced
		if _, ok := errors.Cause(err).(*core.ValidationError); ok {
			return err
		}
	}
	return ctx.JSON(http.StatusOK, chatResponse{Reply: reply})
}

func (api *chatApi) history(ctx echo.Context) error {
	sess, err := getContextSession(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, api.svc.History(sess.UserID))
}
