package echoapi

import (
	"encoding/base64"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/fineduca/backend/core/profile"
	"github.com/fineduca/backend/core/userdata"
)

type profileApi struct {
	sync     *userdata.Synchronizer
	profiles *profile.Service
}

func registerProfileAPI(g *echo.Group, sync *userdata.Synchronizer, profiles *profile.Service) {
	api := profileApi{sync: sync, profiles: profiles}

	g.GET("/themes", api.themes)
	g.PUT("/profile/theme", api.setTheme)
	g.PUT("/profile/scheme", api.setScheme)
	g.PUT("/profile/picture", api.setPicture)
	g.POST("/profile/avatar", api.generateAvatar)
}

type (
	setThemeRequest struct {
		ThemeID string `json:"theme_id"`
	}

	setSchemeRequest struct {
		ColorScheme string `json:"color_scheme"`
	}

	setPictureRequest struct {
		PictureURL string `json:"picture_url"`
	}

	avatarRequest struct {
		Prompt string `json:"prompt"`
	}

	avatarResponse struct {
		Avatar string `json:"avatar"` // data URL
	}
)

// Handlers

func (api *profileApi) themes(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, profile.Themes)
}

func (api *profileApi) setTheme(ctx echo.Context) error {
	sess, err := getContextSession(ctx)
	if err != nil {
		return err
	}

	var data setThemeRequest
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to setThemeRequest")
	}

	theme, err := api.sync.SetTheme(sess.UserID, data.ThemeID)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, theme)
}

func (api *profileApi) setScheme(ctx echo.Context) error {
	sess, err := getContextSession(ctx)
	if err != nil {
		return err
	}

	var data setSchemeRequest
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to setSchemeRequest")
	}

	if err = api.sync.SetColorScheme(sess.UserID, profile.ColorScheme(data.ColorScheme)); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *profileApi) setPicture(ctx echo.Context) error {
	sess, err := getContextSession(ctx)
	if err != nil {
		return err
	}

	var data setPictureRequest
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to setPictureRequest")
	}

	if err = api.sync.SetPicture(sess.UserID, data.PictureURL); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *profileApi) generateAvatar(ctx echo.Context) error {
	if _, err := getContextSession(ctx); err != nil {
		return err
	}

	var data avatarRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to avatarRequest")
	}

	raw, err := api.profiles.GenerateAvatar(ctx.Request().Context(), data.Prompt)
	if err != nil {
		return err
	}
	dataURL := "data:image/png;base64," + base64.StdEncoding.EncodeToString(raw)
	return ctx.JSON(http.StatusOK, avatarResponse{Avatar: dataURL})
}
