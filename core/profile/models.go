package profile

import (
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"
)

var ErrNotFound = errors.New("profile not found")

type ColorScheme string

const (
	SchemeLight ColorScheme = "light"
	SchemeDark  ColorScheme = "dark"
)

func (s ColorScheme) Valid() bool {
	return s == SchemeLight || s == SchemeDark
}

// Profile is the per-user appearance and identity record. One profile per
// user; the identifier is the user identifier. Created lazily on first
// sign-in.
type Profile struct {
	UserID            string      `json:"user_id"`
	FullName          string      `json:"full_name,omitempty"`
	PictureURL        string      `json:"picture_url,omitempty"` // data URL or remote URL
	ThemeID           string      `json:"theme_id,omitempty"`
	ColorScheme       ColorScheme `json:"color_scheme,omitempty"`
	DashboardImageURL string      `json:"dashboard_image_url,omitempty"`
}

// Update is a partial profile mutation; only set fields are written.
type Update struct {
	FullName          null.String
	PictureURL        null.String
	ThemeID           null.String
	ColorScheme       null.String
	DashboardImageURL null.String
}

func (u Update) IsEmpty() bool {
	return !u.FullName.Valid && !u.PictureURL.Valid && !u.ThemeID.Valid &&
		!u.ColorScheme.Valid && !u.DashboardImageURL.Valid
}

// Repository is the store for profile rows.
type Repository interface {
	// GetProfile fetches the user's profile. omitColumns names optional
	// columns to exclude from the read, supporting the forward-compatibility
	// fallback when the remote schema predates a column.
	GetProfile(userID string, omitColumns ...string) (Profile, error)
	CreateProfile(p Profile) error
	UpdateProfile(userID string, up Update) error
}
