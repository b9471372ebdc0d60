package sqlxrepos

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/volatiletech/null/v8"

	"github.com/fineduca/backend/core/profile"
	"github.com/fineduca/backend/storage/database"
)

// optional profile columns; user_id is always selected. Reads retry without
// any of these when the remote schema predates them.
var profileColumns = []string{"full_name", "picture_url", "theme_id", "color_scheme", "dashboard_image_url"}

type profileRow struct {
	UserID            string      `db:"user_id"`
	FullName          null.String `db:"full_name"`
	PictureURL        null.String `db:"picture_url"`
	ThemeID           null.String `db:"theme_id"`
	ColorScheme       null.String `db:"color_scheme"`
	DashboardImageURL null.String `db:"dashboard_image_url"`
}

type profileRepository struct {
	db *sqlx.DB
}

var _ profile.Repository = (*profileRepository)(nil) // interface compliance check

func NewProfileRepository(db *sqlx.DB) *profileRepository {
	return &profileRepository{db: db}
}

func (repo profileRepository) GetProfile(userID string, omitColumns ...string) (profile.Profile, error) {
	cols := []string{"user_id"}
	for _, col := range profileColumns {
		omitted := false
		for _, o := range omitColumns {
			if o == col {
				omitted = true
				break
			}
		}
		if !omitted {
			cols = append(cols, col)
		}
	}

	q := fmt.Sprintf(`SELECT %s FROM profiles WHERE user_id = $1`, strings.Join(cols, ", "))
	var row profileRow
	if err := repo.db.Get(&row, q, userID); err != nil {
		if err == sql.ErrNoRows {
			return profile.Profile{}, profile.ErrNotFound
		}
		return profile.Profile{}, database.TranslateError(err)
	}
	return profile.Profile{
		UserID:            row.UserID,
		FullName:          row.FullName.String,
		PictureURL:        row.PictureURL.String,
		ThemeID:           row.ThemeID.String,
		ColorScheme:       profile.ColorScheme(row.ColorScheme.String),
		DashboardImageURL: row.DashboardImageURL.String,
	}, nil
}

func (repo profileRepository) CreateProfile(p profile.Profile) error {
	q := `
INSERT INTO profiles (user_id, full_name, picture_url, theme_id, color_scheme, dashboard_image_url)
VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := repo.db.Exec(q, p.UserID, p.FullName, p.PictureURL, p.ThemeID, string(p.ColorScheme), p.DashboardImageURL)
	return database.TranslateError(err)
}

func (repo profileRepository) UpdateProfile(userID string, up profile.Update) error {
	if up.IsEmpty() {
		return nil
	}

	sets := []string{"updated_at = now()"}
	args := []interface{}{userID}
	set := func(col string, v null.String) {
		if v.Valid {
			args = append(args, v.String)
			sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
		}
	}
	set("full_name", up.FullName)
	set("picture_url", up.PictureURL)
	set("theme_id", up.ThemeID)
	set("color_scheme", up.ColorScheme)
	set("dashboard_image_url", up.DashboardImageURL)

	q := fmt.Sprintf(`UPDATE profiles SET %s WHERE user_id = $1`, strings.Join(sets, ", "))
	res, err := repo.db.Exec(q, args...)
	if err != nil {
		return database.TranslateError(err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return profile.ErrNotFound
	}
	return nil
}
