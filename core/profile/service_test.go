package profile

import (
	"context"
	"testing"

	"github.com/pkg/errors"

	"github.com/fineduca/backend/core"
	testutil "github.com/fineduca/backend/tests"
)

type fakeRepo struct {
	profiles    map[string]Profile
	missingCols map[string]bool // columns the "remote schema" lacks
	updates     []Update
	updateErr   error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{profiles: make(map[string]Profile), missingCols: make(map[string]bool)}
}

func (r *fakeRepo) GetProfile(userID string, omitColumns ...string) (Profile, error) {
	omitted := make(map[string]bool, len(omitColumns))
	for _, c := range omitColumns {
		omitted[c] = true
	}
	for col := range r.missingCols {
		if !omitted[col] {
			return Profile{}, &core.UndefinedColumnError{Column: col}
		}
	}
	p, ok := r.profiles[userID]
	if !ok {
		return Profile{}, ErrNotFound
	}
	if omitted["dashboard_image_url"] {
		p.DashboardImageURL = ""
	}
	return p, nil
}

func (r *fakeRepo) CreateProfile(p Profile) error {
	r.profiles[p.UserID] = p
	return nil
}

func (r *fakeRepo) UpdateProfile(userID string, up Update) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	r.updates = append(r.updates, up)
	p := r.profiles[userID]
	p.UserID = userID
	if up.FullName.Valid {
		p.FullName = up.FullName.String
	}
	if up.PictureURL.Valid {
		p.PictureURL = up.PictureURL.String
	}
	if up.ThemeID.Valid {
		p.ThemeID = up.ThemeID.String
	}
	if up.ColorScheme.Valid {
		p.ColorScheme = ColorScheme(up.ColorScheme.String)
	}
	if up.DashboardImageURL.Valid {
		p.DashboardImageURL = up.DashboardImageURL.String
	}
	r.profiles[userID] = p
	return nil
}

type fakeImageGen struct {
	bytes []byte
	err   error
}

func (g *fakeImageGen) GenerateImage(ctx context.Context, prompt string) ([]byte, error) {
	return g.bytes, g.err
}

func TestFetchColumnFallback(t *testing.T) {
	repo := newFakeRepo()
	repo.profiles["usr-1"] = Profile{UserID: "usr-1", FullName: "Ana", ThemeID: "sky", DashboardImageURL: "ignored"}
	repo.missingCols["dashboard_image_url"] = true
	svc := NewService(repo, &fakeImageGen{}, testutil.Logger(t))

	// the fallback fetch (without the missing column) succeeds; no error surfaces
	p, err := svc.Fetch("usr-1")
	if err != nil {
		t.Fatalf("Fetch() failed: %v", err)
	}
	if p.FullName != "Ana" || p.ThemeID != "sky" {
		t.Errorf("profile = %+v", p)
	}
	if p.DashboardImageURL != "" {
		t.Error("omitted column still populated")
	}
}

func TestFetchNotFoundPassesThrough(t *testing.T) {
	svc := NewService(newFakeRepo(), &fakeImageGen{}, testutil.Logger(t))
	if _, err := svc.Fetch("usr-1"); errors.Cause(err) != ErrNotFound {
		t.Errorf("Fetch() error = %v, want ErrNotFound", err)
	}
}

func TestSetThemeBestEffort(t *testing.T) {
	repo := newFakeRepo()
	repo.profiles["usr-1"] = Profile{UserID: "usr-1"}
	svc := NewService(repo, &fakeImageGen{}, testutil.Logger(t))

	theme, err := svc.SetTheme("usr-1", "emerald")
	if err != nil {
		t.Fatalf("SetTheme() failed: %v", err)
	}
	if theme.ID != "emerald" {
		t.Errorf("theme = %q", theme.ID)
	}
	if repo.profiles["usr-1"].ThemeID != "emerald" {
		t.Error("theme not persisted")
	}

	// persistence failure is swallowed (logged only)
	repo.updateErr = errors.New("boom")
	if _, err = svc.SetTheme("usr-1", "rose"); err != nil {
		t.Errorf("SetTheme() error = %v, want nil on persist failure", err)
	}

	// unknown theme is a validation error
	if _, err = svc.SetTheme("usr-1", "neon"); err == nil {
		t.Error("SetTheme(unknown) error = nil, want validation error")
	}
}

func TestGenerateDashboardImage(t *testing.T) {
	repo := newFakeRepo()
	repo.profiles["usr-1"] = Profile{UserID: "usr-1"}
	svc := NewService(repo, &fakeImageGen{bytes: []byte{0x89, 0x50}}, testutil.Logger(t))

	url, err := svc.GenerateDashboardImage(context.Background(), "usr-1")
	if err != nil {
		t.Fatalf("GenerateDashboardImage() failed: %v", err)
	}
	if url[:22] != "data:image/png;base64," {
		t.Errorf("url = %q, want data URL", url)
	}
	if repo.profiles["usr-1"].DashboardImageURL != url {
		t.Error("dashboard image not persisted")
	}

	// a missing remote column is tolerated silently
	repo.updateErr = &core.UndefinedColumnError{Column: "dashboard_image_url"}
	if _, err = svc.GenerateDashboardImage(context.Background(), "usr-1"); err != nil {
		t.Errorf("GenerateDashboardImage() error = %v, want nil", err)
	}

	// provider failure surfaces
	svc = NewService(repo, &fakeImageGen{err: errors.New("boom")}, testutil.Logger(t))
	if _, err = svc.GenerateDashboardImage(context.Background(), "usr-1"); err == nil {
		t.Error("GenerateDashboardImage() error = nil, want provider failure")
	}
}
