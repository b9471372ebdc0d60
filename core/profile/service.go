package profile

import (
	"context"
	"encoding/base64"

	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/fineduca/backend/core"
)

// DashboardImagePrompt seeds the generated dashboard illustration.
const DashboardImagePrompt = "Uma pessoa focada, sentada em uma mesa de trabalho moderna e organizada, " +
	"analisando gráficos financeiros em um laptop. O ambiente é iluminado e otimista, com plantas e " +
	"luz natural. Estilo vetorial, alta qualidade."

// ImageGenerator produces raw image bytes for a prompt.
type ImageGenerator interface {
	GenerateImage(ctx context.Context, prompt string) ([]byte, error)
}

// Service owns profile reads and the appearance settings. Theme,
// color-scheme and dashboard-image persistence is best-effort: failures are
// logged, never surfaced.
type Service struct {
	repo   Repository
	imgGen ImageGenerator
	logger core.Logger
}

func NewService(repo Repository, imgGen ImageGenerator, logger core.Logger) *Service {
	return &Service{repo: repo, imgGen: imgGen, logger: logger}
}

// Fetch reads the user's profile, excluding any optional column the remote
// schema turns out not to have yet. ErrNotFound passes through for the
// caller's first-run provisioning.
func (svc *Service) Fetch(userID string) (Profile, error) {
	var omit []string
	for {
		p, err := svc.repo.GetProfile(userID, omit...)
		if err == nil {
			return p, nil
		}
		if uc, ok := errors.Cause(err).(*core.UndefinedColumnError); ok && len(omit) < 8 {
			svc.logger.Warn("profile column missing remotely, compatibility mode", uc.Column)
			omit = append(omit, uc.Column)
			continue
		}
		return Profile{}, errors.Wrap(err, "fetching profile")
	}
}

// Create provisions a default profile row for a first-time user.
func (svc *Service) Create(userID, fullName string) error {
	err := svc.repo.CreateProfile(Profile{UserID: userID, FullName: fullName})
	return errors.Wrap(err, "creating profile")
}

// SetTheme validates the theme identifier and persists it fire-and-forget.
func (svc *Service) SetTheme(userID, themeID string) (Theme, error) {
	theme, ok := ThemeByID(themeID)
	if !ok {
		return Theme{}, core.NewValidationError(errors.Errorf("unknown theme %q", themeID),
			core.FieldError{Field: "theme_id", Error: "unknown theme"})
	}
	if err := svc.repo.UpdateProfile(userID, Update{ThemeID: null.StringFrom(themeID)}); err != nil {
		svc.logger.Error("persisting theme failed", err)
	}
	return theme, nil
}

// SetColorScheme persists the scheme fire-and-forget.
func (svc *Service) SetColorScheme(userID string, scheme ColorScheme) error {
	if !scheme.Valid() {
		return core.NewValidationError(errors.Errorf("unknown color scheme %q", scheme),
			core.FieldError{Field: "color_scheme", Error: "must be one of: light, dark"})
	}
	if err := svc.repo.UpdateProfile(userID, Update{ColorScheme: null.StringFrom(string(scheme))}); err != nil {
		svc.logger.Error("persisting color scheme failed", err)
	}
	return nil
}

// SetPicture persists the profile picture reference; failures surface.
func (svc *Service) SetPicture(userID, pictureURL string) error {
	if core.CleanString(pictureURL) == "" {
		return core.NewValidationError(errors.New("empty picture"),
			core.FieldError{Field: "picture_url", Error: "this field is required"})
	}
	err := svc.repo.UpdateProfile(userID, Update{PictureURL: null.StringFrom(pictureURL)})
	return errors.Wrap(err, "saving profile picture")
}

// BackfillName writes the identity-provider display name onto a profile that
// has none; best-effort.
func (svc *Service) BackfillName(userID, fullName string) {
	if err := svc.repo.UpdateProfile(userID, Update{FullName: null.StringFrom(fullName)}); err != nil {
		svc.logger.Error("backfilling profile name failed", err)
	}
}

// GenerateDashboardImage requests the dashboard illustration and returns it
// as a data URL, persisting it on the profile. A missing remote column is
// tolerated silently; the image still applies locally.
func (svc *Service) GenerateDashboardImage(ctx context.Context, userID string) (string, error) {
	raw, err := svc.imgGen.GenerateImage(ctx, DashboardImagePrompt)
	if err != nil {
		return "", errors.Wrap(err, "generating dashboard image")
	}
	dataURL := "data:image/png;base64," + base64.StdEncoding.EncodeToString(raw)

	if err = svc.repo.UpdateProfile(userID, Update{DashboardImageURL: null.StringFrom(dataURL)}); err != nil && !core.IsUndefinedColumn(err) {
		svc.logger.Error("saving dashboard image failed", err)
	}
	return dataURL, nil
}

// GenerateAvatar produces a profile avatar image for the prompt.
func (svc *Service) GenerateAvatar(ctx context.Context, prompt string) ([]byte, error) {
	if core.CleanString(prompt) == "" {
		return nil, core.NewValidationError(errors.New("empty prompt"),
			core.FieldError{Field: "prompt", Error: "this field is required"})
	}
	raw, err := svc.imgGen.GenerateImage(ctx, prompt)
	if err != nil {
		return nil, errors.Wrap(err, "generating avatar")
	}
	return raw, nil
}
