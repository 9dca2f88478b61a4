package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"shop-admin/internal/apperror"
	"shop-admin/internal/assets"
	"shop-admin/internal/domain"
	"shop-admin/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// SettingsFiles groups the image uploads accepted alongside a settings
// payload. Each one is optional.
type SettingsFiles struct {
	HeroImage *Upload
	SiteLogo  *Upload
	AdminLogo *Upload
	Favicon   *Upload
}

// CreateSettingsInput carries the initial site settings.
type CreateSettingsInput struct {
	SiteName        string              `json:"siteName"`
	SiteDescription string              `json:"siteDescription"`
	SiteTitle       string              `json:"siteTitle"`
	HeroBanner      domain.HeroBanner   `json:"heroBanner"`
	ColorPalette    domain.ColorPalette `json:"colorPalette" validate:"required"`
	LogoAltText     string              `json:"logoAltText"`
	ContactInfo     domain.ContactInfo  `json:"contactInfo" validate:"required"`
	SocialMedia     *domain.SocialMedia `json:"socialMedia"`
}

// UpdateSettingsInput is a partial-update DTO: nil sections and fields are
// left untouched.
type UpdateSettingsInput struct {
	SiteName        *string              `json:"siteName"`
	SiteDescription *string              `json:"siteDescription"`
	SiteTitle       *string              `json:"siteTitle"`
	HeroBanner      *domain.HeroBanner   `json:"heroBanner"`
	ColorPalette    *domain.ColorPalette `json:"colorPalette"`
	LogoAltText     *string              `json:"logoAltText"`
	ContactInfo     *domain.ContactInfo  `json:"contactInfo"`
	SocialMedia     *domain.SocialMedia  `json:"socialMedia"`
}

// PublicSiteData is the settings view exposed to the storefront.
type PublicSiteData struct {
	SiteName        string              `json:"siteName"`
	SiteDescription string              `json:"siteDescription"`
	SiteTitle       string              `json:"siteTitle"`
	HeroBanner      domain.HeroBanner   `json:"heroBanner"`
	ColorPalette    domain.ColorPalette `json:"colorPalette"`
	Branding        domain.Branding     `json:"branding"`
	ContactInfo     domain.ContactInfo  `json:"contactInfo"`
	SocialMedia     *domain.SocialMedia `json:"socialMedia,omitempty"`
}

// SettingsService manages the single canonical site settings record.
type SettingsService interface {
	Create(ctx context.Context, input CreateSettingsInput, files SettingsFiles) (*domain.SiteSettings, error)
	GetCurrent(ctx context.Context) (*domain.SiteSettings, error)
	GetPublicSiteData(ctx context.Context) (*PublicSiteData, error)
	ThemeCSS(ctx context.Context) (string, error)
	Update(ctx context.Context, input UpdateSettingsInput, files SettingsFiles) (*domain.SiteSettings, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type settingsService struct {
	repo   repository.SettingsRepository
	store  assets.Store
	logger *zap.Logger
}

// NewSettingsService creates a new SettingsService.
func NewSettingsService(repo repository.SettingsRepository, store assets.Store, logger *zap.Logger) SettingsService {
	return &settingsService{repo: repo, store: store, logger: logger}
}

// processBranding resizes and stores the uploaded hero and branding images
// concurrently. Each task writes a distinct field and a distinct file, so
// the fan-out is race-free; results are joined before any database write.
// Paths from old are removed best-effort before the new files land. When any
// task fails, files already written by its siblings are removed again so no
// orphans survive the error.
func (s *settingsService) processBranding(files SettingsFiles, old *domain.SiteSettings) (bson.M, error) {
	var (
		g         errgroup.Group
		heroImage string
		siteLogo  string
		adminLogo string
		favicon   string
	)

	if files.HeroImage != nil {
		g.Go(func() error {
			if old != nil {
				s.store.Remove(old.HeroBanner.Image)
			}
			url, err := s.store.Save(files.HeroImage.Data, files.HeroImage.Filename, "site", assets.ClassHero)
			heroImage = url
			return err
		})
	}

	if files.SiteLogo != nil {
		g.Go(func() error {
			if old != nil {
				s.store.Remove(old.Branding.SiteLogo)
			}
			url, err := s.store.Save(files.SiteLogo.Data, files.SiteLogo.Filename, "site", assets.ClassLogo)
			siteLogo = url
			return err
		})
	}

	if files.AdminLogo != nil {
		g.Go(func() error {
			if old != nil {
				s.store.Remove(old.Branding.AdminLogo)
			}
			url, err := s.store.Save(files.AdminLogo.Data, files.AdminLogo.Filename, "site", assets.ClassLogo)
			adminLogo = url
			return err
		})
	}

	if files.Favicon != nil {
		g.Go(func() error {
			if old != nil {
				s.store.Remove(old.Branding.Favicon)
			}
			url, err := s.store.Save(files.Favicon.Data, files.Favicon.Filename, "site", assets.ClassFavicon)
			favicon = url
			return err
		})
	}

	if err := g.Wait(); err != nil {
		for _, stale := range []string{heroImage, siteLogo, adminLogo, favicon} {
			s.store.Remove(stale)
		}
		return nil, err
	}

	branding := bson.M{}
	if heroImage != "" {
		branding["heroBanner.image"] = heroImage
	}
	if siteLogo != "" {
		branding["branding.siteLogo"] = siteLogo
	}
	if adminLogo != "" {
		branding["branding.adminLogo"] = adminLogo
	}
	if favicon != "" {
		branding["branding.favicon"] = favicon
	}
	return branding, nil
}

// Create stores the initial settings record. Creation is rejected when one
// already exists; callers must use update instead.
func (s *settingsService) Create(ctx context.Context, input CreateSettingsInput, files SettingsFiles) (*domain.SiteSettings, error) {
	exists, err := s.repo.Exists(ctx)
	if err != nil {
		s.logger.Error("Failed to check settings existence", zap.Error(err))
		return nil, apperror.Internal(err)
	}
	if exists {
		return nil, apperror.Conflict("site settings already exist, use update instead")
	}

	brandingPaths, err := s.processBranding(files, nil)
	if err != nil {
		return nil, err
	}

	heroBanner := input.HeroBanner
	if url := stringAt(brandingPaths, "heroBanner.image"); url != "" {
		heroBanner.Image = url
	}

	now := time.Now().UTC()
	settings := &domain.SiteSettings{
		SiteName:        input.SiteName,
		SiteDescription: input.SiteDescription,
		SiteTitle:       input.SiteTitle,
		HeroBanner:      heroBanner,
		ColorPalette:    input.ColorPalette,
		Branding: domain.Branding{
			SiteLogo:    stringAt(brandingPaths, "branding.siteLogo"),
			AdminLogo:   stringAt(brandingPaths, "branding.adminLogo"),
			Favicon:     stringAt(brandingPaths, "branding.favicon"),
			LogoAltText: input.LogoAltText,
		},
		ContactInfo: input.ContactInfo,
		SocialMedia: input.SocialMedia,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	id, err := s.repo.Create(ctx, settings)
	if err != nil {
		// Image files were written before the insert; clean them up.
		s.store.Remove(stringAt(brandingPaths, "heroBanner.image"))
		s.store.Remove(settings.Branding.SiteLogo)
		s.store.Remove(settings.Branding.AdminLogo)
		s.store.Remove(settings.Branding.Favicon)
		s.logger.Error("Failed to create settings", zap.Error(err))
		return nil, apperror.Internal(err)
	}

	settings.ID = id
	return settings, nil
}

func (s *settingsService) GetCurrent(ctx context.Context) (*domain.SiteSettings, error) {
	settings, err := s.repo.FindActive(ctx)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperror.NotFound("site settings not found")
	}
	if err != nil {
		s.logger.Error("Failed to get settings", zap.Error(err))
		return nil, apperror.Internal(err)
	}
	return settings, nil
}

func (s *settingsService) GetPublicSiteData(ctx context.Context) (*PublicSiteData, error) {
	settings, err := s.GetCurrent(ctx)
	if err != nil {
		return nil, err
	}

	return &PublicSiteData{
		SiteName:        settings.SiteName,
		SiteDescription: settings.SiteDescription,
		SiteTitle:       settings.SiteTitle,
		HeroBanner:      settings.HeroBanner,
		ColorPalette:    settings.ColorPalette,
		Branding:        settings.Branding,
		ContactInfo:     settings.ContactInfo,
		SocialMedia:     settings.SocialMedia,
	}, nil
}

// ThemeCSS renders the color palette as CSS custom properties.
func (s *settingsService) ThemeCSS(ctx context.Context) (string, error) {
	settings, err := s.GetCurrent(ctx)
	if err != nil {
		return "", err
	}

	palette := settings.ColorPalette
	var b strings.Builder
	b.WriteString(":root {\n")
	writeColor(&b, "--primary-color", palette.PrimaryColor, "")
	writeColor(&b, "--text-color", palette.TextColor, "")
	writeColor(&b, "--background-color", palette.BackgroundColor, "#FFFFFF")
	writeColor(&b, "--surface-color", palette.SurfaceColor, "#F9FAFB")
	writeColor(&b, "--border-color", palette.BorderColor, "#E5E7EB")
	writeColor(&b, "--success-color", palette.SuccessColor, "#10B981")
	writeColor(&b, "--warning-color", palette.WarningColor, "#F59E0B")
	writeColor(&b, "--error-color", palette.ErrorColor, "#EF4444")
	b.WriteString("}\n")

	return b.String(), nil
}

// Update applies a partial merge over the canonical record. Sections absent
// from the input are left untouched; branding uploads replace old files.
func (s *settingsService) Update(ctx context.Context, input UpdateSettingsInput, files SettingsFiles) (*domain.SiteSettings, error) {
	current, err := s.GetCurrent(ctx)
	if err != nil {
		return nil, err
	}

	payload, err := buildSetPayload([]fieldCoercion{
		{"siteName", input.SiteName, coerceVerbatim},
		{"siteDescription", input.SiteDescription, coerceVerbatim},
		{"siteTitle", input.SiteTitle, coerceVerbatim},
		{"branding.logoAltText", input.LogoAltText, coerceVerbatim},
	})
	if err != nil {
		return nil, err
	}

	if input.HeroBanner != nil {
		payload["heroBanner"] = *input.HeroBanner
	}
	if input.ColorPalette != nil {
		payload["colorPalette"] = *input.ColorPalette
	}
	if input.ContactInfo != nil {
		payload["contactInfo"] = *input.ContactInfo
	}
	if input.SocialMedia != nil {
		payload["socialMedia"] = *input.SocialMedia
	}

	brandingPaths, err := s.processBranding(files, current)
	if err != nil {
		return nil, err
	}
	if url, ok := brandingPaths["heroBanner.image"]; ok {
		// A whole-section heroBanner write and the dotted image path would
		// conflict inside a single $set; fold the image into the section.
		if section, replaced := payload["heroBanner"].(domain.HeroBanner); replaced {
			section.Image = url.(string)
			payload["heroBanner"] = section
			delete(brandingPaths, "heroBanner.image")
		}
	}
	for k, v := range brandingPaths {
		payload[k] = v
	}

	payload["updatedAt"] = time.Now().UTC()

	updated, err := s.repo.Update(ctx, current.ID, payload)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperror.NotFound("site settings not found")
	}
	if err != nil {
		s.logger.Error("Failed to update settings", zap.Error(err))
		return nil, apperror.Internal(err)
	}
	return updated, nil
}

// Delete removes the settings record and all stored images best-effort.
func (s *settingsService) Delete(ctx context.Context, id primitive.ObjectID) error {
	settings, err := s.repo.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return apperror.NotFound("site settings not found")
	}
	if err != nil {
		s.logger.Error("Failed to delete settings", zap.Error(err))
		return apperror.Internal(err)
	}

	s.store.Remove(settings.HeroBanner.Image)
	s.store.Remove(settings.Branding.SiteLogo)
	s.store.Remove(settings.Branding.AdminLogo)
	s.store.Remove(settings.Branding.Favicon)
	return nil
}

func stringAt(m bson.M, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}

func writeColor(b *strings.Builder, name, color, fallback string) {
	if color == "" {
		color = fallback
	}
	if color == "" {
		return
	}
	if !strings.HasPrefix(color, "#") {
		color = "#" + color
	}
	fmt.Fprintf(b, "  %s: %s;\n", name, color)
}
