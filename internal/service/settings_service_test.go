package service

import (
	"context"
	"errors"
	"testing"

	"shop-admin/internal/apperror"
	"shop-admin/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestSettingsService(repo *mockSettingsRepository, store *mockStore) SettingsService {
	return NewSettingsService(repo, store, zap.NewNop())
}

func settingsInput() CreateSettingsInput {
	return CreateSettingsInput{
		SiteName:  "Coffee Corner",
		SiteTitle: "Coffee Corner - fresh beans daily",
		ColorPalette: domain.ColorPalette{
			PrimaryColor: "#8B4513",
			TextColor:    "111827",
		},
		ContactInfo: domain.ContactInfo{
			Email:        "hello@coffee.example",
			Phone:        "+49 30 1234567",
			Address:      "Bergmannstr. 1, Berlin",
			WorkingHours: "Mon-Sat 8-18",
		},
	}
}

func TestSettingsService_Create(t *testing.T) {
	repo := &mockSettingsRepository{}
	svc := newTestSettingsService(repo, &mockStore{})

	settings, err := svc.Create(context.Background(), settingsInput(), SettingsFiles{})
	require.NoError(t, err)

	assert.Equal(t, "Coffee Corner", settings.SiteName)
	assert.False(t, settings.ID.IsZero())
}

func TestSettingsService_Create_RejectsSecondRecord(t *testing.T) {
	repo := &mockSettingsRepository{}
	svc := newTestSettingsService(repo, &mockStore{})
	ctx := context.Background()

	_, err := svc.Create(ctx, settingsInput(), SettingsFiles{})
	require.NoError(t, err)

	_, err = svc.Create(ctx, settingsInput(), SettingsFiles{})
	require.Error(t, err)
	assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))
}

func TestSettingsService_Create_StoresBrandingUploads(t *testing.T) {
	repo := &mockSettingsRepository{}
	store := &mockStore{}
	svc := newTestSettingsService(repo, store)

	settings, err := svc.Create(context.Background(), settingsInput(), SettingsFiles{
		SiteLogo: &Upload{Data: []byte("logo"), Filename: "logo.png"},
		Favicon:  &Upload{Data: []byte("fav"), Filename: "favicon.png"},
	})
	require.NoError(t, err)

	assert.NotEmpty(t, settings.Branding.SiteLogo)
	assert.NotEmpty(t, settings.Branding.Favicon)
	assert.Empty(t, settings.Branding.AdminLogo)
	assert.Len(t, store.saved, 2)
}

func TestSettingsService_Create_StoresHeroImage(t *testing.T) {
	repo := &mockSettingsRepository{}
	store := &mockStore{}
	svc := newTestSettingsService(repo, store)

	settings, err := svc.Create(context.Background(), settingsInput(), SettingsFiles{
		HeroImage: &Upload{Data: []byte("hero"), Filename: "hero.jpg"},
	})
	require.NoError(t, err)

	assert.Equal(t, "/public/site/hero.jpg", settings.HeroBanner.Image)
	assert.Len(t, store.saved, 1)
}

func TestSettingsService_Update_PartialMerge(t *testing.T) {
	repo := &mockSettingsRepository{}
	svc := newTestSettingsService(repo, &mockStore{})
	ctx := context.Background()

	_, err := svc.Create(ctx, settingsInput(), SettingsFiles{})
	require.NoError(t, err)

	name := "Coffee Corner Berlin"
	updated, err := svc.Update(ctx, UpdateSettingsInput{SiteName: &name}, SettingsFiles{})
	require.NoError(t, err)

	assert.Equal(t, "Coffee Corner Berlin", updated.SiteName)
	// Sections absent from the update stay untouched.
	assert.Equal(t, "#8B4513", updated.ColorPalette.PrimaryColor)
	assert.Equal(t, "hello@coffee.example", updated.ContactInfo.Email)
}

func TestSettingsService_Update_ReplacesBrandingFiles(t *testing.T) {
	repo := &mockSettingsRepository{}
	store := &mockStore{}
	svc := newTestSettingsService(repo, store)
	ctx := context.Background()

	created, err := svc.Create(ctx, settingsInput(), SettingsFiles{
		SiteLogo: &Upload{Data: []byte("old"), Filename: "old.png"},
	})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, UpdateSettingsInput{}, SettingsFiles{
		SiteLogo: &Upload{Data: []byte("new"), Filename: "new.png"},
	})
	require.NoError(t, err)

	assert.NotEqual(t, created.Branding.SiteLogo, updated.Branding.SiteLogo)
	assert.Contains(t, store.removed, created.Branding.SiteLogo)
}

func TestSettingsService_Update_ReplacesHeroImage(t *testing.T) {
	repo := &mockSettingsRepository{}
	store := &mockStore{}
	svc := newTestSettingsService(repo, store)
	ctx := context.Background()

	created, err := svc.Create(ctx, settingsInput(), SettingsFiles{
		HeroImage: &Upload{Data: []byte("old"), Filename: "old.jpg"},
	})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, UpdateSettingsInput{}, SettingsFiles{
		HeroImage: &Upload{Data: []byte("new"), Filename: "new.jpg"},
	})
	require.NoError(t, err)

	assert.Equal(t, "/public/site/new.jpg", updated.HeroBanner.Image)
	assert.Contains(t, store.removed, created.HeroBanner.Image)
}

func TestSettingsService_Update_HeroSectionAndImageTogether(t *testing.T) {
	repo := &mockSettingsRepository{}
	store := &mockStore{}
	svc := newTestSettingsService(repo, store)
	ctx := context.Background()

	_, err := svc.Create(ctx, settingsInput(), SettingsFiles{})
	require.NoError(t, err)

	banner := domain.HeroBanner{Title: "Autumn roast", ButtonText: "Shop now"}
	updated, err := svc.Update(ctx, UpdateSettingsInput{HeroBanner: &banner}, SettingsFiles{
		HeroImage: &Upload{Data: []byte("hero"), Filename: "autumn.jpg"},
	})
	require.NoError(t, err)

	assert.Equal(t, "Autumn roast", updated.HeroBanner.Title)
	assert.Equal(t, "/public/site/autumn.jpg", updated.HeroBanner.Image)
}

func TestSettingsService_Update_FailedUploadCleansUpSiblings(t *testing.T) {
	repo := &mockSettingsRepository{}
	store := &mockStore{saveErr: errors.New("disk full"), failName: "favicon.png"}
	svc := newTestSettingsService(repo, store)
	ctx := context.Background()

	_, err := svc.Create(ctx, settingsInput(), SettingsFiles{})
	require.NoError(t, err)

	_, err = svc.Update(ctx, UpdateSettingsInput{}, SettingsFiles{
		SiteLogo: &Upload{Data: []byte("logo"), Filename: "logo.png"},
		Favicon:  &Upload{Data: []byte("fav"), Filename: "favicon.png"},
	})
	require.Error(t, err)

	// The logo written before the favicon failed must not be left behind.
	assert.Contains(t, store.removed, "/public/site/logo.png")
}

func TestSettingsService_ThemeCSS(t *testing.T) {
	repo := &mockSettingsRepository{}
	svc := newTestSettingsService(repo, &mockStore{})
	ctx := context.Background()

	_, err := svc.Create(ctx, settingsInput(), SettingsFiles{})
	require.NoError(t, err)

	css, err := svc.ThemeCSS(ctx)
	require.NoError(t, err)

	assert.Contains(t, css, ":root {")
	assert.Contains(t, css, "--primary-color: #8B4513;")
	// Missing # prefix is normalized.
	assert.Contains(t, css, "--text-color: #111827;")
	// Unset palette entries fall back to defaults.
	assert.Contains(t, css, "--background-color: #FFFFFF;")
	assert.Contains(t, css, "--error-color: #EF4444;")
}

func TestSettingsService_GetPublicSiteData(t *testing.T) {
	repo := &mockSettingsRepository{}
	svc := newTestSettingsService(repo, &mockStore{})
	ctx := context.Background()

	_, err := svc.Create(ctx, settingsInput(), SettingsFiles{})
	require.NoError(t, err)

	data, err := svc.GetPublicSiteData(ctx)
	require.NoError(t, err)

	assert.Equal(t, "Coffee Corner", data.SiteName)
	assert.Equal(t, "#8B4513", data.ColorPalette.PrimaryColor)
}

func TestSettingsService_GetCurrent_NotFound(t *testing.T) {
	repo := &mockSettingsRepository{}
	svc := newTestSettingsService(repo, &mockStore{})

	_, err := svc.GetCurrent(context.Background())
	require.Error(t, err)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

func TestSettingsService_Delete_RemovesBrandingFiles(t *testing.T) {
	repo := &mockSettingsRepository{}
	store := &mockStore{}
	svc := newTestSettingsService(repo, store)
	ctx := context.Background()

	created, err := svc.Create(ctx, settingsInput(), SettingsFiles{
		HeroImage: &Upload{Data: []byte("hero"), Filename: "hero.jpg"},
		SiteLogo:  &Upload{Data: []byte("logo"), Filename: "logo.png"},
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))
	assert.Contains(t, store.removed, created.HeroBanner.Image)
	assert.Contains(t, store.removed, created.Branding.SiteLogo)
	assert.Nil(t, repo.settings)
}
