package transport

import (
	"net/http"

	"shop-admin/internal/middleware"
	"shop-admin/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// SettingsHandler handles HTTP requests for site settings operations
type SettingsHandler struct {
	settingsService service.SettingsService
	maxFileSize     int64
	logger          *zap.Logger
}

// NewSettingsHandler creates a new SettingsHandler
func NewSettingsHandler(settingsService service.SettingsService, maxFileSize int64, logger *zap.Logger) *SettingsHandler {
	return &SettingsHandler{
		settingsService: settingsService,
		maxFileSize:     maxFileSize,
		logger:          logger,
	}
}

// RegisterRoutes registers all site settings routes
func (h *SettingsHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/site-settings", func(r chi.Router) {
		// Public routes
		r.Get("/public", h.GetPublicSiteData)
		r.Get("/theme.css", h.ThemeCSS)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)
			r.Post("/", h.Create)
			r.Get("/", h.GetCurrent)
			r.Patch("/", h.Update)
			r.Delete("/{id}", h.Delete)
		})
	})
}

// settingsFiles reads the optional image uploads from the multipart form.
func settingsFiles(r *http.Request) (service.SettingsFiles, error) {
	var files service.SettingsFiles
	var err error

	if files.HeroImage, err = formUpload(r, "heroImage"); err != nil {
		return files, err
	}
	if files.SiteLogo, err = formUpload(r, "siteLogo"); err != nil {
		return files, err
	}
	if files.AdminLogo, err = formUpload(r, "adminLogo"); err != nil {
		return files, err
	}
	files.Favicon, err = formUpload(r, "favicon")
	return files, err
}

// Create stores the initial settings record. The settings payload travels in
// a "data" JSON part next to the branding file parts.
func (h *SettingsHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(h.maxFileSize); err != nil {
		h.logger.Debug("Multipart parse failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	var req service.CreateSettingsInput
	if err := middleware.UnmarshalAndValidate([]byte(r.FormValue("data")), &req); err != nil {
		respondBadInput(w, h.logger, err)
		return
	}

	files, err := settingsFiles(r)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid file upload")
		return
	}

	settings, err := h.settingsService.Create(r.Context(), req, files)
	if err != nil {
		h.logger.Debug("Settings creation failed", zap.Error(err))
		middleware.RespondWithAppError(w, err)
		return
	}

	h.logger.Info("Site settings created", zap.String("settings_id", settings.ID.Hex()))
	middleware.RespondWithJSON(w, http.StatusCreated, settings)
}

// GetCurrent returns the full settings record for the admin panel
func (h *SettingsHandler) GetCurrent(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settingsService.GetCurrent(r.Context())
	if err != nil {
		middleware.RespondWithAppError(w, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, settings)
}

// GetPublicSiteData returns the storefront view of the settings
func (h *SettingsHandler) GetPublicSiteData(w http.ResponseWriter, r *http.Request) {
	data, err := h.settingsService.GetPublicSiteData(r.Context())
	if err != nil {
		middleware.RespondWithAppError(w, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, data)
}

// ThemeCSS serves the color palette as a stylesheet
func (h *SettingsHandler) ThemeCSS(w http.ResponseWriter, r *http.Request) {
	css, err := h.settingsService.ThemeCSS(r.Context())
	if err != nil {
		middleware.RespondWithAppError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(css))
}

// Update applies a partial update to the canonical settings record
func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(h.maxFileSize); err != nil {
		h.logger.Debug("Multipart parse failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	var req service.UpdateSettingsInput
	if data := r.FormValue("data"); data != "" {
		if err := middleware.UnmarshalAndValidate([]byte(data), &req); err != nil {
			respondBadInput(w, h.logger, err)
			return
		}
	}

	files, err := settingsFiles(r)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid file upload")
		return
	}

	settings, err := h.settingsService.Update(r.Context(), req, files)
	if err != nil {
		h.logger.Debug("Settings update failed", zap.Error(err))
		middleware.RespondWithAppError(w, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, settings)
}

// Delete removes a settings record
func (h *SettingsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := urlObjectID(r, "id")
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid settings id")
		return
	}

	if err := h.settingsService.Delete(r.Context(), id); err != nil {
		middleware.RespondWithAppError(w, err)
		return
	}

	h.logger.Info("Site settings deleted", zap.String("settings_id", id.Hex()))
	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "site settings deleted"})
}
