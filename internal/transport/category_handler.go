package transport

import (
	"net/http"

	"shop-admin/internal/middleware"
	"shop-admin/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// CategoryHandler handles HTTP requests for category operations
type CategoryHandler struct {
	categoryService service.CategoryService
	maxFileSize     int64
	logger          *zap.Logger
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categoryService service.CategoryService, maxFileSize int64, logger *zap.Logger) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
		maxFileSize:     maxFileSize,
		logger:          logger,
	}
}

// RegisterRoutes registers all category routes
func (h *CategoryHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/category", func(r chi.Router) {
		// Public routes
		r.Get("/", h.List)
		r.Get("/{id}", h.Get)
		r.Get("/slug/{slug}", h.GetBySlug)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)
			r.Post("/", h.Create)
			r.Patch("/{id}", h.Update)
			r.Delete("/{id}", h.Delete)
		})
	})
}

// Create handles category creation from a multipart form: text fields plus
// an optional "image" file.
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(h.maxFileSize); err != nil {
		h.logger.Debug("Multipart parse failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	req := service.CreateCategoryInput{
		Name: r.FormValue("name"),
		Slug: r.FormValue("slug"),
	}
	if err := middleware.ValidateStruct(req); err != nil {
		respondBadInput(w, h.logger, err)
		return
	}

	img, err := formUpload(r, "image")
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid image upload")
		return
	}

	category, err := h.categoryService.Create(r.Context(), req, img)
	if err != nil {
		h.logger.Debug("Category creation failed", zap.Error(err))
		middleware.RespondWithAppError(w, err)
		return
	}

	h.logger.Info("Category created",
		zap.String("category_id", category.ID.Hex()),
		zap.String("slug", category.Slug),
	)
	middleware.RespondWithJSON(w, http.StatusCreated, category)
}

// List returns a page of categories
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, page := paginationParams(r)

	categories, err := h.categoryService.FindAll(r.Context(), limit, page)
	if err != nil {
		middleware.RespondWithAppError(w, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, categories)
}

// Get returns a single category by id
func (h *CategoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := urlObjectID(r, "id")
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid category id")
		return
	}

	category, err := h.categoryService.FindByID(r.Context(), id)
	if err != nil {
		middleware.RespondWithAppError(w, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, category)
}

// GetBySlug returns a single category by slug
func (h *CategoryHandler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	category, err := h.categoryService.FindBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		middleware.RespondWithAppError(w, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, category)
}

// Update applies a partial update; fields absent from the form are left
// untouched.
func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := urlObjectID(r, "id")
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid category id")
		return
	}

	if err := r.ParseMultipartForm(h.maxFileSize); err != nil {
		h.logger.Debug("Multipart parse failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	var req service.UpdateCategoryInput
	if v, ok := formValue(r, "name"); ok {
		req.Name = &v
	}
	if v, ok := formValue(r, "slug"); ok {
		req.Slug = &v
	}

	img, err := formUpload(r, "image")
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid image upload")
		return
	}

	category, err := h.categoryService.Update(r.Context(), id, req, img)
	if err != nil {
		h.logger.Debug("Category update failed", zap.Error(err))
		middleware.RespondWithAppError(w, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, category)
}

// Delete removes a category and returns the removed document
func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := urlObjectID(r, "id")
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid category id")
		return
	}

	category, err := h.categoryService.Delete(r.Context(), id)
	if err != nil {
		middleware.RespondWithAppError(w, err)
		return
	}

	h.logger.Info("Category deleted", zap.String("category_id", id.Hex()))
	middleware.RespondWithJSON(w, http.StatusOK, category)
}
