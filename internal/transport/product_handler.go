package transport

import (
	"net/http"

	"shop-admin/internal/domain"
	"shop-admin/internal/middleware"
	"shop-admin/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// StatusRequest carries the activation flag on the wire as "1"/"0"
type StatusRequest struct {
	Status string `json:"status" validate:"required,oneof=0 1"`
}

// StatusResponse reports a product's activation flag
type StatusResponse struct {
	Status bool `json:"status"`
}

// ProductResponse decorates a product with its discounted price
type ProductResponse struct {
	*domain.Product
	PriceWithDiscount string `json:"priceWithDiscount"`
}

// ProductHandler handles HTTP requests for product operations
type ProductHandler struct {
	productService service.ProductService
	maxFileSize    int64
	logger         *zap.Logger
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService service.ProductService, maxFileSize int64, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		maxFileSize:    maxFileSize,
		logger:         logger,
	}
}

// RegisterRoutes registers all product routes
func (h *ProductHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/product", func(r chi.Router) {
		// Public routes
		r.Get("/", h.List)
		r.Get("/{id}", h.Get)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)
			r.Post("/", h.Create)
			r.Patch("/{id}", h.Update)
			r.Delete("/{id}", h.Delete)
			r.Get("/{id}/status", h.GetStatus)
			r.Patch("/{id}/status", h.UpdateStatus)
			r.Post("/{id}/discount", h.AddDiscount)
			r.Delete("/{id}/discount", h.RemoveDiscount)
		})
	})
}

func (h *ProductHandler) respondProduct(w http.ResponseWriter, statusCode int, product *domain.Product) {
	resp := ProductResponse{Product: product, PriceWithDiscount: product.Price}
	if effective, err := product.EffectivePrice(); err == nil {
		resp.PriceWithDiscount = effective.String()
	} else {
		h.logger.Warn("Failed to compute discounted price",
			zap.String("product_id", product.ID.Hex()),
			zap.Error(err),
		)
	}
	middleware.RespondWithJSON(w, statusCode, resp)
}

// Create handles product creation from a multipart form: text fields plus an
// optional "image" file. Price and status arrive as wire strings.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(h.maxFileSize); err != nil {
		h.logger.Debug("Multipart parse failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	req := service.CreateProductInput{
		Name:        r.FormValue("name"),
		Price:       r.FormValue("price"),
		Description: r.FormValue("description"),
		Status:      r.FormValue("status"),
		Models:      r.MultipartForm.Value["models"],
		CategoryID:  r.FormValue("categoryId"),
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

	product, err := h.productService.Create(r.Context(), req, img)
	if err != nil {
		h.logger.Debug("Product creation failed", zap.Error(err))
		middleware.RespondWithAppError(w, err)
		return
	}

	h.logger.Info("Product created",
		zap.String("product_id", product.ID.Hex()),
		zap.String("name", product.Name),
	)
	h.respondProduct(w, http.StatusCreated, product)
}

// List returns a page of products
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, page := paginationParams(r)

	products, err := h.productService.FindAll(r.Context(), limit, page)
	if err != nil {
		middleware.RespondWithAppError(w, err)
		return
	}

	responses := make([]ProductResponse, 0, len(products))
	for i := range products {
		p := products[i]
		resp := ProductResponse{Product: &p, PriceWithDiscount: p.Price}
		if effective, err := p.EffectivePrice(); err == nil {
			resp.PriceWithDiscount = effective.String()
		} else {
			h.logger.Warn("Failed to compute discounted price",
				zap.String("product_id", p.ID.Hex()),
				zap.Error(err),
			)
		}
		responses = append(responses, resp)
	}

	middleware.RespondWithJSON(w, http.StatusOK, responses)
}

// Get returns a single product by id
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := urlObjectID(r, "id")
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	product, err := h.productService.FindByID(r.Context(), id)
	if err != nil {
		middleware.RespondWithAppError(w, err)
		return
	}

	h.respondProduct(w, http.StatusOK, product)
}

// Update applies a partial update; fields absent from the form are left
// untouched.
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := urlObjectID(r, "id")
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	if err := r.ParseMultipartForm(h.maxFileSize); err != nil {
		h.logger.Debug("Multipart parse failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	var req service.UpdateProductInput
	if v, ok := formValue(r, "name"); ok {
		req.Name = &v
	}
	if v, ok := formValue(r, "price"); ok {
		req.Price = &v
	}
	if v, ok := formValue(r, "description"); ok {
		req.Description = &v
	}
	if v, ok := formValue(r, "status"); ok {
		req.Status = &v
	}
	req.Models = r.MultipartForm.Value["models"]

	img, err := formUpload(r, "image")
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid image upload")
		return
	}

	product, err := h.productService.Update(r.Context(), id, req, img)
	if err != nil {
		h.logger.Debug("Product update failed", zap.Error(err))
		middleware.RespondWithAppError(w, err)
		return
	}

	h.respondProduct(w, http.StatusOK, product)
}

// Delete removes a product and returns the removed document
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := urlObjectID(r, "id")
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	product, err := h.productService.Delete(r.Context(), id)
	if err != nil {
		middleware.RespondWithAppError(w, err)
		return
	}

	h.logger.Info("Product deleted", zap.String("product_id", id.Hex()))
	h.respondProduct(w, http.StatusOK, product)
}

// GetStatus returns the product's activation flag
func (h *ProductHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	id, err := urlObjectID(r, "id")
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	status, err := h.productService.Status(r.Context(), id)
	if err != nil {
		middleware.RespondWithAppError(w, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, StatusResponse{Status: status})
}

// UpdateStatus sets the product's activation flag
func (h *ProductHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := urlObjectID(r, "id")
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	var req StatusRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		respondBadInput(w, h.logger, err)
		return
	}

	product, err := h.productService.UpdateStatus(r.Context(), id, req.Status == "1")
	if err != nil {
		middleware.RespondWithAppError(w, err)
		return
	}

	h.respondProduct(w, http.StatusOK, product)
}

// AddDiscount attaches a discount to the product, replacing any existing one
func (h *ProductHandler) AddDiscount(w http.ResponseWriter, r *http.Request) {
	id, err := urlObjectID(r, "id")
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	var req service.DiscountInput
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		respondBadInput(w, h.logger, err)
		return
	}

	product, err := h.productService.AddDiscount(r.Context(), id, req)
	if err != nil {
		h.logger.Debug("Discount application failed", zap.Error(err))
		middleware.RespondWithAppError(w, err)
		return
	}

	h.logger.Info("Discount applied", zap.String("product_id", id.Hex()))
	h.respondProduct(w, http.StatusOK, product)
}

// RemoveDiscount clears the product's discount
func (h *ProductHandler) RemoveDiscount(w http.ResponseWriter, r *http.Request) {
	id, err := urlObjectID(r, "id")
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	product, err := h.productService.RemoveDiscount(r.Context(), id)
	if err != nil {
		h.logger.Debug("Discount removal failed", zap.Error(err))
		middleware.RespondWithAppError(w, err)
		return
	}

	h.logger.Info("Discount removed", zap.String("product_id", id.Hex()))
	h.respondProduct(w, http.StatusOK, product)
}
