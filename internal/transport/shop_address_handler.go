package transport

import (
	"net/http"

	"shop-admin/internal/middleware"
	"shop-admin/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ExistsResponse reports whether the singleton shop address is set up
type ExistsResponse struct {
	Exists bool `json:"exists"`
}

// ShopAddressHandler handles HTTP requests for the shop address
type ShopAddressHandler struct {
	addressService service.ShopAddressService
	logger         *zap.Logger
}

// NewShopAddressHandler creates a new ShopAddressHandler
func NewShopAddressHandler(addressService service.ShopAddressService, logger *zap.Logger) *ShopAddressHandler {
	return &ShopAddressHandler{
		addressService: addressService,
		logger:         logger,
	}
}

// RegisterRoutes registers all shop address routes
func (h *ShopAddressHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/shop-address", func(r chi.Router) {
		// Public routes
		r.Get("/", h.Get)
		r.Get("/exists", h.Exists)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)
			r.Post("/", h.Create)
			r.Patch("/", h.Update)
		})
	})
}

// Create stores the shop address; a second create is rejected
func (h *ShopAddressHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req service.CreateShopAddressInput

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		respondBadInput(w, h.logger, err)
		return
	}

	address, err := h.addressService.Create(r.Context(), req)
	if err != nil {
		h.logger.Debug("Shop address creation failed", zap.Error(err))
		middleware.RespondWithAppError(w, err)
		return
	}

	h.logger.Info("Shop address created", zap.String("address_id", address.ID.Hex()))
	middleware.RespondWithJSON(w, http.StatusCreated, address)
}

// Get returns the singleton shop address
func (h *ShopAddressHandler) Get(w http.ResponseWriter, r *http.Request) {
	address, err := h.addressService.Get(r.Context())
	if err != nil {
		middleware.RespondWithAppError(w, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, address)
}

// Exists reports whether a shop address has been set up yet
func (h *ShopAddressHandler) Exists(w http.ResponseWriter, r *http.Request) {
	exists, err := h.addressService.Exists(r.Context())
	if err != nil {
		middleware.RespondWithAppError(w, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, ExistsResponse{Exists: exists})
}

// Update applies a partial update to the singleton shop address
func (h *ShopAddressHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req service.UpdateShopAddressInput

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		respondBadInput(w, h.logger, err)
		return
	}

	address, err := h.addressService.Update(r.Context(), req)
	if err != nil {
		h.logger.Debug("Shop address update failed", zap.Error(err))
		middleware.RespondWithAppError(w, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, address)
}
