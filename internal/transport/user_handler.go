package transport

import (
	"net/http"

	"shop-admin/internal/middleware"
	"shop-admin/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// LoginResponse represents the login response
type LoginResponse struct {
	AccessToken string `json:"accessToken"`
}

// UserProfile represents admin account data
type UserProfile struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// UserHandler handles HTTP requests for admin account operations
type UserHandler struct {
	userService service.UserService
	logger      *zap.Logger
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService service.UserService, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		userService: userService,
		logger:      logger,
	}
}

// RegisterRoutes registers all user routes
func (h *UserHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/auth", func(r chi.Router) {
		// Public routes
		r.Post("/login", h.Login)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)
			r.Post("/register", h.Register)
			r.Get("/profile", h.GetProfile)
		})
	})
}

// Register handles admin account creation. Only an authenticated admin can
// create further accounts; the first one comes from the startup seed.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req service.CredentialsInput

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		respondBadInput(w, h.logger, err)
		return
	}

	user, err := h.userService.Create(r.Context(), req)
	if err != nil {
		h.logger.Debug("Registration failed", zap.Error(err))
		middleware.RespondWithAppError(w, err)
		return
	}

	profile := UserProfile{
		ID:       user.ID.Hex(),
		Username: user.Username,
	}

	h.logger.Info("Admin user registered", zap.String("user_id", profile.ID))
	middleware.RespondWithJSON(w, http.StatusCreated, profile)
}

// Login handles admin authentication
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req service.CredentialsInput

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		respondBadInput(w, h.logger, err)
		return
	}

	accessToken, err := h.userService.Login(r.Context(), req)
	if err != nil {
		h.logger.Debug("Login failed", zap.Error(err))
		middleware.RespondWithAppError(w, err)
		return
	}

	h.logger.Info("Admin logged in", zap.String("username", req.Username))
	middleware.RespondWithJSON(w, http.StatusOK, LoginResponse{AccessToken: accessToken})
}

// GetProfile returns the authenticated principal
func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		h.logger.Error("Principal not found in context")
		middleware.RespondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, UserProfile{
		ID:       principal.ID,
		Username: principal.Username,
	})
}
