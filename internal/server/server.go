package server

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"shop-admin/internal/assets"
	"shop-admin/internal/config"
	"shop-admin/internal/database"
	custommiddleware "shop-admin/internal/middleware"
	"shop-admin/internal/repository"
	"shop-admin/internal/service"
	"shop-admin/internal/transport"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Server struct {
	*http.Server
	config      *config.Config
	logger      *zap.Logger
	db          *database.Service
	redisClient *redis.Client

	// UserService is exposed for startup tasks such as admin seeding.
	UserService service.UserService
}

func NewServer(cfg *config.Config, logger *zap.Logger, db *database.Service, redisClient *redis.Client) *Server {
	// Create router
	router := chi.NewRouter()

	// Add basic middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(custommiddleware.ErrorHandlingMiddleware(logger))
	router.Use(custommiddleware.LoggingMiddleware(logger))
	router.Use(custommiddleware.CORSMiddleware(nil))

	if redisClient != nil {
		router.Use(custommiddleware.RateLimitMiddleware(redisClient, custommiddleware.RateLimitConfig{
			RequestsPerWindow: 100,
			Window:            time.Minute,
			KeyPrefix:         "ratelimit",
		}, logger))
	}

	// Health check endpoint
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		custommiddleware.RespondWithJSON(w, http.StatusOK, db.Health(r.Context()))
	})

	// Uploaded images are served straight off the asset tree
	fileServer := http.StripPrefix("/public/", http.FileServer(http.Dir(filepath.Join(cfg.Assets.Root, "public"))))
	router.Get("/public/*", func(w http.ResponseWriter, r *http.Request) {
		fileServer.ServeHTTP(w, r)
	})

	// Initialize repositories
	categoryRepo := repository.NewCategoryRepository(db.DB())
	productRepo := repository.NewProductRepository(db.DB())
	userRepo := repository.NewUserRepository(db.DB())
	settingsRepo := repository.NewSettingsRepository(db.DB())
	addressRepo := repository.NewShopAddressRepository(db.DB())

	// Initialize asset storage
	store := assets.NewDiskStore(cfg.Assets.Root, logger)

	// Initialize services
	categoryService := service.NewCategoryService(categoryRepo, store, logger)
	productService := service.NewProductService(productRepo, categoryRepo, store, logger)
	userService := service.NewUserService(userRepo, cfg.JWT.Secret, cfg.JWT.AccessExpiry, logger)
	settingsService := service.NewSettingsService(settingsRepo, store, logger)
	addressService := service.NewShopAddressService(addressRepo, logger)

	// Initialize handlers
	categoryHandler := transport.NewCategoryHandler(categoryService, cfg.Assets.MaxFileSize, logger)
	productHandler := transport.NewProductHandler(productService, cfg.Assets.MaxFileSize, logger)
	userHandler := transport.NewUserHandler(userService, logger)
	settingsHandler := transport.NewSettingsHandler(settingsService, cfg.Assets.MaxFileSize, logger)
	addressHandler := transport.NewShopAddressHandler(addressService, logger)

	// Create auth middleware
	authMiddleware := custommiddleware.AuthMiddleware(userService, logger)

	// Register routes
	categoryHandler.RegisterRoutes(router, authMiddleware)
	productHandler.RegisterRoutes(router, authMiddleware)
	userHandler.RegisterRoutes(router, authMiddleware)
	settingsHandler.RegisterRoutes(router, authMiddleware)
	addressHandler.RegisterRoutes(router, authMiddleware)

	server := &Server{
		Server: &http.Server{
			Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
			Handler:      router,
			IdleTimeout:  time.Minute,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		config:      cfg,
		logger:      logger,
		db:          db,
		redisClient: redisClient,
		UserService: userService,
	}

	return server
}

func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if s.db != nil {
		if err := s.db.Close(ctx); err != nil {
			s.logger.Error("Failed to close database connection", zap.Error(err))
		}
	}

	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			s.logger.Error("Failed to close redis connection", zap.Error(err))
		}
	}

	s.logger.Sync()
	return nil
}
