package database

import (
	"context"
	"fmt"
	"time"

	"shop-admin/internal/config"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// Collection names, one per entity type.
const (
	CollectionCategory     = "category"
	CollectionProduct      = "product"
	CollectionUser         = "user"
	CollectionSiteSettings = "site-settings"
	CollectionShopAddress  = "shop-address"
)

// Service wraps the MongoDB client and the application database handle.
type Service struct {
	client *mongo.Client
	db     *mongo.Database
	logger *zap.Logger
}

// New connects to MongoDB and verifies the connection with a ping.
func New(ctx context.Context, cfg config.MongoConfig, logger *zap.Logger) (*Service, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	logger.Info("Connected to MongoDB", zap.String("database", cfg.Database))

	return &Service{
		client: client,
		db:     client.Database(cfg.Database),
		logger: logger,
	}, nil
}

// DB returns the application database handle.
func (s *Service) DB() *mongo.Database {
	return s.db
}

// Health reports connection status for the health endpoint.
func (s *Service) Health(ctx context.Context) map[string]string {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := s.client.Ping(ctx, readpref.Primary()); err != nil {
		return map[string]string{"status": "down", "error": err.Error()}
	}
	return map[string]string{"status": "up"}
}

// Close disconnects the underlying client.
func (s *Service) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
