package repository

import (
	"context"

	"shop-admin/internal/database"
	"shop-admin/internal/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SettingsRepository defines data access for the site settings record.
type SettingsRepository interface {
	Create(ctx context.Context, settings *domain.SiteSettings) (primitive.ObjectID, error)
	// FindActive returns the canonical settings record, selected by most
	// recent creation order.
	FindActive(ctx context.Context) (*domain.SiteSettings, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*domain.SiteSettings, error)
	Exists(ctx context.Context) (bool, error)
	Update(ctx context.Context, id primitive.ObjectID, payload bson.M) (*domain.SiteSettings, error)
	Delete(ctx context.Context, id primitive.ObjectID) (*domain.SiteSettings, error)
}

type settingsRepository struct {
	base *Repository[domain.SiteSettings]
}

// NewSettingsRepository binds the generic repository to the site-settings collection.
func NewSettingsRepository(db *mongo.Database) SettingsRepository {
	return &settingsRepository{
		base: NewRepository[domain.SiteSettings](db.Collection(database.CollectionSiteSettings)),
	}
}

func (r *settingsRepository) Create(ctx context.Context, settings *domain.SiteSettings) (primitive.ObjectID, error) {
	return r.base.Create(ctx, settings)
}

func (r *settingsRepository) FindActive(ctx context.Context) (*domain.SiteSettings, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return r.base.FindOne(ctx, bson.M{}, opts)
}

func (r *settingsRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.SiteSettings, error) {
	return r.base.FindOne(ctx, bson.M{"_id": id})
}

func (r *settingsRepository) Exists(ctx context.Context) (bool, error) {
	count, err := r.base.Count(ctx, bson.M{})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *settingsRepository) Update(ctx context.Context, id primitive.ObjectID, payload bson.M) (*domain.SiteSettings, error) {
	return r.base.Update(ctx, bson.M{"_id": id}, payload)
}

func (r *settingsRepository) Delete(ctx context.Context, id primitive.ObjectID) (*domain.SiteSettings, error) {
	return r.base.Delete(ctx, bson.M{"_id": id})
}
