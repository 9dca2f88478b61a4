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

// CategoryRepository defines data access for categories. Helpers return raw
// found-or-ErrNotFound results; validation and error translation belong to
// the service layer.
type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) (primitive.ObjectID, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Category, error)
	FindBySlug(ctx context.Context, slug string) (*domain.Category, error)
	FindAll(ctx context.Context, limit, skip int64) ([]domain.Category, error)
	Update(ctx context.Context, id primitive.ObjectID, payload bson.M) (*domain.Category, error)
	Delete(ctx context.Context, id primitive.ObjectID) (*domain.Category, error)
}

type categoryRepository struct {
	base *Repository[domain.Category]
}

// NewCategoryRepository binds the generic repository to the category collection.
func NewCategoryRepository(db *mongo.Database) CategoryRepository {
	return &categoryRepository{
		base: NewRepository[domain.Category](db.Collection(database.CollectionCategory)),
	}
}

func (r *categoryRepository) Create(ctx context.Context, category *domain.Category) (primitive.ObjectID, error) {
	return r.base.Create(ctx, category)
}

func (r *categoryRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Category, error) {
	return r.base.FindOne(ctx, bson.M{"_id": id})
}

func (r *categoryRepository) FindBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	return r.base.FindOne(ctx, bson.M{"slug": slug})
}

func (r *categoryRepository) FindAll(ctx context.Context, limit, skip int64) ([]domain.Category, error) {
	opts := options.Find().SetLimit(limit).SetSkip(skip)
	return r.base.FindAll(ctx, bson.M{}, opts)
}

func (r *categoryRepository) Update(ctx context.Context, id primitive.ObjectID, payload bson.M) (*domain.Category, error) {
	return r.base.Update(ctx, bson.M{"_id": id}, payload)
}

func (r *categoryRepository) Delete(ctx context.Context, id primitive.ObjectID) (*domain.Category, error) {
	return r.base.Delete(ctx, bson.M{"_id": id})
}
