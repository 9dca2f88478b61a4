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

// ProductRepository defines data access for products.
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) (primitive.ObjectID, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Product, error)
	FindAll(ctx context.Context, limit, skip int64) ([]domain.Product, error)
	Update(ctx context.Context, id primitive.ObjectID, payload bson.M) (*domain.Product, error)
	Delete(ctx context.Context, id primitive.ObjectID) (*domain.Product, error)
}

type productRepository struct {
	base *Repository[domain.Product]
}

// NewProductRepository binds the generic repository to the product collection.
func NewProductRepository(db *mongo.Database) ProductRepository {
	return &productRepository{
		base: NewRepository[domain.Product](db.Collection(database.CollectionProduct)),
	}
}

func (r *productRepository) Create(ctx context.Context, product *domain.Product) (primitive.ObjectID, error) {
	return r.base.Create(ctx, product)
}

func (r *productRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Product, error) {
	return r.base.FindOne(ctx, bson.M{"_id": id})
}

func (r *productRepository) FindAll(ctx context.Context, limit, skip int64) ([]domain.Product, error) {
	opts := options.Find().SetLimit(limit).SetSkip(skip)
	return r.base.FindAll(ctx, bson.M{}, opts)
}

func (r *productRepository) Update(ctx context.Context, id primitive.ObjectID, payload bson.M) (*domain.Product, error) {
	return r.base.Update(ctx, bson.M{"_id": id}, payload)
}

func (r *productRepository) Delete(ctx context.Context, id primitive.ObjectID) (*domain.Product, error) {
	return r.base.Delete(ctx, bson.M{"_id": id})
}
