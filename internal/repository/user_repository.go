package repository

import (
	"context"

	"shop-admin/internal/database"
	"shop-admin/internal/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// UserRepository defines data access for admin users.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	Count(ctx context.Context) (int64, error)
}

type userRepository struct {
	base *Repository[domain.User]
}

// NewUserRepository binds the generic repository to the user collection.
func NewUserRepository(db *mongo.Database) UserRepository {
	return &userRepository{
		base: NewRepository[domain.User](db.Collection(database.CollectionUser)),
	}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error) {
	return r.base.Create(ctx, user)
}

func (r *userRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	return r.base.FindOne(ctx, bson.M{"_id": id})
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.base.FindOne(ctx, bson.M{"username": username})
}

func (r *userRepository) Count(ctx context.Context) (int64, error) {
	return r.base.Count(ctx, bson.M{})
}
