package repository

import (
	"context"

	"shop-admin/internal/database"
	"shop-admin/internal/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ShopAddressRepository defines data access for the singleton shop address.
type ShopAddressRepository interface {
	Create(ctx context.Context, address *domain.ShopAddress) (primitive.ObjectID, error)
	// FindCurrent returns the single address document, or ErrNotFound.
	FindCurrent(ctx context.Context) (*domain.ShopAddress, error)
	Update(ctx context.Context, id primitive.ObjectID, payload bson.M) (*domain.ShopAddress, error)
}

type shopAddressRepository struct {
	base *Repository[domain.ShopAddress]
}

// NewShopAddressRepository binds the generic repository to the shop-address collection.
func NewShopAddressRepository(db *mongo.Database) ShopAddressRepository {
	return &shopAddressRepository{
		base: NewRepository[domain.ShopAddress](db.Collection(database.CollectionShopAddress)),
	}
}

func (r *shopAddressRepository) Create(ctx context.Context, address *domain.ShopAddress) (primitive.ObjectID, error) {
	return r.base.Create(ctx, address)
}

func (r *shopAddressRepository) FindCurrent(ctx context.Context) (*domain.ShopAddress, error) {
	return r.base.FindOne(ctx, bson.M{})
}

func (r *shopAddressRepository) Update(ctx context.Context, id primitive.ObjectID, payload bson.M) (*domain.ShopAddress, error) {
	return r.base.Update(ctx, bson.M{"_id": id}, payload)
}
