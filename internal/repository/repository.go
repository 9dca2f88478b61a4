package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotFound is returned when no document matches the given filter.
var ErrNotFound = errors.New("document not found")

// Repository is a typed CRUD wrapper over a single collection. It carries no
// business semantics: payload shapes and error policy belong to the services.
// Every domain repository composes one of these instead of embedding driver
// calls directly, so partial-update and at-most-one-delete semantics are
// identical across all entities.
type Repository[T any] struct {
	coll *mongo.Collection
}

// NewRepository binds a typed repository to a collection.
func NewRepository[T any](coll *mongo.Collection) *Repository[T] {
	return &Repository[T]{coll: coll}
}

// Create inserts a new document and returns the generated identifier. The
// caller-supplied document is never mutated.
func (r *Repository[T]) Create(ctx context.Context, doc *T) (primitive.ObjectID, error) {
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return primitive.NilObjectID, err
	}

	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}
	return id, nil
}

// FindOne returns the first document matching the filter, or ErrNotFound.
func (r *Repository[T]) FindOne(ctx context.Context, filter bson.M, opts ...*options.FindOneOptions) (*T, error) {
	var doc T
	err := r.coll.FindOne(ctx, filter, opts...).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// FindAll returns documents matching the filter in store-default order unless
// a sort is set on opts. Pagination is expressed through limit/skip on opts.
func (r *Repository[T]) FindAll(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]T, error) {
	if filter == nil {
		filter = bson.M{}
	}

	cursor, err := r.coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	docs := []T{}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

// Update applies a partial merge: only the fields present in payload are
// overwritten, everything else is left untouched. Returns the document after
// the update, or ErrNotFound when nothing matched.
func (r *Repository[T]) Update(ctx context.Context, filter bson.M, payload bson.M) (*T, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc T
	err := r.coll.FindOneAndUpdate(ctx, filter, bson.M{"$set": payload}, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// Delete removes at most one matching document and returns its pre-deletion
// state, or ErrNotFound.
func (r *Repository[T]) Delete(ctx context.Context, filter bson.M) (*T, error) {
	var doc T
	err := r.coll.FindOneAndDelete(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// Count returns the number of documents matching the filter. Used by the
// services for existence probes.
func (r *Repository[T]) Count(ctx context.Context, filter bson.M) (int64, error) {
	if filter == nil {
		filter = bson.M{}
	}
	return r.coll.CountDocuments(ctx, filter)
}
