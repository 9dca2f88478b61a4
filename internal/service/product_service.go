package service

import (
	"context"
	"errors"
	"time"

	"shop-admin/internal/apperror"
	"shop-admin/internal/assets"
	"shop-admin/internal/domain"
	"shop-admin/internal/repository"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// CreateProductInput carries the fields accepted on product creation. Status
// arrives as the wire string "1"/"0".
type CreateProductInput struct {
	Name        string   `json:"name" validate:"required"`
	Price       string   `json:"price" validate:"required"`
	Description string   `json:"description"`
	Status      string   `json:"status" validate:"required,oneof=0 1"`
	Models      []string `json:"models"`
	CategoryID  string   `json:"categoryId" validate:"required"`
}

// UpdateProductInput is a partial-update DTO: nil fields are left untouched.
type UpdateProductInput struct {
	Name        *string  `json:"name"`
	Price       *string  `json:"price"`
	Description *string  `json:"description"`
	Status      *string  `json:"status"`
	Models      []string `json:"models"`
}

// DiscountInput describes a discount to apply. Value is a decimal string;
// IsActive defaults to true when omitted.
type DiscountInput struct {
	Type     string `json:"type" validate:"required,oneof=flat percentage"`
	Value    string `json:"value" validate:"required"`
	IsActive *bool  `json:"isActive"`
}

// ProductService orchestrates product business rules: price coercion, status
// coercion, category snapshotting, discount math and image lifecycle.
type ProductService interface {
	Create(ctx context.Context, input CreateProductInput, img *Upload) (*domain.Product, error)
	FindAll(ctx context.Context, limit, page int) ([]domain.Product, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Product, error)
	Update(ctx context.Context, id primitive.ObjectID, input UpdateProductInput, img *Upload) (*domain.Product, error)
	Delete(ctx context.Context, id primitive.ObjectID) (*domain.Product, error)
	Status(ctx context.Context, id primitive.ObjectID) (bool, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status bool) (*domain.Product, error)
	AddDiscount(ctx context.Context, id primitive.ObjectID, input DiscountInput) (*domain.Product, error)
	RemoveDiscount(ctx context.Context, id primitive.ObjectID) (*domain.Product, error)
}

type productService struct {
	repo         repository.ProductRepository
	categoryRepo repository.CategoryRepository
	store        assets.Store
	logger       *zap.Logger
}

// NewProductService creates a new ProductService.
func NewProductService(
	repo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	store assets.Store,
	logger *zap.Logger,
) ProductService {
	return &productService{repo: repo, categoryRepo: categoryRepo, store: store, logger: logger}
}

// Create inserts a product referencing an existing category, embedding a
// snapshot of it. The image (if any) is written before the document; on
// insert failure the just-written file is removed.
func (s *productService) Create(ctx context.Context, input CreateProductInput, img *Upload) (*domain.Product, error) {
	categoryID, err := primitive.ObjectIDFromHex(input.CategoryID)
	if err != nil {
		return nil, apperror.Validation("invalid category id")
	}

	category, err := s.categoryRepo.FindByID(ctx, categoryID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperror.NotFound("category not found")
	}
	if err != nil {
		s.logger.Error("Failed to look up category", zap.Error(err))
		return nil, apperror.Internal(err)
	}

	price, err := coercePrice(input.Price)
	if err != nil {
		return nil, err
	}
	status, err := coerceStatus(input.Status)
	if err != nil {
		return nil, err
	}

	imageURL := ""
	if img != nil {
		imageURL, err = s.store.Save(img.Data, img.Filename, "product", assets.ClassThumbnail)
		if err != nil {
			return nil, err
		}
	}

	models := input.Models
	if models == nil {
		models = []string{}
	}

	now := time.Now().UTC()
	product := &domain.Product{
		Name:        input.Name,
		Price:       price.(string),
		Img:         imageURL,
		Models:      models,
		Description: input.Description,
		Status:      status.(bool),
		Category:    *category,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	id, err := s.repo.Create(ctx, product)
	if err != nil {
		s.store.Remove(imageURL)
		s.logger.Error("Failed to create product", zap.Error(err))
		return nil, apperror.Internal(err)
	}

	product.ID = id
	return product, nil
}

func (s *productService) FindAll(ctx context.Context, limit, page int) ([]domain.Product, error) {
	l, skip := paginate(limit, page)
	products, err := s.repo.FindAll(ctx, l, skip)
	if err != nil {
		s.logger.Error("Failed to list products", zap.Error(err))
		return nil, apperror.Internal(err)
	}
	return products, nil
}

func (s *productService) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Product, error) {
	product, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperror.NotFound("product not found")
	}
	if err != nil {
		s.logger.Error("Failed to find product", zap.Error(err))
		return nil, apperror.Internal(err)
	}
	return product, nil
}

// Update runs the supplied fields through the transformation table and
// applies a partial merge; absent fields are never touched.
func (s *productService) Update(ctx context.Context, id primitive.ObjectID, input UpdateProductInput, img *Upload) (*domain.Product, error) {
	product, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	payload, err := buildSetPayload([]fieldCoercion{
		{"name", input.Name, coerceVerbatim},
		{"description", input.Description, coerceVerbatim},
		{"price", input.Price, coercePrice},
		{"status", input.Status, coerceStatus},
	})
	if err != nil {
		return nil, err
	}

	if input.Models != nil {
		payload["models"] = input.Models
	}

	if img != nil {
		s.store.Remove(product.Img)

		imageURL, err := s.store.Save(img.Data, img.Filename, "product", assets.ClassThumbnail)
		if err != nil {
			return nil, err
		}
		payload["img"] = imageURL
	}

	payload["updatedAt"] = time.Now().UTC()

	updated, err := s.repo.Update(ctx, id, payload)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperror.NotFound("product not found")
	}
	if err != nil {
		s.logger.Error("Failed to update product", zap.Error(err))
		return nil, apperror.Internal(err)
	}
	return updated, nil
}

// Delete removes the product and its image file as a best-effort side effect.
func (s *productService) Delete(ctx context.Context, id primitive.ObjectID) (*domain.Product, error) {
	product, err := s.repo.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperror.NotFound("product not found")
	}
	if err != nil {
		s.logger.Error("Failed to delete product", zap.Error(err))
		return nil, apperror.Internal(err)
	}

	s.store.Remove(product.Img)
	return product, nil
}

func (s *productService) Status(ctx context.Context, id primitive.ObjectID) (bool, error) {
	product, err := s.FindByID(ctx, id)
	if err != nil {
		return false, err
	}
	return product.Status, nil
}

func (s *productService) UpdateStatus(ctx context.Context, id primitive.ObjectID, status bool) (*domain.Product, error) {
	updated, err := s.repo.Update(ctx, id, bson.M{
		"status":    status,
		"updatedAt": time.Now().UTC(),
	})
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperror.NotFound("product not found")
	}
	if err != nil {
		s.logger.Error("Failed to update product status", zap.Error(err))
		return nil, apperror.Internal(err)
	}
	return updated, nil
}

// AddDiscount replaces any existing discount entirely. The value must be a
// non-negative decimal.
func (s *productService) AddDiscount(ctx context.Context, id primitive.ObjectID, input DiscountInput) (*domain.Product, error) {
	value, err := decimal.NewFromString(input.Value)
	if err != nil {
		return nil, apperror.Validation("discount value must be a decimal number")
	}
	if value.IsNegative() {
		return nil, apperror.Validation("discount value cannot be negative")
	}

	discountType := domain.DiscountType(input.Type)
	if discountType != domain.DiscountFlat && discountType != domain.DiscountPercentage {
		return nil, apperror.Validation("discount type must be flat or percentage")
	}

	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}

	discount := domain.Discount{
		Type:      discountType,
		Value:     value.String(),
		IsActive:  isActive,
		AppliedAt: time.Now().UTC(),
	}

	updated, err := s.repo.Update(ctx, id, bson.M{
		"discount":  discount,
		"updatedAt": time.Now().UTC(),
	})
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperror.NotFound("product not found")
	}
	if err != nil {
		s.logger.Error("Failed to add discount", zap.Error(err))
		return nil, apperror.Internal(err)
	}
	return updated, nil
}

// RemoveDiscount clears the discount. It fails when no active discount is
// present, and performs no write in that case.
func (s *productService) RemoveDiscount(ctx context.Context, id primitive.ObjectID) (*domain.Product, error) {
	product, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if product.Discount == nil || !product.Discount.IsActive {
		return nil, apperror.Validation("product has no active discount")
	}

	updated, err := s.repo.Update(ctx, id, bson.M{
		"discount":  nil,
		"updatedAt": time.Now().UTC(),
	})
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperror.NotFound("product not found")
	}
	if err != nil {
		s.logger.Error("Failed to remove discount", zap.Error(err))
		return nil, apperror.Internal(err)
	}
	return updated, nil
}
