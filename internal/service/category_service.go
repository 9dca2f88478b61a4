package service

import (
	"context"
	"errors"
	"time"

	"shop-admin/internal/apperror"
	"shop-admin/internal/assets"
	"shop-admin/internal/domain"
	"shop-admin/internal/repository"
	"shop-admin/internal/slug"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Upload is an in-memory uploaded file handed down from the transport layer.
type Upload struct {
	Data     []byte
	Filename string
}

// CreateCategoryInput carries the fields accepted on category creation.
type CreateCategoryInput struct {
	Name string `json:"name" validate:"required"`
	Slug string `json:"slug"`
}

// UpdateCategoryInput is a partial-update DTO: nil fields are left untouched.
type UpdateCategoryInput struct {
	Name *string `json:"name"`
	Slug *string `json:"slug"`
}

// CategoryService orchestrates category business rules: slug derivation and
// uniqueness, image lifecycle, and error translation.
type CategoryService interface {
	Create(ctx context.Context, input CreateCategoryInput, img *Upload) (*domain.Category, error)
	FindAll(ctx context.Context, limit, page int) ([]domain.Category, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Category, error)
	FindBySlug(ctx context.Context, slug string) (*domain.Category, error)
	Update(ctx context.Context, id primitive.ObjectID, input UpdateCategoryInput, img *Upload) (*domain.Category, error)
	Delete(ctx context.Context, id primitive.ObjectID) (*domain.Category, error)
}

type categoryService struct {
	repo   repository.CategoryRepository
	store  assets.Store
	logger *zap.Logger
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(repo repository.CategoryRepository, store assets.Store, logger *zap.Logger) CategoryService {
	return &categoryService{repo: repo, store: store, logger: logger}
}

// Create derives and uniqueness-checks the slug, then writes the image (if
// any) before the document. The existence check and the insert are not
// atomic; a storage-level unique index on slug is the recommended backstop.
func (s *categoryService) Create(ctx context.Context, input CreateCategoryInput, img *Upload) (*domain.Category, error) {
	source := input.Slug
	if source == "" {
		source = input.Name
	}
	categorySlug := slug.WithFallback(source)

	existing, err := s.repo.FindBySlug(ctx, categorySlug)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		s.logger.Error("Failed to check category slug", zap.Error(err))
		return nil, apperror.Internal(err)
	}
	if existing != nil {
		return nil, apperror.Conflict("category with this slug already exists")
	}

	imageURL := ""
	if img != nil {
		imageURL, err = s.store.Save(img.Data, img.Filename, "category", assets.ClassThumbnail)
		if err != nil {
			return nil, err
		}
	}

	now := time.Now().UTC()
	category := &domain.Category{
		Name:      input.Name,
		Slug:      categorySlug,
		Image:     imageURL,
		CreatedAt: now,
		UpdatedAt: now,
	}

	id, err := s.repo.Create(ctx, category)
	if err != nil {
		// File was written before the insert; clean it up on failure.
		s.store.Remove(imageURL)
		s.logger.Error("Failed to create category", zap.Error(err))
		return nil, apperror.Internal(err)
	}

	category.ID = id
	return category, nil
}

func (s *categoryService) FindAll(ctx context.Context, limit, page int) ([]domain.Category, error) {
	l, skip := paginate(limit, page)
	categories, err := s.repo.FindAll(ctx, l, skip)
	if err != nil {
		s.logger.Error("Failed to list categories", zap.Error(err))
		return nil, apperror.Internal(err)
	}
	return categories, nil
}

func (s *categoryService) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Category, error) {
	category, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperror.NotFound("category not found")
	}
	if err != nil {
		s.logger.Error("Failed to find category", zap.Error(err))
		return nil, apperror.Internal(err)
	}
	return category, nil
}

func (s *categoryService) FindBySlug(ctx context.Context, categorySlug string) (*domain.Category, error) {
	category, err := s.repo.FindBySlug(ctx, categorySlug)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperror.NotFound("category not found")
	}
	if err != nil {
		s.logger.Error("Failed to find category by slug", zap.Error(err))
		return nil, apperror.Internal(err)
	}
	return category, nil
}

// Update applies a partial merge. A supplied slug is re-normalized and
// re-checked for uniqueness against other categories.
func (s *categoryService) Update(ctx context.Context, id primitive.ObjectID, input UpdateCategoryInput, img *Upload) (*domain.Category, error) {
	category, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	payload, err := buildSetPayload([]fieldCoercion{
		{"name", input.Name, coerceVerbatim},
		{"slug", input.Slug, coerceSlug},
	})
	if err != nil {
		return nil, err
	}

	if newSlug, ok := payload["slug"].(string); ok && newSlug != category.Slug {
		other, err := s.repo.FindBySlug(ctx, newSlug)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			s.logger.Error("Failed to check category slug", zap.Error(err))
			return nil, apperror.Internal(err)
		}
		if other != nil {
			return nil, apperror.Conflict("category with this slug already exists")
		}
	}

	if img != nil {
		s.store.Remove(category.Image)

		imageURL, err := s.store.Save(img.Data, img.Filename, "category", assets.ClassThumbnail)
		if err != nil {
			return nil, err
		}
		payload["image"] = imageURL
	}

	payload["updatedAt"] = time.Now().UTC()

	updated, err := s.repo.Update(ctx, id, payload)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperror.NotFound("category not found")
	}
	if err != nil {
		s.logger.Error("Failed to update category", zap.Error(err))
		return nil, apperror.Internal(err)
	}
	return updated, nil
}

// Delete removes the category and its image file as a best-effort side effect.
func (s *categoryService) Delete(ctx context.Context, id primitive.ObjectID) (*domain.Category, error) {
	category, err := s.repo.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperror.NotFound("category not found")
	}
	if err != nil {
		s.logger.Error("Failed to delete category", zap.Error(err))
		return nil, apperror.Internal(err)
	}

	s.store.Remove(category.Image)
	return category, nil
}
