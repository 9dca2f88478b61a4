package service

import (
	"context"
	"errors"
	"time"

	"shop-admin/internal/apperror"
	"shop-admin/internal/domain"
	"shop-admin/internal/repository"

	"go.uber.org/zap"
)

// CreateShopAddressInput carries the singleton shop address fields.
type CreateShopAddressInput struct {
	Phone        string `json:"phone" validate:"required"`
	Address      string `json:"address" validate:"required"`
	MapURL       string `json:"mapUrl"`
	WorkingHours string `json:"workingHours" validate:"required"`
}

// UpdateShopAddressInput is a partial-update DTO: nil fields are left untouched.
type UpdateShopAddressInput struct {
	Phone        *string `json:"phone"`
	Address      *string `json:"address"`
	MapURL       *string `json:"mapUrl"`
	WorkingHours *string `json:"workingHours"`
}

// ShopAddressService manages the singleton shop address record.
type ShopAddressService interface {
	Create(ctx context.Context, input CreateShopAddressInput) (*domain.ShopAddress, error)
	Get(ctx context.Context) (*domain.ShopAddress, error)
	Update(ctx context.Context, input UpdateShopAddressInput) (*domain.ShopAddress, error)
	Exists(ctx context.Context) (bool, error)
}

type shopAddressService struct {
	repo   repository.ShopAddressRepository
	logger *zap.Logger
}

// NewShopAddressService creates a new ShopAddressService.
func NewShopAddressService(repo repository.ShopAddressRepository, logger *zap.Logger) ShopAddressService {
	return &shopAddressService{repo: repo, logger: logger}
}

// Create stores the shop address. Exactly zero or one document ever exists;
// creation is rejected when one is present.
func (s *shopAddressService) Create(ctx context.Context, input CreateShopAddressInput) (*domain.ShopAddress, error) {
	existing, err := s.repo.FindCurrent(ctx)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		s.logger.Error("Failed to check shop address", zap.Error(err))
		return nil, apperror.Internal(err)
	}
	if existing != nil {
		return nil, apperror.Conflict("shop address already exists, use update instead")
	}

	now := time.Now().UTC()
	address := &domain.ShopAddress{
		Phone:        input.Phone,
		Address:      input.Address,
		MapURL:       input.MapURL,
		WorkingHours: input.WorkingHours,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	id, err := s.repo.Create(ctx, address)
	if err != nil {
		s.logger.Error("Failed to create shop address", zap.Error(err))
		return nil, apperror.Internal(err)
	}

	address.ID = id
	return address, nil
}

func (s *shopAddressService) Get(ctx context.Context) (*domain.ShopAddress, error) {
	address, err := s.repo.FindCurrent(ctx)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperror.NotFound("shop address not found")
	}
	if err != nil {
		s.logger.Error("Failed to get shop address", zap.Error(err))
		return nil, apperror.Internal(err)
	}
	return address, nil
}

// Update applies a partial merge to the singleton document.
func (s *shopAddressService) Update(ctx context.Context, input UpdateShopAddressInput) (*domain.ShopAddress, error) {
	current, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}

	payload, err := buildSetPayload([]fieldCoercion{
		{"phone", input.Phone, coerceVerbatim},
		{"address", input.Address, coerceVerbatim},
		{"mapUrl", input.MapURL, coerceVerbatim},
		{"workingHours", input.WorkingHours, coerceVerbatim},
	})
	if err != nil {
		return nil, err
	}

	payload["updatedAt"] = time.Now().UTC()

	updated, err := s.repo.Update(ctx, current.ID, payload)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperror.NotFound("shop address not found")
	}
	if err != nil {
		s.logger.Error("Failed to update shop address", zap.Error(err))
		return nil, apperror.Internal(err)
	}
	return updated, nil
}

func (s *shopAddressService) Exists(ctx context.Context) (bool, error) {
	_, err := s.repo.FindCurrent(ctx)
	if errors.Is(err, repository.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		s.logger.Error("Failed to check shop address existence", zap.Error(err))
		return false, apperror.Internal(err)
	}
	return true, nil
}
