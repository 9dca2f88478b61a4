package service

import (
	"context"
	"errors"
	"path"
	"sync"
	"time"

	"shop-admin/internal/assets"
	"shop-admin/internal/domain"
	"shop-admin/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Mock repositories for testing. Update applies the $set payload the way the
// document store would: only the supplied fields are overwritten.

type mockCategoryRepository struct {
	categories map[primitive.ObjectID]*domain.Category
	createErr  error
}

func newMockCategoryRepository() *mockCategoryRepository {
	return &mockCategoryRepository{categories: make(map[primitive.ObjectID]*domain.Category)}
}

func (m *mockCategoryRepository) Create(ctx context.Context, category *domain.Category) (primitive.ObjectID, error) {
	if m.createErr != nil {
		return primitive.NilObjectID, m.createErr
	}
	id := primitive.NewObjectID()
	stored := *category
	stored.ID = id
	m.categories[id] = &stored
	return id, nil
}

func (m *mockCategoryRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Category, error) {
	category, ok := m.categories[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *category
	return &copied, nil
}

func (m *mockCategoryRepository) FindBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	for _, category := range m.categories {
		if category.Slug == slug {
			copied := *category
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *mockCategoryRepository) FindAll(ctx context.Context, limit, skip int64) ([]domain.Category, error) {
	categories := []domain.Category{}
	for _, category := range m.categories {
		categories = append(categories, *category)
	}
	return categories, nil
}

func (m *mockCategoryRepository) Update(ctx context.Context, id primitive.ObjectID, payload bson.M) (*domain.Category, error) {
	category, ok := m.categories[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	for field, value := range payload {
		switch field {
		case "name":
			category.Name = value.(string)
		case "slug":
			category.Slug = value.(string)
		case "image":
			category.Image = value.(string)
		case "updatedAt":
			category.UpdatedAt = value.(time.Time)
		}
	}
	copied := *category
	return &copied, nil
}

func (m *mockCategoryRepository) Delete(ctx context.Context, id primitive.ObjectID) (*domain.Category, error) {
	category, ok := m.categories[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	delete(m.categories, id)
	return category, nil
}

type mockProductRepository struct {
	products    map[primitive.ObjectID]*domain.Product
	createErr   error
	updateCalls int
}

func newMockProductRepository() *mockProductRepository {
	return &mockProductRepository{products: make(map[primitive.ObjectID]*domain.Product)}
}

func (m *mockProductRepository) Create(ctx context.Context, product *domain.Product) (primitive.ObjectID, error) {
	if m.createErr != nil {
		return primitive.NilObjectID, m.createErr
	}
	id := primitive.NewObjectID()
	stored := *product
	stored.ID = id
	m.products[id] = &stored
	return id, nil
}

func (m *mockProductRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Product, error) {
	product, ok := m.products[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *product
	return &copied, nil
}

func (m *mockProductRepository) FindAll(ctx context.Context, limit, skip int64) ([]domain.Product, error) {
	products := []domain.Product{}
	for _, product := range m.products {
		products = append(products, *product)
	}
	return products, nil
}

func (m *mockProductRepository) Update(ctx context.Context, id primitive.ObjectID, payload bson.M) (*domain.Product, error) {
	m.updateCalls++
	product, ok := m.products[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	for field, value := range payload {
		switch field {
		case "name":
			product.Name = value.(string)
		case "description":
			product.Description = value.(string)
		case "price":
			product.Price = value.(string)
		case "status":
			product.Status = value.(bool)
		case "models":
			product.Models = value.([]string)
		case "img":
			product.Img = value.(string)
		case "discount":
			if value == nil {
				product.Discount = nil
			} else {
				discount := value.(domain.Discount)
				product.Discount = &discount
			}
		case "updatedAt":
			product.UpdatedAt = value.(time.Time)
		}
	}
	copied := *product
	return &copied, nil
}

func (m *mockProductRepository) Delete(ctx context.Context, id primitive.ObjectID) (*domain.Product, error) {
	product, ok := m.products[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	delete(m.products, id)
	return product, nil
}

type mockUserRepository struct {
	users map[primitive.ObjectID]*domain.User
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{users: make(map[primitive.ObjectID]*domain.User)}
}

func (m *mockUserRepository) Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	stored := *user
	stored.ID = id
	m.users[id] = &stored
	return id, nil
}

func (m *mockUserRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	user, ok := m.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (m *mockUserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	for _, user := range m.users {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *mockUserRepository) Count(ctx context.Context) (int64, error) {
	return int64(len(m.users)), nil
}

type mockSettingsRepository struct {
	settings *domain.SiteSettings
}

func (m *mockSettingsRepository) Create(ctx context.Context, settings *domain.SiteSettings) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	stored := *settings
	stored.ID = id
	m.settings = &stored
	return id, nil
}

func (m *mockSettingsRepository) FindActive(ctx context.Context) (*domain.SiteSettings, error) {
	if m.settings == nil {
		return nil, repository.ErrNotFound
	}
	copied := *m.settings
	return &copied, nil
}

func (m *mockSettingsRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.SiteSettings, error) {
	if m.settings == nil || m.settings.ID != id {
		return nil, repository.ErrNotFound
	}
	copied := *m.settings
	return &copied, nil
}

func (m *mockSettingsRepository) Exists(ctx context.Context) (bool, error) {
	return m.settings != nil, nil
}

func (m *mockSettingsRepository) Update(ctx context.Context, id primitive.ObjectID, payload bson.M) (*domain.SiteSettings, error) {
	if m.settings == nil || m.settings.ID != id {
		return nil, repository.ErrNotFound
	}
	for field, value := range payload {
		switch field {
		case "siteName":
			m.settings.SiteName = value.(string)
		case "siteDescription":
			m.settings.SiteDescription = value.(string)
		case "siteTitle":
			m.settings.SiteTitle = value.(string)
		case "heroBanner":
			m.settings.HeroBanner = value.(domain.HeroBanner)
		case "heroBanner.image":
			m.settings.HeroBanner.Image = value.(string)
		case "colorPalette":
			m.settings.ColorPalette = value.(domain.ColorPalette)
		case "contactInfo":
			m.settings.ContactInfo = value.(domain.ContactInfo)
		case "socialMedia":
			social := value.(domain.SocialMedia)
			m.settings.SocialMedia = &social
		case "branding.siteLogo":
			m.settings.Branding.SiteLogo = value.(string)
		case "branding.adminLogo":
			m.settings.Branding.AdminLogo = value.(string)
		case "branding.favicon":
			m.settings.Branding.Favicon = value.(string)
		case "branding.logoAltText":
			m.settings.Branding.LogoAltText = value.(string)
		case "updatedAt":
			m.settings.UpdatedAt = value.(time.Time)
		}
	}
	copied := *m.settings
	return &copied, nil
}

func (m *mockSettingsRepository) Delete(ctx context.Context, id primitive.ObjectID) (*domain.SiteSettings, error) {
	if m.settings == nil || m.settings.ID != id {
		return nil, repository.ErrNotFound
	}
	settings := m.settings
	m.settings = nil
	return settings, nil
}

type mockShopAddressRepository struct {
	address *domain.ShopAddress
}

func (m *mockShopAddressRepository) Create(ctx context.Context, address *domain.ShopAddress) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	stored := *address
	stored.ID = id
	m.address = &stored
	return id, nil
}

func (m *mockShopAddressRepository) FindCurrent(ctx context.Context) (*domain.ShopAddress, error) {
	if m.address == nil {
		return nil, repository.ErrNotFound
	}
	copied := *m.address
	return &copied, nil
}

func (m *mockShopAddressRepository) Update(ctx context.Context, id primitive.ObjectID, payload bson.M) (*domain.ShopAddress, error) {
	if m.address == nil || m.address.ID != id {
		return nil, repository.ErrNotFound
	}
	for field, value := range payload {
		switch field {
		case "phone":
			m.address.Phone = value.(string)
		case "address":
			m.address.Address = value.(string)
		case "mapUrl":
			m.address.MapURL = value.(string)
		case "workingHours":
			m.address.WorkingHours = value.(string)
		case "updatedAt":
			m.address.UpdatedAt = value.(time.Time)
		}
	}
	copied := *m.address
	return &copied, nil
}

// mockStore records file operations instead of touching disk. The mutex
// covers the concurrent fan-out of settings uploads. When failName is set,
// only the matching file fails; otherwise saveErr fails every save.
type mockStore struct {
	mu       sync.Mutex
	saved    []string
	removed  []string
	saveErr  error
	failName string
}

func (m *mockStore) Save(data []byte, originalName, entity string, class assets.Class) (string, error) {
	if m.saveErr != nil && (m.failName == "" || m.failName == originalName) {
		return "", m.saveErr
	}
	urlPath := path.Join("/public", entity, originalName)
	m.mu.Lock()
	m.saved = append(m.saved, urlPath)
	m.mu.Unlock()
	return urlPath, nil
}

func (m *mockStore) Remove(urlPath string) {
	if urlPath == "" {
		return
	}
	m.mu.Lock()
	m.removed = append(m.removed, urlPath)
	m.mu.Unlock()
}

var errInsertFailed = errors.New("insert failed")
