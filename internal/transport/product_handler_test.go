package transport

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"shop-admin/internal/apperror"
	"shop-admin/internal/domain"
	"shop-admin/internal/middleware"
	"shop-admin/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// mockProductService serves a single fixed product.
type mockProductService struct {
	product *domain.Product
}

func (m *mockProductService) lookup(id primitive.ObjectID) (*domain.Product, error) {
	if m.product == nil || m.product.ID != id {
		return nil, apperror.NotFound("product not found")
	}
	return m.product, nil
}

func (m *mockProductService) Create(ctx context.Context, input service.CreateProductInput, img *service.Upload) (*domain.Product, error) {
	return m.product, nil
}

func (m *mockProductService) FindAll(ctx context.Context, limit, page int) ([]domain.Product, error) {
	if m.product == nil {
		return []domain.Product{}, nil
	}
	return []domain.Product{*m.product}, nil
}

func (m *mockProductService) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Product, error) {
	return m.lookup(id)
}

func (m *mockProductService) Update(ctx context.Context, id primitive.ObjectID, input service.UpdateProductInput, img *service.Upload) (*domain.Product, error) {
	return m.lookup(id)
}

func (m *mockProductService) Delete(ctx context.Context, id primitive.ObjectID) (*domain.Product, error) {
	return m.lookup(id)
}

func (m *mockProductService) Status(ctx context.Context, id primitive.ObjectID) (bool, error) {
	product, err := m.lookup(id)
	if err != nil {
		return false, err
	}
	return product.Status, nil
}

func (m *mockProductService) UpdateStatus(ctx context.Context, id primitive.ObjectID, status bool) (*domain.Product, error) {
	product, err := m.lookup(id)
	if err != nil {
		return nil, err
	}
	product.Status = status
	return product, nil
}

func (m *mockProductService) AddDiscount(ctx context.Context, id primitive.ObjectID, input service.DiscountInput) (*domain.Product, error) {
	return m.lookup(id)
}

func (m *mockProductService) RemoveDiscount(ctx context.Context, id primitive.ObjectID) (*domain.Product, error) {
	return m.lookup(id)
}

func discountedProduct() *domain.Product {
	return &domain.Product{
		ID:     primitive.NewObjectID(),
		Name:   "Latte",
		Price:  "100",
		Status: true,
		Models: []string{},
		Discount: &domain.Discount{
			Type:      domain.DiscountPercentage,
			Value:     "10",
			IsActive:  true,
			AppliedAt: time.Now().UTC(),
		},
	}
}

func newProductRouter(svc service.ProductService) chi.Router {
	router := chi.NewRouter()
	handler := NewProductHandler(svc, 5<<20, zap.NewNop())
	handler.RegisterRoutes(router, middleware.AuthMiddleware(stubVerifier{}, zap.NewNop()))
	return router
}

func TestProductRoutes_GetIncludesDiscountedPrice(t *testing.T) {
	svc := &mockProductService{product: discountedProduct()}
	router := newProductRouter(svc)

	req := httptest.NewRequest("GET", "/api/product/"+svc.product.ID.Hex(), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "100", response["price"])
	assert.Equal(t, "90", response["priceWithDiscount"])
}

func TestProductRoutes_InactiveDiscountKeepsListPrice(t *testing.T) {
	svc := &mockProductService{product: discountedProduct()}
	svc.product.Discount.IsActive = false
	router := newProductRouter(svc)

	req := httptest.NewRequest("GET", "/api/product/"+svc.product.ID.Hex(), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "100", response["priceWithDiscount"])
}

func TestProductRoutes_ListLogsUncomputablePrice(t *testing.T) {
	svc := &mockProductService{product: discountedProduct()}
	svc.product.Price = "not-a-number"

	core, logs := observer.New(zap.WarnLevel)
	router := chi.NewRouter()
	handler := NewProductHandler(svc, 5<<20, zap.New(core))
	handler.RegisterRoutes(router, middleware.AuthMiddleware(stubVerifier{}, zap.NewNop()))

	req := httptest.NewRequest("GET", "/api/product/", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var responses []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &responses))
	require.Len(t, responses, 1)
	// The unparsable price falls back to the stored value and gets logged.
	assert.Equal(t, "not-a-number", responses[0]["priceWithDiscount"])
	assert.Equal(t, 1, logs.FilterMessage("Failed to compute discounted price").Len())
}

func TestProductRoutes_InvalidIDIsBadRequest(t *testing.T) {
	router := newProductRouter(&mockProductService{})

	req := httptest.NewRequest("GET", "/api/product/not-an-id", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProductRoutes_UnknownIDIsNotFound(t *testing.T) {
	router := newProductRouter(&mockProductService{})

	req := httptest.NewRequest("GET", "/api/product/"+primitive.NewObjectID().Hex(), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProductRoutes_DiscountEndpointsAreProtected(t *testing.T) {
	svc := &mockProductService{product: discountedProduct()}
	router := newProductRouter(svc)
	target := "/api/product/" + svc.product.ID.Hex() + "/discount"

	req := httptest.NewRequest("DELETE", target, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	req = httptest.NewRequest("DELETE", target, nil)
	req.Header.Set("Authorization", "Bearer good-token")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
