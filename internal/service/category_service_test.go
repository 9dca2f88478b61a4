package service

import (
	"context"
	"testing"

	"shop-admin/internal/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func newTestCategoryService(repo *mockCategoryRepository, store *mockStore) CategoryService {
	return NewCategoryService(repo, store, zap.NewNop())
}

func TestCategoryService_Create_DerivesSlugFromName(t *testing.T) {
	repo := newMockCategoryRepository()
	svc := newTestCategoryService(repo, &mockStore{})

	category, err := svc.Create(context.Background(), CreateCategoryInput{Name: "Espresso Drinks"}, nil)
	require.NoError(t, err)

	assert.Equal(t, "espresso-drinks", category.Slug)
	assert.Equal(t, "Espresso Drinks", category.Name)
	assert.False(t, category.ID.IsZero())
	assert.False(t, category.CreatedAt.IsZero())
}

func TestCategoryService_Create_PrefersExplicitSlug(t *testing.T) {
	repo := newMockCategoryRepository()
	svc := newTestCategoryService(repo, &mockStore{})

	category, err := svc.Create(context.Background(), CreateCategoryInput{
		Name: "Espresso Drinks",
		Slug: "Hot  Coffee!",
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, "hot-coffee", category.Slug)
}

func TestCategoryService_Create_RejectsDuplicateSlug(t *testing.T) {
	repo := newMockCategoryRepository()
	svc := newTestCategoryService(repo, &mockStore{})
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateCategoryInput{Name: "Espresso Drinks"}, nil)
	require.NoError(t, err)

	_, err = svc.Create(ctx, CreateCategoryInput{Name: "espresso drinks"}, nil)
	require.Error(t, err)
	assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))
	assert.Len(t, repo.categories, 1)
}

func TestCategoryService_Create_RemovesImageOnInsertFailure(t *testing.T) {
	repo := newMockCategoryRepository()
	repo.createErr = errInsertFailed
	store := &mockStore{}
	svc := newTestCategoryService(repo, store)

	_, err := svc.Create(context.Background(), CreateCategoryInput{Name: "Espresso Drinks"}, &Upload{
		Data:     []byte("img"),
		Filename: "espresso.jpg",
	})
	require.Error(t, err)

	// The file was written before the insert and must be cleaned up.
	require.Len(t, store.saved, 1)
	assert.Equal(t, store.saved, store.removed)
}

func TestCategoryService_Update_PartialMerge(t *testing.T) {
	repo := newMockCategoryRepository()
	svc := newTestCategoryService(repo, &mockStore{})
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateCategoryInput{Name: "Espresso Drinks"}, nil)
	require.NoError(t, err)

	name := "Filter Coffee"
	updated, err := svc.Update(ctx, created.ID, UpdateCategoryInput{Name: &name}, nil)
	require.NoError(t, err)

	assert.Equal(t, "Filter Coffee", updated.Name)
	// Slug was absent from the update and must stay untouched.
	assert.Equal(t, "espresso-drinks", updated.Slug)
}

func TestCategoryService_Update_RejectsSlugTakenByAnother(t *testing.T) {
	repo := newMockCategoryRepository()
	svc := newTestCategoryService(repo, &mockStore{})
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateCategoryInput{Name: "Espresso Drinks"}, nil)
	require.NoError(t, err)
	other, err := svc.Create(ctx, CreateCategoryInput{Name: "Filter Coffee"}, nil)
	require.NoError(t, err)

	slug := "Espresso Drinks"
	_, err = svc.Update(ctx, other.ID, UpdateCategoryInput{Slug: &slug}, nil)
	require.Error(t, err)
	assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))
}

func TestCategoryService_Update_ReplacesImage(t *testing.T) {
	repo := newMockCategoryRepository()
	store := &mockStore{}
	svc := newTestCategoryService(repo, store)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateCategoryInput{Name: "Espresso Drinks"}, &Upload{
		Data:     []byte("old"),
		Filename: "old.jpg",
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.Image)

	updated, err := svc.Update(ctx, created.ID, UpdateCategoryInput{}, &Upload{
		Data:     []byte("new"),
		Filename: "new.jpg",
	})
	require.NoError(t, err)

	assert.NotEqual(t, created.Image, updated.Image)
	assert.Contains(t, store.removed, created.Image)
}

func TestCategoryService_Delete_RemovesImage(t *testing.T) {
	repo := newMockCategoryRepository()
	store := &mockStore{}
	svc := newTestCategoryService(repo, store)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateCategoryInput{Name: "Espresso Drinks"}, &Upload{
		Data:     []byte("img"),
		Filename: "espresso.jpg",
	})
	require.NoError(t, err)

	deleted, err := svc.Delete(ctx, created.ID)
	require.NoError(t, err)

	assert.Equal(t, created.ID, deleted.ID)
	assert.Contains(t, store.removed, created.Image)
	assert.Empty(t, repo.categories)
}

func TestCategoryService_FindByID_NotFound(t *testing.T) {
	repo := newMockCategoryRepository()
	svc := newTestCategoryService(repo, &mockStore{})

	_, err := svc.FindByID(context.Background(), primitive.NewObjectID())
	require.Error(t, err)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}
