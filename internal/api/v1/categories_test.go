package v1

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Y4SHVINE/smart-product-assistant/internal/model"
)

// fakeCategoryStore is an in-memory CategoryStore with the same delete guard
// as the real repository.
type fakeCategoryStore struct {
	categories map[int64]model.Category
	nextID     int64
}

func newFakeCategoryStore() *fakeCategoryStore {
	return &fakeCategoryStore{categories: map[int64]model.Category{}, nextID: 1}
}

func (f *fakeCategoryStore) List(_ context.Context) ([]model.Category, error) {
	out := []model.Category{}
	for id := int64(1); id < f.nextID; id++ {
		if c, ok := f.categories[id]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCategoryStore) Get(_ context.Context, id int64) (*model.Category, error) {
	c, ok := f.categories[id]
	if !ok {
		return nil, model.ErrNotFound
	}
	return &c, nil
}

func (f *fakeCategoryStore) Create(_ context.Context, in model.CategoryInput) (*model.Category, error) {
	now := time.Now().UTC()
	c := model.Category{
		ID:          f.nextID,
		Name:        in.Name,
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
		Products:    []model.Product{},
	}
	f.categories[c.ID] = c
	f.nextID++
	return &c, nil
}

func (f *fakeCategoryStore) Update(_ context.Context, id int64, in model.CategoryInput) (*model.Category, error) {
	c, ok := f.categories[id]
	if !ok {
		return nil, model.ErrNotFound
	}
	c.Name = in.Name
	c.Description = in.Description
	c.UpdatedAt = time.Now().UTC()
	f.categories[id] = c
	return &c, nil
}

func (f *fakeCategoryStore) Delete(_ context.Context, id int64) error {
	c, ok := f.categories[id]
	if !ok {
		return model.ErrNotFound
	}
	if len(c.Products) > 0 {
		return fmt.Errorf("cannot delete category with associated products: %w", model.ErrConflict)
	}
	delete(f.categories, id)
	return nil
}

func newCategoryRouter(store *fakeCategoryStore) *gin.Engine {
	r := gin.New()
	RegisterRoutes(r.Group("/api"), NewProductHandler(newFakeProductStore(), nil), NewCategoryHandler(store))
	return r
}

func TestCreateCategory(t *testing.T) {
	r := newCategoryRouter(newFakeCategoryStore())

	w := doJSON(t, r, http.MethodPost, "/api/categories", model.CategoryInput{Name: "Laptops", Description: "Portable computers"})
	require.Equal(t, http.StatusCreated, w.Code)

	var got model.Category
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "Laptops", got.Name)
	assert.NotZero(t, got.ID)
}

func TestGetCategory_NotFound(t *testing.T) {
	r := newCategoryRouter(newFakeCategoryStore())

	w := doJSON(t, r, http.MethodGet, "/api/categories/7", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Category not found"}`, w.Body.String())
}

func TestDeleteCategory_WithProductsIsConflict(t *testing.T) {
	store := newFakeCategoryStore()
	c, err := store.Create(context.Background(), model.CategoryInput{Name: "Laptops"})
	require.NoError(t, err)

	c.Products = []model.Product{{ID: 1, Name: "Laptop A", CategoryID: c.ID}}
	store.categories[c.ID] = *c

	r := newCategoryRouter(store)

	// Conflict is idempotent: repeated deletes keep failing and the category
	// and its products stay untouched.
	for i := 0; i < 2; i++ {
		w := doJSON(t, r, http.MethodDelete, "/api/categories/1", nil)
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error":"Cannot delete category with associated products"}`, w.Body.String())
	}

	got, err := store.Get(context.Background(), c.ID)
	require.NoError(t, err)
	assert.Len(t, got.Products, 1)
}

func TestDeleteCategory_Empty(t *testing.T) {
	store := newFakeCategoryStore()
	_, err := store.Create(context.Background(), model.CategoryInput{Name: "Empty"})
	require.NoError(t, err)

	r := newCategoryRouter(store)
	w := doJSON(t, r, http.MethodDelete, "/api/categories/1", nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/categories/1", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateCategory_NotFound(t *testing.T) {
	r := newCategoryRouter(newFakeCategoryStore())

	w := doJSON(t, r, http.MethodPut, "/api/categories/3", model.CategoryInput{Name: "Renamed"})
	require.Equal(t, http.StatusNotFound, w.Code)
}
