package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-service/internal/model"
	"storefront-service/internal/store"
)

func newProductService() *ProductService {
	return NewProductService(store.NewMemory())
}

func createProduct(t *testing.T, s *ProductService, in model.ProductCreate) *model.Product {
	t.Helper()
	p, err := s.Create(context.Background(), in)
	require.NoError(t, err)
	return p
}

func strPtr(s string) *string   { return &s }
func f64Ptr(f float64) *float64 { return &f }
func boolPtr(b bool) *bool      { return &b }

func TestProductCreateDefaults(t *testing.T) {
	ctx := context.Background()
	s := newProductService()

	p := createProduct(t, s, model.ProductCreate{
		Name:     "Test Pizza",
		Price:    450,
		Image:    "x",
		Category: "pizza",
	})

	assert.NotEmpty(t, p.ID)
	assert.False(t, p.IsFavorite)
	assert.True(t, p.IsAvailable)
	assert.WithinDuration(t, time.Now().UTC(), p.CreatedAt, time.Second)
	assert.Equal(t, p.CreatedAt, p.UpdatedAt)

	got, err := s.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)
	assert.Equal(t, "Test Pizza", got.Name)
	assert.Equal(t, 450.0, got.Price)
	assert.Equal(t, "pizza", got.Category)
	assert.Empty(t, got.Description)
}

func TestProductGetNotFound(t *testing.T) {
	s := newProductService()
	_, err := s.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProductListByCategory(t *testing.T) {
	ctx := context.Background()
	s := newProductService()

	createProduct(t, s, model.ProductCreate{Name: "Margherita", Price: 450, Category: "pizza"})
	createProduct(t, s, model.ProductCreate{Name: "Pepperoni", Price: 520, Category: "pizza"})
	createProduct(t, s, model.ProductCreate{Name: "Latte", Price: 140, Category: "coffee"})

	all, err := s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	pizzas, err := s.ListByCategory(ctx, "pizza")
	require.NoError(t, err)
	assert.Len(t, pizzas, 2)

	none, err := s.ListByCategory(ctx, "sushi")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestProductPartialUpdate(t *testing.T) {
	ctx := context.Background()
	s := newProductService()

	p := createProduct(t, s, model.ProductCreate{
		Name:        "Cheeseburger",
		Price:       250,
		Image:       "img",
		Category:    "burger",
		Description: "with cheese",
	})

	time.Sleep(5 * time.Millisecond)

	updated, err := s.Update(ctx, p.ID, model.ProductPatch{
		Price:       f64Ptr(275),
		IsAvailable: boolPtr(false),
	})
	require.NoError(t, err)

	// Only supplied fields change; the id never does.
	assert.Equal(t, p.ID, updated.ID)
	assert.Equal(t, 275.0, updated.Price)
	assert.False(t, updated.IsAvailable)
	assert.Equal(t, "Cheeseburger", updated.Name)
	assert.Equal(t, "with cheese", updated.Description)
	assert.Equal(t, "burger", updated.Category)
	assert.True(t, updated.UpdatedAt.After(p.UpdatedAt))

	// An explicit empty string clears the field, unlike an absent one.
	updated, err = s.Update(ctx, p.ID, model.ProductPatch{Description: strPtr("")})
	require.NoError(t, err)
	assert.Empty(t, updated.Description)
	assert.Equal(t, "Cheeseburger", updated.Name)
}

func TestProductUpdateNotFound(t *testing.T) {
	s := newProductService()
	_, err := s.Update(context.Background(), "nope", model.ProductPatch{Name: strPtr("x")})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProductDelete(t *testing.T) {
	ctx := context.Background()
	s := newProductService()

	p := createProduct(t, s, model.ProductCreate{Name: "Latte", Price: 140, Category: "coffee"})

	require.NoError(t, s.Delete(ctx, p.ID))
	assert.ErrorIs(t, s.Delete(ctx, p.ID), ErrNotFound)

	_, err := s.Get(ctx, p.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	all, err := s.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestProductToggleFavorite(t *testing.T) {
	ctx := context.Background()
	s := newProductService()

	p := createProduct(t, s, model.ProductCreate{Name: "Latte", Price: 140, Category: "coffee"})

	time.Sleep(5 * time.Millisecond)

	fav, err := s.ToggleFavorite(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, fav)

	got, err := s.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, got.IsFavorite)
	// Toggling counts as a mutation, so updated_at advances too.
	assert.True(t, got.UpdatedAt.After(p.UpdatedAt))

	// A second toggle restores the original value.
	fav, err = s.ToggleFavorite(ctx, p.ID)
	require.NoError(t, err)
	assert.False(t, fav)

	_, err = s.ToggleFavorite(ctx, "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}
