package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"

	"storefront-service/internal/model"
	"storefront-service/internal/store"
)

// ProductService owns the catalog: admin-curated entries that
// customers browse and mark as favorites.
type ProductService struct {
	store store.Store
}

func NewProductService(s store.Store) *ProductService {
	return &ProductService{store: s}
}

func (s *ProductService) Create(ctx context.Context, in model.ProductCreate) (*model.Product, error) {
	now := time.Now().UTC()
	p := &model.Product{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Price:       in.Price,
		Image:       in.Image,
		Category:    in.Category,
		Description: in.Description,
		IsFavorite:  false,
		IsAvailable: true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.store.Insert(ctx, store.Products, p); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return p, nil
}

func (s *ProductService) List(ctx context.Context) ([]model.Product, error) {
	docs, err := s.store.FindAll(ctx, store.Products, nil, nil, listLimit)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return decodeProducts(docs)
}

func (s *ProductService) ListByCategory(ctx context.Context, category string) ([]model.Product, error) {
	docs, err := s.store.FindAll(ctx, store.Products, store.Filter{"category": category}, nil, listLimit)
	if err != nil {
		return nil, fmt.Errorf("list products by category: %w", err)
	}
	return decodeProducts(docs)
}

func (s *ProductService) Get(ctx context.Context, id string) (*model.Product, error) {
	doc, err := s.store.FindOne(ctx, store.Products, store.Filter{"id": id})
	if err != nil {
		if errors.Is(err, store.ErrNoDocument) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	var p model.Product
	if err := bson.Unmarshal(doc, &p); err != nil {
		return nil, fmt.Errorf("decode product: %w", err)
	}
	return &p, nil
}

// Update applies only the fields present in the patch and refreshes
// updated_at. The id field is never part of the change set. Concurrent
// updates are last-writer-wins; there is no version check.
func (s *ProductService) Update(ctx context.Context, id string, patch model.ProductPatch) (*model.Product, error) {
	set := map[string]any{"updated_at": time.Now().UTC()}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.Price != nil {
		set["price"] = *patch.Price
	}
	if patch.Image != nil {
		set["image"] = *patch.Image
	}
	if patch.Category != nil {
		set["category"] = *patch.Category
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.IsAvailable != nil {
		set["is_available"] = *patch.IsAvailable
	}

	matched, err := s.store.UpdateOne(ctx, store.Products, store.Filter{"id": id}, set)
	if err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}
	if matched == 0 {
		return nil, ErrNotFound
	}
	return s.Get(ctx, id)
}

func (s *ProductService) Delete(ctx context.Context, id string) error {
	deleted, err := s.store.DeleteOne(ctx, store.Products, store.Filter{"id": id})
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if deleted == 0 {
		return ErrNotFound
	}
	return nil
}

// ToggleFavorite flips the favorite flag and returns the new value.
// This is a customer-facing operation and requires no credential.
func (s *ProductService) ToggleFavorite(ctx context.Context, id string) (bool, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return false, err
	}
	favorite := !p.IsFavorite
	set := map[string]any{
		"isFavorite": favorite,
		"updated_at": time.Now().UTC(),
	}
	if _, err := s.store.UpdateOne(ctx, store.Products, store.Filter{"id": id}, set); err != nil {
		return false, fmt.Errorf("toggle favorite: %w", err)
	}
	return favorite, nil
}

func decodeProducts(docs []bson.Raw) ([]model.Product, error) {
	products := make([]model.Product, 0, len(docs))
	for _, doc := range docs {
		var p model.Product
		if err := bson.Unmarshal(doc, &p); err != nil {
			return nil, fmt.Errorf("decode product: %w", err)
		}
		products = append(products, p)
	}
	return products, nil
}
