package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"storefront-service/internal/model"
	"storefront-service/internal/store"
)

// SeedService fills an empty catalog with a fixed sample set. It is a
// one-time convenience, not part of steady-state operation.
type SeedService struct {
	store store.Store
}

func NewSeedService(s store.Store) *SeedService {
	return &SeedService{store: s}
}

var sampleProducts = []model.ProductCreate{
	{
		Name:        "Маргарита Пицца",
		Price:       450.0,
		Image:       "https://images.unsplash.com/photo-1611915365928-565c527a0590",
		Category:    "pizza",
		Description: "Классикалык пицца моццарелла жана помидор менен",
	},
	{
		Name:        "Чизбургер",
		Price:       250.0,
		Image:       "https://images.pexels.com/photos/18866153/pexels-photo-18866153.jpeg",
		Category:    "burger",
		Description: "Сыр, котлет жана жашылча менен",
	},
	{
		Name:        "Капучино",
		Price:       120.0,
		Image:       "https://images.pexels.com/photos/312418/pexels-photo-312418.jpeg",
		Category:    "coffee",
		Description: "Ысык кофе сүт көбүгү менен",
	},
	{
		Name:        "Шоколад Десерт",
		Price:       180.0,
		Image:       "https://images.pexels.com/photos/2638026/pexels-photo-2638026.jpeg",
		Category:    "dessert",
		Description: "Шоколадтуу таттуу десерт",
	},
	{
		Name:        "Латте",
		Price:       140.0,
		Image:       "https://images.pexels.com/photos/549222/pexels-photo-549222.jpeg",
		Category:    "coffee",
		Description: "Кофе сүт жана көбүк менен",
	},
	{
		Name:        "Пепперони Пицца",
		Price:       520.0,
		Image:       "https://images.unsplash.com/photo-1611915365928-565c527a0590",
		Category:    "pizza",
		Description: "Пепперони жана сыр менен",
	},
}

// Initialize inserts the sample catalog and returns how many products
// were created. The existence check short-circuits before any insert,
// so a second call returns ErrAlreadySeeded and writes nothing.
func (s *SeedService) Initialize(ctx context.Context) (int, error) {
	existing, err := s.store.Count(ctx, store.Products, nil)
	if err != nil {
		return 0, fmt.Errorf("check existing products: %w", err)
	}
	if existing > 0 {
		return 0, ErrAlreadySeeded
	}

	now := time.Now().UTC()
	docs := make([]any, 0, len(sampleProducts))
	for _, in := range sampleProducts {
		docs = append(docs, &model.Product{
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
		})
	}
	if err := s.store.InsertMany(ctx, store.Products, docs); err != nil {
		return 0, fmt.Errorf("seed products: %w", err)
	}
	return len(docs), nil
}
