package model

import "time"

// Product represents a catalog item
type Product struct {
	ID          string    `json:"id" bson:"id"`
	Name        string    `json:"name" bson:"name"`
	Price       float64   `json:"price" bson:"price"`
	Image       string    `json:"image" bson:"image"`
	Category    string    `json:"category" bson:"category"`
	Description string    `json:"description" bson:"description"`
	IsFavorite  bool      `json:"isFavorite" bson:"isFavorite"`
	IsAvailable bool      `json:"is_available" bson:"is_available"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}

// ProductCreate is used for product creation requests
type ProductCreate struct {
	Name        string  `json:"name" validate:"required"`
	Price       float64 `json:"price" validate:"required,gte=0"`
	Image       string  `json:"image"`
	Category    string  `json:"category" validate:"required"`
	Description string  `json:"description"`
}

// ProductPatch is a partial update: nil fields are left untouched,
// which keeps "field not sent" distinct from "field set to zero value".
type ProductPatch struct {
	Name        *string  `json:"name"`
	Price       *float64 `json:"price"`
	Image       *string  `json:"image"`
	Category    *string  `json:"category"`
	Description *string  `json:"description"`
	IsAvailable *bool    `json:"is_available"`
}
