package model

import "time"

// OrderStatus is the closed set of order lifecycle states.
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusReady     OrderStatus = "ready"
	StatusDelivered OrderStatus = "delivered"
	StatusCancelled OrderStatus = "cancelled"
)

// Valid reports whether s is a known status value.
func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusReady, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// CanTransition reports whether an order in status s may move to next.
// The current policy accepts any valid target status; a forward-only
// state machine would be enforced here without touching callers.
func (s OrderStatus) CanTransition(next OrderStatus) bool {
	return next.Valid()
}

// CartItem is a snapshot of a product at order time. It deliberately
// copies name and price so later catalog edits never alter past orders.
type CartItem struct {
	ProductID   string  `json:"product_id" bson:"product_id"`
	ProductName string  `json:"product_name" bson:"product_name"`
	Price       float64 `json:"price" bson:"price"`
	Quantity    int     `json:"quantity" bson:"quantity"`
	Image       string  `json:"image" bson:"image"`
}

// Order represents a customer order
type Order struct {
	ID           string      `json:"id" bson:"id"`
	CustomerName string      `json:"customer_name" bson:"customer_name"`
	Phone        string      `json:"phone" bson:"phone"`
	CartItems    []CartItem  `json:"cart_items" bson:"cart_items"`
	Total        float64     `json:"total" bson:"total"`
	Status       OrderStatus `json:"status" bson:"status"`
	CreatedAt    time.Time   `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at" bson:"updated_at"`
}

// OrderCreate is used for checkout requests. Total is supplied by the
// client and stored as-is; it is not recomputed from the cart items.
type OrderCreate struct {
	CustomerName string     `json:"customer_name" validate:"required"`
	Phone        string     `json:"phone" validate:"required"`
	CartItems    []CartItem `json:"cart_items" validate:"required,min=1"`
	Total        float64    `json:"total" validate:"gte=0"`
}
