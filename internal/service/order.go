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

// newestFirst is the ordering contract for every order listing the
// admin dashboard consumes.
var newestFirst = &store.Sort{Field: "created_at", Desc: true}

// OrderService owns customer orders. Checkout is open to anyone;
// status changes are an admin operation enforced at the HTTP layer.
type OrderService struct {
	store store.Store
}

func NewOrderService(s store.Store) *OrderService {
	return &OrderService{store: s}
}

// Create persists a new order in pending state. Cart items are stored
// as value snapshots, so later product edits leave the order intact.
// The client-supplied total is stored as-is and not recomputed from
// the cart; that trust boundary is documented behavior.
func (s *OrderService) Create(ctx context.Context, in model.OrderCreate) (*model.Order, error) {
	if len(in.CartItems) == 0 {
		return nil, fmt.Errorf("%w: order needs at least one cart item", ErrInvalidInput)
	}
	now := time.Now().UTC()
	o := &model.Order{
		ID:           uuid.New().String(),
		CustomerName: in.CustomerName,
		Phone:        in.Phone,
		CartItems:    in.CartItems,
		Total:        in.Total,
		Status:       model.StatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.store.Insert(ctx, store.Orders, o); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	return o, nil
}

func (s *OrderService) List(ctx context.Context) ([]model.Order, error) {
	docs, err := s.store.FindAll(ctx, store.Orders, nil, newestFirst, listLimit)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return decodeOrders(docs)
}

func (s *OrderService) Get(ctx context.Context, id string) (*model.Order, error) {
	doc, err := s.store.FindOne(ctx, store.Orders, store.Filter{"id": id})
	if err != nil {
		if errors.Is(err, store.ErrNoDocument) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	var o model.Order
	if err := bson.Unmarshal(doc, &o); err != nil {
		return nil, fmt.Errorf("decode order: %w", err)
	}
	return &o, nil
}

// UpdateStatus moves an order to the given status and refreshes
// updated_at. The transition policy lives in OrderStatus.CanTransition.
func (s *OrderService) UpdateStatus(ctx context.Context, id string, status model.OrderStatus) error {
	if !status.Valid() {
		return fmt.Errorf("%w: unknown order status %q", ErrInvalidInput, status)
	}
	o, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if !o.Status.CanTransition(status) {
		return fmt.Errorf("%w: cannot move order from %s to %s", ErrInvalidInput, o.Status, status)
	}
	set := map[string]any{
		"status":     string(status),
		"updated_at": time.Now().UTC(),
	}
	if _, err := s.store.UpdateOne(ctx, store.Orders, store.Filter{"id": id}, set); err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	return nil
}

func (s *OrderService) ListByStatus(ctx context.Context, status model.OrderStatus) ([]model.Order, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown order status %q", ErrInvalidInput, status)
	}
	docs, err := s.store.FindAll(ctx, store.Orders, store.Filter{"status": string(status)}, newestFirst, listLimit)
	if err != nil {
		return nil, fmt.Errorf("list orders by status: %w", err)
	}
	return decodeOrders(docs)
}

func decodeOrders(docs []bson.Raw) ([]model.Order, error) {
	orders := make([]model.Order, 0, len(docs))
	for _, doc := range docs {
		var o model.Order
		if err := bson.Unmarshal(doc, &o); err != nil {
			return nil, fmt.Errorf("decode order: %w", err)
		}
		orders = append(orders, o)
	}
	return orders, nil
}
