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

func testCart() []model.CartItem {
	return []model.CartItem{
		{ProductID: "p1", ProductName: "Test Pizza", Price: 450, Quantity: 1, Image: "x"},
	}
}

func createOrder(t *testing.T, s *OrderService, in model.OrderCreate) *model.Order {
	t.Helper()
	o, err := s.Create(context.Background(), in)
	require.NoError(t, err)
	return o
}

func TestOrderCreateDefaults(t *testing.T) {
	ctx := context.Background()
	s := NewOrderService(store.NewMemory())

	o := createOrder(t, s, model.OrderCreate{
		CustomerName: "Aibek",
		Phone:        "+996700123456",
		CartItems:    testCart(),
		Total:        450,
	})

	assert.NotEmpty(t, o.ID)
	assert.Equal(t, model.StatusPending, o.Status)
	assert.Equal(t, 450.0, o.Total)
	require.Len(t, o.CartItems, 1)
	assert.Equal(t, "Test Pizza", o.CartItems[0].ProductName)

	got, err := s.Get(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusPending, got.Status)
	assert.Equal(t, "Aibek", got.CustomerName)
}

func TestOrderCreateRequiresItems(t *testing.T) {
	s := NewOrderService(store.NewMemory())
	_, err := s.Create(context.Background(), model.OrderCreate{
		CustomerName: "Aibek",
		Phone:        "x",
		Total:        0,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestOrderSnapshotSurvivesProductEdits(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	products := NewProductService(mem)
	orders := NewOrderService(mem)

	p, err := products.Create(ctx, model.ProductCreate{Name: "Test Pizza", Price: 450, Category: "pizza"})
	require.NoError(t, err)

	o := createOrder(t, orders, model.OrderCreate{
		CustomerName: "Aibek",
		Phone:        "x",
		CartItems: []model.CartItem{
			{ProductID: p.ID, ProductName: p.Name, Price: p.Price, Quantity: 1, Image: p.Image},
		},
		Total: 450,
	})

	_, err = products.Update(ctx, p.ID, model.ProductPatch{
		Name:  strPtr("Renamed Pizza"),
		Price: f64Ptr(999),
	})
	require.NoError(t, err)

	got, err := orders.Get(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, "Test Pizza", got.CartItems[0].ProductName)
	assert.Equal(t, 450.0, got.CartItems[0].Price)
}

func TestOrderListNewestFirst(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	s := NewOrderService(mem)

	// Backdate directly through the store to get distinct timestamps.
	base := time.Now().UTC()
	for i, name := range []string{"first", "second", "third"} {
		o := createOrder(t, s, model.OrderCreate{
			CustomerName: name, Phone: "x", CartItems: testCart(), Total: 100,
		})
		_, err := mem.UpdateOne(ctx, store.Orders, store.Filter{"id": o.ID},
			map[string]any{"created_at": base.Add(time.Duration(i) * time.Hour)})
		require.NoError(t, err)
	}

	got, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "third", got[0].CustomerName)
	assert.Equal(t, "second", got[1].CustomerName)
	assert.Equal(t, "first", got[2].CustomerName)
	for i := 1; i < len(got); i++ {
		assert.False(t, got[i].CreatedAt.After(got[i-1].CreatedAt))
	}
}

func TestOrderUpdateStatus(t *testing.T) {
	ctx := context.Background()
	s := NewOrderService(store.NewMemory())

	o := createOrder(t, s, model.OrderCreate{
		CustomerName: "Aibek", Phone: "x", CartItems: testCart(), Total: 450,
	})

	time.Sleep(5 * time.Millisecond)
	require.NoError(t, s.UpdateStatus(ctx, o.ID, model.StatusReady))

	got, err := s.Get(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusReady, got.Status)
	assert.True(t, got.UpdatedAt.After(o.UpdatedAt))

	// Any valid target is accepted under the current permissive policy.
	require.NoError(t, s.UpdateStatus(ctx, o.ID, model.StatusPending))

	assert.ErrorIs(t, s.UpdateStatus(ctx, o.ID, model.OrderStatus("shipped")), ErrInvalidInput)
	assert.ErrorIs(t, s.UpdateStatus(ctx, "nope", model.StatusReady), ErrNotFound)
}

func TestOrderListByStatus(t *testing.T) {
	ctx := context.Background()
	s := NewOrderService(store.NewMemory())

	a := createOrder(t, s, model.OrderCreate{CustomerName: "a", Phone: "x", CartItems: testCart(), Total: 100})
	createOrder(t, s, model.OrderCreate{CustomerName: "b", Phone: "x", CartItems: testCart(), Total: 200})
	require.NoError(t, s.UpdateStatus(ctx, a.ID, model.StatusDelivered))

	pending, err := s.ListByStatus(ctx, model.StatusPending)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "b", pending[0].CustomerName)

	delivered, err := s.ListByStatus(ctx, model.StatusDelivered)
	require.NoError(t, err)
	require.Len(t, delivered, 1)
	assert.Equal(t, "a", delivered[0].CustomerName)

	_, err = s.ListByStatus(ctx, model.OrderStatus("shipped"))
	assert.ErrorIs(t, err, ErrInvalidInput)
}
