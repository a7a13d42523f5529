package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

type doc struct {
	ID        string    `bson:"id"`
	Name      string    `bson:"name"`
	Price     float64   `bson:"price"`
	Active    bool      `bson:"active"`
	CreatedAt time.Time `bson:"created_at"`
}

func decode(t *testing.T, raw bson.Raw) doc {
	t.Helper()
	var d doc
	require.NoError(t, bson.Unmarshal(raw, &d))
	return d
}

func TestMemoryInsertAndFindOne(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	now := time.Now().UTC()
	require.NoError(t, m.Insert(ctx, "things", doc{ID: "a", Name: "first", Price: 4.5, Active: true, CreatedAt: now}))

	raw, err := m.FindOne(ctx, "things", Filter{"id": "a"})
	require.NoError(t, err)
	got := decode(t, raw)
	assert.Equal(t, "first", got.Name)
	assert.Equal(t, 4.5, got.Price)
	assert.True(t, got.Active)
	assert.WithinDuration(t, now, got.CreatedAt, time.Millisecond)

	_, err = m.FindOne(ctx, "things", Filter{"id": "missing"})
	assert.ErrorIs(t, err, ErrNoDocument)
}

func TestMemoryFilterSemantics(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	require.NoError(t, m.Insert(ctx, "things", doc{ID: "a", Name: "x", Price: 1, Active: true}))
	require.NoError(t, m.Insert(ctx, "things", doc{ID: "b", Name: "x", Price: 2, Active: false}))
	require.NoError(t, m.Insert(ctx, "things", doc{ID: "c", Name: "y", Price: 2, Active: true}))

	docs, err := m.FindAll(ctx, "things", Filter{"name": "x"}, nil, 0)
	require.NoError(t, err)
	assert.Len(t, docs, 2)

	docs, err = m.FindAll(ctx, "things", Filter{"name": "x", "active": true}, nil, 0)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "a", decode(t, docs[0]).ID)

	n, err := m.Count(ctx, "things", Filter{"price": 2.0})
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	// Filtering on a field the documents lack matches nothing.
	docs, err = m.FindAll(ctx, "things", Filter{"ghost": "x"}, nil, 0)
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestMemoryTimeRange(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	base := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	for i, id := range []string{"a", "b", "c"} {
		require.NoError(t, m.Insert(ctx, "things", doc{ID: id, CreatedAt: base.AddDate(0, 0, i)}))
	}

	// Half-open window: lower bound inclusive, upper bound exclusive.
	n, err := m.Count(ctx, "things", Filter{"created_at": Range{GTE: base, LT: base.AddDate(0, 0, 1)}})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = m.Count(ctx, "things", Filter{"created_at": Range{GTE: base, LT: base.AddDate(0, 0, 3)}})
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}

func TestMemorySortAndLimit(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	base := time.Now().UTC()
	require.NoError(t, m.Insert(ctx, "things", doc{ID: "old", CreatedAt: base.Add(-2 * time.Hour)}))
	require.NoError(t, m.Insert(ctx, "things", doc{ID: "new", CreatedAt: base}))
	require.NoError(t, m.Insert(ctx, "things", doc{ID: "mid", CreatedAt: base.Add(-time.Hour)}))

	docs, err := m.FindAll(ctx, "things", nil, &Sort{Field: "created_at", Desc: true}, 0)
	require.NoError(t, err)
	require.Len(t, docs, 3)
	assert.Equal(t, "new", decode(t, docs[0]).ID)
	assert.Equal(t, "mid", decode(t, docs[1]).ID)
	assert.Equal(t, "old", decode(t, docs[2]).ID)

	docs, err = m.FindAll(ctx, "things", nil, &Sort{Field: "created_at", Desc: false}, 2)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "old", decode(t, docs[0]).ID)
}

func TestMemoryUpdateOne(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	require.NoError(t, m.Insert(ctx, "things", doc{ID: "a", Name: "before", Price: 1}))

	matched, err := m.UpdateOne(ctx, "things", Filter{"id": "a"}, map[string]any{"name": "after"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), matched)

	raw, err := m.FindOne(ctx, "things", Filter{"id": "a"})
	require.NoError(t, err)
	got := decode(t, raw)
	assert.Equal(t, "after", got.Name)
	// Untouched fields survive the update.
	assert.Equal(t, 1.0, got.Price)

	matched, err = m.UpdateOne(ctx, "things", Filter{"id": "missing"}, map[string]any{"name": "x"})
	require.NoError(t, err)
	assert.Zero(t, matched)
}

func TestMemoryDeleteOne(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	require.NoError(t, m.Insert(ctx, "things", doc{ID: "a"}))
	require.NoError(t, m.Insert(ctx, "things", doc{ID: "b"}))

	deleted, err := m.DeleteOne(ctx, "things", Filter{"id": "a"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	deleted, err = m.DeleteOne(ctx, "things", Filter{"id": "a"})
	require.NoError(t, err)
	assert.Zero(t, deleted)

	n, err := m.Count(ctx, "things", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}
