package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
)

// Collection names used by the service.
const (
	Products = "products"
	Orders   = "orders"
	Gallery  = "gallery"
)

// ErrNoDocument is returned by FindOne when nothing matches the filter.
// An absent document is an expected outcome, not a store failure;
// callers map it to their own not-found condition.
var ErrNoDocument = errors.New("store: no matching document")

// Filter selects documents by exact field equality. A Range value
// matches time fields within a half-open window instead.
type Filter map[string]any

// Range is a half-open time window: GTE <= value < LT.
type Range struct {
	GTE time.Time
	LT  time.Time
}

// Sort orders results by a single field.
type Sort struct {
	Field string
	Desc  bool
}

// Store is a persistent keyed-document collection with query, sort and
// count capabilities. Documents are BSON; side effects are confined to
// the named collection. Implementations must be safe for concurrent
// use.
type Store interface {
	Insert(ctx context.Context, collection string, doc any) error
	InsertMany(ctx context.Context, collection string, docs []any) error
	FindOne(ctx context.Context, collection string, filter Filter) (bson.Raw, error)
	FindAll(ctx context.Context, collection string, filter Filter, sort *Sort, limit int64) ([]bson.Raw, error)
	UpdateOne(ctx context.Context, collection string, filter Filter, set map[string]any) (matched int64, err error)
	DeleteOne(ctx context.Context, collection string, filter Filter) (deleted int64, err error)
	Count(ctx context.Context, collection string, filter Filter) (int64, error)
}
