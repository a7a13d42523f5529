package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
)

// Memory is an in-memory Store holding BSON documents per collection.
// It mirrors the Mongo implementation's filter and sort semantics and
// backs the test suites; no state survives a restart.
type Memory struct {
	mu    sync.RWMutex
	colls map[string][]bson.Raw
}

func NewMemory() *Memory {
	return &Memory{colls: make(map[string][]bson.Raw)}
}

func (m *Memory) Insert(ctx context.Context, collection string, doc any) error {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode document for %s: %w", collection, err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.colls[collection] = append(m.colls[collection], raw)
	return nil
}

func (m *Memory) InsertMany(ctx context.Context, collection string, docs []any) error {
	for _, doc := range docs {
		if err := m.Insert(ctx, collection, doc); err != nil {
			return err
		}
	}
	return nil
}

func (m *Memory) FindOne(ctx context.Context, collection string, filter Filter) (bson.Raw, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, doc := range m.colls[collection] {
		if matches(doc, filter) {
			return doc, nil
		}
	}
	return nil, ErrNoDocument
}

func (m *Memory) FindAll(ctx context.Context, collection string, filter Filter, s *Sort, limit int64) ([]bson.Raw, error) {
	m.mu.RLock()
	var docs []bson.Raw
	for _, doc := range m.colls[collection] {
		if matches(doc, filter) {
			docs = append(docs, doc)
		}
	}
	m.mu.RUnlock()

	if s != nil {
		sort.SliceStable(docs, func(i, j int) bool {
			if s.Desc {
				return less(docs[j], docs[i], s.Field)
			}
			return less(docs[i], docs[j], s.Field)
		})
	}
	if limit > 0 && int64(len(docs)) > limit {
		docs = docs[:limit]
	}
	return docs, nil
}

func (m *Memory) UpdateOne(ctx context.Context, collection string, filter Filter, set map[string]any) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, doc := range m.colls[collection] {
		if !matches(doc, filter) {
			continue
		}
		var fields bson.M
		if err := bson.Unmarshal(doc, &fields); err != nil {
			return 0, fmt.Errorf("decode document in %s: %w", collection, err)
		}
		for k, v := range set {
			fields[k] = v
		}
		updated, err := bson.Marshal(fields)
		if err != nil {
			return 0, fmt.Errorf("encode document for %s: %w", collection, err)
		}
		m.colls[collection][i] = updated
		return 1, nil
	}
	return 0, nil
}

func (m *Memory) DeleteOne(ctx context.Context, collection string, filter Filter) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	docs := m.colls[collection]
	for i, doc := range docs {
		if matches(doc, filter) {
			m.colls[collection] = append(docs[:i:i], docs[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (m *Memory) Count(ctx context.Context, collection string, filter Filter) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var n int64
	for _, doc := range m.colls[collection] {
		if matches(doc, filter) {
			n++
		}
	}
	return n, nil
}

func matches(doc bson.Raw, filter Filter) bool {
	for field, want := range filter {
		rv := doc.Lookup(field)
		if rv.Validate() != nil {
			return false
		}
		switch w := want.(type) {
		case Range:
			t, ok := rv.TimeOK()
			if !ok || t.Before(w.GTE) || !t.Before(w.LT) {
				return false
			}
		case string:
			s, ok := rv.StringValueOK()
			if !ok || s != w {
				return false
			}
		case bool:
			b, ok := rv.BooleanOK()
			if !ok || b != w {
				return false
			}
		case float64:
			d, ok := rv.DoubleOK()
			if !ok || d != w {
				return false
			}
		case int:
			n, ok := rv.AsInt64OK()
			if !ok || n != int64(w) {
				return false
			}
		case int64:
			n, ok := rv.AsInt64OK()
			if !ok || n != w {
				return false
			}
		case time.Time:
			t, ok := rv.TimeOK()
			if !ok || !t.Equal(w) {
				return false
			}
		default:
			return false
		}
	}
	return true
}

func less(a, b bson.Raw, field string) bool {
	av, bv := a.Lookup(field), b.Lookup(field)
	if at, ok := av.TimeOK(); ok {
		if bt, ok := bv.TimeOK(); ok {
			return at.Before(bt)
		}
	}
	if ad, ok := av.DoubleOK(); ok {
		if bd, ok := bv.DoubleOK(); ok {
			return ad < bd
		}
	}
	if as, ok := av.StringValueOK(); ok {
		if bs, ok := bv.StringValueOK(); ok {
			return as < bs
		}
	}
	return false
}
