package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"storefront-service/prometheus"
)

// Mongo implements Store on top of a MongoDB database. The client is
// acquired once at startup and released with Disconnect on shutdown.
type Mongo struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewMongo connects to the given URI, verifies the connection with a
// ping and returns a store bound to dbName.
func NewMongo(ctx context.Context, uri, dbName string) (*Mongo, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}
	return &Mongo{client: client, db: client.Database(dbName)}, nil
}

// Disconnect releases the underlying client.
func (m *Mongo) Disconnect(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

func (f Filter) query() bson.M {
	q := bson.M{}
	for field, value := range f {
		if r, ok := value.(Range); ok {
			q[field] = bson.M{"$gte": r.GTE, "$lt": r.LT}
			continue
		}
		q[field] = value
	}
	return q
}

func (m *Mongo) Insert(ctx context.Context, collection string, doc any) error {
	defer prometheus.TrackDBOperation("insert")(time.Now())

	_, err := m.db.Collection(collection).InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("insert into %s: %w", collection, err)
	}
	return nil
}

func (m *Mongo) InsertMany(ctx context.Context, collection string, docs []any) error {
	defer prometheus.TrackDBOperation("insert_many")(time.Now())

	_, err := m.db.Collection(collection).InsertMany(ctx, docs)
	if err != nil {
		return fmt.Errorf("insert many into %s: %w", collection, err)
	}
	return nil
}

func (m *Mongo) FindOne(ctx context.Context, collection string, filter Filter) (bson.Raw, error) {
	defer prometheus.TrackDBOperation("find_one")(time.Now())

	raw, err := m.db.Collection(collection).FindOne(ctx, filter.query()).Raw()
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNoDocument
		}
		return nil, fmt.Errorf("find one in %s: %w", collection, err)
	}
	return raw, nil
}

func (m *Mongo) FindAll(ctx context.Context, collection string, filter Filter, sort *Sort, limit int64) ([]bson.Raw, error) {
	defer prometheus.TrackDBOperation("find")(time.Now())

	opts := options.Find()
	if sort != nil {
		dir := 1
		if sort.Desc {
			dir = -1
		}
		opts.SetSort(bson.D{{Key: sort.Field, Value: dir}})
	}
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cur, err := m.db.Collection(collection).Find(ctx, filter.query(), opts)
	if err != nil {
		return nil, fmt.Errorf("find in %s: %w", collection, err)
	}
	defer cur.Close(ctx)

	var docs []bson.Raw
	for cur.Next(ctx) {
		// cur.Current is reused between iterations.
		doc := make(bson.Raw, len(cur.Current))
		copy(doc, cur.Current)
		docs = append(docs, doc)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", collection, err)
	}
	return docs, nil
}

func (m *Mongo) UpdateOne(ctx context.Context, collection string, filter Filter, set map[string]any) (int64, error) {
	defer prometheus.TrackDBOperation("update")(time.Now())

	res, err := m.db.Collection(collection).UpdateOne(ctx, filter.query(), bson.M{"$set": set})
	if err != nil {
		return 0, fmt.Errorf("update in %s: %w", collection, err)
	}
	return res.MatchedCount, nil
}

func (m *Mongo) DeleteOne(ctx context.Context, collection string, filter Filter) (int64, error) {
	defer prometheus.TrackDBOperation("delete")(time.Now())

	res, err := m.db.Collection(collection).DeleteOne(ctx, filter.query())
	if err != nil {
		return 0, fmt.Errorf("delete in %s: %w", collection, err)
	}
	return res.DeletedCount, nil
}

func (m *Mongo) Count(ctx context.Context, collection string, filter Filter) (int64, error) {
	defer prometheus.TrackDBOperation("count")(time.Now())

	n, err := m.db.Collection(collection).CountDocuments(ctx, filter.query())
	if err != nil {
		return 0, fmt.Errorf("count in %s: %w", collection, err)
	}
	return n, nil
}
