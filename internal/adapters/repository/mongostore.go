package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/mverza/recordboard/internal/domain/record"
	"github.com/mverza/recordboard/pkg/metrics"
)

// mongoDocument is the wire shape of a record in the collection. The domain
// entity keeps its id as an opaque string; the ObjectID stays an adapter
// concern.
type mongoDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Username  string             `bson:"username"`
	BestScore any                `bson:"bestscore"`
	CreatedAt time.Time          `bson:"created_at,omitempty"`
}

func (d mongoDocument) toRecord() record.UserRecord {
	return record.UserRecord{
		ID:        d.ID.Hex(),
		Username:  d.Username,
		BestScore: d.BestScore,
		CreatedAt: d.CreatedAt,
	}
}

// MongoStore is the document-store backed Store implementation.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoStore connects to the given deployment and pins the records
// collection. The caller owns the lifecycle via Close.
func NewMongoStore(ctx context.Context, uri, database, collection string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return &MongoStore{
		client: client,
		coll:   client.Database(database).Collection(collection),
	}, nil
}

// EnsureIndexes creates the unique username index. Duplicate-key errors from
// inserts racing past the service-level check then surface as
// ErrDuplicateUsername instead of a second stored record.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create username index: %w", err)
	}
	return nil
}

// Find implements Store.
func (s *MongoStore) Find(ctx context.Context, q Query) ([]record.UserRecord, error) {
	defer metrics.ObserveStoreOp("find", time.Now())

	filter, err := s.buildFilter(q.Filter)
	if err != nil {
		return nil, err
	}

	opts := options.Find().SetSkip(q.Skip).SetLimit(q.Limit)
	if q.SortField != "" {
		order := q.SortOrder
		if order == 0 {
			order = 1
		}
		opts = opts.SetSort(bson.D{{Key: q.SortField, Value: order}})
	}

	cur, err := s.coll.Find(ctx, filter, opts)
	if err != nil {
		metrics.RecordStoreError("find")
		return nil, fmt.Errorf("find records: %w", err)
	}
	defer func() { _ = cur.Close(ctx) }()

	var recs []record.UserRecord
	for cur.Next(ctx) {
		var doc mongoDocument
		if err := cur.Decode(&doc); err != nil {
			metrics.RecordStoreError("find")
			return nil, fmt.Errorf("decode record: %w", err)
		}
		recs = append(recs, doc.toRecord())
	}
	if err := cur.Err(); err != nil {
		metrics.RecordStoreError("find")
		return nil, fmt.Errorf("iterate records: %w", err)
	}
	return recs, nil
}

// FindOne implements Store. Absence is (nil, nil), not an error.
func (s *MongoStore) FindOne(ctx context.Context, f Filter) (*record.UserRecord, error) {
	defer metrics.ObserveStoreOp("find_one", time.Now())

	filter, err := s.buildFilter(&f)
	if err != nil {
		return nil, err
	}

	var doc mongoDocument
	if err := s.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		metrics.RecordStoreError("find_one")
		return nil, fmt.Errorf("find record: %w", err)
	}
	rec := doc.toRecord()
	return &rec, nil
}

// InsertOne implements Store.
func (s *MongoStore) InsertOne(ctx context.Context, rec record.UserRecord) (string, error) {
	defer metrics.ObserveStoreOp("insert_one", time.Now())

	doc := mongoDocument{
		Username:  rec.Username,
		BestScore: rec.BestScore,
		CreatedAt: rec.CreatedAt,
	}
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = time.Now().UTC()
	}

	res, err := s.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", ErrDuplicateUsername
		}
		metrics.RecordStoreError("insert_one")
		return "", fmt.Errorf("insert record: %w", err)
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}
	return oid.Hex(), nil
}

// UpdateOne implements Store. The stored document is replaced in full; the
// _id is untouched by replacement.
func (s *MongoStore) UpdateOne(ctx context.Context, f Filter, rec record.UserRecord) error {
	defer metrics.ObserveStoreOp("update_one", time.Now())

	filter, err := s.buildFilter(&f)
	if err != nil {
		return err
	}
	doc := mongoDocument{
		Username:  rec.Username,
		BestScore: rec.BestScore,
		CreatedAt: rec.CreatedAt,
	}
	if _, err := s.coll.ReplaceOne(ctx, filter, doc); err != nil {
		metrics.RecordStoreError("update_one")
		return fmt.Errorf("update record: %w", err)
	}
	return nil
}

// DeleteOne implements Store. A well-formed id that matches nothing is a
// silent no-op; an id the store cannot parse is an error.
func (s *MongoStore) DeleteOne(ctx context.Context, id string) error {
	defer metrics.ObserveStoreOp("delete_one", time.Now())

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	if _, err := s.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}}); err != nil {
		metrics.RecordStoreError("delete_one")
		return fmt.Errorf("delete record: %w", err)
	}
	return nil
}

// Count implements Store.
func (s *MongoStore) Count(ctx context.Context) (int64, error) {
	defer metrics.ObserveStoreOp("count", time.Now())

	n, err := s.coll.CountDocuments(ctx, bson.D{})
	if err != nil {
		metrics.RecordStoreError("count")
		return 0, fmt.Errorf("count records: %w", err)
	}
	return n, nil
}

// Close implements Store.
func (s *MongoStore) Close(ctx context.Context) error {
	if err := s.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("disconnect mongo: %w", err)
	}
	return nil
}

func (s *MongoStore) buildFilter(f *Filter) (bson.D, error) {
	if f == nil {
		return bson.D{}, nil
	}
	if f.Field == "_id" || f.Field == "id" {
		oid, err := primitive.ObjectIDFromHex(f.Value)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidID, f.Value)
		}
		return bson.D{{Key: "_id", Value: oid}}, nil
	}
	return bson.D{{Key: f.Field, Value: f.Value}}, nil
}
