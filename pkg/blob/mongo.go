package blob

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// document is the storage envelope: the value is kept as an opaque JSON
// payload so the store never depends on domain types.
type document struct {
	Key     string `bson:"_id"`
	Version int64  `bson:"version"`
	Payload []byte `bson:"payload"`
}

type mongoStore struct {
	collection   *mongo.Collection
	readTimeout  time.Duration
	writeTimeout time.Duration
}

// Connect dials MongoDB and verifies the connection within timeout.
func Connect(ctx context.Context, uri string, timeout time.Duration) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}
	return client, nil
}

// NewMongoStore returns a Store backed by one collection, one document per
// key with _id as the key.
func NewMongoStore(db *mongo.Database, collection string, readTimeout, writeTimeout time.Duration) Store {
	return &mongoStore{
		collection:   db.Collection(collection),
		readTimeout:  readTimeout,
		writeTimeout: writeTimeout,
	}
}

func (s *mongoStore) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

func (s *mongoStore) Get(ctx context.Context, key string, out any) (int64, error) {
	ctx, cancel := s.withTimeout(ctx, s.readTimeout)
	defer cancel()

	var doc document
	err := s.collection.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 0, ErrNotFound
		}
		return 0, fmt.Errorf("failed to read blob %q: %w", key, err)
	}

	if err := json.Unmarshal(doc.Payload, out); err != nil {
		return 0, fmt.Errorf("failed to decode blob %q: %w", key, err)
	}
	return doc.Version, nil
}

func (s *mongoStore) CompareAndSet(ctx context.Context, key string, value any, expectedVersion int64) error {
	ctx, cancel := s.withTimeout(ctx, s.writeTimeout)
	defer cancel()

	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode blob %q: %w", key, err)
	}

	doc := document{
		Key:     key,
		Version: expectedVersion + 1,
		Payload: payload,
	}

	if expectedVersion == 0 {
		_, err := s.collection.InsertOne(ctx, doc)
		if err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return ErrVersionConflict
			}
			return fmt.Errorf("failed to insert blob %q: %w", key, err)
		}
		return nil
	}

	result, err := s.collection.ReplaceOne(ctx, bson.M{"_id": key, "version": expectedVersion}, doc)
	if err != nil {
		return fmt.Errorf("failed to replace blob %q: %w", key, err)
	}
	if result.MatchedCount == 0 {
		return ErrVersionConflict
	}
	return nil
}

func (s *mongoStore) List(ctx context.Context) ([]string, error) {
	ctx, cancel := s.withTimeout(ctx, s.readTimeout)
	defer cancel()

	opts := options.Find().SetProjection(bson.M{"_id": 1})
	cursor, err := s.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list blobs: %w", err)
	}
	defer cursor.Close(ctx)

	var keys []string
	for cursor.Next(ctx) {
		var doc struct {
			Key string `bson:"_id"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode blob key: %w", err)
		}
		keys = append(keys, doc.Key)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate blob keys: %w", err)
	}
	return keys, nil
}

func (s *mongoStore) Delete(ctx context.Context, key string) error {
	ctx, cancel := s.withTimeout(ctx, s.writeTimeout)
	defer cancel()

	if _, err := s.collection.DeleteOne(ctx, bson.M{"_id": key}); err != nil {
		return fmt.Errorf("failed to delete blob %q: %w", key, err)
	}
	return nil
}

func (s *mongoStore) Ping(ctx context.Context) error {
	ctx, cancel := s.withTimeout(ctx, s.readTimeout)
	defer cancel()
	return s.collection.Database().Client().Ping(ctx, nil)
}
