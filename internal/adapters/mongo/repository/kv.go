package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rafaelleal24/rocketshoes/internal/adapters/mongo/document"
	"github.com/rafaelleal24/rocketshoes/internal/core/port"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const KVCollection = "kv"

// KVRepository stores string values keyed by _id, one document per key.
type KVRepository struct {
	collection *mongo.Collection
}

func NewKVRepository(db *mongo.Database) port.StoragePort {
	return &KVRepository{
		collection: db.Collection(KVCollection),
	}
}

func (r *KVRepository) Get(ctx context.Context, key string) (string, bool, error) {
	var doc document.KVDocument
	err := r.collection.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read %q: %w", key, parseError(err))
	}
	return doc.Value, true, nil
}

func (r *KVRepository) Set(ctx context.Context, key, value string) error {
	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": key},
		bson.M{"$set": bson.M{"value": value, "updated_at": time.Now()}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("failed to write %q: %w", key, parseError(err))
	}
	return nil
}
