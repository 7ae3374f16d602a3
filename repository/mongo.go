package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const (
	COLLECTION_PROJECTS  = "projects"
	COLLECTION_NODES     = "nodes"
	COLLECTION_EDGES     = "edges"
	COLLECTION_KNOWLEDGE = "knowledge_bases"
	COLLECTION_MESSAGES  = "chat_messages"
)

// ensureIndexes creates the indexes of a collection the first time it is seen.
func ensureIndexes(ctx context.Context, db *mongo.Database, name string, indexes []mongo.IndexModel) *mongo.Collection {
	collection := db.Collection(name)
	collectionNames, err := db.ListCollectionNames(ctx, bson.D{{Key: "name", Value: name}})
	if err != nil {
		slog.Warn("list collections failed", "collection", name, "error", err)
		return collection
	}
	if len(collectionNames) > 0 || len(indexes) == 0 {
		return collection
	}
	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		slog.Warn("create indexes failed", "collection", name, "error", err)
	}
	return collection
}

func byCreatedAt(direction int) *options.FindOptionsBuilder {
	return options.Find().SetSort(bson.D{{Key: "created_at", Value: direction}})
}

func findOne[T any](ctx context.Context, collection *mongo.Collection, filter bson.M, kind, id string) (*T, error) {
	var out T
	err := collection.FindOne(ctx, filter).Decode(&out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, notFound(kind, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", kind, err)
	}
	return &out, nil
}

func findMany[T any](ctx context.Context, collection *mongo.Collection, filter bson.M, opts *options.FindOptionsBuilder) ([]*T, error) {
	cursor, err := collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	results := make([]*T, 0)
	for cursor.Next(ctx) {
		var item T
		if err := cursor.Decode(&item); err != nil {
			return nil, err
		}
		results = append(results, &item)
	}
	return results, cursor.Err()
}

func replaceByID(ctx context.Context, collection *mongo.Collection, id string, doc interface{}, kind string) error {
	res, err := collection.ReplaceOne(ctx, bson.M{"_id": id}, doc)
	if err != nil {
		return fmt.Errorf("failed to update %s: %w", kind, err)
	}
	if res.MatchedCount == 0 {
		return notFound(kind, id)
	}
	return nil
}

func deleteByID(ctx context.Context, collection *mongo.Collection, id string, kind string) error {
	res, err := collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", kind, err)
	}
	if res.DeletedCount == 0 {
		return notFound(kind, id)
	}
	return nil
}

