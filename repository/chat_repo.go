package repository

import (
	"context"

	"github.com/tieubaoca/mindmap-be/types"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

type chatRepo struct {
	collection *mongo.Collection
}

func NewChatRepo(ctx context.Context, db *mongo.Database) ChatRepo {
	return &chatRepo{
		collection: ensureIndexes(ctx, db, COLLECTION_MESSAGES, []mongo.IndexModel{
			{
				Keys: bson.D{
					{Key: "node_id", Value: 1},
					{Key: "created_at", Value: 1},
				},
			},
		}),
	}
}

func (r *chatRepo) AppendMessage(ctx context.Context, msg *types.ChatMessage) error {
	_, err := r.collection.InsertOne(ctx, msg)
	return err
}

func (r *chatRepo) ListMessagesByNode(ctx context.Context, nodeID string) ([]*types.ChatMessage, error) {
	return findMany[types.ChatMessage](ctx, r.collection, bson.M{"node_id": nodeID}, byCreatedAt(1))
}

func (r *chatRepo) DeleteMessagesByNodes(ctx context.Context, nodeIDs []string) error {
	if len(nodeIDs) == 0 {
		return nil
	}
	_, err := r.collection.DeleteMany(ctx, bson.M{"node_id": bson.M{"$in": nodeIDs}})
	return err
}
