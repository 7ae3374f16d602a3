package repository

import (
	"context"

	"github.com/tieubaoca/mindmap-be/types"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

type nodeRepo struct {
	collection *mongo.Collection
}

func NewNodeRepo(ctx context.Context, db *mongo.Database) NodeRepo {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "project_id", Value: 1},
				{Key: "parent_id", Value: 1},
			},
		},
		{
			Keys: bson.D{
				{Key: "status", Value: 1},
			},
		},
	}
	return &nodeRepo{
		collection: ensureIndexes(ctx, db, COLLECTION_NODES, indexes),
	}
}

func (r *nodeRepo) CreateNode(ctx context.Context, node *types.Node) error {
	_, err := r.collection.InsertOne(ctx, node)
	return err
}

func (r *nodeRepo) GetNode(ctx context.Context, id string) (*types.Node, error) {
	return findOne[types.Node](ctx, r.collection, bson.M{"_id": id}, "node", id)
}

func (r *nodeRepo) ListNodesByProject(ctx context.Context, projectID string) ([]*types.Node, error) {
	return findMany[types.Node](ctx, r.collection, bson.M{"project_id": projectID}, byCreatedAt(1))
}

func (r *nodeRepo) ListChildren(ctx context.Context, parentID string) ([]*types.Node, error) {
	return findMany[types.Node](ctx, r.collection, bson.M{"parent_id": parentID}, byCreatedAt(1))
}

func (r *nodeRepo) CountNodesByProject(ctx context.Context, projectID string) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"project_id": projectID})
}

func (r *nodeRepo) UpdateNode(ctx context.Context, node *types.Node) error {
	return replaceByID(ctx, r.collection, node.ID, node, "node")
}

func (r *nodeRepo) DeleteNodes(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := r.collection.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}})
	return err
}

func (r *nodeRepo) DeleteNodesByProject(ctx context.Context, projectID string) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"project_id": projectID})
	return err
}
