package repository

import (
	"context"

	"github.com/tieubaoca/mindmap-be/types"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type edgeRepo struct {
	collection *mongo.Collection
}

func NewEdgeRepo(ctx context.Context, db *mongo.Database) EdgeRepo {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "project_id", Value: 1}}},
		{
			Keys: bson.D{
				{Key: "source", Value: 1},
				{Key: "target", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
	}
	return &edgeRepo{
		collection: ensureIndexes(ctx, db, COLLECTION_EDGES, indexes),
	}
}

func (r *edgeRepo) CreateEdge(ctx context.Context, edge *types.Edge) error {
	_, err := r.collection.InsertOne(ctx, edge)
	return err
}

func (r *edgeRepo) GetEdge(ctx context.Context, id string) (*types.Edge, error) {
	return findOne[types.Edge](ctx, r.collection, bson.M{"_id": id}, "edge", id)
}

func (r *edgeRepo) FindEdge(ctx context.Context, sourceID, targetID string) (*types.Edge, error) {
	filter := bson.M{"source": sourceID, "target": targetID}
	return findOne[types.Edge](ctx, r.collection, filter, "edge", sourceID+"->"+targetID)
}

func (r *edgeRepo) ListEdgesByProject(ctx context.Context, projectID string) ([]*types.Edge, error) {
	return findMany[types.Edge](ctx, r.collection, bson.M{"project_id": projectID}, byCreatedAt(1))
}

func (r *edgeRepo) DeleteEdge(ctx context.Context, id string) error {
	return deleteByID(ctx, r.collection, id, "edge")
}

func (r *edgeRepo) DeleteEdgesByNodes(ctx context.Context, nodeIDs []string) error {
	if len(nodeIDs) == 0 {
		return nil
	}
	filter := bson.M{"$or": bson.A{
		bson.M{"source": bson.M{"$in": nodeIDs}},
		bson.M{"target": bson.M{"$in": nodeIDs}},
	}}
	_, err := r.collection.DeleteMany(ctx, filter)
	return err
}

func (r *edgeRepo) DeleteEdgesByProject(ctx context.Context, projectID string) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"project_id": projectID})
	return err
}
