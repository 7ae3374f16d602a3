package repository

import (
	"context"

	"github.com/tieubaoca/mindmap-be/types"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

type projectRepo struct {
	collection *mongo.Collection
}

func NewProjectRepo(ctx context.Context, db *mongo.Database) ProjectRepo {
	return &projectRepo{
		collection: ensureIndexes(ctx, db, COLLECTION_PROJECTS, []mongo.IndexModel{
			{Keys: bson.D{{Key: "created_at", Value: -1}}},
		}),
	}
}

func (r *projectRepo) CreateProject(ctx context.Context, project *types.Project) error {
	_, err := r.collection.InsertOne(ctx, project)
	return err
}

func (r *projectRepo) GetProject(ctx context.Context, id string) (*types.Project, error) {
	return findOne[types.Project](ctx, r.collection, bson.M{"_id": id}, "project", id)
}

func (r *projectRepo) ListProjects(ctx context.Context) ([]*types.Project, error) {
	return findMany[types.Project](ctx, r.collection, bson.M{}, byCreatedAt(-1))
}

func (r *projectRepo) UpdateProject(ctx context.Context, project *types.Project) error {
	return replaceByID(ctx, r.collection, project.ID, project, "project")
}

func (r *projectRepo) DeleteProject(ctx context.Context, id string) error {
	return deleteByID(ctx, r.collection, id, "project")
}
