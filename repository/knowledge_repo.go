package repository

import (
	"context"

	"github.com/tieubaoca/mindmap-be/types"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

type knowledgeRepo struct {
	collection *mongo.Collection
}

func NewKnowledgeRepo(ctx context.Context, db *mongo.Database) KnowledgeRepo {
	return &knowledgeRepo{
		collection: ensureIndexes(ctx, db, COLLECTION_KNOWLEDGE, []mongo.IndexModel{
			{
				Keys: bson.D{
					{Key: "project_id", Value: 1},
					{Key: "created_at", Value: 1},
				},
			},
		}),
	}
}

func (r *knowledgeRepo) CreateDocument(ctx context.Context, doc *types.KnowledgeDocument) error {
	_, err := r.collection.InsertOne(ctx, doc)
	return err
}

func (r *knowledgeRepo) GetDocument(ctx context.Context, id string) (*types.KnowledgeDocument, error) {
	return findOne[types.KnowledgeDocument](ctx, r.collection, bson.M{"_id": id}, "document", id)
}

func (r *knowledgeRepo) ListDocumentsByProject(ctx context.Context, projectID string) ([]*types.KnowledgeDocument, error) {
	return findMany[types.KnowledgeDocument](ctx, r.collection, bson.M{"project_id": projectID}, byCreatedAt(1))
}

func (r *knowledgeRepo) DeleteDocument(ctx context.Context, id string) error {
	return deleteByID(ctx, r.collection, id, "document")
}

func (r *knowledgeRepo) DeleteDocumentsByProject(ctx context.Context, projectID string) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"project_id": projectID})
	return err
}
