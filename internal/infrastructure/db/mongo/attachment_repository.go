package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/trackerhq/bugtracker/internal/core/domain"
)

const collectionAttachments = "attachments"

type AttachmentRepository struct {
	db  *mongo.Database
	col *mongo.Collection
}

func NewAttachmentRepository(db *mongo.Database) *AttachmentRepository {
	return &AttachmentRepository{db: db, col: db.Collection(collectionAttachments)}
}

func (r *AttachmentRepository) Create(ctx context.Context, a *domain.BugAttachment) (*domain.BugAttachment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := nextID(ctx, r.db, collectionAttachments)
	if err != nil {
		return nil, err
	}

	created := *a
	created.ID = id
	if _, err := r.col.InsertOne(ctx, &created); err != nil {
		return nil, fmt.Errorf("insert attachment: %w", err)
	}
	return &created, nil
}

func (r *AttachmentRepository) FindByID(ctx context.Context, id int64) (*domain.BugAttachment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var a domain.BugAttachment
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&a); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAttachmentNotFound
		}
		return nil, fmt.Errorf("find attachment: %w", err)
	}
	return &a, nil
}

func (r *AttachmentRepository) FindAll(ctx context.Context) ([]*domain.BugAttachment, error) {
	return r.findMany(ctx, bson.M{})
}

func (r *AttachmentRepository) FindByBug(ctx context.Context, bugID int64) ([]*domain.BugAttachment, error) {
	return r.findMany(ctx, bson.M{"bug_id": bugID})
}

func (r *AttachmentRepository) findMany(ctx context.Context, filter bson.M) ([]*domain.BugAttachment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find attachments: %w", err)
	}
	defer cur.Close(ctx)

	var attachments []*domain.BugAttachment
	if err := cur.All(ctx, &attachments); err != nil {
		return nil, fmt.Errorf("decode attachments: %w", err)
	}
	return attachments, nil
}

func (r *AttachmentRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete attachment: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrAttachmentNotFound
	}
	return nil
}
