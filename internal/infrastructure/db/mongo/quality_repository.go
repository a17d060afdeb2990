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

const collectionQualities = "qualities"

type QualityRepository struct {
	db  *mongo.Database
	col *mongo.Collection
}

func NewQualityRepository(db *mongo.Database) *QualityRepository {
	return &QualityRepository{db: db, col: db.Collection(collectionQualities)}
}

func (r *QualityRepository) Create(ctx context.Context, q *domain.Quality) (*domain.Quality, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := nextID(ctx, r.db, collectionQualities)
	if err != nil {
		return nil, err
	}

	created := *q
	created.MetricID = id
	if _, err := r.col.InsertOne(ctx, &created); err != nil {
		return nil, fmt.Errorf("insert quality: %w", err)
	}
	return &created, nil
}

func (r *QualityRepository) FindByID(ctx context.Context, id int64) (*domain.Quality, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var q domain.Quality
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&q); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrQualityNotFound
		}
		return nil, fmt.Errorf("find quality: %w", err)
	}
	return &q, nil
}

func (r *QualityRepository) FindAll(ctx context.Context) ([]*domain.Quality, error) {
	return r.findMany(ctx, bson.M{})
}

func (r *QualityRepository) FindByProject(ctx context.Context, projectID int64) ([]*domain.Quality, error) {
	return r.findMany(ctx, bson.M{"project_id": projectID})
}

func (r *QualityRepository) findMany(ctx context.Context, filter bson.M) ([]*domain.Quality, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find qualities: %w", err)
	}
	defer cur.Close(ctx)

	var qualities []*domain.Quality
	if err := cur.All(ctx, &qualities); err != nil {
		return nil, fmt.Errorf("decode qualities: %w", err)
	}
	return qualities, nil
}

func (r *QualityRepository) Update(ctx context.Context, q *domain.Quality) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": q.MetricID}, bson.M{"$set": bson.M{
		"bug_count":       q.BugCount,
		"resolved_count":  q.ResolvedCount,
		"quality_score":   q.QualityScore,
		"calculated_date": q.CalculatedDate,
	}})
	if err != nil {
		return fmt.Errorf("update quality: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrQualityNotFound
	}
	return nil
}

func (r *QualityRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete quality: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrQualityNotFound
	}
	return nil
}
