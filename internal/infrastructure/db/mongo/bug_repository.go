package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/trackerhq/bugtracker/internal/core/domain"
	"github.com/trackerhq/bugtracker/internal/core/ports"
)

const collectionBugs = "bugs"

type BugRepository struct {
	db  *mongo.Database
	col *mongo.Collection
}

func NewBugRepository(db *mongo.Database) *BugRepository {
	return &BugRepository{db: db, col: db.Collection(collectionBugs)}
}

func (r *BugRepository) Create(ctx context.Context, bug *domain.Bug) (*domain.Bug, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := nextID(ctx, r.db, collectionBugs)
	if err != nil {
		return nil, err
	}

	created := *bug
	created.ID = id
	if _, err := r.col.InsertOne(ctx, &created); err != nil {
		return nil, fmt.Errorf("insert bug: %w", err)
	}
	return &created, nil
}

func (r *BugRepository) FindByID(ctx context.Context, id int64) (*domain.Bug, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var bug domain.Bug
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&bug); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrBugNotFound
		}
		return nil, fmt.Errorf("find bug: %w", err)
	}
	return &bug, nil
}

func (r *BugRepository) FindAll(ctx context.Context) ([]*domain.Bug, error) {
	return r.findMany(ctx, bson.M{})
}

func (r *BugRepository) FindByProject(ctx context.Context, projectID int64) ([]*domain.Bug, error) {
	return r.findMany(ctx, bson.M{"project_id": projectID})
}

func (r *BugRepository) findMany(ctx context.Context, filter bson.M) ([]*domain.Bug, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find bugs: %w", err)
	}
	defer cur.Close(ctx)

	var bugs []*domain.Bug
	if err := cur.All(ctx, &bugs); err != nil {
		return nil, fmt.Errorf("decode bugs: %w", err)
	}
	return bugs, nil
}

// List returns one page of bugs matching filter plus the unpaged total.
func (r *BugRepository) List(ctx context.Context, filter ports.ListBugsFilter) ([]*domain.Bug, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.ProjectID != 0 {
		query["project_id"] = filter.ProjectID
	}
	if filter.Priority != "" {
		query["priority"] = filter.Priority
	}

	total, err := r.col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count bugs: %w", err)
	}

	order := 1
	if filter.SortDesc {
		order = -1
	}

	opts := options.Find().
		SetSort(bson.D{{Key: sortField(filter.SortBy), Value: order}, {Key: "_id", Value: 1}}).
		SetSkip(int64(filter.Page) * int64(filter.Size)).
		SetLimit(int64(filter.Size))

	cur, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list bugs: %w", err)
	}
	defer cur.Close(ctx)

	var bugs []*domain.Bug
	if err := cur.All(ctx, &bugs); err != nil {
		return nil, 0, fmt.Errorf("decode bugs: %w", err)
	}
	return bugs, total, nil
}

func (r *BugRepository) Update(ctx context.Context, bug *domain.Bug) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": bug.ID}, bson.M{"$set": bson.M{
		"title":       bug.Title,
		"description": bug.Description,
		"priority":    bug.Priority,
		"project_id":  bug.ProjectID,
	}})
	if err != nil {
		return fmt.Errorf("update bug: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrBugNotFound
	}
	return nil
}

func (r *BugRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete bug: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrBugNotFound
	}
	return nil
}

// EnsureIndexes creates the indexes backing the project and priority filters.
func (r *BugRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "project_id", Value: 1}}},
		{Keys: bson.D{{Key: "priority", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

// sortField maps API sort keys to document fields; unknown keys sort by priority.
func sortField(sortBy string) string {
	switch sortBy {
	case "title":
		return "title"
	case "createdDate":
		return "created_date"
	default:
		return "priority"
	}
}
