package mongodb

import (
	"context"
	"errors"
	"time"

	"github.com/VishwaPriyan-S/ChitFunds/internal/errs"
	"github.com/VishwaPriyan-S/ChitFunds/internal/models"
	"github.com/VishwaPriyan-S/ChitFunds/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// GroupRepository implements the repositories.GroupRepository interface
type GroupRepository struct {
	collection *mongo.Collection
}

// NewGroupRepository creates a new GroupRepository
func NewGroupRepository(db *mongo.Database) repositories.GroupRepository {
	return &GroupRepository{
		collection: db.Collection("chit_groups"),
	}
}

// Create creates a new chit group
func (r *GroupRepository) Create(ctx context.Context, group *models.ChitGroup) error {
	group.CreatedAt = time.Now()
	group.UpdatedAt = time.Now()
	res, err := r.collection.InsertOne(ctx, group)
	if err != nil {
		return errs.StoreFailure(err)
	}
	group.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// FindByID finds a chit group by ID
func (r *GroupRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.ChitGroup, error) {
	var group models.ChitGroup
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&group)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, errs.NotFound("chit group not found")
		}
		return nil, errs.StoreFailure(err)
	}
	return &group, nil
}

// FindByIDs finds the chit groups with the given IDs
func (r *GroupRepository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*models.ChitGroup, error) {
	if len(ids) == 0 {
		return []*models.ChitGroup{}, nil
	}
	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, errs.StoreFailure(err)
	}
	defer cursor.Close(ctx)

	var groups []*models.ChitGroup
	if err := cursor.All(ctx, &groups); err != nil {
		return nil, errs.StoreFailure(err)
	}
	if groups == nil {
		groups = []*models.ChitGroup{}
	}
	return groups, nil
}

// FindAllWithMemberCounts finds all chit groups joined with their active
// member counts, newest first
func (r *GroupRepository) FindAllWithMemberCounts(ctx context.Context) ([]*models.GroupSummary, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$lookup", Value: bson.M{
			"from": "chit_members",
			"let":  bson.M{"groupId": "$_id"},
			"pipeline": bson.A{
				bson.M{"$match": bson.M{"$expr": bson.M{"$and": bson.A{
					bson.M{"$eq": bson.A{"$chitGroupId", "$$groupId"}},
					bson.M{"$eq": bson.A{"$status", models.MembershipStatusActive}},
				}}}},
			},
			"as": "activeMembers",
		}}},
		{{Key: "$addFields", Value: bson.M{"currentMembers": bson.M{"$size": "$activeMembers"}}}},
		{{Key: "$project", Value: bson.M{"activeMembers": 0}}},
		{{Key: "$sort", Value: bson.M{"createdAt": -1}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, errs.StoreFailure(err)
	}
	defer cursor.Close(ctx)

	var groups []*models.GroupSummary
	if err := cursor.All(ctx, &groups); err != nil {
		return nil, errs.StoreFailure(err)
	}
	if groups == nil {
		groups = []*models.GroupSummary{}
	}
	return groups, nil
}

// Update updates a chit group
func (r *GroupRepository) Update(ctx context.Context, group *models.ChitGroup) error {
	group.UpdatedAt = time.Now()
	res, err := r.collection.ReplaceOne(ctx, bson.M{"_id": group.ID}, group)
	if err != nil {
		return errs.StoreFailure(err)
	}
	if res.MatchedCount == 0 {
		return errs.NotFound("chit group not found")
	}
	return nil
}

// CountByStatus counts chit groups with the given status
func (r *GroupRepository) CountByStatus(ctx context.Context, status models.GroupStatus) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"status": status})
	if err != nil {
		return 0, errs.StoreFailure(err)
	}
	return count, nil
}
