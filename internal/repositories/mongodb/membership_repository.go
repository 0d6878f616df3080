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

// MembershipRepository implements the repositories.MembershipRepository interface
type MembershipRepository struct {
	collection *mongo.Collection
}

// NewMembershipRepository creates a new MembershipRepository
func NewMembershipRepository(db *mongo.Database) repositories.MembershipRepository {
	return &MembershipRepository{
		collection: db.Collection("chit_members"),
	}
}

// Create creates a new membership
func (r *MembershipRepository) Create(ctx context.Context, membership *models.Membership) error {
	membership.CreatedAt = time.Now()
	membership.UpdatedAt = time.Now()
	if membership.JoinedDate.IsZero() {
		membership.JoinedDate = membership.CreatedAt
	}
	res, err := r.collection.InsertOne(ctx, membership)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return errs.Conflict("member is already in this chit group")
		}
		return errs.StoreFailure(err)
	}
	membership.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// FindByGroupAndUser finds a user's membership in a chit group
func (r *MembershipRepository) FindByGroupAndUser(ctx context.Context, groupID, userID primitive.ObjectID) (*models.Membership, error) {
	var membership models.Membership
	err := r.collection.FindOne(ctx, bson.M{"chitGroupId": groupID, "userId": userID}).Decode(&membership)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, errs.NotFound("membership not found")
		}
		return nil, errs.StoreFailure(err)
	}
	return &membership, nil
}

// FindActiveByUser finds a user's active memberships
func (r *MembershipRepository) FindActiveByUser(ctx context.Context, userID primitive.ObjectID) ([]*models.Membership, error) {
	cursor, err := r.collection.Find(ctx, bson.M{
		"userId": userID,
		"status": models.MembershipStatusActive,
	})
	if err != nil {
		return nil, errs.StoreFailure(err)
	}
	defer cursor.Close(ctx)

	var memberships []*models.Membership
	if err := cursor.All(ctx, &memberships); err != nil {
		return nil, errs.StoreFailure(err)
	}
	if memberships == nil {
		memberships = []*models.Membership{}
	}
	return memberships, nil
}

// FindByGroup finds all memberships of a chit group
func (r *MembershipRepository) FindByGroup(ctx context.Context, groupID primitive.ObjectID) ([]*models.Membership, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"chitGroupId": groupID})
	if err != nil {
		return nil, errs.StoreFailure(err)
	}
	defer cursor.Close(ctx)

	var memberships []*models.Membership
	if err := cursor.All(ctx, &memberships); err != nil {
		return nil, errs.StoreFailure(err)
	}
	if memberships == nil {
		memberships = []*models.Membership{}
	}
	return memberships, nil
}

// CountActiveByGroup counts active memberships in a chit group
func (r *MembershipRepository) CountActiveByGroup(ctx context.Context, groupID primitive.ObjectID) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{
		"chitGroupId": groupID,
		"status":      models.MembershipStatusActive,
	})
	if err != nil {
		return 0, errs.StoreFailure(err)
	}
	return count, nil
}

// CountActiveByUser counts a user's active memberships
func (r *MembershipRepository) CountActiveByUser(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{
		"userId": userID,
		"status": models.MembershipStatusActive,
	})
	if err != nil {
		return 0, errs.StoreFailure(err)
	}
	return count, nil
}

// MarkReceived records that the membership received its payout for the given
// cycle. The filter matches only memberships that have not received yet, so
// two settlements racing on the same member cannot both succeed.
func (r *MembershipRepository) MarkReceived(ctx context.Context, id primitive.ObjectID, amount float64, month, year int) error {
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": id, "hasReceived": false}, bson.M{
		"$set": bson.M{
			"hasReceived":    true,
			"receivedAmount": amount,
			"receivedMonth":  month,
			"receivedYear":   year,
			"updatedAt":      time.Now(),
		},
	})
	if err != nil {
		return errs.StoreFailure(err)
	}
	if res.MatchedCount == 0 {
		return errs.NotEligible("member has already received a payout in this group")
	}
	return nil
}

// UpdateStatus updates a membership's status
func (r *MembershipRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.MembershipStatus) error {
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"status": status, "updatedAt": time.Now()},
	})
	if err != nil {
		return errs.StoreFailure(err)
	}
	if res.MatchedCount == 0 {
		return errs.NotFound("membership not found")
	}
	return nil
}
