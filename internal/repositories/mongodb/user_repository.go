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
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UserRepository implements the repositories.UserRepository interface
type UserRepository struct {
	collection *mongo.Collection
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *mongo.Database) repositories.UserRepository {
	return &UserRepository{
		collection: db.Collection("users"),
	}
}

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()
	res, err := r.collection.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return errs.Conflict("a user with this email already exists")
		}
		return errs.StoreFailure(err)
	}
	user.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// FindByID finds a user by ID
func (r *UserRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, errs.NotFound("user not found")
		}
		return nil, errs.StoreFailure(err)
	}
	return &user, nil
}

// FindByEmail finds a user by email
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, errs.NotFound("user not found")
		}
		return nil, errs.StoreFailure(err)
	}
	return &user, nil
}

// FindByIdentity finds a user by identity document type and number
func (r *UserRepository) FindByIdentity(ctx context.Context, idType, idNumber string) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"idType": idType, "idNumber": idNumber}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, errs.NotFound("user not found")
		}
		return nil, errs.StoreFailure(err)
	}
	return &user, nil
}

// FindMembers finds member accounts, optionally filtered by status, newest first
func (r *UserRepository) FindMembers(ctx context.Context, status models.UserStatus, page, limit int) ([]*models.User, int64, error) {
	filter := bson.M{"role": models.RoleMember}
	if status != "" {
		filter["status"] = status
	}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, errs.StoreFailure(err)
	}

	opts := options.Find().
		SetSort(bson.M{"createdAt": -1}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, errs.StoreFailure(err)
	}
	defer cursor.Close(ctx)

	var users []*models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, 0, errs.StoreFailure(err)
	}
	if users == nil {
		users = []*models.User{}
	}
	return users, total, nil
}

// FindRecentMembers finds the most recently registered members
func (r *UserRepository) FindRecentMembers(ctx context.Context, limit int) ([]*models.User, error) {
	opts := options.Find().SetSort(bson.M{"createdAt": -1}).SetLimit(int64(limit))
	cursor, err := r.collection.Find(ctx, bson.M{"role": models.RoleMember}, opts)
	if err != nil {
		return nil, errs.StoreFailure(err)
	}
	defer cursor.Close(ctx)

	var users []*models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, errs.StoreFailure(err)
	}
	if users == nil {
		users = []*models.User{}
	}
	return users, nil
}

// Update updates a user
func (r *UserRepository) Update(ctx context.Context, user *models.User) error {
	user.UpdatedAt = time.Now()
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": user.ID}, user)
	if err != nil {
		return errs.StoreFailure(err)
	}
	return nil
}

// UpdateStatus updates a user's approval status
func (r *UserRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.UserStatus) error {
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"status": status, "updatedAt": time.Now()},
	})
	if err != nil {
		return errs.StoreFailure(err)
	}
	if res.MatchedCount == 0 {
		return errs.NotFound("user not found")
	}
	return nil
}

// Delete deletes a user by ID
func (r *UserRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return errs.StoreFailure(err)
	}
	if res.DeletedCount == 0 {
		return errs.NotFound("user not found")
	}
	return nil
}

// CountMembers counts member accounts, optionally filtered by status
func (r *UserRepository) CountMembers(ctx context.Context, status models.UserStatus) (int64, error) {
	filter := bson.M{"role": models.RoleMember}
	if status != "" {
		filter["status"] = status
	}
	count, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return 0, errs.StoreFailure(err)
	}
	return count, nil
}
