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

// TransactionRepository implements the repositories.TransactionRepository interface
type TransactionRepository struct {
	collection *mongo.Collection
}

// NewTransactionRepository creates a new TransactionRepository
func NewTransactionRepository(db *mongo.Database) repositories.TransactionRepository {
	return &TransactionRepository{
		collection: db.Collection("transactions"),
	}
}

// Create creates a new transaction record
func (r *TransactionRepository) Create(ctx context.Context, txn *models.Transaction) error {
	txn.CreatedAt = time.Now()
	txn.UpdatedAt = time.Now()
	res, err := r.collection.InsertOne(ctx, txn)
	if err != nil {
		return errs.StoreFailure(err)
	}
	txn.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// FindByID finds a transaction by ID
func (r *TransactionRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Transaction, error) {
	var txn models.Transaction
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&txn)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, errs.NotFound("transaction not found")
		}
		return nil, errs.StoreFailure(err)
	}
	return &txn, nil
}

// FindByUser finds a member's transactions, newest first
func (r *TransactionRepository) FindByUser(ctx context.Context, userID primitive.ObjectID, page, limit int) ([]*models.Transaction, int64, error) {
	return r.findPage(ctx, bson.M{"userId": userID}, page, limit)
}

// FindAll finds all transactions, newest first
func (r *TransactionRepository) FindAll(ctx context.Context, page, limit int) ([]*models.Transaction, int64, error) {
	return r.findPage(ctx, bson.M{}, page, limit)
}

func (r *TransactionRepository) findPage(ctx context.Context, filter bson.M, page, limit int) ([]*models.Transaction, int64, error) {
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

	var txns []*models.Transaction
	if err := cursor.All(ctx, &txns); err != nil {
		return nil, 0, errs.StoreFailure(err)
	}
	if txns == nil {
		txns = []*models.Transaction{}
	}
	return txns, total, nil
}

// SumAmounts totals a member's transaction amounts; empty type or status
// matches any
func (r *TransactionRepository) SumAmounts(ctx context.Context, userID primitive.ObjectID, txType models.TransactionType, status models.TransactionStatus) (float64, error) {
	match := bson.M{"userId": userID}
	if txType != "" {
		match["type"] = txType
	}
	if status != "" {
		match["status"] = status
	}
	return r.sum(ctx, match)
}

// SumCompleted totals all completed transaction amounts across the system
func (r *TransactionRepository) SumCompleted(ctx context.Context) (float64, error) {
	return r.sum(ctx, bson.M{"status": models.TransactionStatusCompleted})
}

func (r *TransactionRepository) sum(ctx context.Context, match bson.M) (float64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$group", Value: bson.M{"_id": nil, "total": bson.M{"$sum": "$amount"}}}},
	}
	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, errs.StoreFailure(err)
	}
	defer cursor.Close(ctx)

	var results []struct {
		Total float64 `bson:"total"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return 0, errs.StoreFailure(err)
	}
	if len(results) == 0 {
		return 0, nil
	}
	return results[0].Total, nil
}

// UpdateStatus updates a transaction's status. This is the only permitted
// mutation of a transaction record.
func (r *TransactionRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.TransactionStatus) error {
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"status": status, "updatedAt": time.Now()},
	})
	if err != nil {
		return errs.StoreFailure(err)
	}
	if res.MatchedCount == 0 {
		return errs.NotFound("transaction not found")
	}
	return nil
}
