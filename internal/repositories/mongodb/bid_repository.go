package mongodb

import (
	"context"
	"time"

	"github.com/VishwaPriyan-S/ChitFunds/internal/errs"
	"github.com/VishwaPriyan-S/ChitFunds/internal/models"
	"github.com/VishwaPriyan-S/ChitFunds/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// BidRepository implements the repositories.BidRepository interface
type BidRepository struct {
	collection *mongo.Collection
}

// NewBidRepository creates a new BidRepository
func NewBidRepository(db *mongo.Database) repositories.BidRepository {
	return &BidRepository{
		collection: db.Collection("bids"),
	}
}

// Upsert inserts or overwrites the member's bid for the auction. Two upserts
// racing on the same (auctionId, userId) can both miss the filter and collide
// on insert; the loser gets a duplicate-key error and retries as a plain
// update against the now-existing document, so this request's amount still
// lands.
func (r *BidRepository) Upsert(ctx context.Context, auctionID, userID primitive.ObjectID, amount float64, bidTime time.Time) error {
	filter := bson.M{"auctionId": auctionID, "userId": userID}
	update := bson.M{"$set": bson.M{"bidAmount": amount, "bidTime": bidTime}}

	_, err := r.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil && mongo.IsDuplicateKeyError(err) {
		_, err = r.collection.UpdateOne(ctx, filter, update)
	}
	if err != nil {
		return errs.StoreFailure(err)
	}
	return nil
}

// FindByAuction returns the auction's bids ordered by amount ascending, ties
// broken by earliest bid time. Under chit-fund convention the first entry is
// the presumptive winner: the lowest bid returns the largest discount to the
// pool.
func (r *BidRepository) FindByAuction(ctx context.Context, auctionID primitive.ObjectID) ([]*models.Bid, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "bidAmount", Value: 1},
		{Key: "bidTime", Value: 1},
	})
	cursor, err := r.collection.Find(ctx, bson.M{"auctionId": auctionID}, opts)
	if err != nil {
		return nil, errs.StoreFailure(err)
	}
	defer cursor.Close(ctx)

	var bids []*models.Bid
	if err := cursor.All(ctx, &bids); err != nil {
		return nil, errs.StoreFailure(err)
	}
	if bids == nil {
		bids = []*models.Bid{}
	}
	return bids, nil
}

// FindByUser returns a member's bid history, most recent first
func (r *BidRepository) FindByUser(ctx context.Context, userID primitive.ObjectID) ([]*models.Bid, error) {
	opts := options.Find().SetSort(bson.M{"bidTime": -1})
	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, errs.StoreFailure(err)
	}
	defer cursor.Close(ctx)

	var bids []*models.Bid
	if err := cursor.All(ctx, &bids); err != nil {
		return nil, errs.StoreFailure(err)
	}
	if bids == nil {
		bids = []*models.Bid{}
	}
	return bids, nil
}
