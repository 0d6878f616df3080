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

// AuctionRepository implements the repositories.AuctionRepository interface
type AuctionRepository struct {
	collection *mongo.Collection
}

// NewAuctionRepository creates a new AuctionRepository
func NewAuctionRepository(db *mongo.Database) repositories.AuctionRepository {
	return &AuctionRepository{
		collection: db.Collection("auctions"),
	}
}

// Create creates a new auction
func (r *AuctionRepository) Create(ctx context.Context, auction *models.Auction) error {
	auction.CreatedAt = time.Now()
	auction.UpdatedAt = time.Now()
	res, err := r.collection.InsertOne(ctx, auction)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return errs.Conflict("an auction already exists for this group and month")
		}
		return errs.StoreFailure(err)
	}
	auction.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// FindByID finds an auction by ID
func (r *AuctionRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Auction, error) {
	var auction models.Auction
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&auction)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, errs.NotFound("auction not found")
		}
		return nil, errs.StoreFailure(err)
	}
	return &auction, nil
}

// FindByGroupAndCycle finds the auction of a chit group for a given month and year
func (r *AuctionRepository) FindByGroupAndCycle(ctx context.Context, groupID primitive.ObjectID, month, year int) (*models.Auction, error) {
	var auction models.Auction
	err := r.collection.FindOne(ctx, bson.M{
		"chitGroupId": groupID,
		"month":       month,
		"year":        year,
	}).Decode(&auction)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, errs.NotFound("auction not found")
		}
		return nil, errs.StoreFailure(err)
	}
	return &auction, nil
}

// FindAll finds all auctions, most recent auction date first
func (r *AuctionRepository) FindAll(ctx context.Context) ([]*models.Auction, error) {
	opts := options.Find().SetSort(bson.M{"auctionDate": -1})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, errs.StoreFailure(err)
	}
	defer cursor.Close(ctx)

	var auctions []*models.Auction
	if err := cursor.All(ctx, &auctions); err != nil {
		return nil, errs.StoreFailure(err)
	}
	if auctions == nil {
		auctions = []*models.Auction{}
	}
	return auctions, nil
}

// FindActiveByGroups finds auctions open for bidding in the given groups,
// earliest auction date first
func (r *AuctionRepository) FindActiveByGroups(ctx context.Context, groupIDs []primitive.ObjectID) ([]*models.Auction, error) {
	if len(groupIDs) == 0 {
		return []*models.Auction{}, nil
	}
	filter := bson.M{
		"chitGroupId": bson.M{"$in": groupIDs},
		"status":      models.AuctionStatusActive,
	}
	opts := options.Find().SetSort(bson.M{"auctionDate": 1})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, errs.StoreFailure(err)
	}
	defer cursor.Close(ctx)

	var auctions []*models.Auction
	if err := cursor.All(ctx, &auctions); err != nil {
		return nil, errs.StoreFailure(err)
	}
	if auctions == nil {
		auctions = []*models.Auction{}
	}
	return auctions, nil
}

// CompleteIfActive performs a compare-and-set from active to completed,
// recording the winner and close time. The status filter guarantees that of
// any concurrent close attempts exactly one observes a match.
func (r *AuctionRepository) CompleteIfActive(ctx context.Context, id, winnerID primitive.ObjectID, winningAmount float64, closedAt time.Time) (bool, error) {
	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id, "status": models.AuctionStatusActive},
		bson.M{"$set": bson.M{
			"status":           models.AuctionStatusCompleted,
			"winnerId":         winnerID,
			"winningBidAmount": winningAmount,
			"closedAt":         closedAt,
			"updatedAt":        closedAt,
		}},
	)
	if err != nil {
		return false, errs.StoreFailure(err)
	}
	return res.ModifiedCount == 1, nil
}

// CancelIfOpen performs a compare-and-set from scheduled or active to cancelled
func (r *AuctionRepository) CancelIfOpen(ctx context.Context, id primitive.ObjectID) (bool, error) {
	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id, "status": bson.M{"$in": bson.A{
			models.AuctionStatusScheduled,
			models.AuctionStatusActive,
		}}},
		bson.M{"$set": bson.M{
			"status":    models.AuctionStatusCancelled,
			"updatedAt": time.Now(),
		}},
	)
	if err != nil {
		return false, errs.StoreFailure(err)
	}
	return res.ModifiedCount == 1, nil
}
