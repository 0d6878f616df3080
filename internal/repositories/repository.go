package repositories

import (
	"context"
	"time"

	"github.com/VishwaPriyan-S/ChitFunds/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UnitOfWork groups ledger writes into one atomic transaction. The context
// passed to fn must be used for every repository call inside the function;
// if fn returns an error every write made through that context is rolled
// back.
type UnitOfWork interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// UserRepository defines the interface for user data operations
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByIdentity(ctx context.Context, idType, idNumber string) (*models.User, error)
	FindMembers(ctx context.Context, status models.UserStatus, page, limit int) ([]*models.User, int64, error)
	FindRecentMembers(ctx context.Context, limit int) ([]*models.User, error)
	Update(ctx context.Context, user *models.User) error
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.UserStatus) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	CountMembers(ctx context.Context, status models.UserStatus) (int64, error)
}

// GroupRepository defines the interface for chit group data operations
type GroupRepository interface {
	Create(ctx context.Context, group *models.ChitGroup) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.ChitGroup, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*models.ChitGroup, error)
	FindAllWithMemberCounts(ctx context.Context) ([]*models.GroupSummary, error)
	Update(ctx context.Context, group *models.ChitGroup) error
	CountByStatus(ctx context.Context, status models.GroupStatus) (int64, error)
}

// MembershipRepository defines the interface for chit membership operations
type MembershipRepository interface {
	Create(ctx context.Context, membership *models.Membership) error
	FindByGroupAndUser(ctx context.Context, groupID, userID primitive.ObjectID) (*models.Membership, error)
	FindActiveByUser(ctx context.Context, userID primitive.ObjectID) ([]*models.Membership, error)
	FindByGroup(ctx context.Context, groupID primitive.ObjectID) ([]*models.Membership, error)
	CountActiveByGroup(ctx context.Context, groupID primitive.ObjectID) (int64, error)
	CountActiveByUser(ctx context.Context, userID primitive.ObjectID) (int64, error)
	// MarkReceived records the payout on a membership that has not received
	// one yet; a membership already marked yields a not-eligible error
	MarkReceived(ctx context.Context, id primitive.ObjectID, amount float64, month, year int) error
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.MembershipStatus) error
}

// AuctionRepository defines the interface for auction data operations
type AuctionRepository interface {
	Create(ctx context.Context, auction *models.Auction) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Auction, error)
	FindByGroupAndCycle(ctx context.Context, groupID primitive.ObjectID, month, year int) (*models.Auction, error)
	FindAll(ctx context.Context) ([]*models.Auction, error)
	FindActiveByGroups(ctx context.Context, groupIDs []primitive.ObjectID) ([]*models.Auction, error)
	// CompleteIfActive atomically moves the auction from active to completed,
	// recording the winner. It reports false when the auction was not active,
	// so exactly one of any concurrent close attempts succeeds.
	CompleteIfActive(ctx context.Context, id primitive.ObjectID, winnerID primitive.ObjectID, winningAmount float64, closedAt time.Time) (bool, error)
	// CancelIfOpen atomically moves a scheduled or active auction to
	// cancelled, reporting false when the auction was already terminal.
	CancelIfOpen(ctx context.Context, id primitive.ObjectID) (bool, error)
}

// BidRepository defines the interface for bid data operations
type BidRepository interface {
	// Upsert inserts the member's bid for the auction, or overwrites the
	// amount and bid time of their existing one.
	Upsert(ctx context.Context, auctionID, userID primitive.ObjectID, amount float64, bidTime time.Time) error
	// FindByAuction returns the auction's bids ordered by amount ascending,
	// ties broken by earliest bid time.
	FindByAuction(ctx context.Context, auctionID primitive.ObjectID) ([]*models.Bid, error)
	FindByUser(ctx context.Context, userID primitive.ObjectID) ([]*models.Bid, error)
}

// TransactionRepository defines the interface for transaction data operations
type TransactionRepository interface {
	Create(ctx context.Context, txn *models.Transaction) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Transaction, error)
	FindByUser(ctx context.Context, userID primitive.ObjectID, page, limit int) ([]*models.Transaction, int64, error)
	FindAll(ctx context.Context, page, limit int) ([]*models.Transaction, int64, error)
	// SumAmounts totals transaction amounts; pass empty type or status to
	// match any.
	SumAmounts(ctx context.Context, userID primitive.ObjectID, txType models.TransactionType, status models.TransactionStatus) (float64, error)
	SumCompleted(ctx context.Context) (float64, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.TransactionStatus) error
}
