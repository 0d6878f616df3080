package services

import (
	"context"
	"time"

	"github.com/VishwaPriyan-S/ChitFunds/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AuthService defines the interface for authentication operations
type AuthService interface {
	// Register creates a pending member account
	Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error)
	// Login authenticates a user of the expected role and returns a signed token
	Login(ctx context.Context, req *models.LoginRequest, role models.UserRole) (*models.AuthResponse, error)
}

// UserService defines the interface for the admin member-approval workflow
type UserService interface {
	GetMembers(ctx context.Context, status models.UserStatus, page, limit int) ([]*models.User, *models.Pagination, error)
	GetProfile(ctx context.Context, userID primitive.ObjectID) (*models.User, error)
	UpdateProfile(ctx context.Context, userID primitive.ObjectID, firstName, lastName, phone, address string) (*models.User, error)
	ApproveMember(ctx context.Context, memberID primitive.ObjectID) (*models.User, error)
	RejectMember(ctx context.Context, memberID primitive.ObjectID) (*models.User, error)
	// DeleteMember removes a member account; members with active chit
	// memberships cannot be deleted.
	DeleteMember(ctx context.Context, memberID primitive.ObjectID) error
}

// GroupService defines the interface for chit group management
type GroupService interface {
	CreateGroup(ctx context.Context, req *CreateGroupRequest, createdBy primitive.ObjectID) (*models.ChitGroup, error)
	UpdateGroup(ctx context.Context, groupID primitive.ObjectID, name string, status models.GroupStatus) (*models.ChitGroup, error)
	GetGroups(ctx context.Context) ([]*models.GroupSummary, error)
	// AddMember enrolls an approved member into an active, non-full group
	AddMember(ctx context.Context, groupID, userID primitive.ObjectID) (*models.Membership, error)
	// GetGroupMembers returns a group's roster with member identities
	GetGroupMembers(ctx context.Context, groupID primitive.ObjectID) ([]*models.GroupMember, error)
	// RemoveMember marks an active membership as removed; members who have
	// received a payout cannot be removed
	RemoveMember(ctx context.Context, groupID, userID primitive.ObjectID) error
	// GetMemberGroups returns the groups a member actively participates in
	GetMemberGroups(ctx context.Context, userID primitive.ObjectID) ([]*models.MemberGroup, error)
}

// CreateGroupRequest carries the parameters for a new chit group
type CreateGroupRequest struct {
	Name         string
	Description  string
	TotalAmount  float64
	Duration     int
	TotalMembers int
}

// AuctionService defines the interface for the auction and bid settlement
// engine: auction creation, bid registration and the atomic close.
type AuctionService interface {
	// CreateAuction opens the bidding event for a group's cycle
	CreateAuction(ctx context.Context, groupID primitive.ObjectID, month, year int, auctionDate time.Time, minBidAmount float64) (*models.Auction, error)
	GetAuction(ctx context.Context, auctionID primitive.ObjectID) (*models.Auction, error)
	GetAuctions(ctx context.Context) ([]*models.Auction, error)
	// PlaceBid registers or revises a member's bid for an open auction
	PlaceBid(ctx context.Context, auctionID, memberID primitive.ObjectID, amount float64) (*models.Bid, error)
	// GetBids lists an auction's bids, lowest amount first, with bidder names
	GetBids(ctx context.Context, auctionID primitive.ObjectID) ([]*models.BidView, error)
	// CloseAuction atomically declares the winner, marks the membership as
	// having received its payout, and records the payout transaction
	CloseAuction(ctx context.Context, auctionID, winnerID primitive.ObjectID, winningAmount float64) (*models.Auction, error)
	CancelAuction(ctx context.Context, auctionID primitive.ObjectID) (*models.Auction, error)
	// GetAvailableAuctions lists the open auctions a member may still bid in
	GetAvailableAuctions(ctx context.Context, memberID primitive.ObjectID) ([]*models.Auction, error)
	GetMemberBids(ctx context.Context, memberID primitive.ObjectID) ([]*models.Bid, error)
}

// DashboardService defines the interface for read-only rollups and
// transaction bookkeeping outside the settlement engine
type DashboardService interface {
	AdminStats(ctx context.Context) (*models.AdminDashboardStats, error)
	MemberStats(ctx context.Context, userID primitive.ObjectID) (*models.MemberDashboardStats, error)
	GetTransactions(ctx context.Context, page, limit int) ([]*models.Transaction, *models.Pagination, error)
	GetMemberTransactions(ctx context.Context, userID primitive.ObjectID, page, limit int) ([]*models.Transaction, *models.Pagination, error)
	// RecordContribution books a member's monthly contribution
	RecordContribution(ctx context.Context, groupID, userID primitive.ObjectID, amount float64, month, year int) (*models.Transaction, error)
	// OverrideTransactionStatus is the single permitted mutation of a
	// transaction record
	OverrideTransactionStatus(ctx context.Context, txnID primitive.ObjectID, status models.TransactionStatus) error
}
