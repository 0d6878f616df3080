package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/VishwaPriyan-S/ChitFunds/internal/eligibility"
	"github.com/VishwaPriyan-S/ChitFunds/internal/errs"
	"github.com/VishwaPriyan-S/ChitFunds/internal/models"
	"github.com/VishwaPriyan-S/ChitFunds/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Compile-time check to ensure AuctionServiceImpl implements AuctionService
var _ AuctionService = (*AuctionServiceImpl)(nil)

// AuctionServiceImpl handles the auction lifecycle: creation, bid
// registration and the atomic settlement on close.
type AuctionServiceImpl struct {
	auctionRepo     repositories.AuctionRepository
	bidRepo         repositories.BidRepository
	groupRepo       repositories.GroupRepository
	membershipRepo  repositories.MembershipRepository
	transactionRepo repositories.TransactionRepository
	userRepo        repositories.UserRepository
	uow             repositories.UnitOfWork
}

// NewAuctionService creates a new AuctionServiceImpl
func NewAuctionService(
	auctionRepo repositories.AuctionRepository,
	bidRepo repositories.BidRepository,
	groupRepo repositories.GroupRepository,
	membershipRepo repositories.MembershipRepository,
	transactionRepo repositories.TransactionRepository,
	userRepo repositories.UserRepository,
	uow repositories.UnitOfWork,
) *AuctionServiceImpl {
	return &AuctionServiceImpl{
		auctionRepo:     auctionRepo,
		bidRepo:         bidRepo,
		groupRepo:       groupRepo,
		membershipRepo:  membershipRepo,
		transactionRepo: transactionRepo,
		userRepo:        userRepo,
		uow:             uow,
	}
}

// CreateAuction opens the bidding event for a group's cycle. The group must
// exist and be active, and the (group, month, year) cycle must not already
// have an auction.
func (s *AuctionServiceImpl) CreateAuction(ctx context.Context, groupID primitive.ObjectID, month, year int, auctionDate time.Time, minBidAmount float64) (*models.Auction, error) {
	group, err := s.groupRepo.FindByID(ctx, groupID)
	if err != nil {
		if errs.IsKind(err, errs.KindNotFound) {
			return nil, errs.NotFound("chit group not found")
		}
		return nil, err
	}
	if group.Status != models.GroupStatusActive {
		return nil, errs.InvalidState("chit group is %s, not active", group.Status)
	}

	if _, err := s.auctionRepo.FindByGroupAndCycle(ctx, groupID, month, year); err == nil {
		return nil, errs.Conflict("an auction already exists for %d/%d in this group", month, year)
	} else if !errs.IsKind(err, errs.KindNotFound) {
		return nil, err
	}

	auction := &models.Auction{
		ChitGroupID:  groupID,
		Month:        month,
		Year:         year,
		MinBidAmount: minBidAmount,
		Status:       models.AuctionStatusActive,
		AuctionDate:  auctionDate,
	}
	// The unique (group, month, year) index backstops the duplicate check
	// above against a concurrent create.
	if err := s.auctionRepo.Create(ctx, auction); err != nil {
		return nil, err
	}

	slog.Info("auction created",
		"auctionId", auction.ID.Hex(),
		"groupId", groupID.Hex(),
		"month", month,
		"year", year,
	)
	return auction, nil
}

// GetAuction retrieves an auction by ID
func (s *AuctionServiceImpl) GetAuction(ctx context.Context, auctionID primitive.ObjectID) (*models.Auction, error) {
	return s.auctionRepo.FindByID(ctx, auctionID)
}

// GetAuctions retrieves all auctions
func (s *AuctionServiceImpl) GetAuctions(ctx context.Context) ([]*models.Auction, error) {
	return s.auctionRepo.FindAll(ctx)
}

// PlaceBid registers or revises a member's bid for an open auction. A
// member's resubmission overwrites their previous bid; the store's unique
// (auction, member) constraint guarantees at most one bid per member
// survives any interleaving.
func (s *AuctionServiceImpl) PlaceBid(ctx context.Context, auctionID, memberID primitive.ObjectID, amount float64) (*models.Bid, error) {
	auction, err := s.auctionRepo.FindByID(ctx, auctionID)
	if err != nil {
		if errs.IsKind(err, errs.KindNotFound) {
			return nil, errs.NotFound("auction not found")
		}
		return nil, err
	}
	if auction.Status != models.AuctionStatusActive {
		return nil, errs.InvalidState("auction is %s, not open for bidding", auction.Status)
	}

	group, err := s.groupRepo.FindByID(ctx, auction.ChitGroupID)
	if err != nil {
		return nil, err
	}

	membership, err := s.membershipRepo.FindByGroupAndUser(ctx, auction.ChitGroupID, memberID)
	if err != nil {
		if errs.IsKind(err, errs.KindNotFound) {
			return nil, errs.NotEligible("you are not a member of this chit group")
		}
		return nil, err
	}

	if err := eligibility.CheckBid(membership, auction, group, amount); err != nil {
		return nil, err
	}

	bid := &models.Bid{
		AuctionID: auctionID,
		UserID:    memberID,
		BidAmount: amount,
		BidTime:   time.Now(),
	}
	if err := s.bidRepo.Upsert(ctx, auctionID, memberID, bid.BidAmount, bid.BidTime); err != nil {
		return nil, err
	}

	slog.Info("bid placed",
		"auctionId", auctionID.Hex(),
		"memberId", memberID.Hex(),
		"amount", amount,
	)
	return bid, nil
}

// GetBids lists an auction's bids ordered by amount ascending, ties by
// earliest submission, each joined with the bidder's name. Lowest bid first:
// in a chit fund the smallest requested amount returns the largest discount
// to the pool.
func (s *AuctionServiceImpl) GetBids(ctx context.Context, auctionID primitive.ObjectID) ([]*models.BidView, error) {
	if _, err := s.auctionRepo.FindByID(ctx, auctionID); err != nil {
		return nil, err
	}
	bids, err := s.bidRepo.FindByAuction(ctx, auctionID)
	if err != nil {
		return nil, err
	}

	views := make([]*models.BidView, 0, len(bids))
	for _, b := range bids {
		view := &models.BidView{Bid: *b}
		user, err := s.userRepo.FindByID(ctx, b.UserID)
		switch {
		case err == nil:
			view.MemberName = user.FullName()
		case !errs.IsKind(err, errs.KindNotFound):
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}

// CloseAuction settles an auction: it validates the winner's eligibility and
// the payout amount, then inside one atomic unit of work completes the
// auction, marks the winner's membership as paid out, and records the payout
// transaction. Any failure rolls the whole settlement back. A second close
// of the same auction fails the active->completed compare-and-set, so
// concurrent closes produce exactly one winner.
func (s *AuctionServiceImpl) CloseAuction(ctx context.Context, auctionID, winnerID primitive.ObjectID, winningAmount float64) (*models.Auction, error) {
	auction, err := s.auctionRepo.FindByID(ctx, auctionID)
	if err != nil {
		if errs.IsKind(err, errs.KindNotFound) {
			return nil, errs.NotFound("auction not found")
		}
		return nil, err
	}
	if auction.Status != models.AuctionStatusActive {
		return nil, errs.InvalidState("auction is already %s", auction.Status)
	}

	group, err := s.groupRepo.FindByID(ctx, auction.ChitGroupID)
	if err != nil {
		return nil, err
	}

	membership, err := s.membershipRepo.FindByGroupAndUser(ctx, auction.ChitGroupID, winnerID)
	if err != nil {
		if errs.IsKind(err, errs.KindNotFound) {
			return nil, errs.NotEligible("winner is not a member of this chit group")
		}
		return nil, err
	}

	if err := eligibility.CheckWinner(membership, auction, group, winningAmount); err != nil {
		return nil, err
	}

	closedAt := time.Now()
	err = s.uow.WithinTransaction(ctx, func(txCtx context.Context) error {
		completed, err := s.auctionRepo.CompleteIfActive(txCtx, auctionID, winnerID, winningAmount, closedAt)
		if err != nil {
			return err
		}
		if !completed {
			// Lost the close race; another admin settled this auction first.
			return errs.InvalidState("auction is already closed")
		}

		if err := s.membershipRepo.MarkReceived(txCtx, membership.ID, winningAmount, auction.Month, auction.Year); err != nil {
			return err
		}

		payout := &models.Transaction{
			ChitGroupID: auction.ChitGroupID,
			UserID:      winnerID,
			Type:        models.TransactionTypePayout,
			Amount:      winningAmount,
			Month:       auction.Month,
			Year:        auction.Year,
			Status:      models.TransactionStatusCompleted,
			Description: "Auction payout for " + group.Name,
		}
		return s.transactionRepo.Create(txCtx, payout)
	})
	if err != nil {
		slog.Error("auction close failed",
			"auctionId", auctionID.Hex(),
			"winnerId", winnerID.Hex(),
			"error", err,
		)
		return nil, err
	}

	auction.Status = models.AuctionStatusCompleted
	auction.WinnerID = winnerID
	auction.WinningBidAmount = winningAmount
	auction.ClosedAt = closedAt

	slog.Info("auction closed",
		"auctionId", auctionID.Hex(),
		"winnerId", winnerID.Hex(),
		"winningAmount", winningAmount,
	)
	return auction, nil
}

// CancelAuction moves a scheduled or active auction to cancelled
func (s *AuctionServiceImpl) CancelAuction(ctx context.Context, auctionID primitive.ObjectID) (*models.Auction, error) {
	auction, err := s.auctionRepo.FindByID(ctx, auctionID)
	if err != nil {
		return nil, err
	}
	if auction.IsTerminal() {
		return nil, errs.InvalidState("auction is already %s", auction.Status)
	}

	cancelled, err := s.auctionRepo.CancelIfOpen(ctx, auctionID)
	if err != nil {
		return nil, err
	}
	if !cancelled {
		return nil, errs.InvalidState("auction is already %s", auction.Status)
	}

	auction.Status = models.AuctionStatusCancelled
	slog.Info("auction cancelled", "auctionId", auctionID.Hex())
	return auction, nil
}

// GetAvailableAuctions lists the open auctions in groups where the member is
// active and has not yet received a payout
func (s *AuctionServiceImpl) GetAvailableAuctions(ctx context.Context, memberID primitive.ObjectID) ([]*models.Auction, error) {
	memberships, err := s.membershipRepo.FindActiveByUser(ctx, memberID)
	if err != nil {
		return nil, err
	}

	var groupIDs []primitive.ObjectID
	for _, m := range memberships {
		if !m.HasReceived {
			groupIDs = append(groupIDs, m.ChitGroupID)
		}
	}
	return s.auctionRepo.FindActiveByGroups(ctx, groupIDs)
}

// GetMemberBids returns a member's bid history
func (s *AuctionServiceImpl) GetMemberBids(ctx context.Context, memberID primitive.ObjectID) ([]*models.Bid, error) {
	return s.bidRepo.FindByUser(ctx, memberID)
}
