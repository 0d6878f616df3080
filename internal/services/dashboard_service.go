package services

import (
	"context"
	"log/slog"

	"github.com/VishwaPriyan-S/ChitFunds/internal/errs"
	"github.com/VishwaPriyan-S/ChitFunds/internal/models"
	"github.com/VishwaPriyan-S/ChitFunds/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Compile-time check to ensure DashboardServiceImpl implements DashboardService
var _ DashboardService = (*DashboardServiceImpl)(nil)

// DashboardServiceImpl builds the read-only rollups and handles the
// transaction bookkeeping that happens outside the settlement engine.
type DashboardServiceImpl struct {
	userRepo        repositories.UserRepository
	groupRepo       repositories.GroupRepository
	membershipRepo  repositories.MembershipRepository
	transactionRepo repositories.TransactionRepository
}

// NewDashboardService creates a new DashboardServiceImpl
func NewDashboardService(
	userRepo repositories.UserRepository,
	groupRepo repositories.GroupRepository,
	membershipRepo repositories.MembershipRepository,
	transactionRepo repositories.TransactionRepository,
) *DashboardServiceImpl {
	return &DashboardServiceImpl{
		userRepo:        userRepo,
		groupRepo:       groupRepo,
		membershipRepo:  membershipRepo,
		transactionRepo: transactionRepo,
	}
}

// AdminStats builds the admin dashboard rollup
func (s *DashboardServiceImpl) AdminStats(ctx context.Context) (*models.AdminDashboardStats, error) {
	total, err := s.userRepo.CountMembers(ctx, "")
	if err != nil {
		return nil, err
	}
	approved, err := s.userRepo.CountMembers(ctx, models.UserStatusApproved)
	if err != nil {
		return nil, err
	}
	pending, err := s.userRepo.CountMembers(ctx, models.UserStatusPending)
	if err != nil {
		return nil, err
	}
	activeGroups, err := s.groupRepo.CountByStatus(ctx, models.GroupStatusActive)
	if err != nil {
		return nil, err
	}
	volume, err := s.transactionRepo.SumCompleted(ctx)
	if err != nil {
		return nil, err
	}
	recent, err := s.userRepo.FindRecentMembers(ctx, 5)
	if err != nil {
		return nil, err
	}

	return &models.AdminDashboardStats{
		TotalMembers:            total,
		ApprovedMembers:         approved,
		PendingMembers:          pending,
		ActiveChitGroups:        activeGroups,
		TotalTransactionsAmount: volume,
		RecentMembers:           recent,
	}, nil
}

// MemberStats builds a member's dashboard rollup: how much they have paid
// in, received back, and still owe across their active groups.
func (s *DashboardServiceImpl) MemberStats(ctx context.Context, userID primitive.ObjectID) (*models.MemberDashboardStats, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	activeGroups, err := s.membershipRepo.CountActiveByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	contributed, err := s.transactionRepo.SumAmounts(ctx, userID, models.TransactionTypeContribution, models.TransactionStatusCompleted)
	if err != nil {
		return nil, err
	}
	received, err := s.transactionRepo.SumAmounts(ctx, userID, models.TransactionTypePayout, models.TransactionStatusCompleted)
	if err != nil {
		return nil, err
	}
	pending, err := s.transactionRepo.SumAmounts(ctx, userID, models.TransactionTypeContribution, models.TransactionStatusPending)
	if err != nil {
		return nil, err
	}

	return &models.MemberDashboardStats{
		ActiveChitGroups: activeGroups,
		TotalContributed: contributed,
		TotalReceived:    received,
		PendingPayments:  pending,
		AccountStatus:    user.Status,
	}, nil
}

// GetTransactions lists all transactions, newest first
func (s *DashboardServiceImpl) GetTransactions(ctx context.Context, page, limit int) ([]*models.Transaction, *models.Pagination, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	txns, total, err := s.transactionRepo.FindAll(ctx, page, limit)
	if err != nil {
		return nil, nil, err
	}
	return txns, paginate(page, limit, total), nil
}

// GetMemberTransactions lists a member's transactions, newest first
func (s *DashboardServiceImpl) GetMemberTransactions(ctx context.Context, userID primitive.ObjectID, page, limit int) ([]*models.Transaction, *models.Pagination, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	txns, total, err := s.transactionRepo.FindByUser(ctx, userID, page, limit)
	if err != nil {
		return nil, nil, err
	}
	return txns, paginate(page, limit, total), nil
}

// RecordContribution books a member's monthly contribution for a group
func (s *DashboardServiceImpl) RecordContribution(ctx context.Context, groupID, userID primitive.ObjectID, amount float64, month, year int) (*models.Transaction, error) {
	if amount <= 0 {
		return nil, errs.InvalidAmount("contribution amount must be positive")
	}
	if month < 1 || month > 12 {
		return nil, errs.InvalidAmount("month must be between 1 and 12")
	}

	group, err := s.groupRepo.FindByID(ctx, groupID)
	if err != nil {
		if errs.IsKind(err, errs.KindNotFound) {
			return nil, errs.NotFound("chit group not found")
		}
		return nil, err
	}

	membership, err := s.membershipRepo.FindByGroupAndUser(ctx, groupID, userID)
	if err != nil {
		if errs.IsKind(err, errs.KindNotFound) {
			return nil, errs.NotEligible("user is not a member of this chit group")
		}
		return nil, err
	}
	if membership.Status != models.MembershipStatusActive {
		return nil, errs.NotEligible("membership is %s, not active", membership.Status)
	}

	txn := &models.Transaction{
		ChitGroupID: groupID,
		UserID:      userID,
		Type:        models.TransactionTypeContribution,
		Amount:      amount,
		Month:       month,
		Year:        year,
		Status:      models.TransactionStatusCompleted,
		Description: "Monthly contribution for " + group.Name,
	}
	if err := s.transactionRepo.Create(ctx, txn); err != nil {
		return nil, err
	}

	slog.Info("contribution recorded",
		"groupId", groupID.Hex(),
		"memberId", userID.Hex(),
		"amount", amount,
		"month", month,
		"year", year,
	)
	return txn, nil
}

// OverrideTransactionStatus is the single permitted mutation of a
// transaction record: an admin moving it between pending, completed and
// failed.
func (s *DashboardServiceImpl) OverrideTransactionStatus(ctx context.Context, txnID primitive.ObjectID, status models.TransactionStatus) error {
	switch status {
	case models.TransactionStatusPending, models.TransactionStatusCompleted, models.TransactionStatusFailed:
	default:
		return errs.InvalidState("unknown transaction status %q", status)
	}

	if _, err := s.transactionRepo.FindByID(ctx, txnID); err != nil {
		if errs.IsKind(err, errs.KindNotFound) {
			return errs.NotFound("transaction not found")
		}
		return err
	}

	if err := s.transactionRepo.UpdateStatus(ctx, txnID, status); err != nil {
		return err
	}

	slog.Info("transaction status overridden", "transactionId", txnID.Hex(), "status", status)
	return nil
}
