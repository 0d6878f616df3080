package services

import (
	"context"
	"log/slog"

	"github.com/VishwaPriyan-S/ChitFunds/internal/errs"
	"github.com/VishwaPriyan-S/ChitFunds/internal/models"
	"github.com/VishwaPriyan-S/ChitFunds/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Compile-time check to ensure UserServiceImpl implements UserService
var _ UserService = (*UserServiceImpl)(nil)

// UserServiceImpl handles member profiles and the admin approval workflow
type UserServiceImpl struct {
	userRepo       repositories.UserRepository
	membershipRepo repositories.MembershipRepository
}

// NewUserService creates a new UserServiceImpl
func NewUserService(userRepo repositories.UserRepository, membershipRepo repositories.MembershipRepository) *UserServiceImpl {
	return &UserServiceImpl{userRepo: userRepo, membershipRepo: membershipRepo}
}

// GetMembers lists member accounts, optionally filtered by status
func (s *UserServiceImpl) GetMembers(ctx context.Context, status models.UserStatus, page, limit int) ([]*models.User, *models.Pagination, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	members, total, err := s.userRepo.FindMembers(ctx, status, page, limit)
	if err != nil {
		return nil, nil, err
	}
	return members, paginate(page, limit, total), nil
}

// GetProfile retrieves a user's profile
func (s *UserServiceImpl) GetProfile(ctx context.Context, userID primitive.ObjectID) (*models.User, error) {
	return s.userRepo.FindByID(ctx, userID)
}

// UpdateProfile updates the fields a member may edit on their own account
func (s *UserServiceImpl) UpdateProfile(ctx context.Context, userID primitive.ObjectID, firstName, lastName, phone, address string) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if firstName != "" {
		user.FirstName = firstName
	}
	if lastName != "" {
		user.LastName = lastName
	}
	if phone != "" {
		user.Phone = phone
	}
	if address != "" {
		user.Address = address
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ApproveMember moves a pending member to approved
func (s *UserServiceImpl) ApproveMember(ctx context.Context, memberID primitive.ObjectID) (*models.User, error) {
	return s.setMemberStatus(ctx, memberID, models.UserStatusApproved)
}

// RejectMember moves a pending member to rejected
func (s *UserServiceImpl) RejectMember(ctx context.Context, memberID primitive.ObjectID) (*models.User, error) {
	return s.setMemberStatus(ctx, memberID, models.UserStatusRejected)
}

func (s *UserServiceImpl) setMemberStatus(ctx context.Context, memberID primitive.ObjectID, status models.UserStatus) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, memberID)
	if err != nil {
		if errs.IsKind(err, errs.KindNotFound) {
			return nil, errs.NotFound("member not found")
		}
		return nil, err
	}
	if user.Role != models.RoleMember {
		return nil, errs.InvalidState("user is not a member account")
	}
	if user.Status != models.UserStatusPending {
		return nil, errs.InvalidState("member is already %s", user.Status)
	}

	if err := s.userRepo.UpdateStatus(ctx, memberID, status); err != nil {
		return nil, err
	}
	user.Status = status

	slog.Info("member status changed", "memberId", memberID.Hex(), "status", status)
	return user, nil
}

// DeleteMember removes a member account. Members still active in a chit
// group must be withdrawn from it first.
func (s *UserServiceImpl) DeleteMember(ctx context.Context, memberID primitive.ObjectID) error {
	user, err := s.userRepo.FindByID(ctx, memberID)
	if err != nil {
		if errs.IsKind(err, errs.KindNotFound) {
			return errs.NotFound("member not found")
		}
		return err
	}
	if user.Role != models.RoleMember {
		return errs.InvalidState("user is not a member account")
	}

	active, err := s.membershipRepo.CountActiveByUser(ctx, memberID)
	if err != nil {
		return err
	}
	if active > 0 {
		return errs.InvalidState("member has %d active chit membership(s)", active)
	}

	if err := s.userRepo.Delete(ctx, memberID); err != nil {
		return err
	}

	slog.Info("member deleted", "memberId", memberID.Hex())
	return nil
}

// paginate builds the pagination envelope for a page of results
func paginate(page, limit int, total int64) *models.Pagination {
	pages := int(total / int64(limit))
	if total%int64(limit) != 0 {
		pages++
	}
	return &models.Pagination{
		CurrentPage:  page,
		TotalPages:   pages,
		TotalItems:   total,
		ItemsPerPage: limit,
	}
}
