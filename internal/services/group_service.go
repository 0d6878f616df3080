package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/VishwaPriyan-S/ChitFunds/internal/errs"
	"github.com/VishwaPriyan-S/ChitFunds/internal/models"
	"github.com/VishwaPriyan-S/ChitFunds/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Compile-time check to ensure GroupServiceImpl implements GroupService
var _ GroupService = (*GroupServiceImpl)(nil)

// GroupServiceImpl handles chit group management and enrollment
type GroupServiceImpl struct {
	groupRepo      repositories.GroupRepository
	membershipRepo repositories.MembershipRepository
	userRepo       repositories.UserRepository
}

// NewGroupService creates a new GroupServiceImpl
func NewGroupService(
	groupRepo repositories.GroupRepository,
	membershipRepo repositories.MembershipRepository,
	userRepo repositories.UserRepository,
) *GroupServiceImpl {
	return &GroupServiceImpl{
		groupRepo:      groupRepo,
		membershipRepo: membershipRepo,
		userRepo:       userRepo,
	}
}

// CreateGroup creates a new chit group. The monthly contribution is derived
// from the total amount split evenly across the member slots, and the end
// date from the start date plus the duration in months.
func (s *GroupServiceImpl) CreateGroup(ctx context.Context, req *CreateGroupRequest, createdBy primitive.ObjectID) (*models.ChitGroup, error) {
	if req.TotalAmount <= 0 {
		return nil, errs.InvalidAmount("total amount must be positive")
	}
	if req.TotalMembers < 2 {
		return nil, errs.InvalidAmount("a chit group needs at least 2 member slots")
	}
	if req.Duration < 1 {
		return nil, errs.InvalidAmount("duration must be at least 1 month")
	}

	start := time.Now()
	group := &models.ChitGroup{
		Name:                req.Name,
		Description:         req.Description,
		TotalAmount:         req.TotalAmount,
		MonthlyContribution: req.TotalAmount / float64(req.TotalMembers),
		Duration:            req.Duration,
		TotalMembers:        req.TotalMembers,
		Status:              models.GroupStatusActive,
		StartDate:           start,
		EndDate:             start.AddDate(0, req.Duration, 0),
		CreatedBy:           createdBy,
	}
	if err := s.groupRepo.Create(ctx, group); err != nil {
		return nil, err
	}

	slog.Info("chit group created",
		"groupId", group.ID.Hex(),
		"name", group.Name,
		"totalAmount", group.TotalAmount,
		"totalMembers", group.TotalMembers,
	)
	return group, nil
}

// UpdateGroup renames a group or moves it between statuses
func (s *GroupServiceImpl) UpdateGroup(ctx context.Context, groupID primitive.ObjectID, name string, status models.GroupStatus) (*models.ChitGroup, error) {
	group, err := s.groupRepo.FindByID(ctx, groupID)
	if err != nil {
		if errs.IsKind(err, errs.KindNotFound) {
			return nil, errs.NotFound("chit group not found")
		}
		return nil, err
	}

	if name != "" {
		group.Name = name
	}
	if status != "" {
		switch status {
		case models.GroupStatusActive, models.GroupStatusCompleted, models.GroupStatusSuspended:
			group.Status = status
		default:
			return nil, errs.InvalidState("unknown group status %q", status)
		}
	}

	if err := s.groupRepo.Update(ctx, group); err != nil {
		return nil, err
	}
	return group, nil
}

// GetGroups lists all groups with their current member counts
func (s *GroupServiceImpl) GetGroups(ctx context.Context) ([]*models.GroupSummary, error) {
	return s.groupRepo.FindAllWithMemberCounts(ctx)
}

// AddMember enrolls an approved member into an active group. Each user may
// hold at most one membership per group, and enrollment stops once the
// group's member slots are filled.
func (s *GroupServiceImpl) AddMember(ctx context.Context, groupID, userID primitive.ObjectID) (*models.Membership, error) {
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

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errs.IsKind(err, errs.KindNotFound) {
			return nil, errs.NotFound("member not found")
		}
		return nil, err
	}
	if user.Role != models.RoleMember {
		return nil, errs.NotEligible("only member accounts can join a chit group")
	}
	if user.Status != models.UserStatusApproved {
		return nil, errs.NotEligible("member is %s, not approved", user.Status)
	}

	if _, err := s.membershipRepo.FindByGroupAndUser(ctx, groupID, userID); err == nil {
		return nil, errs.Conflict("member already belongs to this chit group")
	} else if !errs.IsKind(err, errs.KindNotFound) {
		return nil, err
	}

	count, err := s.membershipRepo.CountActiveByGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if count >= int64(group.TotalMembers) {
		return nil, errs.InvalidState("chit group is full (%d members)", group.TotalMembers)
	}

	membership := &models.Membership{
		ChitGroupID: groupID,
		UserID:      userID,
		JoinedDate:  time.Now(),
		Status:      models.MembershipStatusActive,
	}
	// The unique (group, user) index backstops the duplicate check above
	// against a concurrent enroll.
	if err := s.membershipRepo.Create(ctx, membership); err != nil {
		return nil, err
	}

	slog.Info("member joined group",
		"groupId", groupID.Hex(),
		"memberId", userID.Hex(),
	)
	return membership, nil
}

// GetGroupMembers returns a group's full roster, each membership joined with
// the member's name and email
func (s *GroupServiceImpl) GetGroupMembers(ctx context.Context, groupID primitive.ObjectID) ([]*models.GroupMember, error) {
	if _, err := s.groupRepo.FindByID(ctx, groupID); err != nil {
		if errs.IsKind(err, errs.KindNotFound) {
			return nil, errs.NotFound("chit group not found")
		}
		return nil, err
	}

	memberships, err := s.membershipRepo.FindByGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}

	roster := make([]*models.GroupMember, 0, len(memberships))
	for _, m := range memberships {
		entry := &models.GroupMember{Membership: *m}
		user, err := s.userRepo.FindByID(ctx, m.UserID)
		switch {
		case err == nil:
			entry.MemberName = user.FullName()
			entry.Email = user.Email
		case !errs.IsKind(err, errs.KindNotFound):
			return nil, err
		}
		roster = append(roster, entry)
	}
	return roster, nil
}

// RemoveMember marks a member's active membership as removed. Members who
// already received a payout owe contributions for the remaining cycles and
// cannot be removed.
func (s *GroupServiceImpl) RemoveMember(ctx context.Context, groupID, userID primitive.ObjectID) error {
	membership, err := s.membershipRepo.FindByGroupAndUser(ctx, groupID, userID)
	if err != nil {
		if errs.IsKind(err, errs.KindNotFound) {
			return errs.NotFound("membership not found")
		}
		return err
	}
	if membership.Status != models.MembershipStatusActive {
		return errs.InvalidState("membership is already %s", membership.Status)
	}
	if membership.HasReceived {
		return errs.InvalidState("member has already received a payout and cannot be removed")
	}

	if err := s.membershipRepo.UpdateStatus(ctx, membership.ID, models.MembershipStatusRemoved); err != nil {
		return err
	}

	slog.Info("member removed from group",
		"groupId", groupID.Hex(),
		"memberId", userID.Hex(),
	)
	return nil
}

// GetMemberGroups returns the groups a member actively participates in,
// each paired with the membership record
func (s *GroupServiceImpl) GetMemberGroups(ctx context.Context, userID primitive.ObjectID) ([]*models.MemberGroup, error) {
	memberships, err := s.membershipRepo.FindActiveByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(memberships) == 0 {
		return []*models.MemberGroup{}, nil
	}

	ids := make([]primitive.ObjectID, 0, len(memberships))
	for _, m := range memberships {
		ids = append(ids, m.ChitGroupID)
	}
	groups, err := s.groupRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[primitive.ObjectID]*models.ChitGroup, len(groups))
	for _, g := range groups {
		byID[g.ID] = g
	}

	out := make([]*models.MemberGroup, 0, len(memberships))
	for _, m := range memberships {
		g, ok := byID[m.ChitGroupID]
		if !ok {
			continue
		}
		out = append(out, &models.MemberGroup{Group: *g, Membership: *m})
	}
	return out, nil
}
