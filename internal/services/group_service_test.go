package services

import (
	"context"
	"testing"

	"github.com/VishwaPriyan-S/ChitFunds/internal/errs"
	"github.com/VishwaPriyan-S/ChitFunds/internal/models"
	"github.com/peterldowns/testy/check"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCreateGroup(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	admin := primitive.NewObjectID()

	group, err := f.groupSvc.CreateGroup(ctx, &CreateGroupRequest{
		Name:         "Family Chit",
		TotalAmount:  120000,
		Duration:     12,
		TotalMembers: 12,
	}, admin)
	check.Nil(t, err)
	check.Equal(t, models.GroupStatusActive, group.Status)
	check.Equal(t, 10000.0, group.MonthlyContribution)
	check.Equal(t, admin, group.CreatedBy)
}

func TestCreateGroup_Validation(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	admin := primitive.NewObjectID()

	_, err := f.groupSvc.CreateGroup(ctx, &CreateGroupRequest{Name: "x", TotalAmount: 0, Duration: 12, TotalMembers: 12}, admin)
	check.True(t, errs.IsKind(err, errs.KindInvalidAmount))

	_, err = f.groupSvc.CreateGroup(ctx, &CreateGroupRequest{Name: "x", TotalAmount: 1000, Duration: 12, TotalMembers: 1}, admin)
	check.True(t, errs.IsKind(err, errs.KindInvalidAmount))

	_, err = f.groupSvc.CreateGroup(ctx, &CreateGroupRequest{Name: "x", TotalAmount: 1000, Duration: 0, TotalMembers: 5}, admin)
	check.True(t, errs.IsKind(err, errs.KindInvalidAmount))
}

func TestUpdateGroup_Status(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	group := f.seedGroup(100000, 10)

	updated, err := f.groupSvc.UpdateGroup(ctx, group.ID, "", models.GroupStatusSuspended)
	check.Nil(t, err)
	check.Equal(t, models.GroupStatusSuspended, updated.Status)

	_, err = f.groupSvc.UpdateGroup(ctx, group.ID, "", models.GroupStatus("frozen"))
	check.True(t, errs.IsKind(err, errs.KindInvalidState))
}

func TestAddMember(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	group := f.seedGroup(100000, 10)
	member := f.seedMember("a@example.com")

	m, err := f.groupSvc.AddMember(ctx, group.ID, member.ID)
	check.Nil(t, err)
	check.Equal(t, models.MembershipStatusActive, m.Status)
	check.False(t, m.HasReceived)
}

func TestAddMember_Duplicate(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	group := f.seedGroup(100000, 10)
	member := f.seedMember("a@example.com")

	_, err := f.groupSvc.AddMember(ctx, group.ID, member.ID)
	check.Nil(t, err)

	_, err = f.groupSvc.AddMember(ctx, group.ID, member.ID)
	check.True(t, errs.IsKind(err, errs.KindConflict))
}

func TestAddMember_GroupFull(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	group := f.seedGroup(20000, 2)
	a := f.seedMember("a@example.com")
	b := f.seedMember("b@example.com")
	c := f.seedMember("c@example.com")

	_, err := f.groupSvc.AddMember(ctx, group.ID, a.ID)
	check.Nil(t, err)
	_, err = f.groupSvc.AddMember(ctx, group.ID, b.ID)
	check.Nil(t, err)

	_, err = f.groupSvc.AddMember(ctx, group.ID, c.ID)
	check.True(t, errs.IsKind(err, errs.KindInvalidState))
}

func TestAddMember_UnapprovedMember(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	group := f.seedGroup(100000, 10)

	pending := f.seedMember("p@example.com")
	check.Nil(t, f.users.UpdateStatus(ctx, pending.ID, models.UserStatusPending))

	_, err := f.groupSvc.AddMember(ctx, group.ID, pending.ID)
	check.True(t, errs.IsKind(err, errs.KindNotEligible))
}

func TestAddMember_InactiveGroup(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	group := f.seedGroup(100000, 10)
	group.Status = models.GroupStatusCompleted
	check.Nil(t, f.groups.Update(ctx, group))
	member := f.seedMember("a@example.com")

	_, err := f.groupSvc.AddMember(ctx, group.ID, member.ID)
	check.True(t, errs.IsKind(err, errs.KindInvalidState))
}

func TestGetGroupMembers(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	group := f.seedGroup(100000, 10)
	a := f.seedMember("a@example.com")
	b := f.seedMember("b@example.com")
	f.seedMembership(group.ID, a.ID)
	f.seedMembership(group.ID, b.ID)

	roster, err := f.groupSvc.GetGroupMembers(ctx, group.ID)
	check.Nil(t, err)
	check.Equal(t, 2, len(roster))
	for _, entry := range roster {
		check.Equal(t, "Test Member", entry.MemberName)
		check.NotEqual(t, "", entry.Email)
	}

	_, err = f.groupSvc.GetGroupMembers(ctx, primitive.NewObjectID())
	check.True(t, errs.IsKind(err, errs.KindNotFound))
}

func TestRemoveMember(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	group := f.seedGroup(100000, 10)
	member := f.seedMember("a@example.com")
	f.seedMembership(group.ID, member.ID)

	check.Nil(t, f.groupSvc.RemoveMember(ctx, group.ID, member.ID))

	m, err := f.memberships.FindByGroupAndUser(ctx, group.ID, member.ID)
	check.Nil(t, err)
	check.Equal(t, models.MembershipStatusRemoved, m.Status)

	count, err := f.memberships.CountActiveByGroup(ctx, group.ID)
	check.Nil(t, err)
	check.Equal(t, int64(0), count)

	// Removal is not repeatable
	err = f.groupSvc.RemoveMember(ctx, group.ID, member.ID)
	check.True(t, errs.IsKind(err, errs.KindInvalidState))
}

func TestRemoveMember_AfterPayout(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	group := f.seedGroup(100000, 10)
	member := f.seedMember("a@example.com")
	m := f.seedMembership(group.ID, member.ID)
	check.Nil(t, f.memberships.MarkReceived(ctx, m.ID, 90000, 2, 2026))

	err := f.groupSvc.RemoveMember(ctx, group.ID, member.ID)
	check.True(t, errs.IsKind(err, errs.KindInvalidState))
}

func TestGetMemberGroups(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	g1 := f.seedGroup(100000, 10)
	g2 := f.seedGroup(50000, 5)
	member := f.seedMember("a@example.com")
	f.seedMembership(g1.ID, member.ID)
	m2 := f.seedMembership(g2.ID, member.ID)
	check.Nil(t, f.memberships.UpdateStatus(ctx, m2.ID, models.MembershipStatusWithdrawn))

	groups, err := f.groupSvc.GetMemberGroups(ctx, member.ID)
	check.Nil(t, err)
	check.Equal(t, 1, len(groups))
	check.Equal(t, g1.ID, groups[0].Group.ID)
}
