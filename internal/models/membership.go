package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MembershipStatus represents a member's standing within a chit group
type MembershipStatus string

const (
	MembershipStatusActive    MembershipStatus = "active"
	MembershipStatusWithdrawn MembershipStatus = "withdrawn"
	MembershipStatusRemoved   MembershipStatus = "removed"
)

// Membership links a user to a chit group and tracks whether they have
// already received a payout in this group's lifetime. A user has at most one
// membership per group; this is enforced by a unique index on
// (chitGroupId, userId).
type Membership struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	ChitGroupID    primitive.ObjectID `bson:"chitGroupId" json:"chitGroupId"`
	UserID         primitive.ObjectID `bson:"userId" json:"userId"`
	JoinedDate     time.Time          `bson:"joinedDate" json:"joinedDate"`
	Status         MembershipStatus   `bson:"status" json:"status"`
	HasReceived    bool               `bson:"hasReceived" json:"hasReceived"`
	ReceivedAmount float64            `bson:"receivedAmount" json:"receivedAmount"`
	ReceivedMonth  int                `bson:"receivedMonth" json:"receivedMonth"`
	ReceivedYear   int                `bson:"receivedYear" json:"receivedYear"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// MemberGroup is a membership joined with its group, as shown on the member
// dashboard.
type MemberGroup struct {
	Group      ChitGroup  `bson:"group" json:"group"`
	Membership Membership `bson:"membership" json:"membership"`
}

// GroupMember is a membership joined with member identity for the admin
// group roster.
type GroupMember struct {
	Membership `bson:",inline"`
	MemberName string `bson:"memberName,omitempty" json:"memberName,omitempty"`
	Email      string `bson:"email,omitempty" json:"email,omitempty"`
}
