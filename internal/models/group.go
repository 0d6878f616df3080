package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GroupStatus represents the lifecycle status of a chit group
type GroupStatus string

const (
	GroupStatusActive    GroupStatus = "active"
	GroupStatusCompleted GroupStatus = "completed"
	GroupStatusSuspended GroupStatus = "suspended"
)

// ChitGroup represents one chit fund: a fixed pool of money contributed
// monthly by a fixed set of members over a fixed number of cycles.
type ChitGroup struct {
	ID                  primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name                string             `bson:"name" json:"name"`
	Description         string             `bson:"description,omitempty" json:"description,omitempty"`
	TotalAmount         float64            `bson:"totalAmount" json:"totalAmount"`
	MonthlyContribution float64            `bson:"monthlyContribution" json:"monthlyContribution"`
	Duration            int                `bson:"duration" json:"duration"` // in months
	TotalMembers        int                `bson:"totalMembers" json:"totalMembers"`
	Status              GroupStatus        `bson:"status" json:"status"`
	StartDate           time.Time          `bson:"startDate,omitempty" json:"startDate,omitempty"`
	EndDate             time.Time          `bson:"endDate,omitempty" json:"endDate,omitempty"`
	CreatedBy           primitive.ObjectID `bson:"createdBy,omitempty" json:"createdBy,omitempty"`
	CreatedAt           time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt           time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// GroupSummary is a ChitGroup joined with its live member count, as listed
// on the admin dashboard.
type GroupSummary struct {
	ChitGroup      `bson:",inline"`
	CurrentMembers int64 `bson:"currentMembers" json:"currentMembers"`
}
