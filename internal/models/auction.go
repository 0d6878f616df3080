package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AuctionStatus represents the lifecycle status of an auction.
// Transitions only move forward: scheduled -> active -> completed, with
// cancelled reachable from scheduled or active. completed and cancelled are
// terminal.
type AuctionStatus string

const (
	AuctionStatusScheduled AuctionStatus = "scheduled"
	AuctionStatusActive    AuctionStatus = "active"
	AuctionStatusCompleted AuctionStatus = "completed"
	AuctionStatusCancelled AuctionStatus = "cancelled"
)

// Auction represents the monthly bidding event of a chit group. There is at
// most one auction per (chitGroupId, month, year), enforced by a unique
// index.
type Auction struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	ChitGroupID      primitive.ObjectID `bson:"chitGroupId" json:"chitGroupId"`
	Month            int                `bson:"month" json:"month"`
	Year             int                `bson:"year" json:"year"`
	MinBidAmount     float64            `bson:"minBidAmount" json:"minBidAmount"`
	WinningBidAmount float64            `bson:"winningBidAmount,omitempty" json:"winningBidAmount,omitempty"`
	WinnerID         primitive.ObjectID `bson:"winnerId,omitempty" json:"winnerId,omitempty"`
	Status           AuctionStatus      `bson:"status" json:"status"`
	AuctionDate      time.Time          `bson:"auctionDate" json:"auctionDate"`
	ClosedAt         time.Time          `bson:"closedAt,omitempty" json:"closedAt,omitempty"`
	CreatedAt        time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// IsTerminal reports whether the auction can no longer change state.
func (a *Auction) IsTerminal() bool {
	return a.Status == AuctionStatusCompleted || a.Status == AuctionStatusCancelled
}
