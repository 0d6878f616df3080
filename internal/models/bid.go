package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Bid is a member's offered amount for an auction. A member holds at most
// one bid per auction (unique index on auctionId, userId); placing a second
// bid overwrites the amount and bid time of the first.
type Bid struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	AuctionID primitive.ObjectID `bson:"auctionId" json:"auctionId"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	BidAmount float64            `bson:"bidAmount" json:"bidAmount"`
	BidTime   time.Time          `bson:"bidTime" json:"bidTime"`
}

// BidView is a bid joined with bidder identity for the admin bid listing.
type BidView struct {
	Bid        `bson:",inline"`
	MemberName string `bson:"memberName,omitempty" json:"memberName,omitempty"`
}
