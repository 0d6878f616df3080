package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TransactionType classifies a financial record
type TransactionType string

const (
	TransactionTypeContribution TransactionType = "contribution"
	TransactionTypePayout       TransactionType = "payout"
	TransactionTypePenalty      TransactionType = "penalty"
	TransactionTypeRefund       TransactionType = "refund"
)

// TransactionStatus represents the settlement status of a transaction
type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusCompleted TransactionStatus = "completed"
	TransactionStatusFailed    TransactionStatus = "failed"
)

// Transaction is an immutable financial record tied to a member and a chit
// group. Payout transactions are written only by the auction settlement;
// once created, a transaction is never mutated except its status by an
// admin override.
type Transaction struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	ChitGroupID primitive.ObjectID `bson:"chitGroupId" json:"chitGroupId"`
	UserID      primitive.ObjectID `bson:"userId" json:"userId"`
	Type        TransactionType    `bson:"type" json:"type"`
	Amount      float64            `bson:"amount" json:"amount"`
	Month       int                `bson:"month" json:"month"`
	Year        int                `bson:"year" json:"year"`
	Status      TransactionStatus  `bson:"status" json:"status"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}
