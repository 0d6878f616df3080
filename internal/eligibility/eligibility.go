// Package eligibility holds the pure decision rules for who may bid in or
// win an auction. Functions here have no side effects and touch no storage;
// callers load the records and pass snapshots in.
package eligibility

import (
	"github.com/VishwaPriyan-S/ChitFunds/internal/errs"
	"github.com/VishwaPriyan-S/ChitFunds/internal/models"
)

// CheckMember verifies that a membership may participate in the auction's
// payout: the membership must be active and must not have received a payout
// in this group yet, and the auction must be open for bidding.
func CheckMember(membership *models.Membership, auction *models.Auction) error {
	if membership == nil {
		return errs.NotEligible("no membership in this chit group")
	}
	if membership.Status != models.MembershipStatusActive {
		return errs.NotEligible("membership is %s, not active", membership.Status)
	}
	if membership.HasReceived {
		return errs.NotEligible("member has already received a payout in this group")
	}
	if auction.Status != models.AuctionStatusActive {
		return errs.InvalidState("auction is %s, not open", auction.Status)
	}
	return nil
}

// CheckAmount verifies that a bid or payout amount lies in
// (0, group.TotalAmount]. The boundary at exactly TotalAmount is allowed.
func CheckAmount(amount, groupTotal float64) error {
	if amount <= 0 {
		return errs.InvalidAmount("amount must be positive")
	}
	if amount > groupTotal {
		return errs.InvalidAmount("amount %.2f exceeds chit total amount %.2f", amount, groupTotal)
	}
	return nil
}

// CheckBid combines the member and amount rules for a bid placement.
func CheckBid(membership *models.Membership, auction *models.Auction, group *models.ChitGroup, amount float64) error {
	if err := CheckMember(membership, auction); err != nil {
		return err
	}
	return CheckAmount(amount, group.TotalAmount)
}

// CheckWinner combines the member and amount rules for declaring a winner
// at auction close.
func CheckWinner(membership *models.Membership, auction *models.Auction, group *models.ChitGroup, winningAmount float64) error {
	if err := CheckMember(membership, auction); err != nil {
		return err
	}
	return CheckAmount(winningAmount, group.TotalAmount)
}
