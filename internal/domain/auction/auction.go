package auction

import (
	"time"

	"auction-marketplace-service/internal/domain/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status represents the lifecycle stage of an auction
type Status string

const (
	StatusEntry  Status = "entry"
	StatusOpen   Status = "open"
	StatusClosed Status = "closed"
)

// Auction represents a timed auction for an item. BidIDs holds the bid
// references in insertion order; HighestAmount duplicates the amount of the
// highest bid so admission checks are a single conditional store update.
type Auction struct {
	ID            uuid.UUID        `json:"id"`
	CreatedBy     uuid.UUID        `json:"by"`
	ItemID        uuid.UUID        `json:"item"`
	StartBid      decimal.Decimal  `json:"start_bid"`
	BidIDs        []uuid.UUID      `json:"bids"`
	HighestBidID  *uuid.UUID       `json:"highest_bid,omitempty"`
	HighestAmount *decimal.Decimal `json:"highest_amount,omitempty"`
	StartDate     shared.Date      `json:"start_date"`
	EndDate       shared.Date      `json:"end_date"`
	Status        Status           `json:"status"`
	WinnerID      *uuid.UUID       `json:"winner,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
}

// StatusAt computes the creation status for a start date: open when the
// auction starts on the given day, entry when it starts later.
func StatusAt(startDate, today shared.Date) Status {
	if startDate.Equal(today) {
		return StatusOpen
	}
	return StatusEntry
}

// CanBid returns true if a bid can be placed on this auction
func (a *Auction) CanBid() bool {
	return a.Status == StatusOpen
}

// IsClosed returns true if the auction reached its terminal state
func (a *Auction) IsClosed() bool {
	return a.Status == StatusClosed
}

// HasBids returns true once at least one bid has been admitted
func (a *Auction) HasBids() bool {
	return len(a.BidIDs) > 0
}

// Admits reports whether an amount would currently be admitted: at least the
// starting bid, and strictly above the highest bid once one exists. Ties at
// the highest amount always lose, so the earlier bid keeps priority.
func (a *Auction) Admits(amount decimal.Decimal) bool {
	if amount.LessThan(a.StartBid) {
		return false
	}
	if a.HighestAmount != nil && !amount.GreaterThan(*a.HighestAmount) {
		return false
	}
	return true
}
