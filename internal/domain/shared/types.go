package shared

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CloseCandidate is one row of a close-sweep batch: an open auction past its
// end date joined with its highest bid, if any.
type CloseCandidate struct {
	AuctionID     uuid.UUID
	ItemID        uuid.UUID
	WinnerID      *uuid.UUID
	WinningAmount *decimal.Decimal
}

// OwnerTransfer moves ownership of an item to the winning bidder at close.
type OwnerTransfer struct {
	ItemID   uuid.UUID
	NewOwner uuid.UUID
}

// SweepResult summarises one lifecycle sweep run.
type SweepResult struct {
	Opened      int64
	Closed      int
	Transferred int
	Batches     int
}
