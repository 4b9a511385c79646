package bid

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Bid represents an admitted bid on an auction. Bids are append-only: once
// created they are never edited or deleted.
type Bid struct {
	ID        uuid.UUID       `json:"id"`
	AuctionID uuid.UUID       `json:"for_auction"`
	UserID    uuid.UUID       `json:"by_user"`
	Amount    decimal.Decimal `json:"amount"`
	CreatedAt time.Time       `json:"created_at"`
}

// IsValid returns true if the bid amount is valid (greater than 0)
func (b *Bid) IsValid() bool {
	return b.Amount.IsPositive()
}
