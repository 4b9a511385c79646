package shared

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered marketplace user. AuctionIDs and BidIDs are
// denormalized back-references maintained incrementally alongside the
// authoritative Auction and Bid records, never derived on read.
type User struct {
	ID           uuid.UUID   `json:"id"`
	Email        string      `json:"email"`
	Name         string      `json:"name,omitempty"`
	PasswordHash string      `json:"-"`
	AuctionIDs   []uuid.UUID `json:"auctions"`
	BidIDs       []uuid.UUID `json:"bids"`
	CreatedAt    time.Time   `json:"created_at"`
}
