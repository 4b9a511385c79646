package auction

import (
	"auction-marketplace-service/internal/domain/bid"
	"auction-marketplace-service/internal/domain/item"
)

// Expanded is an auction with its referenced records joined in, for the
// expanded read path.
type Expanded struct {
	Auction
	Item       *item.Item `json:"item_details,omitempty"`
	Bids       []*bid.Bid `json:"bid_details,omitempty"`
	HighestBid *bid.Bid   `json:"highest_bid_details,omitempty"`
}
