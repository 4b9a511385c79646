package outbound

import (
	"context"

	"auction-marketplace-service/internal/domain/auction"
	"auction-marketplace-service/internal/domain/bid"
	"auction-marketplace-service/internal/domain/item"
	"auction-marketplace-service/internal/domain/shared"

	"github.com/google/uuid"
)

// AuctionRepository defines the interface for auction data operations
type AuctionRepository interface {
	// Create creates a new auction
	Create(ctx context.Context, auction *auction.Auction) error

	// GetByID retrieves an auction by ID
	GetByID(ctx context.Context, id uuid.UUID) (*auction.Auction, error)

	// GetExpanded retrieves an auction with its item, bids and highest bid joined in
	GetExpanded(ctx context.Context, id uuid.UUID) (*auction.Expanded, error)

	// List retrieves a page of auctions sorted by end date descending
	List(ctx context.Context, page, pageSize int) ([]*auction.Auction, error)

	// GetActiveByItemID retrieves auctions for an item with status entry or open
	GetActiveByItemID(ctx context.Context, itemID uuid.UUID) ([]*auction.Auction, error)

	// Update updates an auction
	Update(ctx context.Context, auction *auction.Auction) error

	// Delete deletes an auction
	Delete(ctx context.Context, id uuid.UUID) error

	// OpenStarting flips entry auctions starting on or before the given day
	// to open. Returns the number of auctions opened.
	OpenStarting(ctx context.Context, day shared.Date) (int64, error)

	// CloseCandidates reads up to limit open auctions whose end date is on or
	// before the given day, each joined with its highest bid.
	CloseCandidates(ctx context.Context, day shared.Date, limit int) ([]shared.CloseCandidate, error)

	// CloseBatch atomically sets status closed and the winner for every
	// candidate in one bulk write. Already-closed auctions are left untouched.
	CloseBatch(ctx context.Context, batch []shared.CloseCandidate) error
}

// BidRepository defines the interface for bid data operations
type BidRepository interface {
	// Admit atomically admits a bid: the auction's highest-bid reference is
	// conditionally advanced and the ledger record appended as one unit.
	// Fails with ErrInsufficientAmount when a concurrent bid won the race.
	Admit(ctx context.Context, bid *bid.Bid) error

	// GetByIDs retrieves the bids with the given IDs
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*bid.Bid, error)
}

// ItemRepository defines the interface for item data operations
type ItemRepository interface {
	// Create creates a new item
	Create(ctx context.Context, item *item.Item) error

	// GetByID retrieves an item by ID
	GetByID(ctx context.Context, id uuid.UUID) (*item.Item, error)

	// Update updates an item
	Update(ctx context.Context, item *item.Item) error

	// TransferOwners applies a batch of ownership transfers in one bulk write
	TransferOwners(ctx context.Context, transfers []shared.OwnerTransfer) error
}

// UserRepository defines the interface for user data operations
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *shared.User) error

	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id uuid.UUID) (*shared.User, error)

	// GetByEmail retrieves a user by email, or nil when none exists
	GetByEmail(ctx context.Context, email string) (*shared.User, error)

	// Update updates a user's profile fields
	Update(ctx context.Context, user *shared.User) error

	// AppendAuction appends an auction reference to the user's hosted list
	AppendAuction(ctx context.Context, userID, auctionID uuid.UUID) error

	// AppendBid appends a bid reference to the user's bid history
	AppendBid(ctx context.Context, userID, bidID uuid.UUID) error
}
