package inbound

import (
	"context"

	"auction-marketplace-service/internal/domain/auction"
	"auction-marketplace-service/internal/domain/bid"
	"auction-marketplace-service/internal/domain/item"
	"auction-marketplace-service/internal/domain/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AuctionService defines the interface for auction operations
type AuctionService interface {
	// CreateAuction creates a new auction after the creation guard passes
	CreateAuction(ctx context.Context, req CreateAuctionRequest) (*auction.Auction, error)

	// GetAuction retrieves an auction with its referenced records joined in
	GetAuction(ctx context.Context, auctionID uuid.UUID) (*auction.Expanded, error)

	// ListAuctions retrieves a page of auctions sorted by end date descending
	ListAuctions(ctx context.Context, req ListAuctionsRequest) ([]*auction.Auction, error)

	// UpdateAuction updates a not-yet-closed auction owned by the actor
	UpdateAuction(ctx context.Context, req UpdateAuctionRequest) (*auction.Auction, error)

	// DeleteAuction deletes a not-yet-closed auction owned by the actor
	DeleteAuction(ctx context.Context, actorID, auctionID uuid.UUID) error
}

// BidService defines the interface for bid operations
type BidService interface {
	// PlaceBid admits a new bid on an auction
	PlaceBid(ctx context.Context, req PlaceBidRequest) (*bid.Bid, error)

	// GetBids retrieves the bids with the given IDs
	GetBids(ctx context.Context, ids []uuid.UUID) ([]*bid.Bid, error)
}

// ItemService defines the interface for auction item operations
type ItemService interface {
	CreateItem(ctx context.Context, req CreateItemRequest) (*item.Item, error)
	GetItem(ctx context.Context, itemID uuid.UUID) (*item.Item, error)
	UpdateItem(ctx context.Context, req UpdateItemRequest) (*item.Item, error)
}

// UserService defines the interface for account and profile operations
type UserService interface {
	// Register creates an account with a hashed password
	Register(ctx context.Context, req RegisterRequest) (*shared.User, error)

	// Login verifies credentials and issues an identity token
	Login(ctx context.Context, email, password string) (string, error)

	// GetProfile retrieves a user's public profile
	GetProfile(ctx context.Context, userID uuid.UUID) (*shared.User, error)

	// UpdateProfile updates the actor's own profile
	UpdateProfile(ctx context.Context, req UpdateProfileRequest) (*shared.User, error)
}

// LifecycleService exposes the two sweep entry points to the scheduler
type LifecycleService interface {
	// RunOpenSweep flips entry auctions starting today to open
	RunOpenSweep(ctx context.Context) (shared.SweepResult, error)

	// RunCloseSweep closes open auctions past their end date, settling
	// winners and transferring item ownership, until no matches remain
	RunCloseSweep(ctx context.Context) (shared.SweepResult, error)
}

// request to create an auction
type CreateAuctionRequest struct {
	CreatorID uuid.UUID       `json:"-"`
	ItemID    uuid.UUID       `json:"item"`
	StartBid  decimal.Decimal `json:"start_bid"`
	StartDate string          `json:"start_date"`
	EndDate   string          `json:"end_date"`
}

// request to list auctions
type ListAuctionsRequest struct {
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
}

// request to update an auction; nil fields are left unchanged
type UpdateAuctionRequest struct {
	ActorID   uuid.UUID        `json:"-"`
	AuctionID uuid.UUID        `json:"-"`
	ItemID    *uuid.UUID       `json:"item,omitempty"`
	StartBid  *decimal.Decimal `json:"start_bid,omitempty"`
	StartDate *string          `json:"start_date,omitempty"`
	EndDate   *string          `json:"end_date,omitempty"`
}

// request to place a bid
type PlaceBidRequest struct {
	AuctionID uuid.UUID       `json:"-"`
	BidderID  uuid.UUID       `json:"-"`
	Amount    decimal.Decimal `json:"amount"`
}

// request to create an item
type CreateItemRequest struct {
	OwnerID   uuid.UUID      `json:"-"`
	Name      string         `json:"name"`
	Details   string         `json:"details"`
	Condition item.Condition `json:"condition"`
}

// request to update an item; empty fields are left unchanged
type UpdateItemRequest struct {
	ActorID   uuid.UUID      `json:"-"`
	ItemID    uuid.UUID      `json:"-"`
	Name      string         `json:"name,omitempty"`
	Details   string         `json:"details,omitempty"`
	Condition item.Condition `json:"condition,omitempty"`
}

// request to register a user
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
}

// request to update the actor's profile
type UpdateProfileRequest struct {
	ActorID uuid.UUID `json:"-"`
	Email   string    `json:"email,omitempty"`
	Name    string    `json:"name,omitempty"`
}
