package app

import (
	"context"
	"time"

	"auction-marketplace-service/internal/domain/bid"
	"auction-marketplace-service/internal/domain/shared"
	"auction-marketplace-service/internal/ports/inbound"
	"auction-marketplace-service/internal/ports/outbound"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// BidService implements the bid admission engine
type BidService struct {
	bidRepo     outbound.BidRepository
	auctionRepo outbound.AuctionRepository
	userRepo    outbound.UserRepository
	logger      zerolog.Logger
}

type BidServiceParams struct {
	BidRepo     outbound.BidRepository
	AuctionRepo outbound.AuctionRepository
	UserRepo    outbound.UserRepository
	Logger      zerolog.Logger
}

// NewBidService creates a new bid service
func NewBidService(params BidServiceParams) *BidService {
	return &BidService{
		bidRepo:     params.BidRepo,
		auctionRepo: params.AuctionRepo,
		userRepo:    params.UserRepo,
		logger:      params.Logger.With().Str("component", "bid_service").Logger(),
	}
}

// PlaceBid admits a new bid on an auction. Preconditions are checked in
// order and the first failure wins; the admission itself is re-checked
// atomically in the store so two concurrent bids can never both win.
func (s *BidService) PlaceBid(ctx context.Context, req inbound.PlaceBidRequest) (*bid.Bid, error) {
	s.logger.Info().
		Str("auction_id", req.AuctionID.String()).
		Str("bidder_id", req.BidderID.String()).
		Str("amount", req.Amount.String()).
		Msg("Attempting to place bid")

	if !req.Amount.IsPositive() {
		s.logger.Warn().Str("amount", req.Amount.String()).Msg("Invalid bid amount (must be > 0)")
		return nil, shared.ErrBidAmountInvalid
	}

	auc, err := s.auctionRepo.GetByID(ctx, req.AuctionID)
	if err != nil {
		s.logger.Error().Err(err).Str("auction_id", req.AuctionID.String()).Msg("Auction not found")
		return nil, shared.ErrAuctionNotFound
	}

	if auc.CreatedBy == req.BidderID {
		s.logger.Warn().Str("auction_id", req.AuctionID.String()).Msg("Bidder is the auction creator")
		return nil, shared.ErrBidOnOwnAuction
	}

	if !auc.CanBid() {
		s.logger.Warn().
			Str("auction_id", req.AuctionID.String()).
			Str("status", string(auc.Status)).
			Msg("Auction not open for bidding")
		return nil, shared.ErrAuctionNotOpen
	}

	if !auc.Admits(req.Amount) {
		s.logger.Warn().
			Str("auction_id", req.AuctionID.String()).
			Str("start_bid", auc.StartBid.String()).
			Str("amount", req.Amount.String()).
			Msg("Bid amount insufficient")
		return nil, shared.ErrInsufficientAmount
	}

	newBid := &bid.Bid{
		ID:        uuid.New(),
		AuctionID: req.AuctionID,
		UserID:    req.BidderID,
		Amount:    req.Amount,
		CreatedAt: time.Now(),
	}

	// The store re-checks the admission conditions and advances the highest
	// bid in one atomic unit; a lost race surfaces as ErrInsufficientAmount.
	if err := s.bidRepo.Admit(ctx, newBid); err != nil {
		s.logger.Warn().Err(err).
			Str("auction_id", req.AuctionID.String()).
			Str("bid_id", newBid.ID.String()).
			Msg("Bid admission rejected")
		return nil, err
	}

	// Denormalized bid history is best-effort: the authoritative records are
	// already committed, so a failure here only leaves a stale secondary index.
	if err := s.userRepo.AppendBid(ctx, req.BidderID, newBid.ID); err != nil {
		s.logger.Warn().Err(err).
			Str("user_id", req.BidderID.String()).
			Str("bid_id", newBid.ID.String()).
			Msg("Failed to append bid to user's bid history")
	}

	s.logger.Info().
		Str("bid_id", newBid.ID.String()).
		Str("auction_id", newBid.AuctionID.String()).
		Str("amount", newBid.Amount.String()).
		Msg("Bid placed successfully")

	return newBid, nil
}

// GetBids retrieves the bids with the given IDs
func (s *BidService) GetBids(ctx context.Context, ids []uuid.UUID) ([]*bid.Bid, error) {
	return s.bidRepo.GetByIDs(ctx, ids)
}
