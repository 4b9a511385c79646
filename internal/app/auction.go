package app

import (
	"context"
	"time"

	"auction-marketplace-service/internal/domain/auction"
	"auction-marketplace-service/internal/domain/shared"
	"auction-marketplace-service/internal/ports/inbound"
	"auction-marketplace-service/internal/ports/outbound"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// AuctionService implements the auction use cases, including the creation
// guard that enforces ownership and one active auction per item.
type AuctionService struct {
	auctionRepo outbound.AuctionRepository
	itemRepo    outbound.ItemRepository
	userRepo    outbound.UserRepository
	today       func() shared.Date
	logger      zerolog.Logger
}

type AuctionServiceParams struct {
	AuctionRepo outbound.AuctionRepository
	ItemRepo    outbound.ItemRepository
	UserRepo    outbound.UserRepository

	// Today overrides the calendar clock, used by tests
	Today  func() shared.Date
	Logger zerolog.Logger
}

// NewAuctionService creates a new auction service
func NewAuctionService(params AuctionServiceParams) *AuctionService {
	today := params.Today
	if today == nil {
		today = shared.Today
	}
	return &AuctionService{
		auctionRepo: params.AuctionRepo,
		itemRepo:    params.ItemRepo,
		userRepo:    params.UserRepo,
		today:       today,
		logger:      params.Logger.With().Str("component", "auction_service").Logger(),
	}
}

// CreateAuction creates a new auction after the creation guard passes:
// well-formed date range, positive starting bid, creator owns the item, and
// no other auction on the item is still entry or open.
func (s *AuctionService) CreateAuction(ctx context.Context, req inbound.CreateAuctionRequest) (*auction.Auction, error) {
	s.logger.Info().
		Str("item_id", req.ItemID.String()).
		Str("creator_id", req.CreatorID.String()).
		Str("start_date", req.StartDate).
		Str("end_date", req.EndDate).
		Str("start_bid", req.StartBid.String()).
		Msg("Attempting to create auction")

	startDate, err := shared.ParseDate(req.StartDate)
	if err != nil {
		s.logger.Warn().Str("start_date", req.StartDate).Msg("Invalid start date format")
		return nil, err
	}

	endDate, err := shared.ParseDate(req.EndDate)
	if err != nil {
		s.logger.Warn().Str("end_date", req.EndDate).Msg("Invalid end date format")
		return nil, err
	}

	if startDate.After(endDate) {
		s.logger.Warn().
			Str("start_date", startDate.String()).
			Str("end_date", endDate.String()).
			Msg("Start date comes after end date")
		return nil, shared.ErrStartAfterEnd
	}

	if !req.StartBid.IsPositive() {
		s.logger.Warn().Str("start_bid", req.StartBid.String()).Msg("Starting bid must be greater than 0")
		return nil, shared.ErrInvalidStartBid
	}

	it, err := s.itemRepo.GetByID(ctx, req.ItemID)
	if err != nil {
		s.logger.Error().Err(err).Str("item_id", req.ItemID.String()).Msg("Item not found")
		return nil, shared.ErrItemNotFound
	}

	if it.OwnedBy != req.CreatorID {
		s.logger.Warn().
			Str("item_id", req.ItemID.String()).
			Str("creator_id", req.CreatorID.String()).
			Str("owned_by", it.OwnedBy.String()).
			Msg("Creator does not own item")
		return nil, shared.ErrItemNotOwned
	}

	active, err := s.auctionRepo.GetActiveByItemID(ctx, req.ItemID)
	if err != nil {
		s.logger.Error().Err(err).Str("item_id", req.ItemID.String()).Msg("Failed to check for active auctions")
		return nil, err
	}

	if len(active) > 0 {
		s.logger.Warn().
			Str("item_id", req.ItemID.String()).
			Int("active_count", len(active)).
			Msg("Active auction exists for item")
		return nil, shared.ErrActiveAuctionExists
	}

	newAuction := &auction.Auction{
		ID:        uuid.New(),
		CreatedBy: req.CreatorID,
		ItemID:    req.ItemID,
		StartBid:  req.StartBid,
		StartDate: startDate,
		EndDate:   endDate,
		Status:    auction.StatusAt(startDate, s.today()),
		CreatedAt: time.Now(),
	}

	if err := s.auctionRepo.Create(ctx, newAuction); err != nil {
		s.logger.Error().Err(err).Str("auction_id", newAuction.ID.String()).Msg("Failed to save auction")
		return nil, err
	}

	// Denormalized hosted-auctions list is best-effort: the authoritative
	// record is already committed.
	if err := s.userRepo.AppendAuction(ctx, req.CreatorID, newAuction.ID); err != nil {
		s.logger.Warn().Err(err).
			Str("creator_id", req.CreatorID.String()).
			Str("auction_id", newAuction.ID.String()).
			Msg("Failed to append auction to creator's hosted list")
	}

	s.logger.Info().
		Str("auction_id", newAuction.ID.String()).
		Str("status", string(newAuction.Status)).
		Msg("Auction created successfully")

	return newAuction, nil
}

// GetAuction retrieves an auction with its item, bids and highest bid
// joined in.
func (s *AuctionService) GetAuction(ctx context.Context, auctionID uuid.UUID) (*auction.Expanded, error) {
	expanded, err := s.auctionRepo.GetExpanded(ctx, auctionID)
	if err != nil {
		s.logger.Error().Err(err).Str("auction_id", auctionID.String()).Msg("Failed to retrieve auction")
		return nil, err
	}

	return expanded, nil
}

// ListAuctions retrieves a page of auctions sorted by end date descending
func (s *AuctionService) ListAuctions(ctx context.Context, req inbound.ListAuctionsRequest) ([]*auction.Auction, error) {
	if req.Page <= 0 {
		req.Page = 1
	}
	if req.PageSize <= 0 {
		req.PageSize = 10
	}

	return s.auctionRepo.List(ctx, req.Page, req.PageSize)
}

// UpdateAuction updates an auction. Only the creator may update, closed
// auctions are immutable, the item may only change while unbid, and the
// start date may only change while the auction is still in entry.
func (s *AuctionService) UpdateAuction(ctx context.Context, req inbound.UpdateAuctionRequest) (*auction.Auction, error) {
	auc, err := s.auctionRepo.GetByID(ctx, req.AuctionID)
	if err != nil {
		return nil, err
	}

	if auc.CreatedBy != req.ActorID {
		return nil, shared.ErrNotAuctionCreator
	}

	if auc.IsClosed() {
		return nil, shared.ErrAuctionClosed
	}

	if req.ItemID != nil && *req.ItemID != auc.ItemID {
		if auc.HasBids() {
			return nil, shared.ErrAuctionHasBids
		}

		it, err := s.itemRepo.GetByID(ctx, *req.ItemID)
		if err != nil {
			return nil, shared.ErrItemNotFound
		}
		if it.OwnedBy != req.ActorID {
			return nil, shared.ErrItemNotOwned
		}
		auc.ItemID = *req.ItemID
	}

	if req.StartBid != nil {
		if !req.StartBid.IsPositive() {
			return nil, shared.ErrInvalidStartBid
		}
		auc.StartBid = *req.StartBid
	}

	if req.StartDate != nil {
		if auc.Status != auction.StatusEntry {
			return nil, shared.ErrStartDateLocked
		}
		startDate, err := shared.ParseDate(*req.StartDate)
		if err != nil {
			return nil, err
		}
		auc.StartDate = startDate
	}

	if req.EndDate != nil {
		endDate, err := shared.ParseDate(*req.EndDate)
		if err != nil {
			return nil, err
		}
		auc.EndDate = endDate
	}

	if auc.StartDate.After(auc.EndDate) {
		return nil, shared.ErrStartAfterEnd
	}

	if err := s.auctionRepo.Update(ctx, auc); err != nil {
		s.logger.Error().Err(err).Str("auction_id", auc.ID.String()).Msg("Failed to update auction")
		return nil, err
	}

	s.logger.Info().Str("auction_id", auc.ID.String()).Msg("Auction updated")
	return auc, nil
}

// DeleteAuction deletes a not-yet-closed auction owned by the actor
func (s *AuctionService) DeleteAuction(ctx context.Context, actorID, auctionID uuid.UUID) error {
	auc, err := s.auctionRepo.GetByID(ctx, auctionID)
	if err != nil {
		return err
	}

	if auc.CreatedBy != actorID {
		return shared.ErrNotAuctionCreator
	}

	if auc.IsClosed() {
		return shared.ErrAuctionClosed
	}

	if err := s.auctionRepo.Delete(ctx, auctionID); err != nil {
		s.logger.Error().Err(err).Str("auction_id", auctionID.String()).Msg("Failed to delete auction")
		return err
	}

	s.logger.Info().Str("auction_id", auctionID.String()).Msg("Auction deleted")
	return nil
}
