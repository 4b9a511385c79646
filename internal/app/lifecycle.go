package app

import (
	"context"

	"auction-marketplace-service/internal/domain/shared"
	"auction-marketplace-service/internal/ports/outbound"

	"github.com/rs/zerolog"
)

const defaultSweepBatchSize = 512

// LifecycleService runs the two time-triggered sweeps that move auctions
// through their lifecycle: entry auctions open on their start date, open
// auctions past their end date close with winner and ownership settled.
type LifecycleService struct {
	auctionRepo outbound.AuctionRepository
	itemRepo    outbound.ItemRepository
	batchSize   int
	today       func() shared.Date
	logger      zerolog.Logger
}

type LifecycleServiceParams struct {
	AuctionRepo outbound.AuctionRepository
	ItemRepo    outbound.ItemRepository

	// BatchSize caps the number of auctions closed per bulk write;
	// defaults to defaultSweepBatchSize
	BatchSize int

	// Today overrides the calendar clock, used by tests
	Today  func() shared.Date
	Logger zerolog.Logger
}

// NewLifecycleService creates a new lifecycle service
func NewLifecycleService(params LifecycleServiceParams) *LifecycleService {
	batchSize := params.BatchSize
	if batchSize <= 0 {
		batchSize = defaultSweepBatchSize
	}
	today := params.Today
	if today == nil {
		today = shared.Today
	}
	return &LifecycleService{
		auctionRepo: params.AuctionRepo,
		itemRepo:    params.ItemRepo,
		batchSize:   batchSize,
		today:       today,
		logger:      params.Logger.With().Str("component", "lifecycle_service").Logger(),
	}
}

// RunOpenSweep flips entry auctions whose start date is today or earlier to
// open, catching up auctions stranded while no sweep ran. The match predicate
// excludes already-open auctions, so re-running is a no-op.
func (s *LifecycleService) RunOpenSweep(ctx context.Context) (shared.SweepResult, error) {
	day := s.today()
	s.logger.Info().Str("day", day.String()).Msg("Running open sweep")

	opened, err := s.auctionRepo.OpenStarting(ctx, day)
	if err != nil {
		s.logger.Error().Err(err).Str("day", day.String()).Msg("Open sweep failed")
		return shared.SweepResult{}, err
	}

	s.logger.Info().Str("day", day.String()).Int64("opened", opened).Msg("Open sweep completed")
	return shared.SweepResult{Opened: opened}, nil
}

// RunCloseSweep closes open auctions whose end date is today or earlier,
// batch by batch, until no matches remain. Each batch closes its auctions
// and settles winners in one bulk write, then transfers item ownership for
// the won auctions in a second bulk write. A failure between batches is safe:
// the match predicate is idempotent, so the next run resumes where this one
// stopped without double-closing anything. A crash between the two writes of
// a batch leaves that batch's ownership transfers unapplied; closed auctions
// are out of the candidate set, so no later run retries them.
func (s *LifecycleService) RunCloseSweep(ctx context.Context) (shared.SweepResult, error) {
	day := s.today()
	s.logger.Info().Str("day", day.String()).Msg("Running close sweep")

	var result shared.SweepResult
	for {
		candidates, err := s.auctionRepo.CloseCandidates(ctx, day, s.batchSize)
		if err != nil {
			s.logger.Error().Err(err).Str("day", day.String()).Msg("Failed to read close candidates")
			return result, err
		}

		if len(candidates) == 0 {
			break
		}

		// Authoritative state first: the auctions close with winners
		// settled before ownership moves. The ledger never lies about
		// the winner, but a crash here drops the batch's transfers.
		if err := s.auctionRepo.CloseBatch(ctx, candidates); err != nil {
			s.logger.Error().Err(err).Int("batch", len(candidates)).Msg("Failed to close auction batch")
			return result, err
		}
		result.Closed += len(candidates)
		result.Batches++

		transfers := make([]shared.OwnerTransfer, 0, len(candidates))
		for _, c := range candidates {
			if c.WinnerID == nil {
				// No bids: the item stays with its original owner.
				continue
			}
			transfers = append(transfers, shared.OwnerTransfer{
				ItemID:   c.ItemID,
				NewOwner: *c.WinnerID,
			})
		}

		if err := s.itemRepo.TransferOwners(ctx, transfers); err != nil {
			s.logger.Error().Err(err).Int("transfers", len(transfers)).Msg("Failed to transfer item ownership")
			return result, err
		}
		result.Transferred += len(transfers)
	}

	s.logger.Info().
		Str("day", day.String()).
		Int("closed", result.Closed).
		Int("transferred", result.Transferred).
		Int("batches", result.Batches).
		Msg("Close sweep completed")

	return result, nil
}
