package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"auction-marketplace-service/internal/domain/auction"
	"auction-marketplace-service/internal/domain/bid"
	"auction-marketplace-service/internal/domain/item"
	"auction-marketplace-service/internal/domain/shared"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// AuctionRepository implements the auction repository interface
type AuctionRepository struct {
	conn *Connection
}

// NewAuctionRepository creates a new auction repository
func NewAuctionRepository(conn *Connection) *AuctionRepository {
	return &AuctionRepository{conn: conn}
}

const auctionColumns = `
	a.id, a.created_by, a.item_id, a.start_bid, a.highest_bid_id,
	a.highest_amount, a.start_date, a.end_date, a.status, a.winner_id,
	a.created_at,
	COALESCE((SELECT array_agg(b.id::text ORDER BY b.created_at, b.id)
	          FROM bids b WHERE b.auction_id = a.id), '{}')
`

func scanAuction(row interface{ Scan(...interface{}) error }) (*auction.Auction, error) {
	var (
		a             auction.Auction
		highestBidID  uuid.NullUUID
		highestAmount decimal.NullDecimal
		winnerID      uuid.NullUUID
		bidIDs        pq.StringArray
	)

	err := row.Scan(
		&a.ID,
		&a.CreatedBy,
		&a.ItemID,
		&a.StartBid,
		&highestBidID,
		&highestAmount,
		&a.StartDate,
		&a.EndDate,
		&a.Status,
		&winnerID,
		&a.CreatedAt,
		&bidIDs,
	)
	if err != nil {
		return nil, err
	}

	if highestBidID.Valid {
		a.HighestBidID = &highestBidID.UUID
	}
	if highestAmount.Valid {
		a.HighestAmount = &highestAmount.Decimal
	}
	if winnerID.Valid {
		a.WinnerID = &winnerID.UUID
	}

	a.BidIDs = make([]uuid.UUID, 0, len(bidIDs))
	for _, raw := range bidIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("failed to parse bid reference: %w", err)
		}
		a.BidIDs = append(a.BidIDs, id)
	}

	return &a, nil
}

// Create creates a new auction. The service checks for a conflicting active
// auction first, but two concurrent creations can both pass that read; the
// partial unique index on (item_id) for entry and open auctions is the
// authoritative guard, and the loser's unique violation surfaces as
// ErrActiveAuctionExists.
func (r *AuctionRepository) Create(ctx context.Context, a *auction.Auction) error {
	query := `
		INSERT INTO auctions (id, created_by, item_id, start_bid, start_date, end_date, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.conn.GetDB().ExecContext(ctx, query,
		a.ID,
		a.CreatedBy,
		a.ItemID,
		a.StartBid,
		a.StartDate,
		a.EndDate,
		a.Status,
		a.CreatedAt,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return shared.ErrActiveAuctionExists
		}
		return fmt.Errorf("failed to create auction: %w", err)
	}

	return nil
}

// GetByID retrieves an auction by ID
func (r *AuctionRepository) GetByID(ctx context.Context, id uuid.UUID) (*auction.Auction, error) {
	query := `SELECT ` + auctionColumns + ` FROM auctions a WHERE a.id = $1`

	a, err := scanAuction(r.conn.GetDB().QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, shared.ErrAuctionNotFound
		}
		return nil, fmt.Errorf("failed to get auction: %w", err)
	}

	return a, nil
}

// GetExpanded retrieves an auction with its item, bids and highest bid
// joined in.
func (r *AuctionRepository) GetExpanded(ctx context.Context, id uuid.UUID) (*auction.Expanded, error) {
	a, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	expanded := &auction.Expanded{Auction: *a}

	itemQuery := `
		SELECT id, owned_by, name, details, condition, created_at
		FROM items
		WHERE id = $1
	`
	var it item.Item
	err = r.conn.GetDB().QueryRowContext(ctx, itemQuery, a.ItemID).Scan(
		&it.ID,
		&it.OwnedBy,
		&it.Name,
		&it.Details,
		&it.Condition,
		&it.CreatedAt,
	)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("failed to get auction item: %w", err)
	}
	if err == nil {
		expanded.Item = &it
	}

	bidsQuery := `
		SELECT id, auction_id, user_id, amount, created_at
		FROM bids
		WHERE auction_id = $1
		ORDER BY created_at ASC, id ASC
	`
	rows, err := r.conn.GetDB().QueryContext(ctx, bidsQuery, a.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get auction bids: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var b bid.Bid
		err := rows.Scan(&b.ID, &b.AuctionID, &b.UserID, &b.Amount, &b.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bid: %w", err)
		}
		expanded.Bids = append(expanded.Bids, &b)
		if a.HighestBidID != nil && b.ID == *a.HighestBidID {
			expanded.HighestBid = &b
		}
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bids: %w", err)
	}

	return expanded, nil
}

// List retrieves a page of auctions sorted by end date descending
func (r *AuctionRepository) List(ctx context.Context, page, pageSize int) ([]*auction.Auction, error) {
	query := `SELECT ` + auctionColumns + `
		FROM auctions a
		ORDER BY a.end_date DESC, a.created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.conn.GetDB().QueryContext(ctx, query, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list auctions: %w", err)
	}
	defer rows.Close()

	var auctions []*auction.Auction
	for rows.Next() {
		a, err := scanAuction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan auction: %w", err)
		}
		auctions = append(auctions, a)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating auctions: %w", err)
	}

	return auctions, nil
}

// GetActiveByItemID retrieves entry or open auctions for a specific item
func (r *AuctionRepository) GetActiveByItemID(ctx context.Context, itemID uuid.UUID) ([]*auction.Auction, error) {
	query := `SELECT ` + auctionColumns + `
		FROM auctions a
		WHERE a.item_id = $1 AND a.status IN ('entry', 'open')
		ORDER BY a.created_at DESC
	`

	rows, err := r.conn.GetDB().QueryContext(ctx, query, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to get active auctions by item ID: %w", err)
	}
	defer rows.Close()

	var auctions []*auction.Auction
	for rows.Next() {
		a, err := scanAuction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan auction: %w", err)
		}
		auctions = append(auctions, a)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating auctions: %w", err)
	}

	return auctions, nil
}

// Update updates an auction's mutable fields
func (r *AuctionRepository) Update(ctx context.Context, a *auction.Auction) error {
	query := `
		UPDATE auctions
		SET item_id = $2, start_bid = $3, start_date = $4, end_date = $5
		WHERE id = $1
	`

	result, err := r.conn.GetDB().ExecContext(ctx, query,
		a.ID,
		a.ItemID,
		a.StartBid,
		a.StartDate,
		a.EndDate,
	)

	if err != nil {
		return fmt.Errorf("failed to update auction: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return shared.ErrAuctionNotFound
	}

	return nil
}

// Delete deletes an auction
func (r *AuctionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM auctions WHERE id = $1`

	result, err := r.conn.GetDB().ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete auction: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return shared.ErrAuctionNotFound
	}

	return nil
}

// OpenStarting flips entry auctions starting on or before the given day to
// open, so auctions whose start date passed while no sweep ran still open on
// the next one. The predicate excludes already-open auctions, so re-running
// is a no-op.
func (r *AuctionRepository) OpenStarting(ctx context.Context, day shared.Date) (int64, error) {
	query := `
		UPDATE auctions
		SET status = 'open'
		WHERE status = 'entry' AND start_date <= $1
	`

	result, err := r.conn.GetDB().ExecContext(ctx, query, day)
	if err != nil {
		return 0, fmt.Errorf("failed to open starting auctions: %w", err)
	}

	opened, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return opened, nil
}

// CloseCandidates reads a batch of open auctions whose end date is on or
// before the given day, joined with the bidder and amount of their highest
// bid. Auctions missed on their exact end date still match on later runs.
func (r *AuctionRepository) CloseCandidates(ctx context.Context, day shared.Date, limit int) ([]shared.CloseCandidate, error) {
	query := `
		SELECT a.id, a.item_id, b.user_id, b.amount
		FROM auctions a
		LEFT JOIN bids b ON b.id = a.highest_bid_id
		WHERE a.status = 'open' AND a.end_date <= $1
		ORDER BY a.end_date ASC
		LIMIT $2
	`

	rows, err := r.conn.GetDB().QueryContext(ctx, query, day, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get close candidates: %w", err)
	}
	defer rows.Close()

	var candidates []shared.CloseCandidate
	for rows.Next() {
		var (
			c      shared.CloseCandidate
			winner uuid.NullUUID
			amount decimal.NullDecimal
		)
		if err := rows.Scan(&c.AuctionID, &c.ItemID, &winner, &amount); err != nil {
			return nil, fmt.Errorf("failed to scan close candidate: %w", err)
		}
		if winner.Valid {
			c.WinnerID = &winner.UUID
		}
		if amount.Valid {
			c.WinningAmount = &amount.Decimal
		}
		candidates = append(candidates, c)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating close candidates: %w", err)
	}

	return candidates, nil
}

// CloseBatch sets status closed and the winner for every candidate in one
// bulk transaction. The status predicate keeps already-closed auctions
// untouched, so a concurrent or repeated sweep cannot double-close.
func (r *AuctionRepository) CloseBatch(ctx context.Context, batch []shared.CloseCandidate) error {
	if len(batch) == 0 {
		return nil
	}

	return r.conn.ExecuteTransaction(func(tx *sql.Tx) error {
		query := `
			UPDATE auctions
			SET status = 'closed', winner_id = $2
			WHERE id = $1 AND status = 'open'
		`

		for _, c := range batch {
			var winner interface{}
			if c.WinnerID != nil {
				winner = *c.WinnerID
			}
			if _, err := tx.ExecContext(ctx, query, c.AuctionID, winner); err != nil {
				return fmt.Errorf("failed to close auction %s: %w", c.AuctionID, err)
			}
		}

		return nil
	})
}
