package db

import (
	"context"
	"database/sql"
	"fmt"

	"auction-marketplace-service/internal/domain/bid"
	"auction-marketplace-service/internal/domain/shared"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// BidRepository implements the bid repository interface
type BidRepository struct {
	conn *Connection
}

// NewBidRepository creates a new bid repository
func NewBidRepository(conn *Connection) *BidRepository {
	return &BidRepository{conn: conn}
}

/*
Admit atomically admits a bid in a single transaction:
 1. Lock the auction row and re-check the admission preconditions against
    the state a concurrent bid may have changed since the caller's read
 2. Conditionally advance the auction's highest-bid reference; the guarded
    UPDATE keeps the check-and-set a single store-side operation
 3. Append the ledger record

The auction (authoritative) is written before the ledger record, and both
commit as one unit, so no observer sees one without the other.
*/
func (r *BidRepository) Admit(ctx context.Context, newBid *bid.Bid) error {
	return r.conn.ExecuteTransaction(func(tx *sql.Tx) error {
		auctionQuery := `
			SELECT status, start_bid, highest_amount
			FROM auctions
			WHERE id = $1
			FOR UPDATE
		`

		var (
			status        string
			startBid      decimal.Decimal
			highestAmount decimal.NullDecimal
		)
		err := tx.QueryRowContext(ctx, auctionQuery, newBid.AuctionID).Scan(&status, &startBid, &highestAmount)
		if err != nil {
			if err == sql.ErrNoRows {
				return shared.ErrAuctionNotFound
			}
			return fmt.Errorf("failed to get auction for admission: %w", err)
		}

		if status != "open" {
			return shared.ErrAuctionNotOpen
		}

		if newBid.Amount.LessThan(startBid) {
			return shared.ErrInsufficientAmount
		}

		// Ties at the current highest amount lose: strict greater-than only.
		if highestAmount.Valid && !newBid.Amount.GreaterThan(highestAmount.Decimal) {
			return shared.ErrInsufficientAmount
		}

		updateQuery := `
			UPDATE auctions
			SET highest_bid_id = $2, highest_amount = $3
			WHERE id = $1
			  AND status = 'open'
			  AND ((highest_amount IS NULL AND $3 >= start_bid) OR $3 > highest_amount)
		`

		result, err := tx.ExecContext(ctx, updateQuery,
			newBid.AuctionID,
			newBid.ID,
			newBid.Amount,
		)
		if err != nil {
			return fmt.Errorf("failed to advance highest bid: %w", err)
		}

		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get rows affected: %w", err)
		}

		// Zero rows means a concurrent bid won the race.
		if rowsAffected == 0 {
			return shared.ErrInsufficientAmount
		}

		bidQuery := `
			INSERT INTO bids (id, auction_id, user_id, amount, created_at)
			VALUES ($1, $2, $3, $4, $5)
		`

		_, err = tx.ExecContext(ctx, bidQuery,
			newBid.ID,
			newBid.AuctionID,
			newBid.UserID,
			newBid.Amount,
			newBid.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert bid: %w", err)
		}

		return nil
	})
}

// GetByIDs retrieves the bids with the given IDs
func (r *BidRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*bid.Bid, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	raw := make([]string, len(ids))
	for i, id := range ids {
		raw[i] = id.String()
	}

	query := `
		SELECT id, auction_id, user_id, amount, created_at
		FROM bids
		WHERE id = ANY($1)
		ORDER BY created_at ASC, id ASC
	`

	rows, err := r.conn.GetDB().QueryContext(ctx, query, pq.Array(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to get bids: %w", err)
	}
	defer rows.Close()

	return collectBids(rows)
}

func collectBids(rows *sql.Rows) ([]*bid.Bid, error) {
	var bids []*bid.Bid
	for rows.Next() {
		var b bid.Bid
		err := rows.Scan(&b.ID, &b.AuctionID, &b.UserID, &b.Amount, &b.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bid: %w", err)
		}
		bids = append(bids, &b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bids: %w", err)
	}

	return bids, nil
}
