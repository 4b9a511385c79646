package db

import (
	"context"
	"database/sql"
	"fmt"

	"auction-marketplace-service/internal/domain/item"
	"auction-marketplace-service/internal/domain/shared"

	"github.com/google/uuid"
)

// ItemRepository implements the item repository interface
type ItemRepository struct {
	conn *Connection
}

// NewItemRepository creates a new item repository
func NewItemRepository(conn *Connection) *ItemRepository {
	return &ItemRepository{conn: conn}
}

// Create creates a new item
func (r *ItemRepository) Create(ctx context.Context, it *item.Item) error {
	query := `
		INSERT INTO items (id, owned_by, name, details, condition, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.conn.GetDB().ExecContext(ctx, query,
		it.ID,
		it.OwnedBy,
		it.Name,
		it.Details,
		it.Condition,
		it.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create item: %w", err)
	}

	return nil
}

// GetByID retrieves an item by ID
func (r *ItemRepository) GetByID(ctx context.Context, id uuid.UUID) (*item.Item, error) {
	query := `
		SELECT id, owned_by, name, details, condition, created_at
		FROM items
		WHERE id = $1
	`

	var it item.Item
	err := r.conn.GetDB().QueryRowContext(ctx, query, id).Scan(
		&it.ID,
		&it.OwnedBy,
		&it.Name,
		&it.Details,
		&it.Condition,
		&it.CreatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, shared.ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to get item: %w", err)
	}

	return &it, nil
}

// Update updates an item's descriptive fields
func (r *ItemRepository) Update(ctx context.Context, it *item.Item) error {
	query := `
		UPDATE items
		SET name = $2, details = $3, condition = $4
		WHERE id = $1
	`

	result, err := r.conn.GetDB().ExecContext(ctx, query,
		it.ID,
		it.Name,
		it.Details,
		it.Condition,
	)

	if err != nil {
		return fmt.Errorf("failed to update item: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return shared.ErrItemNotFound
	}

	return nil
}

// TransferOwners applies a batch of ownership transfers in one bulk
// transaction. Runs after the owning auctions are closed, so a crash between
// the two writes leaves the authoritative auction state correct; the dropped
// transfers stay unapplied, since closed auctions are never re-swept.
func (r *ItemRepository) TransferOwners(ctx context.Context, transfers []shared.OwnerTransfer) error {
	if len(transfers) == 0 {
		return nil
	}

	return r.conn.ExecuteTransaction(func(tx *sql.Tx) error {
		query := `UPDATE items SET owned_by = $2 WHERE id = $1`

		for _, t := range transfers {
			if _, err := tx.ExecContext(ctx, query, t.ItemID, t.NewOwner); err != nil {
				return fmt.Errorf("failed to transfer item %s: %w", t.ItemID, err)
			}
		}

		return nil
	})
}
