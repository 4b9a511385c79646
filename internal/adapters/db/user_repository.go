package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"auction-marketplace-service/internal/domain/shared"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// UserRepository implements the user repository interface
type UserRepository struct {
	conn *Connection
}

// NewUserRepository creates a new user repository
func NewUserRepository(conn *Connection) *UserRepository {
	return &UserRepository{conn: conn}
}

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, user *shared.User) error {
	query := `
		INSERT INTO users (id, email, password_hash, name, auctions, bids, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.conn.GetDB().ExecContext(ctx, query,
		user.ID,
		user.Email,
		user.PasswordHash,
		user.Name,
		uuidArray(user.AuctionIDs),
		uuidArray(user.BidIDs),
		user.CreatedAt,
	)

	if err != nil {
		// The service checks the email first, but the unique constraint is
		// the authoritative guard against a concurrent registration.
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return shared.ErrEmailTaken
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*shared.User, error) {
	query := `
		SELECT id, email, password_hash, name, auctions, bids, created_at
		FROM users
		WHERE id = $1
	`

	user, err := r.scanUser(r.conn.GetDB().QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, shared.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}

// GetByEmail retrieves a user by email, or nil when none exists
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*shared.User, error) {
	query := `
		SELECT id, email, password_hash, name, auctions, bids, created_at
		FROM users
		WHERE email = $1
	`

	user, err := r.scanUser(r.conn.GetDB().QueryRowContext(ctx, query, email))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return user, nil
}

// Update updates a user's profile fields
func (r *UserRepository) Update(ctx context.Context, user *shared.User) error {
	query := `
		UPDATE users
		SET email = $2, name = $3
		WHERE id = $1
	`

	result, err := r.conn.GetDB().ExecContext(ctx, query,
		user.ID,
		user.Email,
		user.Name,
	)

	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return shared.ErrUserNotFound
	}

	return nil
}

// AppendAuction appends an auction reference to the user's hosted list
func (r *UserRepository) AppendAuction(ctx context.Context, userID, auctionID uuid.UUID) error {
	query := `UPDATE users SET auctions = array_append(auctions, $2) WHERE id = $1`

	if _, err := r.conn.GetDB().ExecContext(ctx, query, userID, auctionID); err != nil {
		return fmt.Errorf("failed to append auction reference: %w", err)
	}

	return nil
}

// AppendBid appends a bid reference to the user's bid history
func (r *UserRepository) AppendBid(ctx context.Context, userID, bidID uuid.UUID) error {
	query := `UPDATE users SET bids = array_append(bids, $2) WHERE id = $1`

	if _, err := r.conn.GetDB().ExecContext(ctx, query, userID, bidID); err != nil {
		return fmt.Errorf("failed to append bid reference: %w", err)
	}

	return nil
}

func (r *UserRepository) scanUser(row interface{ Scan(...interface{}) error }) (*shared.User, error) {
	var (
		user     shared.User
		auctions pq.StringArray
		bids     pq.StringArray
	)

	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.Name,
		&auctions,
		&bids,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if user.AuctionIDs, err = parseUUIDs(auctions); err != nil {
		return nil, err
	}
	if user.BidIDs, err = parseUUIDs(bids); err != nil {
		return nil, err
	}

	return &user, nil
}

func uuidArray(ids []uuid.UUID) interface{} {
	raw := make([]string, len(ids))
	for i, id := range ids {
		raw[i] = id.String()
	}
	return pq.Array(raw)
}

func parseUUIDs(raw []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(raw))
	for _, s := range raw {
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, fmt.Errorf("failed to parse reference: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
