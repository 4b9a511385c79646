package app

import (
	"context"
	"sync"

	"auction-marketplace-service/internal/domain/auction"
	"auction-marketplace-service/internal/domain/bid"
	"auction-marketplace-service/internal/domain/item"
	"auction-marketplace-service/internal/domain/shared"

	"github.com/google/uuid"
)

// memStore is an in-memory stand-in for the Postgres adapters. The bid
// admission path keeps the store's atomicity contract: Admit re-checks the
// auction under a lock before advancing the highest bid.
type memStore struct {
	mu       sync.Mutex
	auctions map[uuid.UUID]*auction.Auction
	bids     map[uuid.UUID]*bid.Bid
	items    map[uuid.UUID]*item.Item
	users    map[uuid.UUID]*shared.User
}

func newMemStore() *memStore {
	return &memStore{
		auctions: make(map[uuid.UUID]*auction.Auction),
		bids:     make(map[uuid.UUID]*bid.Bid),
		items:    make(map[uuid.UUID]*item.Item),
		users:    make(map[uuid.UUID]*shared.User),
	}
}

type memAuctionRepo struct{ store *memStore }

func (r *memAuctionRepo) Create(_ context.Context, a *auction.Auction) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	// Mirrors the store's partial unique index: at most one entry or open
	// auction per item, enforced at write time.
	if !a.IsClosed() {
		for _, existing := range r.store.auctions {
			if existing.ItemID == a.ItemID && !existing.IsClosed() {
				return shared.ErrActiveAuctionExists
			}
		}
	}
	cp := *a
	r.store.auctions[a.ID] = &cp
	return nil
}

func (r *memAuctionRepo) GetByID(_ context.Context, id uuid.UUID) (*auction.Auction, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	a, ok := r.store.auctions[id]
	if !ok {
		return nil, shared.ErrAuctionNotFound
	}
	cp := *a
	return &cp, nil
}

func (r *memAuctionRepo) GetExpanded(ctx context.Context, id uuid.UUID) (*auction.Expanded, error) {
	a, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	expanded := &auction.Expanded{Auction: *a}
	if it, ok := r.store.items[a.ItemID]; ok {
		cp := *it
		expanded.Item = &cp
	}
	for _, bidID := range a.BidIDs {
		if b, ok := r.store.bids[bidID]; ok {
			cp := *b
			expanded.Bids = append(expanded.Bids, &cp)
		}
	}
	if a.HighestBidID != nil {
		if b, ok := r.store.bids[*a.HighestBidID]; ok {
			cp := *b
			expanded.HighestBid = &cp
		}
	}
	return expanded, nil
}

func (r *memAuctionRepo) List(_ context.Context, page, pageSize int) ([]*auction.Auction, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*auction.Auction
	for _, a := range r.store.auctions {
		cp := *a
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memAuctionRepo) GetActiveByItemID(_ context.Context, itemID uuid.UUID) ([]*auction.Auction, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*auction.Auction
	for _, a := range r.store.auctions {
		if a.ItemID == itemID && !a.IsClosed() {
			cp := *a
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memAuctionRepo) Update(_ context.Context, a *auction.Auction) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.auctions[a.ID]; !ok {
		return shared.ErrAuctionNotFound
	}
	cp := *a
	r.store.auctions[a.ID] = &cp
	return nil
}

func (r *memAuctionRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.auctions[id]; !ok {
		return shared.ErrAuctionNotFound
	}
	delete(r.store.auctions, id)
	return nil
}

func (r *memAuctionRepo) OpenStarting(_ context.Context, day shared.Date) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var opened int64
	for _, a := range r.store.auctions {
		if a.Status == auction.StatusEntry && !a.StartDate.After(day) {
			a.Status = auction.StatusOpen
			opened++
		}
	}
	return opened, nil
}

func (r *memAuctionRepo) CloseCandidates(_ context.Context, day shared.Date, limit int) ([]shared.CloseCandidate, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []shared.CloseCandidate
	for _, a := range r.store.auctions {
		if len(out) == limit {
			break
		}
		if a.Status != auction.StatusOpen {
			continue
		}
		if a.EndDate.After(day) {
			continue
		}
		c := shared.CloseCandidate{AuctionID: a.ID, ItemID: a.ItemID}
		if a.HighestBidID != nil {
			if b, ok := r.store.bids[*a.HighestBidID]; ok {
				winner := b.UserID
				amount := b.Amount
				c.WinnerID = &winner
				c.WinningAmount = &amount
			}
		}
		out = append(out, c)
	}
	return out, nil
}

func (r *memAuctionRepo) CloseBatch(_ context.Context, batch []shared.CloseCandidate) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, c := range batch {
		a, ok := r.store.auctions[c.AuctionID]
		if !ok || a.Status != auction.StatusOpen {
			continue
		}
		a.Status = auction.StatusClosed
		a.WinnerID = c.WinnerID
	}
	return nil
}

type memBidRepo struct{ store *memStore }

func (r *memBidRepo) Admit(_ context.Context, b *bid.Bid) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	a, ok := r.store.auctions[b.AuctionID]
	if !ok {
		return shared.ErrAuctionNotFound
	}
	if a.Status != auction.StatusOpen {
		return shared.ErrAuctionNotOpen
	}
	if !a.Admits(b.Amount) {
		return shared.ErrInsufficientAmount
	}

	amount := b.Amount
	bidID := b.ID
	a.HighestBidID = &bidID
	a.HighestAmount = &amount
	a.BidIDs = append(a.BidIDs, b.ID)

	cp := *b
	r.store.bids[b.ID] = &cp
	return nil
}

func (r *memBidRepo) GetByIDs(_ context.Context, ids []uuid.UUID) ([]*bid.Bid, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*bid.Bid
	for _, id := range ids {
		if b, ok := r.store.bids[id]; ok {
			cp := *b
			out = append(out, &cp)
		}
	}
	return out, nil
}

type memItemRepo struct{ store *memStore }

func (r *memItemRepo) Create(_ context.Context, it *item.Item) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	cp := *it
	r.store.items[it.ID] = &cp
	return nil
}

func (r *memItemRepo) GetByID(_ context.Context, id uuid.UUID) (*item.Item, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	it, ok := r.store.items[id]
	if !ok {
		return nil, shared.ErrItemNotFound
	}
	cp := *it
	return &cp, nil
}

func (r *memItemRepo) Update(_ context.Context, it *item.Item) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.items[it.ID]; !ok {
		return shared.ErrItemNotFound
	}
	cp := *it
	r.store.items[it.ID] = &cp
	return nil
}

func (r *memItemRepo) TransferOwners(_ context.Context, transfers []shared.OwnerTransfer) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, t := range transfers {
		it, ok := r.store.items[t.ItemID]
		if !ok {
			return shared.ErrItemNotFound
		}
		it.OwnedBy = t.NewOwner
	}
	return nil
}

type memUserRepo struct{ store *memStore }

func (r *memUserRepo) Create(_ context.Context, u *shared.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	cp := *u
	r.store.users[u.ID] = &cp
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id uuid.UUID) (*shared.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	u, ok := r.store.users[id]
	if !ok {
		return nil, shared.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*shared.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, u := range r.store.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) Update(_ context.Context, u *shared.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.users[u.ID]; !ok {
		return shared.ErrUserNotFound
	}
	cp := *u
	r.store.users[u.ID] = &cp
	return nil
}

func (r *memUserRepo) AppendAuction(_ context.Context, userID, auctionID uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if u, ok := r.store.users[userID]; ok {
		u.AuctionIDs = append(u.AuctionIDs, auctionID)
	}
	return nil
}

func (r *memUserRepo) AppendBid(_ context.Context, userID, bidID uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if u, ok := r.store.users[userID]; ok {
		u.BidIDs = append(u.BidIDs, bidID)
	}
	return nil
}
