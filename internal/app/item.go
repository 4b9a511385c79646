package app

import (
	"context"
	"time"

	"auction-marketplace-service/internal/domain/item"
	"auction-marketplace-service/internal/domain/shared"
	"auction-marketplace-service/internal/ports/inbound"
	"auction-marketplace-service/internal/ports/outbound"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ItemService implements the auction item use cases
type ItemService struct {
	itemRepo outbound.ItemRepository
	logger   zerolog.Logger
}

type ItemServiceParams struct {
	ItemRepo outbound.ItemRepository
	Logger   zerolog.Logger
}

// NewItemService creates a new item service
func NewItemService(params ItemServiceParams) *ItemService {
	return &ItemService{
		itemRepo: params.ItemRepo,
		logger:   params.Logger.With().Str("component", "item_service").Logger(),
	}
}

// CreateItem creates a new item owned by the caller
func (s *ItemService) CreateItem(ctx context.Context, req inbound.CreateItemRequest) (*item.Item, error) {
	if !req.Condition.Valid() {
		return nil, shared.ErrInvalidCondition
	}

	newItem := &item.Item{
		ID:        uuid.New(),
		OwnedBy:   req.OwnerID,
		Name:      req.Name,
		Details:   req.Details,
		Condition: req.Condition,
		CreatedAt: time.Now(),
	}

	if err := s.itemRepo.Create(ctx, newItem); err != nil {
		s.logger.Error().Err(err).Str("item_id", newItem.ID.String()).Msg("Failed to create item")
		return nil, err
	}

	s.logger.Info().
		Str("item_id", newItem.ID.String()).
		Str("owned_by", newItem.OwnedBy.String()).
		Msg("Item created")

	return newItem, nil
}

// GetItem retrieves an item by ID
func (s *ItemService) GetItem(ctx context.Context, itemID uuid.UUID) (*item.Item, error) {
	return s.itemRepo.GetByID(ctx, itemID)
}

// UpdateItem updates an item's descriptive fields; only the owner may update
func (s *ItemService) UpdateItem(ctx context.Context, req inbound.UpdateItemRequest) (*item.Item, error) {
	it, err := s.itemRepo.GetByID(ctx, req.ItemID)
	if err != nil {
		return nil, err
	}

	if it.OwnedBy != req.ActorID {
		return nil, shared.ErrItemNotOwned
	}

	if req.Name != "" {
		it.Name = req.Name
	}
	if req.Details != "" {
		it.Details = req.Details
	}
	if req.Condition != "" {
		if !req.Condition.Valid() {
			return nil, shared.ErrInvalidCondition
		}
		it.Condition = req.Condition
	}

	if err := s.itemRepo.Update(ctx, it); err != nil {
		s.logger.Error().Err(err).Str("item_id", it.ID.String()).Msg("Failed to update item")
		return nil, err
	}

	return it, nil
}
