package app

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/peterldowns/testy/assert"
	"github.com/peterldowns/testy/check"
	"github.com/rs/zerolog"

	"auction-marketplace-service/internal/domain/item"
	"auction-marketplace-service/internal/domain/shared"
	"auction-marketplace-service/internal/ports/inbound"
)

func newItemService(t *testing.T) (*ItemService, *memStore) {
	t.Helper()

	store := newMemStore()
	service := NewItemService(ItemServiceParams{
		ItemRepo: &memItemRepo{store: store},
		Logger:   zerolog.Nop(),
	})
	return service, store
}

func TestCreateItem_OwnedByCaller(t *testing.T) {
	service, store := newItemService(t)
	owner := uuid.New()

	created, err := service.CreateItem(context.Background(), inbound.CreateItemRequest{
		OwnerID:   owner,
		Name:      "Vintage camera",
		Details:   "Leica M3, 1955",
		Condition: item.ConditionUsed,
	})
	assert.Nil(t, err)

	check.Equal(t, owner, created.OwnedBy)
	check.Equal(t, item.ConditionUsed, created.Condition)
	check.NotNil(t, store.items[created.ID])
}

func TestCreateItem_InvalidConditionRejected(t *testing.T) {
	service, _ := newItemService(t)

	_, err := service.CreateItem(context.Background(), inbound.CreateItemRequest{
		OwnerID:   uuid.New(),
		Name:      "Vintage camera",
		Condition: "refurbished",
	})
	check.True(t, errors.Is(err, shared.ErrInvalidCondition))
}

func TestUpdateItem_OwnerOnly(t *testing.T) {
	service, _ := newItemService(t)
	owner := uuid.New()

	created, err := service.CreateItem(context.Background(), inbound.CreateItemRequest{
		OwnerID:   owner,
		Name:      "Vintage camera",
		Condition: item.ConditionUsed,
	})
	assert.Nil(t, err)

	_, err = service.UpdateItem(context.Background(), inbound.UpdateItemRequest{
		ActorID: uuid.New(),
		ItemID:  created.ID,
		Name:    "Stolen camera",
	})
	check.True(t, errors.Is(err, shared.ErrItemNotOwned))
}

func TestUpdateItem_EmptyFieldsUnchanged(t *testing.T) {
	service, _ := newItemService(t)
	owner := uuid.New()

	created, err := service.CreateItem(context.Background(), inbound.CreateItemRequest{
		OwnerID:   owner,
		Name:      "Vintage camera",
		Details:   "Leica M3, 1955",
		Condition: item.ConditionUsed,
	})
	assert.Nil(t, err)

	updated, err := service.UpdateItem(context.Background(), inbound.UpdateItemRequest{
		ActorID: owner,
		ItemID:  created.ID,
		Details: "Leica M3, 1955, recently serviced",
	})
	assert.Nil(t, err)

	check.Equal(t, "Vintage camera", updated.Name)
	check.Equal(t, "Leica M3, 1955, recently serviced", updated.Details)
	check.Equal(t, item.ConditionUsed, updated.Condition)
}

func TestGetItem_Unknown(t *testing.T) {
	service, _ := newItemService(t)

	_, err := service.GetItem(context.Background(), uuid.New())
	check.True(t, errors.Is(err, shared.ErrItemNotFound))
}
