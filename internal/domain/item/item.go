package item

import (
	"time"

	"github.com/google/uuid"
)

// Condition describes the physical state of an auctionable item
type Condition string

const (
	ConditionNew  Condition = "new"
	ConditionUsed Condition = "used"
)

// Valid reports whether the condition is one of the accepted values
func (c Condition) Valid() bool {
	return c == ConditionNew || c == ConditionUsed
}

// Item represents an item that can be auctioned. OwnedBy changes exactly
// once per auction, at close, to the winning bidder.
type Item struct {
	ID        uuid.UUID `json:"id"`
	OwnedBy   uuid.UUID `json:"owned_by"`
	Name      string    `json:"name"`
	Details   string    `json:"details"`
	Condition Condition `json:"condition"`
	CreatedAt time.Time `json:"created_at"`
}
