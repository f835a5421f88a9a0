package models

import "time"

// ItemStatus represents the lifecycle state of an inventory item
type ItemStatus string

const (
	ItemStatusActive    ItemStatus = "active"
	ItemStatusReserved  ItemStatus = "reserved"
	ItemStatusWithdrawn ItemStatus = "withdrawn"
	ItemStatusSold      ItemStatus = "sold"
)

// InventoryItem represents a won or granted reward owned by a user.
// Items start active and move through the lifecycle exactly once:
// active -> sold, active -> reserved -> withdrawn. A reserved item returns
// to active only when its withdrawal request is rejected.
type InventoryItem struct {
	ID         int64      `db:"id"`
	TelegramID int64      `db:"telegram_id"`
	ItemType   string     `db:"item_type"`
	ItemName   string     `db:"item_name"`
	ItemPrice  int64      `db:"item_price"`
	ItemEmoji  string     `db:"item_emoji"`
	Status     ItemStatus `db:"status"`
	CreatedAt  time.Time  `db:"created_at"`
}

// DrawResult represents the outcome of a case opening or roulette spin
// (returned to the user)
type DrawResult struct {
	Item       *InventoryItem
	NewBalance int64
}

// SellResult represents the outcome of selling an inventory item back
type SellResult struct {
	SellPrice  int64
	NewBalance int64
}

// BonusResult represents the outcome of a daily bonus claim
type BonusResult struct {
	AmountWon  int64
	NewBalance int64
}
