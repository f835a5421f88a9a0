package models

import "time"

// WithdrawalStatus represents the state of a withdrawal request
type WithdrawalStatus string

const (
	WithdrawalStatusPending   WithdrawalStatus = "pending"
	WithdrawalStatusCompleted WithdrawalStatus = "completed"
	WithdrawalStatusRejected  WithdrawalStatus = "rejected"
)

// WithdrawalRequest represents an admin approval workflow gating the final
// disposition of an inventory item. At most one pending request may exist
// per item; a request transitions out of pending exactly once.
type WithdrawalRequest struct {
	ID              int64            `db:"id"`
	TelegramID      int64            `db:"telegram_id"`
	InventoryItemID int64            `db:"inventory_item_id"`
	Status          WithdrawalStatus `db:"status"`
	CreatedAt       time.Time        `db:"created_at"`
}

// PendingWithdrawal is a pending request joined with its item for the
// admin queue view
type PendingWithdrawal struct {
	Request  WithdrawalRequest
	Item     InventoryItem
	Username string
}
