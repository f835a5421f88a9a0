package models

import (
	"time"
)

// TransactionType represents the type of balance change
type TransactionType string

const (
	TransactionTypeDeposit         TransactionType = "deposit"
	TransactionTypeCaseOpen        TransactionType = "case_open"
	TransactionTypeRouletteSpin    TransactionType = "roulette_spin"
	TransactionTypeBonus           TransactionType = "bonus"
	TransactionTypeItemSold        TransactionType = "item_sold"
	TransactionTypeWithdrawal      TransactionType = "withdrawal"
	TransactionTypeAdminAdjustment TransactionType = "admin_adjustment"
	TransactionTypeInitial         TransactionType = "initial"
)

// Transaction represents an append-only ledger entry. Exactly one row is
// written for every balance mutation; rows are never updated or deleted.
type Transaction struct {
	ID         int64           `db:"id"`
	TelegramID int64           `db:"telegram_id"`
	Type       TransactionType `db:"type"`
	Amount     int64           `db:"amount"`
	Details    map[string]any  `db:"details"`
	CreatedAt  time.Time       `db:"created_at"`
}
