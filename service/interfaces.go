package service

import (
	"context"
	"time"

	"starcasino/events"
	"starcasino/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// GetByTelegramID retrieves a user by their Telegram ID.
	// Returns nil without error when the user does not exist.
	GetByTelegramID(ctx context.Context, telegramID int64) (*models.User, error)

	// Create creates a new user with the initial balance
	Create(ctx context.Context, telegramID int64, username string, initialBalance int64) (*models.User, error)

	// AddBalance credits a user's balance atomically and returns the new balance
	AddBalance(ctx context.Context, telegramID int64, amount int64) (int64, error)

	// DeductBalance debits a user's balance atomically, guarded by a
	// sufficiency check in the same statement, and returns the new balance.
	// Fails with ErrInsufficientFunds or ErrUserNotFound.
	DeductBalance(ctx context.Context, telegramID int64, amount int64) (int64, error)

	// CreditBonus credits the bonus amount and stamps last_bonus_claim in a
	// single conditional update. The update only applies when the previous
	// claim is absent or not after the since threshold; a guarded-out update
	// fails with CooldownActiveError.
	CreditBonus(ctx context.Context, telegramID int64, amount int64, claimedAt, since time.Time) (int64, error)

	// GetStats returns aggregate user and balance figures
	GetStats(ctx context.Context) (*models.CasinoStats, error)
}

// TransactionRepository defines the interface for the append-only ledger
type TransactionRepository interface {
	// Record inserts a new ledger entry and fills in its ID and CreatedAt
	Record(ctx context.Context, txn *models.Transaction) error

	// GetByUser returns the most recent ledger entries for a user
	GetByUser(ctx context.Context, telegramID int64, limit int) ([]*models.Transaction, error)
}

// InventoryRepository defines the interface for inventory-item lifecycle
type InventoryRepository interface {
	// Add inserts a new active item and fills in its ID and CreatedAt
	Add(ctx context.Context, item *models.InventoryItem) error

	// GetByID retrieves an item by its ID.
	// Returns nil without error when the item does not exist.
	GetByID(ctx context.Context, itemID int64) (*models.InventoryItem, error)

	// GetActiveByUser returns a user's active items, most recent first
	GetActiveByUser(ctx context.Context, telegramID int64) ([]*models.InventoryItem, error)

	// Transition moves an item from one status to another in a single
	// conditional update and returns the updated item. Fails with
	// ErrItemNotAvailable when the item is not currently in from.
	Transition(ctx context.Context, itemID int64, from, to models.ItemStatus) (*models.InventoryItem, error)

	// TransitionOwned is Transition with an additional ownership guard
	TransitionOwned(ctx context.Context, itemID, telegramID int64, from, to models.ItemStatus) (*models.InventoryItem, error)
}

// WithdrawalRepository defines the interface for withdrawal request data access
type WithdrawalRepository interface {
	// Create inserts a new pending request and fills in its ID and CreatedAt.
	// A second open request for the same item fails with ErrItemNotAvailable.
	Create(ctx context.Context, request *models.WithdrawalRequest) error

	// GetByID retrieves a request by its ID.
	// Returns nil without error when the request does not exist.
	GetByID(ctx context.Context, requestID int64) (*models.WithdrawalRequest, error)

	// UpdateStatus moves a request from one status to another in a single
	// conditional update. Fails with ErrItemNotAvailable when the request is
	// not currently in from.
	UpdateStatus(ctx context.Context, requestID int64, from, to models.WithdrawalStatus) error

	// ListPending returns all pending requests with their items, oldest first
	ListPending(ctx context.Context) ([]*models.PendingWithdrawal, error)
}

// UserService defines the interface for user provisioning and stats
type UserService interface {
	// GetOrCreateUser retrieves an existing user or provisions a new one
	// with the configured starting balance
	GetOrCreateUser(ctx context.Context, telegramID int64, username string) (*models.User, error)

	// GetStats returns aggregate casino figures for the admin dashboard
	GetStats(ctx context.Context) (*models.CasinoStats, error)
}

// EconomyService defines the draw and sale operations
type EconomyService interface {
	// DrawCase debits the case price, performs a weighted draw and adds the
	// won item to the user's inventory
	DrawCase(ctx context.Context, telegramID int64) (*models.DrawResult, error)

	// DrawRoulette debits the roulette price, performs a weighted draw and
	// adds the won item to the user's inventory
	DrawRoulette(ctx context.Context, telegramID int64) (*models.DrawResult, error)

	// SellItem sells an active item back for floor(price * 1.2)
	SellItem(ctx context.Context, telegramID, itemID int64) (*models.SellResult, error)

	// GetInventory returns the user's active items, most recent first
	GetInventory(ctx context.Context, telegramID int64) ([]*models.InventoryItem, error)
}

// BonusService defines the time-gated daily bonus operation
type BonusService interface {
	// ClaimBonus draws a uniform bonus amount and credits it, enforcing the
	// 24-hour gate on last_bonus_claim
	ClaimBonus(ctx context.Context, telegramID int64) (*models.BonusResult, error)
}

// WithdrawalService defines the withdrawal-request workflow
type WithdrawalService interface {
	// RequestWithdrawal reserves an active item and opens a pending request
	RequestWithdrawal(ctx context.Context, telegramID, itemID int64) (*models.WithdrawalRequest, error)

	// ConfirmWithdrawal completes a pending request and withdraws its item,
	// as one unit. Requires the admin capability.
	ConfirmWithdrawal(ctx context.Context, requestID, adminID int64) error

	// RejectWithdrawal rejects a pending request and returns its item to the
	// owner's active inventory. Requires the admin capability.
	RejectWithdrawal(ctx context.Context, requestID, adminID int64) error

	// ListPendingWithdrawals returns the admin queue, strictly FIFO
	ListPendingWithdrawals(ctx context.Context) ([]*models.PendingWithdrawal, error)
}

// AdminService defines privileged balance operations
type AdminService interface {
	// Deposit credits a manual top-up to a user's balance
	Deposit(ctx context.Context, telegramID int64, amount int64, adminID int64) (int64, error)

	// AdjustBalance applies a signed correction to a user's balance.
	// Negative amounts are guarded by the sufficiency check.
	AdjustBalance(ctx context.Context, telegramID int64, amount int64, adminID int64) (int64, error)
}

// Authorizer checks whether an identity holds the administrator capability
type Authorizer interface {
	IsAdmin(telegramID int64) bool
}

// EventPublisher defines the interface for publishing events
type EventPublisher interface {
	Publish(event events.Event)
}

// UnitOfWork defines the interface for transactional repository operations
type UnitOfWork interface {
	// Begin starts a new transaction
	Begin(ctx context.Context) error

	// Commit commits the transaction
	Commit() error

	// Rollback rolls back the transaction
	Rollback() error

	// Repository getters
	UserRepository() UserRepository
	TransactionRepository() TransactionRepository
	InventoryRepository() InventoryRepository
	WithdrawalRepository() WithdrawalRepository
	EventBus() EventPublisher
}

// UnitOfWorkFactory defines the interface for creating UnitOfWork instances
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}
